package geometry

// collinearEpsilon is the squared-normal threshold below which three marker
// points are treated as collinear.
const collinearEpsilon = 1e-10

// Corner selects which marker of a triple anchors the V axis of a frame
type Corner int

const (
	CornerA Corner = iota
	CornerB
	CornerC
)

// Frame is an orthonormal local coordinate system derived from three marker
// points: an origin plus the U, V, W basis vectors.
type Frame struct {
	Origin  Vector3
	U, V, W Vector3

	// Degenerate is set when the markers were collinear and the origin fell
	// back to the plain centroid. The basis is unreliable in that case.
	Degenerate bool
}

// Circumcenter computes the circumcenter of triangle ABC. For (numerically)
// collinear points it returns the centroid instead, with ok = false.
func Circumcenter(a, b, c Vector3) (Vector3, bool) {
	ab := b.Sub(a)
	ac := c.Sub(a)

	normal := ab.Cross(ac)
	normalLengthSq := normal.Dot(normal)
	if normalLengthSq < collinearEpsilon {
		return a.Add(b).Add(c).Mul(1.0 / 3.0), false
	}

	abLengthSq := ab.Dot(ab)
	acLengthSq := ac.Dot(ac)

	numerator := ab.Mul(acLengthSq).Sub(ac.Mul(abLengthSq)).Cross(normal)
	return a.Add(numerator.Mul(1.0 / (2.0 * normalLengthSq))), true
}

// BuildFrame derives the local reference frame of a marker triple:
//   - Origin: circumcenter of ABC (centroid when collinear)
//   - W: unit normal of the ABC plane
//   - V: negated unit vector from the origin to the reference corner
//   - U: unit vector of V x W, completing a right-handed basis
//
// The V negation is a fixed sign convention; rest and deformed frames of the
// same group must use the same reference corner for the rigid transform
// between them to be meaningful.
func BuildFrame(a, b, c Vector3, ref Corner) Frame {
	origin, ok := Circumcenter(a, b, c)

	frame := Frame{Origin: origin, Degenerate: !ok}
	frame.W = b.Sub(a).Cross(c.Sub(a)).Normalize()

	var refPos Vector3
	switch ref {
	case CornerB:
		refPos = b
	case CornerC:
		refPos = c
	default:
		refPos = a
	}

	frame.V = refPos.Sub(origin).Normalize().Neg()
	frame.U = frame.V.Cross(frame.W).Normalize()

	return frame
}

// Matrix returns the basis matrix of the frame: columns U, V, W with the
// origin in the translation column.
func (f Frame) Matrix() Mat4 {
	m := Identity()
	m[0], m[1], m[2] = f.U.X, f.U.Y, f.U.Z
	m[4], m[5], m[6] = f.V.X, f.V.Y, f.V.Z
	m[8], m[9], m[10] = f.W.X, f.W.Y, f.W.Z
	m[12], m[13], m[14] = f.Origin.X, f.Origin.Y, f.Origin.Z
	return m
}

// RigidTransform returns the 4x4 matrix carrying points expressed in the
// "from" frame onto the "to" frame: to.Matrix() * inverse(from.Matrix()).
// A degenerate from-frame yields the identity.
func RigidTransform(from, to Frame) Mat4 {
	inv, ok := from.Matrix().Inverse()
	if !ok {
		return Identity()
	}
	return to.Matrix().Mul(inv)
}
