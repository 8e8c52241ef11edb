package geometry

import (
	"math"
	"testing"
)

func TestCircumcenterEquidistant(t *testing.T) {
	a := NewVector3(0, 0, 0)
	b := NewVector3(4, 0, 0)
	c := NewVector3(1, 3, 0)

	center, ok := Circumcenter(a, b, c)
	if !ok {
		t.Fatal("Circumcenter reported collinear points for a proper triangle")
	}

	da := center.Distance(a)
	db := center.Distance(b)
	dc := center.Distance(c)

	if math.Abs(da-db) > 1e-9 || math.Abs(da-dc) > 1e-9 {
		t.Errorf("Circumcenter not equidistant: %.12f %.12f %.12f", da, db, dc)
	}
}

func TestCircumcenterSkewedPlane(t *testing.T) {
	// Triangle not aligned with any coordinate plane
	a := NewVector3(1, 2, 3)
	b := NewVector3(4, -1, 2)
	c := NewVector3(0, 1, -2)

	center, ok := Circumcenter(a, b, c)
	if !ok {
		t.Fatal("Circumcenter reported collinear points for a proper triangle")
	}

	da := center.Distance(a)
	db := center.Distance(b)
	dc := center.Distance(c)

	if math.Abs(da-db) > 1e-9 || math.Abs(da-dc) > 1e-9 {
		t.Errorf("Circumcenter not equidistant: %.12f %.12f %.12f", da, db, dc)
	}
}

func TestCircumcenterCollinearFallback(t *testing.T) {
	a := NewVector3(0, 0, 0)
	b := NewVector3(1, 0, 0)
	c := NewVector3(2, 0, 0)

	center, ok := Circumcenter(a, b, c)
	if ok {
		t.Error("Circumcenter did not flag collinear points")
	}

	expected := NewVector3(1, 0, 0) // centroid
	if center.Distance(expected) > 1e-10 {
		t.Errorf("Collinear fallback failed: expected %v, got %v", expected, center)
	}
}

func TestBuildFrameOrthonormal(t *testing.T) {
	a := NewVector3(0, 20.85, 0)
	b := NewVector3(2.83, 27.68, 0)
	c := NewVector3(-2.83, 27.68, 0)

	frame := BuildFrame(a, b, c, CornerA)
	if frame.Degenerate {
		t.Fatal("BuildFrame flagged a proper triangle as degenerate")
	}

	for name, axis := range map[string]Vector3{"U": frame.U, "V": frame.V, "W": frame.W} {
		if math.Abs(axis.Length()-1.0) > 1e-9 {
			t.Errorf("%s axis is not unit length: %v", name, axis.Length())
		}
	}

	if math.Abs(frame.U.Dot(frame.V)) > 1e-9 ||
		math.Abs(frame.U.Dot(frame.W)) > 1e-9 ||
		math.Abs(frame.V.Dot(frame.W)) > 1e-9 {
		t.Error("frame axes are not mutually orthogonal")
	}

	// Right-handed: U x V = W
	if frame.U.Cross(frame.V).Distance(frame.W) > 1e-9 {
		t.Errorf("frame is not right-handed: U x V = %v, W = %v", frame.U.Cross(frame.V), frame.W)
	}
}

func TestBuildFrameVPointsAwayFromCorner(t *testing.T) {
	a := NewVector3(0, -1, 0)
	b := NewVector3(1, 1, 0)
	c := NewVector3(-1, 1, 0)

	frame := BuildFrame(a, b, c, CornerA)

	toCorner := a.Sub(frame.Origin).Normalize()
	if frame.V.Distance(toCorner.Neg()) > 1e-9 {
		t.Errorf("V is not the negated origin-to-corner direction: V=%v, -toCorner=%v", frame.V, toCorner.Neg())
	}
}

func TestRigidTransformIdenticalFrames(t *testing.T) {
	a := NewVector3(0, 0, 0)
	b := NewVector3(3, 0, 1)
	c := NewVector3(1, 2, 0)

	frame := BuildFrame(a, b, c, CornerB)
	m := RigidTransform(frame, frame)

	if !m.ApproxEqual(Identity(), 1e-9) {
		t.Errorf("RigidTransform(F, F) is not identity: %v", m)
	}
}

func TestRigidTransformCarriesFrame(t *testing.T) {
	a := NewVector3(0, 0, 0)
	b := NewVector3(3, 0, 0)
	c := NewVector3(1, 2, 0)
	rest := BuildFrame(a, b, c, CornerA)

	// Displace the triple by a rigid motion: rotate about Z and translate
	motion := Translation(NewVector3(1, -2, 3)).Mul(RotationZ(0.4))
	deformed := BuildFrame(
		motion.TransformPoint(a),
		motion.TransformPoint(b),
		motion.TransformPoint(c),
		CornerA,
	)

	m := RigidTransform(rest, deformed)

	// Origin maps onto origin
	if m.TransformPoint(rest.Origin).Distance(deformed.Origin) > 1e-9 {
		t.Errorf("origin not carried: got %v, want %v", m.TransformPoint(rest.Origin), deformed.Origin)
	}

	// Basis vectors map onto basis vectors
	for name, pair := range map[string][2]Vector3{
		"U": {rest.U, deformed.U},
		"V": {rest.V, deformed.V},
		"W": {rest.W, deformed.W},
	} {
		got := m.TransformDirection(pair[0])
		if got.Distance(pair[1]) > 1e-9 {
			t.Errorf("%s axis not carried: got %v, want %v", name, got, pair[1])
		}
	}

	// The full marker triple is carried as well
	for _, p := range []Vector3{a, b, c} {
		if m.TransformPoint(p).Distance(motion.TransformPoint(p)) > 1e-9 {
			t.Errorf("marker %v not carried by rigid transform", p)
		}
	}
}

func TestRigidTransformDegenerateFrom(t *testing.T) {
	collinear := BuildFrame(NewVector3(0, 0, 0), NewVector3(1, 0, 0), NewVector3(2, 0, 0), CornerA)
	proper := BuildFrame(NewVector3(0, 0, 0), NewVector3(1, 0, 0), NewVector3(0, 1, 0), CornerA)

	if !collinear.Degenerate {
		t.Fatal("collinear frame not flagged degenerate")
	}

	// Must not panic; any finite matrix is acceptable for the degenerate case
	m := RigidTransform(collinear, proper)
	for i, v := range m {
		if math.IsInf(v, 0) {
			t.Errorf("element %d is infinite", i)
		}
	}
}
