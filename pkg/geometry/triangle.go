package geometry

// Triangle represents a triangular facet in 3D space
type Triangle struct {
	V1, V2, V3 Vector3
}

// NewTriangle creates a new triangle
func NewTriangle(v1, v2, v3 Vector3) Triangle {
	return Triangle{V1: v1, V2: v2, V3: v3}
}

// Normal computes the unit normal vector of the triangle.
// Degenerate triangles fall back to the +Z axis.
func (t Triangle) Normal() Vector3 {
	edge1 := t.V2.Sub(t.V1)
	edge2 := t.V3.Sub(t.V1)
	normal := edge1.Cross(edge2)
	if normal.Length() == 0 {
		return Vector3{X: 0, Y: 0, Z: 1}
	}
	return normal.Normalize()
}

// Area returns the surface area of the triangle
func (t Triangle) Area() float64 {
	edge1 := t.V2.Sub(t.V1)
	edge2 := t.V3.Sub(t.V1)
	cross := edge1.Cross(edge2)
	return cross.Length() / 2.0
}

// Center returns the centroid of the triangle
func (t Triangle) Center() Vector3 {
	return Vector3{
		X: (t.V1.X + t.V2.X + t.V3.X) / 3.0,
		Y: (t.V1.Y + t.V2.Y + t.V3.Y) / 3.0,
		Z: (t.V1.Z + t.V2.Z + t.V3.Z) / 3.0,
	}
}

// Transform returns the triangle with all three vertices mapped by m
func (t Triangle) Transform(m Mat4) Triangle {
	return Triangle{
		V1: m.TransformPoint(t.V1),
		V2: m.TransformPoint(t.V2),
		V3: m.TransformPoint(t.V3),
	}
}

// BoundingBox returns the axis-aligned bounding box of the triangle
func (t Triangle) BoundingBox() BoundingBox {
	bbox := NewBoundingBox()
	bbox.Extend(t.V1)
	bbox.Extend(t.V2)
	bbox.Extend(t.V3)
	return bbox
}
