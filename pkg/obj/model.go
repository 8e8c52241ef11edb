package obj

import (
	"github.com/ftsim/capsim/pkg/geometry"
)

// Model is an immutable triangle soup loaded from an OBJ file: a flat vertex
// list and a list of triangle index triples referencing it.
type Model struct {
	Name     string
	Vertices []geometry.Vector3
	Indices  []uint32
}

// NewModel creates a new empty model
func NewModel(name string) *Model {
	return &Model{Name: name}
}

// TriangleCount returns the number of triangles in the model
func (m *Model) TriangleCount() int {
	return len(m.Indices) / 3
}

// VertexCount returns the number of vertices in the model
func (m *Model) VertexCount() int {
	return len(m.Vertices)
}

// Triangle returns the i-th triangle of the model
func (m *Model) Triangle(i int) geometry.Triangle {
	return geometry.NewTriangle(
		m.Vertices[m.Indices[i*3]],
		m.Vertices[m.Indices[i*3+1]],
		m.Vertices[m.Indices[i*3+2]],
	)
}

// BoundingBox calculates the bounding box of the entire model
func (m *Model) BoundingBox() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, v := range m.Vertices {
		bbox.Extend(v)
	}
	return bbox
}

// SurfaceArea calculates the total surface area of the model
func (m *Model) SurfaceArea() float64 {
	totalArea := 0.0
	for i := 0; i < m.TriangleCount(); i++ {
		totalArea += m.Triangle(i).Area()
	}
	return totalArea
}
