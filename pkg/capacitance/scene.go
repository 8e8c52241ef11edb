package capacitance

import (
	"math"

	"github.com/dhconnelly/rtreego"

	"github.com/ftsim/capsim/pkg/geometry"
)

// rectPadding keeps R-tree rectangles strictly positive in every dimension,
// which the library requires even for axis-aligned (flat) triangles.
const rectPadding = 1e-6

// intersectEpsilon rejects ray-triangle hits at (numerically) zero distance
const intersectEpsilon = 1e-9

// sceneTriangle is one indexed triangle with its precomputed bounding
// rectangle, stored as an rtreego spatial entry.
type sceneTriangle struct {
	tri    geometry.Triangle
	bounds rtreego.Rect
}

func (s *sceneTriangle) Bounds() rtreego.Rect {
	return s.bounds
}

func newSceneTriangle(tri geometry.Triangle) (*sceneTriangle, error) {
	bounds, err := rectFromBox(tri.BoundingBox())
	if err != nil {
		return nil, err
	}
	return &sceneTriangle{tri: tri, bounds: bounds}, nil
}

func rectFromBox(box geometry.BoundingBox) (rtreego.Rect, error) {
	padded := box.Pad(rectPadding)
	size := padded.Size()
	return rtreego.NewRect(
		rtreego.Point{padded.Min.X, padded.Min.Y, padded.Min.Z},
		[]float64{size.X, size.Y, size.Z},
	)
}

// Scene is a ray-castable spatial index over one counter-electrode's
// transformed triangles. It is rebuilt from scratch on every geometry
// refresh; nothing is updated incrementally.
type Scene struct {
	tree  *rtreego.Rtree
	count int
}

// NewScene indexes the given triangles for ray queries
func NewScene(triangles []geometry.Triangle) (*Scene, error) {
	entries := make([]rtreego.Spatial, 0, len(triangles))
	for _, tri := range triangles {
		entry, err := newSceneTriangle(tri)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return &Scene{
		tree:  rtreego.NewTree(3, 16, 64, entries...),
		count: len(entries),
	}, nil
}

// TriangleCount returns the number of indexed triangles
func (s *Scene) TriangleCount() int {
	return s.count
}

// Raycast shoots a bounded ray from origin along dir (assumed unit length)
// and returns the distance to the nearest triangle hit within maxDist.
// Triangles are treated as two-sided.
func (s *Scene) Raycast(origin, dir geometry.Vector3, maxDist float64) (float64, bool) {
	// The ray is a segment of known length, so one rectangle query covers
	// every candidate triangle.
	end := origin.Add(dir.Mul(maxDist))
	segment := geometry.NewBoundingBox()
	segment.Extend(origin)
	segment.Extend(end)

	query, err := rectFromBox(segment)
	if err != nil {
		return 0, false
	}

	nearest := math.Inf(1)
	for _, candidate := range s.tree.SearchIntersect(query) {
		entry := candidate.(*sceneTriangle)
		if t, ok := intersectTriangle(origin, dir, entry.tri); ok && t < nearest {
			nearest = t
		}
	}

	if nearest > maxDist {
		return 0, false
	}
	return nearest, true
}

// intersectTriangle performs the Möller–Trumbore ray-triangle intersection
// test, returning the ray parameter of the hit.
func intersectTriangle(origin, dir geometry.Vector3, tri geometry.Triangle) (float64, bool) {
	edge1 := tri.V2.Sub(tri.V1)
	edge2 := tri.V3.Sub(tri.V1)

	p := dir.Cross(edge2)
	det := edge1.Dot(p)
	if math.Abs(det) < intersectEpsilon {
		return 0, false // ray parallel to the triangle plane
	}

	invDet := 1.0 / det
	s := origin.Sub(tri.V1)
	u := s.Dot(p) * invDet
	if u < 0 || u > 1 {
		return 0, false
	}

	q := s.Cross(edge1)
	v := dir.Dot(q) * invDet
	if v < 0 || u+v > 1 {
		return 0, false
	}

	t := edge2.Dot(q) * invDet
	if t <= intersectEpsilon {
		return 0, false
	}
	return t, true
}
