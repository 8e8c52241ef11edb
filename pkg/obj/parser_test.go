package obj

import (
	"math"
	"strings"
	"testing"
)

const cubeOBJ = `# unit cube
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
v 0 0 1
v 1 0 1
v 1 1 1
v 0 1 1
f 1 2 3
f 1 3 4
f 5 7 6
f 5 8 7
f 1 5 6
f 1 6 2
f 2 6 7
f 2 7 3
f 3 7 8
f 3 8 4
f 4 8 5
f 4 5 1
`

func TestParseCube(t *testing.T) {
	model, err := parse(strings.NewReader(cubeOBJ), "cube")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if model.VertexCount() != 8 {
		t.Errorf("expected 8 vertices, got %d", model.VertexCount())
	}
	if model.TriangleCount() != 12 {
		t.Errorf("expected 12 triangles, got %d", model.TriangleCount())
	}

	area := model.SurfaceArea()
	if math.Abs(area-6.0) > 1e-10 {
		t.Errorf("expected surface area 6, got %v", area)
	}

	bbox := model.BoundingBox()
	if bbox.Min.Distance(model.Vertices[0]) > 1e-10 || bbox.Size().Distance(model.Vertices[6]) > 1e-10 {
		t.Errorf("unexpected bounding box: min=%v size=%v", bbox.Min, bbox.Size())
	}
}

func TestParseSlashedAndNegativeIndices(t *testing.T) {
	input := `v 0 0 0
v 1 0 0
v 0 1 0
vn 0 0 1
vt 0 0
f 1/1/1 2/1/1 3/1/1
f -3//1 -2//1 -1//1
`
	model, err := parse(strings.NewReader(input), "tri")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if model.TriangleCount() != 2 {
		t.Fatalf("expected 2 triangles, got %d", model.TriangleCount())
	}

	// Both faces reference the same vertices
	if model.Triangle(0) != model.Triangle(1) {
		t.Errorf("slashed and negative faces disagree: %v vs %v", model.Triangle(0), model.Triangle(1))
	}
}

func TestParseSkipsNonTriangles(t *testing.T) {
	input := `v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
f 1 2 3 4
f 1 2 3
`
	model, err := parse(strings.NewReader(input), "quad")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if model.TriangleCount() != 1 {
		t.Errorf("expected quad to be skipped, got %d triangles", model.TriangleCount())
	}
}

func TestParseRejectsFaceIndexOutOfRange(t *testing.T) {
	input := `v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 9
`
	if _, err := parse(strings.NewReader(input), "bad"); err == nil {
		t.Error("expected error for out-of-range face index")
	}
}

func TestParseRejectsEmptyModel(t *testing.T) {
	if _, err := parse(strings.NewReader("# nothing here\n"), "empty"); err == nil {
		t.Error("expected error for OBJ without vertices")
	}
}
