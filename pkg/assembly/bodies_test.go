package assembly

import (
	"math"
	"testing"

	"github.com/ftsim/capsim/pkg/geometry"
)

func TestBodyTableInvariants(t *testing.T) {
	seen := make(map[string]bool)
	for _, body := range AllBodies() {
		if seen[body.Name] {
			t.Errorf("body %q appears twice in the table", body.Name)
		}
		seen[body.Name] = true

		if body.MeshFile == "" {
			t.Errorf("body %q has no mesh file", body.Name)
		}
	}

	for _, name := range PositiveBodies() {
		body, ok := LookupBody(name)
		if !ok {
			t.Fatalf("positive body %q missing from table", name)
		}
		if body.Group.Parent() != Positive {
			t.Errorf("positive body %q resolves to parent %v", name, body.Group.Parent())
		}
		if _, ok := PairedNegative(name); !ok {
			t.Errorf("positive body %q has no negative pairing", name)
		}
	}
}

func TestPairings(t *testing.T) {
	expected := map[string]string{
		"A1_model": "stationary_negative_A",
		"A2_model": "stationary_negative_A",
		"B1_model": "stationary_negative_B",
		"B2_model": "stationary_negative_B",
		"C1_model": "stationary_negative_C",
		"C2_model": "stationary_negative_C",
	}

	for positive, negative := range expected {
		got, ok := PairedNegative(positive)
		if !ok || got != negative {
			t.Errorf("pairing for %s: expected %s, got %s (ok=%v)", positive, negative, got, ok)
		}
	}

	if _, ok := PairedNegative("stationary_negative_A"); ok {
		t.Error("negative body unexpectedly has a pairing")
	}
}

func TestGroupParents(t *testing.T) {
	cases := map[SubGroup]ParentGroup{
		GroupA:        Positive,
		GroupB:        Positive,
		GroupC:        Positive,
		NegativeGroup: Negative,
		Individual:    Positive,
	}
	for group, parent := range cases {
		if group.Parent() != parent {
			t.Errorf("parent of %v: expected %v, got %v", group, parent, group.Parent())
		}
	}
}

func TestGroupCenters(t *testing.T) {
	a := GroupCenter(GroupA)
	if a.Distance(geometry.NewVector3(0, LayoutRadius, 0)) > 1e-9 {
		t.Errorf("GroupA center: got %v", a)
	}

	for _, g := range MovableGroups() {
		center := GroupCenter(g)
		if math.Abs(center.Length()-LayoutRadius) > 1e-9 {
			t.Errorf("%v center not on layout circle: %v", g, center)
		}
	}

	// 120 degree spacing: pairwise distances are equal
	ab := GroupCenter(GroupA).Distance(GroupCenter(GroupB))
	bc := GroupCenter(GroupB).Distance(GroupCenter(GroupC))
	ca := GroupCenter(GroupC).Distance(GroupCenter(GroupA))
	if math.Abs(ab-bc) > 1e-9 || math.Abs(bc-ca) > 1e-9 {
		t.Errorf("group centers not evenly spaced: %v %v %v", ab, bc, ca)
	}
}

func TestRestMarkersSurroundGroupCenter(t *testing.T) {
	for _, g := range MovableGroups() {
		center := GroupCenter(g)
		a, b, c := RestMarkers(g)

		for _, marker := range []geometry.Vector3{a, b, c} {
			if math.Abs(marker.Distance(center)-4.0) > 1e-9 {
				t.Errorf("%v marker %v is not 4 mm from the group center", g, marker)
			}
		}
	}
}

func TestReferenceCornerIsLowerMarker(t *testing.T) {
	// The reference corner always names the marker 4 mm below the center.
	for _, g := range MovableGroups() {
		center := GroupCenter(g)
		a, b, c := RestMarkers(g)

		var ref geometry.Vector3
		switch ReferenceCorner(g) {
		case geometry.CornerA:
			ref = a
		case geometry.CornerB:
			ref = b
		case geometry.CornerC:
			ref = c
		}

		expected := geometry.NewVector3(center.X, center.Y-4.0, 0)
		if ref.Distance(expected) > 1e-9 {
			t.Errorf("%v reference marker: expected %v, got %v", g, expected, ref)
		}
	}
}

func TestUnknownBodyDefaults(t *testing.T) {
	if BodyGroup("nonexistent") != Individual {
		t.Error("unknown body should default to Individual")
	}
	if WorldPosition("nonexistent") != (geometry.Vector3{}) {
		t.Error("unknown body should rest at the origin")
	}
}
