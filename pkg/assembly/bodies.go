// Package assembly describes the electrode assembly: which named body
// belongs to which rigid group, where it rests in the world, which negative
// electrode it is paired with, and how the groups may be displaced. The body
// table below is the single source of truth consulted by the transform
// hierarchy, the capacitance engine and the sweep driver.
package assembly

import (
	"math"

	"github.com/ftsim/capsim/pkg/geometry"
)

// SubGroup identifies a rigid sub-assembly
type SubGroup int

const (
	GroupA SubGroup = iota
	GroupB
	GroupC
	NegativeGroup
	Individual
)

// ParentGroup is the outer classification applied after sub-group transforms
type ParentGroup int

const (
	Positive ParentGroup = iota
	Negative
)

// Layout constants of the nominal assembly: three sub-assemblies spaced 120
// degrees apart on a circle, each carrying three alignment marker spheres
// 4 mm from the group center. All lengths in millimeters.
const (
	LayoutRadius = 24.85
	markerDrop   = 4.0
)

var markerDiag = markerDrop / math.Sqrt2

// Group placement angles on the layout circle, in radians
var groupAngles = map[SubGroup]float64{
	GroupA: 90.0 * math.Pi / 180.0,
	GroupB: -30.0 * math.Pi / 180.0,
	GroupC: -150.0 * math.Pi / 180.0,
}

func (g SubGroup) String() string {
	switch g {
	case GroupA:
		return "GroupA"
	case GroupB:
		return "GroupB"
	case GroupC:
		return "GroupC"
	case NegativeGroup:
		return "Negative"
	case Individual:
		return "Individual"
	}
	return "Unknown"
}

// Parent returns the parent group of a sub-assembly. Ungrouped bodies
// default to Positive.
func (g SubGroup) Parent() ParentGroup {
	if g == NegativeGroup {
		return Negative
	}
	return Positive
}

func (p ParentGroup) String() string {
	if p == Negative {
		return "Negative"
	}
	return "Positive"
}

// MovableGroups lists the three displaceable sub-assemblies in fixed order
func MovableGroups() []SubGroup {
	return []SubGroup{GroupA, GroupB, GroupC}
}

// GroupCenter returns the world-space center a sub-assembly rotates about
func GroupCenter(g SubGroup) geometry.Vector3 {
	angle, ok := groupAngles[g]
	if !ok {
		return geometry.Vector3{}
	}
	return geometry.NewVector3(LayoutRadius*math.Cos(angle), LayoutRadius*math.Sin(angle), 0)
}

// ReferenceCorner returns the marker anchoring a group's frame V axis.
// The assignment is fixed per group and must match between the rest and
// deformed frames.
func ReferenceCorner(g SubGroup) geometry.Corner {
	switch g {
	case GroupB:
		return geometry.CornerB
	case GroupC:
		return geometry.CornerC
	default:
		return geometry.CornerA
	}
}

// RestMarkers returns the resting world positions of a group's three
// alignment markers A, B, C. One marker sits 4 mm below the group center,
// the other two 4 mm away on the upper diagonals; the naming rotates with
// the group so that the lower marker is always the group's reference corner.
func RestMarkers(g SubGroup) (a, b, c geometry.Vector3) {
	center := GroupCenter(g)
	down := geometry.NewVector3(center.X, center.Y-markerDrop, 0)
	left := geometry.NewVector3(center.X-markerDiag, center.Y+markerDiag, 0)
	right := geometry.NewVector3(center.X+markerDiag, center.Y+markerDiag, 0)

	switch g {
	case GroupA:
		return down, right, left
	case GroupB:
		return left, down, right
	case GroupC:
		return right, left, down
	}
	return geometry.Vector3{}, geometry.Vector3{}, geometry.Vector3{}
}

// Body is one named mesh of the assembly together with its group
// classification and world rest position.
type Body struct {
	Name     string
	Group    SubGroup
	WorldPos geometry.Vector3
	// PairedNegative names the counter-electrode a positive electrode is
	// measured against. Empty for non-electrode bodies.
	PairedNegative string
	// MeshFile is the OBJ file the body's geometry is loaded from. The three
	// negative bodies share one mesh placed at each group position.
	MeshFile string
	// Marker is true for the alignment marker spheres, which exist for
	// visualization only and are optional on disk.
	Marker bool
}

// bodyTable enumerates every body of the assembly. Positive electrodes come
// first in measurement order.
var bodyTable = buildBodyTable()

func buildBodyTable() []Body {
	table := make([]Body, 0, 18)

	groups := []struct {
		group    SubGroup
		prefix   string
		negative string
	}{
		{GroupA, "A", "stationary_negative_A"},
		{GroupB, "B", "stationary_negative_B"},
		{GroupC, "C", "stationary_negative_C"},
	}

	// Electrodes: two per group, resting at the group position
	for _, gr := range groups {
		for _, n := range []string{"1", "2"} {
			name := gr.prefix + n + "_model"
			table = append(table, Body{
				Name:           name,
				Group:          gr.group,
				WorldPos:       GroupCenter(gr.group),
				PairedNegative: gr.negative,
				MeshFile:       name + ".obj",
			})
		}
	}

	// Counter-electrodes: one shared mesh at each group position
	for _, gr := range groups {
		table = append(table, Body{
			Name:     gr.negative,
			Group:    NegativeGroup,
			WorldPos: GroupCenter(gr.group),
			MeshFile: "stationary_negative.obj",
		})
	}

	// Marker spheres: rest at their marker positions, move with their group
	for _, gr := range groups {
		a, b, c := RestMarkers(gr.group)
		for i, pos := range []geometry.Vector3{a, b, c} {
			name := "Group" + gr.prefix + "_" + string(rune('A'+i))
			table = append(table, Body{
				Name:     name,
				Group:    gr.group,
				WorldPos: pos,
				MeshFile: name + ".obj",
				Marker:   true,
			})
		}
	}

	return table
}

// PositiveBodies returns the six positive electrode names in fixed
// measurement order.
func PositiveBodies() []string {
	return []string{"A1_model", "A2_model", "B1_model", "B2_model", "C1_model", "C2_model"}
}

// AllBodies returns the full body table
func AllBodies() []Body {
	out := make([]Body, len(bodyTable))
	copy(out, bodyTable)
	return out
}

// LookupBody finds a body by name
func LookupBody(name string) (Body, bool) {
	for _, b := range bodyTable {
		if b.Name == name {
			return b, true
		}
	}
	return Body{}, false
}

// BodyGroup returns the sub-assembly a body belongs to. Unknown names are
// Individual (no group transform).
func BodyGroup(name string) SubGroup {
	if b, ok := LookupBody(name); ok {
		return b.Group
	}
	return Individual
}

// WorldPosition returns a body's world rest position, or the origin for
// unknown names.
func WorldPosition(name string) geometry.Vector3 {
	if b, ok := LookupBody(name); ok {
		return b.WorldPos
	}
	return geometry.Vector3{}
}

// PairedNegative returns the counter-electrode paired with a positive body
func PairedNegative(name string) (string, bool) {
	if b, ok := LookupBody(name); ok && b.PairedNegative != "" {
		return b.PairedNegative, true
	}
	return "", false
}
