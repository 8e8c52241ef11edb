package assembly

import (
	"github.com/ftsim/capsim/pkg/geometry"
)

// GroupState holds one group's transform parameters: an enable flag,
// explicit rotation angles (radians) and translation offsets (mm), and
// optionally a calculated world-space matrix that overrides the explicit
// parameters until the next reset.
type GroupState struct {
	Enabled     bool
	Rotation    geometry.Vector3
	Translation geometry.Vector3

	calculated *geometry.Mat4
}

// effective builds the group's active transform. Parameter-driven groups
// rotate and translate about the given center:
//
//	T(center) * R * T * T(-center)
//
// A calculated matrix already acts in world space and applies as-is.
func (s *GroupState) effective(center geometry.Vector3) geometry.Mat4 {
	if s.calculated != nil {
		return *s.calculated
	}
	rotation := geometry.RotationXYZ(s.Rotation)
	translation := geometry.Translation(s.Translation)
	return geometry.Translation(center).
		Mul(rotation).
		Mul(translation).
		Mul(geometry.Translation(center.Neg()))
}

func (s *GroupState) reset() {
	s.Enabled = false
	s.Rotation = geometry.Vector3{}
	s.Translation = geometry.Vector3{}
	s.calculated = nil
}

// Hierarchy owns the transform state of all groups and resolves the single
// combined transform to apply to a named body. The sweep driver mutates it
// exclusively through ApplyTransform and ResetGroups; the rendering and
// geometry-extraction side only reads CombinedTransform.
type Hierarchy struct {
	groups map[SubGroup]*GroupState
	parent map[ParentGroup]*GroupState
}

// NewHierarchy creates a hierarchy with every group disabled and zeroed
func NewHierarchy() *Hierarchy {
	h := &Hierarchy{
		groups: make(map[SubGroup]*GroupState),
		parent: make(map[ParentGroup]*GroupState),
	}
	for _, g := range []SubGroup{GroupA, GroupB, GroupC, NegativeGroup, Individual} {
		h.groups[g] = &GroupState{}
	}
	h.parent[Positive] = &GroupState{}
	h.parent[Negative] = &GroupState{}
	return h
}

// ApplyTransform stores a calculated world-space rigid transform as the
// group's effective transform and enables the group. This is the only
// mutation path used during a sweep.
func (h *Hierarchy) ApplyTransform(g SubGroup, m geometry.Mat4) {
	state := h.groups[g]
	state.calculated = &m
	state.Enabled = true
}

// SetGroupParams sets a group's explicit rotation/translation parameters,
// clearing any calculated transform.
func (h *Hierarchy) SetGroupParams(g SubGroup, rotation, translation geometry.Vector3) {
	state := h.groups[g]
	state.Rotation = rotation
	state.Translation = translation
	state.calculated = nil
}

// SetGroupEnabled toggles a sub-assembly group's transform
func (h *Hierarchy) SetGroupEnabled(g SubGroup, enabled bool) {
	h.groups[g].Enabled = enabled
}

// SetParentParams sets the parent group's explicit parameters
func (h *Hierarchy) SetParentParams(p ParentGroup, rotation, translation geometry.Vector3) {
	state := h.parent[p]
	state.Rotation = rotation
	state.Translation = translation
}

// SetParentEnabled toggles a parent group's transform
func (h *Hierarchy) SetParentEnabled(p ParentGroup, enabled bool) {
	h.parent[p].Enabled = enabled
}

// GroupState returns a copy of a sub-assembly group's current state
func (h *Hierarchy) GroupState(g SubGroup) GroupState {
	return *h.groups[g]
}

// ResetGroups returns every group, parents included, to the disabled
// identity state. Called before each sweep row so no transform leaks
// between rows.
func (h *Hierarchy) ResetGroups() {
	for _, state := range h.groups {
		state.reset()
	}
	for _, state := range h.parent {
		state.reset()
	}
}

// CombinedTransform resolves the single matrix that places a named body in
// the world under the current group state. The multiplication order is
// fixed: world rest placement first, then the sub-assembly transform about
// its group center, then the parent group transform.
func (h *Hierarchy) CombinedTransform(name string) geometry.Mat4 {
	group := BodyGroup(name)

	final := geometry.Translation(WorldPosition(name))

	switch group {
	case GroupA, GroupB, GroupC:
		if state := h.groups[group]; state.Enabled {
			final = state.effective(GroupCenter(group)).Mul(final)
		}
	}

	if group.Parent() == Positive {
		if state := h.parent[Positive]; state.Enabled {
			rotation := geometry.RotationXYZ(state.Rotation)
			translation := geometry.Translation(state.Translation)
			final = translation.Mul(rotation).Mul(final)
		}
	}

	return final
}
