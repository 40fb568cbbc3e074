// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

// Package composition is the hierarchical temporal container data model:
// Clip, Gap, Warp, Track, Stack, and Timeline, each exposing a fixed
// enumeration of named coordinate spaces. Containers hold their children
// in document order; SpaceReference values name one space of one
// object and are the node identity used by the space graph.
package composition

import "fmt"

// SpaceLabel identifies one of the coordinate spaces a composition object
// exposes.
type SpaceLabel int

const (
	// Presentation is the space in which an object is played back or edited.
	Presentation SpaceLabel = iota
	// Intrinsic is a container's own untrimmed timeline, before any
	// per-child ripple shifts are applied.
	Intrinsic
	// Media is a Clip's underlying media axis.
	Media
	// Child identifies the k-th child-slot edge of a container.
	Child
)

// String returns the label's lowercase name, as used in the dot-export
// label format "{object_kind}.{space_label}.{treecode_bits}".
func (l SpaceLabel) String() string {
	switch l {
	case Presentation:
		return "presentation"
	case Intrinsic:
		return "intrinsic"
	case Media:
		return "media"
	case Child:
		return "child"
	default:
		return "unknown"
	}
}

// Composable is the sealed sum over the six composition object kinds,
// dispatched on Kind() rather than through an inheritance hierarchy. Clip
// and Gap return nil from Children(); every other kind returns its ordered
// child composables.
type Composable interface {
	// Name returns the object's optional display name ("" if unset).
	Name() string
	// Kind returns the object's kind tag, e.g. "clip", "track".
	Kind() string
	// Spaces returns, in order, this object's own (non-child) coordinate
	// spaces: the chain of internal spaces anchored at this object's node.
	Spaces() []SpaceLabel
	// Children returns this object's ordered child composables, or nil for
	// leaves (Clip, Gap).
	Children() []Composable
}

// SpaceReference names one coordinate space of one composition object: the
// node identity used throughout SpaceGraph. ChildIndex is only
// meaningful when Label == Child.
type SpaceReference struct {
	Object     Composable
	Label      SpaceLabel
	ChildIndex int
}

// NewSpaceReference builds a non-child space reference.
func NewSpaceReference(obj Composable, label SpaceLabel) SpaceReference {
	return SpaceReference{Object: obj, Label: label, ChildIndex: -1}
}

// NewChildSpaceReference builds a Child-labeled space reference for the
// k-th child slot of obj.
func NewChildSpaceReference(obj Composable, childIndex int) SpaceReference {
	return SpaceReference{Object: obj, Label: Child, ChildIndex: childIndex}
}

// String renders "{kind}.{label}" or "{kind}.child[{index}]".
func (s SpaceReference) String() string {
	if s.Label == Child {
		return fmt.Sprintf("%s.child[%d]", s.Object.Kind(), s.ChildIndex)
	}
	return fmt.Sprintf("%s.%s", s.Object.Kind(), s.Label)
}
