// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package topology

import (
	"fmt"

	"github.com/avalanche-io/coordgraph/ordinate"
)

// Topology is an ordered, contiguous sequence of Mappings covering a single
// input interval. Adjacent mappings share an endpoint: Mappings[i].InputBounds().End
// == Mappings[i+1].InputBounds().Start.
type Topology struct {
	Mappings []Mapping
}

// Identity returns the topology mapping bounds to itself unchanged.
func Identity(bounds ordinate.ContinuousInterval) Topology {
	return Topology{Mappings: []Mapping{
		AffineMapping{Bounds: bounds, Transform: IdentityTransform()},
	}}
}

// InfiniteIdentity returns the identity topology over (-inf, +inf).
func InfiniteIdentity() Topology {
	return Identity(ordinate.Infinite)
}

// Empty returns a topology with no mappings, covering no domain.
func Empty() Topology {
	return Topology{}
}

// IsEmpty reports whether this topology maps nothing.
func (t Topology) IsEmpty() bool {
	return len(t.Mappings) == 0
}

// InputBounds returns the union input interval of this topology's mappings.
func (t Topology) InputBounds() ordinate.ContinuousInterval {
	if t.IsEmpty() {
		return ordinate.Empty
	}
	return ordinate.NewContinuousInterval(
		t.Mappings[0].InputBounds().Start,
		t.Mappings[len(t.Mappings)-1].InputBounds().End,
	)
}

// OutputBounds returns the smallest interval containing every mapping's
// output bounds.
func (t Topology) OutputBounds() ordinate.ContinuousInterval {
	if t.IsEmpty() {
		return ordinate.Empty
	}
	result := t.Mappings[0].OutputBounds()
	for _, m := range t.Mappings[1:] {
		result = result.Extend(m.OutputBounds())
	}
	return result
}

// mappingAt returns the index of the mapping whose input bounds contain o,
// or -1 if none does. Bounds are half-open: o exactly at the final mapping's
// end is not contained.
func (t Topology) mappingAt(o ordinate.Ordinate) int {
	for i, m := range t.Mappings {
		if m.InputBounds().Contains(o) {
			return i
		}
	}
	return -1
}

// ProjectInstantaneous evaluates the topology at a single input ordinate.
func (t Topology) ProjectInstantaneous(o ordinate.Ordinate) ProjectionResult {
	idx := t.mappingAt(o)
	if idx < 0 {
		return OutOfBoundsResult()
	}
	return t.Mappings[idx].ProjectInstantaneous(o)
}

// Clone returns a deep, independent copy.
func (t Topology) Clone() Topology {
	mappings := make([]Mapping, len(t.Mappings))
	for i, m := range t.Mappings {
		mappings[i] = m.Clone()
	}
	return Topology{Mappings: mappings}
}

// Inverted returns the partial inverse of this topology: 0..N topologies,
// one per maximal run of inverted pieces whose input ranges join end to
// start (see Invert). Most topologies (those
// built entirely of affine and/or monotone linear/bezier pieces) invert to
// exactly one branch; ErrMoreThanOneInversion is returned by InvertedOne
// when more than one is produced.
func (t Topology) Inverted() ([]Topology, error) {
	return Invert(t)
}

// InvertedOne returns the single-branch inverse, failing with
// ErrMoreThanOneInversion if the inverse requires more than one branch and
// with ErrNoOverlap if it has none.
func (t Topology) InvertedOne() (Topology, error) {
	branches, err := t.Inverted()
	if err != nil {
		return Topology{}, err
	}
	if len(branches) == 0 {
		return Topology{}, ErrNoOverlap
	}
	if len(branches) > 1 {
		return Topology{}, ErrMoreThanOneInversion
	}
	return branches[0], nil
}

// String returns a human-readable summary.
func (t Topology) String() string {
	return fmt.Sprintf("Topology(%d mappings, in=%s, out=%s)", len(t.Mappings), t.InputBounds(), t.OutputBounds())
}
