// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package topology

import (
	"sort"

	"github.com/avalanche-io/coordgraph/ordinate"
)

// Invert returns the partial inverse of t: 0..N topologies, one per maximal
// run of contiguous output coverage. Each Mapping piece inverts itself first
// (splitting at any internal non-monotonicity, e.g. a bezier's horizontal
// tangents); the resulting per-piece inverse branches are then stitched
// together by contiguous output range.
func Invert(t Topology) ([]Topology, error) {
	if t.IsEmpty() {
		return nil, nil
	}

	type branch struct {
		output ordinate.ContinuousInterval
		inv    Mapping
	}

	var branches []branch
	for _, m := range t.Mappings {
		for _, inv := range m.Inverted() {
			// The inverse's own input interval is the forward output range
			// of the monotone run it came from.
			branches = append(branches, branch{output: inv.InputBounds(), inv: inv})
		}
	}
	if len(branches) == 0 {
		return nil, nil
	}

	sort.Slice(branches, func(i, j int) bool {
		return branches[i].output.Start.LessThan(branches[j].output.Start)
	})

	var result []Topology
	var current []Mapping
	var currentEnd ordinate.Ordinate
	for i, b := range branches {
		if i > 0 && !b.output.Start.AlmostEqual(currentEnd, 1e-9) {
			result = append(result, Topology{Mappings: current})
			current = nil
		}
		current = append(current, b.inv)
		currentEnd = b.output.End
	}
	if len(current) > 0 {
		result = append(result, Topology{Mappings: current})
	}
	return result, nil
}
