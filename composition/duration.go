// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package composition

import "github.com/avalanche-io/coordgraph/ordinate"

// DurationOf returns the presentation-space duration of a composable child,
// the quantity the Track child-to-child ripple shift is built from.
func DurationOf(c Composable) ordinate.Ordinate {
	switch v := c.(type) {
	case *Clip:
		return v.PresentationBounds().Duration()
	case *Gap:
		return v.DurationSecs
	case *Warp:
		return v.Transform.InputBounds().Duration()
	case *Track:
		return TrackDuration(v)
	case *Stack:
		return StackDuration(v)
	case *Timeline:
		return DurationOf(v.TracksVal)
	default:
		return ordinate.ZERO
	}
}

// TrackDuration is the sum of its children's durations.
func TrackDuration(t *Track) ordinate.Ordinate {
	total := ordinate.ZERO
	for _, c := range t.ChildrenVal {
		total = total.Add(DurationOf(c))
	}
	return total
}

// StackDuration is the longest of its children's durations.
func StackDuration(s *Stack) ordinate.Ordinate {
	max := ordinate.ZERO
	for _, c := range s.ChildrenVal {
		if d := DurationOf(c); d.GreaterThan(max) {
			max = d
		}
	}
	return max
}
