// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package composition

import (
	"math"

	"github.com/avalanche-io/coordgraph/ordinate"
)

// DiscreteInfo defines the bijection between sample indices and continuous
// ordinates along a discrete axis:
//
//	continuous(i) = (i - StartIndex) / SampleRateHz
//
// and, when projecting from a discrete index, that index is treated as the
// half-open continuous interval of width 1/SampleRateHz starting there.
type DiscreteInfo struct {
	SampleRateHz ordinate.Ordinate
	StartIndex   int64
}

// ContinuousAt returns the continuous ordinate corresponding to sample index i.
func (d DiscreteInfo) ContinuousAt(i int64) ordinate.Ordinate {
	return ordinate.Int(i - d.StartIndex).Div(d.SampleRateHz)
}

// SampleInterval returns the half-open continuous interval of width
// 1/SampleRateHz that sample index i occupies.
func (d DiscreteInfo) SampleInterval(i int64) ordinate.ContinuousInterval {
	start := d.ContinuousAt(i)
	end := d.ContinuousAt(i + 1)
	if end.LessThan(start) {
		start, end = end, start
	}
	return ordinate.NewContinuousInterval(start, end)
}

// IndexAt returns the sample index whose half-open SampleInterval contains o.
func (d DiscreteInfo) IndexAt(o ordinate.Ordinate) int64 {
	scaled := o.Mul(d.SampleRateHz).ToFloat()
	return d.StartIndex + int64(math.Floor(scaled))
}

// DiscreteInfoFor returns the DiscreteInfo attached to ref's object, if that
// object/label combination carries one (Clip.Media or Timeline.Presentation),
// or nil otherwise.
func DiscreteInfoFor(ref SpaceReference) *DiscreteInfo {
	switch obj := ref.Object.(type) {
	case *Clip:
		if ref.Label == Media {
			return obj.DiscreteInfo
		}
	case *Timeline:
		if ref.Label == Presentation {
			return obj.DiscreteInfo
		}
	}
	return nil
}
