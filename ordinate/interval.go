// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package ordinate

import "fmt"

// ContinuousInterval is a half-open interval [Start, End) on the temporal axis.
type ContinuousInterval struct {
	Start Ordinate
	End   Ordinate
}

// NewContinuousInterval creates an interval, which must satisfy start <= end.
func NewContinuousInterval(start, end Ordinate) ContinuousInterval {
	return ContinuousInterval{Start: start, End: end}
}

// Empty is the canonical empty interval {0,0}.
var Empty = ContinuousInterval{Start: ZERO, End: ZERO}

// Infinite is the interval spanning the entire axis, (-inf, +inf).
var Infinite = ContinuousInterval{Start: NegInf, End: INF}

// IsEmpty returns whether the interval has zero duration.
func (ci ContinuousInterval) IsEmpty() bool {
	return ci.Start.Equal(ci.End)
}

// Duration returns End - Start.
func (ci ContinuousInterval) Duration() Ordinate {
	return ci.End.Sub(ci.Start)
}

// Contains returns whether o lies in [Start, End).
func (ci ContinuousInterval) Contains(o Ordinate) bool {
	return ci.Start.LessThanOrEqual(o) && o.LessThan(ci.End)
}

// ContainsInterval returns whether ci fully contains other.
func (ci ContinuousInterval) ContainsInterval(other ContinuousInterval) bool {
	return ci.Start.LessThanOrEqual(other.Start) && other.End.LessThanOrEqual(ci.End)
}

// Extend returns the tightest interval containing both ci and other.
func (ci ContinuousInterval) Extend(other ContinuousInterval) ContinuousInterval {
	return ContinuousInterval{
		Start: Min(ci.Start, other.Start),
		End:   Max(ci.End, other.End),
	}
}

// Intersect returns the intersection of ci and other. If they do not
// overlap the result is empty (Start == End) positioned at the later start.
func (ci ContinuousInterval) Intersect(other ContinuousInterval) ContinuousInterval {
	start := Max(ci.Start, other.Start)
	end := Min(ci.End, other.End)
	if end.LessThan(start) {
		end = start
	}
	return ContinuousInterval{Start: start, End: end}
}

// Overlaps returns whether ci and other share any point.
func (ci ContinuousInterval) Overlaps(other ContinuousInterval) bool {
	return ci.Start.LessThan(other.End) && other.Start.LessThan(ci.End)
}

// Equal returns whether ci and other have the same bounds.
func (ci ContinuousInterval) Equal(other ContinuousInterval) bool {
	return ci.Start.Equal(other.Start) && ci.End.Equal(other.End)
}

// String returns a human-readable representation.
func (ci ContinuousInterval) String() string {
	return fmt.Sprintf("[%s, %s)", ci.Start, ci.End)
}
