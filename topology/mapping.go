// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package topology

import (
	"math"

	"github.com/avalanche-io/coordgraph/ordinate"
)

// ResultKind distinguishes the possible shapes of a projection result.
type ResultKind int

const (
	// ResultPoint indicates the projection produced a single ordinate.
	ResultPoint ResultKind = iota
	// ResultInterval indicates the projection produced a range (the segment
	// is non-injective over the queried point).
	ResultInterval
	// ResultOutOfBounds indicates the queried ordinate lies outside every
	// mapping's input bounds.
	ResultOutOfBounds
)

// ProjectionResult is the result of an instantaneous projection.
type ProjectionResult struct {
	Kind     ResultKind
	Point    ordinate.Ordinate
	Interval ordinate.ContinuousInterval
}

// PointResult builds a ResultPoint.
func PointResult(o ordinate.Ordinate) ProjectionResult {
	return ProjectionResult{Kind: ResultPoint, Point: o}
}

// OutOfBoundsResult builds a ResultOutOfBounds.
func OutOfBoundsResult() ProjectionResult {
	return ProjectionResult{Kind: ResultOutOfBounds}
}

// Mapping is a single piece of a Topology: an input-bounds interval plus the
// input->output function defined there. The four variants (empty, affine,
// linear-monotonic, bezier) are the only implementations of this interface;
// it is sealed via the unexported mappingSealed method.
type Mapping interface {
	// Kind returns a short name for the variant, used in error messages.
	Kind() string
	// InputBounds returns the domain this mapping is defined over.
	InputBounds() ordinate.ContinuousInterval
	// OutputBounds returns the image of InputBounds under this mapping.
	OutputBounds() ordinate.ContinuousInterval
	// ProjectInstantaneous evaluates the mapping at o, which must lie in
	// InputBounds (callers check bounds before calling).
	ProjectInstantaneous(o ordinate.Ordinate) ProjectionResult
	// Inverted returns 0..N mappings forming the partial inverse, one per
	// maximal monotone run.
	Inverted() []Mapping
	// Clone returns a deep, independent copy.
	Clone() Mapping

	mappingSealed()
}

// -- empty --------------------------------------------------------------

// EmptyMapping projects nothing; it has no domain.
type EmptyMapping struct {
	Bounds ordinate.ContinuousInterval
}

func (EmptyMapping) Kind() string { return "empty" }

func (e EmptyMapping) InputBounds() ordinate.ContinuousInterval  { return e.Bounds }
func (e EmptyMapping) OutputBounds() ordinate.ContinuousInterval { return ordinate.Empty }

func (e EmptyMapping) ProjectInstantaneous(ordinate.Ordinate) ProjectionResult {
	return OutOfBoundsResult()
}

func (e EmptyMapping) Inverted() []Mapping { return nil }

func (e EmptyMapping) Clone() Mapping { return EmptyMapping{Bounds: e.Bounds} }

func (EmptyMapping) mappingSealed() {}

// -- affine ---------------------------------------------------------------

// AffineMapping is output = Transform.Apply(input), defined on Bounds.
type AffineMapping struct {
	Bounds    ordinate.ContinuousInterval
	Transform AffineTransform1D
}

func (AffineMapping) Kind() string { return "affine" }

func (a AffineMapping) InputBounds() ordinate.ContinuousInterval { return a.Bounds }

func (a AffineMapping) OutputBounds() ordinate.ContinuousInterval {
	p0 := a.Transform.Apply(a.Bounds.Start)
	p1 := a.Transform.Apply(a.Bounds.End)
	return ordinate.NewContinuousInterval(ordinate.Min(p0, p1), ordinate.Max(p0, p1))
}

func (a AffineMapping) ProjectInstantaneous(o ordinate.Ordinate) ProjectionResult {
	if !a.Bounds.Contains(o) {
		return OutOfBoundsResult()
	}
	return PointResult(a.Transform.Apply(o))
}

func (a AffineMapping) Inverted() []Mapping {
	if a.Transform.IsDegenerate() {
		// A degenerate (zero-scale) affine maps its whole domain to a
		// single output point; it has no well-defined inverse function.
		return nil
	}
	inv := a.Transform.Inverted()
	return []Mapping{AffineMapping{Bounds: a.OutputBounds(), Transform: inv}}
}

func (a AffineMapping) Clone() Mapping { return a }

func (AffineMapping) mappingSealed() {}

// -- linear-monotonic -------------------------------------------------------

// Knot is one vertex of a piecewise-linear curve.
type Knot struct {
	In  ordinate.Ordinate
	Out ordinate.Ordinate
}

// LinearMapping is a piecewise-linear interpolation between Knots, whose Out
// values are strictly monotone (increasing or decreasing).
type LinearMapping struct {
	Knots []Knot
}

func (LinearMapping) Kind() string { return "linear" }

func (l LinearMapping) InputBounds() ordinate.ContinuousInterval {
	return ordinate.NewContinuousInterval(l.Knots[0].In, l.Knots[len(l.Knots)-1].In)
}

func (l LinearMapping) OutputBounds() ordinate.ContinuousInterval {
	first, last := l.Knots[0].Out, l.Knots[len(l.Knots)-1].Out
	return ordinate.NewContinuousInterval(ordinate.Min(first, last), ordinate.Max(first, last))
}

// increasing returns whether Out values rise with In.
func (l LinearMapping) increasing() bool {
	return l.Knots[len(l.Knots)-1].Out.GreaterThanOrEqual(l.Knots[0].Out)
}

func (l LinearMapping) ProjectInstantaneous(o ordinate.Ordinate) ProjectionResult {
	if !l.InputBounds().Contains(o) && !o.Equal(l.Knots[len(l.Knots)-1].In) {
		return OutOfBoundsResult()
	}
	for i := 0; i < len(l.Knots)-1; i++ {
		a, b := l.Knots[i], l.Knots[i+1]
		if o.GreaterThanOrEqual(a.In) && (o.LessThan(b.In) || (i == len(l.Knots)-2 && o.Equal(b.In))) {
			return PointResult(interpolate(a, b, o))
		}
	}
	return OutOfBoundsResult()
}

func interpolate(a, b Knot, o ordinate.Ordinate) ordinate.Ordinate {
	span := b.In.Sub(a.In)
	if span.Equal(ordinate.ZERO) {
		return a.Out
	}
	frac := o.Sub(a.In).Div(span)
	return a.Out.Add(frac.Mul(b.Out.Sub(a.Out)))
}

func (l LinearMapping) Inverted() []Mapping {
	knots := make([]Knot, len(l.Knots))
	for i, k := range l.Knots {
		knots[i] = Knot{In: k.Out, Out: k.In}
	}
	if !l.increasing() {
		for i, j := 0, len(knots)-1; i < j; i, j = i+1, j-1 {
			knots[i], knots[j] = knots[j], knots[i]
		}
	}
	return []Mapping{LinearMapping{Knots: knots}}
}

func (l LinearMapping) Clone() Mapping {
	knots := make([]Knot, len(l.Knots))
	copy(knots, l.Knots)
	return LinearMapping{Knots: knots}
}

func (LinearMapping) mappingSealed() {}

// -- cubic bezier -----------------------------------------------------------

// Point2D is a point in (in, out) space.
type Point2D struct {
	In  ordinate.Ordinate
	Out ordinate.Ordinate
}

// CubicBezierSegment is one cubic Bezier piece, parameterized by t in [0,1].
// P0.In must be <= P3.In (the curve is monotone in In, i.e. a valid function
// graph); it need not be monotone in Out.
type CubicBezierSegment struct {
	P0, P1, P2, P3 Point2D
}

func bernstein(t float64) (b0, b1, b2, b3 float64) {
	mt := 1 - t
	b0 = mt * mt * mt
	b1 = 3 * mt * mt * t
	b2 = 3 * mt * t * t
	b3 = t * t * t
	return
}

// Evaluate returns the (in, out) point at parameter t.
func (s CubicBezierSegment) Evaluate(t float64) Point2D {
	b0, b1, b2, b3 := bernstein(t)
	in := s.P0.In.ToFloat()*b0 + s.P1.In.ToFloat()*b1 + s.P2.In.ToFloat()*b2 + s.P3.In.ToFloat()*b3
	out := s.P0.Out.ToFloat()*b0 + s.P1.Out.ToFloat()*b1 + s.P2.Out.ToFloat()*b2 + s.P3.Out.ToFloat()*b3
	return Point2D{In: ordinate.Float(in), Out: ordinate.Float(out)}
}

// inputBounds returns the [P0.In, P3.In] range of this segment.
func (s CubicBezierSegment) inputBounds() ordinate.ContinuousInterval {
	return ordinate.NewContinuousInterval(s.P0.In, s.P3.In)
}

// solveT finds the parameter t in [0,1] such that Evaluate(t).In == in, via
// bisection. Assumes the In coordinate is monotone non-decreasing in t, which
// is required for a segment to be a valid function graph.
func (s CubicBezierSegment) solveT(in ordinate.Ordinate) float64 {
	target := in.ToFloat()
	if target <= s.P0.In.ToFloat() {
		return 0
	}
	if target >= s.P3.In.ToFloat() {
		return 1
	}
	lo, hi := 0.0, 1.0
	for i := 0; i < 60; i++ {
		mid := (lo + hi) / 2
		v := s.Evaluate(mid).In.ToFloat()
		if v < target {
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2
}

// derivativeRootsOut returns the t values in (0,1) where the Out-coordinate's
// derivative is zero (horizontal tangents), found analytically from the
// quadratic derivative of the cubic Bezier in Bernstein form.
func (s CubicBezierSegment) derivativeRootsOut() []float64 {
	// d/dt Out(t) = 3(1-t)^2 (P1-P0) + 6(1-t)t (P2-P1) + 3t^2 (P3-P2), coefficients in out only.
	o0, o1, o2, o3 := s.P0.Out.ToFloat(), s.P1.Out.ToFloat(), s.P2.Out.ToFloat(), s.P3.Out.ToFloat()
	a := 3 * ((o3 - 3*o2 + 3*o1 - o0))
	b := 6 * (o2 - 2*o1 + o0)
	c := 3 * (o1 - o0)
	var roots []float64
	if math.Abs(a) < 1e-12 {
		if math.Abs(b) > 1e-12 {
			t := -c / b
			if t > 0 && t < 1 {
				roots = append(roots, t)
			}
		}
		return roots
	}
	disc := b*b - 4*a*c
	if disc < 0 {
		return roots
	}
	sq := math.Sqrt(disc)
	for _, t := range []float64{(-b + sq) / (2 * a), (-b - sq) / (2 * a)} {
		if t > 1e-9 && t < 1-1e-9 {
			roots = append(roots, t)
		}
	}
	if len(roots) == 2 && roots[0] > roots[1] {
		roots[0], roots[1] = roots[1], roots[0]
	}
	return roots
}

// BezierMapping is one or more cubic Bezier segments in (in,out) space,
// contiguous in In, possibly non-monotone in Out.
type BezierMapping struct {
	Segments []CubicBezierSegment
}

func (BezierMapping) Kind() string { return "bezier" }

func (b BezierMapping) InputBounds() ordinate.ContinuousInterval {
	return ordinate.NewContinuousInterval(b.Segments[0].P0.In, b.Segments[len(b.Segments)-1].P3.In)
}

func (b BezierMapping) OutputBounds() ordinate.ContinuousInterval {
	result := ordinate.NewContinuousInterval(b.Segments[0].P0.Out, b.Segments[0].P0.Out)
	const samplesPerSegment = 32
	for _, seg := range b.Segments {
		for i := 0; i <= samplesPerSegment; i++ {
			t := float64(i) / samplesPerSegment
			p := seg.Evaluate(t)
			result = result.Extend(ordinate.NewContinuousInterval(p.Out, p.Out))
		}
	}
	return result
}

func (b BezierMapping) ProjectInstantaneous(o ordinate.Ordinate) ProjectionResult {
	bounds := b.InputBounds()
	if !bounds.Contains(o) && !o.Equal(bounds.End) {
		return OutOfBoundsResult()
	}
	for i, seg := range b.Segments {
		sb := seg.inputBounds()
		last := i == len(b.Segments)-1
		if sb.Contains(o) || (last && o.Equal(sb.End)) {
			t := seg.solveT(o)
			return PointResult(seg.Evaluate(t).Out)
		}
	}
	return OutOfBoundsResult()
}

// monotoneRuns splits the sequence of segments at horizontal-tangent points
// (where Out's derivative changes sign), returning one BezierMapping per
// maximal run in which Out is monotone.
func (b BezierMapping) monotoneRuns() []BezierMapping {
	var runs []BezierMapping
	var current []CubicBezierSegment

	for _, seg := range b.Segments {
		roots := seg.derivativeRootsOut()
		if len(roots) == 0 {
			current = append(current, seg)
			continue
		}
		prev := 0.0
		left := seg
		for _, r := range roots {
			a, b2 := splitBezierAt(left, (r-prev)/(1-prev))
			current = append(current, a)
			runs = append(runs, BezierMapping{Segments: current})
			current = nil
			left = b2
			prev = r
		}
		current = append(current, left)
	}
	if len(current) > 0 {
		runs = append(runs, BezierMapping{Segments: current})
	}
	return runs
}

// splitBezierAt splits a cubic Bezier segment at parameter t (de Casteljau),
// returning the two resulting sub-segments.
func splitBezierAt(s CubicBezierSegment, t float64) (CubicBezierSegment, CubicBezierSegment) {
	lerp := func(a, b Point2D, t float64) Point2D {
		return Point2D{
			In:  ordinate.Float(a.In.ToFloat()*(1-t) + b.In.ToFloat()*t),
			Out: ordinate.Float(a.Out.ToFloat()*(1-t) + b.Out.ToFloat()*t),
		}
	}
	p01 := lerp(s.P0, s.P1, t)
	p12 := lerp(s.P1, s.P2, t)
	p23 := lerp(s.P2, s.P3, t)
	p012 := lerp(p01, p12, t)
	p123 := lerp(p12, p23, t)
	p0123 := lerp(p012, p123, t)

	left := CubicBezierSegment{P0: s.P0, P1: p01, P2: p012, P3: p0123}
	right := CubicBezierSegment{P0: p0123, P1: p123, P2: p23, P3: s.P3}
	return left, right
}

func (b BezierMapping) Inverted() []Mapping {
	runs := b.monotoneRuns()
	result := make([]Mapping, 0, len(runs))
	for _, run := range runs {
		swapped := make([]CubicBezierSegment, len(run.Segments))
		for i, seg := range run.Segments {
			swap := func(p Point2D) Point2D { return Point2D{In: p.Out, Out: p.In} }
			swapped[i] = CubicBezierSegment{
				P0: swap(seg.P0), P1: swap(seg.P1), P2: swap(seg.P2), P3: swap(seg.P3),
			}
		}
		// Swapping in/out may have reversed the In-monotonic order; if so,
		// reverse the segment order and each segment's control points.
		if swapped[0].P0.In.GreaterThan(swapped[len(swapped)-1].P3.In) {
			for i, j := 0, len(swapped)-1; i < j; i, j = i+1, j-1 {
				swapped[i], swapped[j] = swapped[j], swapped[i]
			}
			for i, seg := range swapped {
				swapped[i] = CubicBezierSegment{P0: seg.P3, P1: seg.P2, P2: seg.P1, P3: seg.P0}
			}
		}
		result = append(result, BezierMapping{Segments: swapped})
	}
	return result
}

func (b BezierMapping) Clone() Mapping {
	segs := make([]CubicBezierSegment, len(b.Segments))
	copy(segs, b.Segments)
	return BezierMapping{Segments: segs}
}

func (BezierMapping) mappingSealed() {}

