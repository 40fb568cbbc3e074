// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package topology

import (
	"sort"

	"github.com/avalanche-io/coordgraph/ordinate"
)

// Join composes two topologies: a maps X->Y, b maps Y->Z, and the result
// maps X->Z by evaluating b(a(x)). The result covers exactly the X values
// that lie in a's input bounds and whose image under a lies in b's input
// bounds. Affine-affine pairs compose exactly; an affine on either side of
// a linear or bezier piece composes exactly into a piece of the non-affine
// kind; the remaining pairs (linear/bezier against linear/bezier) are
// resolved by sampling into a piecewise-linear approximation, since their
// exact composite is a polynomial of higher degree than any Mapping kind
// can carry.
func Join(a, b Topology) (Topology, error) {
	if a.IsEmpty() || b.IsEmpty() {
		return Empty(), ErrNoOverlap
	}

	an := normalizeMonotone(a)
	bn := normalizeMonotone(b)

	// A degenerate (zero-scale) piece has an empty half-open output
	// interval yet still projects its whole domain, so an empty overlap
	// here is not by itself proof of disjointness; the per-piece probe
	// below settles it.
	overlap := an.OutputBounds().Intersect(bn.InputBounds())

	breaks := collectJoinBreakpoints(an, bn, overlap)
	if len(breaks) < 2 {
		return Empty(), ErrNoOverlap
	}

	var mappings []Mapping
	for i := 0; i+1 < len(breaks); i++ {
		lo, hi := breaks[i], breaks[i+1]
		if !lo.LessThan(hi) {
			continue
		}
		mid := midpoint(lo, hi)
		aIdx := an.mappingAt(mid)
		if aIdx < 0 {
			continue
		}
		aSeg := an.Mappings[aIdx]
		if _, isEmpty := aSeg.(EmptyMapping); isEmpty {
			continue
		}
		ySample := evalPoint(aSeg, mid)
		bIdx := bn.mappingAt(ySample)
		if bIdx < 0 {
			continue
		}
		bSeg := bn.Mappings[bIdx]
		if _, isEmpty := bSeg.(EmptyMapping); isEmpty {
			continue
		}
		mappings = append(mappings, composePiece(aSeg, lo, hi, bSeg))
	}
	if len(mappings) == 0 {
		return Empty(), ErrNoOverlap
	}
	return Topology{Mappings: mergeAdjacentAffine(mappings)}, nil
}

// ComposeMappings composes two individual mappings, a then b, into the
// topology evaluating b(a(x)). The composite may need several pieces (and
// so cannot itself be a single Mapping) whenever a's image straddles b's
// bounds or a non-monotone piece is split.
func ComposeMappings(a, b Mapping) (Topology, error) {
	return Join(Topology{Mappings: []Mapping{a}}, Topology{Mappings: []Mapping{b}})
}

// normalizeMonotone splits every non-monotone BezierMapping in t at its
// horizontal tangents so that each resulting piece is monotone in Out,
// leaving every other piece untouched.
func normalizeMonotone(t Topology) Topology {
	out := make([]Mapping, 0, len(t.Mappings))
	for _, m := range t.Mappings {
		if bm, ok := m.(BezierMapping); ok {
			for _, run := range bm.monotoneRuns() {
				out = append(out, run)
			}
			continue
		}
		out = append(out, m.Clone())
	}
	return Topology{Mappings: out}
}

// evalPoint evaluates m at x, clamping x to m's bounds first so that
// endpoint queries never report out-of-bounds.
func evalPoint(m Mapping, x ordinate.Ordinate) ordinate.Ordinate {
	b := m.InputBounds()
	clamped := clampTo(b, x)
	if am, ok := m.(AffineMapping); ok {
		// AffineMapping.ProjectInstantaneous excludes its end; the
		// transform itself is defined there.
		return am.Transform.Apply(clamped)
	}
	res := m.ProjectInstantaneous(clamped)
	if res.Kind == ResultPoint {
		return res.Point
	}
	return ordinate.ZERO
}

// midpoint picks a probe point strictly inside [lo, hi], stepping one unit
// in from a finite endpoint when the other is infinite (the naive average
// of opposite infinities is NaN).
func midpoint(lo, hi ordinate.Ordinate) ordinate.Ordinate {
	switch {
	case lo.IsInf() && hi.IsInf():
		return ordinate.ZERO
	case lo.IsInf():
		return hi.Sub(ordinate.ONE)
	case hi.IsInf():
		return lo.Add(ordinate.ONE)
	default:
		return lo.Add(hi).Div(ordinate.Int(2))
	}
}

func clampTo(b ordinate.ContinuousInterval, o ordinate.Ordinate) ordinate.Ordinate {
	if o.LessThan(b.Start) {
		return b.Start
	}
	if o.GreaterThan(b.End) {
		return b.End
	}
	return o
}

// preimage returns an x in aSeg's bounds whose image under aSeg is y, for
// monotone segment kinds.
func preimage(aSeg Mapping, y ordinate.Ordinate) ordinate.Ordinate {
	switch mm := aSeg.(type) {
	case AffineMapping:
		if mm.Transform.IsDegenerate() {
			return mm.Bounds.Start
		}
		return clampTo(mm.Bounds, mm.Transform.Inverted().Apply(y))
	case LinearMapping:
		inv := mm.Inverted()[0].(LinearMapping)
		return clampTo(mm.InputBounds(), evalPoint(inv, clampTo(inv.InputBounds(), y)))
	case BezierMapping:
		invs := mm.Inverted()
		if len(invs) != 1 {
			return y
		}
		inv := invs[0]
		return clampTo(mm.InputBounds(), evalPoint(inv, clampTo(inv.InputBounds(), y)))
	default:
		return y
	}
}

// collectJoinBreakpoints gathers the sorted, deduplicated set of X
// breakpoints at which either an's own mapping boundaries fall, or at which
// a's image crosses one of bn's mapping boundaries.
func collectJoinBreakpoints(an, bn Topology, overlap ordinate.ContinuousInterval) []ordinate.Ordinate {
	var breaks []ordinate.Ordinate
	for _, am := range an.Mappings {
		ib := am.InputBounds()
		breaks = append(breaks, ib.Start, ib.End)
	}
	for _, am := range an.Mappings {
		ob := am.OutputBounds().Intersect(overlap)
		if ob.IsEmpty() {
			continue
		}
		for _, bm := range bn.Mappings {
			bb := bm.InputBounds().Intersect(ob)
			if bb.IsEmpty() {
				continue
			}
			breaks = append(breaks, preimage(am, bb.Start), preimage(am, bb.End))
		}
	}

	domain := an.InputBounds()
	filtered := breaks[:0]
	for _, b := range breaks {
		if b.GreaterThanOrEqual(domain.Start) && b.LessThanOrEqual(domain.End) {
			filtered = append(filtered, b)
		}
	}
	breaks = filtered
	sort.Slice(breaks, func(i, j int) bool { return breaks[i].LessThan(breaks[j]) })

	out := breaks[:0]
	for i, b := range breaks {
		if i == 0 || !b.AlmostEqual(out[len(out)-1], 1e-9) {
			out = append(out, b)
		}
	}
	return out
}

// composePiece builds the mapping for b(a(x)) restricted to x in [lo, hi],
// where aSeg and bSeg are the (already normalized, monotone) pieces active
// across that range.
func composePiece(aSeg Mapping, lo, hi ordinate.Ordinate, bSeg Mapping) Mapping {
	bounds := ordinate.NewContinuousInterval(lo, hi)

	switch inner := aSeg.(type) {
	case AffineMapping:
		if inner.Transform.IsDegenerate() {
			// The whole piece maps to a single Y, so the composite is the
			// constant b(a(lo)).
			out := evalPoint(bSeg, clampTo(bSeg.InputBounds(), inner.Transform.Apply(lo)))
			return AffineMapping{Bounds: bounds, Transform: AffineTransform1D{Scale: ordinate.ZERO, Offset: out}}
		}
		switch outer := bSeg.(type) {
		case AffineMapping:
			return AffineMapping{Bounds: bounds, Transform: inner.Transform.Compose(outer.Transform)}
		case LinearMapping:
			return composeAffineLinear(inner, bounds, outer)
		case BezierMapping:
			return composeAffineBezier(inner, bounds, outer)
		}
	case LinearMapping:
		if outer, ok := bSeg.(AffineMapping); ok {
			return composeLinearAffine(inner, bounds, outer)
		}
	case BezierMapping:
		if outer, ok := bSeg.(AffineMapping); ok {
			return composeBezierAffine(inner, bounds, outer)
		}
	}

	return sampleComposite(aSeg, lo, hi, bSeg)
}

// composeAffineLinear composes an inner affine with an outer piecewise-linear
// mapping exactly: each outer knot pulls back through the affine's inverse.
func composeAffineLinear(inner AffineMapping, bounds ordinate.ContinuousInterval, outer LinearMapping) Mapping {
	lo, hi := bounds.Start, bounds.End
	inv := inner.Transform.Inverted()
	knots := []Knot{{In: lo, Out: evalPoint(outer, clampTo(outer.InputBounds(), inner.Transform.Apply(lo)))}}
	var interior []Knot
	for _, k := range outer.Knots {
		x := inv.Apply(k.In)
		if x.GreaterThan(lo) && x.LessThan(hi) {
			interior = append(interior, Knot{In: x, Out: k.Out})
		}
	}
	sort.Slice(interior, func(i, j int) bool { return interior[i].In.LessThan(interior[j].In) })
	knots = append(knots, interior...)
	knots = append(knots, Knot{In: hi, Out: evalPoint(outer, clampTo(outer.InputBounds(), inner.Transform.Apply(hi)))})
	return LinearMapping{Knots: knots}
}

// composeLinearAffine composes an inner piecewise-linear mapping with an
// outer affine exactly: the knots keep their In values and push their Out
// values through the affine.
func composeLinearAffine(inner LinearMapping, bounds ordinate.ContinuousInterval, outer AffineMapping) Mapping {
	lo, hi := bounds.Start, bounds.End
	knots := []Knot{{In: lo, Out: outer.Transform.Apply(evalPoint(inner, lo))}}
	for _, k := range inner.Knots {
		if k.In.GreaterThan(lo) && k.In.LessThan(hi) {
			knots = append(knots, Knot{In: k.In, Out: outer.Transform.Apply(k.Out)})
		}
	}
	knots = append(knots, Knot{In: hi, Out: outer.Transform.Apply(evalPoint(inner, hi))})
	return LinearMapping{Knots: knots}
}

// composeAffineBezier composes an inner affine with an outer bezier exactly:
// the outer curve is cropped to the image of [lo, hi] and its control
// points' In coordinates pull back through the affine's inverse. A negative
// inner scale reverses the curve's In orientation, so the segments are
// re-reversed afterwards to restore increasing In order.
func composeAffineBezier(inner AffineMapping, bounds ordinate.ContinuousInterval, outer BezierMapping) Mapping {
	yLo := inner.Transform.Apply(bounds.Start)
	yHi := inner.Transform.Apply(bounds.End)
	cropped := cropBezier(outer, ordinate.Min(yLo, yHi), ordinate.Max(yLo, yHi))
	if len(cropped.Segments) == 0 {
		return sampleComposite(inner, bounds.Start, bounds.End, outer)
	}
	inv := inner.Transform.Inverted()
	segs := make([]CubicBezierSegment, len(cropped.Segments))
	pull := func(p Point2D) Point2D { return Point2D{In: inv.Apply(p.In), Out: p.Out} }
	for i, seg := range cropped.Segments {
		segs[i] = CubicBezierSegment{P0: pull(seg.P0), P1: pull(seg.P1), P2: pull(seg.P2), P3: pull(seg.P3)}
	}
	if segs[0].P0.In.GreaterThan(segs[len(segs)-1].P3.In) {
		for i, j := 0, len(segs)-1; i < j; i, j = i+1, j-1 {
			segs[i], segs[j] = segs[j], segs[i]
		}
		for i, seg := range segs {
			segs[i] = CubicBezierSegment{P0: seg.P3, P1: seg.P2, P2: seg.P1, P3: seg.P0}
		}
	}
	return BezierMapping{Segments: segs}
}

// composeBezierAffine composes an inner bezier with an outer affine exactly:
// the inner curve is cropped to [lo, hi] and its control points' Out
// coordinates push through the affine.
func composeBezierAffine(inner BezierMapping, bounds ordinate.ContinuousInterval, outer AffineMapping) Mapping {
	cropped := cropBezier(inner, bounds.Start, bounds.End)
	if len(cropped.Segments) == 0 {
		return sampleComposite(inner, bounds.Start, bounds.End, outer)
	}
	segs := make([]CubicBezierSegment, len(cropped.Segments))
	push := func(p Point2D) Point2D { return Point2D{In: p.In, Out: outer.Transform.Apply(p.Out)} }
	for i, seg := range cropped.Segments {
		segs[i] = CubicBezierSegment{P0: push(seg.P0), P1: push(seg.P1), P2: push(seg.P2), P3: push(seg.P3)}
	}
	return BezierMapping{Segments: segs}
}

// cropBezier restricts b to the In-range [lo, hi], splitting boundary
// segments at the parameters that land on lo and hi.
func cropBezier(b BezierMapping, lo, hi ordinate.Ordinate) BezierMapping {
	var segs []CubicBezierSegment
	for _, seg := range b.Segments {
		sb := seg.inputBounds()
		start := ordinate.Max(sb.Start, lo)
		end := ordinate.Min(sb.End, hi)
		if !start.LessThan(end) {
			continue
		}
		piece := seg
		if start.GreaterThan(sb.Start) {
			t0 := piece.solveT(start)
			if t0 > 1e-9 {
				_, piece = splitBezierAt(piece, t0)
			}
		}
		if end.LessThan(sb.End) {
			span := piece.P3.In.Sub(piece.P0.In)
			if !span.Equal(ordinate.ZERO) {
				t1 := piece.solveT(end)
				if t1 < 1-1e-9 {
					piece, _ = splitBezierAt(piece, t1)
				}
			}
		}
		segs = append(segs, piece)
	}
	return BezierMapping{Segments: segs}
}

// sampleComposite resolves a composition with no closed form by sampling
// b(a(x)) into a piecewise-linear mapping over [lo, hi].
func sampleComposite(aSeg Mapping, lo, hi ordinate.Ordinate, bSeg Mapping) Mapping {
	const samples = 8
	knots := make([]Knot, 0, samples+1)
	for i := 0; i <= samples; i++ {
		frac := ordinate.Float(float64(i) / float64(samples))
		x := lo.Add(frac.Mul(hi.Sub(lo)))
		y := evalPoint(aSeg, x)
		z := evalPoint(bSeg, clampTo(bSeg.InputBounds(), y))
		knots = append(knots, Knot{In: x, Out: z})
	}
	return LinearMapping{Knots: knots}
}

// mergeAdjacentAffine collapses consecutive AffineMapping pieces that share
// an identical transform into one, keeping the output tidy.
func mergeAdjacentAffine(mappings []Mapping) []Mapping {
	if len(mappings) == 0 {
		return mappings
	}
	out := make([]Mapping, 0, len(mappings))
	out = append(out, mappings[0])
	for _, m := range mappings[1:] {
		last := out[len(out)-1]
		lastAffine, lastOK := last.(AffineMapping)
		curAffine, curOK := m.(AffineMapping)
		if lastOK && curOK && lastAffine.Transform.Equal(curAffine.Transform) {
			out[len(out)-1] = AffineMapping{
				Bounds:    ordinate.NewContinuousInterval(lastAffine.Bounds.Start, curAffine.Bounds.End),
				Transform: lastAffine.Transform,
			}
			continue
		}
		out = append(out, m)
	}
	return out
}
