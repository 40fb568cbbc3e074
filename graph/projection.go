// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package graph

import (
	"math"

	"github.com/avalanche-io/coordgraph/composition"
	"github.com/avalanche-io/coordgraph/ordinate"
	"github.com/avalanche-io/coordgraph/topology"
)

// ProjectionOperator is the triple (source, destination, composed Topology)
// through which all projections between two spaces are evaluated.
type ProjectionOperator struct {
	Source      composition.SpaceReference
	Destination composition.SpaceReference
	Topology    topology.Topology
}

// BuildProjectionOperator composes the edge transforms along the tree path
// between src and dst into a single ProjectionOperator.
// Projection always walks from the shallower node to the deeper one; if src
// is deeper than dst, the walk is reversed and the accumulated topology is
// inverted before returning, failing if that inverse has more than one
// branch.
func BuildProjectionOperator(g *SpaceGraph, src, dst composition.SpaceReference) (*ProjectionOperator, error) {
	srcIdx, ok := g.IndexOf(src)
	if !ok {
		return nil, &SpaceNotInGraphError{Space: src}
	}
	dstIdx, ok := g.IndexOf(dst)
	if !ok {
		return nil, &SpaceNotInGraphError{Space: dst}
	}

	fromIdx, toIdx := srcIdx, dstIdx
	reversed := false
	if g.Code(srcIdx).Len() > g.Code(dstIdx).Len() {
		fromIdx, toIdx = dstIdx, srcIdx
		reversed = true
	}
	fromCode, toCode := g.Code(fromIdx), g.Code(toIdx)
	if !fromCode.IsPrefixOf(toCode) {
		return nil, &NoPathBetweenSpacesError{A: src, B: dst}
	}

	acc, err := g.composedTopology(fromIdx, toIdx)
	if err != nil {
		return nil, err
	}

	if !reversed {
		return &ProjectionOperator{Source: src, Destination: dst, Topology: acc}, nil
	}
	inv, err := acc.InvertedOne()
	if err != nil {
		return nil, err
	}
	return &ProjectionOperator{Source: src, Destination: dst, Topology: inv}, nil
}

// composedTopology returns the topology mapping node fromIdx's space to
// node toIdx's space, walking the tree path and memoizing the result in the
// graph's per-destination cache.
func (g *SpaceGraph) composedTopology(fromIdx, toIdx int) (topology.Topology, error) {
	if cached, ok := g.cacheLookup(fromIdx, toIdx); ok {
		return cached, nil
	}

	acc := topology.InfiniteIdentity()
	cur := fromIdx
	for cur != toIdx {
		bit, err := g.Code(cur).NextStepTowards(g.Code(toIdx))
		if err != nil {
			return topology.Topology{}, err
		}
		next, ok := g.tree.Child(cur, bit)
		if !ok {
			return topology.Topology{}, &NoPathBetweenSpacesError{A: g.Value(fromIdx), B: g.Value(toIdx)}
		}
		edge, err := g.edgeTransform(cur, bit)
		if err != nil {
			return topology.Topology{}, err
		}
		joined, err := topology.Join(acc, edge)
		if err != nil {
			return topology.Topology{}, err
		}
		acc = joined
		cur = next
	}

	g.cacheStore(fromIdx, toIdx, acc)
	return acc, nil
}

// ProjectInstantaneousCC evaluates the operator at a single source ordinate.
func (p *ProjectionOperator) ProjectInstantaneousCC(o ordinate.Ordinate) topology.ProjectionResult {
	return p.Topology.ProjectInstantaneous(o)
}

// ProjectInstantaneousCD projects o to a single destination sample index,
// using the DiscreteInfo attached to the destination space.
func (p *ProjectionOperator) ProjectInstantaneousCD(o ordinate.Ordinate) (int64, error) {
	di := composition.DiscreteInfoFor(p.Destination)
	if di == nil {
		return 0, &NoDiscreteInfoError{Space: p.Destination}
	}
	res := p.Topology.ProjectInstantaneous(o)
	if res.Kind != topology.ResultPoint {
		return 0, ErrOutOfBounds
	}
	return di.IndexAt(res.Point), nil
}

// ProjectRangeCC restricts the operator's topology to the source interval r.
func (p *ProjectionOperator) ProjectRangeCC(r ordinate.ContinuousInterval) (topology.Topology, error) {
	return topology.Join(topology.Identity(r), p.Topology)
}

// ProjectRangeCD walks the destination's continuous image of r at stride
// 1/rate, emitting one destination index per sample cell touched, in the
// order encountered as r is traversed start->end. The walk visits each
// segment of the restricted topology at its cut points: a monotone segment
// contributes every sample cell its image covers, in traversal direction,
// while a hold segment (zero scale) lingers on one cell and repeats its
// index once per destination sample period the hold lasts. Segments that
// project nothing are skipped so bulk walks continue past them.
func (p *ProjectionOperator) ProjectRangeCD(r ordinate.ContinuousInterval) ([]int64, error) {
	di := composition.DiscreteInfoFor(p.Destination)
	if di == nil {
		return nil, &NoDiscreteInfoError{Space: p.Destination}
	}
	restricted, err := p.ProjectRangeCC(r)
	if err != nil {
		return nil, err
	}

	var out []int64
	for _, m := range restricted.Mappings {
		ib := m.InputBounds()
		startRes := m.ProjectInstantaneous(ib.Start)
		endRes := m.ProjectInstantaneous(nudgeBefore(ib.End))
		if startRes.Kind != topology.ResultPoint || endRes.Kind != topology.ResultPoint {
			continue
		}

		if am, ok := m.(topology.AffineMapping); ok && am.Transform.IsDegenerate() {
			idx := di.IndexAt(startRes.Point)
			for k := holdPeriods(ib.Duration(), di.SampleRateHz); k > 0; k-- {
				out = append(out, idx)
			}
			continue
		}

		startIdx := di.IndexAt(startRes.Point)
		endIdx := di.IndexAt(endRes.Point)
		step := int64(1)
		if endIdx < startIdx {
			step = -1
		}
		// Adjacent segments meet at a shared cut point; don't emit the
		// seam cell twice.
		if len(out) > 0 && out[len(out)-1] == startIdx {
			if startIdx == endIdx {
				continue
			}
			startIdx += step
		}
		for i := startIdx; ; i += step {
			out = append(out, i)
			if i == endIdx {
				break
			}
		}
	}
	return out, nil
}

// holdPeriods returns how many destination sample periods a hold of the
// given source duration spans, at least one.
func holdPeriods(duration, rate ordinate.Ordinate) int64 {
	n := int64(math.Floor(duration.Mul(rate).ToFloat() + 1e-9))
	if n < 1 {
		return 1
	}
	return n
}

// ProjectIndexDD expands source index i to its half-open continuous interval
// (using the DiscreteInfo attached to the source space) and projects that
// range via ProjectRangeCD.
func (p *ProjectionOperator) ProjectIndexDD(i int64) ([]int64, error) {
	srcDi := composition.DiscreteInfoFor(p.Source)
	if srcDi == nil {
		return nil, &NoDiscreteInfoError{Space: p.Source}
	}
	cell := srcDi.SampleInterval(i)
	return p.ProjectRangeCD(cell)
}

// nudgeBefore returns an ordinate just below o, used to sample the
// mapping active just inside a half-open interval's exclusive end.
func nudgeBefore(o ordinate.Ordinate) ordinate.Ordinate {
	if o.IsInf() {
		return o
	}
	return ordinate.Float(o.ToFloat() - 1e-9)
}
