// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package graph

import (
	"sort"

	"github.com/avalanche-io/coordgraph/composition"
	"github.com/avalanche-io/coordgraph/ordinate"
	"github.com/avalanche-io/coordgraph/topology"
)

// BuilderMapping pairs one destination mapping with the leaf space it
// projects into.
type BuilderMapping struct {
	Destination composition.SpaceReference
	Mapping     topology.Mapping
}

// BuilderInterval is one slice of the source axis, annotated with the
// indices (into ProjectionBuilder.Mappings) of every destination mapping
// active across it. Bounds are half-open on the left: a mapping ending
// exactly at Bounds.Start is not active here.
type BuilderInterval struct {
	Bounds         ordinate.ContinuousInterval
	MappingIndices []int
}

// ProjectionBuilder is a precomputed decomposition of one source axis: the
// axis is partitioned into sorted, contiguous intervals, each carrying the
// set of destination mappings active on it. Point queries against
// individual destinations remain available through the graph's topology
// cache, which InitFrom fills as a side effect.
type ProjectionBuilder struct {
	Source    composition.SpaceReference
	Graph     *SpaceGraph
	Intervals []BuilderInterval
	Mappings  []BuilderMapping
}

// vertexKind distinguishes interval-start from interval-end events during
// the sweep.
type vertexKind int

const (
	vertexStart vertexKind = iota
	vertexEnd
)

type vertex struct {
	ordinate     ordinate.Ordinate
	kind         vertexKind
	mappingIndex int
}

// InitFrom enumerates every leaf space reachable from source, composes the
// source-to-leaf topology for each (through the graph's cache), and sweeps
// the collected mapping endpoints into the builder's interval table. Gap
// leaves are skipped: a gap projects nothing, so it contributes no
// destination mappings.
func InitFrom(g *SpaceGraph, source composition.SpaceReference) (*ProjectionBuilder, error) {
	srcIdx, ok := g.IndexOf(source)
	if !ok {
		return nil, &SpaceNotInGraphError{Space: source}
	}
	srcCode := g.Code(srcIdx)

	b := &ProjectionBuilder{Source: source, Graph: g}

	var vertices []vertex
	for idx := 0; idx < g.Len(); idx++ {
		if !g.IsLeaf(idx) || idx == srcIdx {
			continue
		}
		if !srcCode.IsPrefixOf(g.Code(idx)) {
			continue
		}
		ref := g.Value(idx)
		if _, isGap := ref.Object.(*composition.Gap); isGap {
			continue
		}
		topo, err := g.composedTopology(srcIdx, idx)
		if err == topology.ErrNoOverlap {
			continue
		}
		if err != nil {
			return nil, err
		}
		for _, m := range topo.Mappings {
			if _, isEmpty := m.(topology.EmptyMapping); isEmpty {
				continue
			}
			mi := len(b.Mappings)
			b.Mappings = append(b.Mappings, BuilderMapping{Destination: ref, Mapping: m})
			ib := m.InputBounds()
			vertices = append(vertices,
				vertex{ordinate: ib.Start, kind: vertexStart, mappingIndex: mi},
				vertex{ordinate: ib.End, kind: vertexEnd, mappingIndex: mi},
			)
		}
	}

	b.Intervals = sweepVertices(vertices, len(b.Mappings))
	return b, nil
}

// sweepVertices sorts the endpoint events, coalesces events at (epsilon-)
// equal ordinates into cut points, and sweeps left to right maintaining the
// active-mapping set. At each cut point, end events are applied before start
// events and the resulting set is recorded for the interval that begins
// there, so a mapping is active exactly on [start, end): one ending where
// another begins is active only on the left of the shared cut, the other
// only on the right.
func sweepVertices(vertices []vertex, mappingCount int) []BuilderInterval {
	if len(vertices) == 0 {
		return nil
	}
	sort.SliceStable(vertices, func(i, j int) bool {
		return vertices[i].ordinate.LessThan(vertices[j].ordinate)
	})

	type cutPoint struct {
		ordinate ordinate.Ordinate
		starts   []int
		ends     []int
	}
	var cuts []cutPoint
	for _, v := range vertices {
		if len(cuts) == 0 || !v.ordinate.AlmostEqual(cuts[len(cuts)-1].ordinate, 1e-9) {
			cuts = append(cuts, cutPoint{ordinate: v.ordinate})
		}
		c := &cuts[len(cuts)-1]
		if v.kind == vertexStart {
			c.starts = append(c.starts, v.mappingIndex)
		} else {
			c.ends = append(c.ends, v.mappingIndex)
		}
	}

	active := make([]bool, mappingCount)
	var intervals []BuilderInterval
	for i, c := range cuts {
		for _, mi := range c.ends {
			active[mi] = false
		}
		for _, mi := range c.starts {
			active[mi] = true
		}
		if i+1 >= len(cuts) {
			break
		}
		var snapshot []int
		for mi, on := range active {
			if on {
				snapshot = append(snapshot, mi)
			}
		}
		intervals = append(intervals, BuilderInterval{
			Bounds:         ordinate.NewContinuousInterval(c.ordinate, cuts[i+1].ordinate),
			MappingIndices: snapshot,
		})
	}
	return intervals
}

// ProjectionOperatorTo returns the operator projecting the builder's source
// space into dst, reusing the graph's topology cache.
func (b *ProjectionBuilder) ProjectionOperatorTo(dst composition.SpaceReference) (*ProjectionOperator, error) {
	return BuildProjectionOperator(b.Graph, b.Source, dst)
}

// ProjectionOperatorFromLeaky returns the operator projecting src (a space
// at or below the builder's source) back into the builder's source space.
// Unlike BuildProjectionOperator it tolerates a multi-branch inverse by
// keeping only the first branch, leaking the rest.
func (b *ProjectionBuilder) ProjectionOperatorFromLeaky(src composition.SpaceReference) (*ProjectionOperator, error) {
	srcIdx, ok := b.Graph.IndexOf(src)
	if !ok {
		return nil, &SpaceNotInGraphError{Space: src}
	}
	rootIdx, ok := b.Graph.IndexOf(b.Source)
	if !ok {
		return nil, &SpaceNotInGraphError{Space: b.Source}
	}
	if !b.Graph.Code(rootIdx).IsPrefixOf(b.Graph.Code(srcIdx)) {
		return nil, &NoPathBetweenSpacesError{A: b.Source, B: src}
	}
	forward, err := b.Graph.composedTopology(rootIdx, srcIdx)
	if err != nil {
		return nil, err
	}
	branches, err := forward.Inverted()
	if err != nil {
		return nil, err
	}
	if len(branches) == 0 {
		return nil, topology.ErrNoOverlap
	}
	return &ProjectionOperator{Source: src, Destination: b.Source, Topology: branches[0]}, nil
}
