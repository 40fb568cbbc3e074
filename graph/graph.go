// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

// Package graph builds the topological space graph from a composition tree,
// resolves the elementary transform carried by each graph edge, and composes
// edge transforms along tree paths into ProjectionOperators and the
// ProjectionBuilder interval-sweep acceleration structure.
package graph

import (
	"fmt"
	"sync"

	"github.com/avalanche-io/coordgraph/composition"
	"github.com/avalanche-io/coordgraph/topology"
	"github.com/avalanche-io/coordgraph/treecode"
)

// SpaceGraph is a treecode.BinaryTree of composition.SpaceReference nodes,
// plus a per-destination topology cache.
type SpaceGraph struct {
	tree *treecode.BinaryTree[composition.SpaceReference]

	cacheMu sync.Mutex
	cache   map[[2]int]topology.Topology
}

// BuildSpaceGraph walks root depth-first and places every coordinate space
// it exposes, recursively, into a frozen SpaceGraph.
func BuildSpaceGraph(root composition.Composable) (*SpaceGraph, error) {
	g := &SpaceGraph{
		tree:  treecode.NewBinaryTree[composition.SpaceReference](),
		cache: make(map[[2]int]topology.Topology),
	}
	if err := g.place(root, -1, 0); err != nil {
		return nil, err
	}
	g.tree.Lock()
	return g, nil
}

// place inserts obj's chain of internal spaces and, for each
// child in container order, a child-slot node chained off the previous slot
// (or off the deepest internal space, for the first child), with the child
// object's own subtree anchored one left-step beneath its slot.
//
// If parentIdx < 0, obj's first internal space becomes the graph root;
// otherwise it is inserted as the bit-th child of parentIdx.
func (g *SpaceGraph) place(obj composition.Composable, parentIdx, bit int) error {
	spaces := obj.Spaces()
	if len(spaces) == 0 {
		return fmt.Errorf("graph: object %q exposes no spaces", obj.Name())
	}

	idx, err := g.insertSpace(composition.NewSpaceReference(obj, spaces[0]), parentIdx, bit)
	if err != nil {
		return err
	}
	for _, label := range spaces[1:] {
		idx, err = g.insertSpace(composition.NewSpaceReference(obj, label), idx, 0)
		if err != nil {
			return err
		}
	}

	for k, child := range obj.Children() {
		slotIdx, err := g.insertSpace(composition.NewChildSpaceReference(obj, k), idx, 1)
		if err != nil {
			return err
		}
		idx = slotIdx
		if err := g.place(child, slotIdx, 0); err != nil {
			return err
		}
	}
	return nil
}

func (g *SpaceGraph) insertSpace(ref composition.SpaceReference, parentIdx, bit int) (int, error) {
	var idx int
	var err error
	if parentIdx < 0 {
		idx, err = g.tree.InsertRoot(ref)
	} else {
		idx, err = g.tree.InsertChild(parentIdx, bit, ref)
	}
	if err != nil {
		return 0, &DuplicateSpaceError{Space: ref, Err: err}
	}
	return idx, nil
}

// Len returns the number of nodes (spaces) in the graph.
func (g *SpaceGraph) Len() int { return g.tree.Len() }

// Value returns the SpaceReference at node idx.
func (g *SpaceGraph) Value(idx int) composition.SpaceReference { return g.tree.Value(idx) }

// Code returns the treecode of node idx.
func (g *SpaceGraph) Code(idx int) treecode.Treecode { return g.tree.Code(idx) }

// IsLeaf reports whether idx has no children in the graph.
func (g *SpaceGraph) IsLeaf(idx int) bool { return g.tree.IsLeaf(idx) }

// Child returns the bit-th child node of idx, or ok=false if absent.
func (g *SpaceGraph) Child(idx, bit int) (int, bool) { return g.tree.Child(idx, bit) }

// Parent returns the parent node of idx, or ok=false for the root.
func (g *SpaceGraph) Parent(idx int) (int, bool) { return g.tree.Parent(idx) }

// IndexOf looks up the node index for a SpaceReference, which must be the
// exact (object, label, child index) value placed by BuildSpaceGraph.
func (g *SpaceGraph) IndexOf(ref composition.SpaceReference) (int, bool) {
	return g.tree.IndexOfValue(ref)
}

func (g *SpaceGraph) cacheLookup(from, to int) (topology.Topology, bool) {
	g.cacheMu.Lock()
	defer g.cacheMu.Unlock()
	t, ok := g.cache[[2]int{from, to}]
	return t, ok
}

func (g *SpaceGraph) cacheStore(from, to int, t topology.Topology) {
	g.cacheMu.Lock()
	defer g.cacheMu.Unlock()
	g.cache[[2]int{from, to}] = t
}
