// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package composition

import "github.com/avalanche-io/coordgraph/topology"

// Warp wraps a single child composable, reshaping its presentation axis
// through an arbitrary Topology: a piecewise generalization of a scalar
// linear time warp.
type Warp struct {
	NameVal   string
	Child     Composable
	Transform topology.Topology
}

// NewWarp creates a new Warp over child, applying transform to its
// presentation axis.
func NewWarp(name string, child Composable, transform topology.Topology) *Warp {
	return &Warp{NameVal: name, Child: child, Transform: transform}
}

func (w *Warp) Name() string         { return w.NameVal }
func (w *Warp) Kind() string         { return "warp" }
func (w *Warp) Spaces() []SpaceLabel { return []SpaceLabel{Presentation} }
func (w *Warp) Children() []Composable {
	return []Composable{w.Child}
}
