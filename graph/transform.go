// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package graph

import (
	"github.com/avalanche-io/coordgraph/composition"
	"github.com/avalanche-io/coordgraph/ordinate"
	"github.com/avalanche-io/coordgraph/topology"
)

// edgeTransform resolves the elementary transform carried by the single
// graph edge stepping from node fromIdx via bit (0=left, 1=right). The
// destination space is implied by (fromIdx, bit) since the graph is a
// binary tree; the caller already knows it from the path walk.
func (g *SpaceGraph) edgeTransform(fromIdx, bit int) (topology.Topology, error) {
	from := g.tree.Value(fromIdx)

	switch obj := from.Object.(type) {
	case *composition.Clip:
		if from.Label == composition.Presentation && bit == 0 {
			return clipPresentationToMedia(obj), nil
		}

	case *composition.Gap:
		// Leaf: no outgoing edges.

	case *composition.Warp:
		switch {
		case from.Label == composition.Presentation && bit == 1:
			return obj.Transform, nil
		case from.Label == composition.Child && bit == 0:
			return topology.InfiniteIdentity(), nil
		}

	case *composition.Track:
		switch from.Label {
		case composition.Presentation:
			if bit == 0 {
				return topology.InfiniteIdentity(), nil
			}
		case composition.Intrinsic:
			if bit == 1 {
				return topology.InfiniteIdentity(), nil
			}
		case composition.Child:
			if bit == 0 {
				return topology.InfiniteIdentity(), nil
			}
			if bit == 1 {
				return trackSiblingShift(obj, from.ChildIndex), nil
			}
		}

	case *composition.Stack:
		switch from.Label {
		case composition.Presentation:
			if bit == 0 {
				return topology.InfiniteIdentity(), nil
			}
		case composition.Intrinsic:
			if bit == 1 {
				return topology.InfiniteIdentity(), nil
			}
		case composition.Child:
			return topology.InfiniteIdentity(), nil
		}

	case *composition.Timeline:
		switch from.Label {
		case composition.Presentation:
			if bit == 0 {
				return topology.InfiniteIdentity(), nil
			}
		case composition.Intrinsic:
			if bit == 1 {
				return topology.InfiniteIdentity(), nil
			}
		case composition.Child:
			return topology.InfiniteIdentity(), nil
		}
	}

	return topology.Topology{}, &UnsupportedSpaceError{Kind: from.Object.Kind(), Label: from.Label.String(), Bit: bit}
}

// clipPresentationToMedia builds the presentation->media edge for a Clip:
// identity in shape, shifted by the media-trim origin. An untrimmed clip has
// no origin to shift by, so its edge is the plain infinite identity.
func clipPresentationToMedia(c *composition.Clip) topology.Topology {
	if c.BoundsS == nil {
		return topology.InfiniteIdentity()
	}
	presentation := c.PresentationBounds()
	media := c.MediaBounds()
	offset := media.Start.Sub(presentation.Start)
	return topology.Topology{Mappings: []topology.Mapping{topology.AffineMapping{
		Bounds:    presentation,
		Transform: topology.AffineTransform1D{Scale: ordinate.ONE, Offset: offset},
	}}}
}

// trackSiblingShift builds the child[k]->child[k+1] ripple edge: an affine
// shift by the previous child's duration, defined from that duration onward.
func trackSiblingShift(t *composition.Track, prevChildIndex int) topology.Topology {
	prevDuration := composition.DurationOf(t.ChildrenVal[prevChildIndex])
	return topology.Topology{Mappings: []topology.Mapping{topology.AffineMapping{
		Bounds:    ordinate.NewContinuousInterval(prevDuration, ordinate.INF),
		Transform: topology.AffineTransform1D{Scale: ordinate.ONE, Offset: prevDuration.Neg()},
	}}}
}
