// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package composition

import "github.com/avalanche-io/coordgraph/ordinate"

// Gap is a span of empty presentation time with no media: a
// leaf, both in the composition tree and in the resulting SpaceGraph.
type Gap struct {
	NameVal      string
	DurationSecs ordinate.Ordinate
}

// NewGap creates a new Gap of the given duration.
func NewGap(name string, duration ordinate.Ordinate) *Gap {
	return &Gap{NameVal: name, DurationSecs: duration}
}

func (g *Gap) Name() string           { return g.NameVal }
func (g *Gap) Kind() string           { return "gap" }
func (g *Gap) Spaces() []SpaceLabel   { return []SpaceLabel{Presentation} }
func (g *Gap) Children() []Composable { return nil }

// PresentationBounds returns [0, DurationSecs).
func (g *Gap) PresentationBounds() ordinate.ContinuousInterval {
	return ordinate.NewContinuousInterval(ordinate.ZERO, g.DurationSecs)
}
