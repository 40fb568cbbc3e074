// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package composition

import "github.com/avalanche-io/coordgraph/ordinate"

// Clip is a segment of editable media. BoundsS is the optional
// media trim: when set, the clip's presentation space is [0, BoundsS.Duration())
// and its media space is BoundsS itself, so the presentation->media edge is a
// plain offset shift. An untrimmed clip has unbounded presentation
// and media spaces.
type Clip struct {
	NameVal      string
	BoundsS      *ordinate.ContinuousInterval
	DiscreteInfo *DiscreteInfo
	MediaRef     string
}

// NewClip creates a new Clip. bounds may be nil for an untrimmed clip.
func NewClip(name string, bounds *ordinate.ContinuousInterval) *Clip {
	return &Clip{NameVal: name, BoundsS: bounds}
}

// WithMediaRef sets the clip's opaque external media identifier and returns
// the clip for chaining.
func (c *Clip) WithMediaRef(ref string) *Clip {
	c.MediaRef = ref
	return c
}

// WithDiscreteInfo sets the clip's media sample rate/start index and returns
// the clip for chaining.
func (c *Clip) WithDiscreteInfo(di DiscreteInfo) *Clip {
	c.DiscreteInfo = &di
	return c
}

func (c *Clip) Name() string           { return c.NameVal }
func (c *Clip) Kind() string           { return "clip" }
func (c *Clip) Spaces() []SpaceLabel   { return []SpaceLabel{Presentation, Media} }
func (c *Clip) Children() []Composable { return nil }

// PresentationBounds returns the clip's presentation-space extents.
func (c *Clip) PresentationBounds() ordinate.ContinuousInterval {
	if c.BoundsS != nil {
		return ordinate.NewContinuousInterval(ordinate.ZERO, c.BoundsS.Duration())
	}
	return ordinate.Infinite
}

// MediaBounds returns the clip's media-space extents.
func (c *Clip) MediaBounds() ordinate.ContinuousInterval {
	if c.BoundsS != nil {
		return *c.BoundsS
	}
	return ordinate.Infinite
}
