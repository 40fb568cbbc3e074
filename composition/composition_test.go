// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package composition

import (
	"testing"

	"github.com/avalanche-io/coordgraph/ordinate"
)

func TestClipBounds(t *testing.T) {
	bounds := ordinate.NewContinuousInterval(ordinate.Int(1), ordinate.Int(10))
	c := NewClip("a", &bounds)

	wantPres := ordinate.NewContinuousInterval(ordinate.ZERO, ordinate.Int(9))
	if got := c.PresentationBounds(); !got.Equal(wantPres) {
		t.Errorf("PresentationBounds() = %s, want %s", got, wantPres)
	}
	if got := c.MediaBounds(); !got.Equal(bounds) {
		t.Errorf("MediaBounds() = %s, want %s", got, bounds)
	}
}

func TestClipUntrimmedIsInfinite(t *testing.T) {
	c := NewClip("a", nil)
	if !c.PresentationBounds().Equal(ordinate.Infinite) {
		t.Errorf("PresentationBounds() = %s, want infinite", c.PresentationBounds())
	}
	if !c.MediaBounds().Equal(ordinate.Infinite) {
		t.Errorf("MediaBounds() = %s, want infinite", c.MediaBounds())
	}
}

func TestTrackDurationSumsChildren(t *testing.T) {
	b := ordinate.NewContinuousInterval(ordinate.ZERO, ordinate.Int(2))
	track := NewTrack("t")
	track.AppendChild(NewClip("c0", &b))
	track.AppendChild(NewGap("g", ordinate.Int(5)))
	track.AppendChild(NewClip("c1", &b))

	got := TrackDuration(track)
	want := ordinate.Int(9)
	if !got.Equal(want) {
		t.Errorf("TrackDuration() = %s, want %s", got, want)
	}
}

func TestStackDurationIsMax(t *testing.T) {
	short := ordinate.NewContinuousInterval(ordinate.ZERO, ordinate.Int(2))
	long := ordinate.NewContinuousInterval(ordinate.ZERO, ordinate.Int(7))
	stack := NewStack("s")
	stack.AppendChild(NewClip("c0", &short))
	stack.AppendChild(NewClip("c1", &long))

	got := StackDuration(stack)
	want := ordinate.Int(7)
	if !got.Equal(want) {
		t.Errorf("StackDuration() = %s, want %s", got, want)
	}
}

func TestDiscreteInfoRoundTrip(t *testing.T) {
	di := DiscreteInfo{SampleRateHz: ordinate.Int(4), StartIndex: 0}
	o := ordinate.Float(4.5)
	idx := di.IndexAt(o)
	if idx != 18 {
		t.Errorf("IndexAt(4.5) = %d, want 18", idx)
	}
	interval := di.SampleInterval(18)
	if !interval.Contains(o) {
		t.Errorf("SampleInterval(18) = %s does not contain 4.5", interval)
	}
}

func TestDiscreteInfoForClipMedia(t *testing.T) {
	c := NewClip("a", nil).WithDiscreteInfo(DiscreteInfo{SampleRateHz: ordinate.Int(24), StartIndex: 0})
	ref := NewSpaceReference(c, Media)
	di := DiscreteInfoFor(ref)
	if di == nil {
		t.Fatal("expected non-nil DiscreteInfo")
	}
	if !di.SampleRateHz.Equal(ordinate.Int(24)) {
		t.Errorf("SampleRateHz = %s, want 24", di.SampleRateHz)
	}

	presRef := NewSpaceReference(c, Presentation)
	if DiscreteInfoFor(presRef) != nil {
		t.Error("expected nil DiscreteInfo for clip presentation space")
	}
}

func TestSpaceReferenceString(t *testing.T) {
	track := NewTrack("t")
	if got, want := NewSpaceReference(track, Presentation).String(), "track.presentation"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got, want := NewChildSpaceReference(track, 2).String(), "track.child[2]"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
