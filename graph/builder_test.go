// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package graph

import (
	"testing"

	"github.com/avalanche-io/coordgraph/composition"
	"github.com/avalanche-io/coordgraph/ordinate"
)

// Track [clip(2)][gap(5)][clip(2)]: the source axis decomposes into
// {0,2,7,9} with the first clip's mapping active on [0,2), nothing on
// [2,7), and the second clip's mapping on [7,9).
func TestBuilderClipGapClip(t *testing.T) {
	c0 := trimmedClip("c0", 0, 2)
	c1 := trimmedClip("c1", 0, 2)
	track := composition.NewTrack("tr")
	track.AppendChild(c0)
	track.AppendChild(composition.NewGap("g", ordinate.Int(5)))
	track.AppendChild(c1)

	g, err := BuildSpaceGraph(track)
	if err != nil {
		t.Fatalf("BuildSpaceGraph error: %v", err)
	}
	b, err := InitFrom(g, composition.NewSpaceReference(track, composition.Presentation))
	if err != nil {
		t.Fatalf("InitFrom error: %v", err)
	}

	if len(b.Intervals) != 3 {
		t.Fatalf("interval count = %d (%v), want 3", len(b.Intervals), b.Intervals)
	}
	wantBounds := [][2]int64{{0, 2}, {2, 7}, {7, 9}}
	wantCounts := []int{1, 0, 1}
	for i, iv := range b.Intervals {
		if !iv.Bounds.Start.AlmostEqual(ordinate.Int(wantBounds[i][0]), 1e-9) ||
			!iv.Bounds.End.AlmostEqual(ordinate.Int(wantBounds[i][1]), 1e-9) {
			t.Errorf("interval %d bounds = %v, want [%d, %d)", i, iv.Bounds, wantBounds[i][0], wantBounds[i][1])
		}
		if len(iv.MappingIndices) != wantCounts[i] {
			t.Errorf("interval %d has %d active mappings, want %d", i, len(iv.MappingIndices), wantCounts[i])
		}
	}

	first := b.Mappings[b.Intervals[0].MappingIndices[0]]
	if first.Destination.Object != c0 {
		t.Errorf("first interval's mapping points at %v, want first clip's media", first.Destination)
	}
	last := b.Mappings[b.Intervals[2].MappingIndices[0]]
	if last.Destination.Object != c1 {
		t.Errorf("last interval's mapping points at %v, want second clip's media", last.Destination)
	}
}

// Builder coverage: the union of interval bounds is contiguous.
func TestBuilderIntervalsAreContiguous(t *testing.T) {
	track := composition.NewTrack("tr")
	track.AppendChild(trimmedClip("a", 10, 13))
	track.AppendChild(trimmedClip("b", 0, 4))
	track.AppendChild(composition.NewGap("g", ordinate.Int(1)))
	track.AppendChild(trimmedClip("c", 2, 3))

	g, err := BuildSpaceGraph(track)
	if err != nil {
		t.Fatalf("BuildSpaceGraph error: %v", err)
	}
	b, err := InitFrom(g, composition.NewSpaceReference(track, composition.Presentation))
	if err != nil {
		t.Fatalf("InitFrom error: %v", err)
	}
	if len(b.Intervals) == 0 {
		t.Fatal("no intervals")
	}
	for i := 1; i < len(b.Intervals); i++ {
		prev, cur := b.Intervals[i-1], b.Intervals[i]
		if !prev.Bounds.End.Equal(cur.Bounds.Start) {
			t.Errorf("gap between interval %d and %d: %v then %v", i-1, i, prev.Bounds, cur.Bounds)
		}
	}
	total := ordinate.NewContinuousInterval(
		b.Intervals[0].Bounds.Start,
		b.Intervals[len(b.Intervals)-1].Bounds.End,
	)
	if !total.Start.AlmostEqual(ordinate.ZERO, 1e-9) || !total.End.AlmostEqual(ordinate.Int(9), 1e-9) {
		t.Errorf("covered span = %v, want [0, 9)", total)
	}
}

// Builder mapping integrity: every mapping tagged active on an interval is
// defined across that whole interval.
func TestBuilderMappingIntegrity(t *testing.T) {
	track := composition.NewTrack("tr")
	track.AppendChild(trimmedClip("a", 0, 2))
	track.AppendChild(trimmedClip("b", 5, 8))

	g, err := BuildSpaceGraph(track)
	if err != nil {
		t.Fatalf("BuildSpaceGraph error: %v", err)
	}
	b, err := InitFrom(g, composition.NewSpaceReference(track, composition.Presentation))
	if err != nil {
		t.Fatalf("InitFrom error: %v", err)
	}
	for i, iv := range b.Intervals {
		for _, mi := range iv.MappingIndices {
			mb := b.Mappings[mi].Mapping.InputBounds()
			if !mb.ContainsInterval(iv.Bounds) {
				t.Errorf("interval %d %v not contained in mapping %d bounds %v", i, iv.Bounds, mi, mb)
			}
		}
	}
}

func TestBuilderPointQueries(t *testing.T) {
	clip := trimmedClip("c", 1, 3)
	track := composition.NewTrack("tr")
	track.AppendChild(clip)
	g, err := BuildSpaceGraph(track)
	if err != nil {
		t.Fatalf("BuildSpaceGraph error: %v", err)
	}
	src := composition.NewSpaceReference(track, composition.Presentation)
	b, err := InitFrom(g, src)
	if err != nil {
		t.Fatalf("InitFrom error: %v", err)
	}

	to, err := b.ProjectionOperatorTo(composition.NewSpaceReference(clip, composition.Media))
	if err != nil {
		t.Fatalf("ProjectionOperatorTo error: %v", err)
	}
	res := to.ProjectInstantaneousCC(ordinate.ONE)
	if !res.Point.AlmostEqual(ordinate.Int(2), 1e-9) {
		t.Errorf("to-operator project(1) = %v, want 2", res)
	}

	from, err := b.ProjectionOperatorFromLeaky(composition.NewSpaceReference(clip, composition.Media))
	if err != nil {
		t.Fatalf("ProjectionOperatorFromLeaky error: %v", err)
	}
	back := from.ProjectInstantaneousCC(ordinate.Int(2))
	if !back.Point.AlmostEqual(ordinate.ONE, 1e-9) {
		t.Errorf("from-operator project(2) = %v, want 1", back)
	}
}

func TestBuilderUnknownSource(t *testing.T) {
	track := composition.NewTrack("tr")
	track.AppendChild(trimmedClip("c", 0, 2))
	g, err := BuildSpaceGraph(track)
	if err != nil {
		t.Fatalf("BuildSpaceGraph error: %v", err)
	}
	stray := composition.NewTrack("other")
	if _, err := InitFrom(g, composition.NewSpaceReference(stray, composition.Presentation)); err == nil {
		t.Error("expected an error for a source outside the graph")
	}
}
