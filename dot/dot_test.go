// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package dot

import (
	"strings"
	"testing"

	"github.com/avalanche-io/coordgraph/composition"
	"github.com/avalanche-io/coordgraph/graph"
	"github.com/avalanche-io/coordgraph/ordinate"
)

func TestExport(t *testing.T) {
	bounds := ordinate.NewContinuousInterval(ordinate.ZERO, ordinate.Int(2))
	clip := composition.NewClip("shot", &bounds)
	track := composition.NewTrack("v1")
	track.AppendChild(clip)

	g, err := graph.BuildSpaceGraph(track)
	if err != nil {
		t.Fatalf("BuildSpaceGraph error: %v", err)
	}
	out, err := ExportString(g)
	if err != nil {
		t.Fatalf("ExportString error: %v", err)
	}
	if !strings.HasPrefix(out, "digraph spacegraph {") || !strings.HasSuffix(strings.TrimSpace(out), "}") {
		t.Errorf("output is not a digraph: %s", out)
	}
	for _, want := range []string{
		"track.presentation.1",
		"track.intrinsic.10",
		"track.child.101",
		"clip.presentation.1010",
		"clip.media.10100",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing label %q:\n%s", want, out)
		}
	}
	if !strings.Contains(out, "style=dashed") {
		t.Error("expected a dashed sibling edge")
	}
}
