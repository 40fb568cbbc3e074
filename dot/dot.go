// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

// Package dot renders a space graph as graphviz digraph text, one node per
// coordinate space, labeled "{object_kind}.{space_label}.{treecode_bits}".
package dot

import (
	"fmt"
	"io"
	"strings"

	"github.com/avalanche-io/coordgraph/graph"
)

// NodeLabel formats the stable display label for one graph node.
func NodeLabel(g *graph.SpaceGraph, idx int) string {
	ref := g.Value(idx)
	return fmt.Sprintf("%s.%s.%s", ref.Object.Kind(), ref.Label, g.Code(idx))
}

// Export writes g as a graphviz digraph. Left-child edges (deeper into the
// same object) render solid; right-child edges (to the next sibling)
// render dashed.
func Export(g *graph.SpaceGraph, w io.Writer) error {
	if _, err := fmt.Fprintln(w, "digraph spacegraph {"); err != nil {
		return err
	}
	for idx := 0; idx < g.Len(); idx++ {
		label := NodeLabel(g, idx)
		if name := g.Value(idx).Object.Name(); name != "" {
			label = fmt.Sprintf("%s\\n%s", label, name)
		}
		if _, err := fmt.Fprintf(w, "  n%d [label=\"%s\"];\n", idx, label); err != nil {
			return err
		}
	}
	for idx := 0; idx < g.Len(); idx++ {
		for bit := 0; bit < 2; bit++ {
			child, ok := g.Child(idx, bit)
			if !ok {
				continue
			}
			style := "solid"
			if bit == 1 {
				style = "dashed"
			}
			if _, err := fmt.Fprintf(w, "  n%d -> n%d [style=%s];\n", idx, child, style); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintln(w, "}")
	return err
}

// ExportString renders g as a graphviz digraph string.
func ExportString(g *graph.SpaceGraph) (string, error) {
	var sb strings.Builder
	if err := Export(g, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}
