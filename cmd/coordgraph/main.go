// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

// coordgraph inspects compositions and projects ordinates, ranges, and
// sample indices between their coordinate spaces.
//
// Usage:
//
//	coordgraph spaces cut.json
//	coordgraph dot cut.coordz
//	coordgraph project cut.json --from cut.presentation --to shot.media 3.5
//	coordgraph range cut.json --from cut.presentation --to shot.media 3.5 4.5
//	coordgraph index cut.json --from cut.presentation --to shot.media 1000
//
// Compositions load from schema-tagged JSON files or .coordz bundles,
// chosen by extension. Spaces are addressed as "<name>.<label>" (falling
// back to "<kind>.<label>" for unnamed objects); ordinates may be floats
// or exact rationals written num/den.
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/avalanche-io/coordgraph/bundle"
	"github.com/avalanche-io/coordgraph/composition"
	"github.com/avalanche-io/coordgraph/dot"
	"github.com/avalanche-io/coordgraph/graph"
	"github.com/avalanche-io/coordgraph/jsonio"
	"github.com/avalanche-io/coordgraph/ordinate"
	"github.com/avalanche-io/coordgraph/topology"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("coordgraph: ")
	if err := newRootCmd().Execute(); err != nil {
		log.Fatal(err)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "coordgraph",
		Short:         "Inspect and project between a composition's coordinate spaces",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newSpacesCmd(), newDotCmd(), newProjectCmd(), newRangeCmd(), newIndexCmd())
	return root
}

func newSpacesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "spaces <file>",
		Short: "List every coordinate space in the composition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGraph(args[0])
			if err != nil {
				return err
			}
			for idx := 0; idx < g.Len(); idx++ {
				ref := g.Value(idx)
				name := ref.Object.Name()
				if name == "" {
					name = "-"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-24s %-12s %s\n", dot.NodeLabel(g, idx), name, g.Code(idx))
			}
			return nil
		},
	}
}

func newDotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dot <file>",
		Short: "Render the space graph as a graphviz digraph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGraph(args[0])
			if err != nil {
				return err
			}
			return dot.Export(g, cmd.OutOrStdout())
		},
	}
}

// projectionFlags holds the --from/--to pair shared by the projection
// commands.
type projectionFlags struct {
	from string
	to   string
}

func (f *projectionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.from, "from", "", "source space as <name>.<label>")
	cmd.Flags().StringVar(&f.to, "to", "", "destination space as <name>.<label>")
	cmd.MarkFlagRequired("from")
	cmd.MarkFlagRequired("to")
}

func (f *projectionFlags) operator(path string) (*graph.ProjectionOperator, error) {
	g, err := loadGraph(path)
	if err != nil {
		return nil, err
	}
	src, err := resolveSpace(g, f.from)
	if err != nil {
		return nil, err
	}
	dst, err := resolveSpace(g, f.to)
	if err != nil {
		return nil, err
	}
	return graph.BuildProjectionOperator(g, src, dst)
}

func newProjectCmd() *cobra.Command {
	var flags projectionFlags
	cmd := &cobra.Command{
		Use:   "project <file> <ordinate>",
		Short: "Project a single ordinate between two spaces",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			op, err := flags.operator(args[0])
			if err != nil {
				return err
			}
			o, err := parseOrdinate(args[1])
			if err != nil {
				return err
			}
			res := op.ProjectInstantaneousCC(o)
			switch res.Kind {
			case topology.ResultPoint:
				fmt.Fprintln(cmd.OutOrStdout(), res.Point)
			case topology.ResultInterval:
				fmt.Fprintln(cmd.OutOrStdout(), res.Interval)
			default:
				fmt.Fprintln(cmd.OutOrStdout(), "out of bounds")
			}
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newRangeCmd() *cobra.Command {
	var flags projectionFlags
	var discrete bool
	cmd := &cobra.Command{
		Use:   "range <file> <start> <end>",
		Short: "Project a half-open range between two spaces",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			op, err := flags.operator(args[0])
			if err != nil {
				return err
			}
			start, err := parseOrdinate(args[1])
			if err != nil {
				return err
			}
			end, err := parseOrdinate(args[2])
			if err != nil {
				return err
			}
			r := ordinate.NewContinuousInterval(start, end)
			if discrete {
				indices, err := op.ProjectRangeCD(r)
				if err != nil {
					return err
				}
				for _, i := range indices {
					fmt.Fprintln(cmd.OutOrStdout(), i)
				}
				return nil
			}
			topo, err := op.ProjectRangeCC(r)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", topo.InputBounds(), topo.OutputBounds())
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&discrete, "discrete", false, "emit destination sample indices instead of bounds")
	return cmd
}

func newIndexCmd() *cobra.Command {
	var flags projectionFlags
	cmd := &cobra.Command{
		Use:   "index <file> <sample>",
		Short: "Project a source sample index to destination sample indices",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			op, err := flags.operator(args[0])
			if err != nil {
				return err
			}
			i, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid sample index %q", args[1])
			}
			indices, err := op.ProjectIndexDD(i)
			if err != nil {
				return err
			}
			for _, idx := range indices {
				fmt.Fprintln(cmd.OutOrStdout(), idx)
			}
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

// parseOrdinate parses a CLI argument as an ordinate, accepting either a
// floating-point value or an exact rational written "num/den".
func parseOrdinate(s string) (ordinate.Ordinate, error) {
	if idx := strings.Index(s, "/"); idx > 0 {
		num, err := strconv.ParseInt(s[:idx], 10, 64)
		if err != nil {
			return ordinate.Ordinate{}, fmt.Errorf("invalid ordinate %q: %w", s, err)
		}
		den, err := strconv.ParseInt(s[idx+1:], 10, 64)
		if err != nil {
			return ordinate.Ordinate{}, fmt.Errorf("invalid ordinate %q: %w", s, err)
		}
		return ordinate.Rational(num, den), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return ordinate.Ordinate{}, fmt.Errorf("invalid ordinate %q: %w", s, err)
	}
	return ordinate.Float(v), nil
}

// loadGraph loads a composition from a JSON file or .coordz bundle and
// builds its space graph.
func loadGraph(path string) (*graph.SpaceGraph, error) {
	root, err := loadComposition(path)
	if err != nil {
		return nil, err
	}
	return graph.BuildSpaceGraph(root)
}

func loadComposition(path string) (composition.Composable, error) {
	if strings.HasSuffix(path, ".coordz") {
		return bundle.Read(bundle.DefaultFS, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var d jsonio.Decoder
	root, err := d.Decode(data)
	if err != nil {
		return nil, err
	}
	for _, w := range d.Warnings {
		log.Print(w)
	}
	return root, nil
}

// resolveSpace finds the graph node named by "<name>.<label>", falling back
// to matching the object kind when no object carries the name.
func resolveSpace(g *graph.SpaceGraph, spec string) (composition.SpaceReference, error) {
	idx := strings.LastIndex(spec, ".")
	if idx <= 0 || idx == len(spec)-1 {
		return composition.SpaceReference{}, fmt.Errorf("invalid space %q, want <name>.<label>", spec)
	}
	name, label := spec[:idx], spec[idx+1:]

	for node := 0; node < g.Len(); node++ {
		ref := g.Value(node)
		if ref.Label == composition.Child || ref.Label.String() != label {
			continue
		}
		if ref.Object.Name() == name {
			return ref, nil
		}
	}
	for node := 0; node < g.Len(); node++ {
		ref := g.Value(node)
		if ref.Label == composition.Child || ref.Label.String() != label {
			continue
		}
		if ref.Object.Kind() == name {
			return ref, nil
		}
	}
	return composition.SpaceReference{}, fmt.Errorf("no space %q in composition", spec)
}
