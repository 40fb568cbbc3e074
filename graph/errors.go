// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package graph

import (
	"errors"
	"fmt"

	"github.com/avalanche-io/coordgraph/composition"
)

// ErrOutOfBounds indicates a continuous->discrete projection queried an
// ordinate outside the operator's topology. Unlike the
// continuous->continuous case, which reports this as a ProjectionResult
// value rather than an error, ProjectInstantaneousCD (which must return a
// concrete index) surfaces it as an error. ProjectRangeCD does not return it;
// it skips segments that project nothing.
var ErrOutOfBounds = errors.New("graph: projection is out of bounds")

// SpaceNotInGraphError indicates a SpaceReference was not placed by
// BuildSpaceGraph.
type SpaceNotInGraphError struct {
	Space composition.SpaceReference
}

func (e *SpaceNotInGraphError) Error() string {
	return fmt.Sprintf("graph: space %s is not in the graph", e.Space)
}

// NoPathBetweenSpacesError indicates neither space's treecode is a prefix of
// the other's, so no path connects them.
type NoPathBetweenSpacesError struct {
	A, B composition.SpaceReference
}

func (e *NoPathBetweenSpacesError) Error() string {
	return fmt.Sprintf("graph: no path between %s and %s", e.A, e.B)
}

// UnsupportedSpaceError indicates edge resolution was asked for a label/step
// combination the object does not own.
type UnsupportedSpaceError struct {
	Kind  string
	Label string
	Bit   int
}

func (e *UnsupportedSpaceError) Error() string {
	return fmt.Sprintf("graph: %s does not support an edge from %s with step %d", e.Kind, e.Label, e.Bit)
}

// NoDiscreteInfoError indicates a discrete projection entry point was called
// against a space with no attached DiscreteInfo.
type NoDiscreteInfoError struct {
	Space composition.SpaceReference
}

func (e *NoDiscreteInfoError) Error() string {
	return fmt.Sprintf("graph: space %s has no discrete info", e.Space)
}

// DuplicateSpaceError wraps a treecode.BinaryTree duplicate-insert failure
// with the offending object; hitting it means the walk placed the same
// space twice, a programming error.
type DuplicateSpaceError struct {
	Space composition.SpaceReference
	Err   error
}

func (e *DuplicateSpaceError) Error() string {
	return fmt.Sprintf("graph: inserting %s: %v", e.Space, e.Err)
}

func (e *DuplicateSpaceError) Unwrap() error { return e.Err }
