// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

// Package topology implements the piecewise mapping algebra between two
// continuous coordinate axes: AffineTransform1D, Mapping (the tagged variant
// over empty/affine/linear-monotonic/bezier pieces), Topology (an ordered,
// contiguous sequence of Mappings), and the join/invert combinators that
// compose and partially invert topologies.
package topology

import (
	"fmt"

	"github.com/avalanche-io/coordgraph/ordinate"
)

// AffineTransform1D represents output = scale*input + offset.
type AffineTransform1D struct {
	Scale  ordinate.Ordinate
	Offset ordinate.Ordinate
}

// IdentityTransform returns the identity affine transform (scale=1, offset=0).
func IdentityTransform() AffineTransform1D {
	return AffineTransform1D{Scale: ordinate.ONE, Offset: ordinate.ZERO}
}

// Apply applies the transform to a single ordinate.
func (a AffineTransform1D) Apply(x ordinate.Ordinate) ordinate.Ordinate {
	return a.Scale.Mul(x).Add(a.Offset)
}

// IsIdentity returns whether this transform is the identity.
func (a AffineTransform1D) IsIdentity() bool {
	return a.Scale.Equal(ordinate.ONE) && a.Offset.Equal(ordinate.ZERO)
}

// IsDegenerate returns whether the transform collapses its domain to a point
// (scale == 0), e.g. a freeze-frame.
func (a AffineTransform1D) IsDegenerate() bool {
	return a.Scale.Equal(ordinate.ZERO)
}

// Compose returns the transform equivalent to applying a first, then outer:
// outer.Apply(a.Apply(x)).
func (a AffineTransform1D) Compose(outer AffineTransform1D) AffineTransform1D {
	return AffineTransform1D{
		Scale:  a.Scale.Mul(outer.Scale),
		Offset: outer.Scale.Mul(a.Offset).Add(outer.Offset),
	}
}

// Inverted returns the transform t such that t.Apply(a.Apply(x)) == x.
// Only valid when Scale != 0.
func (a AffineTransform1D) Inverted() AffineTransform1D {
	invScale := ordinate.ONE.Div(a.Scale)
	return AffineTransform1D{
		Scale:  invScale,
		Offset: a.Offset.Neg().Mul(invScale),
	}
}

// Equal returns whether two transforms are equal.
func (a AffineTransform1D) Equal(other AffineTransform1D) bool {
	return a.Scale.Equal(other.Scale) && a.Offset.Equal(other.Offset)
}

// String returns a human-readable representation.
func (a AffineTransform1D) String() string {
	return fmt.Sprintf("AffineTransform1D(scale=%s, offset=%s)", a.Scale, a.Offset)
}
