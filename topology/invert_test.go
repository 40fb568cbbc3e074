// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package topology

import (
	"testing"

	"github.com/avalanche-io/coordgraph/ordinate"
)

func TestInvertAffine(t *testing.T) {
	tp := Topology{Mappings: []Mapping{AffineMapping{
		Bounds:    ordinate.NewContinuousInterval(ordinate.Int(0), ordinate.Int(10)),
		Transform: AffineTransform1D{Scale: ordinate.Int(2), Offset: ordinate.Int(3)},
	}}}
	branches, err := tp.Inverted()
	if err != nil {
		t.Fatalf("Inverted error: %v", err)
	}
	if len(branches) != 1 {
		t.Fatalf("expected one branch, got %d", len(branches))
	}
	res := branches[0].ProjectInstantaneous(ordinate.Int(13))
	if res.Kind != ResultPoint || res.Point.ToFloat() != 5 {
		t.Errorf("inverse project(13) = %v, want point 5", res)
	}
}

func TestInvertRoundTrip(t *testing.T) {
	tp := Topology{Mappings: []Mapping{AffineMapping{
		Bounds:    ordinate.NewContinuousInterval(ordinate.Int(0), ordinate.Int(24)),
		Transform: AffineTransform1D{Scale: ordinate.Rational(1, 2), Offset: ordinate.ZERO},
	}}}
	one, err := tp.InvertedOne()
	if err != nil {
		t.Fatalf("InvertedOne error: %v", err)
	}
	for _, x := range []ordinate.Ordinate{ordinate.Int(0), ordinate.Int(10), ordinate.Int(23)} {
		y := tp.ProjectInstantaneous(x)
		if y.Kind != ResultPoint {
			t.Fatalf("forward project(%v) out of bounds", x)
		}
		back := one.ProjectInstantaneous(y.Point)
		if back.Kind != ResultPoint || !back.Point.AlmostEqual(x, 1e-9) {
			t.Errorf("round trip for %v: got %v, want %v", x, back, x)
		}
	}
}

func TestInvertDegenerateProducesNoBranch(t *testing.T) {
	tp := Topology{Mappings: []Mapping{AffineMapping{
		Bounds:    ordinate.NewContinuousInterval(ordinate.Int(0), ordinate.Int(10)),
		Transform: AffineTransform1D{Scale: ordinate.ZERO, Offset: ordinate.Int(5)},
	}}}
	branches, err := tp.Inverted()
	if err != nil {
		t.Fatalf("Inverted error: %v", err)
	}
	if len(branches) != 0 {
		t.Errorf("expected no inverse branches for a freeze-frame, got %d", len(branches))
	}
}
