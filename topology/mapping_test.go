// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package topology

import (
	"testing"

	"github.com/avalanche-io/coordgraph/ordinate"
)

func TestAffineMappingProjection(t *testing.T) {
	m := AffineMapping{
		Bounds:    ordinate.NewContinuousInterval(ordinate.Int(0), ordinate.Int(10)),
		Transform: AffineTransform1D{Scale: ordinate.Int(2), Offset: ordinate.ZERO},
	}
	res := m.ProjectInstantaneous(ordinate.Int(5))
	if res.Kind != ResultPoint || res.Point.ToFloat() != 10 {
		t.Errorf("project(5) = %v, want point 10", res)
	}
	oob := m.ProjectInstantaneous(ordinate.Int(20))
	if oob.Kind != ResultOutOfBounds {
		t.Error("project outside bounds should be out of bounds")
	}
}

func TestLinearMappingInterpolation(t *testing.T) {
	m := LinearMapping{Knots: []Knot{
		{In: ordinate.Int(0), Out: ordinate.Int(0)},
		{In: ordinate.Int(10), Out: ordinate.Int(100)},
	}}
	res := m.ProjectInstantaneous(ordinate.Int(5))
	if res.Kind != ResultPoint || res.Point.ToFloat() != 50 {
		t.Errorf("project(5) = %v, want point 50", res)
	}
}

func TestLinearMappingInverted(t *testing.T) {
	m := LinearMapping{Knots: []Knot{
		{In: ordinate.Int(0), Out: ordinate.Int(0)},
		{In: ordinate.Int(10), Out: ordinate.Int(100)},
	}}
	inv := m.Inverted()
	if len(inv) != 1 {
		t.Fatalf("expected one inverse branch, got %d", len(inv))
	}
	res := inv[0].ProjectInstantaneous(ordinate.Int(50))
	if res.Kind != ResultPoint || res.Point.ToFloat() != 5 {
		t.Errorf("inverse project(50) = %v, want point 5", res)
	}
}

func TestLinearMappingDecreasing(t *testing.T) {
	m := LinearMapping{Knots: []Knot{
		{In: ordinate.Int(0), Out: ordinate.Int(100)},
		{In: ordinate.Int(10), Out: ordinate.Int(0)},
	}}
	inv := m.Inverted()[0].(LinearMapping)
	res := inv.ProjectInstantaneous(ordinate.Int(100))
	if res.Kind != ResultPoint || res.Point.ToFloat() != 0 {
		t.Errorf("inverse project(100) = %v, want point 0", res)
	}
}

func TestBezierMappingEndpoints(t *testing.T) {
	seg := CubicBezierSegment{
		P0: Point2D{In: ordinate.Int(0), Out: ordinate.Int(0)},
		P1: Point2D{In: ordinate.Int(1), Out: ordinate.Int(0)},
		P2: Point2D{In: ordinate.Int(2), Out: ordinate.Int(10)},
		P3: Point2D{In: ordinate.Int(3), Out: ordinate.Int(10)},
	}
	m := BezierMapping{Segments: []CubicBezierSegment{seg}}
	start := m.ProjectInstantaneous(ordinate.Int(0))
	if start.Kind != ResultPoint || start.Point.ToFloat() != 0 {
		t.Errorf("project(0) = %v, want point 0", start)
	}
	end := m.ProjectInstantaneous(ordinate.Int(3))
	if end.Kind != ResultPoint || end.Point.ToFloat() != 10 {
		t.Errorf("project(3) = %v, want point 10", end)
	}
}

func TestBezierMonotoneRunSplit(t *testing.T) {
	// An S-curve that rises, then dips: P1/P2 chosen to create a local max
	// in Out before P3, producing two monotone runs.
	seg := CubicBezierSegment{
		P0: Point2D{In: ordinate.Int(0), Out: ordinate.Int(0)},
		P1: Point2D{In: ordinate.Int(1), Out: ordinate.Int(10)},
		P2: Point2D{In: ordinate.Int(2), Out: ordinate.Int(10)},
		P3: Point2D{In: ordinate.Int(3), Out: ordinate.Int(2)},
	}
	m := BezierMapping{Segments: []CubicBezierSegment{seg}}
	runs := m.monotoneRuns()
	if len(runs) < 2 {
		t.Fatalf("expected at least 2 monotone runs, got %d", len(runs))
	}
}

func TestEmptyMapping(t *testing.T) {
	m := EmptyMapping{Bounds: ordinate.NewContinuousInterval(ordinate.Int(0), ordinate.Int(5))}
	res := m.ProjectInstantaneous(ordinate.Int(2))
	if res.Kind != ResultOutOfBounds {
		t.Error("empty mapping should never produce a point")
	}
}
