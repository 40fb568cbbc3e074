// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package topology

import (
	"testing"

	"github.com/avalanche-io/coordgraph/ordinate"
)

func TestJoinAffineAffine(t *testing.T) {
	a := Topology{Mappings: []Mapping{AffineMapping{
		Bounds:    ordinate.NewContinuousInterval(ordinate.Int(0), ordinate.Int(10)),
		Transform: AffineTransform1D{Scale: ordinate.Int(2), Offset: ordinate.ZERO},
	}}}
	b := Topology{Mappings: []Mapping{AffineMapping{
		Bounds:    ordinate.NewContinuousInterval(ordinate.Int(0), ordinate.Int(20)),
		Transform: AffineTransform1D{Scale: ordinate.ONE, Offset: ordinate.Int(5)},
	}}}
	joined, err := Join(a, b)
	if err != nil {
		t.Fatalf("Join error: %v", err)
	}
	res := joined.ProjectInstantaneous(ordinate.Int(3))
	// b(a(3)) = (2*3)+5 = 11
	if res.Kind != ResultPoint || res.Point.ToFloat() != 11 {
		t.Errorf("joined.Project(3) = %v, want point 11", res)
	}
}

func TestJoinNoOverlap(t *testing.T) {
	a := Topology{Mappings: []Mapping{AffineMapping{
		Bounds:    ordinate.NewContinuousInterval(ordinate.Int(0), ordinate.Int(10)),
		Transform: IdentityTransform(),
	}}}
	b := Topology{Mappings: []Mapping{AffineMapping{
		Bounds:    ordinate.NewContinuousInterval(ordinate.Int(100), ordinate.Int(200)),
		Transform: IdentityTransform(),
	}}}
	_, err := Join(a, b)
	if err != ErrNoOverlap {
		t.Errorf("expected ErrNoOverlap, got %v", err)
	}
}

func TestJoinAffineLinear(t *testing.T) {
	a := Topology{Mappings: []Mapping{AffineMapping{
		Bounds:    ordinate.NewContinuousInterval(ordinate.Int(0), ordinate.Int(10)),
		Transform: IdentityTransform(),
	}}}
	b := Topology{Mappings: []Mapping{LinearMapping{Knots: []Knot{
		{In: ordinate.Int(0), Out: ordinate.Int(0)},
		{In: ordinate.Int(10), Out: ordinate.Int(100)},
	}}}}
	joined, err := Join(a, b)
	if err != nil {
		t.Fatalf("Join error: %v", err)
	}
	res := joined.ProjectInstantaneous(ordinate.Int(5))
	if res.Kind != ResultPoint || res.Point.ToFloat() != 50 {
		t.Errorf("joined.Project(5) = %v, want point 50", res)
	}
}

func TestJoinAffineBezierStaysExact(t *testing.T) {
	a := Topology{Mappings: []Mapping{AffineMapping{
		Bounds:    ordinate.NewContinuousInterval(ordinate.Int(0), ordinate.Int(3)),
		Transform: IdentityTransform(),
	}}}
	seg := CubicBezierSegment{
		P0: Point2D{In: ordinate.Int(0), Out: ordinate.Int(0)},
		P1: Point2D{In: ordinate.Int(1), Out: ordinate.Int(0)},
		P2: Point2D{In: ordinate.Int(2), Out: ordinate.Int(10)},
		P3: Point2D{In: ordinate.Int(3), Out: ordinate.Int(10)},
	}
	b := Topology{Mappings: []Mapping{BezierMapping{Segments: []CubicBezierSegment{seg}}}}
	joined, err := Join(a, b)
	if err != nil {
		t.Fatalf("Join error: %v", err)
	}
	foundBezier := false
	for _, m := range joined.Mappings {
		if m.Kind() == "bezier" {
			foundBezier = true
		}
	}
	if !foundBezier {
		t.Fatalf("identity-composed bezier should stay a bezier, got %v", joined)
	}
	direct := b.ProjectInstantaneous(ordinate.Rational(3, 2))
	via := joined.ProjectInstantaneous(ordinate.Rational(3, 2))
	if via.Kind != ResultPoint || !via.Point.AlmostEqual(direct.Point, 1e-9) {
		t.Errorf("composed bezier at 1.5 = %v, want %v", via, direct)
	}
}

func TestJoinBezierAffineScalesOutput(t *testing.T) {
	seg := CubicBezierSegment{
		P0: Point2D{In: ordinate.Int(0), Out: ordinate.Int(0)},
		P1: Point2D{In: ordinate.Int(1), Out: ordinate.Int(0)},
		P2: Point2D{In: ordinate.Int(2), Out: ordinate.Int(10)},
		P3: Point2D{In: ordinate.Int(3), Out: ordinate.Int(10)},
	}
	a := Topology{Mappings: []Mapping{BezierMapping{Segments: []CubicBezierSegment{seg}}}}
	b := Topology{Mappings: []Mapping{AffineMapping{
		Bounds:    ordinate.NewContinuousInterval(ordinate.Int(0), ordinate.Int(10)),
		Transform: AffineTransform1D{Scale: ordinate.Int(2), Offset: ordinate.Int(1)},
	}}}
	joined, err := Join(a, b)
	if err != nil {
		t.Fatalf("Join error: %v", err)
	}
	direct := a.ProjectInstantaneous(ordinate.Int(2))
	via := joined.ProjectInstantaneous(ordinate.Int(2))
	want := direct.Point.Mul(ordinate.Int(2)).Add(ordinate.ONE)
	if via.Kind != ResultPoint || !via.Point.AlmostEqual(want, 1e-9) {
		t.Errorf("composed at 2 = %v, want %v", via, want)
	}
}

func TestComposeMappings(t *testing.T) {
	a := AffineMapping{
		Bounds:    ordinate.NewContinuousInterval(ordinate.Int(0), ordinate.Int(4)),
		Transform: AffineTransform1D{Scale: ordinate.Int(3), Offset: ordinate.ZERO},
	}
	b := AffineMapping{
		Bounds:    ordinate.NewContinuousInterval(ordinate.Int(0), ordinate.Int(6)),
		Transform: AffineTransform1D{Scale: ordinate.ONE, Offset: ordinate.Int(1)},
	}
	composed, err := ComposeMappings(a, b)
	if err != nil {
		t.Fatalf("ComposeMappings error: %v", err)
	}
	// b only covers a's image up to 6, so the composite stops at x = 2.
	in := composed.InputBounds()
	if !in.Start.AlmostEqual(ordinate.ZERO, 1e-9) || !in.End.AlmostEqual(ordinate.Int(2), 1e-9) {
		t.Errorf("composite input bounds = %v, want [0, 2)", in)
	}
	res := composed.ProjectInstantaneous(ordinate.ONE)
	if res.Kind != ResultPoint || !res.Point.AlmostEqual(ordinate.Int(4), 1e-9) {
		t.Errorf("composite(1) = %v, want 4", res)
	}
}
