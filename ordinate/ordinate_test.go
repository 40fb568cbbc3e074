// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package ordinate

import "testing"

func TestRationalArithmeticStaysExact(t *testing.T) {
	a := Rational(1, 3)
	b := Rational(1, 6)
	sum := a.Add(b)
	if !sum.IsRational() {
		t.Fatalf("rational + rational should stay rational")
	}
	if sum.Numerator() != 1 || sum.Denominator() != 2 {
		t.Errorf("1/3 + 1/6 = %s, want 1/2", sum)
	}
}

func TestFloatContaminates(t *testing.T) {
	a := Rational(1, 3)
	b := Float(0.5)
	sum := a.Add(b)
	if sum.IsRational() {
		t.Errorf("rational + float should promote to float")
	}
}

func TestRationalReduces(t *testing.T) {
	r := Rational(24000, 1001)
	if r.Numerator() != 24000 || r.Denominator() != 1001 {
		t.Errorf("24000/1001 should already be reduced, got %d/%d", r.Numerator(), r.Denominator())
	}
	r2 := Rational(4, 8)
	if r2.Numerator() != 1 || r2.Denominator() != 2 {
		t.Errorf("4/8 should reduce to 1/2, got %d/%d", r2.Numerator(), r2.Denominator())
	}
}

func TestCmp(t *testing.T) {
	cases := []struct {
		a, b Ordinate
		want int
	}{
		{Rational(1, 2), Rational(2, 4), 0},
		{Rational(1, 3), Rational(1, 2), -1},
		{Float(1.5), Rational(3, 2), 0},
		{INF, Int(1000000), 1},
	}
	for _, c := range cases {
		if got := c.a.Cmp(c.b); got != c.want {
			t.Errorf("%s.Cmp(%s) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestIsNaNIsInf(t *testing.T) {
	if !INF.IsInf() {
		t.Error("INF.IsInf() should be true")
	}
	if ZERO.IsInf() {
		t.Error("ZERO.IsInf() should be false")
	}
	nan := Float(0).Div(Float(0))
	if !nan.IsNaN() {
		t.Error("0/0 as float should be NaN")
	}
}

func TestDivByZeroRational(t *testing.T) {
	r := ONE.Div(ZERO)
	if !r.IsInf() {
		t.Errorf("1/0 (rational) should produce an infinite float, got %s", r)
	}
}

func TestAlmostEqual(t *testing.T) {
	a := Rational(1, 3)
	b := Float(0.333333334)
	if !a.AlmostEqual(b, 1e-6) {
		t.Errorf("%s and %s should be almost equal", a, b)
	}
}

func TestTimecodeRoundTrip(t *testing.T) {
	tc, err := ToTimecode(Int(24*60+1), 24, false)
	if err != nil {
		t.Fatalf("ToTimecode error: %v", err)
	}
	if tc != "00:01:00:01" {
		t.Errorf("ToTimecode = %s, want 00:01:00:01", tc)
	}
	back, err := FromTimecode(tc, 24)
	if err != nil {
		t.Fatalf("FromTimecode error: %v", err)
	}
	if back.ToFloat() != float64(24*60+1) {
		t.Errorf("round trip = %v, want %v", back.ToFloat(), 24*60+1)
	}
}
