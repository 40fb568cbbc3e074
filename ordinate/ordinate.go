// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

// Package ordinate provides the exact scalar type used along a temporal
// coordinate axis, and the half-open interval built from it. An Ordinate is
// either an exact rational (integer numerator over integer denominator) or a
// floating-point value; arithmetic promotes rational+rational to an exact
// rational result and anything touching a float to a float result.
package ordinate

import (
	"fmt"
	"math"
)

// Ordinate is a scalar on the continuous temporal axis.
//
// The zero value is not a valid ordinate: its denominator is 0, so it
// converts to NaN and does not compare or add as a number. ZERO is the exact
// rational zero (0/1).
type Ordinate struct {
	isFloat bool
	f       float64
	num     int64
	den     int64 // always > 0 when isFloat is false
}

// Float returns an Ordinate holding a floating-point value.
func Float(v float64) Ordinate {
	return Ordinate{isFloat: true, f: v}
}

// Rational returns an Ordinate holding the exact value num/den.
// den must be non-zero; a negative den is normalized to a negative num.
func Rational(num, den int64) Ordinate {
	if den == 0 {
		return Ordinate{isFloat: true, f: math.NaN()}
	}
	if den < 0 {
		num, den = -num, -den
	}
	if g := gcd(absInt64(num), den); g > 1 {
		num /= g
		den /= g
	}
	return Ordinate{num: num, den: den}
}

// Int returns an Ordinate holding the exact integer value v.
func Int(v int64) Ordinate {
	return Ordinate{num: v, den: 1}
}

// ZERO is the exact rational zero.
var ZERO = Ordinate{num: 0, den: 1}

// ONE is the exact rational one.
var ONE = Ordinate{num: 1, den: 1}

// INF is positive floating-point infinity.
var INF = Float(math.Inf(1))

// NegInf is negative floating-point infinity.
var NegInf = Float(math.Inf(-1))

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	if a == 0 {
		return 1
	}
	return a
}

func absInt64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// IsRational returns whether this Ordinate holds an exact rational value.
func (o Ordinate) IsRational() bool {
	return !o.isFloat
}

// ToFloat returns the value as a float64, regardless of representation.
func (o Ordinate) ToFloat() float64 {
	if o.isFloat {
		return o.f
	}
	return float64(o.num) / float64(o.den)
}

// Numerator returns the rational numerator; only meaningful if IsRational.
func (o Ordinate) Numerator() int64 { return o.num }

// Denominator returns the rational denominator; only meaningful if IsRational.
func (o Ordinate) Denominator() int64 {
	if o.isFloat {
		return 1
	}
	return o.den
}

// IsNaN returns true if the ordinate is not-a-number.
func (o Ordinate) IsNaN() bool {
	return o.isFloat && math.IsNaN(o.f)
}

// IsInf returns true if the ordinate is positive or negative infinity.
func (o Ordinate) IsInf() bool {
	return o.isFloat && math.IsInf(o.f, 0)
}

// IsFinite returns true if the ordinate is neither NaN nor infinite.
func (o Ordinate) IsFinite() bool {
	return !o.IsNaN() && !o.IsInf()
}

// Add returns o + other. Rational+rational promotes to an exact rational;
// anything else promotes to float.
func (o Ordinate) Add(other Ordinate) Ordinate {
	if !o.isFloat && !other.isFloat {
		return Rational(o.num*other.den+other.num*o.den, o.den*other.den)
	}
	return Float(o.ToFloat() + other.ToFloat())
}

// Sub returns o - other.
func (o Ordinate) Sub(other Ordinate) Ordinate {
	return o.Add(other.Neg())
}

// Mul returns o * other.
func (o Ordinate) Mul(other Ordinate) Ordinate {
	if !o.isFloat && !other.isFloat {
		return Rational(o.num*other.num, o.den*other.den)
	}
	return Float(o.ToFloat() * other.ToFloat())
}

// Div returns o / other.
func (o Ordinate) Div(other Ordinate) Ordinate {
	if !o.isFloat && !other.isFloat {
		if other.num == 0 {
			return Float(o.ToFloat() / 0)
		}
		return Rational(o.num*other.den, o.den*other.num)
	}
	return Float(o.ToFloat() / other.ToFloat())
}

// Neg returns -o.
func (o Ordinate) Neg() Ordinate {
	if o.isFloat {
		return Float(-o.f)
	}
	return Ordinate{num: -o.num, den: o.den}
}

// Abs returns the absolute value of o.
func (o Ordinate) Abs() Ordinate {
	if o.isFloat {
		return Float(math.Abs(o.f))
	}
	if o.num < 0 {
		return Ordinate{num: -o.num, den: o.den}
	}
	return o
}

// Cmp compares o and other, returning -1, 0, or 1.
func (o Ordinate) Cmp(other Ordinate) int {
	if !o.isFloat && !other.isFloat {
		lhs := o.num * other.den
		rhs := other.num * o.den
		switch {
		case lhs < rhs:
			return -1
		case lhs > rhs:
			return 1
		default:
			return 0
		}
	}
	a, b := o.ToFloat(), other.ToFloat()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// LessThan returns o < other.
func (o Ordinate) LessThan(other Ordinate) bool { return o.Cmp(other) < 0 }

// LessThanOrEqual returns o <= other.
func (o Ordinate) LessThanOrEqual(other Ordinate) bool { return o.Cmp(other) <= 0 }

// GreaterThan returns o > other.
func (o Ordinate) GreaterThan(other Ordinate) bool { return o.Cmp(other) > 0 }

// GreaterThanOrEqual returns o >= other.
func (o Ordinate) GreaterThanOrEqual(other Ordinate) bool { return o.Cmp(other) >= 0 }

// Equal returns whether o and other are exactly equal (rational comparison for
// two rationals, bit-exact float comparison otherwise).
func (o Ordinate) Equal(other Ordinate) bool {
	return o.Cmp(other) == 0
}

// AlmostEqual returns whether o and other differ by no more than epsilon.
func (o Ordinate) AlmostEqual(other Ordinate, epsilon float64) bool {
	return math.Abs(o.ToFloat()-other.ToFloat()) <= epsilon
}

// String returns a human-readable representation.
func (o Ordinate) String() string {
	if o.isFloat {
		return fmt.Sprintf("%g", o.f)
	}
	if o.den == 1 {
		return fmt.Sprintf("%d", o.num)
	}
	return fmt.Sprintf("%d/%d", o.num, o.den)
}

// Min returns the lesser of a and b.
func Min(a, b Ordinate) Ordinate {
	if a.Cmp(b) <= 0 {
		return a
	}
	return b
}

// Max returns the greater of a and b.
func Max(a, b Ordinate) Ordinate {
	if a.Cmp(b) >= 0 {
		return a
	}
	return b
}
