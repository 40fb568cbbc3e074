// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package jsonio

import (
	"math"

	"github.com/avalanche-io/coordgraph/composition"
	"github.com/avalanche-io/coordgraph/ordinate"
)

// encodeOrdinate renders an ordinate as either a literal number or a
// rational-time object {value, rate}, read back as value/rate.
func encodeOrdinate(o ordinate.Ordinate) any {
	if o.IsRational() {
		if o.Denominator() == 1 {
			return o.Numerator()
		}
		return map[string]any{"value": o.Numerator(), "rate": o.Denominator()}
	}
	return o.ToFloat()
}

// decodeOrdinate accepts a literal number or a rational-time object
// {value, rate}. null (the sanitized form of Inf/NaN) decodes to NaN.
func decodeOrdinate(v any) (ordinate.Ordinate, bool) {
	switch n := v.(type) {
	case nil:
		return ordinate.Float(math.NaN()), true
	case float64:
		if n == math.Trunc(n) && math.Abs(n) < 1e15 {
			return ordinate.Int(int64(n)), true
		}
		return ordinate.Float(n), true
	case int64:
		return ordinate.Int(n), true
	case map[string]any:
		value, okV := asInt(n["value"])
		rate, okR := asInt(n["rate"])
		if okV && okR && rate != 0 {
			return ordinate.Rational(value, rate), true
		}
		fv, okFV := asFloat(n["value"])
		fr, okFR := asFloat(n["rate"])
		if okFV && okFR && fr != 0 {
			return ordinate.Float(fv / fr), true
		}
		return ordinate.ZERO, false
	default:
		return ordinate.ZERO, false
	}
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

func asInt(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		if n == math.Trunc(n) {
			return int64(n), true
		}
		return 0, false
	case int64:
		return n, true
	default:
		return 0, false
	}
}

func encodeInterval(ci ordinate.ContinuousInterval) map[string]any {
	return map[string]any{
		"start": encodeOrdinate(ci.Start),
		"end":   encodeOrdinate(ci.End),
	}
}

func decodeInterval(v any) (ordinate.ContinuousInterval, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return ordinate.Empty, false
	}
	sv, okSP := m["start"]
	ev, okEP := m["end"]
	if !okSP || !okEP {
		return ordinate.Empty, false
	}
	start, okS := decodeOrdinate(sv)
	end, okE := decodeOrdinate(ev)
	if !okS || !okE {
		return ordinate.Empty, false
	}
	return ordinate.NewContinuousInterval(start, end), true
}

func encodeDiscreteInfo(di composition.DiscreteInfo) map[string]any {
	return map[string]any{
		"sample_rate_hz": encodeOrdinate(di.SampleRateHz),
		"start_index":    di.StartIndex,
	}
}

func decodeDiscreteInfo(v any) (composition.DiscreteInfo, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return composition.DiscreteInfo{}, false
	}
	rate, okR := decodeOrdinate(m["sample_rate_hz"])
	if !okR {
		return composition.DiscreteInfo{}, false
	}
	start, _ := asInt(m["start_index"])
	return composition.DiscreteInfo{SampleRateHz: rate, StartIndex: start}, true
}
