// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package jsonio

import (
	"github.com/avalanche-io/coordgraph/topology"
)

func encodeTopology(t topology.Topology) map[string]any {
	mappings := make([]any, 0, len(t.Mappings))
	for _, m := range t.Mappings {
		mappings = append(mappings, encodeMapping(m))
	}
	return map[string]any{"mappings": mappings}
}

func encodeMapping(m topology.Mapping) map[string]any {
	switch mm := m.(type) {
	case topology.EmptyMapping:
		return map[string]any{
			"kind":   "empty",
			"bounds": encodeInterval(mm.Bounds),
		}
	case topology.AffineMapping:
		return map[string]any{
			"kind":   "affine",
			"bounds": encodeInterval(mm.Bounds),
			"scale":  encodeOrdinate(mm.Transform.Scale),
			"offset": encodeOrdinate(mm.Transform.Offset),
		}
	case topology.LinearMapping:
		knots := make([]any, 0, len(mm.Knots))
		for _, k := range mm.Knots {
			knots = append(knots, map[string]any{
				"in":  encodeOrdinate(k.In),
				"out": encodeOrdinate(k.Out),
			})
		}
		return map[string]any{"kind": "linear", "knots": knots}
	case topology.BezierMapping:
		segments := make([]any, 0, len(mm.Segments))
		for _, s := range mm.Segments {
			segments = append(segments, map[string]any{
				"p0": encodePoint(s.P0), "p1": encodePoint(s.P1),
				"p2": encodePoint(s.P2), "p3": encodePoint(s.P3),
			})
		}
		return map[string]any{"kind": "bezier", "segments": segments}
	default:
		return map[string]any{"kind": "empty"}
	}
}

func encodePoint(p topology.Point2D) map[string]any {
	return map[string]any{"in": encodeOrdinate(p.In), "out": encodeOrdinate(p.Out)}
}

func decodeTopology(v any) (topology.Topology, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return topology.Topology{}, &MalformedSchemaError{Schema: "Topology", Message: "not an object"}
	}
	raw, ok := m["mappings"].([]any)
	if !ok {
		return topology.Topology{}, &MalformedSchemaError{Schema: "Topology", Message: "missing mappings array"}
	}
	var mappings []topology.Mapping
	for _, rv := range raw {
		mapping, err := decodeMapping(rv)
		if err != nil {
			return topology.Topology{}, err
		}
		mappings = append(mappings, mapping)
	}
	return topology.Topology{Mappings: mappings}, nil
}

func decodeMapping(v any) (topology.Mapping, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, &MalformedSchemaError{Schema: "Mapping", Message: "not an object"}
	}
	kind, _ := m["kind"].(string)
	switch kind {
	case "empty":
		bounds, _ := decodeInterval(m["bounds"])
		return topology.EmptyMapping{Bounds: bounds}, nil
	case "affine":
		bounds, ok := decodeInterval(m["bounds"])
		if !ok {
			return nil, &MalformedSchemaError{Schema: "Mapping", Message: "affine mapping missing bounds"}
		}
		scale, okS := decodeOrdinate(m["scale"])
		offset, okO := decodeOrdinate(m["offset"])
		if !okS || !okO {
			return nil, &MalformedSchemaError{Schema: "Mapping", Message: "affine mapping missing scale/offset"}
		}
		return topology.AffineMapping{
			Bounds:    bounds,
			Transform: topology.AffineTransform1D{Scale: scale, Offset: offset},
		}, nil
	case "linear":
		raw, ok := m["knots"].([]any)
		if !ok || len(raw) < 2 {
			return nil, &MalformedSchemaError{Schema: "Mapping", Message: "linear mapping needs at least two knots"}
		}
		knots := make([]topology.Knot, 0, len(raw))
		for _, kv := range raw {
			km, ok := kv.(map[string]any)
			if !ok {
				return nil, &MalformedSchemaError{Schema: "Mapping", Message: "knot is not an object"}
			}
			in, okI := decodeOrdinate(km["in"])
			out, okO := decodeOrdinate(km["out"])
			if !okI || !okO {
				return nil, &MalformedSchemaError{Schema: "Mapping", Message: "knot missing in/out"}
			}
			knots = append(knots, topology.Knot{In: in, Out: out})
		}
		return topology.LinearMapping{Knots: knots}, nil
	case "bezier":
		raw, ok := m["segments"].([]any)
		if !ok || len(raw) == 0 {
			return nil, &MalformedSchemaError{Schema: "Mapping", Message: "bezier mapping needs at least one segment"}
		}
		segments := make([]topology.CubicBezierSegment, 0, len(raw))
		for _, sv := range raw {
			sm, ok := sv.(map[string]any)
			if !ok {
				return nil, &MalformedSchemaError{Schema: "Mapping", Message: "segment is not an object"}
			}
			var seg topology.CubicBezierSegment
			points := []*topology.Point2D{&seg.P0, &seg.P1, &seg.P2, &seg.P3}
			for i, key := range []string{"p0", "p1", "p2", "p3"} {
				p, err := decodePoint(sm[key])
				if err != nil {
					return nil, err
				}
				*points[i] = p
			}
			segments = append(segments, seg)
		}
		return topology.BezierMapping{Segments: segments}, nil
	default:
		return nil, &MalformedSchemaError{Schema: "Mapping", Message: "unknown mapping kind " + kind}
	}
}

func decodePoint(v any) (topology.Point2D, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return topology.Point2D{}, &MalformedSchemaError{Schema: "Mapping", Message: "control point is not an object"}
	}
	in, okI := decodeOrdinate(m["in"])
	out, okO := decodeOrdinate(m["out"])
	if !okI || !okO {
		return topology.Point2D{}, &MalformedSchemaError{Schema: "Mapping", Message: "control point missing in/out"}
	}
	return topology.Point2D{In: in, Out: out}, nil
}
