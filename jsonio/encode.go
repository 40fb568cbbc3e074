// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package jsonio

import (
	"github.com/bytedance/sonic"

	"github.com/avalanche-io/coordgraph/composition"
)

// ToJSON encodes a composition object as schema-tagged JSON.
func ToJSON(c composition.Composable) ([]byte, error) {
	v, err := encodeValue(c)
	if err != nil {
		return nil, err
	}
	return sonic.Marshal(v)
}

// ToJSONIndent encodes a composition object as indented schema-tagged JSON.
func ToJSONIndent(c composition.Composable) ([]byte, error) {
	v, err := encodeValue(c)
	if err != nil {
		return nil, err
	}
	return sonic.MarshalIndent(v, "", "  ")
}

func encodeValue(c composition.Composable) (map[string]any, error) {
	switch obj := c.(type) {
	case *composition.Timeline:
		tracks, err := encodeValue(obj.TracksVal)
		if err != nil {
			return nil, err
		}
		m := envelope("Timeline", obj.Name())
		m["tracks"] = tracks
		if obj.DiscreteInfo != nil {
			m["discrete_info"] = encodeDiscreteInfo(*obj.DiscreteInfo)
		}
		return m, nil
	case *composition.Stack:
		m := envelope("Stack", obj.Name())
		children, err := encodeChildren(obj.Children())
		if err != nil {
			return nil, err
		}
		m["children"] = children
		return m, nil
	case *composition.Track:
		m := envelope("Track", obj.Name())
		children, err := encodeChildren(obj.Children())
		if err != nil {
			return nil, err
		}
		m["children"] = children
		return m, nil
	case *composition.Clip:
		m := envelope("Clip", obj.Name())
		media := map[string]any{}
		if obj.BoundsS != nil {
			media["bounds_s"] = encodeInterval(*obj.BoundsS)
		}
		if obj.DiscreteInfo != nil {
			media["discrete_info"] = encodeDiscreteInfo(*obj.DiscreteInfo)
		}
		if obj.MediaRef != "" {
			media["ref"] = obj.MediaRef
		}
		if len(media) > 0 {
			m["media"] = media
		}
		return m, nil
	case *composition.Gap:
		m := envelope("Gap", obj.Name())
		m["duration_seconds"] = encodeOrdinate(obj.DurationSecs)
		return m, nil
	case *composition.Warp:
		child, err := encodeValue(obj.Child)
		if err != nil {
			return nil, err
		}
		m := envelope("Warp", obj.Name())
		m["child"] = child
		m["transform"] = encodeTopology(obj.Transform)
		return m, nil
	default:
		return nil, ErrNotASchemaObject
	}
}

func encodeChildren(children []composition.Composable) ([]any, error) {
	out := make([]any, 0, len(children))
	for _, c := range children {
		v, err := encodeValue(c)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func envelope(schema, name string) map[string]any {
	m := map[string]any{schemaKey: Schema{Name: schema, Version: 1}.String()}
	if name != "" {
		m["name"] = name
	}
	return m
}
