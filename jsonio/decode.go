// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

// Package jsonio reads and writes compositions as OTIO_SCHEMA-tagged JSON.
// Every composition object serializes as an envelope carrying an
// "OTIO_SCHEMA": "Name.Version" tag; decode dispatches through a schema
// registry keyed by that tag. Time values may be literal numbers or
// rational-time objects {value, rate}, the latter read as value/rate.
package jsonio

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/bytedance/sonic"

	"github.com/avalanche-io/coordgraph/composition"
)

const schemaKey = "OTIO_SCHEMA"

// Schema identifies a schema with name and version.
type Schema struct {
	Name    string
	Version int
}

// String returns the schema string representation (e.g., "Clip.1").
func (s Schema) String() string {
	return fmt.Sprintf("%s.%d", s.Name, s.Version)
}

// ParseSchema parses a schema string (e.g., "Clip.1") into name and version.
func ParseSchema(schemaStr string) (name string, version int, err error) {
	if schemaStr == "" {
		return "", 0, &MalformedSchemaError{Schema: schemaStr, Message: "empty schema string"}
	}
	if idx := strings.LastIndex(schemaStr, "."); idx >= 0 {
		name = schemaStr[:idx]
		version, err = strconv.Atoi(schemaStr[idx+1:])
		if err != nil {
			return "", 0, &MalformedSchemaError{Schema: schemaStr, Message: "invalid version"}
		}
		return name, version, nil
	}
	return schemaStr, 1, nil
}

// decodeFunc builds a composition object from its decoded JSON map.
type decodeFunc func(d *Decoder, m map[string]any) (composition.Composable, error)

var (
	schemaRegistry = make(map[string]decodeFunc)
	schemaLock     sync.RWMutex
)

// registerSchema registers a schema decoder under its name.
func registerSchema(name string, fn decodeFunc) {
	schemaLock.Lock()
	defer schemaLock.Unlock()
	schemaRegistry[name] = fn
}

func lookupSchema(name string) (decodeFunc, bool) {
	schemaLock.RLock()
	defer schemaLock.RUnlock()
	fn, ok := schemaRegistry[name]
	return fn, ok
}

func init() {
	registerSchema("Timeline", decodeTimeline)
	registerSchema("Stack", decodeStack)
	registerSchema("Track", decodeTrack)
	registerSchema("Clip", decodeClip)
	registerSchema("Gap", decodeGap)
	registerSchema("Warp", decodeWarp)
}

// Decoder decodes schema-tagged JSON into composition objects, accumulating
// a warning per child it had to drop (unknown schema) instead of failing
// the whole document.
type Decoder struct {
	Warnings []string
}

// Decode sanitizes and parses data, then builds the composition object the
// top-level schema tag names.
func (d *Decoder) Decode(data []byte) (composition.Composable, error) {
	var root any
	if err := sonic.Unmarshal(SanitizeJSON(data), &root); err != nil {
		return nil, err
	}
	return d.decodeValue(root)
}

func (d *Decoder) decodeValue(v any) (composition.Composable, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, ErrNotASchemaObject
	}
	tag, ok := m[schemaKey].(string)
	if !ok {
		return nil, ErrNotASchemaObject
	}
	name, _, err := ParseSchema(tag)
	if err != nil {
		return nil, err
	}
	fn, ok := lookupSchema(name)
	if !ok {
		return nil, &NoSuchSchemaError{Schema: tag}
	}
	return fn(d, m)
}

// decodeChildren decodes a children array, dropping (with a warning) any
// child whose schema is unknown, so one foreign object does not sink the
// rest of the composition.
func (d *Decoder) decodeChildren(schema string, m map[string]any) ([]composition.Composable, error) {
	raw, ok := m["children"].([]any)
	if !ok {
		if _, present := m["children"]; !present {
			return nil, nil
		}
		return nil, &MalformedSchemaError{Schema: schema, Message: "children is not an array"}
	}
	var children []composition.Composable
	for i, cv := range raw {
		child, err := d.decodeValue(cv)
		if err != nil {
			if nse, ok := err.(*NoSuchSchemaError); ok {
				d.Warnings = append(d.Warnings,
					fmt.Sprintf("%s child %d: skipping unknown schema %q", schema, i, nse.Schema))
				continue
			}
			return nil, err
		}
		children = append(children, child)
	}
	return children, nil
}

func decodeName(m map[string]any) string {
	name, _ := m["name"].(string)
	return name
}

func decodeTimeline(d *Decoder, m map[string]any) (composition.Composable, error) {
	var tracks *composition.Stack
	if tv, present := m["tracks"]; present {
		obj, err := d.decodeValue(tv)
		if err != nil {
			return nil, err
		}
		st, ok := obj.(*composition.Stack)
		if !ok {
			return nil, &MalformedSchemaError{Schema: "Timeline", Message: "tracks is not a Stack"}
		}
		tracks = st
	}
	timeline := composition.NewTimeline(decodeName(m), tracks)
	if div, present := m["discrete_info"]; present {
		di, ok := decodeDiscreteInfo(div)
		if !ok {
			return nil, &MalformedSchemaError{Schema: "Timeline", Message: "invalid discrete_info"}
		}
		timeline.WithDiscreteInfo(di)
	}
	return timeline, nil
}

func decodeStack(d *Decoder, m map[string]any) (composition.Composable, error) {
	stack := composition.NewStack(decodeName(m))
	children, err := d.decodeChildren("Stack", m)
	if err != nil {
		return nil, err
	}
	for _, c := range children {
		stack.AppendChild(c)
	}
	return stack, nil
}

func decodeTrack(d *Decoder, m map[string]any) (composition.Composable, error) {
	track := composition.NewTrack(decodeName(m))
	children, err := d.decodeChildren("Track", m)
	if err != nil {
		return nil, err
	}
	for _, c := range children {
		track.AppendChild(c)
	}
	return track, nil
}

func decodeClip(d *Decoder, m map[string]any) (composition.Composable, error) {
	clip := composition.NewClip(decodeName(m), nil)
	if bv, present := m["bounds_s"]; present {
		bounds, ok := decodeInterval(bv)
		if !ok {
			return nil, &MalformedSchemaError{Schema: "Clip", Message: "invalid bounds_s"}
		}
		clip.BoundsS = &bounds
	}
	if mv, present := m["media"]; present {
		mm, ok := mv.(map[string]any)
		if !ok {
			return nil, &MalformedSchemaError{Schema: "Clip", Message: "media is not an object"}
		}
		if bv, present := mm["bounds_s"]; present {
			bounds, ok := decodeInterval(bv)
			if !ok {
				return nil, &MalformedSchemaError{Schema: "Clip", Message: "invalid media bounds_s"}
			}
			clip.BoundsS = &bounds
		}
		if div, present := mm["discrete_info"]; present {
			di, ok := decodeDiscreteInfo(div)
			if !ok {
				return nil, &MalformedSchemaError{Schema: "Clip", Message: "invalid media discrete_info"}
			}
			clip.WithDiscreteInfo(di)
		}
		if ref, ok := mm["ref"].(string); ok {
			clip.WithMediaRef(ref)
		}
	}
	return clip, nil
}

func decodeGap(d *Decoder, m map[string]any) (composition.Composable, error) {
	dv, present := m["duration_seconds"]
	if !present {
		return nil, &MalformedSchemaError{Schema: "Gap", Message: "missing duration_seconds"}
	}
	duration, ok := decodeOrdinate(dv)
	if !ok {
		return nil, &MalformedSchemaError{Schema: "Gap", Message: "missing duration_seconds"}
	}
	return composition.NewGap(decodeName(m), duration), nil
}

func decodeWarp(d *Decoder, m map[string]any) (composition.Composable, error) {
	cv, present := m["child"]
	if !present {
		return nil, &MalformedSchemaError{Schema: "Warp", Message: "missing child"}
	}
	child, err := d.decodeValue(cv)
	if err != nil {
		return nil, err
	}
	transform, err := decodeTopology(m["transform"])
	if err != nil {
		return nil, err
	}
	return composition.NewWarp(decodeName(m), child, transform), nil
}

// FromJSON decodes a schema-tagged JSON document, discarding warnings about
// dropped children.
func FromJSON(data []byte) (composition.Composable, error) {
	var d Decoder
	return d.Decode(data)
}
