// Copyright 2025 The serde-luaq Authors
// SPDX-License-Identifier: MIT

// Package luadata adapts parsed luaq [luaq.Value] trees onto Go structs,
// slices, and maps, following the deserialization adapter contract of
// SPEC_FULL.md §6.
package luadata

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"

	"github.com/micolous/serde-luaq"
)

// NumericRangeError reports that a Lua integer could not be narrowed into
// a target float field without loss, per SPEC_FULL.md §4.1's ±(2^53-1)
// narrowing rule.
type NumericRangeError struct {
	Value int64
}

func (e *NumericRangeError) Error() string {
	return fmt.Sprintf("luadata: integer %d exceeds the range exactly representable as a float", e.Value)
}

// Decode lowers v to an intermediate representation and binds it onto
// target via mapstructure, resolving Lua's table hybrid (sequence vs. map
// vs. struct) against target's concrete type at each nesting level - the
// same table tree decodes differently depending on what it is decoded
// into (SPEC_FULL.md §6).
//
// Grounded on the Rust original's src/de.rs (SeqDeserializer::new's
// "detect explicit integer keys, then densify" algorithm and
// MapDeserializer's "positional entries numbered from 1 ignoring explicit
// keys, merge, later wins" algorithm) for the projection semantics. Unlike
// serde's lazy, target-type-driven Deserializer trait, mapstructure wants
// a concrete interface{} tree up front; this is bridged with a
// [mapstructure.DecodeHookFunc] that defers the sequence/map/struct
// decision to decode time, inspecting the destination reflect.Type that
// mapstructure is about to decode into, instead of eagerly guessing a
// shape while lowering (the teacher's own layering - a hand-written
// semantic pass feeding a generic machine - motivates keeping the parser
// output untouched until a concrete target is known).
func Decode(v luaq.Value, target any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		WeaklyTypedInput: false,
		ErrorUnused:      false,
		ZeroFields:       true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			tableProjectionHook,
			numericRangeHook,
		),
	})
	if err != nil {
		return fmt.Errorf("luadata: building decoder: %w", err)
	}
	if err := dec.Decode(lower(v)); err != nil {
		return fmt.Errorf("luadata: decoding: %w", err)
	}
	return nil
}

// DecodeAssignments decodes a [luaq.ScriptAssignment] slice (the result of
// luaq.ParseScript) as a map keyed by assignment name, then binds that map
// onto target via mapstructure.
func DecodeAssignments(assignments []luaq.ScriptAssignment, target any) error {
	m := make(map[string]any, len(assignments))
	for _, a := range assignments {
		m[a.Name] = lower(a.Value)
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result: target,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			tableProjectionHook,
			numericRangeHook,
		),
	})
	if err != nil {
		return fmt.Errorf("luadata: building decoder: %w", err)
	}
	if err := dec.Decode(m); err != nil {
		return fmt.Errorf("luadata: decoding: %w", err)
	}
	return nil
}

// rawTable wraps a parsed table's entries, deferring the sequence/map/
// struct decision to [tableProjectionHook]. It is never exposed outside
// this package: Decode and DecodeAssignments both always drive it through
// mapstructure, which always calls the hook before looking at the value's
// Go type.
type rawTable struct {
	entries []luaq.TableEntry
}

// lower converts v into the intermediate tree mapstructure decodes from:
// nil, bool, int64, float64, []byte for scalars, and a [rawTable] for
// tables, so that the projection decision in [tableProjectionHook] can be
// made once the destination type is known.
func lower(v luaq.Value) any {
	switch v.Kind() {
	case luaq.KindNil:
		return nil
	case luaq.KindBoolean:
		b, _ := v.AsBool()
		return b
	case luaq.KindNumber:
		n, _ := v.AsNumber()
		if i, ok := n.Int64(); ok {
			return i
		}
		f, _ := n.Float64()
		return f
	case luaq.KindString:
		b, _ := v.AsBytes()
		return b
	case luaq.KindTable:
		entries, _ := v.AsTable()
		return rawTable{entries: entries}
	default:
		return nil
	}
}

// lowerKey converts a non-integer table key to a comparable Go value
// suitable for use as a map key: bool and float64 pass through, strings
// are decoded lossily to a Go string since []byte is not a comparable map
// key type.
func lowerKey(v luaq.Value) any {
	switch v.Kind() {
	case luaq.KindBoolean:
		b, _ := v.AsBool()
		return b
	case luaq.KindNumber:
		n, _ := v.AsNumber()
		f, _ := n.Float64()
		return f
	case luaq.KindString:
		s, _ := v.AsStringLossy()
		return s
	default:
		return nil
	}
}

var rawTableType = reflect.TypeOf(rawTable{})

// tableProjectionHook implements SPEC_FULL.md §6's per-target table
// projection: the same [rawTable] decodes as a densified sequence, an
// integer-keyed map, an explicitly-keyed map/struct, or (when the target
// isn't yet known, e.g. a field typed interface{}) the generic heuristic
// documented on [projectGeneric].
func tableProjectionHook(from, to reflect.Type, data any) (any, error) {
	if from != rawTableType {
		return data, nil
	}
	rt := data.(rawTable)
	target := to
	for target.Kind() == reflect.Ptr {
		target = target.Elem()
	}
	switch target.Kind() {
	case reflect.Slice, reflect.Array:
		return projectSequence(rt.entries), nil
	case reflect.Map:
		if isIntegerKind(target.Key().Kind()) {
			return projectIntMap(rt.entries)
		}
		return projectExplicitMap(rt.entries)
	case reflect.Struct:
		return projectExplicitMap(rt.entries)
	default:
		return projectGeneric(rt.entries), nil
	}
}

func isIntegerKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	default:
		return false
	}
}

// projectSequence implements SPEC_FULL.md §6's sequence rule: positional
// entries are numbered consecutively from 1 regardless of explicit keys,
// all integer-keyed entries (explicit or positional) are then densified
// into a zero-indexed slice with Nil filling any gap, and later entries
// win at a shared key. Entries with a non-integer effective key have no
// slot in a sequence and are dropped.
func projectSequence(entries []luaq.TableEntry) []any {
	slots := make(map[int64]any)
	var maxKey int64
	nextPositional := int64(1)
	for _, e := range entries {
		if e.IsPositional() {
			slots[nextPositional] = lower(e.Value())
			if nextPositional > maxKey {
				maxKey = nextPositional
			}
			nextPositional++
			continue
		}
		eff, _ := e.EffectiveKey()
		if i, ok := eff.AsInt64(); ok {
			slots[i] = lower(e.Value())
			if i > maxKey {
				maxKey = i
			}
		}
	}
	if maxKey < 1 {
		return []any{}
	}
	out := make([]any, maxKey)
	for k, v := range slots {
		if k >= 1 {
			out[k-1] = v
		}
	}
	return out
}

// projectIntMap implements SPEC_FULL.md §6's integer-keyed map rule:
// positional entries are numbered consecutively from 1 ignoring explicit
// keys, then merged with every integer-keyed entry; later entries (in
// source order) win at a shared key, which a single left-to-right pass of
// plain map assignment gives for free. Entries with a non-integer
// effective key have no place in this map and are dropped.
func projectIntMap(entries []luaq.TableEntry) (map[int64]any, error) {
	out := make(map[int64]any, len(entries))
	nextPositional := int64(1)
	for _, e := range entries {
		if e.IsPositional() {
			out[nextPositional] = lower(e.Value())
			nextPositional++
			continue
		}
		eff, _ := e.EffectiveKey()
		if i, ok := eff.AsInt64(); ok {
			out[i] = lower(e.Value())
		}
	}
	return out, nil
}

// projectExplicitMap implements SPEC_FULL.md §6's rule for a map with
// non-integer keys (or a struct, matched by field name the same way): "A
// table targeting a map with non-integer keys must have every entry
// explicitly keyed." A Positional entry has no explicit key to offer a
// non-integer-keyed map, and a Keyed/Named entry whose effective key isn't
// a string has no place in a string-keyed map either, so both are skipped
// rather than reported as an error or coerced with fmt.Sprint - symmetric
// with [projectIntMap] silently dropping entries that have no integer key
// to offer.
func projectExplicitMap(entries []luaq.TableEntry) (map[string]any, error) {
	out := make(map[string]any, len(entries))
	for _, e := range entries {
		if e.IsPositional() {
			continue
		}
		eff, _ := e.EffectiveKey()
		if eff.Kind() != luaq.KindString {
			continue
		}
		s, _ := eff.AsStringLossy()
		out[s] = lower(e.Value())
	}
	return out, nil
}

// projectGeneric is used when the destination type isn't yet known (a
// field typed interface{}, or the top-level target of [Decode] itself is
// an *any): if every entry is positional or integer-keyed, it densifies
// to a []any exactly as [projectSequence] does; otherwise every entry,
// including positional ones numbered as above, is merged into a
// map[any]any, later entries winning at a shared key.
func projectGeneric(entries []luaq.TableEntry) any {
	allIntegerOrPositional := true
	for _, e := range entries {
		if e.IsPositional() {
			continue
		}
		eff, _ := e.EffectiveKey()
		if _, ok := eff.AsInt64(); !ok {
			allIntegerOrPositional = false
			break
		}
	}
	if allIntegerOrPositional {
		return projectSequence(entries)
	}
	out := make(map[any]any, len(entries))
	nextPositional := int64(1)
	for _, e := range entries {
		if e.IsPositional() {
			out[nextPositional] = lower(e.Value())
			nextPositional++
			continue
		}
		eff, _ := e.EffectiveKey()
		if i, ok := eff.AsInt64(); ok {
			out[i] = lower(e.Value())
			continue
		}
		out[lowerKey(eff)] = lower(e.Value())
	}
	return out
}

// maxSafeFloatMantissa is the largest magnitude integer exactly
// representable as a float64 mantissa: 2^53 - 1 (SPEC_FULL.md §4.1).
const maxSafeFloatMantissa = int64(1)<<53 - 1

// numericRangeHook implements the narrowing check SPEC_FULL.md §4.1
// requires when an integer-valued field is bound into a float target:
// magnitudes beyond ±(2^53-1) are not exactly representable and are
// rejected with [NumericRangeError] rather than silently truncated, which
// is what mapstructure's own int-to-float conversion otherwise does.
func numericRangeHook(f, t reflect.Kind, data any) (any, error) {
	if t != reflect.Float32 && t != reflect.Float64 {
		return data, nil
	}
	switch f {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i := reflect.ValueOf(data).Int()
		if i > maxSafeFloatMantissa || i < -maxSafeFloatMantissa {
			return nil, &NumericRangeError{Value: i}
		}
	}
	return data, nil
}
