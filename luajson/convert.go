// Copyright 2025 The serde-luaq Authors
// SPDX-License-Identifier: MIT

// Package luajson bridges parsed luaq [luaq.Value] trees to and from a
// generic JSON value, following SPEC_FULL.md §6's JSON-value bridge
// contract.
package luajson

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/go-json-experiment/json/jsontext"

	"github.com/micolous/serde-luaq"
)

// ErrTableKeyedWithTable is returned when a table entry's key is itself a
// table: JSON has no syntax for a non-scalar object key.
var ErrTableKeyedWithTable = errors.New("luajson: table keyed with table has no JSON representation")

// ErrNonFiniteFloat is returned when converting a NaN or infinite float to
// JSON, which has no literal syntax for either.
var ErrNonFiniteFloat = errors.New("luajson: NaN and infinite floats have no JSON representation")

// Options controls [WriteJSON]'s string-decoding behavior.
type Options struct {
	// LossyString decodes non-UTF-8 string values using the Unicode
	// replacement character instead of failing.
	LossyString bool
}

// WriteJSON encodes v as JSON onto enc, following the heuristic in
// SPEC_FULL.md §6: a non-empty table all of whose entries are positional
// becomes a JSON array, and an empty table becomes an empty JSON object;
// any explicitly-keyed entry switches the whole table to an
// object, with positional entries renumbered as string keys "1", "2", ...
// (Lua's own array-start-at-1 convention). When two entries stringify to
// the same key, the later one in source order wins, matching the
// overwrite rule applied everywhere else a table's entries are merged by
// key.
//
// Grounded on the Rust original's to_json_value for the conversion rules,
// and internal zb/cmd/zb/flags.go's MarshalJSONTo for the
// jsontext.Encoder token-writing style (teacher's own direct dependency).
func WriteJSON(enc *jsontext.Encoder, v luaq.Value, opts Options) error {
	switch v.Kind() {
	case luaq.KindNil:
		return enc.WriteToken(jsontext.Null)
	case luaq.KindBoolean:
		b, _ := v.AsBool()
		if b {
			return enc.WriteToken(jsontext.True)
		}
		return enc.WriteToken(jsontext.False)
	case luaq.KindNumber:
		n, _ := v.AsNumber()
		return writeJSONNumber(enc, n)
	case luaq.KindString:
		s, err := decodeString(v, opts)
		if err != nil {
			return err
		}
		return enc.WriteToken(jsontext.String(s))
	case luaq.KindTable:
		entries, _ := v.AsTable()
		return writeJSONTable(enc, entries, opts)
	default:
		return fmt.Errorf("luajson: unrecognized value kind")
	}
}

func decodeString(v luaq.Value, opts Options) (string, error) {
	if opts.LossyString {
		s, _ := v.AsStringLossy()
		return s, nil
	}
	s, ok := v.AsString()
	if !ok {
		return "", fmt.Errorf("luajson: string value is not valid UTF-8")
	}
	return s, nil
}

func writeJSONNumber(enc *jsontext.Encoder, n luaq.Number) error {
	if i, ok := n.Int64(); ok {
		return enc.WriteToken(jsontext.Int(i))
	}
	f, _ := n.Float64()
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return ErrNonFiniteFloat
	}
	return enc.WriteToken(jsontext.Float(f))
}

func writeJSONTable(enc *jsontext.Encoder, entries []luaq.TableEntry, opts Options) error {
	if len(entries) == 0 {
		if err := enc.WriteToken(jsontext.BeginObject); err != nil {
			return err
		}
		return enc.WriteToken(jsontext.EndObject)
	}

	allPositional := true
	for _, e := range entries {
		if !e.IsPositional() {
			allPositional = false
			break
		}
	}

	if allPositional {
		if err := enc.WriteToken(jsontext.BeginArray); err != nil {
			return err
		}
		for _, e := range entries {
			if err := WriteJSON(enc, e.Value(), opts); err != nil {
				return err
			}
		}
		return enc.WriteToken(jsontext.EndArray)
	}

	order := make([]string, 0, len(entries))
	values := make(map[string]luaq.Value, len(entries))
	nextIdx := int64(1)
	for _, e := range entries {
		var key string
		var err error
		switch {
		case e.IsPositional():
			key = strconv.FormatInt(nextIdx, 10)
			nextIdx++
		default:
			eff, _ := e.EffectiveKey()
			key, err = stringifyKey(eff, opts)
			if err != nil {
				return err
			}
		}
		if _, seen := values[key]; !seen {
			order = append(order, key)
		}
		values[key] = e.Value()
	}

	if err := enc.WriteToken(jsontext.BeginObject); err != nil {
		return err
	}
	for _, key := range order {
		if err := enc.WriteToken(jsontext.String(key)); err != nil {
			return err
		}
		if err := WriteJSON(enc, values[key], opts); err != nil {
			return err
		}
	}
	return enc.WriteToken(jsontext.EndObject)
}

// stringifyKey implements SPEC_FULL.md §6's key-stringification rule: Lua
// strings decode per opts, nil/true/false become "nil"/"true"/"false",
// numbers use their [luaq.Number.String] form, and a table key is an
// error.
func stringifyKey(key luaq.Value, opts Options) (string, error) {
	switch key.Kind() {
	case luaq.KindNil:
		return "nil", nil
	case luaq.KindBoolean:
		b, _ := key.AsBool()
		if b {
			return "true", nil
		}
		return "false", nil
	case luaq.KindNumber:
		n, _ := key.AsNumber()
		return n.String(), nil
	case luaq.KindString:
		return decodeString(key, opts)
	case luaq.KindTable:
		return "", ErrTableKeyedWithTable
	default:
		return "", fmt.Errorf("luajson: unrecognized key kind")
	}
}

// ReadJSON decodes one JSON value from dec into a [luaq.Value]: numbers
// that fit an int64 become Integer, otherwise Float; arrays become
// all-positional tables; objects become tables whose entries are Named
// when the key satisfies [luaq.IsValidIdentifier], Keyed with a string key
// otherwise.
//
// Grounded on the Rust original's from_json_value.
func ReadJSON(dec *jsontext.Decoder) (luaq.Value, error) {
	tok, err := dec.ReadToken()
	if err != nil {
		return luaq.Value{}, err
	}
	return readJSONValue(dec, tok)
}

func readJSONValue(dec *jsontext.Decoder, tok jsontext.Token) (luaq.Value, error) {
	switch tok.Kind() {
	case 'n':
		return luaq.Nil, nil
	case 't':
		return luaq.BoolValue(true), nil
	case 'f':
		return luaq.BoolValue(false), nil
	case '"':
		return luaq.StringValue([]byte(tok.String())), nil
	case '0':
		if i, ok := asExactInt64(tok); ok {
			return luaq.IntegerValue(i), nil
		}
		return luaq.FloatValue(tok.Float()), nil
	case '[':
		var entries []luaq.TableEntry
		for {
			next, err := dec.ReadToken()
			if err != nil {
				return luaq.Value{}, err
			}
			if next.Kind() == ']' {
				break
			}
			v, err := readJSONValue(dec, next)
			if err != nil {
				return luaq.Value{}, err
			}
			entries = append(entries, luaq.PositionalEntry(v))
		}
		return luaq.TableValue(entries), nil
	case '{':
		var entries []luaq.TableEntry
		for {
			keyTok, err := dec.ReadToken()
			if err != nil {
				return luaq.Value{}, err
			}
			if keyTok.Kind() == '}' {
				break
			}
			name := keyTok.String()
			valTok, err := dec.ReadToken()
			if err != nil {
				return luaq.Value{}, err
			}
			v, err := readJSONValue(dec, valTok)
			if err != nil {
				return luaq.Value{}, err
			}
			entries = append(entries, luaq.NewFieldEntry([]byte(name), v))
		}
		return luaq.TableValue(entries), nil
	default:
		return luaq.Value{}, fmt.Errorf("luajson: unexpected JSON token kind %v", tok.Kind())
	}
}

func asExactInt64(tok jsontext.Token) (int64, bool) {
	if i, err := strconv.ParseInt(tok.String(), 10, 64); err == nil {
		return i, true
	}
	f := tok.Float()
	if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}
