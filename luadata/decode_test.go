// Copyright 2025 The serde-luaq Authors
// SPDX-License-Identifier: MIT

package luadata

import (
	"testing"

	"github.com/micolous/serde-luaq"
)

type point struct {
	X int64
	Y int64
}

func TestDecodeStruct(t *testing.T) {
	v, err := luaq.ParseValue("test", []byte("{X = 1, Y = 2}"), 10)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	var p point
	if err := Decode(v, &p); err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if p.X != 1 || p.Y != 2 {
		t.Errorf("got %+v, want {1 2}", p)
	}
}

func TestDecodeDensifiedSlice(t *testing.T) {
	// {[2]=20, 20}: the explicit [2]=20 lands on key 2, and the positional
	// "20" is numbered 1 (ignoring explicit keys), so the two never
	// collide and the densified slice is [20 20].
	v, err := luaq.ParseValue("test", []byte("{[2]=20, 20}"), 10)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	var out []int64
	if err := Decode(v, &out); err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if len(out) != 2 || out[0] != 20 || out[1] != 20 {
		t.Errorf("got %v, want [20 20]", out)
	}
}

func TestDecodeMapWithNonIntegerKeys(t *testing.T) {
	v, err := luaq.ParseValue("test", []byte(`{a = 1, ["b c"] = 2}`), 10)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	var out map[string]int64
	if err := Decode(v, &out); err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if out["a"] != 1 || out["b c"] != 2 {
		t.Errorf("got %v, want map[a:1 b c:2]", out)
	}
}

func TestDecodeAssignments(t *testing.T) {
	assignments, err := luaq.ParseScript("test", []byte("x=1 y=2"), 10)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	var out struct {
		X int64
		Y int64
	}
	if err := DecodeAssignments(assignments, &out); err != nil {
		t.Fatalf("DecodeAssignments error: %v", err)
	}
	if out.X != 1 || out.Y != 2 {
		t.Errorf("got %+v, want {1 2}", out)
	}
}

func TestDecodeMapWithMixedKeyKinds(t *testing.T) {
	// The same table decodes differently depending on the destination
	// map's key type: a string-keyed map only keeps entries with a
	// string effective key (dropping the positional and integer-keyed
	// entries), with a later duplicate key ("a" named, then ['a'] keyed)
	// overwriting the earlier one.
	v, err := luaq.ParseValue("test", []byte(`{a = 1, ['a'] = 2, [2] = 20, 10, 20, 30}`), 1)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	var out map[string]int64
	if err := Decode(v, &out); err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if len(out) != 1 || out["a"] != 2 {
		t.Errorf("got %v, want map[a:2]", out)
	}
}

func TestDecodeMapWithIntegerKeys(t *testing.T) {
	// Decoding the same table into an integer-keyed map instead keeps
	// only the positional and integer-keyed entries, densifying the
	// positional ones (numbered from 1, ignoring explicit keys) together
	// with the explicit [2]=20 entry.
	v, err := luaq.ParseValue("test", []byte(`{a = 1, ['a'] = 2, [2] = 20, 10, 20, 30}`), 1)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	var out map[int64]int64
	if err := Decode(v, &out); err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	want := map[int64]int64{1: 10, 2: 20, 3: 30}
	if len(out) != len(want) {
		t.Fatalf("got %v, want %v", out, want)
	}
	for k, v := range want {
		if out[k] != v {
			t.Errorf("out[%d] = %d, want %d", k, out[k], v)
		}
	}
}

func TestDecodeNilAsAbsent(t *testing.T) {
	v, err := luaq.ParseValue("test", []byte("{1, nil, 3}"), 10)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	var out []any
	if err := Decode(v, &out); err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if len(out) != 3 || out[1] != nil {
		t.Errorf("got %v, want a 3-element slice with a nil middle element", out)
	}
}
