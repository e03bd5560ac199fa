// Copyright 2025 The serde-luaq Authors
// SPDX-License-Identifier: MIT

package luaq

import "testing"

func TestValueEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"nil equal nil", Nil, Nil, true},
		{"bool equal", BoolValue(true), BoolValue(true), true},
		{"bool not equal", BoolValue(true), BoolValue(false), false},
		{"number cross-type equal", IntegerValue(3), FloatValue(3.0), true},
		{"string equal", StringValue([]byte("abc")), StringValue([]byte("abc")), true},
		{"string not equal", StringValue([]byte("abc")), StringValue([]byte("abd")), false},
		{"different kinds", Nil, BoolValue(false), false},
		{
			"table equal",
			TableValue([]TableEntry{PositionalEntry(IntegerValue(1))}),
			TableValue([]TableEntry{PositionalEntry(IntegerValue(1))}),
			true,
		},
		{
			"named entry equals equivalent keyed entry",
			TableValue([]TableEntry{NamedEntry("a", IntegerValue(1))}),
			TableValue([]TableEntry{KeyedEntry(StringValue([]byte("a")), IntegerValue(1))}),
			true,
		},
		{
			"positional never equals a keyed entry with a matching value",
			TableValue([]TableEntry{PositionalEntry(IntegerValue(1))}),
			TableValue([]TableEntry{KeyedEntry(IntegerValue(1), IntegerValue(1))}),
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValueClone(t *testing.T) {
	b := []byte("hello")
	v := StringValue(b)
	clone := v.Clone()
	b[0] = 'H'
	got, _ := clone.AsBytes()
	if string(got) != "hello" {
		t.Errorf("Clone did not take an independent copy, got %q", got)
	}
}

func TestIsBorrowed(t *testing.T) {
	input := []byte(`"hello"`)
	v, err := ParseValue("test", input, 0)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if !v.IsBorrowed() {
		t.Error("unescaped short string should borrow from the input buffer")
	}
	if StringValue([]byte("hello")).IsBorrowed() {
		t.Error("StringValue constructed outside the parser should never report borrowed")
	}
}

func TestStringValueEmpty(t *testing.T) {
	v := StringValue(nil)
	b, ok := v.AsBytes()
	if !ok || len(b) != 0 {
		t.Errorf("StringValue(nil).AsBytes() = %v, %v, want empty slice, true", b, ok)
	}
}
