// Copyright 2025 The serde-luaq Authors
// SPDX-License-Identifier: MIT

package luaq

import (
	"bytes"
	"testing"
)

func TestFormatValueStringQuoting(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want string
	}{
		{"plain", []byte("hello"), `"hello"`},
		{"quote", []byte(`a"b`), `"a\"b"`},
		{"backslash", []byte(`a\b`), `"a\\b"`},
		{"tab", []byte("a\tb"), `"a\tb"`},
		{"control byte", []byte{0x01}, `"\x01"`},
		{"high byte passthrough", []byte{0xE6, 0x97, 0xA5}, "\"\xE6\x97\xA5\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatValue(StringValue(tt.in))
			if err != nil {
				t.Fatalf("FormatValue(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("FormatValue(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestWriteValueRejectsInvalidNamedEntry(t *testing.T) {
	// NamedEntry is normally only constructed via NewFieldEntry, which
	// guards the identifier check; calling it directly bypasses that, so
	// the formatter must itself refuse to emit the malformed result.
	v := TableValue([]TableEntry{NamedEntry("2bad", IntegerValue(1))})
	var buf bytes.Buffer
	if err := WriteValue(&buf, v); err == nil {
		t.Error("expected an error formatting a Named entry with an invalid identifier")
	}
}

func TestWriteValueTableFormatting(t *testing.T) {
	v := TableValue([]TableEntry{
		PositionalEntry(IntegerValue(1)),
		NamedEntry("x", IntegerValue(2)),
		KeyedEntry(IntegerValue(3), IntegerValue(4)),
	})
	got, err := FormatValue(v)
	if err != nil {
		t.Fatalf("FormatValue error: %v", err)
	}
	want := "{1,x=2,[3]=4}"
	if got != want {
		t.Errorf("FormatValue = %q, want %q", got, want)
	}
}

func TestFormatValueRejectsInvalidNamedEntry(t *testing.T) {
	v := TableValue([]TableEntry{NamedEntry("2bad", IntegerValue(1))})
	if _, err := FormatValue(v); err == nil {
		t.Error("expected an error formatting a Named entry with an invalid identifier")
	}
}
