// Copyright 2025 The serde-luaq Authors
// SPDX-License-Identifier: MIT

package luaq

import (
	"fmt"
	"io"
)

// WriteValue writes v to w as valid Lua source that, re-parsed with an
// adequate depth budget, produces an equal tree (modulo NaN, which never
// compares equal to itself).
//
// Grounded on internal/lualex/lex.go's Quote and internal/luacode/value.go's
// Value.String/Unquoted for the string-quoting and number-formatting
// contracts; the table-entry rendering rules are this spec's own
// (SPEC_FULL.md §4.5), since the teacher's VM values have no table-entry
// spelling to preserve.
func WriteValue(w io.Writer, v Value) error {
	var bw bufWriter
	bw.buf = make([]byte, 0, 64)
	writeValue(&bw, v)
	if bw.err != nil {
		return bw.err
	}
	_, err := w.Write(bw.buf)
	return err
}

// FormatValue renders v the same way [WriteValue] does, returning the
// result as a string. It reports the same error [WriteValue] would (e.g.
// an invalid Named entry), in which case the returned string is incomplete
// and must not be used.
func FormatValue(v Value) (string, error) {
	var bw bufWriter
	bw.buf = make([]byte, 0, 64)
	writeValue(&bw, v)
	if bw.err != nil {
		return "", bw.err
	}
	return string(bw.buf), nil
}

// bufWriter accumulates formatted output in memory, so that formatting
// logic never has to check a per-byte write error; the caller writes the
// accumulated buffer to the real io.Writer exactly once.
type bufWriter struct {
	buf []byte
	err error
}

func (bw *bufWriter) writeByte(b byte) {
	bw.buf = append(bw.buf, b)
}

func (bw *bufWriter) writeString(s string) {
	bw.buf = append(bw.buf, s...)
}

func writeValue(bw *bufWriter, v Value) {
	switch v.Kind() {
	case KindNil:
		bw.writeString("nil")
	case KindBoolean:
		b, _ := v.AsBool()
		if b {
			bw.writeString("true")
		} else {
			bw.writeString("false")
		}
	case KindNumber:
		n, _ := v.AsNumber()
		bw.writeString(n.String())
	case KindString:
		s, _ := v.AsBytes()
		writeQuotedString(bw, s)
	case KindTable:
		entries, _ := v.AsTable()
		writeTable(bw, entries)
	}
}

// writeQuotedString implements SPEC_FULL.md §4.5's string-quoting
// contract: double-quote delimited, escaping the quote, backslash, and
// every control byte 0x00-0x1F, using the named short escapes where one
// exists and \xHH otherwise. Every other byte, including bytes ≥ 0x80, is
// emitted verbatim: the formatter does no UTF-8 validation.
func writeQuotedString(bw *bufWriter, s []byte) {
	bw.writeByte('"')
	for _, b := range s {
		switch b {
		case '"':
			bw.writeString(`\"`)
		case '\\':
			bw.writeString(`\\`)
		case '\a':
			bw.writeString(`\a`)
		case '\b':
			bw.writeString(`\b`)
		case '\t':
			bw.writeString(`\t`)
		case '\n':
			bw.writeString(`\n`)
		case '\v':
			bw.writeString(`\v`)
		case '\f':
			bw.writeString(`\f`)
		case '\r':
			bw.writeString(`\r`)
		default:
			if b < 0x20 {
				bw.writeString(`\x`)
				bw.writeString(hexByte(b))
			} else {
				bw.writeByte(b)
			}
		}
	}
	bw.writeByte('"')
}

const hexDigits = "0123456789abcdef"

func hexByte(b byte) string {
	return string([]byte{hexDigits[b>>4], hexDigits[b&0xf]})
}

// writeTable implements SPEC_FULL.md §4.5's table-entry rendering: Named
// entries as a bare identifier, Keyed entries bracketed, Positional
// entries as the bare value, separated by commas with no trailing
// separator.
func writeTable(bw *bufWriter, entries []TableEntry) {
	bw.writeByte('{')
	for i, e := range entries {
		if i > 0 {
			bw.writeByte(',')
		}
		switch e.Kind() {
		case entryPositional:
			writeValue(bw, e.Value())
		case entryNamed:
			name, _ := e.Name()
			if !IsValidIdentifier([]byte(name)) {
				bw.err = fmt.Errorf("cannot format table: %q is not a valid identifier", name)
				return
			}
			bw.writeString(name)
			bw.writeByte('=')
			writeValue(bw, e.Value())
		case entryKeyed:
			key, _ := e.Key()
			bw.writeByte('[')
			writeValue(bw, key)
			bw.writeByte(']')
			bw.writeByte('=')
			writeValue(bw, e.Value())
		}
	}
	bw.writeByte('}')
}
