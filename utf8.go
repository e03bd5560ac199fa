// Copyright 2025 The serde-luaq Authors
// SPDX-License-Identifier: MIT

package luaq

import "unicode/utf8"

// Lua byte strings carry no declared encoding, but callers frequently want a
// Go string out of one. These two helpers sit on top of the standard
// library's RFC 3629 decoder (the narrower, modern ceiling — see
// strings_lit.go's appendUTF8RFC2279 doc comment for why \u{...} itself
// targets the wider RFC 2279 scheme instead).

// isValidUTF8 reports whether b is entirely well-formed UTF-8.
func isValidUTF8(b []byte) bool {
	return utf8.Valid(b)
}

// toUTF8Lossy decodes b as UTF-8, replacing each byte that does not start a
// well-formed sequence with its own U+FFFD (so two invalid bytes in a row
// yield two replacement characters, unlike strings.ToValidUTF8, which
// collapses a run of invalid bytes into one).
func toUTF8Lossy(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	var out []byte
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if r == utf8.RuneError && size == 1 {
			out = append(out, "�"...)
			b = b[1:]
			continue
		}
		out = append(out, b[:size]...)
		b = b[size:]
	}
	return string(out)
}
