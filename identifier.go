// Copyright 2025 The serde-luaq Authors
// SPDX-License-Identifier: MIT

package luaq

import "sort"

// reservedWords holds the 22 Lua 5.4 keywords, sorted for binary search.
// Grounded on internal/lualex/lex.go's keywords map and the Rust original's
// LUA_KEYWORDS sorted slice.
var reservedWords = []string{
	"and", "break", "do", "else", "elseif", "end", "false", "for",
	"function", "goto", "if", "in", "local", "nil", "not", "or",
	"repeat", "return", "then", "true", "until", "while",
}

// IsReservedWord reports whether s is one of the 22 Lua 5.4 keywords.
func IsReservedWord(s string) bool {
	i := sort.SearchStrings(reservedWords, s)
	return i < len(reservedWords) && reservedWords[i] == s
}

// IsValidIdentifier reports whether b is a legal Lua identifier: non-empty,
// ASCII letter-or-underscore followed by ASCII letters/digits/underscores,
// and not a reserved word. No locale or Unicode extension is recognized,
// even where a strict Lua 5.4 build would accept one (SPEC_FULL.md §4.3.7).
func IsValidIdentifier(b []byte) bool {
	if len(b) == 0 {
		return false
	}
	if !isIdentStart(b[0]) {
		return false
	}
	for _, c := range b[1:] {
		if !isIdentCont(c) {
			return false
		}
	}
	return !IsReservedWord(string(b))
}

func isIdentStart(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isIdentCont(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}
