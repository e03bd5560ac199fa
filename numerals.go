// Copyright 2025 The serde-luaq Authors
// SPDX-License-Identifier: MIT

package luaq

import (
	"errors"
	"strconv"
	"strings"
)

// isDigit reports whether c is an ASCII decimal digit.
// Grounded on internal/lualex/lex.go's isDigit.
func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

// isHexDigit reports whether c is an ASCII hexadecimal digit.
// Grounded on internal/lualex/lex.go's isHexDigit.
func isHexDigit(c byte) bool {
	return isDigit(c) || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

// isLetter reports whether c is an ASCII letter or underscore.
func isLetter(c byte) bool {
	return c == '_' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

// isSpace reports whether c is whitespace in the data grammar.
func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	default:
		return false
	}
}

// scanNumeral scans the longest numeral token starting at p.pos, following
// the seven ordered alternatives of SPEC_FULL.md §4.3.3, and returns it
// converted to a Number. p.pos is advanced past the token on success.
//
// Grounded on internal/lualex/lex.go's Scanner.numeral/exponent (scan
// shape, adapted from io.ByteScanner reads to direct slice indexing) and
// internal/lualex/numbers.go's ParseInt/ParseNumber (conversion).
func (p *Parser) scanNumeral() (Number, error) {
	start := p.pos
	startByte := p.peek()

	// Alternatives 1-3: the three special literals, checked before the
	// general numeral grammar since "-1e9999" and "1e9999" would otherwise
	// be consumed as ordinary (overflowing) decimal floats anyway - they are
	// called out explicitly in the spec as distinct grammar terminals, and
	// "(0/0)" in particular cannot be reached by the general grammar at all.
	if p.hasPrefixAt(p.pos, "-1e9999") && !isNumeralContinuation(p.byteAt(p.pos+len("-1e9999"))) {
		p.pos += len("-1e9999")
		return FloatNumber(negInf), nil
	}
	if p.hasPrefixAt(p.pos, "1e9999") && !isNumeralContinuation(p.byteAt(p.pos+len("1e9999"))) {
		p.pos += len("1e9999")
		return FloatNumber(posInf), nil
	}
	if p.hasPrefixAt(p.pos, "(0/0)") {
		p.pos += len("(0/0)")
		return FloatNumber(nanValue), nil
	}

	neg := false
	if startByte == '+' || startByte == '-' {
		neg = startByte == '-'
		p.pos++
	}
	if !isDigit(p.peek()) && p.peek() != '.' {
		p.pos = start
		return Number{}, p.errorf("expected numeral")
	}

	isHex := false
	if p.peek() == '0' && (p.byteAt(p.pos+1) == 'x' || p.byteAt(p.pos+1) == 'X') {
		isHex = true
		p.pos += 2
	}

	hasIntDigits := p.consumeDigits(isHex)
	hasFrac := false
	hasDot := false
	if p.peek() == '.' {
		hasDot = true
		p.pos++
		hasFrac = p.consumeDigits(isHex)
	}
	if !hasIntDigits && !hasFrac {
		p.pos = start
		return Number{}, p.errorf("malformed numeral")
	}

	hasExp := false
	expMarker := byte('e')
	if isHex {
		expMarker = 'p'
	}
	if c := lower(p.peek()); c == expMarker {
		expStart := p.pos
		p.pos++
		if p.peek() == '+' || p.peek() == '-' {
			p.pos++
		}
		if !isDigit(p.peek()) {
			p.pos = expStart
			return Number{}, p.errorf("malformed exponent")
		}
		for isDigit(p.peek()) {
			p.pos++
		}
		hasExp = true
	}

	if isLetter(p.peek()) {
		return Number{}, p.errorf("numeral followed by letter")
	}

	text := string(p.input[start:p.pos])

	switch {
	case isHex && !hasDot && !hasExp:
		// Alternative 6: hex integer, with Lua's wraparound semantics.
		return parseHexIntegerWrapping(text, neg)
	case isHex:
		// Alternative 5: hex float.
		f, err := parseHexFloat(text)
		if err != nil {
			return Number{}, p.wrapErr(err)
		}
		return FloatNumber(f), nil
	case !hasDot && !hasExp:
		// Alternative 7: decimal integer, falling back to float on overflow.
		if i, err := strconv.ParseInt(text, 10, 64); err == nil {
			return IntegerNumber(i), nil
		}
		f, err := strconv.ParseFloat(text, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return Number{}, p.wrapErr(err)
		}
		return FloatNumber(f), nil
	default:
		// Alternative 4: decimal float.
		f, err := strconv.ParseFloat(text, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return Number{}, p.wrapErr(err)
		}
		return FloatNumber(f), nil
	}
}

// consumeDigits advances p.pos over a run of decimal (or, if hex, hex)
// digits, reporting whether at least one was consumed.
func (p *Parser) consumeDigits(hex bool) bool {
	start := p.pos
	for {
		b := p.peek()
		if hex && isHexDigit(b) || !hex && isDigit(b) {
			p.pos++
			continue
		}
		break
	}
	return p.pos > start
}

// parseHexIntegerWrapping implements SPEC_FULL.md §4.3.3 alternative 6:
// modulo-2^64 accumulation of the hex digits, then sign negation modulo
// 2^64, then reinterpretation as signed i64.
//
// Grounded on internal/lualex/numbers.go's ParseInt hex branch, which
// achieves the same wraparound by truncating the digit string to its
// trailing 16 hex digits (64 bits) rather than accumulating one digit at a
// time; this port accumulates digit-by-digit instead, since the parser has
// already located the hex-digit span and a second strconv.ParseUint pass
// would have to re-derive it.
func parseHexIntegerWrapping(text string, neg bool) (Number, error) {
	body := text
	if len(body) > 0 && (body[0] == '+' || body[0] == '-') {
		body = body[1:]
	}
	body = body[2:] // strip 0x/0X
	var acc uint64
	for i := 0; i < len(body); i++ {
		acc = acc*16 + uint64(hexDigitValue(body[i]))
	}
	if neg {
		acc = -acc
	}
	return IntegerNumber(int64(acc)), nil
}

func hexDigitValue(c byte) int {
	switch {
	case '0' <= c && c <= '9':
		return int(c - '0')
	case 'a' <= c && c <= 'f':
		return int(c-'a') + 10
	default:
		return int(c-'A') + 10
	}
}

// parseHexFloat converts a hex-float numeral (with optional sign, always
// present in text) using Go's native hex-float support in strconv, adding
// a synthetic "p0" exponent when the source omitted one (Go requires an
// exponent on hex float literals; Lua does not).
//
// Grounded on internal/lualex/numbers.go's ParseNumber, which applies the
// identical "append p0" trick.
func parseHexFloat(text string) (float64, error) {
	toParse := text
	if !strings.ContainsAny(text, "pP") {
		toParse = text + "p0"
	}
	f, err := strconv.ParseFloat(toParse, 64)
	if errors.Is(err, strconv.ErrRange) {
		err = nil
	}
	return f, err
}

func lower(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

// isNumeralContinuation reports whether c could extend a numeral token,
// used to make sure e.g. "1e99990" is not mistaken for the special
// "1e9999" literal followed by a stray "0".
func isNumeralContinuation(c byte) bool {
	return isDigit(c) || isLetter(c) || c == '.'
}
