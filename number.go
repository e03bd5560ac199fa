// Copyright 2025 The serde-luaq Authors
// SPDX-License-Identifier: MIT

package luaq

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// numberKind distinguishes the two variants of [Number].
type numberKind uint8

const (
	numberInteger numberKind = iota
	numberFloat
)

// Number is a Lua number: either a 64-bit signed integer or an IEEE-754
// binary64 float, matching Lua 5.4's integer/float duality.
//
// The zero Number is the integer 0.
type Number struct {
	kind numberKind
	i    int64
	f    float64
}

// IntegerNumber returns the [Number] holding the integer i.
func IntegerNumber(i int64) Number {
	return Number{kind: numberInteger, i: i}
}

// FloatNumber returns the [Number] holding the float f.
func FloatNumber(f float64) Number {
	return Number{kind: numberFloat, f: f}
}

// IsInteger reports whether n holds an integer.
func (n Number) IsInteger() bool {
	return n.kind == numberInteger
}

// IsFloat reports whether n holds a float.
func (n Number) IsFloat() bool {
	return n.kind == numberFloat
}

// IsNaN reports whether n is a float holding NaN.
func (n Number) IsNaN() bool {
	return n.kind == numberFloat && math.IsNaN(n.f)
}

// IsFinite reports whether n is an integer, or a float holding a finite value.
func (n Number) IsFinite() bool {
	if n.kind == numberInteger {
		return true
	}
	return !math.IsNaN(n.f) && !math.IsInf(n.f, 0)
}

// IsInfinite reports whether n is a float holding +Inf or -Inf.
func (n Number) IsInfinite() bool {
	return n.kind == numberFloat && math.IsInf(n.f, 0)
}

// Int64 returns the integer value of n and true, if n holds an integer.
// It never coerces a float, even an integral one: Lua's own narrowing rules
// are applied explicitly by callers (see [Number.Float64] for the reverse
// direction, and the luadata package for field-directed coercion).
func (n Number) Int64() (v int64, ok bool) {
	if n.kind != numberInteger {
		return 0, false
	}
	return n.i, true
}

// maxSafeFloatInt is the largest magnitude integer exactly representable as
// a float64: 2^53 - 1.
const maxSafeFloatInt = 1<<53 - 1

// Float64 returns the float value of n and true.
// For an [Number] holding an integer, the conversion only succeeds
// (ok == true) when the integer's magnitude is at most 2^53-1, the largest
// value exactly representable in a float64 mantissa.
func (n Number) Float64() (v float64, ok bool) {
	switch n.kind {
	case numberFloat:
		return n.f, true
	case numberInteger:
		if n.i > maxSafeFloatInt || n.i < -maxSafeFloatInt {
			return 0, false
		}
		return float64(n.i), true
	default:
		return 0, false
	}
}

// Equal reports whether n and other represent the same mathematical value,
// following Lua's cross-type number equality (an integer and a float compare
// equal when the float has an exact integral value equal to the integer).
// Two NaN floats are *not* equal, matching IEEE-754 and Lua semantics.
func (n Number) Equal(other Number) bool {
	if n.kind == other.kind {
		if n.kind == numberInteger {
			return n.i == other.i
		}
		return n.f == other.f
	}
	// Cross-type: compare the integer side against the float side's
	// truncated value, rejecting non-integral floats.
	var i int64
	var f float64
	if n.kind == numberInteger {
		i, f = n.i, other.f
	} else {
		i, f = other.i, n.f
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || math.Trunc(f) != f {
		return false
	}
	return f == float64(i) && int64(f) == i
}

// IdenticalTo reports whether n and other hold the identical representation,
// treating two NaN floats as identical (unlike [Number.Equal]) and never
// comparing across the integer/float boundary.
func (n Number) IdenticalTo(other Number) bool {
	if n.kind != other.kind {
		return false
	}
	if n.kind == numberInteger {
		return n.i == other.i
	}
	return math.Float64bits(n.f) == math.Float64bits(other.f) ||
		(math.IsNaN(n.f) && math.IsNaN(other.f))
}

// String renders n using the shortest-roundtrip form described in
// SPEC_FULL.md §4.1: a decimal integer, or a hexadecimal float literal with
// the special cases 0x0p0 (zero), 1e9999 (+Inf), -1e9999 (-Inf) and (0/0)
// (NaN).
func (n Number) String() string {
	if n.kind == numberInteger {
		return strconv.FormatInt(n.i, 10)
	}
	return formatHexFloat(n.f)
}

// formatHexFloat renders f as a Lua hexadecimal float literal.
//
// Grounded on internal/luacode/value.go's Value.String, which special-cases
// the same three non-finite forms. The finite case uses fmt's own %x verb
// for float64 (exact, since every float64 has an exact hex-float spelling)
// rather than hand-rolling ldexp-based conversion; the exponent is then
// stripped of the leading zero padding fmt always applies.
func formatHexFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "(0/0)"
	case math.IsInf(f, 1):
		return "1e9999"
	case math.IsInf(f, -1):
		return "-1e9999"
	case f == 0:
		return "0x0p0"
	}
	return trimHexExponent(fmt.Sprintf("%x", f))
}

// trimHexExponent strips the leading zero padding that fmt's %x verb
// applies to the binary exponent, e.g. "0x1.8p+01" -> "0x1.8p+1".
func trimHexExponent(s string) string {
	i := strings.IndexByte(s, 'p')
	if i < 0 || i+1 >= len(s) {
		return s
	}
	mantissa, exp := s[:i+1], s[i+1:]
	sign := byte('+')
	if exp[0] == '+' || exp[0] == '-' {
		sign = exp[0]
		exp = exp[1:]
	}
	exp = strings.TrimLeft(exp, "0")
	if exp == "" {
		exp = "0"
	}
	return mantissa + string(sign) + exp
}
