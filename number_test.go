// Copyright 2025 The serde-luaq Authors
// SPDX-License-Identifier: MIT

package luaq

import (
	"math"
	"testing"
)

func TestNumberString(t *testing.T) {
	tests := []struct {
		name string
		n    Number
		want string
	}{
		{"zero int", IntegerNumber(0), "0"},
		{"negative int", IntegerNumber(-1), "-1"},
		{"min int64", IntegerNumber(math.MinInt64), "-9223372036854775808"},
		{"zero float", FloatNumber(0), "0x0p0"},
		{"positive infinity", FloatNumber(math.Inf(1)), "1e9999"},
		{"negative infinity", FloatNumber(math.Inf(-1)), "-1e9999"},
		{"nan", FloatNumber(math.NaN()), "(0/0)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.n.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNumberEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Number
		want bool
	}{
		{"same int", IntegerNumber(3), IntegerNumber(3), true},
		{"int vs equal float", IntegerNumber(3), FloatNumber(3.0), true},
		{"int vs non-integral float", IntegerNumber(3), FloatNumber(3.5), false},
		{"nan not equal nan", FloatNumber(math.NaN()), FloatNumber(math.NaN()), false},
		{"different ints", IntegerNumber(3), IntegerNumber(4), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNumberIdenticalTo(t *testing.T) {
	a := FloatNumber(math.NaN())
	b := FloatNumber(math.NaN())
	if !a.IdenticalTo(b) {
		t.Error("two NaNs should be IdenticalTo each other")
	}
	if IntegerNumber(3).IdenticalTo(FloatNumber(3)) {
		t.Error("an integer should never be IdenticalTo a float, even an equal one")
	}
}

func TestNumberFloat64Narrowing(t *testing.T) {
	if _, ok := IntegerNumber(1 << 53).Float64(); ok {
		t.Error("2^53 should not be exactly representable as a narrowing float64")
	}
	if v, ok := IntegerNumber(1<<53 - 1).Float64(); !ok || v != float64(1<<53-1) {
		t.Errorf("2^53-1 should narrow exactly, got %v, %v", v, ok)
	}
}
