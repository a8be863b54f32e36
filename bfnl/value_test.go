package bfnl

import (
	"math"
	"testing"
)

func TestValueString(t *testing.T) {
	cases := []struct {
		value Value
		want  string
	}{
		{Value{}, "0"},
		{NewInt(-42), "-42"},
		{NewFloat(3), "3.0"},
		{NewFloat(3.5), "3.5"},
		{NewFloat(0.1), "0.1"},
		{NewFloat(1e16), "1e+16"},
		{NewFloat(0.00001), "1e-05"},
		{NewFloat(math.Inf(-1)), "-inf"},
		{NewString("raw 'text'"), "raw 'text'"},
		{NewList(nil), "[]"},
		{NewList([]Value{NewInt(1), NewString("a"), NewList([]Value{NewFloat(2)})}), "[1, 'a', [2.0]]"},
		{NewList([]Value{NewString("it's")}), `["it's"]`},
		{NewList([]Value{NewString(`both ' and "`)}), `['both \' and "']`},
	}
	for _, tc := range cases {
		if got := tc.value.String(); got != tc.want {
			t.Fatalf("expected %s, got %s", tc.want, got)
		}
	}
}

func TestValueEqual(t *testing.T) {
	if !NewInt(2).Equal(NewFloat(2)) {
		t.Fatalf("expected 2 == 2.0")
	}
	if NewInt(2).Equal(NewString("2")) {
		t.Fatalf("int and text must differ")
	}
	a := NewList([]Value{NewInt(1), NewList([]Value{NewString("x")})})
	b := NewList([]Value{NewInt(1), NewList([]Value{NewString("x")})})
	if !a.Equal(b) {
		t.Fatalf("expected nested lists to be equal")
	}
	if a.Equal(NewList([]Value{NewInt(1)})) {
		t.Fatalf("lists of different length must differ")
	}
}

func TestCloneDoesNotAlias(t *testing.T) {
	inner := []Value{NewInt(1)}
	orig := NewList([]Value{NewList(inner)})
	clone := orig.Clone()
	inner[0] = NewInt(9)
	if clone.List()[0].List()[0].Int() != 1 {
		t.Fatalf("clone shares storage with original")
	}
}
