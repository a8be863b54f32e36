package bfnl

import (
	"fmt"
	"strings"
)

type ValueKind int

const (
	KindInt ValueKind = iota
	KindFloat
	KindString
	KindList
)

// Value is a single tape cell. The zero Value is the integer 0.
type Value struct {
	kind ValueKind
	data any
}

func NewInt(i int64) Value     { return Value{kind: KindInt, data: i} }
func NewFloat(f float64) Value { return Value{kind: KindFloat, data: f} }
func NewString(s string) Value { return Value{kind: KindString, data: s} }
func NewList(l []Value) Value  { return Value{kind: KindList, data: l} }

func (k ValueKind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "text"
	case KindList:
		return "list"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

func (v Value) Kind() ValueKind { return v.kind }

// IsNumeric reports whether v holds an int or a float.
func (v Value) IsNumeric() bool { return v.kind == KindInt || v.kind == KindFloat }

func (v Value) Int() int64 {
	switch v.kind {
	case KindInt:
		if v.data == nil {
			return 0
		}
		return v.data.(int64)
	case KindFloat:
		return int64(v.data.(float64))
	default:
		return 0
	}
}

func (v Value) Float() float64 {
	switch v.kind {
	case KindFloat:
		return v.data.(float64)
	case KindInt:
		return float64(v.Int())
	default:
		return 0
	}
}

func (v Value) Text() string {
	if v.kind != KindString {
		return ""
	}
	return v.data.(string)
}

// List returns the elements of a list value. The slice is shared with the
// value; callers that mutate it must copy first.
func (v Value) List() []Value {
	if v.kind != KindList {
		return nil
	}
	return v.data.([]Value)
}

func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return fmt.Sprintf("%d", v.Int())
	case KindFloat:
		return formatFloat(v.data.(float64))
	case KindString:
		return v.data.(string)
	case KindList:
		return formatList(v.List())
	default:
		return ""
	}
}

// Repr renders v the way it appears inside a printed list: text is quoted,
// everything else matches String.
func (v Value) Repr() string {
	if v.kind == KindString {
		return quoteText(v.data.(string))
	}
	return v.String()
}

// Equal compares values structurally. Ints and floats compare by numeric
// value, so 2 and 2.0 are equal.
func (v Value) Equal(other Value) bool {
	if v.IsNumeric() && other.IsNumeric() {
		if v.kind == KindInt && other.kind == KindInt {
			return v.Int() == other.Int()
		}
		return v.Float() == other.Float()
	}
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.Text() == other.Text()
	case KindList:
		left, right := v.List(), other.List()
		if len(left) != len(right) {
			return false
		}
		for i := range left {
			if !left[i].Equal(right[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Clone returns a deep copy so list cells never alias literal storage.
func (v Value) Clone() Value {
	if v.kind != KindList {
		return v
	}
	elems := v.List()
	out := make([]Value, len(elems))
	for i, e := range elems {
		out[i] = e.Clone()
	}
	return NewList(out)
}

func formatList(elems []Value) string {
	parts := make([]string, len(elems))
	for i, e := range elems {
		parts[i] = e.Repr()
	}
	return fmt.Sprintf("[%s]", strings.Join(parts, ", "))
}
