package bfnl

import (
	"fmt"
	"strings"
)

// Comparator is one of the comparison operators a condition may use.
type Comparator string

const (
	CompareGreaterEqual Comparator = ">="
	CompareLessEqual    Comparator = "<="
	CompareNotEqual     Comparator = "!="
	CompareGreater      Comparator = ">"
	CompareLess         Comparator = "<"
	CompareEqual        Comparator = "="
)

// comparators is ordered so two-character operators match before their
// one-character prefixes.
var comparators = []Comparator{
	CompareGreaterEqual,
	CompareLessEqual,
	CompareNotEqual,
	CompareGreater,
	CompareLess,
	CompareEqual,
}

// Condition is a parsed comparison against the current cell.
type Condition struct {
	Op    Comparator
	Value int64
}

// ParseCondition finds the first comparator present in text and parses the
// rest as an integer. Any text before the comparator is ignored.
func ParseCondition(text string) (Condition, error) {
	for _, op := range comparators {
		idx := strings.Index(text, string(op))
		if idx < 0 {
			continue
		}
		rhs := text[idx+len(op):]
		n, err := parseInteger(rhs)
		if err != nil {
			return Condition{}, newError(SyntaxError, "invalid condition %q: expected integer after %s", text, op)
		}
		return Condition{Op: op, Value: n}, nil
	}
	return Condition{}, newError(SyntaxError, "unrecognized comparison operator in condition %q", text)
}

// Eval compares cell against the condition. Only numeric cells can be
// compared.
func (c Condition) Eval(cell Value) (bool, error) {
	if !cell.IsNumeric() {
		return false, newError(TypeMismatch, "cannot compare %s cell with %s%d", cell.Kind(), c.Op, c.Value)
	}
	if cell.Kind() == KindInt {
		return compare(c.Op, cell.Int(), c.Value)
	}
	return compare(c.Op, cell.Float(), float64(c.Value))
}

func (c Condition) String() string {
	return fmt.Sprintf("%s%d", c.Op, c.Value)
}

func compare[T int64 | float64](op Comparator, a, b T) (bool, error) {
	switch op {
	case CompareGreaterEqual:
		return a >= b, nil
	case CompareLessEqual:
		return a <= b, nil
	case CompareNotEqual:
		return a != b, nil
	case CompareGreater:
		return a > b, nil
	case CompareLess:
		return a < b, nil
	case CompareEqual:
		return a == b, nil
	default:
		return false, newError(SyntaxError, "unrecognized comparison operator %q", op)
	}
}
