package bfnl

import (
	"math"
	"math/bits"
	"strings"
)

// applyOperator computes the new cell value for `operand op`. It never
// mutates cell; on error the caller keeps the old value.
func applyOperator(cell Value, op byte, operand Value) (Value, error) {
	switch operand.Kind() {
	case KindString:
		return applyTextOperator(cell, op, operand.Text())
	case KindList:
		return applyListOperator(cell, op, operand.List())
	default:
		if !cell.IsNumeric() {
			return Value{}, newError(TypeMismatch, "cannot apply %c with an integer operand to a %s cell", op, cell.Kind())
		}
		return applyNumericOperator(cell, op, operand)
	}
}

func applyTextOperator(cell Value, op byte, operand string) (Value, error) {
	switch op {
	case '+':
		if cell.Kind() != KindString {
			return Value{}, newError(SyntaxError, "cannot concatenate to a non-text value (cell is %s)", cell.Kind())
		}
		return NewString(cell.Text() + operand), nil
	case '-':
		if cell.Kind() != KindString {
			return Value{}, newError(SyntaxError, "cannot subtract from a non-text value (cell is %s)", cell.Kind())
		}
		text := cell.Text()
		if !strings.Contains(text, operand) {
			return Value{}, newError(SyntaxError, "cannot subtract %q: no matching occurrence", operand)
		}
		return NewString(strings.Replace(text, operand, "", 1)), nil
	default:
		return Value{}, newError(SyntaxError, "operator %c is not supported for text operands", op)
	}
}

func applyListOperator(cell Value, op byte, operand []Value) (Value, error) {
	switch op {
	case '+':
		if cell.Kind() != KindList {
			return Value{}, newError(SyntaxError, "cannot concatenate to a non-list value (cell is %s)", cell.Kind())
		}
		current := cell.List()
		out := make([]Value, 0, len(current)+len(operand))
		out = append(out, current...)
		for _, item := range operand {
			out = append(out, item.Clone())
		}
		return NewList(out), nil
	case '-':
		if cell.Kind() != KindList {
			return Value{}, newError(SyntaxError, "cannot subtract from a non-list value (cell is %s)", cell.Kind())
		}
		out := append([]Value(nil), cell.List()...)
		for _, item := range operand {
			for i, existing := range out {
				if existing.Equal(item) {
					out = append(out[:i], out[i+1:]...)
					break
				}
			}
		}
		return NewList(out), nil
	default:
		return Value{}, newError(SyntaxError, "operator %c is not supported for list operands", op)
	}
}

func applyNumericOperator(cell Value, op byte, operand Value) (Value, error) {
	if cell.Kind() == KindInt && op != '/' {
		return applyIntOperator(cell.Int(), op, operand.Int())
	}
	left, right := cell.Float(), operand.Float()
	switch op {
	case '+':
		return NewFloat(left + right), nil
	case '-':
		return NewFloat(left - right), nil
	case '*':
		return NewFloat(left * right), nil
	case '/':
		if right == 0 {
			return Value{}, newError(ArithmeticError, "division by zero")
		}
		return NewFloat(left / right), nil
	case '^':
		if left == 0 && right < 0 {
			return Value{}, newError(ArithmeticError, "zero cannot be raised to a negative power")
		}
		return NewFloat(math.Pow(left, right)), nil
	default:
		return Value{}, newError(SyntaxError, "unrecognized operator %c", op)
	}
}

func applyIntOperator(left int64, op byte, right int64) (Value, error) {
	switch op {
	case '+':
		sum := left + right
		if (sum > left) != (right > 0) {
			return Value{}, errIntegerOverflow(left, op, right)
		}
		return NewInt(sum), nil
	case '-':
		diff := left - right
		if (diff < left) != (right > 0) {
			return Value{}, errIntegerOverflow(left, op, right)
		}
		return NewInt(diff), nil
	case '*':
		product, ok := mulInt64(left, right)
		if !ok {
			return Value{}, errIntegerOverflow(left, op, right)
		}
		return NewInt(product), nil
	case '^':
		if right < 0 {
			if left == 0 {
				return Value{}, newError(ArithmeticError, "zero cannot be raised to a negative power")
			}
			return NewFloat(math.Pow(float64(left), float64(right))), nil
		}
		result, ok := powInt64(left, right)
		if !ok {
			return Value{}, errIntegerOverflow(left, op, right)
		}
		return NewInt(result), nil
	default:
		return Value{}, newError(SyntaxError, "unrecognized operator %c", op)
	}
}

func errIntegerOverflow(left int64, op byte, right int64) *Error {
	return newError(ArithmeticError, "integer overflow: %d %c %d", left, op, right)
}

func mulInt64(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	neg := (a < 0) != (b < 0)
	hi, lo := bits.Mul64(absUint64(a), absUint64(b))
	if hi != 0 {
		return 0, false
	}
	if neg {
		if lo > 1<<63 {
			return 0, false
		}
		return int64(-lo), true
	}
	if lo > math.MaxInt64 {
		return 0, false
	}
	return int64(lo), true
}

func powInt64(base, exp int64) (int64, bool) {
	result := int64(1)
	for exp > 0 {
		if exp&1 == 1 {
			var ok bool
			if result, ok = mulInt64(result, base); !ok {
				return 0, false
			}
		}
		exp >>= 1
		if exp > 0 {
			var ok bool
			if base, ok = mulInt64(base, base); !ok {
				return 0, false
			}
		}
	}
	return result, true
}

func absUint64(v int64) uint64 {
	if v < 0 {
		return uint64(-v)
	}
	return uint64(v)
}
