package bfnl

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrorKind classifies failures raised while executing a program.
type ErrorKind int

const (
	SyntaxError ErrorKind = iota + 1
	IndexError
	TypeMismatch
	ArithmeticError
	LimitError
)

func (k ErrorKind) String() string {
	switch k {
	case SyntaxError:
		return "SyntaxError"
	case IndexError:
		return "IndexError"
	case TypeMismatch:
		return "TypeMismatch"
	case ArithmeticError:
		return "ArithmeticError"
	case LimitError:
		return "LimitError"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is the terminal error returned by the interpreter. Line is the
// 1-based program line that failed, or 0 when the statement did not come
// from a program (for example a single REPL line).
type Error struct {
	Kind      ErrorKind
	Message   string
	Line      int
	Statement string
	CodeFrame string
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.CodeFrame != "" {
		b.WriteString("\n")
		b.WriteString(e.CodeFrame)
	}
	return b.String()
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var bErr *Error
	if errors.As(err, &bErr) {
		return bErr.Kind == kind
	}
	return false
}

func newError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// locate attaches the program position to err unless an inner statement
// already did.
func locate(err error, line int, text string) error {
	var bErr *Error
	if !errors.As(err, &bErr) || bErr.Line > 0 {
		return err
	}
	bErr.Line = line
	bErr.Statement = text
	bErr.CodeFrame = formatCodeFrame(text, line)
	return bErr
}

func formatCodeFrame(lineText string, line int) string {
	if line <= 0 {
		return ""
	}
	lineLabel := strconv.Itoa(line)
	gutterPad := strings.Repeat(" ", len(lineLabel))
	indent := len(lineText) - len(strings.TrimLeft(lineText, " \t"))
	caretPad := strings.Repeat(" ", indent)

	return fmt.Sprintf(
		"  --> line %d\n %s | %s\n %s | %s^",
		line,
		lineLabel,
		lineText,
		gutterPad,
		caretPad,
	)
}
