package bfnl

import (
	"errors"
	"strings"
)

// Diagnostic is a problem Analyze found without running the program.
type Diagnostic struct {
	Line      int
	Kind      ErrorKind
	Message   string
	Statement string
}

// Analyze checks every statement of source for problems that would fail
// regardless of tape contents: unrecognized shapes, malformed conditions
// and literals, and operators that no operand kind supports. Loop and
// conditional bodies are checked even when their condition would be false.
func Analyze(source string) []Diagnostic {
	var diags []Diagnostic
	for i, raw := range splitLines(source) {
		for _, err := range checkStatement(raw) {
			diag := Diagnostic{Line: i + 1, Kind: SyntaxError, Message: err.Error(), Statement: strings.TrimSpace(raw)}
			var bErr *Error
			if errors.As(err, &bErr) {
				diag.Kind = bErr.Kind
				diag.Message = bErr.Message
			}
			diags = append(diags, diag)
		}
	}
	return diags
}

func checkStatement(raw string) []error {
	line := StripComments(strings.TrimSpace(raw))
	if line == "" {
		return nil
	}
	kind, err := Classify(line)
	if err != nil {
		return []error{err}
	}
	switch kind {
	case StmtLoop, StmtConditional:
		keyword := keywordConditional
		if kind == StmtLoop {
			keyword = keywordLoop
		}
		blk, err := parseBlock(line, keyword)
		if err != nil {
			return []error{err}
		}
		var errs []error
		for _, fragment := range blk.body {
			errs = append(errs, checkStatement(fragment)...)
		}
		return errs
	case StmtAssignment:
		if _, err := ParseLiteral(line[:len(line)-1]); err != nil {
			return []error{err}
		}
	case StmtOperation:
		operand, op, err := splitOperation(line)
		if err != nil {
			return []error{err}
		}
		if operand.Kind() != KindInt && op != '+' && op != '-' {
			return []error{newError(SyntaxError, "operator %c is not supported for %s operands", op, operand.Kind())}
		}
	case StmtMove:
		if _, _, err := parseMove(line); err != nil {
			return []error{err}
		}
	}
	return nil
}
