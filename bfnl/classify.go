package bfnl

import (
	"strconv"
	"strings"
)

// StatementKind identifies what a single line does.
type StatementKind int

const (
	StmtLoop StatementKind = iota + 1
	StmtConditional
	StmtPrint
	StmtAssignment
	StmtOperation
	StmtMove
)

const (
	keywordLoop        = "while"
	keywordConditional = "if"
	keywordPrint       = "print"
	bodySeparator      = ";"
	blockSeparator     = ":"
	operatorSymbols    = "+-*/^"
)

func (k StatementKind) String() string {
	switch k {
	case StmtLoop:
		return "loop"
	case StmtConditional:
		return "conditional"
	case StmtPrint:
		return "print"
	case StmtAssignment:
		return "assignment"
	case StmtOperation:
		return "operation"
	case StmtMove:
		return "move"
	default:
		return "unknown"
	}
}

// Classify decides the statement kind of a stripped, comment-free line.
// Keyword prefixes win over suffix checks.
func Classify(line string) (StatementKind, error) {
	switch {
	case line == "":
		return 0, newError(SyntaxError, "empty statement")
	case strings.HasPrefix(line, keywordLoop):
		return StmtLoop, nil
	case strings.HasPrefix(line, keywordConditional):
		return StmtConditional, nil
	case strings.HasPrefix(line, keywordPrint):
		return StmtPrint, nil
	}
	switch last := line[len(line)-1]; {
	case last == '=':
		return StmtAssignment, nil
	case strings.IndexByte(operatorSymbols, last) >= 0:
		return StmtOperation, nil
	case last == '<' || last == '>':
		return StmtMove, nil
	default:
		return 0, newError(SyntaxError, "unrecognized command: %s", line)
	}
}

// block is the parsed head of a conditional or loop. The body stays as raw
// fragments; each one is classified when it runs.
type block struct {
	cond Condition
	body []string
}

func parseBlock(line, keyword string) (block, error) {
	rest := strings.TrimPrefix(line, keyword)
	condText, bodyText, ok := strings.Cut(rest, blockSeparator)
	if !ok {
		return block{}, newError(SyntaxError, "%s statement missing %q: %s", keyword, blockSeparator, line)
	}
	cond, err := ParseCondition(strings.TrimSpace(condText))
	if err != nil {
		return block{}, err
	}
	var body []string
	for _, fragment := range strings.Split(bodyText, bodySeparator) {
		if fragment = strings.TrimSpace(fragment); fragment != "" {
			body = append(body, fragment)
		}
	}
	return block{cond: cond, body: body}, nil
}

// parseMove returns the direction character and the step count. A prefix
// that is not all digits falls back to a single step.
func parseMove(line string) (byte, int, error) {
	dir := line[len(line)-1]
	prefix := strings.TrimSpace(line[:len(line)-1])
	if prefix == "" || !isDigits(prefix) {
		return dir, 1, nil
	}
	n, err := strconv.Atoi(prefix)
	if err != nil {
		return dir, 0, newError(IndexError, "move amount %s out of range", prefix)
	}
	return dir, n, nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func splitOperation(line string) (Value, byte, error) {
	op := line[len(line)-1]
	operand, err := ParseLiteral(line[:len(line)-1])
	if err != nil {
		return Value{}, op, err
	}
	return operand, op, nil
}
