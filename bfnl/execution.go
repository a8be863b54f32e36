package bfnl

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var errStepQuotaExceeded = errors.New("step quota exceeded")

// Execution carries the per-call state of a run: the context that can stop
// it, the steps spent against the quota, and the interpreter whose tape it
// mutates.
type Execution struct {
	interp *Interpreter
	ctx    context.Context
	steps  int
	depth  int
}

func (in *Interpreter) newExecution(ctx context.Context) *Execution {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Execution{interp: in, ctx: ctx}
}

func (exec *Execution) step() error {
	exec.steps++
	exec.interp.steps++
	if quota := exec.interp.config.StepQuota; quota > 0 && exec.steps > quota {
		return &Error{Kind: LimitError, Message: fmt.Sprintf("%v (%d)", errStepQuotaExceeded, quota)}
	}
	select {
	case <-exec.ctx.Done():
		return exec.ctx.Err()
	default:
	}
	return nil
}

// runLine strips comments and whitespace, then classifies and executes the
// statement. Empty lines are no-ops.
func (exec *Execution) runLine(raw string) error {
	line := StripComments(strings.TrimSpace(raw))
	if line == "" {
		return nil
	}
	kind, err := Classify(line)
	if err != nil {
		return err
	}
	if err := exec.step(); err != nil {
		return err
	}
	exec.interp.log.Debugf("%*s%s: %s", exec.depth*2, "", kind, line)

	switch kind {
	case StmtLoop:
		return exec.runLoop(line)
	case StmtConditional:
		return exec.runConditional(line)
	case StmtPrint:
		return exec.print()
	case StmtAssignment:
		return exec.assign(line)
	case StmtOperation:
		return exec.operate(line)
	case StmtMove:
		return exec.move(line)
	default:
		return newError(SyntaxError, "unrecognized command: %s", line)
	}
}

func (exec *Execution) runConditional(line string) error {
	blk, err := parseBlock(line, keywordConditional)
	if err != nil {
		return err
	}
	ok, err := blk.cond.Eval(exec.interp.tape.Current())
	if err != nil || !ok {
		return err
	}
	return exec.runBody(blk.body)
}

func (exec *Execution) runLoop(line string) error {
	blk, err := parseBlock(line, keywordLoop)
	if err != nil {
		return err
	}
	iterations := 0
	for {
		ok, err := blk.cond.Eval(exec.interp.tape.Current())
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		if iterations > 0 {
			if err := exec.step(); err != nil {
				return err
			}
		}
		iterations++
		if err := exec.runBody(blk.body); err != nil {
			return err
		}
	}
	exec.interp.log.Debugf("%*sloop %s ran %d iterations", exec.depth*2, "", blk.cond, iterations)
	return nil
}

func (exec *Execution) runBody(body []string) error {
	exec.depth++
	defer func() { exec.depth-- }()
	for _, fragment := range body {
		if err := exec.runLine(fragment); err != nil {
			return err
		}
	}
	return nil
}

func (exec *Execution) print() error {
	_, err := fmt.Fprintln(exec.interp.out, exec.interp.tape.Current().String())
	return err
}

func (exec *Execution) assign(line string) error {
	value, err := ParseLiteral(line[:len(line)-1])
	if err != nil {
		return err
	}
	exec.interp.tape.Set(value)
	return nil
}

func (exec *Execution) operate(line string) error {
	operand, op, err := splitOperation(line)
	if err != nil {
		return err
	}
	tape := exec.interp.tape
	result, err := applyOperator(tape.Current(), op, operand)
	if err != nil {
		return err
	}
	tape.Set(result)
	return nil
}

func (exec *Execution) move(line string) error {
	dir, n, err := parseMove(line)
	if err != nil {
		return err
	}
	if dir == '>' {
		return exec.interp.tape.MoveRight(n)
	}
	return exec.interp.tape.MoveLeft(n)
}

// splitLines normalizes line endings so CRLF and CR sources number their
// lines the same way as LF sources.
func splitLines(source string) []string {
	normalized := strings.ReplaceAll(source, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")
	return strings.Split(normalized, "\n")
}
