package bfnl

import (
	"context"
	"io"
	"os"

	"github.com/tliron/commonlog"
)

// Config controls interpreter output and optional execution bounds. The zero
// Config writes to stdout and never limits a program. StepQuota applies to
// each Execute or ExecuteLine call separately.
type Config struct {
	Output    io.Writer
	StepQuota int
	MaxCells  int
	Logger    commonlog.Logger
}

// Interpreter owns one tape and executes programs against it. An
// Interpreter is not safe for concurrent use.
type Interpreter struct {
	config Config
	tape   *Tape
	out    io.Writer
	log    commonlog.Logger
	steps  int
}

// NewInterpreter constructs an Interpreter with a fresh tape.
func NewInterpreter(cfg Config) *Interpreter {
	return NewInterpreterWithTape(cfg, NewTape())
}

// NewInterpreterWithTape constructs an Interpreter that continues from an
// existing tape, typically one restored with DecodeSnapshot.
func NewInterpreterWithTape(cfg Config, tape *Tape) *Interpreter {
	if cfg.StepQuota < 0 {
		cfg.StepQuota = 0
	}
	if cfg.MaxCells < 0 {
		cfg.MaxCells = 0
	}
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = commonlog.GetLogger("bfnl")
	}
	if tape == nil {
		tape = NewTape()
	}
	tape.SetLimit(cfg.MaxCells)
	return &Interpreter{config: cfg, tape: tape, out: out, log: logger}
}

// Tape exposes the interpreter's memory.
func (in *Interpreter) Tape() *Tape { return in.tape }

// Steps reports how many steps have run since the interpreter was created
// or last reset.
func (in *Interpreter) Steps() int { return in.steps }

// Reset discards all tape state and the step counter.
func (in *Interpreter) Reset() {
	in.tape.Reset()
	in.steps = 0
}

// Execute runs every line of source in order and stops at the first error.
// Output already written before a failure is not retracted.
func (in *Interpreter) Execute(ctx context.Context, source string) error {
	exec := in.newExecution(ctx)
	for i, line := range splitLines(source) {
		if err := exec.runLine(line); err != nil {
			return locate(err, i+1, line)
		}
	}
	in.log.Debugf("program finished after %d steps", exec.steps)
	return nil
}

// ExecuteLine runs a single statement line against the current tape.
func (in *Interpreter) ExecuteLine(ctx context.Context, line string) error {
	return in.newExecution(ctx).runLine(line)
}
