package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/tliron/commonlog"
	"golang.org/x/term"

	"github.com/mgomes/bfnl/bfnl"

	_ "github.com/tliron/commonlog/simple"
)

const scriptExt = ".bfnl"

var log = commonlog.GetLogger("bfnl.cli")

func main() {
	if err := runCLI(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCLI(args []string) error {
	if len(args) < 2 {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return replCommand(nil)
		}
		return runSource(os.Stdin, os.Stdout)
	}
	switch args[1] {
	case "run":
		return runCommand(args[2:])
	case "analyze":
		return analyzeCommand(args[2:])
	case "fmt":
		return fmtCommand(args[2:])
	case "repl":
		return replCommand(args[2:])
	case "help", "-h", "--help":
		printUsage()
		return nil
	default:
		return usageError()
	}
}

// runFlags are shared by every subcommand that executes programs.
type runFlags struct {
	config    *string
	steps     *int
	maxCells  *int
	verbosity verbosityFlag
	logFile   *string
}

func addRunFlags(fs *flag.FlagSet) *runFlags {
	rf := &runFlags{
		config:   fs.String("config", "", "path to bfnl.toml (default: search upward)"),
		steps:    fs.Int("steps", -1, "maximum steps per run, 0 for unlimited"),
		maxCells: fs.Int("max-cells", -1, "maximum tape cells, 0 for unlimited"),
		logFile:  fs.String("log", "", "write logs to this file instead of stderr"),
	}
	fs.Var(&rf.verbosity, "v", "increase log verbosity (repeatable)")
	return rf
}

// apply loads the project config and lets flags override it.
func (rf *runFlags) apply(startDir string) (*projectConfig, error) {
	cfg, err := resolveConfig(*rf.config, startDir)
	if err != nil {
		return nil, err
	}
	if *rf.steps >= 0 {
		cfg.Interpreter.StepQuota = *rf.steps
		cfg.REPL.StepQuota = *rf.steps
	}
	if *rf.maxCells >= 0 {
		cfg.Interpreter.MaxCells = *rf.maxCells
	}
	if rf.verbosity > 0 {
		cfg.Log.Verbosity = int(rf.verbosity)
	}
	if *rf.logFile != "" {
		abs, err := filepath.Abs(*rf.logFile)
		if err != nil {
			return nil, fmt.Errorf("resolve log file: %w", err)
		}
		cfg.Log.File = abs
	}
	configureLogging(cfg)
	if cfg.Path != "" {
		log.Debugf("loaded config %s", cfg.Path)
	}
	return cfg, nil
}

func runCommand(args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	rf := addRunFlags(fs)
	checkOnly := fs.Bool("check", false, "only analyze the script without executing")
	dumpPath := fs.String("dump", "", "write the final tape snapshot to this file")
	loadPath := fs.String("load", "", "start from a tape snapshot file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	remaining := fs.Args()
	if len(remaining) == 0 {
		return errors.New("bfnl run: script path required")
	}
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolve working directory: %w", err)
	}
	cfg, err := rf.apply(wd)
	if err != nil {
		return err
	}
	scriptPath, err := resolveScript(remaining[0], cfg)
	if err != nil {
		return err
	}
	input, err := os.ReadFile(scriptPath)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	if *checkOnly {
		return reportDiagnostics(scriptPath, bfnl.Analyze(string(input)), os.Stdout)
	}

	tape := bfnl.NewTape()
	if *loadPath != "" {
		if tape, err = readSnapshot(*loadPath); err != nil {
			return err
		}
	}
	interp := bfnl.NewInterpreterWithTape(bfnl.Config{
		Output:    os.Stdout,
		StepQuota: cfg.Interpreter.StepQuota,
		MaxCells:  cfg.Interpreter.MaxCells,
	}, tape)
	log.Infof("running %s", scriptPath)
	runErr := interp.Execute(context.Background(), string(input))
	if *dumpPath != "" {
		if err := writeSnapshot(*dumpPath, interp.Tape()); err != nil {
			return errors.Join(wrapExecution(runErr), err)
		}
	}
	return wrapExecution(runErr)
}

// runSource executes a whole program read from r, as when a file is piped in.
func runSource(r io.Reader, w io.Writer) error {
	input, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read program: %w", err)
	}
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolve working directory: %w", err)
	}
	cfg, err := findConfig(wd)
	if err != nil {
		return err
	}
	configureLogging(cfg)
	interp := bfnl.NewInterpreter(bfnl.Config{
		Output:    w,
		StepQuota: cfg.Interpreter.StepQuota,
		MaxCells:  cfg.Interpreter.MaxCells,
	})
	return wrapExecution(interp.Execute(context.Background(), string(input)))
}

func wrapExecution(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("execution failed: %w", err)
}

func readSnapshot(path string) (*bfnl.Tape, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	tape, err := bfnl.DecodeSnapshot(data)
	if err != nil {
		return nil, fmt.Errorf("load snapshot %s: %w", path, err)
	}
	return tape, nil
}

func writeSnapshot(path string, tape *bfnl.Tape) error {
	data, err := bfnl.EncodeSnapshot(tape)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	log.Infof("wrote snapshot of %d cells to %s", tape.Len(), path)
	return nil
}

func usageError() error {
	printUsage()
	return errors.New("invalid command")
}

func printUsage() {
	prog := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [flags] [args...]\n", prog)
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  run [flags] <script>   execute a program (bare names are searched in [source] dirs)")
	fmt.Fprintln(os.Stderr, "  analyze <script>       report malformed statements without running")
	fmt.Fprintln(os.Stderr, "  fmt [-w|-check] <path> normalize .bfnl sources")
	fmt.Fprintln(os.Stderr, "  repl                   start the interactive prompt")
	fmt.Fprintln(os.Stderr, "Run flags:")
	fmt.Fprintln(os.Stderr, "  -check            only analyze the script without executing")
	fmt.Fprintln(os.Stderr, "  -steps int        maximum steps per run, 0 for unlimited")
	fmt.Fprintln(os.Stderr, "  -max-cells int    maximum tape cells, 0 for unlimited")
	fmt.Fprintln(os.Stderr, "  -dump <file>      write the final tape snapshot")
	fmt.Fprintln(os.Stderr, "  -load <file>      start from a tape snapshot")
	fmt.Fprintln(os.Stderr, "  -config <file>    use this bfnl.toml")
	fmt.Fprintln(os.Stderr, "  -v                increase log verbosity (repeatable)")
	fmt.Fprintln(os.Stderr, "  -log <file>       write logs to a file")
	fmt.Fprintln(os.Stderr, "With no command, a terminal opens the REPL and piped input runs as a program.")
}

type flagErrorSink struct{}

func (flagErrorSink) Write(p []byte) (int, error) {
	return len(p), nil
}

// verbosityFlag counts repeated -v flags; -v=3 sets the level directly.
type verbosityFlag int

func (v *verbosityFlag) String() string {
	return strconv.Itoa(int(*v))
}

func (v *verbosityFlag) Set(value string) error {
	if value == "true" {
		*v++
		return nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("invalid verbosity %q", value)
	}
	*v = verbosityFlag(n)
	return nil
}

func (v *verbosityFlag) IsBoolFlag() bool { return true }
