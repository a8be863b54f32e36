package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mgomes/bfnl/bfnl"
)

func analyzeCommand(args []string) error {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) == 0 {
		return errors.New("bfnl analyze: script path required")
	}

	scriptPath, err := filepath.Abs(remaining[0])
	if err != nil {
		return fmt.Errorf("resolve script path: %w", err)
	}
	input, err := os.ReadFile(scriptPath)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}

	return reportDiagnostics(scriptPath, bfnl.Analyze(string(input)), os.Stdout)
}

func reportDiagnostics(path string, diags []bfnl.Diagnostic, w io.Writer) error {
	if len(diags) == 0 {
		fmt.Fprintln(w, "No issues found")
		return nil
	}
	for _, diag := range diags {
		fmt.Fprintf(w, "%s:%d: %s: %s\n", path, diag.Line, diag.Kind, diag.Message)
		if diag.Statement != "" {
			fmt.Fprintf(w, "    %s\n", diag.Statement)
		}
	}
	return fmt.Errorf("analysis found %d issue(s)", len(diags))
}
