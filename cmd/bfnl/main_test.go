package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mgomes/bfnl/bfnl"
)

func TestRunCLIHelp(t *testing.T) {
	if err := runCLI([]string{"bfnl", "help"}); err != nil {
		t.Fatalf("runCLI help failed: %v", err)
	}
}

func TestRunCLIInvalidCommand(t *testing.T) {
	err := runCLI([]string{"bfnl", "unknown"})
	if err == nil {
		t.Fatalf("expected invalid command error")
	}
	if !strings.Contains(err.Error(), "invalid command") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunCommandPrintsOutput(t *testing.T) {
	scriptPath := writeScript(t, "0=\nwhile <3: 1+;\nprint\n")

	out, err := captureStdout(t, func() error {
		return runCommand([]string{scriptPath})
	})
	if err != nil {
		t.Fatalf("runCommand failed: %v", err)
	}
	if out != "3\n" {
		t.Fatalf("unexpected stdout: %q", out)
	}
}

func TestRunCommandReportsExecutionError(t *testing.T) {
	scriptPath := writeScript(t, "'hi'=\nprint\nfoo\nprint\n")

	out, err := captureStdout(t, func() error {
		return runCommand([]string{scriptPath})
	})
	if err == nil {
		t.Fatalf("expected execution error")
	}
	if !strings.Contains(err.Error(), "execution failed") || !bfnl.IsKind(err, bfnl.SyntaxError) {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "hi\n" {
		t.Fatalf("expected output before failure, got %q", out)
	}
}

func TestRunCommandCheckOnly(t *testing.T) {
	scriptPath := writeScript(t, "print\nfoo\n")

	out, err := captureStdout(t, func() error {
		return runCommand([]string{"-check", scriptPath})
	})
	if err == nil {
		t.Fatalf("expected analysis failure")
	}
	if strings.HasPrefix(out, "0\n") || !strings.Contains(out, "unrecognized command: foo") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestRunCommandStepFlag(t *testing.T) {
	scriptPath := writeScript(t, "while >=0: 1+\n")

	_, err := captureStdout(t, func() error {
		return runCommand([]string{"-steps", "50", scriptPath})
	})
	if !bfnl.IsKind(err, bfnl.LimitError) {
		t.Fatalf("expected LimitError, got %v", err)
	}
}

func TestRunCommandDumpAndLoad(t *testing.T) {
	dir := t.TempDir()
	snapshot := filepath.Join(dir, "tape.cbor")
	first := writeScript(t, "'saved'=\n>\n41=\n")
	second := writeScript(t, "1+\nprint\n<\nprint\n")

	if _, err := captureStdout(t, func() error {
		return runCommand([]string{"-dump", snapshot, first})
	}); err != nil {
		t.Fatalf("dump run failed: %v", err)
	}
	out, err := captureStdout(t, func() error {
		return runCommand([]string{"-load", snapshot, second})
	})
	if err != nil {
		t.Fatalf("load run failed: %v", err)
	}
	if out != "42\nsaved\n" {
		t.Fatalf("unexpected stdout: %q", out)
	}
}

func TestRunCommandRequiresScriptPath(t *testing.T) {
	err := runCommand(nil)
	if err == nil {
		t.Fatalf("expected script path error")
	}
	if !strings.Contains(err.Error(), "script path required") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunSourceFromReader(t *testing.T) {
	var out bytes.Buffer
	if err := runSource(strings.NewReader("'piped'=\nprint\n"), &out); err != nil {
		t.Fatalf("runSource failed: %v", err)
	}
	if out.String() != "piped\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestAnalyzeCommandNoIssues(t *testing.T) {
	scriptPath := writeScript(t, "0=\nwhile <3: 1+\nprint\n")

	out, err := captureStdout(t, func() error {
		return analyzeCommand([]string{scriptPath})
	})
	if err != nil {
		t.Fatalf("analyzeCommand failed: %v", err)
	}
	if !strings.Contains(out, "No issues found") {
		t.Fatalf("unexpected analyze output: %q", out)
	}
}

func TestAnalyzeCommandReportsProblems(t *testing.T) {
	scriptPath := writeScript(t, "0=\nif <3 1+\n'a'*\n")

	out, err := captureStdout(t, func() error {
		return analyzeCommand([]string{scriptPath})
	})
	if err == nil {
		t.Fatalf("expected analyze command to report failures")
	}
	if !strings.Contains(err.Error(), "analysis found 2 issue(s)") {
		t.Fatalf("unexpected analyze error: %v", err)
	}
	if !strings.Contains(out, ":2: SyntaxError") || !strings.Contains(out, ":3: SyntaxError") {
		t.Fatalf("unexpected analyze output %q", out)
	}
}

func TestVerbosityFlagCounts(t *testing.T) {
	var v verbosityFlag
	for range 2 {
		if err := v.Set("true"); err != nil {
			t.Fatalf("set failed: %v", err)
		}
	}
	if v != 2 {
		t.Fatalf("expected 2, got %d", v)
	}
	if err := v.Set("5"); err != nil || v != 5 {
		t.Fatalf("expected explicit level 5, got %d (%v)", v, err)
	}
	if err := v.Set("loud"); err == nil {
		t.Fatalf("expected invalid verbosity error")
	}
}

func writeScript(t *testing.T, source string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script.bfnl")
	if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}

func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	orig := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stdout = w

	runErr := fn()
	_ = w.Close()
	os.Stdout = orig

	var buf bytes.Buffer
	if _, copyErr := io.Copy(&buf, r); copyErr != nil {
		t.Fatalf("read stdout: %v", copyErr)
	}
	_ = r.Close()
	return buf.String(), runErr
}
