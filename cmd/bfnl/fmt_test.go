package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFmtCommandRequiresPath(t *testing.T) {
	err := fmtCommand(nil)
	if err == nil {
		t.Fatalf("expected path error")
	}
	if !strings.Contains(err.Error(), "path required") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFmtCommandCheckDetectsChanges(t *testing.T) {
	path := writeScript(t, "  0=  \r\nprint\t\n")
	err := fmtCommand([]string{"-check", path})
	if err == nil {
		t.Fatalf("expected check failure")
	}
	if !strings.Contains(err.Error(), "1 file(s) need formatting") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFmtCommandWritesFile(t *testing.T) {
	path := writeScript(t, "\n\n  0=\n\n\n\twhile <3: 1+   \nprint")
	if err := fmtCommand([]string{"-w", path}); err != nil {
		t.Fatalf("fmt -w failed: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read formatted file: %v", err)
	}
	want := "0=\n\nwhile <3: 1+\nprint\n"
	if string(got) != want {
		t.Fatalf("unexpected formatted content %q", string(got))
	}
}

func TestFmtCommandPrintsToStdout(t *testing.T) {
	path := writeScript(t, "print  \n")
	out, err := captureStdout(t, func() error {
		return fmtCommand([]string{path})
	})
	if err != nil {
		t.Fatalf("fmt failed: %v", err)
	}
	if out != "print\n" {
		t.Fatalf("unexpected stdout %q", out)
	}
}

func TestFmtCommandWalksDirectories(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "nested")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	files := map[string]string{
		filepath.Join(root, "a.bfnl"):   "1+  \n",
		filepath.Join(nested, "b.bfnl"): "print\r\n",
		filepath.Join(root, "note.txt"): "leave me  \n",
	}
	for path, content := range files {
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}

	if err := fmtCommand([]string{"-w", root}); err != nil {
		t.Fatalf("fmt -w failed: %v", err)
	}
	if err := fmtCommand([]string{"-check", root}); err != nil {
		t.Fatalf("expected formatted tree, got %v", err)
	}
	note, err := os.ReadFile(filepath.Join(root, "note.txt"))
	if err != nil {
		t.Fatalf("read note: %v", err)
	}
	if string(note) != "leave me  \n" {
		t.Fatalf("non-bfnl file was modified: %q", string(note))
	}
}
