package bfnl

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExamplePrograms(t *testing.T) {
	cases := []struct {
		file string
		want string
	}{
		{"count.bfnl", "3\n"},
		{"strings.bfnl", "abab\nabab!\n"},
		{"lists.bfnl", "[1, 3]\n[1, 3, 'four', [5]]\n"},
		{"cycle.bfnl", "3\n3\n3\n9\n"},
	}
	for _, tc := range cases {
		source, err := os.ReadFile(filepath.Join("..", "examples", tc.file))
		if err != nil {
			t.Fatalf("read %s: %v", tc.file, err)
		}
		out, _ := mustRun(t, string(source))
		if out != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.file, tc.want, out)
		}
		if diags := Analyze(string(source)); len(diags) != 0 {
			t.Fatalf("%s: unexpected diagnostics %+v", tc.file, diags)
		}
	}
}
