package bfnl

import "testing"

func TestAnalyzeCleanProgram(t *testing.T) {
	source := "0= // start\n\nwhile <3: 1+; if =2: print\n'a'=\n'b'+\n[1]=\n[2]-\n2>\nprint\n"
	if diags := Analyze(source); len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %+v", diags)
	}
}

func TestAnalyzeReportsEveryProblem(t *testing.T) {
	source := "foo\n0=\nwhile 3: 1+\nif <2 print\n'a'*\nwhile <3: bar; 1+\nabc=\n"
	diags := Analyze(source)
	wantLines := []int{1, 3, 4, 5, 6, 7}
	if len(diags) != len(wantLines) {
		t.Fatalf("expected %d diagnostics, got %+v", len(wantLines), diags)
	}
	for i, line := range wantLines {
		if diags[i].Line != line {
			t.Fatalf("diagnostic %d: expected line %d, got %d (%s)", i, line, diags[i].Line, diags[i].Message)
		}
		if diags[i].Kind != SyntaxError {
			t.Fatalf("diagnostic %d: expected SyntaxError, got %s", i, diags[i].Kind)
		}
	}
}

func TestAnalyzeDoesNotExecute(t *testing.T) {
	if diags := Analyze("while >=0: 1+"); len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %+v", diags)
	}
}
