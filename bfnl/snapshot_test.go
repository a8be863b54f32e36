package bfnl

import (
	"bytes"
	"context"
	"testing"
)

func TestSnapshotRestoresTape(t *testing.T) {
	var out bytes.Buffer
	interp := NewInterpreter(Config{Output: &out})
	source := "-5=\n>\n7=\n2/\n>\n'text'=\n>\n[1, 'a', [2]]=\n2<"
	if err := interp.Execute(context.Background(), source); err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	data, err := EncodeSnapshot(interp.Tape())
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	restored, err := DecodeSnapshot(data)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if restored.Pointer() != 1 || restored.Len() != 4 {
		t.Fatalf("unexpected shape: pointer %d len %d", restored.Pointer(), restored.Len())
	}
	want := interp.Tape().Cells()
	for i, cell := range restored.Cells() {
		if cell.Kind() != want[i].Kind() || !cell.Equal(want[i]) {
			t.Fatalf("cell %d: expected %v (%s), got %v (%s)", i, want[i], want[i].Kind(), cell, cell.Kind())
		}
	}

	resumed := NewInterpreterWithTape(Config{Output: &out}, restored)
	out.Reset()
	if err := resumed.Execute(context.Background(), "1+\nprint"); err != nil {
		t.Fatalf("resume failed: %v", err)
	}
	if out.String() != "4.5\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestSnapshotIsDeterministic(t *testing.T) {
	a, err := EncodeSnapshot(NewTape())
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	b, err := EncodeSnapshot(NewTape())
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Fatalf("expected identical encodings")
	}
}

func TestDecodeSnapshotRejectsGarbage(t *testing.T) {
	if _, err := DecodeSnapshot([]byte("not cbor")); err == nil {
		t.Fatalf("expected decode error")
	}
	empty, err := snapshotEncMode.Marshal(Snapshot{Version: snapshotVersion})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if _, err := DecodeSnapshot(empty); err == nil {
		t.Fatalf("expected error for empty snapshot")
	}
}
