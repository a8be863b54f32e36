package bfnl

import (
	"fmt"
	"math"

	"github.com/fxamacker/cbor/v2"
)

// Snapshot is the serialized form of a tape: the pointer and every cell as
// a plain CBOR value (integer, float, text string, or array).
type Snapshot struct {
	Version int   `cbor:"1,keyasint"`
	Pointer int   `cbor:"2,keyasint"`
	Cells   []any `cbor:"3,keyasint"`
}

const snapshotVersion = 1

var snapshotEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("bfnl: failed to create CBOR enc mode: %v", err))
	}
	snapshotEncMode = em
}

// EncodeSnapshot serializes the tape with canonical CBOR so identical tapes
// produce identical bytes.
func EncodeSnapshot(t *Tape) ([]byte, error) {
	snap := Snapshot{Version: snapshotVersion, Pointer: t.pointer, Cells: make([]any, len(t.cells))}
	for i, c := range t.cells {
		snap.Cells[i] = toNative(c)
	}
	return snapshotEncMode.Marshal(snap)
}

// DecodeSnapshot rebuilds a tape from EncodeSnapshot output.
func DecodeSnapshot(data []byte) (*Tape, error) {
	var snap Snapshot
	if err := cbor.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("bfnl: unmarshal snapshot: %w", err)
	}
	if snap.Version != snapshotVersion {
		return nil, fmt.Errorf("bfnl: unsupported snapshot version %d", snap.Version)
	}
	if len(snap.Cells) == 0 {
		return nil, fmt.Errorf("bfnl: snapshot has no cells")
	}
	if snap.Pointer < 0 || snap.Pointer >= len(snap.Cells) {
		return nil, fmt.Errorf("bfnl: snapshot pointer %d outside %d cells", snap.Pointer, len(snap.Cells))
	}
	cells := make([]Value, len(snap.Cells))
	for i, raw := range snap.Cells {
		v, err := fromNative(raw)
		if err != nil {
			return nil, fmt.Errorf("bfnl: snapshot cell %d: %w", i, err)
		}
		cells[i] = v
	}
	return &Tape{cells: cells, pointer: snap.Pointer}, nil
}

func toNative(v Value) any {
	switch v.Kind() {
	case KindInt:
		return v.Int()
	case KindFloat:
		return v.Float()
	case KindString:
		return v.Text()
	case KindList:
		elems := v.List()
		out := make([]any, len(elems))
		for i, e := range elems {
			out[i] = toNative(e)
		}
		return out
	default:
		return nil
	}
}

func fromNative(raw any) (Value, error) {
	switch val := raw.(type) {
	case int64:
		return NewInt(val), nil
	case uint64:
		if val > math.MaxInt64 {
			return Value{}, fmt.Errorf("integer %d out of range", val)
		}
		return NewInt(int64(val)), nil
	case float64:
		return NewFloat(val), nil
	case float32:
		return NewFloat(float64(val)), nil
	case string:
		return NewString(val), nil
	case []any:
		out := make([]Value, len(val))
		for i, e := range val {
			v, err := fromNative(e)
			if err != nil {
				return Value{}, err
			}
			out[i] = v
		}
		return NewList(out), nil
	default:
		return Value{}, fmt.Errorf("unsupported cell type %T", raw)
	}
}
