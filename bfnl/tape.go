package bfnl

// Tape is the interpreter's memory: a right-growing sequence of cells and a
// pointer that never goes negative.
type Tape struct {
	cells    []Value
	pointer  int
	maxCells int
}

// NewTape returns a tape holding a single zero cell.
func NewTape() *Tape {
	return &Tape{cells: []Value{NewInt(0)}}
}

func (t *Tape) Pointer() int { return t.pointer }

func (t *Tape) Len() int { return len(t.cells) }

func (t *Tape) Current() Value { return t.cells[t.pointer] }

func (t *Tape) Set(v Value) { t.cells[t.pointer] = v }

// Cells returns a copy of every cell on the tape.
func (t *Tape) Cells() []Value {
	out := make([]Value, len(t.cells))
	for i, c := range t.cells {
		out[i] = c.Clone()
	}
	return out
}

// SetLimit caps how many cells the tape may grow to. Zero removes the cap.
func (t *Tape) SetLimit(maxCells int) { t.maxCells = maxCells }

// MoveRight advances the pointer by n, appending zero cells as needed.
func (t *Tape) MoveRight(n int) error {
	target := t.pointer + n
	if target < t.pointer {
		return newError(IndexError, "cell index overflow")
	}
	if t.maxCells > 0 && target >= t.maxCells {
		return newError(IndexError, "cell index %d exceeds tape limit of %d cells", target, t.maxCells)
	}
	for len(t.cells) <= target {
		t.cells = append(t.cells, NewInt(0))
	}
	t.pointer = target
	return nil
}

// MoveLeft moves the pointer back by n. Moving before the first cell fails
// and leaves the tape untouched.
func (t *Tape) MoveLeft(n int) error {
	if n > t.pointer {
		return newError(IndexError, "cell index out of bounds: cannot move %d left from cell %d", n, t.pointer)
	}
	t.pointer -= n
	return nil
}

// Reset restores the tape to a single zero cell, keeping its limit.
func (t *Tape) Reset() {
	t.cells = []Value{NewInt(0)}
	t.pointer = 0
}
