// Package bfnl implements the BFNL interpreter. A program is a sequence of
// newline-separated statements operating on a single tape of cells:
//   - Assignment `expr=` replaces the current cell with an int, 'text', or [list].
//   - Operation `expr+`, `expr-`, `expr*`, `expr/`, `expr^` applies an operator
//     to the current cell according to the cell's kind.
//   - Pointer moves `>`, `<`, `3>` shift the pointer, growing the tape on the right.
//   - `print` writes the current cell to the configured output.
//   - `if <cond>: a; b` and `while <cond>: a; b` run `;`-separated bodies.
//
// Comments begin with `//` or `\` and run to the end of the line. Statements
// are classified and executed line by line; there is no separate parse step.
package bfnl
