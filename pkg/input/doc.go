// Package input parses rearrangement puzzles.
//
// A puzzle is two text blocks separated by one blank line. The first block is
// a drawing of crates in fixed-width columns, closed by a row of stack
// numbers:
//
//	    [D]
//	[N] [C]
//	[Z] [M] [P]
//	 1   2   3
//
// The second block lists procedures, one per line:
//
//	move 1 from 2 to 1
//
// # Format Contract
//
// Every slot in the drawing is [SlotWidth] characters wide ("[X] " or four
// spaces) and the label of slot i sits at column i*SlotWidth+1. The number of
// stacks is derived from the width of the first drawing line as
// (width+1)/SlotWidth; the label row is never consulted. Content lines must be
// at least as wide as the first line.
//
// Parsing performs no semantic checks on procedures. Stack bounds and source
// sizes are enforced when the procedure runs.
package input
