// Package mover executes rearrangement procedures against a stack collection.
//
// # Modes
//
// A [Mode] decides how the crates of one procedure land on the destination:
//
//   - [ModeSequential] moves crates one at a time, so the moved block arrives
//     reversed. Moving a stack onto itself reverses its top Count crates.
//   - [ModeBatch] moves the block in one piece and keeps its order. Moving a
//     stack onto itself changes nothing.
//
// The mode is fixed for a run. There are exactly two, and the set is closed.
//
// # Engine
//
// An [Engine] owns the collection for the duration of a run and applies
// procedures strictly in order. Every check for a procedure (stack bounds,
// source size) happens before any crate moves, so a failing procedure leaves
// the collection exactly as the previous one left it. The first failure ends
// the run.
//
//	e, err := mover.NewEngine(puzzle.Stacks, puzzle.Procedures, mover.ModeBatch)
//	if err != nil {
//	    return err
//	}
//	if err := e.Run(); err != nil {
//	    return err
//	}
//	answer, err := e.Snapshot()
package mover
