package mover

import (
	"fmt"

	"github.com/matzehuels/stackmover/pkg/errors"
	"github.com/matzehuels/stackmover/pkg/stack"
)

// Engine applies a fixed procedure sequence to a collection it owns.
// It is not safe for concurrent use.
type Engine struct {
	stacks     *stack.Collection
	procedures []stack.Procedure
	mode       Mode
	next       int
	err        error
}

// NewEngine prepares a run. The engine mutates stacks in place; clone the
// collection first if the caller needs the initial arrangement afterwards.
func NewEngine(stacks *stack.Collection, procedures []stack.Procedure, mode Mode) (*Engine, error) {
	if stacks == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nil stack collection")
	}
	if !mode.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidMode, "invalid mode %d", int(mode))
	}
	return &Engine{stacks: stacks, procedures: procedures, mode: mode}, nil
}

// Mode returns the transfer semantics of the run.
func (e *Engine) Mode() Mode { return e.mode }

// Stacks returns the collection being rearranged.
func (e *Engine) Stacks() *stack.Collection { return e.stacks }

// Procedures returns the full procedure sequence.
func (e *Engine) Procedures() []stack.Procedure { return e.procedures }

// Position returns how many procedures have been applied.
func (e *Engine) Position() int { return e.next }

// Done reports whether every procedure has been applied.
func (e *Engine) Done() bool { return e.next >= len(e.procedures) }

// Err returns the error that stopped the run, if any.
func (e *Engine) Err() error { return e.err }

// Step applies the next procedure. After a failure the engine is stuck and
// every further call returns the same error. Stepping a finished engine is a
// no-op.
func (e *Engine) Step() error {
	if e.err != nil {
		return e.err
	}
	if e.Done() {
		return nil
	}
	p := e.procedures[e.next]
	if err := e.mode.Apply(e.stacks, p); err != nil {
		e.err = fmt.Errorf("procedure %d (%s): %w", e.next+1, p, err)
		return e.err
	}
	e.next++
	return nil
}

// Run applies every remaining procedure in order, stopping at the first
// failure.
func (e *Engine) Run() error {
	for !e.Done() {
		if err := e.Step(); err != nil {
			return err
		}
	}
	return e.err
}

// Snapshot returns the top crate of every stack, in stack order. It does not
// modify the collection, so repeated calls agree.
func (e *Engine) Snapshot() (string, error) {
	return Snapshot(e.stacks)
}

// Run applies procedures to stacks under mode.
func Run(stacks *stack.Collection, procedures []stack.Procedure, mode Mode) error {
	e, err := NewEngine(stacks, procedures, mode)
	if err != nil {
		return err
	}
	return e.Run()
}

// Snapshot returns the top crate of every stack. An emptied stack is an
// EMPTY_STACK error.
func Snapshot(stacks *stack.Collection) (string, error) {
	return stacks.Tops()
}
