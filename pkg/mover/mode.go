package mover

import (
	"slices"
	"strings"

	"github.com/matzehuels/stackmover/pkg/errors"
	"github.com/matzehuels/stackmover/pkg/stack"
)

// Mode is the transfer semantics of a run.
type Mode int

const (
	// ModeSequential moves crates one at a time, reversing the moved block.
	ModeSequential Mode = iota + 1

	// ModeBatch moves all crates at once, preserving their order.
	ModeBatch
)

// Modes lists every mode in a stable order.
var Modes = []Mode{ModeSequential, ModeBatch}

var modeNames = map[string]Mode{
	"sequential": ModeSequential,
	"9000":       ModeSequential,
	"batch":      ModeBatch,
	"9001":       ModeBatch,
}

// ParseMode resolves a mode name. Besides "sequential" and "batch" it accepts
// the crane model numbers "9000" and "9001".
func ParseMode(s string) (Mode, error) {
	if m, ok := modeNames[strings.ToLower(strings.TrimSpace(s))]; ok {
		return m, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidMode, "unknown mode %q (must be one of: sequential, batch)", s)
}

// String returns the canonical mode name.
func (m Mode) String() string {
	switch m {
	case ModeSequential:
		return "sequential"
	case ModeBatch:
		return "batch"
	default:
		return "unknown"
	}
}

// Valid reports whether m is one of the defined modes.
func (m Mode) Valid() bool {
	return m == ModeSequential || m == ModeBatch
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidMode, "invalid mode %d", int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(b []byte) error {
	parsed, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Apply runs one procedure against stacks. The source index, the source size
// and then the destination index are checked, all before anything moves.
func (m Mode) Apply(stacks *stack.Collection, p stack.Procedure) error {
	if !m.Valid() {
		return errors.New(errors.ErrCodeInvalidMode, "invalid mode %d", int(m))
	}
	src, err := stacks.At(p.Source)
	if err != nil {
		return err
	}
	if p.Count < 0 {
		return errors.New(errors.ErrCodeMalformedInput, "negative count %d", p.Count)
	}
	if p.Count > src.Len() {
		return errors.New(errors.ErrCodeInsufficientStackSize,
			"cannot move %d from stack %d holding %d", p.Count, p.Source, src.Len())
	}
	dst, err := stacks.At(p.Destination)
	if err != nil {
		return err
	}

	block, _ := src.TakeTop(p.Count)
	if m == ModeSequential {
		// One-at-a-time pops land the block upside down.
		slices.Reverse(block)
	}
	dst.PushAll(block)
	return nil
}
