package input

import (
	_ "embed"
	"strings"

	"github.com/matzehuels/stackmover/pkg/errors"
	"github.com/matzehuels/stackmover/pkg/stack"
)

// Example is the canonical three-stack puzzle.
//
//go:embed example.txt
var Example string

// sectionSeparator divides the drawing from the procedures.
const sectionSeparator = "\n\n"

// Puzzle is a parsed input: the initial arrangement and the procedures to run
// against it, in file order.
type Puzzle struct {
	Stacks     *stack.Collection
	Procedures []stack.Procedure
}

// Parse splits raw into its two blocks and parses both.
func Parse(raw string) (*Puzzle, error) {
	drawing, procedures, err := Split(raw)
	if err != nil {
		return nil, err
	}

	stacks, err := ParseDrawing(drawing)
	if err != nil {
		return nil, err
	}
	procs, err := ParseProcedures(procedures)
	if err != nil {
		return nil, err
	}
	return &Puzzle{Stacks: stacks, Procedures: procs}, nil
}

// Split returns the drawing and procedure blocks of raw. CRLF line endings are
// normalized first.
func Split(raw string) (drawing, procedures string, err error) {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	drawing, procedures, ok := strings.Cut(raw, sectionSeparator)
	if !ok {
		return "", "", errors.New(errors.ErrCodeMalformedInput, "no blank line between drawing and procedures")
	}
	return drawing, procedures, nil
}
