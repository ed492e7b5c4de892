package input

import (
	"strings"
	"unicode"

	"github.com/matzehuels/stackmover/pkg/errors"
	"github.com/matzehuels/stackmover/pkg/stack"
)

const (
	// SlotWidth is the number of characters each stack occupies per drawing row.
	SlotWidth = 4

	// labelOffset is the column of the crate label within its slot.
	labelOffset = 1
)

// StackCount returns the number of stacks a drawing line of the given width
// describes.
func StackCount(width int) int {
	return (width + 1) / SlotWidth
}

// ParseDrawing converts a drawing block into stacks. The last line is the
// stack-number row and is discarded.
func ParseDrawing(drawing string) (*stack.Collection, error) {
	lines := strings.Split(strings.TrimRight(drawing, "\n"), "\n")
	width := len([]rune(lines[0]))
	n := StackCount(width)
	if n == 0 {
		return nil, errors.New(errors.ErrCodeMalformedInput, "drawing is empty")
	}

	stacks := stack.NewCollection(n)
	for row, line := range lines[:len(lines)-1] {
		runes := []rune(line)
		if len(runes) < width {
			return nil, errors.New(errors.ErrCodeMalformedInput,
				"drawing line %d is %d characters wide, expected %d", row+1, len(runes), width)
		}
		for col := labelOffset; col < len(runes); col += SlotWidth {
			r := runes[col]
			if !unicode.IsUpper(r) {
				continue
			}
			s, err := stacks.At(col/SlotWidth + 1)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeMalformedInput, err,
					"drawing line %d has a crate past the last stack", row+1)
			}
			s.Push(stack.Item(r))
		}
	}

	// Rows were read top-down, so every stack currently has its top crate first.
	for _, s := range stacks.Stacks() {
		s.Reverse()
	}
	return stacks, nil
}
