package render

import (
	"strconv"
	"strings"

	"github.com/matzehuels/stackmover/pkg/input"
	"github.com/matzehuels/stackmover/pkg/stack"
)

const emptySlot = "   "

// Drawing renders stacks in the bracketed text format, tallest stack first,
// followed by a label row. Every line is padded to the full width, so the
// output parses back to an equal collection.
func Drawing(c *stack.Collection) string {
	stacks := c.Stacks()
	height := 0
	for _, s := range stacks {
		height = max(height, s.Len())
	}

	var b strings.Builder
	slots := make([]string, len(stacks))
	for level := height - 1; level >= 0; level-- {
		for i, s := range stacks {
			slots[i] = emptySlot
			if level < s.Len() {
				slots[i] = "[" + string(s.Items()[level]) + "]"
			}
		}
		b.WriteString(strings.Join(slots, " "))
		b.WriteByte('\n')
	}
	for i := range stacks {
		slots[i] = label(i + 1)
	}
	b.WriteString(strings.Join(slots, " "))
	b.WriteByte('\n')
	return b.String()
}

// label centres a stack number in a slot. Numbers wider than the slot keep
// their last digits; the parser ignores the label row's content.
func label(n int) string {
	s := strconv.Itoa(n)
	width := input.SlotWidth - 1
	switch {
	case len(s) >= width:
		return s[len(s)-width:]
	case len(s) == 1:
		return " " + s + " "
	default:
		return " " + s
	}
}
