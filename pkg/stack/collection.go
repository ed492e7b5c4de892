package stack

import (
	"strings"

	"github.com/matzehuels/stackmover/pkg/errors"
)

// Collection is an ordered, fixed-length sequence of stacks. Positions are
// 1-based to match procedure text.
type Collection struct {
	stacks []*Stack
}

// NewCollection creates n empty stacks.
func NewCollection(n int) *Collection {
	stacks := make([]*Stack, n)
	for i := range stacks {
		stacks[i] = &Stack{}
	}
	return &Collection{stacks: stacks}
}

// FromStacks builds a collection that takes ownership of stacks.
func FromStacks(stacks ...*Stack) *Collection {
	c := &Collection{stacks: make([]*Stack, len(stacks))}
	for i, s := range stacks {
		if s == nil {
			s = &Stack{}
		}
		c.stacks[i] = s
	}
	return c
}

// FromStrings builds a collection from bottom-to-top label strings, one per
// stack. It is mostly a convenience for tests and examples.
func FromStrings(stacks ...string) *Collection {
	c := NewCollection(len(stacks))
	for i, s := range stacks {
		for _, r := range s {
			c.stacks[i].Push(Item(r))
		}
	}
	return c
}

// Len reports the number of stacks.
func (c *Collection) Len() int {
	return len(c.stacks)
}

// At returns the stack at 1-based position pos.
func (c *Collection) At(pos int) (*Stack, error) {
	if pos < 1 || pos > len(c.stacks) {
		return nil, errors.New(errors.ErrCodeOutOfBounds, "stack %d out of range [1, %d]", pos, len(c.stacks))
	}
	return c.stacks[pos-1], nil
}

// Stacks returns the underlying stacks in position order. Mutating them
// mutates the collection.
func (c *Collection) Stacks() []*Stack {
	return c.stacks
}

// Clone returns a deep copy.
func (c *Collection) Clone() *Collection {
	out := &Collection{stacks: make([]*Stack, len(c.stacks))}
	for i, s := range c.stacks {
		out.stacks[i] = s.Clone()
	}
	return out
}

// ItemCount reports the total number of items across all stacks.
func (c *Collection) ItemCount() int {
	n := 0
	for _, s := range c.stacks {
		n += s.Len()
	}
	return n
}

// Inventory counts each distinct item across all stacks.
func (c *Collection) Inventory() map[Item]int {
	inv := make(map[Item]int)
	for _, s := range c.stacks {
		for _, it := range s.items {
			inv[it]++
		}
	}
	return inv
}

// Tops concatenates the top item of every stack in position order. An empty
// stack is an error: the answer would otherwise silently lose a column.
func (c *Collection) Tops() (string, error) {
	var b strings.Builder
	for i, s := range c.stacks {
		it, ok := s.Peek()
		if !ok {
			return "", errors.New(errors.ErrCodeEmptyStack, "stack %d is empty", i+1)
		}
		b.WriteRune(rune(it))
	}
	return b.String(), nil
}

// Strings returns every stack rendered bottom to top.
func (c *Collection) Strings() []string {
	out := make([]string, len(c.stacks))
	for i, s := range c.stacks {
		out[i] = s.String()
	}
	return out
}

// Equal reports whether both collections hold the same items in the same
// positions.
func (c *Collection) Equal(other *Collection) bool {
	if other == nil || len(c.stacks) != len(other.stacks) {
		return false
	}
	for i := range c.stacks {
		if c.stacks[i].String() != other.stacks[i].String() {
			return false
		}
	}
	return true
}
