// Package stack holds the items and stacks a rearrangement run operates on.
//
// A [Stack] is LIFO with index 0 at the bottom. A [Collection] is a fixed-size
// sequence of stacks addressed by 1-based position, the way procedures name
// them. Nothing in this package creates or destroys items; they only move
// between stacks.
package stack

import (
	"slices"
	"strings"
)

// Item is a single-character crate label.
type Item rune

// String returns the label as a one-character string.
func (i Item) String() string { return string(i) }

// Stack is a LIFO sequence of items. The zero value is an empty stack.
type Stack struct {
	items []Item
}

// New creates a stack holding items in bottom-to-top order.
func New(items ...Item) *Stack {
	return &Stack{items: slices.Clone(items)}
}

// Push adds one item to the top.
func (s *Stack) Push(it Item) {
	s.items = append(s.items, it)
}

// PushAll appends items to the top in the given order, so the last element
// of items ends up on top.
func (s *Stack) PushAll(items []Item) {
	s.items = append(s.items, items...)
}

// Pop removes and returns the top item.
func (s *Stack) Pop() (Item, bool) {
	if len(s.items) == 0 {
		return 0, false
	}
	last := len(s.items) - 1
	it := s.items[last]
	s.items = s.items[:last]
	return it, true
}

// Peek returns the top item without removing it.
func (s *Stack) Peek() (Item, bool) {
	if len(s.items) == 0 {
		return 0, false
	}
	return s.items[len(s.items)-1], true
}

// TakeTop removes the top n items and returns them in their original
// bottom-to-top order. It returns false and leaves the stack untouched if
// fewer than n items are present.
func (s *Stack) TakeTop(n int) ([]Item, bool) {
	if n < 0 || n > len(s.items) {
		return nil, false
	}
	cut := len(s.items) - n
	taken := slices.Clone(s.items[cut:])
	s.items = s.items[:cut]
	return taken, true
}

// Len reports the number of items on the stack.
func (s *Stack) Len() int {
	return len(s.items)
}

// Items returns a copy of the stack contents, bottom first.
func (s *Stack) Items() []Item {
	return slices.Clone(s.items)
}

// Reverse flips the stack in place.
func (s *Stack) Reverse() {
	slices.Reverse(s.items)
}

// Clone returns an independent copy.
func (s *Stack) Clone() *Stack {
	return &Stack{items: slices.Clone(s.items)}
}

// String renders the stack bottom to top, e.g. "ZN".
func (s *Stack) String() string {
	var b strings.Builder
	for _, it := range s.items {
		b.WriteRune(rune(it))
	}
	return b.String()
}
