package stack

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// EventStack is the LIFO execution stack consumed by the simulation
// controller. It tracks how many levels are currently open and which
// level is nearest the top, both maintained in O(1) on push. Popping a
// level rescans toward the base for the next one; level pops are rare
// enough that the linear walk does not matter.
type EventStack struct {
	name     string
	id       uuid.UUID
	elements []Element
	depth    int
	current  Element // nearest-to-top level, nil when none is open
}

// NewEventStack creates a stack and pushes the given layers in order,
// so the last layer is on top.
func NewEventStack(name string, layers ...Element) *EventStack {
	s := &EventStack{
		name:     name,
		id:       uuid.NewSHA1(StackNamespace, []byte(name)),
		elements: make([]Element, 0, 16),
	}
	for _, layer := range layers {
		s.Push(layer)
	}
	return s
}

// Name returns the stack's name.
func (s *EventStack) Name() string { return s.name }

// ID returns the stack's deterministic identity.
func (s *EventStack) ID() uuid.UUID { return s.id }

// Push adds an element to the top of the stack.
func (s *EventStack) Push(el Element) {
	if IsLevel(el) {
		s.depth++
		s.current = el
	}
	s.elements = append(s.elements, el)
}

// Pop removes and returns the top element, or nil if the stack is empty.
func (s *EventStack) Pop() Element {
	if s.IsEmpty() {
		return nil
	}
	idx := len(s.elements) - 1
	el := s.elements[idx]
	if IsLevel(el) {
		s.depth--
		if s.depth > 0 {
			s.current = findNextLevel(s.elements[:idx])
		} else {
			s.current = nil
		}
	}
	s.elements = s.elements[:idx]
	return el
}

// Peek returns the top element without removing it, or nil if empty.
func (s *EventStack) Peek() Element {
	if s.IsEmpty() {
		return nil
	}
	return s.elements[len(s.elements)-1]
}

func findNextLevel(elements []Element) Element {
	for i := len(elements) - 1; i >= 0; i-- {
		if IsLevel(elements[i]) {
			return elements[i]
		}
	}
	return nil
}

// CurrentLevel returns the nearest-to-top level, or nil when no level is
// open.
func (s *EventStack) CurrentLevel() Element { return s.current }

// Depth returns the number of levels currently on the stack.
func (s *EventStack) Depth() int { return s.depth }

// IsEmpty reports whether the stack holds no elements.
func (s *EventStack) IsEmpty() bool { return len(s.elements) == 0 }

// Size returns the number of elements on the stack.
func (s *EventStack) Size() int { return len(s.elements) }

// Clear removes every element from the stack.
func (s *EventStack) Clear() {
	s.elements = s.elements[:0]
	s.depth = 0
	s.current = nil
}

// Elements returns a copy of the stack contents, bottom first.
func (s *EventStack) Elements() []Element {
	cpy := make([]Element, len(s.elements))
	copy(cpy, s.elements)
	return cpy
}

// Substack copies up to n elements from the bottom into an independent
// stack that shares no mutable state with the original.
func (s *EventStack) Substack(n int) *EventStack {
	if n > len(s.elements) {
		n = len(s.elements)
	}
	return NewEventStack(fmt.Sprintf("%s-sub-%d", s.name, n), s.elements[:n]...)
}

// Topstack copies up to n elements from the top into an independent
// stack that shares no mutable state with the original.
func (s *EventStack) Topstack(n int) *EventStack {
	if n > len(s.elements) {
		n = len(s.elements)
	}
	return NewEventStack(fmt.Sprintf("%s-sub-%d", s.name, n), s.elements[len(s.elements)-n:]...)
}

// String renders the stack top-first, indenting each element one step
// less than the number of levels at or below its position.
func (s *EventStack) String() string {
	var b strings.Builder
	b.WriteString("Stack:-\n")
	depth := s.depth
	for i := len(s.elements) - 1; i >= 0; i-- {
		el := s.elements[i]
		b.WriteString(strings.Repeat("  ", max(depth-1, 0)))
		b.WriteString(el.String())
		b.WriteString("\n")
		if IsLevel(el) {
			depth--
		}
	}
	return b.String()
}
