package stack

import "testing"

func TestEventIdentity(t *testing.T) {
	a := NewEvent("test", "Troop Placement", "territory=5, num_troops=2")
	b := NewEvent("test", "Troop Placement", "territory=5, num_troops=2")
	c := NewEvent("test", "Troop Placement", "territory=5, num_troops=3")

	if a.ElementID() != b.ElementID() {
		t.Fatalf("expected equal (name, context) to yield equal identities")
	}
	if a.ElementID() == c.ElementID() {
		t.Fatalf("expected differing contexts to yield differing identities")
	}
	if !Equal(a, b) {
		t.Fatalf("expected Equal to hold for identical events")
	}
}

func TestLevelIdentity(t *testing.T) {
	a := NewLevel("phase", "Placement Phase-T0-P0")
	b := NewLevel("phase", "Placement Phase-T0-P0")
	e := NewEvent("phase", "Placement Phase-T0-P0", "")

	if a.ElementID() != b.ElementID() {
		t.Fatalf("expected equal level names to yield equal identities")
	}
	if a.ElementID() == e.ElementID() {
		t.Fatalf("expected level and event namespaces to differ")
	}
	if !IsLevel(a) {
		t.Fatalf("expected a level to be recognized as one")
	}
	if IsLevel(e) {
		t.Fatalf("expected an event not to be recognized as a level")
	}
}

func TestEventStackPushPop(t *testing.T) {
	s := NewEventStack("test")

	first := NewEvent("first", "first", "")
	second := NewEvent("second", "second", "")
	s.Push(first)
	s.Push(second)

	if s.Size() != 2 {
		t.Fatalf("expected size 2, got %d", s.Size())
	}
	if got := s.Peek(); !Equal(got, second) {
		t.Fatalf("expected peek to return top, got %v", got)
	}
	if got := s.Pop(); !Equal(got, second) {
		t.Fatalf("expected LIFO order (second), got %v", got)
	}
	if got := s.Pop(); !Equal(got, first) {
		t.Fatalf("expected remaining element to be first, got %v", got)
	}
	if !s.IsEmpty() {
		t.Fatalf("expected stack to be empty")
	}
	if got := s.Pop(); got != nil {
		t.Fatalf("expected pop on empty stack to return nil, got %v", got)
	}
}

func TestEventStackDepthTracking(t *testing.T) {
	s := NewEventStack("test")

	outer := NewLevel("turn", "turn")
	inner := NewLevel("phase", "phase")
	s.Push(outer)
	s.Push(NewEvent("a", "a", ""))
	s.Push(inner)
	s.Push(NewEvent("b", "b", ""))

	if s.Depth() != 2 {
		t.Fatalf("expected depth 2, got %d", s.Depth())
	}
	if got := s.CurrentLevel(); !Equal(got, inner) {
		t.Fatalf("expected current level to be the inner level, got %v", got)
	}

	s.Pop() // b
	s.Pop() // inner
	if s.Depth() != 1 {
		t.Fatalf("expected depth 1 after popping inner level, got %d", s.Depth())
	}
	if got := s.CurrentLevel(); !Equal(got, outer) {
		t.Fatalf("expected current level to rescan to the outer level, got %v", got)
	}

	s.Pop() // a
	s.Pop() // outer
	if s.Depth() != 0 {
		t.Fatalf("expected depth 0, got %d", s.Depth())
	}
	if s.CurrentLevel() != nil {
		t.Fatalf("expected no current level on an empty stack")
	}
}

func TestEventStackSubstacks(t *testing.T) {
	s := NewEventStack("test")
	a := NewEvent("a", "a", "")
	b := NewEvent("b", "b", "")
	c := NewEvent("c", "c", "")
	s.Push(a)
	s.Push(b)
	s.Push(c)

	sub := s.Substack(2)
	if sub.Size() != 2 {
		t.Fatalf("expected substack size 2, got %d", sub.Size())
	}
	if got := sub.Pop(); !Equal(got, b) {
		t.Fatalf("expected substack top to be b, got %v", got)
	}

	top := s.Topstack(2)
	if top.Size() != 2 {
		t.Fatalf("expected topstack size 2, got %d", top.Size())
	}
	if got := top.Pop(); !Equal(got, c) {
		t.Fatalf("expected topstack top to be c, got %v", got)
	}

	// Copies share no mutable state with the original.
	if s.Size() != 3 {
		t.Fatalf("expected original untouched, got size %d", s.Size())
	}
}

func TestEventStackClear(t *testing.T) {
	s := NewEventStack("test", NewLevel("turn", "turn"), NewEvent("a", "a", ""))
	s.Clear()
	if !s.IsEmpty() || s.Depth() != 0 || s.CurrentLevel() != nil {
		t.Fatalf("expected clear to reset the stack")
	}
}

func TestEventStackIdentity(t *testing.T) {
	a := NewEventStack("same")
	b := NewEventStack("same")
	if a.ID() != b.ID() {
		t.Fatalf("expected stacks of the same name to share an identity")
	}
}
