package stack

import (
	"github.com/google/uuid"
)

// Namespaces for the deterministic identities of stack elements. Two
// elements constructed from the same (name, context) always share an ID,
// which is what makes tapes comparable across runs.
var (
	EventNamespace = uuid.MustParse("83565e68-4400-496e-a9fe-932f80bcf803")
	LevelNamespace = uuid.MustParse("38c0f2c1-6ef3-4d4b-8845-7d2a378b3a88")
	StackNamespace = uuid.MustParse("7557cad3-83c5-429a-ba3c-20cae6623b45")
)

// Kind identifies the concrete class of a stack element. Engines declare
// the kinds they handle; the tape pairs kinds to compute hierarchy depth.
type Kind string

// Element is anything that can be pushed onto an event stack or recorded
// on a tape: an Event or a Level.
type Element interface {
	ElementKind() Kind
	ElementName() string
	ElementID() uuid.UUID
	String() string
}

// LevelMarker is satisfied only by elements that embed Level. Levels mark
// scope boundaries on the stack; they carry no payload of their own.
type LevelMarker interface {
	isLevel()
}

// IsLevel reports whether an element is a scope-boundary Level.
func IsLevel(el Element) bool {
	_, ok := el.(LevelMarker)
	return ok
}

// Event is the immutable base of every simulation event. Concrete events
// embed it and expose their context through typed fields; the context
// string passed at construction is only used for identity and display.
type Event struct {
	kind    Kind
	name    string
	context string
	id      uuid.UUID
}

// NewEvent constructs an event base. The identity is a UUIDv5 of the
// event namespace and the string form, so equal (name, context) pairs
// yield equal identities.
func NewEvent(kind Kind, name, context string) Event {
	e := Event{kind: kind, name: name, context: context}
	e.id = uuid.NewSHA1(EventNamespace, []byte(e.String()))
	return e
}

func (e Event) ElementKind() Kind     { return e.kind }
func (e Event) ElementName() string   { return e.name }
func (e Event) ElementID() uuid.UUID  { return e.id }
func (e Event) ElementContext() string { return e.context }

func (e Event) String() string {
	if e.context == "" {
		return "Event: " + e.name
	}
	return "Event: " + e.name + ", Context: {" + e.context + "}"
}

// Equal compares two elements by identity.
func Equal(a, b Element) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.ElementID() == b.ElementID()
}

// Level marks a scope on the stack, such as a player's turn or a phase.
// A level is offered to engines like any other element; it is processed
// only where an engine declares its kind.
type Level struct {
	kind Kind
	name string
	id   uuid.UUID
}

// NewLevel constructs a level with a UUIDv5 identity over its string form.
func NewLevel(kind Kind, name string) Level {
	l := Level{kind: kind, name: name}
	l.id = uuid.NewSHA1(LevelNamespace, []byte(l.String()))
	return l
}

func (l Level) ElementKind() Kind    { return l.kind }
func (l Level) ElementName() string  { return l.name }
func (l Level) ElementID() uuid.UUID { return l.id }
func (l Level) String() string       { return "Level: " + l.name }
func (l Level) isLevel()             {}
