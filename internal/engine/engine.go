// Package engine contains the simulation kernel: the engine contract,
// the rule engines enforcing game transitions, and the controller that
// drives the event stack.
package engine

import (
	"github.com/riskforge/risksim/internal/stack"
	"github.com/riskforge/risksim/internal/state"
)

// Result is the outcome of offering an element to an engine. A declined
// result lets the controller try the next engine in the chain; a handled
// result stops the chain and pushes the replacement events, first
// returned on top.
type Result struct {
	Handled bool
	Events  []stack.Element
}

// Declined reports that the element was not of interest.
var Declined = Result{}

// Handled builds a handled result with the given replacement events.
func Handled(els ...stack.Element) Result {
	return Result{Handled: true, Events: els}
}

// Engine is a handler bound to a set of element kinds. Engines are
// consulted with a shared reference to the game state and return new
// events by value; they must not keep references to the element after
// Process returns.
type Engine interface {
	ID() string
	AllowedElements() []stack.Kind
	Process(g *state.GameState, el stack.Element) (Result, error)
}

// kindSet builds the membership set the controller checks before
// offering an element to an engine.
func kindSet(kinds []stack.Kind) map[stack.Kind]struct{} {
	set := make(map[stack.Kind]struct{}, len(kinds))
	for _, k := range kinds {
		set[k] = struct{}{}
	}
	return set
}
