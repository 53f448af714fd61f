package engine

import (
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/riskforge/risksim/internal/events"
	"github.com/riskforge/risksim/internal/stack"
	"github.com/riskforge/risksim/internal/state"
)

// RiskTapePairs are the hierarchy pairs a conquest simulation's tape is
// configured with: each level kind closed by its end signal.
func RiskTapePairs() []stack.Pair {
	return []stack.Pair{
		{Start: events.KindPlayerTurn, End: events.KindAgentTurnEnd},
		{Start: events.KindPlacementPhase, End: events.KindPlacementPhaseEnd},
		{Start: events.KindAttackPhase, End: events.KindAttackPhaseEnd},
		{Start: events.KindMovementPhase, End: events.KindMovementPhaseEnd},
	}
}

// SimulationController owns the stack, the tape and the game state, and
// drains one top-of-stack element per step through the registered
// engine chain. It is single-threaded: one step at a time, no
// reentrancy, and the controller is the sole writer of the state.
type SimulationController struct {
	logger *zap.Logger

	stack   *stack.EventStack
	tape    *stack.EventTape
	state   *state.GameState
	engines []Engine
	allowed []map[stack.Kind]struct{}

	applied []events.SideEffect

	interrupted  bool
	terminal     bool
	pendingPause time.Duration
}

// NewSimulationController creates an empty controller over a state. The
// tape hierarchy follows the given pairs; engines are registered with
// AddEngine and consulted in registration order.
func NewSimulationController(g *state.GameState, pairs []stack.Pair, logger *zap.Logger) *SimulationController {
	return &SimulationController{
		logger: logger,
		stack:  stack.NewEventStack("simulation"),
		tape:   stack.NewEventTape(pairs...),
		state:  g,
	}
}

// NewRiskController creates a controller with the conquest rule chain
// registered: boot, reinforcement, placement, attack, fight, movement,
// phase, optional delay, turn and side-effect engines. The fight engine
// draws from the shared stream. Agent and forward engines are added by
// the caller.
func NewRiskController(g *state.GameState, rng *rand.Rand, delay time.Duration, logger *zap.Logger) *SimulationController {
	c := NewSimulationController(g, RiskTapePairs(), logger)
	c.AddEngine(NewBootEngine(logger))
	c.AddEngine(NewReinforcementEngine(logger))
	c.AddEngine(NewPlacementEngine(logger))
	c.AddEngine(NewAttackEngine(logger))
	c.AddEngine(NewFightEngine(rng, logger))
	c.AddEngine(NewMovementEngine(logger))
	c.AddEngine(NewPhaseEngine(logger))
	if delay > 0 {
		c.AddEngine(NewAgentDelayEngine(delay, logger))
	}
	c.AddEngine(NewTurnEngine(logger))
	c.AddEngine(NewSideEffectEngine(logger))
	c.Push(events.NewGame())
	return c
}

// AddEngine appends an engine to the chain.
func (c *SimulationController) AddEngine(e Engine) {
	c.engines = append(c.engines, e)
	c.allowed = append(c.allowed, kindSet(e.AllowedElements()))
}

// Push places an element on the execution stack.
func (c *SimulationController) Push(el stack.Element) {
	c.stack.Push(el)
}

// Interrupt pushes a SystemInterrupt event. The next step records it on
// the tape, and the controller halts at the start of the step after
// that. The tape is preserved.
func (c *SimulationController) Interrupt() {
	c.stack.Push(events.NewSystemInterrupt())
}

// Stack returns the execution stack.
func (c *SimulationController) Stack() *stack.EventStack { return c.stack }

// Tape returns the historical tape.
func (c *SimulationController) Tape() *stack.EventTape { return c.tape }

// GameState returns the state the controller owns.
func (c *SimulationController) GameState() *state.GameState { return c.state }

// TakePause returns and clears the pause requested by processed
// PauseProcessing events. The driver sleeps it off between steps; the
// logical simulation does not advance during the pause.
func (c *SimulationController) TakePause() time.Duration {
	d := c.pendingPause
	c.pendingPause = 0
	return d
}

// Terminal reports whether the controller has halted.
func (c *SimulationController) Terminal() bool { return c.terminal }

// Step drains one element: pop, offer to each engine in order until one
// handles it, push the replacements (first returned on top), append the
// element to the tape. It returns false once the run is terminal —
// empty stack, victory, exhausted budget or interrupt — and a non-nil
// error only for fatal invariant violations.
func (c *SimulationController) Step() (bool, error) {
	if c.terminal {
		return false, nil
	}
	if c.interrupted {
		c.terminal = true
		if c.logger != nil {
			c.logger.Info("halted by interrupt", zap.Int("tape_len", c.tape.Len()))
		}
		return false, nil
	}

	el := c.stack.Pop()
	if el == nil {
		c.terminal = true
		return false, nil
	}

	var replacements []stack.Element
	var handled bool
	for i, eng := range c.engines {
		if _, ok := c.allowed[i][el.ElementKind()]; !ok {
			continue
		}
		res, err := eng.Process(c.state, el)
		if err != nil {
			c.terminal = true
			return false, c.fatal(eng, el, err)
		}
		if res.Handled {
			replacements = res.Events
			handled = true
			break
		}
	}

	for i := len(replacements) - 1; i >= 0; i-- {
		c.stack.Push(replacements[i])
	}
	c.tape.Append(el)

	if effect, ok := el.(events.SideEffect); ok && handled {
		c.applied = append(c.applied, effect)
	}

	switch ev := el.(type) {
	case events.PauseProcessing:
		c.pendingPause += ev.Delay
	case events.SystemInterrupt:
		c.interrupted = true
	case events.Victory, events.SimulationComplete:
		c.terminal = true
		return false, nil
	}

	return true, nil
}

// fatal wraps an engine error with the offending event, the top of the
// stack and a state excerpt, the diagnostic spec'd for invariant
// violations.
func (c *SimulationController) fatal(eng Engine, el stack.Element, err error) error {
	top := "<empty>"
	if peek := c.stack.Peek(); peek != nil {
		top = peek.String()
	}
	if c.logger != nil {
		c.logger.Error("fatal invariant violation",
			zap.String("engine", eng.ID()),
			zap.String("event", el.String()),
			zap.String("stack_top", top),
			zap.String("state", c.state.Excerpt()),
			zap.Error(err),
		)
	}
	return fmt.Errorf("engine %q processing %s (stack top %s; %s): %w",
		eng.ID(), el.String(), top, c.state.Excerpt(), err)
}

// Run steps until the controller halts, sleeping off any pause the
// processed events requested. It returns the number of steps taken.
func (c *SimulationController) Run() (int, error) {
	var steps int
	for {
		more, err := c.Step()
		if err != nil {
			return steps, err
		}
		steps++
		if !more {
			return steps, nil
		}
		if pause := c.TakePause(); pause > 0 {
			time.Sleep(pause)
		}
	}
}

// Rollback reverts the most recently applied side effects, walking
// backward along the tape's application order.
func (c *SimulationController) Rollback(n int) error {
	for i := 0; i < n && len(c.applied) > 0; i++ {
		effect := c.applied[len(c.applied)-1]
		if err := effect.Revert(c.state); err != nil {
			return c.fatal(&SideEffectEngine{logger: c.logger}, effect, err)
		}
		c.applied = c.applied[:len(c.applied)-1]
	}
	return nil
}

// AppliedEffects returns the side effects applied so far, oldest first.
func (c *SimulationController) AppliedEffects() []events.SideEffect {
	cpy := make([]events.SideEffect, len(c.applied))
	copy(cpy, c.applied)
	return cpy
}
