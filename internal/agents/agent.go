// Package agents holds the pluggable decision-makers bound to players
// and the engine that bridges them into the simulation kernel.
package agents

import (
	"fmt"
	"time"

	"github.com/riskforge/risksim/internal/stack"
	"github.com/riskforge/risksim/internal/state"
)

// Goal describes what a plan should achieve. Planner families that
// support goals receive one; the random family ignores it.
type Goal struct {
	Description string
}

// Agent is the contract every agent family implements. Each decide call
// receives a read-only view of the state and returns a finite ordered
// plan of intent events referencing only entities present in that
// state. Agents must not mutate the state or start background work.
type Agent interface {
	PlayerID() int
	Name() string

	DecidePlacement(g *state.GameState, goal *Goal) []stack.Element
	DecideAttack(g *state.GameState, goal *Goal) []stack.Element
	DecideMovement(g *state.GameState, goal *Goal) []stack.Element

	AddRuntime(d time.Duration)
	Runtime() time.Duration
}

// BaseAgent carries the identification and bookkeeping shared by every
// family.
type BaseAgent struct {
	playerID          int
	name              string
	attackProbability float64
	runtime           time.Duration
}

// NewBaseAgent creates the shared agent base, clamping the attack
// probability into [0, 1].
func NewBaseAgent(playerID int, name string, attackProbability float64) BaseAgent {
	if attackProbability < 0 {
		attackProbability = 0
	}
	if attackProbability > 1 {
		attackProbability = 1
	}
	return BaseAgent{
		playerID:          playerID,
		name:              name,
		attackProbability: attackProbability,
	}
}

// PlayerID returns the player this agent controls.
func (a *BaseAgent) PlayerID() int { return a.playerID }

// Name returns the agent's display name.
func (a *BaseAgent) Name() string { return a.name }

// AttackProbability returns the agent's bias toward attacking.
func (a *BaseAgent) AttackProbability() float64 { return a.attackProbability }

// AddRuntime accumulates decision wall-clock time.
func (a *BaseAgent) AddRuntime(d time.Duration) { a.runtime += d }

// Runtime returns the accumulated decision time.
func (a *BaseAgent) Runtime() time.Duration { return a.runtime }

// Status describes the agent for logs.
func (a *BaseAgent) Status() string {
	return fmt.Sprintf("%s (Player %d): %.0f%% attack rate", a.name, a.playerID, a.attackProbability*100)
}
