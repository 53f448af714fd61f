// Package events defines the concrete event and level variants the
// simulation kernel moves across its stack and tape. Every variant is
// an immutable value constructed once; engines recover field-level
// typing by switching on the concrete type.
package events

import (
	"github.com/riskforge/risksim/internal/stack"
	"github.com/riskforge/risksim/internal/state"
)

// Element kinds, one per concrete variant.
const (
	KindGame stack.Kind = "game"

	KindPlayerTurn     stack.Kind = "player_turn"
	KindPlacementPhase stack.Kind = "placement_phase"
	KindAttackPhase    stack.Kind = "attack_phase"
	KindMovementPhase  stack.Kind = "movement_phase"

	KindPlacementPhaseEnd stack.Kind = "placement_phase_end"
	KindAttackPhaseEnd    stack.Kind = "attack_phase_end"
	KindMovementPhaseEnd  stack.Kind = "movement_phase_end"

	KindTroopPlacement    stack.Kind = "troop_placement"
	KindAttackOnTerritory stack.Kind = "attack_on_territory"
	KindMovementOfTroops  stack.Kind = "movement_of_troops"

	KindUpdateReinforcements   stack.Kind = "update_reinforcements"
	KindRequestPlacementPlan   stack.Kind = "request_placement_plan"
	KindAdjustPlacementCredits stack.Kind = "adjust_placement_credits"
	KindClearReinforcements    stack.Kind = "clear_reinforcements"
	KindAdjustArmies           stack.Kind = "adjust_armies"
	KindCasualties             stack.Kind = "casualties"
	KindCaptureTerritory       stack.Kind = "capture_territory"

	KindFight        stack.Kind = "fight"
	KindResolveFight stack.Kind = "resolve_fight"

	KindRejectTroopPlacement stack.Kind = "reject_troop_placement"
	KindRejectAttack         stack.Kind = "reject_attack"
	KindRejectTransfer       stack.Kind = "reject_transfer"

	KindAgentTurnEnd stack.Kind = "agent_turn_end"
	KindAdvanceTurn  stack.Kind = "advance_turn"

	KindPauseProcessing stack.Kind = "pause_processing"
	KindSystemInterrupt stack.Kind = "system_interrupt"
	KindSystemResume    stack.Kind = "system_resume"
	KindSystemStep      stack.Kind = "system_step"

	KindVictory            stack.Kind = "victory"
	KindSimulationComplete stack.Kind = "simulation_complete"
)

// SideEffect is an event that mutates the game state when applied and
// restores it when reverted. Reverting an applied side effect always
// yields the state the effect was applied to.
type SideEffect interface {
	stack.Element
	Apply(g *state.GameState) error
	Revert(g *state.GameState) error
}

// IsSideEffect reports whether an element carries apply/revert behavior.
func IsSideEffect(el stack.Element) bool {
	_, ok := el.(SideEffect)
	return ok
}

var rejectionKinds = map[stack.Kind]struct{}{
	KindRejectTroopPlacement: {},
	KindRejectAttack:         {},
	KindRejectTransfer:       {},
}

// IsRejection reports whether an element signals a rejected action.
func IsRejection(el stack.Element) bool {
	_, ok := rejectionKinds[el.ElementKind()]
	return ok
}

var terminalKinds = map[stack.Kind]struct{}{
	KindVictory:            {},
	KindSimulationComplete: {},
	KindSystemInterrupt:    {},
}

// IsTerminal reports whether processing an element ends the run.
func IsTerminal(el stack.Element) bool {
	_, ok := terminalKinds[el.ElementKind()]
	return ok
}

// Game is the bootstrap event that seeds every simulation stack.
type Game struct {
	stack.Event
}

// NewGame creates the bootstrap event.
func NewGame() Game {
	return Game{Event: stack.NewEvent(KindGame, "Game", "")}
}
