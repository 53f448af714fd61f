package events

import (
	"fmt"

	"github.com/riskforge/risksim/internal/stack"
)

// PlayerTurn is the level that scopes everything a player does in one
// turn.
type PlayerTurn struct {
	stack.Level
	Turn   int
	Player int
}

// NewPlayerTurn creates the turn level for a player.
func NewPlayerTurn(turn, player int) PlayerTurn {
	return PlayerTurn{
		Level:  stack.NewLevel(KindPlayerTurn, fmt.Sprintf("Player Turn-T%d-P%d", turn, player)),
		Turn:   turn,
		Player: player,
	}
}

// PlacementPhase is the level scoping a player's troop placement.
type PlacementPhase struct {
	stack.Level
	Turn   int
	Player int
}

// NewPlacementPhase creates the placement phase level.
func NewPlacementPhase(turn, player int) PlacementPhase {
	return PlacementPhase{
		Level:  stack.NewLevel(KindPlacementPhase, fmt.Sprintf("Placement Phase-T%d-P%d", turn, player)),
		Turn:   turn,
		Player: player,
	}
}

// AttackPhase is the level scoping a player's attacks.
type AttackPhase struct {
	stack.Level
	Turn   int
	Player int
}

// NewAttackPhase creates the attack phase level.
func NewAttackPhase(turn, player int) AttackPhase {
	return AttackPhase{
		Level:  stack.NewLevel(KindAttackPhase, fmt.Sprintf("Attack Phase-T%d-P%d", turn, player)),
		Turn:   turn,
		Player: player,
	}
}

// MovementPhase is the level scoping a player's troop movement.
type MovementPhase struct {
	stack.Level
	Turn   int
	Player int
}

// NewMovementPhase creates the movement phase level.
func NewMovementPhase(turn, player int) MovementPhase {
	return MovementPhase{
		Level:  stack.NewLevel(KindMovementPhase, fmt.Sprintf("Movement Phase-T%d-P%d", turn, player)),
		Turn:   turn,
		Player: player,
	}
}

// PlacementPhaseEnd signals that the placement plan for a turn is
// complete.
type PlacementPhaseEnd struct {
	stack.Event
	Turn   int
	Player int
}

// NewPlacementPhaseEnd creates the placement phase end signal.
func NewPlacementPhaseEnd(turn, player int) PlacementPhaseEnd {
	return PlacementPhaseEnd{
		Event: stack.NewEvent(KindPlacementPhaseEnd,
			fmt.Sprintf("Placement Phase End-T%d-P%d", turn, player),
			fmt.Sprintf("turn=%d, player=%d", turn, player)),
		Turn:   turn,
		Player: player,
	}
}

// AttackPhaseEnd signals that the attack plan for a turn is complete.
type AttackPhaseEnd struct {
	stack.Event
	Turn   int
	Player int
}

// NewAttackPhaseEnd creates the attack phase end signal.
func NewAttackPhaseEnd(turn, player int) AttackPhaseEnd {
	return AttackPhaseEnd{
		Event: stack.NewEvent(KindAttackPhaseEnd,
			fmt.Sprintf("Attack Phase End-T%d-P%d", turn, player),
			fmt.Sprintf("turn=%d, player=%d", turn, player)),
		Turn:   turn,
		Player: player,
	}
}

// MovementPhaseEnd signals that the movement plan for a turn is
// complete.
type MovementPhaseEnd struct {
	stack.Event
	Turn   int
	Player int
}

// NewMovementPhaseEnd creates the movement phase end signal.
func NewMovementPhaseEnd(turn, player int) MovementPhaseEnd {
	return MovementPhaseEnd{
		Event: stack.NewEvent(KindMovementPhaseEnd,
			fmt.Sprintf("Movement Phase End-T%d-P%d", turn, player),
			fmt.Sprintf("turn=%d, player=%d", turn, player)),
		Turn:   turn,
		Player: player,
	}
}

// TroopPlacement proposes placing troops on a territory.
type TroopPlacement struct {
	stack.Event
	Turn      int
	Player    int
	Territory int
	NumTroops int
}

// NewTroopPlacement creates a placement intent.
func NewTroopPlacement(turn, player, territory, numTroops int) TroopPlacement {
	return TroopPlacement{
		Event: stack.NewEvent(KindTroopPlacement,
			fmt.Sprintf("Troop Placement-T%d-P%d-R%dx%d", turn, player, territory, numTroops),
			fmt.Sprintf("turn=%d, player=%d, territory=%d, num_troops=%d", turn, player, territory, numTroops)),
		Turn:      turn,
		Player:    player,
		Territory: territory,
		NumTroops: numTroops,
	}
}

// AttackOnTerritory proposes an attack from one territory onto an
// adjacent one.
type AttackOnTerritory struct {
	stack.Event
	Turn            int
	Player          int
	FromTerritory   int
	ToTerritory     int
	AttackingTroops int
}

// NewAttackOnTerritory creates an attack intent.
func NewAttackOnTerritory(turn, player, from, to, attackingTroops int) AttackOnTerritory {
	return AttackOnTerritory{
		Event: stack.NewEvent(KindAttackOnTerritory,
			fmt.Sprintf("Attack-F%d-to-D%d-with-A%d", from, to, attackingTroops),
			fmt.Sprintf("turn=%d, player=%d, from=%d, to=%d, attacking_troops=%d", turn, player, from, to, attackingTroops)),
		Turn:            turn,
		Player:          player,
		FromTerritory:   from,
		ToTerritory:     to,
		AttackingTroops: attackingTroops,
	}
}

// MovementOfTroops proposes moving troops a single hop between two
// territories held by the same player.
type MovementOfTroops struct {
	stack.Event
	Turn          int
	Player        int
	FromTerritory int
	ToTerritory   int
	MovingTroops  int
}

// NewMovementOfTroops creates a movement intent.
func NewMovementOfTroops(turn, player, from, to, movingTroops int) MovementOfTroops {
	return MovementOfTroops{
		Event: stack.NewEvent(KindMovementOfTroops,
			fmt.Sprintf("Movement of Troops-S%d-of-M%d-to-E%d", from, movingTroops, to),
			fmt.Sprintf("turn=%d, player=%d, from=%d, to=%d, moving_troops=%d", turn, player, from, to, movingTroops)),
		Turn:          turn,
		Player:        player,
		FromTerritory: from,
		ToTerritory:   to,
		MovingTroops:  movingTroops,
	}
}

// AgentTurnEnd marks the end of a player's turn.
type AgentTurnEnd struct {
	stack.Event
	Turn   int
	Player int
}

// NewAgentTurnEnd creates the turn end signal.
func NewAgentTurnEnd(turn, player int) AgentTurnEnd {
	return AgentTurnEnd{
		Event: stack.NewEvent(KindAgentTurnEnd,
			fmt.Sprintf("Agent Turn End-T%d-P%d", turn, player),
			fmt.Sprintf("turn=%d, player=%d", turn, player)),
		Turn:   turn,
		Player: player,
	}
}

// AdvanceTurn instructs the turn engine to advance play to the next
// active player. The delay engine rewrites AgentTurnEnd into this so a
// presentation pause does not swallow turn advancement.
type AdvanceTurn struct {
	stack.Event
	Turn   int
	Player int
}

// NewAdvanceTurn creates the turn advancement instruction.
func NewAdvanceTurn(turn, player int) AdvanceTurn {
	return AdvanceTurn{
		Event: stack.NewEvent(KindAdvanceTurn,
			fmt.Sprintf("Advance Turn-T%d-P%d", turn, player),
			fmt.Sprintf("turn=%d, player=%d", turn, player)),
		Turn:   turn,
		Player: player,
	}
}

// RequestPlacementPlan asks the agent bound to a player for a placement
// plan. It follows the credit assignment, so plans are validated
// against assigned credits.
type RequestPlacementPlan struct {
	stack.Event
	Turn   int
	Player int
}

// NewRequestPlacementPlan creates the placement plan request.
func NewRequestPlacementPlan(turn, player int) RequestPlacementPlan {
	return RequestPlacementPlan{
		Event: stack.NewEvent(KindRequestPlacementPlan,
			fmt.Sprintf("Request Placement Plan-T%d-P%d", turn, player),
			fmt.Sprintf("turn=%d, player=%d", turn, player)),
		Turn:   turn,
		Player: player,
	}
}

// Victory records that a player has won. Processing it is terminal.
type Victory struct {
	stack.Event
	Turn   int
	Player int
}

// NewVictory creates the victory event.
func NewVictory(turn, player int) Victory {
	return Victory{
		Event: stack.NewEvent(KindVictory,
			fmt.Sprintf("Victory-P%d-T%d", player, turn),
			fmt.Sprintf("turn=%d, player=%d", turn, player)),
		Turn:   turn,
		Player: player,
	}
}
