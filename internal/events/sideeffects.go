package events

import (
	"fmt"

	"github.com/riskforge/risksim/internal/stack"
	"github.com/riskforge/risksim/internal/state"
)

// Side effects snapshot the minimum they need to revert: the territory
// id and the delta, never the whole state.

// UpdateReinforcements asks the reinforcement engine to work out and
// assign the placement credits for a player's turn.
type UpdateReinforcements struct {
	stack.Event
	Player int
}

// NewUpdateReinforcements creates the reinforcement setup event.
func NewUpdateReinforcements(player int) UpdateReinforcements {
	return UpdateReinforcements{
		Event: stack.NewEvent(KindUpdateReinforcements,
			fmt.Sprintf("Setup reinforcements for player %d", player),
			fmt.Sprintf("player_id=%d", player)),
		Player: player,
	}
}

// AdjustPlacementCredits shifts the placement credit counter.
type AdjustPlacementCredits struct {
	stack.Event
	Player int
	Delta  int
}

// NewAdjustPlacementCredits creates the credit adjustment side effect.
func NewAdjustPlacementCredits(player, delta int) AdjustPlacementCredits {
	return AdjustPlacementCredits{
		Event: stack.NewEvent(KindAdjustPlacementCredits,
			fmt.Sprintf("Adjust Placement Credits: %+d for player %d", delta, player),
			fmt.Sprintf("player_id=%d, delta=%d", player, delta)),
		Player: player,
		Delta:  delta,
	}
}

// Apply shifts the credit counter by the delta.
func (e AdjustPlacementCredits) Apply(g *state.GameState) error {
	next := g.PlacementsLeft + e.Delta
	if next < 0 {
		return fmt.Errorf("placement credits would go negative (%d%+d)", g.PlacementsLeft, e.Delta)
	}
	g.PlacementsLeft = next
	return nil
}

// Revert undoes the credit shift.
func (e AdjustPlacementCredits) Revert(g *state.GameState) error {
	next := g.PlacementsLeft - e.Delta
	if next < 0 {
		return fmt.Errorf("placement credits would go negative (%d-%d)", g.PlacementsLeft, e.Delta)
	}
	g.PlacementsLeft = next
	return nil
}

// ClearReinforcements zeroes any credits left when a placement phase
// closes.
type ClearReinforcements struct {
	stack.Event
	Remaining int
}

// NewClearReinforcements creates the credit clearing side effect,
// recording the remaining count so it can be restored.
func NewClearReinforcements(remaining int) ClearReinforcements {
	return ClearReinforcements{
		Event: stack.NewEvent(KindClearReinforcements,
			"Clear reinforcements.",
			fmt.Sprintf("remaining=%d", remaining)),
		Remaining: remaining,
	}
}

// Apply zeroes the credit counter.
func (e ClearReinforcements) Apply(g *state.GameState) error {
	g.PlacementsLeft = 0
	return nil
}

// Revert restores the remaining credits.
func (e ClearReinforcements) Revert(g *state.GameState) error {
	g.PlacementsLeft = e.Remaining
	return nil
}

// AdjustArmies shifts the garrison of a territory. Placement-flavored
// adjustments also spend placement credits; movement-flavored ones do
// not.
type AdjustArmies struct {
	stack.Event
	Territory    int
	Delta        int
	SpendCredits bool
}

// NewAdjustArmies creates the army adjustment side effect.
func NewAdjustArmies(territory, delta int, spendCredits bool) AdjustArmies {
	return AdjustArmies{
		Event: stack.NewEvent(KindAdjustArmies,
			fmt.Sprintf("Adjust Armies: %+d armies to territory %d", delta, territory),
			fmt.Sprintf("territory_id=%d, num_armies=%d, spend_credits=%t", territory, delta, spendCredits)),
		Territory:    territory,
		Delta:        delta,
		SpendCredits: spendCredits,
	}
}

// Apply shifts the garrison (and credits, when placement-flavored).
func (e AdjustArmies) Apply(g *state.GameState) error {
	t := g.Territory(e.Territory)
	if t == nil {
		return fmt.Errorf("unknown territory %d", e.Territory)
	}
	if t.Armies+e.Delta < 0 {
		return fmt.Errorf("territory %d armies would go negative (%d%+d)", e.Territory, t.Armies, e.Delta)
	}
	if e.SpendCredits {
		if g.PlacementsLeft-e.Delta < 0 {
			return fmt.Errorf("placement credits would go negative (%d-%d)", g.PlacementsLeft, e.Delta)
		}
		g.PlacementsLeft -= e.Delta
	}
	t.Armies += e.Delta
	return nil
}

// Revert undoes the garrison (and credit) shift.
func (e AdjustArmies) Revert(g *state.GameState) error {
	t := g.Territory(e.Territory)
	if t == nil {
		return fmt.Errorf("unknown territory %d", e.Territory)
	}
	if t.Armies-e.Delta < 0 {
		return fmt.Errorf("territory %d armies would go negative (%d-%d)", e.Territory, t.Armies, e.Delta)
	}
	t.Armies -= e.Delta
	if e.SpendCredits {
		g.PlacementsLeft += e.Delta
	}
	return nil
}

// Casualties removes fallen troops from a territory after a fight.
type Casualties struct {
	stack.Event
	Turn          int
	Territory     int
	NumCasualties int
}

// NewCasualties creates the casualty side effect.
func NewCasualties(turn, territory, numCasualties int) Casualties {
	return Casualties{
		Event: stack.NewEvent(KindCasualties,
			fmt.Sprintf("Casualties-in-T%d-L%d-T%d", territory, numCasualties, turn),
			fmt.Sprintf("territory=%d, num_casualties=%d, turn_number=%d", territory, numCasualties, turn)),
		Turn:          turn,
		Territory:     territory,
		NumCasualties: numCasualties,
	}
}

// Apply removes the casualties from the territory.
func (e Casualties) Apply(g *state.GameState) error {
	t := g.Territory(e.Territory)
	if t == nil {
		return fmt.Errorf("unknown territory %d", e.Territory)
	}
	if t.Armies < e.NumCasualties {
		return fmt.Errorf("territory %d armies would go negative (%d-%d)", e.Territory, t.Armies, e.NumCasualties)
	}
	t.Armies -= e.NumCasualties
	return nil
}

// Revert returns the casualties to the territory.
func (e Casualties) Revert(g *state.GameState) error {
	t := g.Territory(e.Territory)
	if t == nil {
		return fmt.Errorf("unknown territory %d", e.Territory)
	}
	t.Armies += e.NumCasualties
	return nil
}

// CaptureTerritory transfers a wiped-out territory to the attacker and
// marches the surviving attackers in. PreviousOwner is snapshotted at
// construction for revert.
type CaptureTerritory struct {
	stack.Event
	Turn            int
	Player          int
	Territory       int
	ConqueredFrom   int
	ConqueredTroops int
	PreviousOwner   int
}

// NewCaptureTerritory creates the capture side effect.
func NewCaptureTerritory(turn, player, territory, conqueredFrom, conqueredTroops, previousOwner int) CaptureTerritory {
	return CaptureTerritory{
		Event: stack.NewEvent(KindCaptureTerritory,
			fmt.Sprintf("Captured-C%d-from-F%d-moving-S%d", territory, conqueredFrom, conqueredTroops),
			fmt.Sprintf("player=%d, turn_number=%d, territory=%d, conquered_from=%d, conquered_troops=%d", player, turn, territory, conqueredFrom, conqueredTroops)),
		Turn:            turn,
		Player:          player,
		Territory:       territory,
		ConqueredFrom:   conqueredFrom,
		ConqueredTroops: conqueredTroops,
		PreviousOwner:   previousOwner,
	}
}

// Apply transfers ownership and moves the surviving attackers.
func (e CaptureTerritory) Apply(g *state.GameState) error {
	target := g.Territory(e.Territory)
	source := g.Territory(e.ConqueredFrom)
	if target == nil || source == nil {
		return fmt.Errorf("unknown territory in capture (%d from %d)", e.Territory, e.ConqueredFrom)
	}
	if source.Armies-e.ConqueredTroops < 1 {
		return fmt.Errorf("capture would empty territory %d (%d-%d)", e.ConqueredFrom, source.Armies, e.ConqueredTroops)
	}
	source.Armies -= e.ConqueredTroops
	target.Owner = e.Player
	target.Armies += e.ConqueredTroops
	return nil
}

// Revert marches the attackers back and restores the previous owner.
func (e CaptureTerritory) Revert(g *state.GameState) error {
	target := g.Territory(e.Territory)
	source := g.Territory(e.ConqueredFrom)
	if target == nil || source == nil {
		return fmt.Errorf("unknown territory in capture (%d from %d)", e.Territory, e.ConqueredFrom)
	}
	if target.Armies < e.ConqueredTroops {
		return fmt.Errorf("capture revert would leave territory %d negative (%d-%d)", e.Territory, target.Armies, e.ConqueredTroops)
	}
	target.Armies -= e.ConqueredTroops
	target.Owner = e.PreviousOwner
	source.Armies += e.ConqueredTroops
	return nil
}
