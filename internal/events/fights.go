package events

import (
	"fmt"

	"github.com/riskforge/risksim/internal/stack"
)

// Fight asks the fight engine to resolve combat between a declared
// attacking force and a territory's defenders.
type Fight struct {
	stack.Event
	Turn               int
	Player             int
	AttackingTerritory int
	DefendingTerritory int
	AttackingArmies    int
	DefendingArmies    int
}

// NewFight creates a fight event.
func NewFight(turn, player, attackingTerritory, defendingTerritory, attackingArmies, defendingArmies int) Fight {
	return Fight{
		Event: stack.NewEvent(KindFight,
			fmt.Sprintf("FightEvent on T%d-P%d: %d vs %d", turn, player, attackingTerritory, defendingTerritory),
			fmt.Sprintf("attacking_territory_id=%d, defending_territory_id=%d, attacking_armies=%d, defending_armies=%d, player_id=%d, turn=%d",
				attackingTerritory, defendingTerritory, attackingArmies, defendingArmies, player, turn)),
		Turn:               turn,
		Player:             player,
		AttackingTerritory: attackingTerritory,
		DefendingTerritory: defendingTerritory,
		AttackingArmies:    attackingArmies,
		DefendingArmies:    defendingArmies,
	}
}

// ResolveFight records the outcome of a resolved fight: the surviving
// counts on both sides and the dice rounds that produced them.
type ResolveFight struct {
	stack.Event
	Turn               int
	Player             int
	AttackingTerritory int
	DefendingTerritory int
	SurvivingAttackers int
	SurvivingDefenders int
	Rounds             int
}

// NewResolveFight creates the fight resolution record.
func NewResolveFight(turn, player, attackingTerritory, defendingTerritory, survivingAttackers, survivingDefenders, rounds int) ResolveFight {
	return ResolveFight{
		Event: stack.NewEvent(KindResolveFight,
			fmt.Sprintf("FightResolved on T%d-P%d: %d survived vs %d over %d rounds",
				turn, player, survivingAttackers, survivingDefenders, rounds),
			fmt.Sprintf("attacking_territory_id=%d, defending_territory_id=%d, surviving_attacking_armies=%d, surviving_defending_armies=%d, rounds=%d, player_id=%d, turn=%d",
				attackingTerritory, defendingTerritory, survivingAttackers, survivingDefenders, rounds, player, turn)),
		Turn:               turn,
		Player:             player,
		AttackingTerritory: attackingTerritory,
		DefendingTerritory: defendingTerritory,
		SurvivingAttackers: survivingAttackers,
		SurvivingDefenders: survivingDefenders,
		Rounds:             rounds,
	}
}
