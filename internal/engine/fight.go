package engine

import (
	"math/rand"
	"sort"
)

// FightResult records how a fight came out: how many troops each side
// kept and how many dice rounds it took.
type FightResult struct {
	SurvivingAttackers int
	SurvivingDefenders int
	Rounds             int
}

// ResolveCombat plays out a fight between a committed attacking force
// and a territory's defenders using the shared seeded stream. Each
// round rolls up to three attacker dice against up to two defender
// dice, compares them highest against highest, and ties go to the
// defender. The attacker commits every declared troop, so rounds
// continue until one side is wiped out.
func ResolveCombat(attackers, defenders int, rng *rand.Rand) FightResult {
	var rounds int
	for attackers > 0 && defenders > 0 {
		attackerDice := rollDice(min(attackers, 3), rng)
		defenderDice := rollDice(min(defenders, 2), rng)

		comparisons := min(len(attackerDice), len(defenderDice))
		for i := 0; i < comparisons; i++ {
			if attackerDice[i] > defenderDice[i] {
				defenders--
			} else {
				attackers--
			}
		}
		rounds++
	}
	return FightResult{
		SurvivingAttackers: attackers,
		SurvivingDefenders: defenders,
		Rounds:             rounds,
	}
}

// rollDice draws n six-sided dice from the stream, highest first.
func rollDice(n int, rng *rand.Rand) []int {
	dice := make([]int, n)
	for i := range dice {
		dice[i] = rng.Intn(6) + 1
	}
	sort.Sort(sort.Reverse(sort.IntSlice(dice)))
	return dice
}
