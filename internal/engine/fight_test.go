package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

// scriptedSource feeds chosen dice into the stream: a scripted value v
// in [0, 5] becomes the die v+1, because Int31n(6) reduces the top 31
// bits of Int63 modulo six.
type scriptedSource struct {
	values []int64
	next   int
}

func (s *scriptedSource) Int63() int64 {
	v := s.values[s.next%len(s.values)]
	s.next++
	return v << 32
}

func (s *scriptedSource) Seed(int64) {}

func scriptedRand(values ...int64) *rand.Rand {
	return rand.New(&scriptedSource{values: values})
}

func TestResolveCombatAttackerSweepsLoneDefender(t *testing.T) {
	// Three attacker dice then one defender die: 6,6,6 against 1.
	rng := scriptedRand(5, 5, 5, 0)

	result := ResolveCombat(9, 1, rng)
	assert.Equal(t, 9, result.SurvivingAttackers)
	assert.Equal(t, 0, result.SurvivingDefenders)
	assert.Equal(t, 1, result.Rounds)
}

func TestResolveCombatTiesGoToDefender(t *testing.T) {
	// Every die comes up four: every comparison is a tie, so the
	// attacker bleeds out against the two defenders.
	rng := scriptedRand(3)

	result := ResolveCombat(3, 2, rng)
	assert.Equal(t, 0, result.SurvivingAttackers)
	assert.Equal(t, 2, result.SurvivingDefenders)
}

func TestResolveCombatComparesHighestAgainstHighest(t *testing.T) {
	// Attacker rolls 6 and 2, defender rolls 5 and 3: the six beats the
	// five, the three beats the two, one loss each.
	rng := scriptedRand(5, 1, 4, 2)

	result := ResolveCombat(2, 2, rng)
	// After round one it is 1 vs 1; the stream wraps: attacker 6,
	// defender 2 -> defender falls.
	assert.Equal(t, 1, result.SurvivingAttackers)
	assert.Equal(t, 0, result.SurvivingDefenders)
	assert.Equal(t, 2, result.Rounds)
}

func TestResolveCombatDeterministicPerSeed(t *testing.T) {
	a := ResolveCombat(7, 5, rand.New(rand.NewSource(42)))
	b := ResolveCombat(7, 5, rand.New(rand.NewSource(42)))
	assert.Equal(t, a, b)
}

func TestResolveCombatConservesTroops(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 50; i++ {
		attackers := rng.Intn(8) + 1
		defenders := rng.Intn(8) + 1
		result := ResolveCombat(attackers, defenders, rng)

		assert.GreaterOrEqual(t, result.SurvivingAttackers, 0)
		assert.GreaterOrEqual(t, result.SurvivingDefenders, 0)
		assert.LessOrEqual(t, result.SurvivingAttackers, attackers)
		assert.LessOrEqual(t, result.SurvivingDefenders, defenders)
		assert.True(t, result.SurvivingAttackers == 0 || result.SurvivingDefenders == 0,
			"combat runs until one side is wiped out")
	}
}
