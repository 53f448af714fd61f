package agents

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOptions() Options {
	return Options{
		PlayerID:          1,
		AttackProbability: 0.5,
		Rng:               rand.New(rand.NewSource(1)),
	}
}

func TestNewConstructsRandomFamilies(t *testing.T) {
	for _, family := range []Family{
		FamilySimple, FamilyBT, FamilyHTN, FamilyMCTS, FamilyDPN, FamilyBPMN, FamilyDEVS,
	} {
		agent, err := New(family, StrategyRandom, testOptions())
		require.NoError(t, err, string(family))
		assert.Equal(t, 1, agent.PlayerID())
		assert.NotEmpty(t, agent.Name())
	}
}

func TestNewRefusesUnimplementedCombinations(t *testing.T) {
	for _, family := range []Family{
		FamilySimple, FamilyBT, FamilyHTN, FamilyMCTS, FamilyDPN, FamilyBPMN, FamilyDEVS,
	} {
		for _, strategy := range []Strategy{StrategyDefensive, StrategyAggressive} {
			agent, err := New(family, strategy, testOptions())
			assert.Nil(t, agent)
			assert.ErrorIs(t, err, ErrUnimplemented, "%s/%s", family, strategy)
		}
	}
}

func TestNewRejectsUnknownTags(t *testing.T) {
	_, err := New("petri", StrategyRandom, testOptions())
	assert.ErrorIs(t, err, ErrUnknownFamily)

	_, err = New(FamilySimple, "berserk", testOptions())
	assert.ErrorIs(t, err, ErrUnknownStrategy)
}

func TestParseTags(t *testing.T) {
	family, err := ParseFamily("htn")
	require.NoError(t, err)
	assert.Equal(t, FamilyHTN, family)

	_, err = ParseFamily("nope")
	assert.ErrorIs(t, err, ErrUnknownFamily)

	strategy, err := ParseStrategy("defensive")
	require.NoError(t, err)
	assert.Equal(t, StrategyDefensive, strategy)

	_, err = ParseStrategy("nope")
	assert.ErrorIs(t, err, ErrUnknownStrategy)
}

func TestAttackProbabilityClamped(t *testing.T) {
	agent := NewRandomAgent(0, 1.7, rand.New(rand.NewSource(1)))
	assert.Equal(t, 1.0, agent.AttackProbability())

	agent = NewRandomAgent(0, -0.3, rand.New(rand.NewSource(1)))
	assert.Equal(t, 0.0, agent.AttackProbability())
}
