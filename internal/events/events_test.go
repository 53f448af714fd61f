package events

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/riskforge/risksim/internal/stack"
)

func TestIntentIdentityDiscipline(t *testing.T) {
	a := NewTroopPlacement(1, 0, 5, 2)
	b := NewTroopPlacement(1, 0, 5, 2)
	c := NewTroopPlacement(1, 0, 5, 3)

	assert.True(t, stack.Equal(a, b), "equal fields compare equal")
	assert.False(t, stack.Equal(a, c))
	assert.Equal(t, KindTroopPlacement, a.ElementKind())
}

func TestPhaseLevelsAreLevels(t *testing.T) {
	assert.True(t, stack.IsLevel(NewPlayerTurn(0, 0)))
	assert.True(t, stack.IsLevel(NewPlacementPhase(0, 0)))
	assert.True(t, stack.IsLevel(NewAttackPhase(0, 0)))
	assert.True(t, stack.IsLevel(NewMovementPhase(0, 0)))
	assert.False(t, stack.IsLevel(NewGame()))
	assert.False(t, stack.IsLevel(NewAgentTurnEnd(0, 0)))
}

func TestClassificationHelpers(t *testing.T) {
	assert.True(t, IsRejection(NewRejectAttack(0, 0, 1, 2, ReasonNotEnoughAttackers)))
	assert.True(t, IsRejection(NewRejectTroopPlacement(0, 0, 1, 1, "nope")))
	assert.True(t, IsRejection(NewRejectTransfer(0, 0, 1, 2, 1, "nope")))
	assert.False(t, IsRejection(NewGame()))

	assert.True(t, IsTerminal(NewVictory(0, 0)))
	assert.True(t, IsTerminal(NewSimulationComplete(4)))
	assert.True(t, IsTerminal(NewSystemInterrupt()))
	assert.False(t, IsTerminal(NewSystemResume()))
	assert.False(t, IsTerminal(NewSystemStep()))

	assert.True(t, IsSideEffect(NewAdjustArmies(1, 2, false)))
	assert.True(t, IsSideEffect(NewCaptureTerritory(0, 0, 1, 2, 3, 1)))
	assert.False(t, IsSideEffect(NewFight(0, 0, 1, 2, 3, 1)))
	assert.False(t, IsSideEffect(NewResolveFight(0, 0, 1, 2, 3, 0, 1)))
}

func TestRejectAttackCarriesReasonText(t *testing.T) {
	reject := NewRejectAttack(2, 1, 4, 7, ReasonMustLeaveOneBehind)
	assert.Equal(t, "T4", reject.Code)
	assert.Equal(t, "must leave at least one troop behind", reject.Reason)
	assert.Contains(t, reject.ElementName(), "must leave at least one troop behind")
}

func TestPauseProcessingCarriesDelay(t *testing.T) {
	pause := NewPauseProcessing(1500000000)
	assert.Equal(t, KindPauseProcessing, pause.ElementKind())
	assert.Contains(t, pause.ElementName(), "1.5s")
}
