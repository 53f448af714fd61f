package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/riskforge/risksim/internal/events"
	"github.com/riskforge/risksim/internal/stack"
	"github.com/riskforge/risksim/internal/state"
)

// twoPlayerState builds the bootstrap fixture: two players, three
// territories on a path, starting player zero.
func twoPlayerState(t *testing.T) *state.GameState {
	t.Helper()
	g := state.NewGameState(3, 2, 10)
	owners := []int{0, 1, 0}
	for i := 0; i < 3; i++ {
		terr := state.NewTerritory(i, "Region")
		if i > 0 {
			terr.AddAdjacent(i - 1)
		}
		if i < 2 {
			terr.AddAdjacent(i + 1)
		}
		terr.SetOwner(owners[i], 1)
		g.AddTerritory(terr)
	}
	g.CurrentPlayer = 0
	g.StartingPlayer = 0
	g.UpdateStatistics()
	return g
}

func tapeKinds(tape *stack.EventTape) []stack.Kind {
	kinds := make([]stack.Kind, 0, tape.Len())
	for _, el := range tape.Elements() {
		kinds = append(kinds, el.ElementKind())
	}
	return kinds
}

func stepN(t *testing.T, c *SimulationController, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		more, err := c.Step()
		require.NoError(t, err)
		require.True(t, more, "expected step %d to continue", i+1)
	}
}

func TestBootstrapSequence(t *testing.T) {
	g := twoPlayerState(t)
	c := NewRiskController(g, rand.New(rand.NewSource(1)), 0, zap.NewNop())

	stepN(t, c, 5)

	assert.Equal(t, []stack.Kind{
		events.KindGame,
		events.KindPlayerTurn,
		events.KindPlacementPhase,
		events.KindUpdateReinforcements,
		events.KindAdjustPlacementCredits,
	}, tapeKinds(c.Tape()))

	assert.Equal(t, 3, g.PlacementsLeft, "the credit floor of three applies")
}

func TestPlacementCreditsZeroWhenPhaseLevelPops(t *testing.T) {
	g := twoPlayerState(t)
	c := NewRiskController(g, rand.New(rand.NewSource(1)), 0, zap.NewNop())

	// Steps one and two put the turn level on the tape; step three pops
	// the placement phase level, before any credit has been assigned.
	stepN(t, c, 2)
	require.Equal(t, events.KindPlacementPhase, c.Stack().Peek().ElementKind())
	assert.Equal(t, 0, g.PlacementsLeft)
}

func TestDeterministicRejectionLeavesStateUntouched(t *testing.T) {
	g := state.NewGameState(8, 2, 10)
	from := state.NewTerritory(5, "Attacker")
	from.AddAdjacent(7)
	from.SetOwner(0, 1)
	to := state.NewTerritory(7, "Defender")
	to.AddAdjacent(5)
	to.SetOwner(1, 3)
	g.AddTerritory(from)
	g.AddTerritory(to)
	g.UpdateStatistics()

	c := NewRiskController(g, rand.New(rand.NewSource(1)), 0, zap.NewNop())
	c.Stack().Clear()
	c.Push(events.NewAttackOnTerritory(0, 0, 5, 7, 1))

	before := state.Render(g)
	stepN(t, c, 1)

	// The rejection replaced the intent on the stack.
	top := c.Stack().Peek()
	require.NotNil(t, top)
	rejected, ok := top.(events.RejectAttack)
	require.True(t, ok, "expected the rejection on top of the stack")
	assert.Equal(t, events.ReasonMustLeaveOneBehind, rejected.Code)
	assert.Equal(t, "must leave at least one troop behind", rejected.Reason)

	stepN(t, c, 1)
	kinds := tapeKinds(c.Tape())
	assert.Equal(t, []stack.Kind{
		events.KindAttackOnTerritory,
		events.KindRejectAttack,
	}, kinds)
	assert.Equal(t, before, state.Render(g), "rejections never mutate state")
}

func TestAttackRejectReasonCodes(t *testing.T) {
	g := state.NewGameState(8, 2, 10)
	mine := state.NewTerritory(1, "Mine")
	mineToo := state.NewTerritory(2, "Mine Too")
	theirs := state.NewTerritory(3, "Theirs")
	far := state.NewTerritory(4, "Far")
	mine.AddAdjacent(2)
	mine.AddAdjacent(3)
	mineToo.AddAdjacent(1)
	theirs.AddAdjacent(1)
	mine.SetOwner(0, 5)
	mineToo.SetOwner(0, 2)
	theirs.SetOwner(1, 2)
	far.SetOwner(1, 2)
	g.AddTerritory(mine)
	g.AddTerritory(mineToo)
	g.AddTerritory(theirs)
	g.AddTerritory(far)
	g.UpdateStatistics()

	eng := NewAttackEngine(zap.NewNop())

	cases := []struct {
		name   string
		attack events.AttackOnTerritory
		code   string
	}{
		{"own territory target", events.NewAttackOnTerritory(0, 0, 1, 2, 2), events.ReasonAttackOwnTerritory},
		{"zero troops", events.NewAttackOnTerritory(0, 0, 1, 3, 0), events.ReasonNotEnoughAttackers},
		{"not the owner", events.NewAttackOnTerritory(0, 0, 3, 1, 1), events.ReasonNotAttackOwner},
		{"unknown source", events.NewAttackOnTerritory(0, 0, 99, 3, 1), events.ReasonNotAttackOwner},
		{"cannot commit whole garrison", events.NewAttackOnTerritory(0, 0, 1, 3, 5), events.ReasonNotEnoughToTransfer},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := eng.Process(g, tc.attack)
			require.NoError(t, err)
			require.True(t, res.Handled)
			require.Len(t, res.Events, 1)
			reject, ok := res.Events[0].(events.RejectAttack)
			require.True(t, ok)
			assert.Equal(t, tc.code, reject.Code)
		})
	}

	t.Run("non adjacent target", func(t *testing.T) {
		res, err := eng.Process(g, events.NewAttackOnTerritory(0, 0, 1, 4, 2))
		require.NoError(t, err)
		reject := res.Events[0].(events.RejectAttack)
		assert.Empty(t, reject.Code)
		assert.Equal(t, "territories are not adjacent", reject.Reason)
	})
}

func TestConquestTransfersOwnership(t *testing.T) {
	g := state.NewGameState(4, 2, 10)
	attacker := state.NewTerritory(1, "Attacker")
	defender := state.NewTerritory(2, "Defender")
	attacker.AddAdjacent(2)
	defender.AddAdjacent(1)
	attacker.SetOwner(0, 10)
	defender.SetOwner(1, 1)
	g.AddTerritory(attacker)
	g.AddTerritory(defender)
	g.UpdateStatistics()

	// Three attacker dice at six, one defender die at one: the lone
	// defender falls in the first round.
	rng := scriptedRand(5, 5, 5, 0)
	c := NewRiskController(g, rng, 0, zap.NewNop())
	c.Stack().Clear()
	c.Push(events.NewAttackOnTerritory(0, 0, 1, 2, 9))

	// Attack -> fight -> resolution record, defender casualties,
	// capture.
	stepN(t, c, 5)

	kinds := tapeKinds(c.Tape())
	assert.Equal(t, []stack.Kind{
		events.KindAttackOnTerritory,
		events.KindFight,
		events.KindResolveFight,
		events.KindCasualties,
		events.KindCaptureTerritory,
	}, kinds)

	assert.Equal(t, 1, g.Territory(1).Armies)
	assert.Equal(t, 0, g.Territory(2).Owner)
	assert.Equal(t, 9, g.Territory(2).Armies)
}

func TestTurnWrapIncrementsTotalTurnsOnce(t *testing.T) {
	g := threePlayerRing(t)
	g.StartingPlayer = 2
	g.CurrentPlayer = 2

	c := NewRiskController(g, rand.New(rand.NewSource(1)), 0, zap.NewNop())
	c.Stack().Clear()

	for i := 0; i < 3; i++ {
		require.Equal(t, 0, g.TotalTurns)
		c.Stack().Clear()
		c.Push(events.NewAgentTurnEnd(g.CurrentTurn, g.CurrentPlayer))
		stepN(t, c, 1)
	}
	assert.Equal(t, 1, g.TotalTurns, "the wrap past the starting player counts once")
	assert.Equal(t, 2, g.CurrentPlayer)
}

func threePlayerRing(t *testing.T) *state.GameState {
	t.Helper()
	g := state.NewGameState(6, 3, 10)
	for i := 0; i < 6; i++ {
		terr := state.NewTerritory(i, "Region")
		terr.AddAdjacent((i + 1) % 6)
		terr.AddAdjacent((i + 5) % 6)
		terr.SetOwner(i%3, 2)
		g.AddTerritory(terr)
	}
	g.UpdateStatistics()
	return g
}

func TestVictoryHaltsController(t *testing.T) {
	g := threePlayerRing(t)
	for i := 0; i < 6; i++ {
		g.Territory(i).SetOwner(0, 2)
	}
	g.UpdateStatistics()

	c := NewRiskController(g, rand.New(rand.NewSource(1)), 0, zap.NewNop())
	c.Stack().Clear()
	c.Push(events.NewAgentTurnEnd(0, 0))

	more, err := c.Step()
	require.NoError(t, err)
	require.True(t, more)

	more, err = c.Step()
	require.NoError(t, err)
	assert.False(t, more, "processing the victory event is terminal")
	assert.True(t, c.Terminal())
	assert.Equal(t, 0, g.Winner)

	kinds := tapeKinds(c.Tape())
	assert.Equal(t, events.KindVictory, kinds[len(kinds)-1])
}

func TestForwardBudgetHalts(t *testing.T) {
	g := threePlayerRing(t)
	g.CurrentTurn = 6

	c := NewRiskController(g, rand.New(rand.NewSource(1)), 0, zap.NewNop())
	c.AddEngine(NewForwardEngine(2, 4, zap.NewNop()))
	c.Stack().Clear()
	c.Push(events.NewPlayerTurn(6, 0))

	more, err := c.Step()
	require.NoError(t, err)
	require.True(t, more)

	more, err = c.Step()
	require.NoError(t, err)
	assert.False(t, more, "the completion event halts the controller")

	kinds := tapeKinds(c.Tape())
	assert.Equal(t, events.KindSimulationComplete, kinds[len(kinds)-1])
}

func TestForwardEngineDeclinesUnderBudget(t *testing.T) {
	g := threePlayerRing(t)
	g.CurrentTurn = 5
	eng := NewForwardEngine(2, 4, zap.NewNop())

	res, err := eng.Process(g, events.NewPlayerTurn(5, 0))
	require.NoError(t, err)
	assert.False(t, res.Handled)
}

func TestSystemInterruptHaltsNextStep(t *testing.T) {
	g := threePlayerRing(t)
	c := NewRiskController(g, rand.New(rand.NewSource(1)), 0, zap.NewNop())
	c.Stack().Clear()
	c.Push(events.NewAgentTurnEnd(0, 0))
	c.Interrupt()

	more, err := c.Step()
	require.NoError(t, err)
	require.True(t, more, "the interrupt itself is recorded")

	more, err = c.Step()
	require.NoError(t, err)
	assert.False(t, more, "the controller halts at the start of the next step")

	// The tape is preserved and the pending work is still on the stack.
	kinds := tapeKinds(c.Tape())
	assert.Equal(t, []stack.Kind{events.KindSystemInterrupt}, kinds)
	assert.Equal(t, 1, c.Stack().Size())
}

func TestPauseProcessingAccumulates(t *testing.T) {
	g := threePlayerRing(t)
	c := NewRiskController(g, rand.New(rand.NewSource(1)), 1_000_000_000, zap.NewNop())
	c.Stack().Clear()
	c.Push(events.NewAgentTurnEnd(0, 0))

	// The delay engine rewrites the turn end into a pause plus the
	// actual advancement.
	stepN(t, c, 2)

	assert.Positive(t, c.TakePause())
	assert.Zero(t, c.TakePause(), "the pause is cleared once taken")

	// The advancement still happens.
	stepN(t, c, 1)
	kinds := tapeKinds(c.Tape())
	assert.Equal(t, []stack.Kind{
		events.KindAgentTurnEnd,
		events.KindPauseProcessing,
		events.KindAdvanceTurn,
	}, kinds)
}

func TestFatalInvariantViolationNamesOffender(t *testing.T) {
	g := threePlayerRing(t)
	c := NewRiskController(g, rand.New(rand.NewSource(1)), 0, zap.NewNop())
	c.Stack().Clear()

	// Applying casualties beyond a garrison is an internal invariant
	// violation, not a rejection.
	c.Push(events.NewCasualties(0, 0, 99))

	more, err := c.Step()
	assert.False(t, more)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Side Effect Engine")
	assert.Contains(t, err.Error(), "Casualties")
	assert.True(t, c.Terminal())
}

func TestEmptyStackIsTerminal(t *testing.T) {
	g := threePlayerRing(t)
	c := NewSimulationController(g, RiskTapePairs(), zap.NewNop())
	more, err := c.Step()
	require.NoError(t, err)
	assert.False(t, more)
}

func TestSideEffectRevertRestoresState(t *testing.T) {
	g := threePlayerRing(t)
	c := NewRiskController(g, rand.New(rand.NewSource(1)), 0, zap.NewNop())
	c.Stack().Clear()

	before := state.Render(g)
	c.Push(events.NewAdjustArmies(0, 3, false))
	stepN(t, c, 1)
	require.Equal(t, 5, g.Territory(0).Armies)

	require.NoError(t, c.Rollback(1))
	assert.Equal(t, before, state.Render(g))
	assert.Empty(t, c.AppliedEffects())
}
