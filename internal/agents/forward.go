package agents

import (
	"fmt"
	"math/rand"

	"go.uber.org/zap"

	"github.com/riskforge/risksim/internal/engine"
	"github.com/riskforge/risksim/internal/state"
)

// SimulateTurns runs a copy of the given state forward for a number of
// turns under a random policy for every player, leaving the original
// untouched. The copy travels through the textual codec, so anything
// the codec would not preserve never leaks into the simulation.
func SimulateTurns(g *state.GameState, turns int, attackRate float64, seed int64, logger *zap.Logger) (*state.GameState, error) {
	cpy, err := state.ParseString(state.Render(g))
	if err != nil {
		return nil, fmt.Errorf("copying state: %w", err)
	}

	rng := rand.New(rand.NewSource(seed))
	cpy.Initialise(rng, false)
	startingTurn := cpy.CurrentTurn

	controller := engine.NewRiskController(cpy, rng, 0, logger)

	agentEngine, err := Setup(cpy.PlayerIDs(), nil, attackRate, rng, logger)
	if err != nil {
		return nil, err
	}
	controller.AddEngine(agentEngine)
	controller.AddEngine(engine.NewForwardEngine(turns, startingTurn, logger))

	steps, err := controller.Run()
	if err != nil {
		return nil, err
	}
	if logger != nil {
		logger.Info("forward simulation complete",
			zap.Int("steps", steps),
			zap.Int("starting_turn", startingTurn),
			zap.Int("final_turn", cpy.CurrentTurn),
		)
	}
	return cpy, nil
}
