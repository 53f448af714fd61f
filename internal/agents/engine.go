package agents

import (
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/riskforge/risksim/internal/engine"
	"github.com/riskforge/risksim/internal/events"
	"github.com/riskforge/risksim/internal/stack"
	"github.com/riskforge/risksim/internal/state"
)

// AgentEngine bridges agents into the kernel. It is consulted for the
// attack and movement phase levels and for placement plan requests of
// the current player; the agent's plan replaces the element on the
// stack, followed by the matching phase end signal so an empty plan
// still ends the phase.
type AgentEngine struct {
	logger *zap.Logger
	agents map[int]Agent
}

// NewAgentEngine creates an agent engine with no bindings.
func NewAgentEngine(logger *zap.Logger) *AgentEngine {
	return &AgentEngine{
		logger: logger,
		agents: make(map[int]Agent),
	}
}

func (e *AgentEngine) ID() string { return "AI Engine" }

func (e *AgentEngine) AllowedElements() []stack.Kind {
	return []stack.Kind{
		events.KindRequestPlacementPlan,
		events.KindAttackPhase,
		events.KindMovementPhase,
	}
}

// AddAgent binds an agent to a player. Agents live for the full run and
// are never cloned between calls.
func (e *AgentEngine) AddAgent(agent Agent, playerID int) {
	e.agents[playerID] = agent
}

// Agent returns the agent bound to a player, if any.
func (e *AgentEngine) Agent(playerID int) (Agent, bool) {
	agent, ok := e.agents[playerID]
	return agent, ok
}

func (e *AgentEngine) Process(g *state.GameState, el stack.Element) (engine.Result, error) {
	agent, ok := e.agents[g.CurrentPlayer]
	if !ok {
		return engine.Declined, nil
	}

	var plan []stack.Element
	var end stack.Element
	var phase string

	start := time.Now()
	switch ev := el.(type) {
	case events.RequestPlacementPlan:
		plan = agent.DecidePlacement(g, nil)
		end = events.NewPlacementPhaseEnd(ev.Turn, ev.Player)
		phase = "placement"
	case events.AttackPhase:
		plan = agent.DecideAttack(g, nil)
		end = events.NewAttackPhaseEnd(ev.Turn, ev.Player)
		phase = "attack"
	case events.MovementPhase:
		plan = agent.DecideMovement(g, nil)
		end = events.NewMovementPhaseEnd(ev.Turn, ev.Player)
		phase = "movement"
	default:
		return engine.Declined, nil
	}
	runtime := time.Since(start)

	agent.AddRuntime(runtime)
	if player := g.Player(agent.PlayerID()); player != nil {
		player.Runtime += runtime
	}

	if e.logger != nil {
		e.logger.Info("agent decided",
			zap.String("agent", agent.Name()),
			zap.String("phase", phase),
			zap.Int("plan_len", len(plan)),
			zap.Duration("runtime", runtime),
			zap.Duration("total_runtime", agent.Runtime()),
		)
		if len(plan) == 0 {
			e.logger.Info("phase ends with no effect",
				zap.String("agent", agent.Name()),
				zap.String("phase", phase),
			)
		}
	}

	return engine.Result{Handled: true, Events: append(plan, end)}, nil
}

// Spec names an agent construction for one player.
type Spec struct {
	Family            Family
	Strategy          Strategy
	AttackProbability float64
}

// Setup builds an agent engine for the given players. Players with a
// binding get the bound construction; the registry's refusal of an
// unimplemented combination is propagated. Players without one fall
// back to a random agent with the default attack probability.
func Setup(playerIDs []int, bindings map[int]Spec, defaultAttackProbability float64, rng *rand.Rand, logger *zap.Logger) (*AgentEngine, error) {
	e := NewAgentEngine(logger)
	for _, playerID := range playerIDs {
		spec, bound := bindings[playerID]
		if !bound {
			spec = Spec{
				Family:            FamilySimple,
				Strategy:          StrategyRandom,
				AttackProbability: defaultAttackProbability,
			}
		}
		agent, err := New(spec.Family, spec.Strategy, Options{
			PlayerID:          playerID,
			AttackProbability: spec.AttackProbability,
			Rng:               rng,
		})
		if err != nil {
			return nil, err
		}
		if logger != nil {
			logger.Debug("configured agent",
				zap.Int("player", playerID),
				zap.String("family", string(spec.Family)),
				zap.String("strategy", string(spec.Strategy)),
				zap.Float64("attack_probability", spec.AttackProbability),
			)
		}
		e.AddAgent(agent, playerID)
	}
	return e, nil
}
