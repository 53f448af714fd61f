package engine

import (
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/riskforge/risksim/internal/events"
	"github.com/riskforge/risksim/internal/stack"
	"github.com/riskforge/risksim/internal/state"
)

// BootEngine consumes the bootstrap Game event and opens the first
// turn: the current player's turn level, their placement phase, and the
// reinforcement setup.
type BootEngine struct {
	logger *zap.Logger
}

// NewBootEngine creates the boot engine.
func NewBootEngine(logger *zap.Logger) *BootEngine {
	return &BootEngine{logger: logger}
}

func (e *BootEngine) ID() string { return "Boot Engine" }

func (e *BootEngine) AllowedElements() []stack.Kind {
	return []stack.Kind{events.KindGame}
}

func (e *BootEngine) Process(g *state.GameState, el stack.Element) (Result, error) {
	turn, player := g.CurrentTurn, g.CurrentPlayer
	g.Phase = state.PhasePlayerTurn
	if e.logger != nil {
		e.logger.Info("booting simulation",
			zap.Int("turn", turn),
			zap.Int("player", player),
			zap.Int("territories", len(g.Territories)),
		)
	}
	return Handled(
		events.NewPlayerTurn(turn, player),
		events.NewPlacementPhase(turn, player),
		events.NewUpdateReinforcements(player),
	), nil
}

// ReinforcementEngine computes a player's placement credits and assigns
// them through a side effect, then asks the player's agent for a
// placement plan.
type ReinforcementEngine struct {
	logger *zap.Logger
}

// NewReinforcementEngine creates the reinforcement engine.
func NewReinforcementEngine(logger *zap.Logger) *ReinforcementEngine {
	return &ReinforcementEngine{logger: logger}
}

func (e *ReinforcementEngine) ID() string { return "Reinforcement Engine" }

func (e *ReinforcementEngine) AllowedElements() []stack.Kind {
	return []stack.Kind{events.KindUpdateReinforcements}
}

func (e *ReinforcementEngine) Process(g *state.GameState, el stack.Element) (Result, error) {
	ev := el.(events.UpdateReinforcements)
	credits := g.CalculateReinforcements(ev.Player)
	g.Phase = state.PhaseGetTroops
	if e.logger != nil {
		e.logger.Debug("assigning reinforcements",
			zap.Int("player", ev.Player),
			zap.Int("credits", credits),
		)
	}
	return Handled(
		events.NewAdjustPlacementCredits(ev.Player, credits),
		events.NewRequestPlacementPlan(g.CurrentTurn, ev.Player),
	), nil
}

// PlacementEngine validates troop placement intents. Valid placements
// become army adjustments that spend placement credits; invalid ones
// become rejections and leave the state untouched.
type PlacementEngine struct {
	logger *zap.Logger
}

// NewPlacementEngine creates the placement engine.
func NewPlacementEngine(logger *zap.Logger) *PlacementEngine {
	return &PlacementEngine{logger: logger}
}

func (e *PlacementEngine) ID() string { return "Placement Engine" }

func (e *PlacementEngine) AllowedElements() []stack.Kind {
	return []stack.Kind{events.KindTroopPlacement}
}

func (e *PlacementEngine) Process(g *state.GameState, el stack.Element) (Result, error) {
	ev := el.(events.TroopPlacement)

	reject := func(reason string) (Result, error) {
		if e.logger != nil {
			e.logger.Debug("rejecting placement",
				zap.Int("player", ev.Player),
				zap.Int("territory", ev.Territory),
				zap.String("reason", reason),
			)
		}
		return Handled(events.NewRejectTroopPlacement(ev.Turn, ev.Player, ev.Territory, ev.NumTroops, reason)), nil
	}

	territory := g.Territory(ev.Territory)
	if territory == nil || !territory.IsOwnedBy(ev.Player) {
		return reject("you do not own the territory")
	}
	if ev.NumTroops < 1 {
		return reject("must place at least one troop")
	}
	if ev.NumTroops > g.PlacementsLeft {
		return reject("not enough placement credits")
	}

	return Handled(events.NewAdjustArmies(ev.Territory, ev.NumTroops, true)), nil
}

// AttackEngine validates attack intents against the fixed T1..T5
// reasons. Valid attacks become fight events; invalid ones become
// rejections and leave the state untouched.
type AttackEngine struct {
	logger *zap.Logger
}

// NewAttackEngine creates the attack engine.
func NewAttackEngine(logger *zap.Logger) *AttackEngine {
	return &AttackEngine{logger: logger}
}

func (e *AttackEngine) ID() string { return "Attack Engine" }

func (e *AttackEngine) AllowedElements() []stack.Kind {
	return []stack.Kind{events.KindAttackOnTerritory}
}

func (e *AttackEngine) Process(g *state.GameState, el stack.Element) (Result, error) {
	ev := el.(events.AttackOnTerritory)

	reject := func(code string) (Result, error) {
		if e.logger != nil {
			e.logger.Debug("rejecting attack",
				zap.Int("player", ev.Player),
				zap.Int("from", ev.FromTerritory),
				zap.Int("to", ev.ToTerritory),
				zap.String("code", code),
			)
		}
		return Handled(events.NewRejectAttack(ev.Turn, ev.Player, ev.FromTerritory, ev.ToTerritory, code)), nil
	}

	from := g.Territory(ev.FromTerritory)
	if from == nil || !from.IsOwnedBy(ev.Player) {
		return reject(events.ReasonNotAttackOwner)
	}
	to := g.Territory(ev.ToTerritory)
	if to == nil || to.IsOwnedBy(ev.Player) || !to.CanBeAttacked() {
		return reject(events.ReasonAttackOwnTerritory)
	}
	if !from.IsAdjacentTo(ev.ToTerritory) {
		return Handled(events.NewRejectAttackWithReason(ev.Turn, ev.Player,
			ev.FromTerritory, ev.ToTerritory, "territories are not adjacent")), nil
	}
	if ev.AttackingTroops < 1 {
		return reject(events.ReasonNotEnoughAttackers)
	}
	if from.Armies <= 1 {
		return reject(events.ReasonMustLeaveOneBehind)
	}
	if ev.AttackingTroops > from.Armies-1 {
		return reject(events.ReasonNotEnoughToTransfer)
	}

	return Handled(events.NewFight(ev.Turn, ev.Player,
		ev.FromTerritory, ev.ToTerritory, ev.AttackingTroops, to.Armies)), nil
}

// FightEngine resolves fight events with the shared seeded stream and
// emits the resolution record, a casualties event for each territory
// that lost troops, and the capture when the defenders are wiped out.
type FightEngine struct {
	logger *zap.Logger
	rng    *rand.Rand
}

// NewFightEngine creates the fight engine over the shared stream.
func NewFightEngine(rng *rand.Rand, logger *zap.Logger) *FightEngine {
	return &FightEngine{logger: logger, rng: rng}
}

func (e *FightEngine) ID() string { return "Fight Engine" }

func (e *FightEngine) AllowedElements() []stack.Kind {
	return []stack.Kind{events.KindFight}
}

func (e *FightEngine) Process(g *state.GameState, el stack.Element) (Result, error) {
	ev := el.(events.Fight)

	defending := g.Territory(ev.DefendingTerritory)
	if defending == nil {
		return Declined, nil
	}

	result := ResolveCombat(ev.AttackingArmies, ev.DefendingArmies, e.rng)

	if e.logger != nil {
		e.logger.Debug("fight resolved",
			zap.Int("from", ev.AttackingTerritory),
			zap.Int("to", ev.DefendingTerritory),
			zap.Int("surviving_attackers", result.SurvivingAttackers),
			zap.Int("surviving_defenders", result.SurvivingDefenders),
			zap.Int("rounds", result.Rounds),
		)
	}

	out := []stack.Element{events.NewResolveFight(ev.Turn, ev.Player,
		ev.AttackingTerritory, ev.DefendingTerritory,
		result.SurvivingAttackers, result.SurvivingDefenders, result.Rounds)}

	if lost := ev.AttackingArmies - result.SurvivingAttackers; lost > 0 {
		out = append(out, events.NewCasualties(ev.Turn, ev.AttackingTerritory, lost))
	}
	if lost := ev.DefendingArmies - result.SurvivingDefenders; lost > 0 {
		out = append(out, events.NewCasualties(ev.Turn, ev.DefendingTerritory, lost))
	}
	if result.SurvivingDefenders == 0 && result.SurvivingAttackers > 0 {
		out = append(out, events.NewCaptureTerritory(ev.Turn, ev.Player,
			ev.DefendingTerritory, ev.AttackingTerritory,
			result.SurvivingAttackers, defending.Owner))
	}
	return Result{Handled: true, Events: out}, nil
}

// MovementEngine validates troop movement intents. Movement is a single
// hop per event; multi-hop plans arrive as a sequence. Valid movements
// become a pair of army adjustments; invalid ones become rejections.
type MovementEngine struct {
	logger *zap.Logger
}

// NewMovementEngine creates the movement engine.
func NewMovementEngine(logger *zap.Logger) *MovementEngine {
	return &MovementEngine{logger: logger}
}

func (e *MovementEngine) ID() string { return "Movement Engine" }

func (e *MovementEngine) AllowedElements() []stack.Kind {
	return []stack.Kind{events.KindMovementOfTroops}
}

func (e *MovementEngine) Process(g *state.GameState, el stack.Element) (Result, error) {
	ev := el.(events.MovementOfTroops)

	reject := func(reason string) (Result, error) {
		if e.logger != nil {
			e.logger.Debug("rejecting transfer",
				zap.Int("player", ev.Player),
				zap.Int("from", ev.FromTerritory),
				zap.Int("to", ev.ToTerritory),
				zap.String("reason", reason),
			)
		}
		return Handled(events.NewRejectTransfer(ev.Turn, ev.Player,
			ev.FromTerritory, ev.ToTerritory, ev.MovingTroops, reason)), nil
	}

	from := g.Territory(ev.FromTerritory)
	if from == nil || !from.IsOwnedBy(ev.Player) {
		return reject("you do not own the source territory")
	}
	to := g.Territory(ev.ToTerritory)
	if to == nil || !to.IsOwnedBy(ev.Player) {
		return reject("you do not own the destination territory")
	}
	if !from.IsAdjacentTo(ev.ToTerritory) {
		return reject("territories are not adjacent")
	}
	if ev.MovingTroops < 1 {
		return reject("must move at least one troop")
	}
	if from.Armies-ev.MovingTroops < 1 {
		return reject(events.ReasonText[events.ReasonNotEnoughToTransfer])
	}

	return Handled(
		events.NewAdjustArmies(ev.FromTerritory, -ev.MovingTroops, false),
		events.NewAdjustArmies(ev.ToTerritory, ev.MovingTroops, false),
	), nil
}

// PhaseEngine walks a turn through its phases: placement end clears the
// leftover credits and opens the attack phase, attack end opens the
// movement phase, movement end closes the turn.
type PhaseEngine struct {
	logger *zap.Logger
}

// NewPhaseEngine creates the phase engine.
func NewPhaseEngine(logger *zap.Logger) *PhaseEngine {
	return &PhaseEngine{logger: logger}
}

func (e *PhaseEngine) ID() string { return "Phase Engine" }

func (e *PhaseEngine) AllowedElements() []stack.Kind {
	return []stack.Kind{
		events.KindPlacementPhaseEnd,
		events.KindAttackPhaseEnd,
		events.KindMovementPhaseEnd,
	}
}

func (e *PhaseEngine) Process(g *state.GameState, el stack.Element) (Result, error) {
	switch ev := el.(type) {
	case events.PlacementPhaseEnd:
		g.Phase = state.PhaseMoveTroops
		out := []stack.Element{}
		if g.PlacementsLeft > 0 {
			out = append(out, events.NewClearReinforcements(g.PlacementsLeft))
		}
		out = append(out, events.NewAttackPhase(ev.Turn, ev.Player))
		return Result{Handled: true, Events: out}, nil
	case events.AttackPhaseEnd:
		return Handled(events.NewMovementPhase(ev.Turn, ev.Player)), nil
	case events.MovementPhaseEnd:
		g.Phase = state.PhaseEndTurn
		return Handled(events.NewAgentTurnEnd(ev.Turn, ev.Player)), nil
	}
	return Declined, nil
}

// TurnEngine closes a player's turn: refreshes the derived statistics,
// checks for a winner, and otherwise rotates play to the next active
// player and opens their turn.
type TurnEngine struct {
	logger *zap.Logger
}

// NewTurnEngine creates the turn engine.
func NewTurnEngine(logger *zap.Logger) *TurnEngine {
	return &TurnEngine{logger: logger}
}

func (e *TurnEngine) ID() string { return "Turn Engine" }

func (e *TurnEngine) AllowedElements() []stack.Kind {
	return []stack.Kind{events.KindAgentTurnEnd, events.KindAdvanceTurn}
}

func (e *TurnEngine) Process(g *state.GameState, el stack.Element) (Result, error) {
	g.UpdateStatistics()

	if winner, ok := g.CheckVictory(); ok {
		if e.logger != nil {
			e.logger.Info("victory",
				zap.Int("winner", winner),
				zap.Int("turn", g.CurrentTurn),
			)
		}
		return Handled(events.NewVictory(g.CurrentTurn, winner)), nil
	}

	g.AdvanceTurn()
	g.Phase = state.PhasePlayerTurn
	turn, player := g.CurrentTurn, g.CurrentPlayer
	if e.logger != nil {
		e.logger.Debug("advancing turn",
			zap.Int("turn", turn),
			zap.Int("player", player),
			zap.Int("total_turns", g.TotalTurns),
		)
	}
	return Handled(
		events.NewPlayerTurn(turn, player),
		events.NewPlacementPhase(turn, player),
		events.NewUpdateReinforcements(player),
	), nil
}

// AgentDelayEngine paces agent turns for presentation: it rewrites the
// turn end into a pause followed by the actual turn advancement, so the
// pause cannot swallow it. Register it ahead of the turn engine.
type AgentDelayEngine struct {
	logger *zap.Logger
	delay  time.Duration
}

// NewAgentDelayEngine creates the delay engine.
func NewAgentDelayEngine(delay time.Duration, logger *zap.Logger) *AgentDelayEngine {
	return &AgentDelayEngine{logger: logger, delay: delay}
}

func (e *AgentDelayEngine) ID() string { return "AI Delay Engine" }

func (e *AgentDelayEngine) AllowedElements() []stack.Kind {
	return []stack.Kind{events.KindAgentTurnEnd}
}

func (e *AgentDelayEngine) Process(g *state.GameState, el stack.Element) (Result, error) {
	ev := el.(events.AgentTurnEnd)
	return Handled(
		events.NewPauseProcessing(e.delay),
		events.NewAdvanceTurn(ev.Turn, ev.Player),
	), nil
}

// ForwardEngine bounds a simulation to a turn budget. It watches turn
// levels and replaces the first one past the budget with a terminal
// completion event.
type ForwardEngine struct {
	logger       *zap.Logger
	budget       int
	startingTurn int
}

// NewForwardEngine creates a forward engine counting from startingTurn.
func NewForwardEngine(budget, startingTurn int, logger *zap.Logger) *ForwardEngine {
	return &ForwardEngine{logger: logger, budget: budget, startingTurn: startingTurn}
}

func (e *ForwardEngine) ID() string { return "Forward Engine" }

func (e *ForwardEngine) AllowedElements() []stack.Kind {
	return []stack.Kind{events.KindPlayerTurn}
}

func (e *ForwardEngine) Process(g *state.GameState, el stack.Element) (Result, error) {
	if g.CurrentTurn-e.startingTurn < e.budget {
		return Declined, nil
	}
	if e.logger != nil {
		e.logger.Info("forward budget exhausted",
			zap.Int("starting_turn", e.startingTurn),
			zap.Int("current_turn", g.CurrentTurn),
			zap.Int("budget", e.budget),
		)
	}
	return Handled(events.NewSimulationComplete(g.CurrentTurn)), nil
}

// SideEffectEngine applies side-effect events to the game state. A
// failing apply is a fatal invariant violation.
type SideEffectEngine struct {
	logger *zap.Logger
}

// NewSideEffectEngine creates the side effect engine.
func NewSideEffectEngine(logger *zap.Logger) *SideEffectEngine {
	return &SideEffectEngine{logger: logger}
}

func (e *SideEffectEngine) ID() string { return "Side Effect Engine" }

func (e *SideEffectEngine) AllowedElements() []stack.Kind {
	return []stack.Kind{
		events.KindAdjustPlacementCredits,
		events.KindClearReinforcements,
		events.KindAdjustArmies,
		events.KindCasualties,
		events.KindCaptureTerritory,
	}
}

func (e *SideEffectEngine) Process(g *state.GameState, el stack.Element) (Result, error) {
	effect, ok := el.(events.SideEffect)
	if !ok {
		return Declined, nil
	}
	if err := effect.Apply(g); err != nil {
		return Declined, err
	}
	if e.logger != nil {
		e.logger.Debug("applied side effect", zap.String("event", el.ElementName()))
	}
	return Handled(), nil
}
