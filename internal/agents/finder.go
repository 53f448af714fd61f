package agents

import (
	"errors"
	"fmt"
	"math/rand"
)

// Family selects a planning approach for an agent.
type Family string

const (
	FamilySimple Family = "simple"
	FamilyBT     Family = "bt"
	FamilyHTN    Family = "htn"
	FamilyMCTS   Family = "mcts"
	FamilyDPN    Family = "dpn"
	FamilyBPMN   Family = "bpmn"
	FamilyDEVS   Family = "devs"
)

// Strategy selects a posture within a family.
type Strategy string

const (
	StrategyRandom     Strategy = "random"
	StrategyDefensive  Strategy = "defensive"
	StrategyAggressive Strategy = "aggressive"
)

// ErrUnknownFamily reports a family tag outside the registry.
var ErrUnknownFamily = errors.New("unknown agent family")

// ErrUnknownStrategy reports a strategy tag outside the registry.
var ErrUnknownStrategy = errors.New("unknown agent strategy")

// ErrUnimplemented reports a (family, strategy) combination the
// registry recognizes but has no construction for. Callers get the
// error rather than a placeholder agent.
var ErrUnimplemented = errors.New("agent combination not implemented")

// Options parameterize agent construction. Rng must be the simulation's
// shared seeded stream so runs stay deterministic.
type Options struct {
	PlayerID          int
	AttackProbability float64
	Rng               *rand.Rand
}

// Constructor builds an agent from options.
type Constructor func(Options) Agent

// familyAgent wraps the random policy under a family's name. The
// planner internals of the non-simple families are out of scope; their
// random strategies share the baseline policy, matching what the
// registry can actually deliver.
func familyAgent(family Family) Constructor {
	return func(opts Options) Agent {
		agent := NewRandomAgent(opts.PlayerID, opts.AttackProbability, opts.Rng)
		agent.name = fmt.Sprintf("%s Random Agent %d", family, opts.PlayerID+1)
		return agent
	}
}

var registry = map[Family]map[Strategy]Constructor{
	FamilySimple: {
		StrategyRandom: func(opts Options) Agent {
			return NewRandomAgent(opts.PlayerID, opts.AttackProbability, opts.Rng)
		},
	},
	FamilyBT:   {StrategyRandom: familyAgent(FamilyBT)},
	FamilyHTN:  {StrategyRandom: familyAgent(FamilyHTN)},
	FamilyMCTS: {StrategyRandom: familyAgent(FamilyMCTS)},
	FamilyDPN:  {StrategyRandom: familyAgent(FamilyDPN)},
	FamilyBPMN: {StrategyRandom: familyAgent(FamilyBPMN)},
	FamilyDEVS: {StrategyRandom: familyAgent(FamilyDEVS)},
}

var knownStrategies = map[Strategy]struct{}{
	StrategyRandom:     {},
	StrategyDefensive:  {},
	StrategyAggressive: {},
}

// ParseFamily validates a family tag.
func ParseFamily(tag string) (Family, error) {
	family := Family(tag)
	if _, ok := registry[family]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownFamily, tag)
	}
	return family, nil
}

// ParseStrategy validates a strategy tag.
func ParseStrategy(tag string) (Strategy, error) {
	strategy := Strategy(tag)
	if _, ok := knownStrategies[strategy]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, tag)
	}
	return strategy, nil
}

// New constructs an agent for the given family and strategy, or reports
// that the combination is unknown or unimplemented.
func New(family Family, strategy Strategy, opts Options) (Agent, error) {
	strategies, ok := registry[family]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFamily, family)
	}
	if _, ok := knownStrategies[strategy]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
	}
	construct, ok := strategies[strategy]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", ErrUnimplemented, family, strategy)
	}
	return construct(opts), nil
}
