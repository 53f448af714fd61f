// Package config loads the simulator's configuration and the optional
// per-player agent binding file.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/viper"

	"github.com/riskforge/risksim/internal/agents"
)

// LoggingConfig controls the zap logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SimulationConfig controls a run of the kernel.
type SimulationConfig struct {
	Regions        int     `mapstructure:"regions"`
	Players        int     `mapstructure:"players"`
	StartingArmies int     `mapstructure:"starting_armies"`
	Turns          int     `mapstructure:"turns"`
	AttackRate     float64 `mapstructure:"attack_rate"`
	DelaySeconds   float64 `mapstructure:"delay_seconds"`
	Seed           int64   `mapstructure:"seed"`
	StatePath      string  `mapstructure:"state_path"`
	AgentsPath     string  `mapstructure:"agents_path"`
}

// ObserverConfig controls the websocket tape feed.
type ObserverConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Address string `mapstructure:"address"`
}

// DatabaseConfig controls the optional run archive.
type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

// Config is the root configuration.
type Config struct {
	Logging    LoggingConfig    `mapstructure:"logging"`
	Simulation SimulationConfig `mapstructure:"simulation"`
	Observer   ObserverConfig   `mapstructure:"observer"`
	Database   DatabaseConfig   `mapstructure:"database"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("simulation.regions", 15)
	v.SetDefault("simulation.players", 3)
	v.SetDefault("simulation.starting_armies", 20)
	v.SetDefault("simulation.turns", 10)
	v.SetDefault("simulation.attack_rate", 0.5)
	v.SetDefault("simulation.delay_seconds", 0)
	v.SetDefault("simulation.seed", 1)
	v.SetDefault("observer.enabled", false)
	v.SetDefault("observer.address", ":8089")
}

// Load reads the configuration file at path, or returns the defaults
// when path is empty.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	return &cfg, nil
}

// DefaultAttackProbability is used for players the binding file does
// not mention.
const DefaultAttackProbability = 0.5

// LoadAgentBindings reads the agent binding file. A missing file is not
// an error: every player then falls back to a random agent. Unknown
// family or strategy tags are errors; unimplemented combinations are
// reported by the agent registry at construction.
func LoadAgentBindings(path string) (map[int]agents.Spec, error) {
	if path == "" {
		return nil, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading agent bindings %s: %w", path, err)
	}

	bindings := make(map[int]agents.Spec)
	for key := range v.AllSettings() {
		playerID, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("agent binding key %q is not a player id", key)
		}

		sub := v.Sub(key)
		if sub == nil {
			return nil, fmt.Errorf("agent binding for player %d is not an object", playerID)
		}
		familyTag := sub.GetString("type")
		if familyTag == "" {
			familyTag = string(agents.FamilySimple)
		}
		strategyTag := sub.GetString("strat")
		if strategyTag == "" {
			strategyTag = string(agents.StrategyRandom)
		}

		family, err := agents.ParseFamily(familyTag)
		if err != nil {
			return nil, fmt.Errorf("player %d: %w", playerID, err)
		}
		strategy, err := agents.ParseStrategy(strategyTag)
		if err != nil {
			return nil, fmt.Errorf("player %d: %w", playerID, err)
		}

		probability := DefaultAttackProbability
		if sub.IsSet("attack_probability") {
			probability = sub.GetFloat64("attack_probability")
		}

		bindings[playerID] = agents.Spec{
			Family:            family,
			Strategy:          strategy,
			AttackProbability: probability,
		}
	}
	return bindings, nil
}
