package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/riskforge/risksim/internal/agents"
	"github.com/riskforge/risksim/internal/config"
	"github.com/riskforge/risksim/internal/engine"
	"github.com/riskforge/risksim/internal/observer"
	"github.com/riskforge/risksim/internal/repository"
	"github.com/riskforge/risksim/internal/state"
)

var version = "dev" // set via ldflags during build

var (
	configPath  string
	agentsPath  string
	statePath   string
	databaseURL string
	listenAddr  string
	turns       int
	regions     int
	players     int
	armies      int
	attackRate  float64
	delay       float64
	seed        int64
	dumpTape    bool
	dumpState   bool
)

var rootCmd = &cobra.Command{
	Use:          "risksim",
	Short:        "Deterministic event-driven conquest simulator",
	SilenceUsage: true,
	Long: `risksim drives a map-based conquest game through a deterministic
event kernel: every action is an immutable event on a stack, dispatched
through an ordered engine chain and recorded to a hierarchical tape.

Examples:
  risksim run --turns 20 --seed 7
  risksim run --state start.state --turns 5 --dump-tape
  risksim run --agents ai.config --attack-rate 0.8`,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a simulation until victory or the turn budget",
	RunE:  runSimulation,
}

func init() {
	runCmd.Flags().StringVar(&configPath, "config", "", "path to configuration file")
	runCmd.Flags().StringVar(&agentsPath, "agents", "ai.config", "path to agent binding file")
	runCmd.Flags().StringVar(&statePath, "state", "", "path to a rendered start state")
	runCmd.Flags().StringVar(&databaseURL, "database-url", "", "archive the run in this Postgres database")
	runCmd.Flags().StringVar(&listenAddr, "listen", "", "serve the live tape feed on this address")
	runCmd.Flags().IntVar(&turns, "turns", 10, "number of turns to simulate")
	runCmd.Flags().IntVar(&regions, "regions", 15, "number of territories to generate")
	runCmd.Flags().IntVar(&players, "players", 3, "number of players")
	runCmd.Flags().IntVar(&armies, "starting-armies", 20, "starting army size per player")
	runCmd.Flags().Float64Var(&attackRate, "attack-rate", 0.5, "default agent attack probability")
	runCmd.Flags().Float64Var(&delay, "delay", 0, "seconds to pause between agent turns")
	runCmd.Flags().Int64Var(&seed, "seed", 1, "seed for the shared random stream")
	runCmd.Flags().BoolVar(&dumpTape, "dump-tape", false, "print the tape after the run")
	runCmd.Flags().BoolVar(&dumpState, "dump-state", false, "print the final state after the run")
	rootCmd.AddCommand(runCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	applyFlagOverrides(cmd, cfg)

	logger, err := initLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer logger.Sync()

	logger.Info("starting risksim",
		zap.String("version", version),
		zap.Int64("seed", cfg.Simulation.Seed),
		zap.Int("turns", cfg.Simulation.Turns),
	)

	st, err := loadState(cfg)
	if err != nil {
		return err
	}

	// The single seeded stream shared by the fight engine and
	// randomized agents.
	rng := rand.New(rand.NewSource(cfg.Simulation.Seed))
	st.Initialise(rng, cfg.Simulation.StatePath == "")

	controller := engine.NewRiskController(st, rng,
		time.Duration(cfg.Simulation.DelaySeconds*float64(time.Second)), logger)

	bindings, err := config.LoadAgentBindings(cfg.Simulation.AgentsPath)
	if err != nil {
		return err
	}
	agentEngine, err := agents.Setup(st.PlayerIDs(), bindings,
		cfg.Simulation.AttackRate, rng, logger)
	if err != nil {
		return err
	}
	controller.AddEngine(agentEngine)
	controller.AddEngine(engine.NewForwardEngine(cfg.Simulation.Turns, st.CurrentTurn, logger))

	var hub *observer.Hub
	if cfg.Observer.Enabled {
		hub = observer.NewHub(logger)
		go hub.Run()
		go func() {
			if serveErr := hub.Serve(cfg.Observer.Address); serveErr != nil {
				logger.Error("observer server error", zap.Error(serveErr))
			}
		}()
		defer hub.Close()
	}

	// SIGINT pushes an interrupt that halts the run one step after it is
	// recorded; the tape is preserved as the diagnostic artifact.
	var interrupted atomic.Bool
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		<-sigChan
		interrupted.Store(true)
	}()

	steps, runErr := drive(controller, hub, &interrupted)

	tape := controller.Tape()
	logger.Info("simulation halted",
		zap.Int("steps", steps),
		zap.Int("tape_len", tape.Len()),
		zap.Int("total_turns", st.TotalTurns),
		zap.Int("winner", st.Winner),
	)

	if dumpTape {
		fmt.Fprint(cmd.OutOrStdout(), tape.String())
	}
	if dumpState {
		fmt.Fprint(cmd.OutOrStdout(), state.Render(st))
	}

	if runErr == nil && cfg.Database.URL != "" {
		if archiveErr := archiveRun(cmd.Context(), cfg, st, tape, steps, logger); archiveErr != nil {
			logger.Warn("failed to archive run", zap.Error(archiveErr))
		}
	}

	if runErr != nil {
		return fmt.Errorf("invariant violation: %w", runErr)
	}
	return nil
}

// drive steps the controller to completion, honoring pauses, the
// interrupt flag and the live feed.
func drive(controller *engine.SimulationController, hub *observer.Hub, interrupted *atomic.Bool) (int, error) {
	var steps, published int
	for {
		if interrupted.CompareAndSwap(true, false) {
			controller.Interrupt()
		}

		more, err := controller.Step()
		steps++

		if hub != nil {
			tape := controller.Tape()
			for ; published < tape.Len(); published++ {
				el, depth := tape.At(published)
				hub.Publish(published, depth, el)
			}
		}

		if err != nil {
			return steps, err
		}
		if !more {
			return steps, nil
		}
		if pause := controller.TakePause(); pause > 0 {
			time.Sleep(pause)
		}
	}
}

func loadState(cfg *config.Config) (*state.GameState, error) {
	sim := cfg.Simulation
	if sim.StatePath == "" {
		return state.NewGameState(sim.Regions, sim.Players, sim.StartingArmies), nil
	}
	f, err := os.Open(sim.StatePath)
	if err != nil {
		return nil, fmt.Errorf("opening start state: %w", err)
	}
	defer f.Close()
	st, err := state.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing start state: %w", err)
	}
	return st, nil
}

func archiveRun(ctx context.Context, cfg *config.Config, st *state.GameState, tape fmt.Stringer, steps int, logger *zap.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	db, err := repository.NewDB(ctx, cfg.Database.URL, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	runs := repository.NewRunRepository(db, logger)
	if err := runs.EnsureSchema(ctx); err != nil {
		return err
	}
	_, err = runs.SaveRun(ctx, &repository.RunRecord{
		Seed:       cfg.Simulation.Seed,
		Turns:      cfg.Simulation.Turns,
		AttackRate: cfg.Simulation.AttackRate,
		Winner:     st.Winner,
		TotalTurns: st.TotalTurns,
		Steps:      steps,
		TapeDump:   tape.String(),
		FinalState: state.Render(st),
	})
	return err
}

// applyFlagOverrides lets explicit flags win over the configuration
// file.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("turns") {
		cfg.Simulation.Turns = turns
	}
	if flags.Changed("regions") {
		cfg.Simulation.Regions = regions
	}
	if flags.Changed("players") {
		cfg.Simulation.Players = players
	}
	if flags.Changed("starting-armies") {
		cfg.Simulation.StartingArmies = armies
	}
	if flags.Changed("attack-rate") {
		cfg.Simulation.AttackRate = attackRate
	}
	if flags.Changed("delay") {
		cfg.Simulation.DelaySeconds = delay
	}
	if flags.Changed("seed") {
		cfg.Simulation.Seed = seed
	}
	if flags.Changed("state") {
		cfg.Simulation.StatePath = statePath
	}
	if flags.Changed("agents") || cfg.Simulation.AgentsPath == "" {
		cfg.Simulation.AgentsPath = agentsPath
	}
	if flags.Changed("database-url") {
		cfg.Database.URL = databaseURL
	}
	if flags.Changed("listen") {
		cfg.Observer.Enabled = true
		cfg.Observer.Address = listenAddr
	}
}

// initLogger builds the zap logger from configuration.
func initLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)
	return zapCfg.Build()
}
