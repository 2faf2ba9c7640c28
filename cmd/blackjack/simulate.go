package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lox/blackjacksim/internal/config"
	"github.com/lox/blackjacksim/internal/report"
	"github.com/lox/blackjacksim/internal/rules"
	"github.com/lox/blackjacksim/internal/simulator"
	"github.com/lox/blackjacksim/internal/store"
	"github.com/lox/blackjacksim/internal/tui"
)

// SimulateCmd runs a simulation. Flags override the config file.
type SimulateCmd struct {
	Config string `short:"c" default:"blackjack.hcl" help:"Path to HCL configuration file"`

	Decks          *int    `help:"Number of decks in the shoe (1-8)"`
	Rounds         *int    `short:"r" help:"Rounds per run (max 100000)"`
	Runs           *int    `help:"Independent runs"`
	Bankroll       *int    `help:"Starting chips"`
	MinBet         *int    `help:"Minimum bet"`
	MaxBet         *int    `help:"Maximum bet"`
	Strategy       *string `help:"Playing strategy (basic, random)"`
	CountingSystem *string `name:"counting" help:"Card counting system (hi-lo, omega-ii, halves), empty to disable"`
	Betting        *string `help:"Betting when not counting cards (random, flat)"`
	Seed           *int64  `help:"RNG seed (0 picks one from the clock)"`
	DB             *string `name:"db" help:"SQLite database to store the runs in"`

	Progress bool `help:"Show a progress bar"`
	NoColor  bool `help:"Disable colours in the report"`
	Width    int  `default:"60" help:"Width of the bankroll sparkline"`
}

func (cmd *SimulateCmd) settings() (*config.Config, error) {
	cfg, err := config.Load(cmd.Config)
	if err != nil {
		return nil, err
	}

	s := cfg.Simulation
	override(&s.Decks, cmd.Decks)
	override(&s.Rounds, cmd.Rounds)
	override(&s.Runs, cmd.Runs)
	override(&s.Bankroll, cmd.Bankroll)
	override(&s.MinBet, cmd.MinBet)
	override(&s.MaxBet, cmd.MaxBet)
	if cmd.Strategy != nil {
		switch *cmd.Strategy {
		case "basic":
			s.BasicStrategy = true
		case "random":
			s.BasicStrategy = false
		default:
			return nil, fmt.Errorf("%w: unknown strategy %q", rules.ErrConfig, *cmd.Strategy)
		}
	}
	override(&s.CountingSystem, cmd.CountingSystem)
	override(&s.Betting, cmd.Betting)
	override(&s.Seed, cmd.Seed)
	override(&s.Database, cmd.DB)
	if s.Seed == 0 {
		s.Seed = newSeed()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func override[T any](dst *T, flag *T) {
	if flag != nil {
		*dst = *flag
	}
}

func (cmd *SimulateCmd) Run(g *Globals) error {
	cfg, err := cmd.settings()
	if err != nil {
		return err
	}
	logger := g.logger()

	set, err := g.tablesOr(cfg.Simulation.Tables)
	if err != nil {
		return err
	}

	simCfg := cfg.Simulation.SimulatorConfig()
	simCfg.Tables = set
	simCfg.Logger = logger

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var result *simulator.Result
	if cmd.Progress {
		result, err = runWithProgress(ctx, simCfg)
	} else {
		var sim *simulator.Simulator
		if sim, err = simulator.New(simCfg); err == nil {
			result, err = sim.Run(ctx)
		}
	}
	if err != nil {
		return err
	}

	if err := report.Summary(g.stdout(), report.FromResult(result), report.Options{
		NoColor: cmd.NoColor,
		Width:   cmd.Width,
	}); err != nil {
		return err
	}

	if cfg.Simulation.Database == "" {
		return nil
	}
	return saveRuns(ctx, g, cfg.Simulation, result)
}

// runWithProgress runs the simulation behind a bubbletea progress bar.
func runWithProgress(ctx context.Context, simCfg simulator.Config) (*simulator.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := tui.NewProgressModel("Simulating blackjack", simCfg.Rounds*simCfg.Runs, cancel)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr), tea.WithContext(ctx))
	simCfg.Progress = func(p simulator.Progress) {
		program.Send(tui.ProgressMsg(p))
	}

	sim, err := simulator.New(simCfg)
	if err != nil {
		return nil, err
	}

	var (
		result *simulator.Result
		runErr error
		done   = make(chan struct{})
	)
	go func() {
		defer close(done)
		result, runErr = sim.Run(ctx)
		program.Send(tui.DoneMsg{Err: runErr})
	}()

	_, progErr := program.Run()
	if progErr != nil {
		cancel()
	}
	<-done
	if runErr != nil {
		return nil, runErr
	}
	if progErr != nil {
		return nil, progErr
	}
	return result, nil
}

func saveRuns(ctx context.Context, g *Globals, s *config.Simulation, result *simulator.Result) error {
	db, err := store.Open(ctx, s.Database)
	if err != nil {
		return fmt.Errorf("open run database: %w", err)
	}
	defer db.Close()

	for _, run := range result.Runs {
		id, err := db.SaveRun(ctx, store.Run{
			Rounds:         len(run.History),
			Bankroll:       s.Bankroll,
			MinBet:         s.MinBet,
			MaxBet:         s.MaxBet,
			Decks:          s.Decks,
			BasicStrategy:  s.BasicStrategy,
			CountingSystem: s.CountingSystem,
			Betting:        s.Betting,
			Seed:           run.Seed,
			History:        run.History,
		})
		if err != nil {
			return fmt.Errorf("save run %d: %w", run.Index+1, err)
		}
		fmt.Fprintf(g.stdout(), "Saved run %d as %s\n", run.Index+1, id)
	}
	return nil
}
