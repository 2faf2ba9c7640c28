package simulator

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/blackjacksim/internal/bot"
	"github.com/lox/blackjacksim/internal/counting"
	"github.com/lox/blackjacksim/internal/game"
	"github.com/lox/blackjacksim/internal/randutil"
	"github.com/lox/blackjacksim/internal/rules"
	"github.com/lox/blackjacksim/internal/statistics"
	"github.com/lox/blackjacksim/internal/tables"
	"golang.org/x/sync/errgroup"
)

// Betting policies used when card counting is off.
const (
	BettingRandom = "random"
	BettingFlat   = "flat"
)

// MaxRounds caps the rounds of a single run.
const MaxRounds = 100000

// DefaultProgressInterval throttles progress callbacks
const DefaultProgressInterval = 100 * time.Millisecond

// Config holds configuration for running simulations
type Config struct {
	Rounds   int
	Runs     int
	Bankroll int
	MinBet   int
	MaxBet   int
	Decks    int

	BasicStrategy  bool   // Play by the chart instead of at random
	CountingSystem string // Counting system name, empty to disable counting
	Betting        string // BettingRandom or BettingFlat when not counting
	Seed           int64

	Tables           *tables.Set // Defaults to the embedded tables
	Logger           *log.Logger
	Clock            quartz.Clock
	Progress         func(Progress)
	ProgressInterval time.Duration
}

// Validate checks the simulation parameters
func (c Config) Validate() error {
	switch {
	case c.Rounds < 1 || c.Rounds > MaxRounds:
		return fmt.Errorf("%w: rounds must be between 1 and %d, got %d", rules.ErrConfig, MaxRounds, c.Rounds)
	case c.Runs < 1:
		return fmt.Errorf("%w: runs must be at least 1, got %d", rules.ErrConfig, c.Runs)
	case c.Bankroll < 1:
		return fmt.Errorf("%w: bankroll must be positive, got %d", rules.ErrConfig, c.Bankroll)
	case c.CountingSystem == "" && c.Betting != BettingRandom && c.Betting != BettingFlat:
		return fmt.Errorf("%w: unknown betting policy %q", rules.ErrConfig, c.Betting)
	}
	return c.table().Validate()
}

func (c Config) table() game.TableConfig {
	tc := game.TableConfig{Bankroll: c.Bankroll, MinBet: c.MinBet, MaxBet: c.MaxBet, Decks: c.Decks}
	if c.Tables != nil {
		tc.Cards = c.Tables.Cards
	}
	return tc
}

// Progress reports how far a simulation has come
type Progress struct {
	Rounds  int // Rounds completed across all runs
	Total   int
	Elapsed time.Duration
}

// Fraction returns the completed share between 0 and 1
func (p Progress) Fraction() float64 {
	if p.Total == 0 {
		return 0
	}
	return float64(p.Rounds) / float64(p.Total)
}

// Run is the outcome of one independent bankroll trajectory
type Run struct {
	Index   int
	Seed    int64
	History []int // Bankroll after every round
	Stats   *statistics.Statistics
}

// Result holds every run of a simulation
type Result struct {
	Config    Config
	Runs      []Run
	Aggregate statistics.Aggregate
	Elapsed   time.Duration
}

// Simulator runs blackjack bankroll simulations
type Simulator struct {
	config Config
	logger *log.Logger
	clock  quartz.Clock

	done       atomic.Int64
	mu         sync.Mutex
	start      time.Time
	lastReport time.Time
}

// New creates a new simulator with the given configuration
func New(config Config) (*Simulator, error) {
	if config.Tables == nil {
		set, err := tables.Default()
		if err != nil {
			return nil, err
		}
		config.Tables = set
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.CountingSystem != "" {
		if _, err := config.Tables.System(config.CountingSystem); err != nil {
			return nil, err
		}
	}
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}
	if config.ProgressInterval <= 0 {
		config.ProgressInterval = DefaultProgressInterval
	}

	logger := config.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
	}
	return &Simulator{
		config: config,
		logger: logger.WithPrefix("simulator"),
		clock:  config.Clock,
	}, nil
}

// Run plays every run to completion. Runs execute in parallel; results are
// returned in run order and depend only on the seed.
func (s *Simulator) Run(ctx context.Context) (*Result, error) {
	s.start = s.clock.Now()
	s.lastReport = s.start
	s.done.Store(0)

	s.logger.Info("Starting simulation",
		"runs", s.config.Runs,
		"rounds", s.config.Rounds,
		"decks", s.config.Decks,
		"basicStrategy", s.config.BasicStrategy,
		"counting", s.config.CountingSystem,
		"seed", s.config.Seed)

	runs := make([]Run, s.config.Runs)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range runs {
		g.Go(func() error {
			run, err := s.playRun(ctx, i)
			if err != nil {
				return fmt.Errorf("run %d: %w", i+1, err)
			}
			runs[i] = run
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := make([]*statistics.Statistics, len(runs))
	for i, r := range runs {
		if err := r.Stats.Validate(); err != nil {
			return nil, fmt.Errorf("run %d: statistics validation failed: %w", i+1, err)
		}
		stats[i] = r.Stats
	}

	result := &Result{
		Config:    s.config,
		Runs:      runs,
		Aggregate: statistics.Combine(stats),
		Elapsed:   s.clock.Since(s.start),
	}
	s.report(true)
	s.logger.Info("Simulation complete",
		"elapsed", result.Elapsed,
		"meanFinal", result.Aggregate.MeanFinal,
		"ruinRate", result.Aggregate.RuinRate)
	return result, nil
}

// playRun builds a fresh table for run i and records its trajectory
func (s *Simulator) playRun(ctx context.Context, i int) (Run, error) {
	seed := randutil.Derive(s.config.Seed, i)
	logger := s.logger.With("run", i+1)

	table, err := s.newTable(seed, logger)
	if err != nil {
		return Run{}, err
	}

	run := Run{
		Index:   i,
		Seed:    seed,
		History: make([]int, 0, s.config.Rounds),
		Stats:   statistics.New(s.config.Bankroll, s.config.MinBet),
	}
	for round := 0; round < s.config.Rounds; round++ {
		if round%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return Run{}, err
			}
		}
		result, err := table.PlayRound()
		if err != nil {
			return Run{}, err
		}
		run.History = append(run.History, result.Bankroll)
		run.Stats.Add(statistics.FromRound(result))

		s.done.Add(1)
		s.report(false)
	}

	logger.Debug("Run complete", "final", table.Bankroll(), "rounds", table.Rounds())
	return run, nil
}

// newTable wires the decision sources for one run. Each source gets its own
// generator derived from the run seed.
func (s *Simulator) newTable(seed int64, logger *log.Logger) (*game.Table, error) {
	var agent game.Agent
	if s.config.BasicStrategy {
		engine, err := s.config.Tables.Engine()
		if err != nil {
			return nil, err
		}
		agent = bot.NewStrategyAgent(engine, logger)
	} else {
		agent = bot.NewRandomAgent(randutil.New(randutil.Derive(seed, 1)), logger)
	}

	var (
		bettor game.Bettor
		opts   = []game.TableOption{game.WithLogger(logger)}
	)
	switch {
	case s.config.CountingSystem != "":
		system, err := s.config.Tables.System(s.config.CountingSystem)
		if err != nil {
			return nil, err
		}
		counter, err := counting.NewCounter(system, s.config.Decks)
		if err != nil {
			return nil, err
		}
		cb := bot.NewCountingBettor(counter, logger)
		bettor = cb
		opts = append(opts, game.WithObserver(cb))
	case s.config.Betting == BettingFlat:
		bettor = bot.FlatBettor{}
	default:
		bettor = bot.NewRandomBettor(randutil.New(randutil.Derive(seed, 2)))
	}

	return game.NewTable(randutil.New(seed), s.config.table(), agent, bettor, opts...)
}

// report invokes the progress callback at most once per interval, and
// always when final is set.
func (s *Simulator) report(final bool) {
	if s.config.Progress == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	if !final && now.Sub(s.lastReport) < s.config.ProgressInterval {
		return
	}
	s.lastReport = now
	s.config.Progress(Progress{
		Rounds:  int(s.done.Load()),
		Total:   s.config.Rounds * s.config.Runs,
		Elapsed: now.Sub(s.start),
	})
}
