package game

import (
	"fmt"
	"io"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjacksim/internal/deck"
	"github.com/lox/blackjacksim/internal/rules"
)

// TableConfig holds the limits a table is opened with.
type TableConfig struct {
	Bankroll int
	MinBet   int
	MaxBet   int
	Decks    int

	// Cards defaults to deck.StandardDefinition() when empty.
	Cards deck.Definition
}

// Validate checks the table limits.
func (c TableConfig) Validate() error {
	if c.Decks < 1 {
		return fmt.Errorf("%w: deck count %d, need at least 1", rules.ErrConfig, c.Decks)
	}
	if c.MinBet < 1 {
		return fmt.Errorf("%w: minimum bet must be positive, got %d", rules.ErrConfig, c.MinBet)
	}
	if c.MaxBet < c.MinBet {
		return fmt.Errorf("%w: maximum bet %d below minimum %d", rules.ErrConfig, c.MaxBet, c.MinBet)
	}
	return nil
}

// TableOption configures a Table during creation.
type TableOption func(*Table)

// WithCardSource replaces the shuffled shoe, typically with a StackedSource.
func WithCardSource(src CardSource) TableOption {
	return func(t *Table) { t.source = src }
}

// WithObserver registers an observer of every dealt card.
func WithObserver(o Observer) TableOption {
	return func(t *Table) { t.observers = append(t.observers, o) }
}

// WithLogger sets the table logger.
func WithLogger(logger *log.Logger) TableOption {
	return func(t *Table) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// Table is one seat of blackjack against the dealer. It owns the shoe and
// the player for its lifetime and is not safe for concurrent use; run
// independent tables for parallel simulations.
type Table struct {
	cfg       TableConfig
	source    CardSource
	player    *Player
	observers []Observer
	logger    *log.Logger
	rounds    int
	last      *RoundResult
}

// NewTable opens a table. The RNG is required and drives every shuffle of
// the default shoe.
func NewTable(rng *rand.Rand, cfg TableConfig, agent Agent, bettor Bettor, opts ...TableOption) (*Table, error) {
	if len(cfg.Cards.Ranks) == 0 && len(cfg.Cards.Suits) == 0 {
		cfg.Cards = deck.StandardDefinition()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if agent == nil || bettor == nil {
		return nil, fmt.Errorf("%w: table needs an agent and a bettor", rules.ErrConfig)
	}

	t := &Table{
		cfg:    cfg,
		player: NewPlayer(cfg.Bankroll, agent, bettor),
		logger: log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel}),
	}
	for _, opt := range opts {
		opt(t)
	}

	if t.source == nil {
		shoe, err := deck.NewShoe(cfg.Cards, cfg.Decks, rng)
		if err != nil {
			return nil, err
		}
		t.source = shoe
	}
	t.logger = t.logger.WithPrefix("table")
	return t, nil
}

// Bankroll returns the player's current bankroll
func (t *Table) Bankroll() int {
	return t.player.Bankroll()
}

// Config returns the configuration the table was opened with.
func (t *Table) Config() TableConfig {
	return t.cfg
}

// Rounds returns the number of completed rounds.
func (t *Table) Rounds() int {
	return t.rounds
}

// LastRound returns the result of the most recent round, or nil.
func (t *Table) LastRound() *RoundResult {
	return t.last
}

// CardsOnTable returns every card dealt in the most recent round, in deal
// order: both player hands and the dealer's.
func (t *Table) CardsOnTable() []deck.Card {
	if t.last == nil {
		return nil
	}
	return append([]deck.Card(nil), t.last.Cards...)
}

// PlayRound plays one full round and reports its result. Errors come only
// from defective decision sources or tables; the bankroll reflects any
// stakes already debited when a round aborts.
func (t *Table) PlayRound() (*RoundResult, error) {
	r := newRound(t, t.rounds+1)
	result, err := r.play()
	if err != nil {
		return nil, fmt.Errorf("round %d: %w", t.rounds+1, err)
	}

	t.rounds++
	t.last = result
	for _, o := range t.observers {
		for _, c := range result.Cards {
			o.Observe(c)
		}
	}
	return result, nil
}
