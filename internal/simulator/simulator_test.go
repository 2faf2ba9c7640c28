package simulator

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/blackjacksim/internal/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) Config {
	return Config{
		Rounds:   200,
		Runs:     4,
		Bankroll: 1000,
		MinBet:   100,
		MaxBet:   3000,
		Decks:    1,
		Betting:  BettingRandom,
		Seed:     12345,
		Logger:   log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel}),
		Clock:    quartz.NewMock(t),
	}
}

func run(t *testing.T, cfg Config) *Result {
	t.Helper()
	sim, err := New(cfg)
	require.NoError(t, err)
	result, err := sim.Run(context.Background())
	require.NoError(t, err)
	return result
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero rounds", func(c *Config) { c.Rounds = 0 }},
		{"too many rounds", func(c *Config) { c.Rounds = MaxRounds + 1 }},
		{"zero runs", func(c *Config) { c.Runs = 0 }},
		{"no bankroll", func(c *Config) { c.Bankroll = 0 }},
		{"no decks", func(c *Config) { c.Decks = 0 }},
		{"max below min", func(c *Config) { c.MaxBet = 10 }},
		{"unknown betting", func(c *Config) { c.Betting = "martingale" }},
		{"unknown counting system", func(c *Config) { c.CountingSystem = "wong" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			tt.mutate(&cfg)
			_, err := New(cfg)
			assert.ErrorIs(t, err, rules.ErrConfig)
		})
	}
}

func TestRunRecordsHistories(t *testing.T) {
	result := run(t, testConfig(t))

	require.Len(t, result.Runs, 4)
	for i, r := range result.Runs {
		assert.Equal(t, i, r.Index)
		require.Len(t, r.History, 200)
		assert.Equal(t, r.History[len(r.History)-1], r.Stats.Final)
		assert.Equal(t, 200, r.Stats.Rounds)
		assert.NoError(t, r.Stats.Validate())
	}
	assert.NotEqual(t, result.Runs[0].Seed, result.Runs[1].Seed)
	assert.NotEqual(t, result.Runs[0].History, result.Runs[1].History)
	assert.Equal(t, 4, result.Aggregate.Runs)
}

func TestRunIsDeterministic(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"random play", func(c *Config) {}},
		{"basic strategy flat", func(c *Config) { c.BasicStrategy = true; c.Betting = BettingFlat }},
		{"basic strategy counting", func(c *Config) { c.BasicStrategy = true; c.CountingSystem = "hi-lo"; c.Decks = 2 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			tt.mutate(&cfg)

			first := run(t, cfg)
			second := run(t, cfg)
			for i := range first.Runs {
				assert.Equal(t, first.Runs[i].History, second.Runs[i].History, "run %d", i)
			}
		})
	}
}

func TestFlatBettingWagersTheMinimum(t *testing.T) {
	cfg := testConfig(t)
	cfg.Betting = BettingFlat
	cfg.BasicStrategy = true
	cfg.Runs = 1
	cfg.Bankroll = 100000

	result := run(t, cfg)
	stats := result.Runs[0].Stats
	// Every round stakes 100, plus 100 per double or split.
	assert.GreaterOrEqual(t, stats.Wagered, 200*100)
	assert.Zero(t, stats.Wagered%100)
}

func TestProgressReportsCompletion(t *testing.T) {
	cfg := testConfig(t)
	var reports []Progress
	cfg.Runs = 1
	cfg.Progress = func(p Progress) { reports = append(reports, p) }

	run(t, cfg)

	// The mock clock never advances, so only the final report fires.
	require.Len(t, reports, 1)
	assert.Equal(t, 200, reports[0].Rounds)
	assert.Equal(t, 200, reports[0].Total)
	assert.Equal(t, 1.0, reports[0].Fraction())
}

func TestRunStopsWhenCancelled(t *testing.T) {
	sim, err := New(testConfig(t))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = sim.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
