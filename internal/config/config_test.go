package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lox/blackjacksim/internal/rules"
	"github.com/lox/blackjacksim/internal/simulator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blackjack.hcl")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
simulation {
  decks           = 6
  rounds          = 5000
  basic_strategy  = true
  counting_system = "hi-lo"
  seed            = 42
  database        = "runs.db"
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	s := cfg.Simulation
	assert.Equal(t, 6, s.Decks)
	assert.Equal(t, 5000, s.Rounds)
	assert.Equal(t, 1, s.Runs)
	assert.Equal(t, 1000, s.Bankroll)
	assert.Equal(t, 100, s.MinBet)
	assert.Equal(t, 3000, s.MaxBet)
	assert.True(t, s.BasicStrategy)
	assert.Equal(t, "hi-lo", s.CountingSystem)
	assert.Equal(t, simulator.BettingRandom, s.Betting)
	assert.Equal(t, int64(42), s.Seed)
	assert.Equal(t, "runs.db", s.Database)

	sc := s.SimulatorConfig()
	assert.Equal(t, 6, sc.Decks)
	assert.Equal(t, "hi-lo", sc.CountingSystem)
	assert.True(t, sc.BasicStrategy)
}

func TestLoadEmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(writeConfig(t, `simulation {`))
	assert.ErrorIs(t, err, rules.ErrConfig)

	_, err = Load(writeConfig(t, `simulation { decks = "many" }`))
	assert.ErrorIs(t, err, rules.ErrConfig)

	_, err = Load(writeConfig(t, `simulation { unknown = 1 }`))
	assert.ErrorIs(t, err, rules.ErrConfig)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Simulation)
	}{
		{"too many decks", func(s *Simulation) { s.Decks = 9 }},
		{"no decks", func(s *Simulation) { s.Decks = -1 }},
		{"too many rounds", func(s *Simulation) { s.Rounds = 100001 }},
		{"no runs", func(s *Simulation) { s.Runs = -2 }},
		{"no bankroll", func(s *Simulation) { s.Bankroll = -5 }},
		{"min bet not positive", func(s *Simulation) { s.MinBet = -1 }},
		{"min equals max", func(s *Simulation) { s.MaxBet = s.MinBet }},
		{"unknown betting", func(s *Simulation) { s.Betting = "martingale" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg.Simulation)
			assert.ErrorIs(t, cfg.Validate(), rules.ErrConfig)
		})
	}

	assert.ErrorIs(t, (&Config{}).Validate(), rules.ErrConfig)
}
