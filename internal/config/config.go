// Package config loads the simulation settings file.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/blackjacksim/internal/rules"
	"github.com/lox/blackjacksim/internal/simulator"
)

// Config represents the complete configuration file
type Config struct {
	Simulation *Simulation `hcl:"simulation,block"`
}

// Simulation contains the parameters of a simulation
type Simulation struct {
	Decks          int    `hcl:"decks,optional"`
	Rounds         int    `hcl:"rounds,optional"`
	Runs           int    `hcl:"runs,optional"`
	Bankroll       int    `hcl:"bankroll,optional"`
	MinBet         int    `hcl:"min_bet,optional"`
	MaxBet         int    `hcl:"max_bet,optional"`
	BasicStrategy  bool   `hcl:"basic_strategy,optional"`
	CountingSystem string `hcl:"counting_system,optional"`
	Betting        string `hcl:"betting,optional"`
	Seed           int64  `hcl:"seed,optional"`
	Tables         string `hcl:"tables,optional"`
	Database       string `hcl:"database,optional"`
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Simulation: &Simulation{
			Decks:    1,
			Rounds:   1000,
			Runs:     1,
			Bankroll: 1000,
			MinBet:   100,
			MaxBet:   3000,
			Betting:  simulator.BettingRandom,
		},
	}
}

// Load loads configuration from an HCL file. A missing file yields the
// defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: failed to parse HCL file: %s", rules.ErrConfig, diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: failed to decode HCL: %s", rules.ErrConfig, diags.Error())
	}

	// Apply defaults for missing values
	defaults := DefaultConfig().Simulation
	if config.Simulation == nil {
		config.Simulation = defaults
		return &config, nil
	}
	s := config.Simulation
	if s.Decks == 0 {
		s.Decks = defaults.Decks
	}
	if s.Rounds == 0 {
		s.Rounds = defaults.Rounds
	}
	if s.Runs == 0 {
		s.Runs = defaults.Runs
	}
	if s.Bankroll == 0 {
		s.Bankroll = defaults.Bankroll
	}
	if s.MinBet == 0 {
		s.MinBet = defaults.MinBet
	}
	if s.MaxBet == 0 {
		s.MaxBet = defaults.MaxBet
	}
	if s.Betting == "" {
		s.Betting = defaults.Betting
	}
	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	s := c.Simulation
	if s == nil {
		return fmt.Errorf("%w: missing simulation block", rules.ErrConfig)
	}
	if s.Decks < 1 || s.Decks > 8 {
		return fmt.Errorf("%w: decks must be between 1 and 8, got %d", rules.ErrConfig, s.Decks)
	}
	if s.Rounds < 1 || s.Rounds > simulator.MaxRounds {
		return fmt.Errorf("%w: rounds must be between 1 and %d, got %d", rules.ErrConfig, simulator.MaxRounds, s.Rounds)
	}
	if s.Runs < 1 {
		return fmt.Errorf("%w: runs must be at least 1, got %d", rules.ErrConfig, s.Runs)
	}
	if s.Bankroll <= 0 {
		return fmt.Errorf("%w: bankroll must be positive", rules.ErrConfig)
	}
	if s.MinBet <= 0 {
		return fmt.Errorf("%w: minimum bet must be positive", rules.ErrConfig)
	}
	if s.MinBet >= s.MaxBet {
		return fmt.Errorf("%w: minimum bet must be less than maximum bet", rules.ErrConfig)
	}
	if s.Betting != simulator.BettingRandom && s.Betting != simulator.BettingFlat {
		return fmt.Errorf("%w: invalid betting policy %s", rules.ErrConfig, s.Betting)
	}
	return nil
}

// SimulatorConfig converts the settings for the simulator. Tables, logger
// and clock are left for the caller.
func (s *Simulation) SimulatorConfig() simulator.Config {
	return simulator.Config{
		Rounds:         s.Rounds,
		Runs:           s.Runs,
		Bankroll:       s.Bankroll,
		MinBet:         s.MinBet,
		MaxBet:         s.MaxBet,
		Decks:          s.Decks,
		BasicStrategy:  s.BasicStrategy,
		CountingSystem: s.CountingSystem,
		Betting:        s.Betting,
		Seed:           s.Seed,
	}
}
