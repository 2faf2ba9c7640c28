package bot

import (
	"github.com/charmbracelet/log"
	"github.com/lox/blackjacksim/internal/deck"
	"github.com/lox/blackjacksim/internal/game"
	"github.com/lox/blackjacksim/internal/rules"
	"github.com/lox/blackjacksim/internal/strategy"
)

// StrategyAgent plays every hand by the basic-strategy chart
type StrategyAgent struct {
	engine *strategy.Engine
	logger *log.Logger
}

// NewStrategyAgent creates a new StrategyAgent instance
func NewStrategyAgent(engine *strategy.Engine, logger *log.Logger) *StrategyAgent {
	return &StrategyAgent{engine: engine, logger: orDiscard(logger)}
}

func (s *StrategyAgent) Decide(h *game.Hand, up deck.Card) (rules.Move, error) {
	move, err := s.engine.Decide(h, up)
	if err != nil {
		return "", err
	}
	s.logger.Debug("Chart move", "hand", h.String(), "dealer", up, "move", move)
	return move, nil
}
