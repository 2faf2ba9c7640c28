package bot

import (
	"github.com/charmbracelet/log"
	"github.com/lox/blackjacksim/internal/counting"
	"github.com/lox/blackjacksim/internal/deck"
)

// CountingBettor sizes bets from a running card count. Register it as a
// table observer so it sees every card dealt.
type CountingBettor struct {
	counter *counting.Counter
	logger  *log.Logger
}

// NewCountingBettor creates a new CountingBettor instance
func NewCountingBettor(counter *counting.Counter, logger *log.Logger) *CountingBettor {
	return &CountingBettor{counter: counter, logger: orDiscard(logger)}
}

// Counter exposes the underlying counter
func (c *CountingBettor) Counter() *counting.Counter {
	return c.counter
}

func (c *CountingBettor) Observe(card deck.Card) {
	c.counter.Observe(card.Value)
}

func (c *CountingBettor) Bet(minBet, maxBet int) int {
	bet := c.counter.RecommendBet(minBet, maxBet)
	c.logger.Debug("Counted bet",
		"count", c.counter.Count(),
		"trueCount", c.counter.TrueCount(),
		"remaining", c.counter.Remaining(),
		"bet", bet)
	return bet
}

// FlatBettor always bets the table minimum
type FlatBettor struct{}

func (FlatBettor) Bet(minBet, _ int) int {
	return minBet
}
