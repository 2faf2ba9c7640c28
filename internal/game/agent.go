package game

import (
	"github.com/lox/blackjacksim/internal/deck"
	"github.com/lox/blackjacksim/internal/rules"
)

// Agent decides the next move for a hand. The move must be one of
// h.LegalMoves(); anything else aborts the round with rules.ErrInvalidMove.
type Agent interface {
	Decide(h *Hand, dealerUp deck.Card) (rules.Move, error)
}

// Bettor sizes the opening wager of a round within the table limits.
type Bettor interface {
	Bet(minBet, maxBet int) int
}

// Observer is shown every card dealt during a round, in deal order, once the
// round is complete.
type Observer interface {
	Observe(c deck.Card)
}

// CardSource deals cards. *deck.Shoe is the production implementation.
type CardSource interface {
	Draw() deck.Card
}

// AgentFunc adapts a function to the Agent interface.
type AgentFunc func(h *Hand, dealerUp deck.Card) (rules.Move, error)

// Decide calls f(h, dealerUp).
func (f AgentFunc) Decide(h *Hand, dealerUp deck.Card) (rules.Move, error) {
	return f(h, dealerUp)
}

// BettorFunc adapts a function to the Bettor interface.
type BettorFunc func(minBet, maxBet int) int

// Bet calls f(minBet, maxBet).
func (f BettorFunc) Bet(minBet, maxBet int) int {
	return f(minBet, maxBet)
}
