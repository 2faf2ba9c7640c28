package game

import (
	"github.com/lox/blackjacksim/internal/deck"
	"github.com/lox/blackjacksim/internal/rules"
)

// HandResult is the final state of one player hand.
type HandResult struct {
	Cards   []deck.Card
	Score   int
	Wagered int
	Payout  int
	Outcome rules.Outcome
	Split   bool
	Doubled bool
}

// RoundResult describes a completed round.
type RoundResult struct {
	Number      int
	Hands       []HandResult
	Dealer      []deck.Card
	DealerScore int

	// Cards holds every card dealt this round in deal order.
	Cards []deck.Card

	Wagered  int
	Returned int
	Bankroll int
}

// Net is the bankroll change caused by the round.
func (r *RoundResult) Net() int {
	return r.Returned - r.Wagered
}
