package game

import (
	"github.com/lox/blackjacksim/internal/deck"
	"github.com/lox/blackjacksim/internal/rules"
)

// StackedSource deals a fixed sequence of cards, then falls back to an
// optional source. It panics when both are exhausted, which in a test means
// the scenario dealt more cards than it arranged.
type StackedSource struct {
	cards    []deck.Card
	fallback CardSource
}

// NewStackedSource creates a source that deals cards in the given order.
func NewStackedSource(cards ...deck.Card) *StackedSource {
	return &StackedSource{cards: cards}
}

// Then sets the source used once the stacked cards run out.
func (s *StackedSource) Then(src CardSource) *StackedSource {
	s.fallback = src
	return s
}

// Draw deals the next stacked card.
func (s *StackedSource) Draw() deck.Card {
	if len(s.cards) == 0 {
		if s.fallback == nil {
			panic("stacked source exhausted")
		}
		return s.fallback.Draw()
	}
	c := s.cards[0]
	s.cards = s.cards[1:]
	return c
}

// Remaining returns the number of stacked cards not yet dealt.
func (s *StackedSource) Remaining() int {
	return len(s.cards)
}

// ScriptedAgent plays a fixed list of moves in order and stands once the
// script runs out.
func ScriptedAgent(moves ...rules.Move) Agent {
	return AgentFunc(func(h *Hand, _ deck.Card) (rules.Move, error) {
		if len(moves) == 0 {
			return rules.Stand, nil
		}
		m := moves[0]
		moves = moves[1:]
		return m, nil
	})
}

// FixedBettor always wagers the same amount.
func FixedBettor(amount int) Bettor {
	return BettorFunc(func(int, int) int { return amount })
}
