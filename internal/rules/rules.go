// Package rules holds the fixed vocabulary of the blackjack table: the moves a
// player can make, how a settled hand pays, and the error kinds every other
// package reports.
package rules

import (
	"errors"
	"fmt"
	"math"
)

const (
	// CardsPerDeck is the size of one French deck.
	CardsPerDeck = 52

	// Blackjack is the best possible hand total.
	Blackjack = 21

	// DealerStandsOn is the lowest total the dealer stands on.
	DealerStandsOn = 17

	// AceHigh and AceLow are the two values an ace can take.
	AceHigh = 11
	AceLow  = 1
)

var (
	// ErrConfig marks a configuration table or constructor argument that
	// cannot be used.
	ErrConfig = errors.New("blackjack: invalid configuration")

	// ErrInvalidMove marks a move that is not legal for the hand it was
	// applied to.
	ErrInvalidMove = errors.New("blackjack: invalid move")

	// ErrTableLookup marks a strategy lookup with no matching row or column.
	ErrTableLookup = errors.New("blackjack: strategy table lookup failed")

	// ErrInvalidBet marks a wager outside the table limits.
	ErrInvalidBet = errors.New("blackjack: invalid bet")
)

// Move is a player decision, encoded the way strategy tables spell it.
type Move string

const (
	Stand  Move = "s"
	Hit    Move = "h"
	Double Move = "d"
	Split  Move = "sp"
)

// ParseMove converts a strategy table code into a Move.
func ParseMove(code string) (Move, error) {
	switch m := Move(code); m {
	case Stand, Hit, Double, Split:
		return m, nil
	default:
		return "", fmt.Errorf("%w: unknown move code %q", ErrConfig, code)
	}
}

// String returns the long name of the move.
func (m Move) String() string {
	switch m {
	case Stand:
		return "stand"
	case Hit:
		return "hit"
	case Double:
		return "double"
	case Split:
		return "split"
	default:
		return "unknown"
	}
}

// Contains reports whether m is one of moves.
func Contains(moves []Move, m Move) bool {
	for _, candidate := range moves {
		if candidate == m {
			return true
		}
	}
	return false
}

// Outcome is how a single hand was settled against the dealer.
type Outcome int

const (
	Unsettled Outcome = iota
	BlackjackWin
	Win
	Push
	Loss
)

// Multiplier is the factor applied to the stake when crediting the bankroll.
// The stake itself was debited when the bet was placed, so a push returns
// exactly the stake and a loss returns nothing.
func (o Outcome) Multiplier() float64 {
	switch o {
	case BlackjackWin:
		return 2.5
	case Win:
		return 2
	case Push:
		return 1
	default:
		return 0
	}
}

// Payout is the amount credited for a stake with this outcome, rounded half
// to even to a whole currency unit.
func (o Outcome) Payout(stake int) int {
	return int(math.RoundToEven(float64(stake) * o.Multiplier()))
}

func (o Outcome) String() string {
	switch o {
	case BlackjackWin:
		return "blackjack"
	case Win:
		return "win"
	case Push:
		return "push"
	case Loss:
		return "loss"
	default:
		return "unsettled"
	}
}
