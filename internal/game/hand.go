package game

import (
	"strconv"
	"strings"

	"github.com/lox/blackjacksim/internal/deck"
	"github.com/lox/blackjacksim/internal/rules"
)

// Hand is an ordered set of dealt cards with its derived state. Score and
// softness are recomputed once per mutation and cached. Player hands also
// carry the stake risked on them.
type Hand struct {
	cards   []deck.Card
	score   int
	soft    bool
	stood   bool
	split   bool
	doubled bool

	bet     int // outstanding stake, zeroed when paid out
	wagered int // total stake debited for this hand
	outcome rules.Outcome
}

// NewHand creates an empty hand carrying the given stake.
func NewHand(bet int) *Hand {
	return &Hand{bet: bet, wagered: bet}
}

// NewSplitHand returns an empty hand marked as one half of a split pair,
// for evaluating decisions outside a round.
func NewSplitHand(bet int) *Hand {
	h := NewHand(bet)
	h.split = true
	return h
}

// AddCard appends a card while the hand is still below 21 and recomputes the
// score. A hand that has already reached 21 or bust does not grow.
func (h *Hand) AddCard(c deck.Card) {
	if h.score < rules.Blackjack {
		h.cards = append(h.cards, c)
	}
	h.recompute()
}

// PopCard removes and returns the last card. It is only used when splitting.
func (h *Hand) PopCard() (deck.Card, bool) {
	if len(h.cards) == 0 {
		return deck.Card{}, false
	}
	c := h.cards[len(h.cards)-1]
	h.cards = h.cards[:len(h.cards)-1]
	h.recompute()
	return c, true
}

// recompute sums the card values and demotes aces from 11 to 1 while the
// total is over 21. The hand is soft while an ace is still counted as 11.
func (h *Hand) recompute() {
	total, highAces := 0, 0
	for _, c := range h.cards {
		total += c.Value
		if c.IsAce() {
			highAces++
		}
	}
	for total > rules.Blackjack && highAces > 0 {
		total -= rules.AceHigh - rules.AceLow
		highAces--
	}
	h.score = total
	h.soft = highAces > 0
}

// Cards returns a copy of the cards in deal order.
func (h *Hand) Cards() []deck.Card {
	return append([]deck.Card(nil), h.cards...)
}

// Len returns the number of cards held.
func (h *Hand) Len() int {
	return len(h.cards)
}

// Score returns the cached best total.
func (h *Hand) Score() int {
	return h.score
}

// IsSoft reports whether an ace is currently counted as 11.
func (h *Hand) IsSoft() bool {
	return h.soft
}

// HasAce reports whether the hand holds an ace at any value.
func (h *Hand) HasAce() bool {
	for _, c := range h.cards {
		if c.IsAce() {
			return true
		}
	}
	return false
}

// IsBust returns true if the score is over 21
func (h *Hand) IsBust() bool {
	return h.score > rules.Blackjack
}

// IsTwentyOne returns true if the score is exactly 21 with any number of cards
func (h *Hand) IsTwentyOne() bool {
	return h.score == rules.Blackjack
}

// IsBlackjack is a natural: 21 with the first two cards of an unsplit hand.
func (h *Hand) IsBlackjack() bool {
	return h.score == rules.Blackjack && len(h.cards) == 2 && !h.split
}

// IsPair returns true for exactly two cards of equal value.
func (h *Hand) IsPair() bool {
	return len(h.cards) == 2 && h.cards[0].Value == h.cards[1].Value
}

// IsSplit reports whether the hand was produced by a split.
func (h *Hand) IsSplit() bool {
	return h.split
}

// IsDoubled reports whether the stake on the hand was doubled.
func (h *Hand) IsDoubled() bool {
	return h.doubled
}

// Stood reports whether the hand is finished and takes no more moves.
func (h *Hand) Stood() bool {
	return h.stood
}

// Stand freezes the hand.
func (h *Hand) Stand() {
	h.stood = true
}

// Bet returns the outstanding stake; zero once the hand has been paid out.
func (h *Hand) Bet() int {
	return h.bet
}

// Wagered returns the total stake that was debited for this hand.
func (h *Hand) Wagered() int {
	return h.wagered
}

// Outcome returns how the hand was settled, or rules.Unsettled.
func (h *Hand) Outcome() rules.Outcome {
	return h.outcome
}

// LegalMoves returns the moves currently allowed. Double and split are only
// offered on the first two cards of an unsplit hand; split also needs a pair.
func (h *Hand) LegalMoves() []rules.Move {
	if h.stood {
		return nil
	}
	moves := []rules.Move{rules.Stand, rules.Hit}
	if len(h.cards) == 2 && !h.split {
		moves = append(moves, rules.Double)
		if h.IsPair() {
			moves = append(moves, rules.Split)
		}
	}
	return moves
}

// String renders the hand as "A♠ 8♥ (19 soft)".
func (h *Hand) String() string {
	parts := make([]string, len(h.cards))
	for i, c := range h.cards {
		parts[i] = c.String()
	}
	s := strings.Join(parts, " ")
	switch {
	case h.IsBust():
		return s + " (bust)"
	case h.soft:
		return s + " (" + strconv.Itoa(h.score) + " soft)"
	default:
		return s + " (" + strconv.Itoa(h.score) + ")"
	}
}
