package game

import "github.com/lox/blackjacksim/internal/rules"

// Dealer holds a single hand and plays it by a fixed policy: draw to 16,
// stand on 17 or more, stop when bust.
type Dealer struct {
	hand *Hand
}

// NewDealer returns a dealer with an empty hand.
func NewDealer() *Dealer {
	return &Dealer{hand: NewHand(0)}
}

// Hand returns the dealer's hand
func (d *Dealer) Hand() *Hand {
	return d.hand
}

// ShouldStand reports whether the policy has reached its Done state.
func (d *Dealer) ShouldStand() bool {
	return d.hand.Score() >= rules.DealerStandsOn || d.hand.IsBust()
}

// Play draws until the policy stands.
func (d *Dealer) Play(src CardSource) {
	for !d.ShouldStand() {
		d.hand.AddCard(src.Draw())
	}
	d.hand.Stand()
}
