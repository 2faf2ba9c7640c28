// Package counting keeps a card-counting running count and sizes bets from
// the true count.
package counting

import (
	"fmt"
	"math"
	"slices"

	"github.com/lox/blackjacksim/internal/rules"
)

// Bucket assigns a point value to a set of card values.
type Bucket struct {
	Points float64
	Values []int
}

// System is a named counting system.
type System struct {
	Name    string
	Buckets []Bucket
}

// Points returns the total points the system assigns to a card value.
func (s System) Points(value int) float64 {
	var total float64
	for _, b := range s.Buckets {
		if slices.Contains(b.Values, value) {
			total += b.Points
		}
	}
	return total
}

// Validate rejects systems without a name or buckets.
func (s System) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: counting system has no name", rules.ErrConfig)
	}
	if len(s.Buckets) == 0 {
		return fmt.Errorf("%w: counting system %q has no point buckets", rules.ErrConfig, s.Name)
	}
	for _, b := range s.Buckets {
		if len(b.Values) == 0 {
			return fmt.Errorf("%w: counting system %q has an empty bucket for %g", rules.ErrConfig, s.Name, b.Points)
		}
	}
	return nil
}

// Counter tracks the running count over a shoe of a known size. It assumes
// the shoe is reshuffled exactly when its last card is dealt.
type Counter struct {
	system    System
	decks     int
	count     float64
	remaining int
}

// NewCounter starts a counter at zero for a fresh shoe.
func NewCounter(system System, decks int) (*Counter, error) {
	if decks < 1 {
		return nil, fmt.Errorf("%w: deck count %d, need at least 1", rules.ErrConfig, decks)
	}
	if err := system.Validate(); err != nil {
		return nil, err
	}
	c := &Counter{system: system, decks: decks}
	c.Reset()
	return c, nil
}

// System returns the counting system in use
func (c *Counter) System() System {
	return c.system
}

// Reset zeroes the count for a freshly shuffled shoe.
func (c *Counter) Reset() {
	c.count = 0
	c.remaining = c.decks * rules.CardsPerDeck
}

// Observe counts one dealt card value. When the last card of the shoe has
// been seen the counter resets along with the shuffle.
func (c *Counter) Observe(value int) {
	c.count += c.system.Points(value)
	c.remaining--
	if c.remaining <= 0 {
		c.Reset()
	}
}

// Count returns the running count
func (c *Counter) Count() float64 {
	return c.count
}

// Remaining returns the number of unseen cards in the shoe
func (c *Counter) Remaining() int {
	return c.remaining
}

// TrueCount divides the running count by the whole decks left in the shoe.
// With less than one deck left the running count is returned unchanged.
func (c *Counter) TrueCount() float64 {
	decks := c.remaining / rules.CardsPerDeck
	if decks == 0 {
		return c.count
	}
	return c.count / float64(decks)
}

// RecommendBet scales the minimum bet by the true count above one and
// clamps the result to the table limits.
func (c *Counter) RecommendBet(minBet, maxBet int) int {
	bet := (c.TrueCount() - 1) * float64(minBet)
	bet = math.Max(bet, float64(minBet))
	bet = math.Min(bet, float64(maxBet))
	return int(math.RoundToEven(bet))
}
