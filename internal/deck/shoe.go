package deck

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/lox/blackjacksim/internal/rules"
)

// Shoe holds one or more shuffled decks and deals from the front. When the
// last card has been dealt the next Draw rebuilds and reshuffles every deck.
type Shoe struct {
	def        Definition
	decks      int
	cards      []Card
	rng        *rand.Rand
	reshuffles int
}

// NewShoe builds a shuffled shoe of the given number of decks. The RNG is
// required so that shuffles are reproducible in tests.
func NewShoe(def Definition, decks int, rng *rand.Rand) (*Shoe, error) {
	if decks < 1 {
		return nil, fmt.Errorf("%w: deck count %d, need at least 1", rules.ErrConfig, decks)
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: shoe needs a random source", rules.ErrConfig)
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}

	s := &Shoe{
		def:   def,
		decks: decks,
		cards: make([]Card, 0, decks*rules.CardsPerDeck),
		rng:   rng,
	}
	s.fill()
	return s, nil
}

func (s *Shoe) fill() {
	s.cards = s.cards[:0]
	deck := s.def.Cards()
	for i := 0; i < s.decks; i++ {
		s.cards = append(s.cards, deck...)
	}
	s.Shuffle()
}

// Shuffle randomizes the order of the cards left in the shoe
func (s *Shoe) Shuffle() {
	for i := len(s.cards) - 1; i > 0; i-- {
		j := s.rng.IntN(i + 1)
		s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	}
}

// Draw removes and returns the front card, reshuffling fresh decks first if
// the shoe is empty.
func (s *Shoe) Draw() Card {
	if len(s.cards) == 0 {
		s.fill()
		s.reshuffles++
	}
	card := s.cards[0]
	s.cards = s.cards[1:]
	return card
}

// Remaining returns the number of cards left before the next reshuffle
func (s *Shoe) Remaining() int {
	return len(s.cards)
}

// Size is the number of cards in a full shoe.
func (s *Shoe) Size() int {
	return s.decks * rules.CardsPerDeck
}

// Decks returns the number of decks the shoe was built with.
func (s *Shoe) Decks() int {
	return s.decks
}

// Reshuffles counts the automatic reshuffles triggered by an empty shoe.
func (s *Shoe) Reshuffles() int {
	return s.reshuffles
}
