package deck

import (
	"fmt"
	"strings"

	"github.com/lox/blackjacksim/internal/rules"
)

// Card represents a playing card. Cards carry their blackjack value so the
// rest of the engine never needs to interpret rank labels.
type Card struct {
	Suit  string
	Rank  string
	Value int
}

// String returns the string representation of a card (e.g., "A♠")
func (c Card) String() string {
	return c.Rank + c.Suit
}

// IsAce returns true if the card counts as 11 when dealt
func (c Card) IsAce() bool {
	return c.Value == rules.AceHigh
}

// Rank is a rank label and the value it scores.
type Rank struct {
	Label string
	Value int
}

// Definition is the card value table: which suits exist and what each rank
// is worth. One deck is every suit crossed with every rank.
type Definition struct {
	Suits []string
	Ranks []Rank
}

// StandardDefinition returns the French deck with aces counted as 11 and
// court cards as 10.
func StandardDefinition() Definition {
	return Definition{
		Suits: []string{"♠", "♥", "♦", "♣"},
		Ranks: []Rank{
			{"2", 2}, {"3", 3}, {"4", 4}, {"5", 5}, {"6", 6}, {"7", 7}, {"8", 8},
			{"9", 9}, {"10", 10}, {"J", 10}, {"Q", 10}, {"K", 10}, {"A", 11},
		},
	}
}

// Validate checks that the definition describes a 52 card deck with values
// in the 2-11 range.
func (d Definition) Validate() error {
	if len(d.Suits) == 0 {
		return fmt.Errorf("%w: card definition has no suits", rules.ErrConfig)
	}
	if len(d.Ranks) == 0 {
		return fmt.Errorf("%w: card definition has no ranks", rules.ErrConfig)
	}
	if n := len(d.Suits) * len(d.Ranks); n != rules.CardsPerDeck {
		return fmt.Errorf("%w: card definition yields %d cards per deck, want %d",
			rules.ErrConfig, n, rules.CardsPerDeck)
	}
	seen := make(map[string]bool, len(d.Ranks))
	for _, r := range d.Ranks {
		if r.Label == "" {
			return fmt.Errorf("%w: empty rank label", rules.ErrConfig)
		}
		if seen[r.Label] {
			return fmt.Errorf("%w: duplicate rank %q", rules.ErrConfig, r.Label)
		}
		seen[r.Label] = true
		if r.Value < 2 || r.Value > rules.AceHigh {
			return fmt.Errorf("%w: rank %q has value %d outside 2-11", rules.ErrConfig, r.Label, r.Value)
		}
	}
	return nil
}

// Cards returns one deck in definition order: suit by suit, rank by rank.
func (d Definition) Cards() []Card {
	cards := make([]Card, 0, len(d.Suits)*len(d.Ranks))
	for _, suit := range d.Suits {
		for _, r := range d.Ranks {
			cards = append(cards, Card{Suit: suit, Rank: r.Label, Value: r.Value})
		}
	}
	return cards
}

// Rank looks up a rank by label, case-insensitively. "T" is accepted for a
// rank labelled "10".
func (d Definition) Rank(label string) (Rank, bool) {
	label = strings.TrimSpace(label)
	if strings.EqualFold(label, "T") {
		label = "10"
	}
	for _, r := range d.Ranks {
		if strings.EqualFold(r.Label, label) {
			return r, true
		}
	}
	return Rank{}, false
}

// Parse converts a comma or space separated list of rank labels (e.g.
// "A,8" or "10 10") into cards of the first suit. Suits never matter for
// scoring, so suit symbols are not part of the notation.
func (d Definition) Parse(s string) ([]Card, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	cards := make([]Card, 0, len(fields))
	suit := ""
	if len(d.Suits) > 0 {
		suit = d.Suits[0]
	}
	for _, f := range fields {
		r, ok := d.Rank(f)
		if !ok {
			return nil, fmt.Errorf("unknown rank %q", f)
		}
		cards = append(cards, Card{Suit: suit, Rank: r.Label, Value: r.Value})
	}
	return cards, nil
}

// MustParse is like Parse but panics on error. Intended for tests.
func (d Definition) MustParse(s string) []Card {
	cards, err := d.Parse(s)
	if err != nil {
		panic(err)
	}
	return cards
}
