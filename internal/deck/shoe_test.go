package deck

import (
	"testing"

	"github.com/lox/blackjacksim/internal/randutil"
	"github.com/lox/blackjacksim/internal/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewShoeRejectsBadConfig(t *testing.T) {
	_, err := NewShoe(StandardDefinition(), 0, randutil.New(1))
	assert.ErrorIs(t, err, rules.ErrConfig)

	_, err = NewShoe(StandardDefinition(), 1, nil)
	assert.ErrorIs(t, err, rules.ErrConfig)

	bad := StandardDefinition()
	bad.Suits = bad.Suits[:2]
	_, err = NewShoe(bad, 1, randutil.New(1))
	assert.ErrorIs(t, err, rules.ErrConfig)
}

func TestShoeSizeIsMultipleOfDeck(t *testing.T) {
	for decks := 1; decks <= 8; decks++ {
		shoe, err := NewShoe(StandardDefinition(), decks, randutil.New(int64(decks)))
		require.NoError(t, err)
		assert.Equal(t, decks*rules.CardsPerDeck, shoe.Remaining())
		assert.Equal(t, shoe.Size(), shoe.Remaining())
		assert.Equal(t, decks, shoe.Decks())
	}
}

func TestShoeDrawDecrementsAndReshuffles(t *testing.T) {
	const decks = 2
	shoe, err := NewShoe(StandardDefinition(), decks, randutil.New(99))
	require.NoError(t, err)

	size := decks * rules.CardsPerDeck
	for cycle := 0; cycle < 3; cycle++ {
		counts := make(map[string]int)
		for i := 0; i < size; i++ {
			c := shoe.Draw()
			counts[c.String()]++
			// the first draw of a later cycle refills the shoe
			assert.Equal(t, size-1-i, shoe.Remaining())
			assert.Equal(t, cycle, shoe.Reshuffles())
		}

		// every physical card appears exactly once per deck in each cycle
		require.Len(t, counts, rules.CardsPerDeck)
		for card, n := range counts {
			assert.Equal(t, decks, n, "card %s", card)
		}
	}
}

func TestShoeIsDeterministicForSeed(t *testing.T) {
	a, err := NewShoe(StandardDefinition(), 1, randutil.New(5))
	require.NoError(t, err)
	b, err := NewShoe(StandardDefinition(), 1, randutil.New(5))
	require.NoError(t, err)

	for i := 0; i < 2*rules.CardsPerDeck; i++ {
		assert.Equal(t, a.Draw(), b.Draw())
	}
}
