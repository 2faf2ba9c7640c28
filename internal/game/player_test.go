package game

import (
	"testing"

	"github.com/lox/blackjacksim/internal/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dealTo(h *Hand, cards string) {
	for _, c := range def.MustParse(cards) {
		h.AddCard(c)
	}
}

func TestPlayerSplit(t *testing.T) {
	p := NewPlayer(1000, ScriptedAgent(), FixedBettor(100))
	_, err := p.PlaceBet(100, 3000)
	require.NoError(t, err)
	dealTo(p.MainHand(), "5,5")
	assert.Equal(t, 900, p.Bankroll())

	second, err := p.Split()
	require.NoError(t, err)
	assert.Equal(t, 800, p.Bankroll())

	main := p.MainHand()
	require.Len(t, p.Hands(), 2)
	assert.Equal(t, "5♠", main.Cards()[0].String())
	assert.Equal(t, 1, main.Len())
	assert.Equal(t, 1, second.Len())
	assert.Equal(t, 100, main.Bet())
	assert.Equal(t, 100, second.Bet())
	assert.True(t, main.IsSplit())
	assert.True(t, second.IsSplit())

	assert.Equal(t, 0, p.Settle(second, rules.Loss))
	assert.Equal(t, 100, p.Settle(main, rules.Push))
	assert.Equal(t, 0, main.Bet())
	assert.Equal(t, 900, p.Bankroll())

	// no re-splitting
	_, err = p.Split()
	assert.ErrorIs(t, err, rules.ErrInvalidMove)
}

func TestPlayerSplitNeedsPair(t *testing.T) {
	p := NewPlayer(1000, ScriptedAgent(), FixedBettor(100))
	_, err := p.PlaceBet(100, 3000)
	require.NoError(t, err)
	dealTo(p.MainHand(), "5,6")

	_, err = p.Split()
	assert.ErrorIs(t, err, rules.ErrInvalidMove)
	assert.Equal(t, 900, p.Bankroll())
}

func TestPlayerDouble(t *testing.T) {
	p := NewPlayer(1000, ScriptedAgent(), FixedBettor(60))
	_, err := p.PlaceBet(10, 100)
	require.NoError(t, err)
	h := p.MainHand()
	dealTo(h, "7,4")

	require.NoError(t, p.Double(h))
	assert.Equal(t, 120, h.Bet())
	assert.Equal(t, 120, h.Wagered())
	assert.True(t, h.IsDoubled())
	assert.Equal(t, 880, p.Bankroll())

	dealTo(h, "10")
	assert.ErrorIs(t, p.Double(h), rules.ErrInvalidMove)
}

func TestPlayerCannotDoubleSplitHand(t *testing.T) {
	p := NewPlayer(1000, ScriptedAgent(), FixedBettor(100))
	_, err := p.PlaceBet(100, 100)
	require.NoError(t, err)
	dealTo(p.MainHand(), "4,4")
	second, err := p.Split()
	require.NoError(t, err)
	dealTo(second, "7")

	assert.ErrorIs(t, p.Double(second), rules.ErrInvalidMove)
}

func TestPlayerSettleIsIdempotent(t *testing.T) {
	p := NewPlayer(1000, ScriptedAgent(), FixedBettor(100))
	_, err := p.PlaceBet(100, 100)
	require.NoError(t, err)
	h := p.MainHand()

	assert.Equal(t, 250, p.Settle(h, rules.BlackjackWin))
	assert.Equal(t, 0, p.Settle(h, rules.Win))
	assert.Equal(t, 1150, p.Bankroll())
	assert.Equal(t, rules.BlackjackWin, h.Outcome())
	assert.True(t, h.Stood())
}

func TestPlaceBetOutsideLimits(t *testing.T) {
	p := NewPlayer(1000, ScriptedAgent(), FixedBettor(5000))
	_, err := p.PlaceBet(100, 3000)
	assert.ErrorIs(t, err, rules.ErrInvalidBet)
	assert.Equal(t, 1000, p.Bankroll())
}
