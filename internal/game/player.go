package game

import (
	"fmt"

	"github.com/lox/blackjacksim/internal/rules"
)

// Player holds the bankroll and the hands in play for the current round: the
// main hand and, after a split, a second hand. Only one split is allowed per
// round.
type Player struct {
	bankroll int
	agent    Agent
	bettor   Bettor
	hands    []*Hand
}

// NewPlayer creates a player with a starting bankroll and its decision
// sources.
func NewPlayer(bankroll int, agent Agent, bettor Bettor) *Player {
	return &Player{bankroll: bankroll, agent: agent, bettor: bettor}
}

// Bankroll returns the current bankroll
func (p *Player) Bankroll() int {
	return p.bankroll
}

// Hands returns the hands of the current round, main hand first.
func (p *Player) Hands() []*Hand {
	return p.hands
}

// MainHand returns the first hand of the round, or nil before a bet.
func (p *Player) MainHand() *Hand {
	if len(p.hands) == 0 {
		return nil
	}
	return p.hands[0]
}

// PlaceBet asks the bettor for a stake, debits it and opens the main hand.
func (p *Player) PlaceBet(minBet, maxBet int) (int, error) {
	bet := p.bettor.Bet(minBet, maxBet)
	if bet < minBet || bet > maxBet {
		return 0, fmt.Errorf("%w: bet %d outside table limits [%d, %d]", rules.ErrInvalidBet, bet, minBet, maxBet)
	}
	p.bankroll -= bet
	p.hands = []*Hand{NewHand(bet)}
	return bet, nil
}

// Double debits the hand's stake again and doubles it. The caller deals the
// single extra card.
func (p *Player) Double(h *Hand) error {
	if !rules.Contains(h.LegalMoves(), rules.Double) {
		return fmt.Errorf("%w: cannot double %s", rules.ErrInvalidMove, h)
	}
	p.bankroll -= h.bet
	h.wagered += h.bet
	h.bet *= 2
	h.doubled = true
	return nil
}

// Split moves the second card of the main hand onto a new hand funded with
// an equal stake. Both hands are marked as split hands.
func (p *Player) Split() (*Hand, error) {
	main := p.MainHand()
	if main == nil || len(p.hands) > 1 || !rules.Contains(main.LegalMoves(), rules.Split) {
		return nil, fmt.Errorf("%w: cannot split", rules.ErrInvalidMove)
	}

	card, _ := main.PopCard()
	second := NewHand(main.bet)
	second.AddCard(card)
	p.bankroll -= main.bet

	main.split = true
	second.split = true
	p.hands = append(p.hands, second)
	return second, nil
}

// Settle credits the payout for the hand's outcome and zeroes its stake.
// Settling an already paid hand credits nothing.
func (p *Player) Settle(h *Hand, o rules.Outcome) int {
	payout := o.Payout(h.bet)
	p.bankroll += payout
	h.bet = 0
	if h.outcome == rules.Unsettled {
		h.outcome = o
	}
	h.stood = true
	return payout
}
