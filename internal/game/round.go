package game

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjacksim/internal/deck"
	"github.com/lox/blackjacksim/internal/rules"
)

// Phase is a state of the round state machine.
type Phase int

const (
	Setup Phase = iota
	PlayerActing
	DealerActing
	Settling
	Complete
)

// String returns the string representation of a phase
func (p Phase) String() string {
	switch p {
	case Setup:
		return "setup"
	case PlayerActing:
		return "player-acting"
	case DealerActing:
		return "dealer-acting"
	case Settling:
		return "settling"
	case Complete:
		return "complete"
	default:
		return "unknown"
	}
}

// recorder deals from the table source and remembers every card.
type recorder struct {
	src   CardSource
	cards []deck.Card
}

func (r *recorder) Draw() deck.Card {
	c := r.src.Draw()
	r.cards = append(r.cards, c)
	return c
}

type round struct {
	table  *Table
	number int
	phase  Phase
	deal   *recorder
	dealer *Dealer
	active int
	logger *log.Logger
}

func newRound(t *Table, number int) *round {
	return &round{
		table:  t,
		number: number,
		phase:  Setup,
		deal:   &recorder{src: t.source},
		dealer: NewDealer(),
		logger: t.logger.With("round", number),
	}
}

func (r *round) play() (*RoundResult, error) {
	for r.phase != Complete {
		var (
			next Phase
			err  error
		)
		switch r.phase {
		case Setup:
			next, err = r.setup()
		case PlayerActing:
			next, err = r.playerActing()
		case DealerActing:
			next = r.dealerActing()
		case Settling:
			next = r.settling()
		default:
			return nil, fmt.Errorf("round in unknown phase %d", r.phase)
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", r.phase, err)
		}
		r.logger.Debug("Phase complete", "phase", r.phase, "next", next)
		r.phase = next
	}
	return r.result(), nil
}

// setup places the bet, deals player, dealer, player, dealer and resolves
// naturals.
func (r *round) setup() (Phase, error) {
	p := r.table.player
	bet, err := p.PlaceBet(r.table.cfg.MinBet, r.table.cfg.MaxBet)
	if err != nil {
		return Setup, err
	}
	r.logger.Debug("Bet placed", "bet", bet, "bankroll", p.Bankroll())

	hand := p.MainHand()
	for i := 0; i < 2; i++ {
		hand.AddCard(r.deal.Draw())
		r.dealer.hand.AddCard(r.deal.Draw())
	}

	playerBJ, dealerBJ := hand.IsBlackjack(), r.dealer.hand.IsBlackjack()
	switch {
	case playerBJ && dealerBJ:
		r.settle(hand, rules.Push)
	case playerBJ:
		r.settle(hand, rules.BlackjackWin)
	case dealerBJ:
		r.settle(hand, rules.Loss)
	default:
		return PlayerActing, nil
	}
	return Complete, nil
}

// playerActing asks the agent for moves until every hand, including one
// created by a split, has stood.
func (r *round) playerActing() (Phase, error) {
	p := r.table.player
	up := r.dealer.hand.cards[0]

	for r.active < len(p.hands) {
		h := p.hands[r.active]
		for !h.Stood() {
			move, err := p.agent.Decide(h, up)
			if err != nil {
				return PlayerActing, err
			}
			legal := h.LegalMoves()
			if !rules.Contains(legal, move) {
				return PlayerActing, fmt.Errorf("%w: %q not in %v for %s", rules.ErrInvalidMove, move, legal, h)
			}
			if err := r.apply(h, move); err != nil {
				return PlayerActing, err
			}
			r.logger.Debug("Move", "hand", r.active, "move", move, "cards", h.String())
		}
		r.active++
	}
	return DealerActing, nil
}

func (r *round) apply(h *Hand, move rules.Move) error {
	p := r.table.player
	switch move {
	case rules.Stand:
		h.Stand()
	case rules.Hit:
		r.hit(h)
	case rules.Double:
		if err := p.Double(h); err != nil {
			return err
		}
		h.AddCard(r.deal.Draw())
		h.Stand()
	case rules.Split:
		second, err := p.Split()
		if err != nil {
			return err
		}
		r.hit(h)
		r.hit(second)
	default:
		return fmt.Errorf("%w: unknown move %q", rules.ErrInvalidMove, move)
	}
	return nil
}

// hit deals a card and stands the hand automatically on 21 or bust.
func (r *round) hit(h *Hand) {
	h.AddCard(r.deal.Draw())
	if h.IsBust() || h.IsTwentyOne() {
		h.Stand()
	}
}

// dealerActing runs the dealer policy unless every player hand is already
// bust.
func (r *round) dealerActing() Phase {
	for _, h := range r.table.player.hands {
		if !h.IsBust() {
			r.dealer.Play(r.deal)
			r.logger.Debug("Dealer done", "cards", r.dealer.hand.String())
			return Settling
		}
	}
	r.dealer.hand.Stand()
	return Settling
}

func (r *round) settling() Phase {
	for _, h := range r.table.player.hands {
		if h.Outcome() == rules.Unsettled {
			r.settle(h, Judge(h, r.dealer.hand))
		}
	}
	return Complete
}

func (r *round) settle(h *Hand, o rules.Outcome) {
	payout := r.table.player.Settle(h, o)
	r.logger.Debug("Settled", "outcome", o, "wagered", h.Wagered(), "payout", payout)
}

// Judge compares a finished player hand with the finished dealer hand. A
// bust player hand always loses, even when the dealer busts too.
func Judge(h, dealer *Hand) rules.Outcome {
	switch {
	case h.IsBust():
		return rules.Loss
	case h.IsTwentyOne() && dealer.IsTwentyOne():
		return rules.Push
	case h.Score() == dealer.Score() && !dealer.IsBust():
		return rules.Push
	case h.Score() > dealer.Score() || dealer.IsBust():
		return rules.Win
	default:
		return rules.Loss
	}
}

func (r *round) result() *RoundResult {
	p := r.table.player
	res := &RoundResult{
		Number:      r.number,
		Dealer:      r.dealer.hand.Cards(),
		DealerScore: r.dealer.hand.Score(),
		Cards:       r.deal.cards,
		Bankroll:    p.Bankroll(),
	}
	for _, h := range p.hands {
		hr := HandResult{
			Cards:   h.Cards(),
			Score:   h.Score(),
			Wagered: h.Wagered(),
			Payout:  h.Outcome().Payout(h.Wagered()),
			Outcome: h.Outcome(),
			Split:   h.IsSplit(),
			Doubled: h.IsDoubled(),
		}
		res.Hands = append(res.Hands, hr)
		res.Wagered += hr.Wagered
		res.Returned += hr.Payout
	}
	return res
}
