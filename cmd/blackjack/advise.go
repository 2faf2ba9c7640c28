package main

import (
	"fmt"

	"github.com/lox/blackjacksim/internal/game"
	"github.com/lox/blackjacksim/internal/rules"
	"github.com/lox/blackjacksim/internal/strategy"
)

// AdviseCmd looks up the basic-strategy move for a hand.
type AdviseCmd struct {
	Cards   string `arg:"" help:"Player cards, e.g. \"A,7\" or \"10 6\""`
	Dealer  string `short:"d" required:"" help:"Dealer up card, e.g. 10"`
	Split   bool   `help:"Treat the hand as the result of a split"`
	Explain bool   `short:"e" help:"Show how the hand was classified"`
}

func (cmd *AdviseCmd) Run(g *Globals) error {
	set, err := g.tables()
	if err != nil {
		return err
	}
	engine, err := set.Engine()
	if err != nil {
		return err
	}

	cards, err := set.Cards.Parse(cmd.Cards)
	if err != nil {
		return fmt.Errorf("player cards: %w", err)
	}
	if len(cards) < 2 {
		return fmt.Errorf("player cards: need at least two cards, got %d", len(cards))
	}
	up, err := set.Cards.Parse(cmd.Dealer)
	if err != nil {
		return fmt.Errorf("dealer card: %w", err)
	}
	if len(up) != 1 {
		return fmt.Errorf("dealer card: need exactly one card, got %d", len(up))
	}

	hand := game.NewHand(0)
	if cmd.Split {
		hand = game.NewSplitHand(0)
	}
	for _, c := range cards {
		hand.AddCard(c)
	}
	if hand.IsBust() {
		return fmt.Errorf("player cards: hand is bust at %d", hand.Score())
	}

	// 21 stands automatically and has no chart row.
	move := rules.Stand
	if !hand.IsTwentyOne() {
		if move, err = engine.Decide(hand, up[0]); err != nil {
			return err
		}
	}

	out := g.stdout()
	if cmd.Explain {
		category, value := strategy.Classify(hand)
		fmt.Fprintf(out, "Hand: %s vs %s\n", hand, up[0])
		fmt.Fprintf(out, "Lookup: %s %d against %d\n", category, value, up[0].Value)
		fmt.Fprintf(out, "Move: %s\n", move)
	}
	fmt.Fprintln(out, string(move))
	return nil
}
