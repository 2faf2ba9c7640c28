// Package strategy implements basic-strategy move selection from three
// lookup grids: pair splitting, soft hands and hard hands.
package strategy

import (
	"fmt"

	"github.com/lox/blackjacksim/internal/deck"
	"github.com/lox/blackjacksim/internal/game"
	"github.com/lox/blackjacksim/internal/rules"
)

// Category names one of the three strategy grids.
type Category string

const (
	PairSplitting Category = "pair_splitting"
	SoftHand      Category = "soft_hand"
	HardHand      Category = "hard_hand"
)

// Categories lists the grids a chart must carry, in lookup order.
var Categories = []Category{PairSplitting, SoftHand, HardHand}

// Grid maps a player reference value (row) and a dealer up-card value
// (column) to a move. Moves[i][j] belongs to Player[i] and Dealer[j].
type Grid struct {
	Player []int
	Dealer []int
	Moves  [][]rules.Move
}

// Validate checks that the move matrix matches both axes and holds only
// known moves.
func (g Grid) Validate() error {
	if len(g.Player) == 0 || len(g.Dealer) == 0 {
		return fmt.Errorf("%w: grid needs player and dealer axes", rules.ErrConfig)
	}
	if len(g.Moves) != len(g.Player) {
		return fmt.Errorf("%w: %d move rows for %d player values", rules.ErrConfig, len(g.Moves), len(g.Player))
	}
	for i, row := range g.Moves {
		if len(row) != len(g.Dealer) {
			return fmt.Errorf("%w: row %d has %d moves for %d dealer values", rules.ErrConfig, g.Player[i], len(row), len(g.Dealer))
		}
		for _, m := range row {
			if _, err := rules.ParseMove(string(m)); err != nil {
				return fmt.Errorf("row %d: %w", g.Player[i], err)
			}
		}
	}
	if err := unique(g.Player); err != nil {
		return fmt.Errorf("player axis: %w", err)
	}
	if err := unique(g.Dealer); err != nil {
		return fmt.Errorf("dealer axis: %w", err)
	}
	return nil
}

func unique(axis []int) error {
	seen := make(map[int]bool, len(axis))
	for _, v := range axis {
		if seen[v] {
			return fmt.Errorf("%w: duplicate value %d", rules.ErrConfig, v)
		}
		seen[v] = true
	}
	return nil
}

// Chart is a complete basic-strategy table.
type Chart map[Category]Grid

type index struct {
	rows  map[int]int
	cols  map[int]int
	moves [][]rules.Move
}

func newIndex(g Grid) index {
	idx := index{
		rows:  make(map[int]int, len(g.Player)),
		cols:  make(map[int]int, len(g.Dealer)),
		moves: g.Moves,
	}
	for i, v := range g.Player {
		idx.rows[v] = i
	}
	for j, v := range g.Dealer {
		idx.cols[v] = j
	}
	return idx
}

// Engine answers basic-strategy lookups. It is immutable after
// construction and safe for concurrent use.
type Engine struct {
	grids map[Category]index
}

// NewEngine validates the chart and indexes its axes.
func NewEngine(chart Chart) (*Engine, error) {
	e := &Engine{grids: make(map[Category]index, len(Categories))}
	for _, c := range Categories {
		g, ok := chart[c]
		if !ok {
			return nil, fmt.Errorf("%w: missing %s grid", rules.ErrConfig, c)
		}
		if err := g.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", c, err)
		}
		e.grids[c] = newIndex(g)
	}
	return e, nil
}

// Classify returns the grid and row value used for a hand. Split hands are
// never looked up as pairs.
func Classify(h *game.Hand) (Category, int) {
	switch {
	case h.IsPair() && !h.IsSplit():
		return PairSplitting, h.Cards()[0].Value
	case h.IsSoft():
		return SoftHand, h.Score() - rules.AceHigh
	default:
		return HardHand, h.Score()
	}
}

// Lookup returns the raw move stored in a grid.
func (e *Engine) Lookup(c Category, player, dealer int) (rules.Move, error) {
	idx, ok := e.grids[c]
	if !ok {
		return "", fmt.Errorf("%w: no %s grid", rules.ErrTableLookup, c)
	}
	i, ok := idx.rows[player]
	if !ok {
		return "", fmt.Errorf("%w: %s has no row %d", rules.ErrTableLookup, c, player)
	}
	j, ok := idx.cols[dealer]
	if !ok {
		return "", fmt.Errorf("%w: %s has no dealer column %d", rules.ErrTableLookup, c, dealer)
	}
	return idx.moves[i][j], nil
}

// Decide returns the basic-strategy move for the hand against the dealer's
// up card. A double the hand may not take becomes a hit.
func (e *Engine) Decide(h *game.Hand, up deck.Card) (rules.Move, error) {
	c, row := Classify(h)
	move, err := e.Lookup(c, row, up.Value)
	if err != nil {
		return "", err
	}
	if move == rules.Double && !rules.Contains(h.LegalMoves(), rules.Double) {
		move = rules.Hit
	}
	return move, nil
}
