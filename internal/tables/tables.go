// Package tables loads the rule tables the game consumes: card values,
// counting systems and the basic-strategy chart. Tables are HCL documents;
// a default set is embedded in the binary.
package tables

import (
	"cmp"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strconv"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/blackjacksim/internal/counting"
	"github.com/lox/blackjacksim/internal/deck"
	"github.com/lox/blackjacksim/internal/game"
	"github.com/lox/blackjacksim/internal/rules"
	"github.com/lox/blackjacksim/internal/strategy"
	"github.com/sanity-io/litter"
)

// File names looked up inside a table directory.
const (
	CardsFile    = "cards.hcl"
	CountingFile = "counting.hcl"
	StrategyFile = "strategy.hcl"
)

//go:embed defaults/*.hcl
var defaults embed.FS

// Set is a complete collection of parsed tables.
type Set struct {
	Cards    deck.Definition
	Systems  map[string]counting.System
	Strategy strategy.Chart
}

// System returns the counting system with the given name.
func (s *Set) System(name string) (counting.System, error) {
	sys, ok := s.Systems[name]
	if !ok {
		return counting.System{}, fmt.Errorf("%w: unknown counting system %q (have %v)", rules.ErrConfig, name, s.SystemNames())
	}
	return sys, nil
}

// SystemNames returns the counting system names in sorted order
func (s *Set) SystemNames() []string {
	names := make([]string, 0, len(s.Systems))
	for name := range s.Systems {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Engine builds a strategy engine from the chart.
func (s *Set) Engine() (*strategy.Engine, error) {
	return strategy.NewEngine(s.Strategy)
}

// Defaults returns the embedded table files.
func Defaults() fs.FS {
	sub, err := fs.Sub(defaults, "defaults")
	if err != nil {
		panic(err)
	}
	return sub
}

// Default loads the embedded tables.
func Default() (*Set, error) {
	return Load(Defaults())
}

// Dir loads the tables from a directory on disk.
func Dir(path string) (*Set, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: table directory: %v", rules.ErrConfig, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", rules.ErrConfig, path)
	}
	return Load(os.DirFS(path))
}

// Load reads all three table files from fsys.
func Load(fsys fs.FS) (*Set, error) {
	cards, err := LoadCards(fsys, CardsFile)
	if err != nil {
		return nil, err
	}
	systems, err := LoadCountingSystems(fsys, CountingFile)
	if err != nil {
		return nil, err
	}
	chart, err := LoadStrategy(fsys, StrategyFile)
	if err != nil {
		return nil, err
	}
	return &Set{Cards: cards, Systems: systems, Strategy: chart}, nil
}

// CheckCoverage verifies that every two-card starting hand, split or not,
// has a move against every up card the definition can deal.
func CheckCoverage(def deck.Definition, engine *strategy.Engine) error {
	ranks := def.Ranks
	for _, a := range ranks {
		for _, b := range ranks {
			for _, up := range ranks {
				for _, split := range []bool{false, true} {
					h := game.NewHand(0)
					if split {
						h = game.NewSplitHand(0)
					}
					h.AddCard(deck.Card{Rank: a.Label, Value: a.Value})
					h.AddCard(deck.Card{Rank: b.Label, Value: b.Value})
					if h.IsTwentyOne() {
						continue
					}
					if _, err := engine.Decide(h, deck.Card{Rank: up.Label, Value: up.Value}); err != nil {
						return fmt.Errorf("%s,%s vs %s: %w", a.Label, b.Label, up.Label, err)
					}
				}
			}
		}
	}
	return nil
}

// Dump renders any parsed table for display.
func Dump(v any) string {
	return litter.Options{HidePrivateFields: true, StripPackageNames: true}.Sdump(v)
}

func decode(fsys fs.FS, path string, target any) error {
	src, err := fs.ReadFile(fsys, path)
	if err != nil {
		return fmt.Errorf("%w: %v", rules.ErrConfig, err)
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, path)
	if diags.HasErrors() {
		return fmt.Errorf("%w: failed to parse %s: %s", rules.ErrConfig, path, diags.Error())
	}

	diags = gohcl.DecodeBody(file.Body, nil, target)
	if diags.HasErrors() {
		return fmt.Errorf("%w: failed to decode %s: %s", rules.ErrConfig, path, diags.Error())
	}
	return nil
}

type cardsDoc struct {
	Suits []string    `hcl:"suits"`
	Ranks []rankBlock `hcl:"rank,block"`
}

type rankBlock struct {
	Label string `hcl:"label,label"`
	Value int    `hcl:"value"`
}

// LoadCards decodes a card value table.
func LoadCards(fsys fs.FS, path string) (deck.Definition, error) {
	var doc cardsDoc
	if err := decode(fsys, path, &doc); err != nil {
		return deck.Definition{}, err
	}

	def := deck.Definition{Suits: doc.Suits}
	for _, r := range doc.Ranks {
		def.Ranks = append(def.Ranks, deck.Rank{Label: r.Label, Value: r.Value})
	}
	if err := def.Validate(); err != nil {
		return deck.Definition{}, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}

type countingDoc struct {
	Systems []systemBlock `hcl:"system,block"`
}

type systemBlock struct {
	Name   string           `hcl:"name,label"`
	Points map[string][]int `hcl:"points"`
}

// LoadCountingSystems decodes a counting system table keyed by name.
func LoadCountingSystems(fsys fs.FS, path string) (map[string]counting.System, error) {
	var doc countingDoc
	if err := decode(fsys, path, &doc); err != nil {
		return nil, err
	}
	if len(doc.Systems) == 0 {
		return nil, fmt.Errorf("%w: %s defines no counting systems", rules.ErrConfig, path)
	}

	systems := make(map[string]counting.System, len(doc.Systems))
	for _, block := range doc.Systems {
		if _, dup := systems[block.Name]; dup {
			return nil, fmt.Errorf("%w: %s: counting system %q defined twice", rules.ErrConfig, path, block.Name)
		}
		sys := counting.System{Name: block.Name}
		for key, values := range block.Points {
			points, err := strconv.ParseFloat(key, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: system %q: point value %q is not a number", rules.ErrConfig, path, block.Name, key)
			}
			sys.Buckets = append(sys.Buckets, counting.Bucket{Points: points, Values: values})
		}
		slices.SortFunc(sys.Buckets, func(a, b counting.Bucket) int {
			return cmp.Compare(b.Points, a.Points)
		})
		if err := sys.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		systems[block.Name] = sys
	}
	return systems, nil
}

type strategyDoc struct {
	Grids []gridBlock `hcl:"grid,block"`
}

type gridBlock struct {
	Name   string     `hcl:"name,label"`
	Player []int      `hcl:"player"`
	Dealer []int      `hcl:"dealer"`
	Move   [][]string `hcl:"move"`
}

// LoadStrategy decodes a basic-strategy chart. Every grid is validated
// against its axes.
func LoadStrategy(fsys fs.FS, path string) (strategy.Chart, error) {
	var doc strategyDoc
	if err := decode(fsys, path, &doc); err != nil {
		return nil, err
	}

	chart := make(strategy.Chart, len(doc.Grids))
	for _, block := range doc.Grids {
		c := strategy.Category(block.Name)
		if !slices.Contains(strategy.Categories, c) {
			return nil, fmt.Errorf("%w: %s: unknown grid %q", rules.ErrConfig, path, block.Name)
		}
		if _, dup := chart[c]; dup {
			return nil, fmt.Errorf("%w: %s: grid %q defined twice", rules.ErrConfig, path, block.Name)
		}

		grid := strategy.Grid{Player: block.Player, Dealer: block.Dealer}
		for _, row := range block.Move {
			moves := make([]rules.Move, 0, len(row))
			for _, code := range row {
				m, err := rules.ParseMove(code)
				if err != nil {
					return nil, fmt.Errorf("%s: grid %q: %w", path, block.Name, err)
				}
				moves = append(moves, m)
			}
			grid.Moves = append(grid.Moves, moves)
		}
		if err := grid.Validate(); err != nil {
			return nil, fmt.Errorf("%s: grid %q: %w", path, block.Name, err)
		}
		chart[c] = grid
	}

	for _, c := range strategy.Categories {
		if _, ok := chart[c]; !ok {
			return nil, fmt.Errorf("%w: %s: missing grid %q", rules.ErrConfig, path, c)
		}
	}
	return chart, nil
}
