package main

import (
	"fmt"
	"strings"

	"github.com/lox/blackjacksim/internal/fileutil"
	"github.com/lox/blackjacksim/internal/tables"
)

// TablesCmd inspects the card, counting and strategy tables.
type TablesCmd struct {
	Show     TablesShowCmd     `cmd:"" default:"withargs" help:"Print the loaded tables"`
	Validate TablesValidateCmd `cmd:"" help:"Check that the tables load and every reachable hand has a move"`
	Export   TablesExportCmd   `cmd:"" help:"Write the built-in tables to a directory for editing"`
}

type TablesShowCmd struct {
	Which string `arg:"" optional:"" enum:"all,cards,counting,strategy" default:"all" help:"Which table to show (all, cards, counting, strategy)"`
}

func (cmd *TablesShowCmd) Run(g *Globals) error {
	set, err := g.tables()
	if err != nil {
		return err
	}

	out := g.stdout()
	if cmd.Which == "all" || cmd.Which == "cards" {
		fmt.Fprintf(out, "# %s\n%s\n", tables.CardsFile, tables.Dump(set.Cards))
	}
	if cmd.Which == "all" || cmd.Which == "counting" {
		fmt.Fprintf(out, "# %s\n", tables.CountingFile)
		for _, name := range set.SystemNames() {
			fmt.Fprintf(out, "%s\n", tables.Dump(set.Systems[name]))
		}
	}
	if cmd.Which == "all" || cmd.Which == "strategy" {
		fmt.Fprintf(out, "# %s\n%s\n", tables.StrategyFile, tables.Dump(set.Strategy))
	}
	return nil
}

type TablesValidateCmd struct{}

func (cmd *TablesValidateCmd) Run(g *Globals) error {
	set, err := g.tables()
	if err != nil {
		return err
	}
	engine, err := set.Engine()
	if err != nil {
		return err
	}
	if err := tables.CheckCoverage(set.Cards, engine); err != nil {
		return err
	}

	fmt.Fprintf(g.stdout(), "ok: %d ranks, counting systems %s, %d strategy grids\n",
		len(set.Cards.Ranks), strings.Join(set.SystemNames(), ", "), len(set.Strategy))
	return nil
}

type TablesExportCmd struct {
	Dir   string `arg:"" help:"Directory to write cards.hcl, counting.hcl and strategy.hcl into"`
	Force bool   `short:"f" help:"Overwrite existing files"`
}

func (cmd *TablesExportCmd) Run(g *Globals) error {
	written, err := fileutil.CopyFS(cmd.Dir, tables.Defaults(), cmd.Force)
	if err != nil {
		return err
	}
	for _, path := range written {
		fmt.Fprintf(g.stdout(), "wrote %s\n", path)
	}
	return nil
}
