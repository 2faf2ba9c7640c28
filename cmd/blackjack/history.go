package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/lox/blackjacksim/internal/report"
	"github.com/lox/blackjacksim/internal/store"
)

// HistoryCmd lists stored runs or renders one of them.
type HistoryCmd struct {
	DB      string `name:"db" default:"blackjack.db" help:"SQLite database holding the runs"`
	ID      string `help:"Show the run with this id"`
	Last    bool   `help:"Show the most recent run"`
	Limit   int    `short:"n" default:"20" help:"Number of runs to list"`
	NoColor bool   `help:"Disable colours in the report"`
}

func (cmd *HistoryCmd) Run(g *Globals) error {
	if _, err := os.Stat(cmd.DB); cmd.DB != ":memory:" && errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("no run database at %s", cmd.DB)
	}

	ctx := context.Background()
	db, err := store.Open(ctx, cmd.DB)
	if err != nil {
		return err
	}
	defer db.Close()

	if cmd.ID != "" || cmd.Last {
		var run store.Run
		if cmd.ID != "" {
			run, err = db.GetRun(ctx, cmd.ID)
		} else {
			run, err = db.LastRun(ctx)
		}
		if err != nil {
			return err
		}
		return report.Summary(g.stdout(), report.FromStored(run), report.Options{NoColor: cmd.NoColor})
	}

	runs, err := db.ListRuns(ctx, cmd.Limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(g.stdout(), "No stored runs")
		return nil
	}

	w := tabwriter.NewWriter(g.stdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCREATED\tDECKS\tROUNDS\tSTRATEGY\tCOUNTING\tSTART\tFINAL")
	for _, run := range runs {
		strategy := "random"
		if run.BasicStrategy {
			strategy = "basic"
		}
		counting := run.CountingSystem
		if counting == "" {
			counting = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%s\t%s\t%s\n",
			run.ID, humanize.Time(run.CreatedAt), run.Decks, humanize.Comma(int64(run.Rounds)),
			strategy, counting, humanize.Comma(int64(run.Bankroll)), humanize.Comma(int64(run.Final)))
	}
	return w.Flush()
}
