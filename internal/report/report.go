// Package report renders simulation results for the terminal.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/lox/blackjacksim/internal/simulator"
	"github.com/lox/blackjacksim/internal/statistics"
	"github.com/lox/blackjacksim/internal/store"
)

// DefaultWidth is the sparkline width in characters.
const DefaultWidth = 60

// Params are the simulation parameters shown in a report.
type Params struct {
	Rounds         int
	Runs           int
	Bankroll       int
	MinBet         int
	MaxBet         int
	Decks          int
	BasicStrategy  bool
	CountingSystem string
	Betting        string
	Seed           int64
}

// RunSummary is everything a report shows.
type RunSummary struct {
	ID      string
	Params  Params
	Stats   []*statistics.Statistics // One per run
	History []int                    // Trajectory drawn as the sparkline
	Elapsed time.Duration
}

// Options control rendering.
type Options struct {
	NoColor bool
	Width   int
}

// FromResult summarises a finished simulation, drawing the first run.
func FromResult(res *simulator.Result) RunSummary {
	cfg := res.Config
	sum := RunSummary{
		Params: Params{
			Rounds:         cfg.Rounds,
			Runs:           cfg.Runs,
			Bankroll:       cfg.Bankroll,
			MinBet:         cfg.MinBet,
			MaxBet:         cfg.MaxBet,
			Decks:          cfg.Decks,
			BasicStrategy:  cfg.BasicStrategy,
			CountingSystem: cfg.CountingSystem,
			Betting:        cfg.Betting,
			Seed:           cfg.Seed,
		},
		Elapsed: res.Elapsed,
	}
	for _, r := range res.Runs {
		sum.Stats = append(sum.Stats, r.Stats)
	}
	if len(res.Runs) > 0 {
		sum.History = res.Runs[0].History
	}
	return sum
}

// FromStored summarises a run loaded from the store.
func FromStored(run store.Run) RunSummary {
	return RunSummary{
		ID: run.ID,
		Params: Params{
			Rounds:         run.Rounds,
			Runs:           1,
			Bankroll:       run.Bankroll,
			MinBet:         run.MinBet,
			MaxBet:         run.MaxBet,
			Decks:          run.Decks,
			BasicStrategy:  run.BasicStrategy,
			CountingSystem: run.CountingSystem,
			Betting:        run.Betting,
			Seed:           run.Seed,
		},
		Stats:   []*statistics.Statistics{statistics.FromHistory(run.Bankroll, run.MinBet, run.History)},
		History: run.History,
	}
}

// Summary writes the report.
func Summary(w io.Writer, sum RunSummary, opts Options) error {
	if len(sum.Stats) == 0 {
		return fmt.Errorf("report: no runs to summarise")
	}
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	st := newStyles(w, opts.NoColor)
	p := sum.Params

	var b strings.Builder
	title := "Blackjack simulation"
	if sum.ID != "" {
		title += " " + sum.ID
	}
	b.WriteString(st.Header.Render(title) + "\n\n")

	field := func(label, value string) string {
		return st.Label.Render(label+":") + " " + st.Value.Render(value)
	}
	strategy := "random"
	if p.BasicStrategy {
		strategy = "basic"
	}
	counting := "off"
	if p.CountingSystem != "" {
		counting = p.CountingSystem
	}
	betting := p.Betting
	if p.CountingSystem != "" {
		betting = "counting"
	}

	fmt.Fprintf(&b, "%s  %s  %s  %s\n",
		field("Number of decks", humanize.Comma(int64(p.Decks))),
		field("Rounds", humanize.Comma(int64(p.Rounds))),
		field("Runs", humanize.Comma(int64(p.Runs))),
		field("Seed", fmt.Sprint(p.Seed)))
	fmt.Fprintf(&b, "%s  %s  %s\n",
		field("Starting chips", humanize.Comma(int64(p.Bankroll))),
		field("Min bet", humanize.Comma(int64(p.MinBet))),
		field("Max bet", humanize.Comma(int64(p.MaxBet))))
	fmt.Fprintf(&b, "%s  %s  %s\n\n",
		field("Basic strategy", strategy),
		field("Card counting", counting),
		field("Betting", betting))

	s := sum.Stats[0]
	final := st.Gain
	if s.Final < s.Start {
		final = st.Loss
	}
	fmt.Fprintf(&b, "After %s rounds, the value of the chips is %s\n",
		humanize.Comma(int64(s.Rounds)), final.Render(humanize.Comma(int64(s.Final))))

	low, high := s.ConfidenceInterval95()
	fmt.Fprintf(&b, "%s mean %s, median %s, std dev %s, std error %s, 95%% CI [%s, %s]\n",
		st.Label.Render("Per round:"),
		money(s.Mean()), money(s.Median()), money(s.StdDev()), money(s.StdError()), money(low), money(high))
	fmt.Fprintf(&b, "%s P5=%s P25=%s P75=%s P95=%s\n",
		st.Label.Render("Percentiles:"),
		money(s.Percentile(0.05)), money(s.Percentile(0.25)), money(s.Percentile(0.75)), money(s.Percentile(0.95)))

	ruin := "never"
	if s.RuinRound >= 0 {
		ruin = "round " + humanize.Comma(int64(s.RuinRound))
	}
	fmt.Fprintf(&b, "%s  %s  %s\n",
		field("Peak", humanize.Comma(int64(s.Peak))),
		field("Max drawdown", humanize.Comma(int64(s.MaxDrawdown))),
		field("Ruin", ruin))

	if s.Hands() > 0 {
		fmt.Fprintf(&b, "%s %s blackjack, %s win, %s push, %s loss, %s returned\n",
			st.Label.Render("Hands:"),
			humanize.Comma(int64(s.Blackjacks)), humanize.Comma(int64(s.Wins)),
			humanize.Comma(int64(s.Pushes)), humanize.Comma(int64(s.Losses)),
			percent(s.ReturnRate()))
	}

	if len(sum.Stats) > 1 {
		agg := statistics.Combine(sum.Stats)
		fmt.Fprintf(&b, "\n%s mean final %s, range %s to %s, ruined %s of %s (%s)\n",
			st.Info.Render("Across runs:"),
			money(agg.MeanFinal),
			humanize.Comma(int64(agg.MinFinal)), humanize.Comma(int64(agg.MaxFinal)),
			humanize.Comma(int64(agg.Ruined)), humanize.Comma(int64(agg.Runs)),
			percent(agg.RuinRate))
	}

	if len(sum.History) > 0 {
		fmt.Fprintf(&b, "\n%s\n%s\n", st.Label.Render("Bankroll trajectory:"),
			st.Sparkline.Render(Sparkline(append([]int{s.Start}, sum.History...), opts.Width)))
	}
	if sum.Elapsed > 0 {
		fmt.Fprintf(&b, "%s\n", st.Label.Render(fmt.Sprintf("Simulated in %s", sum.Elapsed.Round(time.Millisecond))))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func money(v float64) string {
	return humanize.CommafWithDigits(v, 2)
}

func percent(v float64) string {
	return fmt.Sprintf("%.1f%%", v*100)
}

var sparks = []rune("▁▂▃▄▅▆▇█")

// Sparkline draws values as a row of block characters at most width wide.
// Longer series are averaged into width buckets.
func Sparkline(values []int, width int) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}

	points := make([]float64, 0, min(width, len(values)))
	if len(values) <= width {
		for _, v := range values {
			points = append(points, float64(v))
		}
	} else {
		for i := 0; i < width; i++ {
			lo := i * len(values) / width
			hi := (i + 1) * len(values) / width
			var sum float64
			for _, v := range values[lo:hi] {
				sum += float64(v)
			}
			points = append(points, sum/float64(hi-lo))
		}
	}

	lo, hi := points[0], points[0]
	for _, v := range points {
		lo = min(lo, v)
		hi = max(hi, v)
	}

	var b strings.Builder
	for _, v := range points {
		idx := 0
		if hi > lo {
			idx = int((v - lo) / (hi - lo) * float64(len(sparks)-1))
		}
		b.WriteRune(sparks[idx])
	}
	return b.String()
}
