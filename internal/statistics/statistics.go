package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/blackjacksim/internal/game"
	"github.com/lox/blackjacksim/internal/rules"
)

// RoundResult is the part of a played round the statistics need
type RoundResult struct {
	Net      int // Bankroll change over the round
	Bankroll int // Bankroll after the round
	Wagered  int
	Outcomes []rules.Outcome // One per hand played
}

// FromRound converts a table round result
func FromRound(r *game.RoundResult) RoundResult {
	res := RoundResult{Net: r.Net(), Bankroll: r.Bankroll, Wagered: r.Wagered}
	for _, h := range r.Hands {
		res.Outcomes = append(res.Outcomes, h.Outcome)
	}
	return res
}

// Statistics tracks a single bankroll trajectory
type Statistics struct {
	Start  int // Starting bankroll
	MinBet int // Bankroll below this counts as ruin

	Rounds   int
	Final    int
	SumNet   float64
	SumNet2  float64   // Sum of squares for variance calculation
	Values   []float64 // Per-round net, kept for median/percentiles
	Wagered  int
	Returned int

	Peak        int
	MaxDrawdown int // Largest fall from a previous peak
	RuinRound   int // First round the bankroll fell below MinBet, -1 if never

	Blackjacks int
	Wins       int
	Pushes     int
	Losses     int
}

// New creates empty statistics for a trajectory starting at bankroll
func New(bankroll, minBet int) *Statistics {
	return &Statistics{
		Start:     bankroll,
		MinBet:    minBet,
		Final:     bankroll,
		Peak:      bankroll,
		RuinRound: -1,
	}
}

// FromHistory rebuilds statistics from a recorded bankroll history. Outcome
// tallies are not part of a history and stay zero.
func FromHistory(bankroll, minBet int, history []int) *Statistics {
	s := New(bankroll, minBet)
	prev := bankroll
	for _, b := range history {
		s.Add(RoundResult{Net: b - prev, Bankroll: b})
		prev = b
	}
	return s
}

// Add incorporates one round
func (s *Statistics) Add(r RoundResult) {
	net := float64(r.Net)
	s.Rounds++
	s.SumNet += net
	s.SumNet2 += net * net
	s.Values = append(s.Values, net)
	s.Final = r.Bankroll
	s.Wagered += r.Wagered
	s.Returned += r.Wagered + r.Net

	if r.Bankroll > s.Peak {
		s.Peak = r.Bankroll
	}
	if dd := s.Peak - r.Bankroll; dd > s.MaxDrawdown {
		s.MaxDrawdown = dd
	}
	if s.RuinRound < 0 && r.Bankroll < s.MinBet {
		s.RuinRound = s.Rounds
	}

	for _, o := range r.Outcomes {
		switch o {
		case rules.BlackjackWin:
			s.Blackjacks++
		case rules.Win:
			s.Wins++
		case rules.Push:
			s.Pushes++
		case rules.Loss:
			s.Losses++
		}
	}
}

// Net returns the total bankroll change
func (s *Statistics) Net() int {
	return s.Final - s.Start
}

// Hands returns the number of settled hands, counting both split hands
func (s *Statistics) Hands() int {
	return s.Blackjacks + s.Wins + s.Pushes + s.Losses
}

// Mean returns the arithmetic mean of the per-round net
func (s *Statistics) Mean() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.SumNet / float64(s.Rounds)
}

// Variance returns the sample variance of the per-round net
func (s *Statistics) Variance() float64 {
	if s.Rounds < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumNet2 - float64(s.Rounds)*mean*mean) / float64(s.Rounds-1)
}

// StdDev returns the sample standard deviation of the per-round net
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(math.Max(s.Variance(), 0))
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Rounds))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// ReturnRate is the share of wagered money paid back, 1.0 meaning break even
func (s *Statistics) ReturnRate() float64 {
	if s.Wagered == 0 {
		return 0
	}
	return float64(s.Returned) / float64(s.Wagered)
}

// Median returns the median per-round net
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the per-round net at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// IsLedgerBalanced checks the per-round nets add up to the bankroll change
func (s *Statistics) IsLedgerBalanced() bool {
	return math.Abs(s.SumNet-float64(s.Net())) <= 1e-6
}

// Validate performs consistency checks on the collected data
func (s *Statistics) Validate() error {
	if !s.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch: sum of nets %.0f, bankroll moved %d", s.SumNet, s.Net())
	}
	if s.Rounds <= 0 {
		return fmt.Errorf("invalid rounds count: %d", s.Rounds)
	}
	if len(s.Values) != s.Rounds {
		return fmt.Errorf("values array length (%d) does not match rounds count (%d)", len(s.Values), s.Rounds)
	}
	if s.Peak < s.Start || s.Peak < s.Final {
		return fmt.Errorf("peak %d below start %d or final %d", s.Peak, s.Start, s.Final)
	}
	return nil
}

// Aggregate summarises several independent runs
type Aggregate struct {
	Runs        int
	MeanFinal   float64
	MinFinal    int
	MaxFinal    int
	MeanNet     float64 // Mean per-round net across all rounds of all runs
	Ruined      int
	RuinRate    float64
	MaxDrawdown int
}

// Combine aggregates the runs
func Combine(runs []*Statistics) Aggregate {
	agg := Aggregate{Runs: len(runs)}
	if len(runs) == 0 {
		return agg
	}

	var finals, nets float64
	rounds := 0
	agg.MinFinal, agg.MaxFinal = runs[0].Final, runs[0].Final
	for _, s := range runs {
		finals += float64(s.Final)
		nets += s.SumNet
		rounds += s.Rounds
		agg.MinFinal = min(agg.MinFinal, s.Final)
		agg.MaxFinal = max(agg.MaxFinal, s.Final)
		agg.MaxDrawdown = max(agg.MaxDrawdown, s.MaxDrawdown)
		if s.RuinRound >= 0 {
			agg.Ruined++
		}
	}
	agg.MeanFinal = finals / float64(len(runs))
	if rounds > 0 {
		agg.MeanNet = nets / float64(rounds)
	}
	agg.RuinRate = float64(agg.Ruined) / float64(len(runs))
	return agg
}
