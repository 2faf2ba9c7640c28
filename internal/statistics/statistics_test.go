package statistics

import (
	"math"
	"testing"

	"github.com/lox/blackjacksim/internal/rules"
)

func TestStatistics_Empty(t *testing.T) {
	stats := New(1000, 100)

	if stats.Mean() != 0 {
		t.Errorf("Expected mean of 0 for empty stats, got %f", stats.Mean())
	}
	if stats.Variance() != 0 {
		t.Errorf("Expected variance of 0 for empty stats, got %f", stats.Variance())
	}
	if stats.StdError() != 0 {
		t.Errorf("Expected stderr of 0 for empty stats, got %f", stats.StdError())
	}
	if stats.Median() != 0 {
		t.Errorf("Expected median of 0 for empty stats, got %f", stats.Median())
	}
	if stats.RuinRound != -1 {
		t.Errorf("Expected no ruin, got round %d", stats.RuinRound)
	}
	if err := stats.Validate(); err == nil {
		t.Error("Expected validation to fail without rounds")
	}
}

func TestStatistics_SingleRound(t *testing.T) {
	stats := New(1000, 100)
	stats.Add(RoundResult{Net: 150, Bankroll: 1150, Wagered: 100, Outcomes: []rules.Outcome{rules.BlackjackWin}})

	if stats.Rounds != 1 {
		t.Errorf("Expected 1 round, got %d", stats.Rounds)
	}
	if stats.Mean() != 150 {
		t.Errorf("Expected mean of 150, got %f", stats.Mean())
	}
	if stats.Variance() != 0 {
		t.Errorf("Expected variance of 0 for single value, got %f", stats.Variance())
	}
	if stats.Blackjacks != 1 || stats.Hands() != 1 {
		t.Errorf("Expected one blackjack hand, got %d of %d", stats.Blackjacks, stats.Hands())
	}
	if stats.Returned != 250 {
		t.Errorf("Expected 250 returned, got %d", stats.Returned)
	}
	if stats.ReturnRate() != 2.5 {
		t.Errorf("Expected return rate 2.5, got %f", stats.ReturnRate())
	}
	if err := stats.Validate(); err != nil {
		t.Errorf("Expected valid statistics, got %v", err)
	}
}

func TestStatistics_MultipleRounds(t *testing.T) {
	stats := New(1000, 100)

	results := []RoundResult{
		{Net: 100, Bankroll: 1100, Wagered: 100, Outcomes: []rules.Outcome{rules.Win}},
		{Net: -200, Bankroll: 900, Wagered: 200, Outcomes: []rules.Outcome{rules.Loss}},
		{Net: 300, Bankroll: 1200, Wagered: 300, Outcomes: []rules.Outcome{rules.Win, rules.Win}},
		{Net: 0, Bankroll: 1200, Wagered: 100, Outcomes: []rules.Outcome{rules.Push}},
		{Net: -100, Bankroll: 1100, Wagered: 100, Outcomes: []rules.Outcome{rules.Loss}},
	}
	for _, r := range results {
		stats.Add(r)
	}

	// Mean: (100 - 200 + 300 + 0 - 100) / 5 = 20
	if math.Abs(stats.Mean()-20) > 1e-9 {
		t.Errorf("Expected mean of 20, got %f", stats.Mean())
	}

	// Sample variance: sum of squared deviations / (n-1)
	// deviations: 80, -220, 280, -20, -120; squares sum to 148000
	expectedVariance := 148000.0 / 4.0
	if math.Abs(stats.Variance()-expectedVariance) > 1e-6 {
		t.Errorf("Expected variance of %f, got %f", expectedVariance, stats.Variance())
	}
	if math.Abs(stats.StdDev()-math.Sqrt(expectedVariance)) > 1e-6 {
		t.Errorf("Expected stddev of %f, got %f", math.Sqrt(expectedVariance), stats.StdDev())
	}

	expectedSE := math.Sqrt(expectedVariance) / math.Sqrt(5)
	low, high := stats.ConfidenceInterval95()
	if math.Abs((high-low)/2-1.96*expectedSE) > 1e-6 {
		t.Errorf("Expected CI half width %f, got %f", 1.96*expectedSE, (high-low)/2)
	}

	if stats.Median() != 0 {
		t.Errorf("Expected median of 0, got %f", stats.Median())
	}
	if stats.Percentile(0) != -200 || stats.Percentile(1) != 300 {
		t.Errorf("Expected extremes -200 and 300, got %f and %f", stats.Percentile(0), stats.Percentile(1))
	}
	if stats.Percentile(0.25) != -100 {
		t.Errorf("Expected P25 of -100, got %f", stats.Percentile(0.25))
	}

	if stats.Peak != 1200 {
		t.Errorf("Expected peak 1200, got %d", stats.Peak)
	}
	if stats.MaxDrawdown != 200 {
		t.Errorf("Expected max drawdown 200, got %d", stats.MaxDrawdown)
	}
	if stats.Wins != 3 || stats.Losses != 2 || stats.Pushes != 1 || stats.Hands() != 6 {
		t.Errorf("Unexpected tallies: %d wins %d losses %d pushes", stats.Wins, stats.Losses, stats.Pushes)
	}
	if stats.Net() != 100 || !stats.IsLedgerBalanced() {
		t.Errorf("Expected balanced ledger with net 100, got %d", stats.Net())
	}
	if err := stats.Validate(); err != nil {
		t.Errorf("Expected valid statistics, got %v", err)
	}
}

func TestStatistics_Ruin(t *testing.T) {
	stats := FromHistory(300, 100, []int{200, 100, 0, 100, 200})

	if stats.RuinRound != 3 {
		t.Errorf("Expected ruin at round 3, got %d", stats.RuinRound)
	}
	if stats.MaxDrawdown != 300 {
		t.Errorf("Expected max drawdown 300, got %d", stats.MaxDrawdown)
	}
	if stats.Final != 200 || stats.Net() != -100 {
		t.Errorf("Expected final 200 and net -100, got %d and %d", stats.Final, stats.Net())
	}
	if err := stats.Validate(); err != nil {
		t.Errorf("Expected valid statistics, got %v", err)
	}
}

func TestStatistics_ValidateCatchesLedgerMismatch(t *testing.T) {
	stats := New(1000, 100)
	stats.Add(RoundResult{Net: 100, Bankroll: 1100})
	stats.Final = 1300

	if err := stats.Validate(); err == nil {
		t.Error("Expected ledger mismatch to fail validation")
	}
}

func TestCombine(t *testing.T) {
	runs := []*Statistics{
		FromHistory(1000, 100, []int{1100, 1200}),
		FromHistory(1000, 100, []int{500, 50}),
		FromHistory(1000, 100, []int{900, 1000}),
	}

	agg := Combine(runs)
	if agg.Runs != 3 {
		t.Errorf("Expected 3 runs, got %d", agg.Runs)
	}
	if math.Abs(agg.MeanFinal-750) > 1e-9 {
		t.Errorf("Expected mean final 750, got %f", agg.MeanFinal)
	}
	if agg.MinFinal != 50 || agg.MaxFinal != 1200 {
		t.Errorf("Expected final range 50..1200, got %d..%d", agg.MinFinal, agg.MaxFinal)
	}
	if agg.Ruined != 1 || math.Abs(agg.RuinRate-1.0/3.0) > 1e-9 {
		t.Errorf("Expected one ruined run, got %d (%f)", agg.Ruined, agg.RuinRate)
	}
	// Nets: +200, -950, 0 over six rounds
	if math.Abs(agg.MeanNet-(-750.0/6.0)) > 1e-9 {
		t.Errorf("Expected mean net %f, got %f", -750.0/6.0, agg.MeanNet)
	}
	if agg.MaxDrawdown != 950 {
		t.Errorf("Expected max drawdown 950, got %d", agg.MaxDrawdown)
	}

	if empty := Combine(nil); empty.Runs != 0 || empty.MeanFinal != 0 {
		t.Errorf("Expected zero aggregate, got %+v", empty)
	}
}
