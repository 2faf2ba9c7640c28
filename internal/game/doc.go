// Package game implements the blackjack round engine.
//
// The main type is Table, which owns a shoe, one Player and a Dealer and
// plays complete rounds through the Setup, PlayerActing, DealerActing,
// Settling and Complete phases.
//
// # Basic Usage
//
//	rng := randutil.New(42)
//	t, err := game.NewTable(rng, game.TableConfig{
//	    Bankroll: 1000,
//	    MinBet:   100,
//	    MaxBet:   3000,
//	    Decks:    1,
//	}, agent, bettor)
//	result, err := t.PlayRound()
//	fmt.Println(result.Bankroll, t.Bankroll())
//
// # Decision Sources
//
// Moves and bet sizes come from two small capability interfaces, Agent and
// Bettor, chosen when the table is built. Concrete implementations (random
// play, basic strategy, card counting) live in the bot package; AgentFunc
// and BettorFunc adapt plain functions for tests.
//
// # Deterministic Testing
//
// The RNG passed to NewTable drives every shuffle. For complete control over
// the cards, pass a pre-arranged source:
//
//	src := game.NewStackedSource(def.MustParse("10,6,A,10")...)
//	t, err := game.NewTable(rng, cfg, agent, bettor, game.WithCardSource(src))
//
// Observers registered with WithObserver are fed every card dealt during a
// round once the round completes, which is how card counters follow the shoe.
package game
