package bot

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjacksim/internal/deck"
	"github.com/lox/blackjacksim/internal/game"
	"github.com/lox/blackjacksim/internal/rules"
)

// RandomAgent picks a uniformly random legal move
type RandomAgent struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewRandomAgent creates a new RandomAgent instance
func NewRandomAgent(rng *rand.Rand, logger *log.Logger) *RandomAgent {
	return &RandomAgent{rng: rng, logger: orDiscard(logger)}
}

func (r *RandomAgent) Decide(h *game.Hand, up deck.Card) (rules.Move, error) {
	moves := h.LegalMoves()
	if len(moves) == 0 {
		return "", fmt.Errorf("%w: no legal moves for %s", rules.ErrInvalidMove, h)
	}
	move := moves[r.rng.IntN(len(moves))]
	r.logger.Debug("Random move", "hand", h.String(), "dealer", up, "move", move)
	return move, nil
}

// RandomBettor bets a uniformly random amount within the table limits
type RandomBettor struct {
	rng *rand.Rand
}

// NewRandomBettor creates a new RandomBettor instance
func NewRandomBettor(rng *rand.Rand) *RandomBettor {
	return &RandomBettor{rng: rng}
}

func (r *RandomBettor) Bet(minBet, maxBet int) int {
	if maxBet <= minBet {
		return minBet
	}
	return minBet + r.rng.IntN(maxBet-minBet+1)
}
