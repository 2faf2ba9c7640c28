// Package bot provides the decision sources a simulated player can be built
// from: move agents (random or basic strategy) and bettors (random, flat or
// card counting).
package bot

import (
	"io"

	"github.com/charmbracelet/log"
)

func orDiscard(logger *log.Logger) *log.Logger {
	if logger == nil {
		return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
	}
	return logger.WithPrefix("bot")
}
