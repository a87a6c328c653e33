package telegram

import (
	tele "gopkg.in/telebot.v4"

	"github.com/chanceofrain/spotifam/core/config"
	"github.com/chanceofrain/spotifam/core/telegram/middleware"
)

// DefaultMiddlewares returns the standard chain in execution order:
// panic recovery first, then rate limiting, context logging and counters.
func DefaultMiddlewares(cfg *config.Config) []tele.MiddlewareFunc {
	return []tele.MiddlewareFunc{
		middleware.Recover(),
		middleware.RateLimit(cfg.RateLimit),
		middleware.Logging(),
		middleware.Metrics(),
	}
}
