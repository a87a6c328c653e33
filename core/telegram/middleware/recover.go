package middleware

import (
	"runtime/debug"

	tele "gopkg.in/telebot.v4"

	"github.com/chanceofrain/spotifam/core/logger"
)

// Recover converts handler panics into logged errors so a single broken
// update cannot take the poller down.
func Recover() tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			defer func() {
				if r := recover(); r != nil {
					log := logger.TG
					log.Error("tg.handler.panic",
						"panic", r,
						"update_id", c.Update().ID,
						"stack", logger.SanitizeLimit(string(debug.Stack()), 2000),
					)
				}
			}()
			return next(c)
		}
	}
}
