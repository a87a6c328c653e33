package middleware

import (
	tele "gopkg.in/telebot.v4"

	"github.com/chanceofrain/spotifam/core/logger"
)

// AdminOnly restricts a handler to the configured operator account.
// Other users get a short refusal instead of silence so the command does
// not look broken.
func AdminOnly(adminID int64) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			sender := c.Sender()
			if sender == nil || sender.ID != adminID {
				log := logger.TG
				var uid int64
				if sender != nil {
					uid = sender.ID
				}
				log.Warn("tg.access.denied", "user_id", uid, "update_id", c.Update().ID)
				return c.Send("This command is available to the administrator only.")
			}
			return next(c)
		}
	}
}
