package middleware

import (
	tele "gopkg.in/telebot.v4"

	"github.com/chanceofrain/spotifam/core/telegram/state"
)

// RequireState gates a handler on the user being at a specific conversation
// step. Out-of-order presses of stale inline buttons fall through to reject.
func RequireState(m *state.Manager, st state.State, reject tele.HandlerFunc) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			sender := c.Sender()
			if sender == nil || !m.HasState(sender.ID, st) {
				if reject != nil {
					return reject(c)
				}
				return nil
			}
			return next(c)
		}
	}
}
