package middleware

import (
	"sync"

	tele "gopkg.in/telebot.v4"

	"github.com/chanceofrain/spotifam/core/logger"
)

// seenUpdates dedupes receive logging when Telegram redelivers an update
// after a long poll restart. Bounded by periodic reset.
var (
	seenMu      sync.Mutex
	seenUpdates = make(map[int]struct{})
)

const seenResetThreshold = 4096

// Logging attaches a request ID and update metadata to the handler context
// and records each incoming update once.
func Logging() tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			upd := c.Update()

			var userID, chatID int64
			if s := c.Sender(); s != nil {
				userID = s.ID
			}
			if ch := c.Chat(); ch != nil {
				chatID = ch.ID
			}

			ctx := logger.WithRID(logger.Background(), logger.BuildRID(upd.ID, chatID, userID))
			ctx = logger.WithUpdateMeta(ctx, upd.ID, userID, chatID)
			c.Set("log_ctx", ctx)

			if markUpdateSeen(upd.ID) {
				log := logger.TG
				log.DebugContext(ctx, "tg.update.received",
					"update_id", upd.ID,
					"kind", updateKind(upd),
				)
			}
			return next(c)
		}
	}
}

func markUpdateSeen(id int) bool {
	seenMu.Lock()
	defer seenMu.Unlock()
	if len(seenUpdates) > seenResetThreshold {
		seenUpdates = make(map[int]struct{})
	}
	if _, ok := seenUpdates[id]; ok {
		return false
	}
	seenUpdates[id] = struct{}{}
	return true
}

func updateKind(u tele.Update) string {
	switch {
	case u.Callback != nil:
		return "callback"
	case u.Message != nil && u.Message.Text != "":
		return "message"
	case u.Message != nil:
		return "message_other"
	default:
		return "other"
	}
}
