package middleware

import (
	"slices"
	"sync"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/chanceofrain/spotifam/core/config"
	"github.com/chanceofrain/spotifam/core/logger"
)

// RateLimit enforces a minimum interval between updates per user. Excluded
// update kinds from config pass through untouched. Throttled updates are
// dropped silently apart from a debug log line.
func RateLimit(cfg config.RateLimitConfig) tele.MiddlewareFunc {
	interval := time.Duration(cfg.IntervalMS) * time.Millisecond
	if interval <= 0 {
		return func(next tele.HandlerFunc) tele.HandlerFunc { return next }
	}

	excludeCallback := slices.Contains(cfg.ExcludeUpdates, config.UpdateCallback)
	excludeMessage := slices.Contains(cfg.ExcludeUpdates, config.UpdateMessage)

	var mu sync.Mutex
	lastSeen := make(map[int64]time.Time)

	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if c.Callback() != nil && excludeCallback {
				return next(c)
			}
			if c.Callback() == nil && c.Message() != nil && excludeMessage {
				return next(c)
			}
			sender := c.Sender()
			if sender == nil {
				return next(c)
			}

			now := time.Now()
			mu.Lock()
			last, ok := lastSeen[sender.ID]
			allowed := !ok || now.Sub(last) >= interval
			if allowed {
				lastSeen[sender.ID] = now
			}
			mu.Unlock()

			if !allowed {
				log := logger.TG
				log.Debug("tg.rate_limit.dropped",
					"user_id", sender.ID,
					"update_id", c.Update().ID,
				)
				return nil
			}
			return next(c)
		}
	}
}
