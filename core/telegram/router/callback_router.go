package router

import (
	tele "gopkg.in/telebot.v4"

	"github.com/chanceofrain/spotifam/core/logger"
	"github.com/chanceofrain/spotifam/core/telegram/callbacks"
)

// CallbackSource resolves callback data keys to handlers.
type CallbackSource interface {
	Callback(key string) (tele.HandlerFunc, bool)
}

// NewCallbackRouter dispatches inline button presses by the key part of
// their callback data. Every press gets Respond() so the client spinner
// never hangs, including unknown keys from stale keyboards.
func NewCallbackRouter(src CallbackSource) tele.HandlerFunc {
	return func(c tele.Context) error {
		cb := c.Callback()
		if cb == nil {
			return nil
		}
		key := callbacks.CallbackKey(c)
		h, ok := src.Callback(key)
		if !ok {
			log := logger.TG
			log.Debug("tg.callback.unknown", "key", logger.SanitizeLimit(key, 64))
			return c.Respond()
		}
		if err := c.Respond(); err != nil {
			log := logger.TG
			log.Debug("tg.callback.respond.failed", "error", err)
		}
		return handleWithSummary("cb."+key, h)(c)
	}
}
