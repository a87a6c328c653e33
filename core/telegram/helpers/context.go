package helpers

import (
	"context"

	tele "gopkg.in/telebot.v4"

	"github.com/chanceofrain/spotifam/core/logger"
)

// LogCtx returns the logging context attached by the middleware chain.
func LogCtx(c tele.Context) context.Context {
	if v := c.Get("log_ctx"); v != nil {
		if ctx, ok := v.(context.Context); ok {
			return ctx
		}
	}
	return logger.Background()
}

// WithHandler annotates the logging context with a handler name and stores
// it back on the Telebot context.
func WithHandler(c tele.Context, name string) context.Context {
	ctx := logger.WithHandler(LogCtx(c), name)
	c.Set("log_ctx", ctx)
	return ctx
}
