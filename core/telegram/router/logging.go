package router

import (
	"context"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/chanceofrain/spotifam/core/logger"
)

// handleWithSummary wraps a handler with a single outcome log line carrying
// the handler name, duration and error state. It is the one place routing
// logs, so handlers stay free of boilerplate.
func handleWithSummary(name string, h tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		start := time.Now()
		ctx := logCtx(c)
		ctx = logger.WithHandler(ctx, name)
		c.Set("log_ctx", ctx)

		err := h(c)

		log := logger.TG
		attrs := []any{
			"handler", name,
			"took_ms", time.Since(start).Milliseconds(),
		}
		if rid := logger.RIDFrom(ctx); rid != "" {
			attrs = append(attrs, "rid", logger.CompactRID(rid))
		}
		if err != nil {
			attrs = append(attrs, "error", err)
			log.ErrorContext(ctx, "tg.handler.failed", attrs...)
			return err
		}
		log.InfoContext(ctx, "tg.handler.done", attrs...)
		return nil
	}
}

func logCtx(c tele.Context) context.Context {
	if v := c.Get("log_ctx"); v != nil {
		if ctx, ok := v.(context.Context); ok {
			return ctx
		}
	}
	return logger.Background()
}
