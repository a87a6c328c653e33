package middleware

import (
	"sync/atomic"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/chanceofrain/spotifam/core/logger"
)

// Counters aggregates lightweight in-process update counters. They feed the
// periodic tg.metrics.summary log line, not an external metrics system.
type Counters struct {
	Messages  atomic.Int64
	Callbacks atomic.Int64
	Errors    atomic.Int64
}

var counters Counters

// Snapshot returns current counter values.
func Snapshot() (messages, callbacks, errors int64) {
	return counters.Messages.Load(), counters.Callbacks.Load(), counters.Errors.Load()
}

// Metrics counts handled updates per kind and handler errors.
func Metrics() tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if c.Callback() != nil {
				counters.Callbacks.Add(1)
			} else if c.Message() != nil {
				counters.Messages.Add(1)
			}
			err := next(c)
			if err != nil {
				counters.Errors.Add(1)
			}
			return err
		}
	}
}

// StartMetricsReporter logs a counter summary every interval until stop is
// closed.
func StartMetricsReporter(interval time.Duration, stop <-chan struct{}) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		log := logger.TG
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				messages, callbacks, errors := Snapshot()
				log.Info("tg.metrics.summary",
					"messages", messages,
					"callbacks", callbacks,
					"errors", errors,
				)
			}
		}
	}()
}
