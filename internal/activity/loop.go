// Package activity keeps last_activity fresh for users who are in the
// middle of a conversation, so the "active" audience filter counts them
// even when they idle between FSM steps.
package activity

import (
	"context"
	"time"

	"github.com/chanceofrain/spotifam/core/logger"
)

// Toucher bumps last_activity for a batch of Telegram IDs.
type Toucher interface {
	TouchActivity(ctx context.Context, telegramIDs []int64) error
}

// Loop runs until ctx is cancelled, touching every active conversation's
// user on each tick.
func Loop(ctx context.Context, users Toucher, active func() []int64, interval time.Duration) {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			ids := active()
			if len(ids) == 0 {
				continue
			}
			if err := users.TouchActivity(ctx, ids); err != nil {
				logger.SVCUsers.Warn("activity.touch.failed", "count", len(ids), "error", err)
				continue
			}
			logger.SVCUsers.Debug("activity.touched", "count", len(ids))
		}
	}
}
