package services

import (
	"context"
	"errors"
	"strings"

	"github.com/chanceofrain/spotifam/core/logger"
	"github.com/chanceofrain/spotifam/internal/models"
)

// Broadcast input failures.
var (
	ErrBroadcastEmpty  = errors.New("broadcast text is empty")
	ErrBroadcastTarget = errors.New("unknown broadcast target")
)

// Messenger delivers one message to one Telegram chat.
type Messenger interface {
	SendTo(chatID int64, text string) error
}

// BroadcastService fans a message out to the selected audience and records
// the outcome.
type BroadcastService struct {
	broadcasts BroadcastStore
	users      UserStore
	messenger  Messenger
}

func NewBroadcastService(broadcasts BroadcastStore, users UserStore, messenger Messenger) *BroadcastService {
	return &BroadcastService{broadcasts: broadcasts, users: users, messenger: messenger}
}

// Send creates the job, delivers to every recipient and stores counters.
// createdBy records the submitting console account. Individual delivery
// failures are counted, not fatal.
func (s *BroadcastService) Send(ctx context.Context, text, target, createdBy string) (*models.BroadcastMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrBroadcastEmpty
	}
	if target != models.BroadcastTargetAll && target != models.BroadcastTargetActive {
		return nil, ErrBroadcastTarget
	}

	job, err := s.broadcasts.Create(ctx, text, target, createdBy)
	if err != nil {
		return nil, err
	}
	if err := s.broadcasts.MarkSending(ctx, job.ID); err != nil {
		return nil, err
	}

	ids, err := s.users.RecipientIDs(ctx, target)
	if err != nil {
		_ = s.broadcasts.Finish(ctx, job.ID, models.BroadcastFailed, 0, 0)
		return nil, err
	}

	sent, failed := 0, 0
	for _, id := range ids {
		if err := s.messenger.SendTo(id, text); err != nil {
			failed++
			continue
		}
		sent++
	}

	status := models.BroadcastCompleted
	if sent == 0 && failed > 0 {
		status = models.BroadcastFailed
	}
	if err := s.broadcasts.Finish(ctx, job.ID, status, sent, failed); err != nil {
		return nil, err
	}

	logger.SVCBroadcasts.InfoContext(ctx, "broadcast.done",
		"broadcast_id", job.ID,
		"target", target,
		"sent", sent,
		"failed", failed,
	)

	job.Status = status
	job.SentCount = sent
	job.FailCount = failed
	return job, nil
}
