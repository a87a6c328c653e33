package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chanceofrain/spotifam/internal/models"
)

func TestBroadcastCountsFailuresSeparately(t *testing.T) {
	ctx := context.Background()
	store := new(BroadcastStoreMock)
	users := new(UserStoreMock)
	messenger := new(MessengerMock)

	job := &models.BroadcastMessage{ID: 1, Text: "hello", Target: models.BroadcastTargetAll}
	store.On("Create", ctx, "hello", models.BroadcastTargetAll, "admin").Return(job, nil)
	store.On("MarkSending", ctx, int64(1)).Return(nil)
	users.On("RecipientIDs", ctx, models.BroadcastTargetAll).Return([]int64{100, 200, 300}, nil)
	messenger.On("SendTo", int64(100), "hello").Return(nil)
	messenger.On("SendTo", int64(200), "hello").Return(errors.New("blocked by the user"))
	messenger.On("SendTo", int64(300), "hello").Return(nil)
	store.On("Finish", ctx, int64(1), models.BroadcastCompleted, 2, 1).Return(nil)

	svc := NewBroadcastService(store, users, messenger)
	got, err := svc.Send(ctx, "hello", models.BroadcastTargetAll, "admin")

	assert.NoError(t, err)
	assert.Equal(t, 2, got.SentCount)
	assert.Equal(t, 1, got.FailCount)
	assert.Equal(t, models.BroadcastCompleted, got.Status)
	store.AssertExpectations(t)
	messenger.AssertExpectations(t)
}

func TestBroadcastAllFailedMarksFailed(t *testing.T) {
	ctx := context.Background()
	store := new(BroadcastStoreMock)
	users := new(UserStoreMock)
	messenger := new(MessengerMock)

	job := &models.BroadcastMessage{ID: 2, Text: "promo", Target: models.BroadcastTargetActive}
	store.On("Create", ctx, "promo", models.BroadcastTargetActive, "admin").Return(job, nil)
	store.On("MarkSending", ctx, int64(2)).Return(nil)
	users.On("RecipientIDs", ctx, models.BroadcastTargetActive).Return([]int64{100}, nil)
	messenger.On("SendTo", int64(100), "promo").Return(errors.New("chat not found"))
	store.On("Finish", ctx, int64(2), models.BroadcastFailed, 0, 1).Return(nil)

	svc := NewBroadcastService(store, users, messenger)
	got, err := svc.Send(ctx, "promo", models.BroadcastTargetActive, "admin")

	assert.NoError(t, err)
	assert.Equal(t, models.BroadcastFailed, got.Status)
}

func TestBroadcastRejectsBadInput(t *testing.T) {
	svc := NewBroadcastService(new(BroadcastStoreMock), new(UserStoreMock), new(MessengerMock))

	_, err := svc.Send(context.Background(), "   ", models.BroadcastTargetAll, "admin")
	assert.ErrorIs(t, err, ErrBroadcastEmpty)

	_, err = svc.Send(context.Background(), "hello", "everyone", "admin")
	assert.ErrorIs(t, err, ErrBroadcastTarget)
}
