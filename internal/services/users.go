package services

import (
	"context"
	"fmt"

	"github.com/chanceofrain/spotifam/core/logger"
	"github.com/chanceofrain/spotifam/internal/models"
)

// UserService registers users on contact and answers audience questions.
type UserService struct {
	users UserStore
}

func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

// Touch upserts the user on any interaction and refreshes last_activity.
func (s *UserService) Touch(ctx context.Context, telegramID int64, username, firstName, lastName string) (*models.User, error) {
	u, err := s.users.Upsert(ctx, telegramID, username, firstName, lastName)
	if err != nil {
		return nil, fmt.Errorf("touch user %d: %w", telegramID, err)
	}
	logger.SVCUsers.DebugContext(ctx, "user.touched",
		"user_id", u.ID,
		"telegram_id", telegramID,
	)
	return u, nil
}

// IsBanned reports whether the Telegram account is blocked from purchasing.
func (s *UserService) IsBanned(ctx context.Context, telegramID int64) (bool, error) {
	u, err := s.users.ByTelegramID(ctx, telegramID)
	if err != nil {
		return false, err
	}
	return u.IsBanned, nil
}
