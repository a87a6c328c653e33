// Package services contains the business logic between the Telegram/HTTP
// surfaces and the storage layer.
package services

import (
	"context"
	"time"

	"github.com/chanceofrain/spotifam/internal/models"
	"github.com/chanceofrain/spotifam/internal/storage"
)

// OrderStore is the slice of the order repository the services use.
type OrderStore interface {
	NextPublicID(ctx context.Context) (string, error)
	Create(ctx context.Context, publicID string, userID, planID int64, amountRub int) (*models.Order, error)
	ByPublicID(ctx context.Context, publicID string) (*models.Order, error)
	ByID(ctx context.Context, id int64) (*models.Order, error)
	SetCredentials(ctx context.Context, id int64, login, password, paymentURL string) error
	SetStatus(ctx context.Context, id int64, status models.OrderStatus) error
	Recent(ctx context.Context, limit int) ([]storage.OrderRow, error)
	RecentByUser(ctx context.Context, userID int64, limit int) ([]models.Order, error)
	CountByStatus(ctx context.Context) (map[models.OrderStatus]int, error)
	DayStats(ctx context.Context, from, to time.Time) (orders, revenueRub int, err error)
	TotalRevenue(ctx context.Context) (int, error)
}

// PlanStore resolves subscription plans.
type PlanStore interface {
	Active(ctx context.Context) ([]models.SubscriptionPlan, error)
	ByID(ctx context.Context, id int64) (*models.SubscriptionPlan, error)
}

// PaymentStore records payment attempts.
type PaymentStore interface {
	Create(ctx context.Context, orderID int64, amountRub int, provider string, status models.PaymentStatus) (*models.Payment, error)
	LatestByOrder(ctx context.Context, orderID int64) (*models.Payment, error)
	SetStatus(ctx context.Context, id int64, status models.PaymentStatus) error
}

// UserStore is the slice of the user repository the services use.
type UserStore interface {
	Upsert(ctx context.Context, telegramID int64, username, firstName, lastName string) (*models.User, error)
	ByTelegramID(ctx context.Context, telegramID int64) (*models.User, error)
	Count(ctx context.Context) (int, error)
	CountActiveSince(ctx context.Context, t time.Time) (int, error)
	RecipientIDs(ctx context.Context, target string) ([]int64, error)
}

// BroadcastStore persists broadcast jobs.
type BroadcastStore interface {
	Create(ctx context.Context, text, target, createdBy string) (*models.BroadcastMessage, error)
	MarkSending(ctx context.Context, id int64) error
	Finish(ctx context.Context, id int64, status models.BroadcastStatus, sent, failed int) error
}

// compile-time wiring checks against the sqlx repositories
var (
	_ OrderStore     = (*storage.OrderRepo)(nil)
	_ PlanStore      = (*storage.PlanRepo)(nil)
	_ PaymentStore   = (*storage.PaymentRepo)(nil)
	_ UserStore      = (*storage.UserRepo)(nil)
	_ BroadcastStore = (*storage.BroadcastRepo)(nil)
)
