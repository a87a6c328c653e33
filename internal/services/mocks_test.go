package services

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/chanceofrain/spotifam/internal/models"
	"github.com/chanceofrain/spotifam/internal/storage"
)

type OrderStoreMock struct{ mock.Mock }

func (m *OrderStoreMock) NextPublicID(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *OrderStoreMock) Create(ctx context.Context, publicID string, userID, planID int64, amountRub int) (*models.Order, error) {
	args := m.Called(ctx, publicID, userID, planID, amountRub)
	if o := args.Get(0); o != nil {
		return o.(*models.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *OrderStoreMock) ByPublicID(ctx context.Context, publicID string) (*models.Order, error) {
	args := m.Called(ctx, publicID)
	if o := args.Get(0); o != nil {
		return o.(*models.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *OrderStoreMock) ByID(ctx context.Context, id int64) (*models.Order, error) {
	args := m.Called(ctx, id)
	if o := args.Get(0); o != nil {
		return o.(*models.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *OrderStoreMock) SetCredentials(ctx context.Context, id int64, login, password, paymentURL string) error {
	return m.Called(ctx, id, login, password, paymentURL).Error(0)
}

func (m *OrderStoreMock) SetStatus(ctx context.Context, id int64, status models.OrderStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *OrderStoreMock) Recent(ctx context.Context, limit int) ([]storage.OrderRow, error) {
	args := m.Called(ctx, limit)
	if o := args.Get(0); o != nil {
		return o.([]storage.OrderRow), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *OrderStoreMock) RecentByUser(ctx context.Context, userID int64, limit int) ([]models.Order, error) {
	args := m.Called(ctx, userID, limit)
	if o := args.Get(0); o != nil {
		return o.([]models.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *OrderStoreMock) CountByStatus(ctx context.Context) (map[models.OrderStatus]int, error) {
	args := m.Called(ctx)
	if o := args.Get(0); o != nil {
		return o.(map[models.OrderStatus]int), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *OrderStoreMock) DayStats(ctx context.Context, from, to time.Time) (int, int, error) {
	args := m.Called(ctx, from, to)
	return args.Int(0), args.Int(1), args.Error(2)
}

func (m *OrderStoreMock) TotalRevenue(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type PlanStoreMock struct{ mock.Mock }

func (m *PlanStoreMock) Active(ctx context.Context) ([]models.SubscriptionPlan, error) {
	args := m.Called(ctx)
	if p := args.Get(0); p != nil {
		return p.([]models.SubscriptionPlan), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *PlanStoreMock) ByID(ctx context.Context, id int64) (*models.SubscriptionPlan, error) {
	args := m.Called(ctx, id)
	if p := args.Get(0); p != nil {
		return p.(*models.SubscriptionPlan), args.Error(1)
	}
	return nil, args.Error(1)
}

type PaymentStoreMock struct{ mock.Mock }

func (m *PaymentStoreMock) Create(ctx context.Context, orderID int64, amountRub int, provider string, status models.PaymentStatus) (*models.Payment, error) {
	args := m.Called(ctx, orderID, amountRub, provider, status)
	if p := args.Get(0); p != nil {
		return p.(*models.Payment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *PaymentStoreMock) LatestByOrder(ctx context.Context, orderID int64) (*models.Payment, error) {
	args := m.Called(ctx, orderID)
	if p := args.Get(0); p != nil {
		return p.(*models.Payment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *PaymentStoreMock) SetStatus(ctx context.Context, id int64, status models.PaymentStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

type UserStoreMock struct{ mock.Mock }

func (m *UserStoreMock) Upsert(ctx context.Context, telegramID int64, username, firstName, lastName string) (*models.User, error) {
	args := m.Called(ctx, telegramID, username, firstName, lastName)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserStoreMock) ByTelegramID(ctx context.Context, telegramID int64) (*models.User, error) {
	args := m.Called(ctx, telegramID)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserStoreMock) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *UserStoreMock) CountActiveSince(ctx context.Context, t time.Time) (int, error) {
	args := m.Called(ctx, t)
	return args.Int(0), args.Error(1)
}

func (m *UserStoreMock) RecipientIDs(ctx context.Context, target string) ([]int64, error) {
	args := m.Called(ctx, target)
	if ids := args.Get(0); ids != nil {
		return ids.([]int64), args.Error(1)
	}
	return nil, args.Error(1)
}

type BroadcastStoreMock struct{ mock.Mock }

func (m *BroadcastStoreMock) Create(ctx context.Context, text, target, createdBy string) (*models.BroadcastMessage, error) {
	args := m.Called(ctx, text, target, createdBy)
	if b := args.Get(0); b != nil {
		return b.(*models.BroadcastMessage), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *BroadcastStoreMock) MarkSending(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *BroadcastStoreMock) Finish(ctx context.Context, id int64, status models.BroadcastStatus, sent, failed int) error {
	return m.Called(ctx, id, status, sent, failed).Error(0)
}

type NotifierMock struct{ mock.Mock }

func (m *NotifierMock) OrderAwaitingPayment(ctx context.Context, o *models.Order, plan *models.SubscriptionPlan, user *models.User) {
	m.Called(ctx, o, plan, user)
}

func (m *NotifierMock) OrderPaid(ctx context.Context, o *models.Order, user *models.User) {
	m.Called(ctx, o, user)
}

type MessengerMock struct{ mock.Mock }

func (m *MessengerMock) SendTo(chatID int64, text string) error {
	return m.Called(chatID, text).Error(0)
}
