package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chanceofrain/spotifam/core/telegram/state"
	"github.com/chanceofrain/spotifam/internal/models"
	"github.com/chanceofrain/spotifam/internal/payment"
	"github.com/chanceofrain/spotifam/internal/storage"
)

// Stateful in-memory stores so one test can walk the whole purchase and
// observe every intermediate row, unlike the per-call mocks.

type memPlans struct{ plans []models.SubscriptionPlan }

func (m *memPlans) Active(context.Context) ([]models.SubscriptionPlan, error) {
	return m.plans, nil
}

func (m *memPlans) ByID(_ context.Context, id int64) (*models.SubscriptionPlan, error) {
	for i := range m.plans {
		if m.plans[i].ID == id {
			return &m.plans[i], nil
		}
	}
	return nil, storage.ErrNotFound
}

type memOrders struct {
	rows   []*models.Order
	nextID int64
}

func (m *memOrders) NextPublicID(context.Context) (string, error) {
	return storage.MintOrderID(len(m.rows) + 1), nil
}

func (m *memOrders) Create(_ context.Context, publicID string, userID, planID int64, amountRub int) (*models.Order, error) {
	m.nextID++
	o := &models.Order{
		ID: m.nextID, Public: publicID, UserID: userID, PlanID: planID,
		AmountRub: amountRub, Status: models.OrderCreated,
	}
	m.rows = append(m.rows, o)
	return o, nil
}

func (m *memOrders) ByPublicID(_ context.Context, publicID string) (*models.Order, error) {
	for _, o := range m.rows {
		if o.Public == publicID {
			return o, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (m *memOrders) ByID(_ context.Context, id int64) (*models.Order, error) {
	for _, o := range m.rows {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (m *memOrders) SetCredentials(ctx context.Context, id int64, login, password, paymentURL string) error {
	o, err := m.ByID(ctx, id)
	if err != nil {
		return err
	}
	o.SpotifyLogin = sql.NullString{String: login, Valid: true}
	o.SpotifyPassword = sql.NullString{String: password, Valid: true}
	o.PaymentURL = sql.NullString{String: paymentURL, Valid: true}
	o.Status = models.OrderAwaitingPayment
	return nil
}

func (m *memOrders) SetStatus(ctx context.Context, id int64, status models.OrderStatus) error {
	o, err := m.ByID(ctx, id)
	if err != nil {
		return err
	}
	o.Status = status
	return nil
}

func (m *memOrders) Recent(context.Context, int) ([]storage.OrderRow, error) { return nil, nil }

func (m *memOrders) RecentByUser(context.Context, int64, int) ([]models.Order, error) {
	return nil, nil
}

func (m *memOrders) CountByStatus(context.Context) (map[models.OrderStatus]int, error) {
	return nil, nil
}

func (m *memOrders) DayStats(context.Context, time.Time, time.Time) (int, int, error) {
	return 0, 0, nil
}

func (m *memOrders) TotalRevenue(context.Context) (int, error) { return 0, nil }

type memPayments struct{ rows []*models.Payment }

func (m *memPayments) Create(_ context.Context, orderID int64, amountRub int, provider string, status models.PaymentStatus) (*models.Payment, error) {
	p := &models.Payment{
		ID: int64(len(m.rows) + 1), OrderID: orderID,
		AmountRub: amountRub, Provider: provider, Status: status,
	}
	m.rows = append(m.rows, p)
	return p, nil
}

func (m *memPayments) LatestByOrder(_ context.Context, orderID int64) (*models.Payment, error) {
	for i := len(m.rows) - 1; i >= 0; i-- {
		if m.rows[i].OrderID == orderID {
			return m.rows[i], nil
		}
	}
	return nil, storage.ErrNotFound
}

func (m *memPayments) SetStatus(_ context.Context, id int64, status models.PaymentStatus) error {
	for _, p := range m.rows {
		if p.ID == id {
			p.Status = status
			return nil
		}
	}
	return storage.ErrNotFound
}

// recordingNotifier snapshots the orders handed to the operator channel.
type recordingNotifier struct {
	awaiting []models.Order
	paid     []models.Order
}

func (n *recordingNotifier) OrderAwaitingPayment(_ context.Context, o *models.Order, _ *models.SubscriptionPlan, _ *models.User) {
	n.awaiting = append(n.awaiting, *o)
}

func (n *recordingNotifier) OrderPaid(_ context.Context, o *models.Order, _ *models.User) {
	n.paid = append(n.paid, *o)
}

// TestPurchaseFlowEndToEnd walks plan selection, credentials intake and
// payment confirmation in order, through the same conversation state
// transitions the bot drives.
func TestPurchaseFlowEndToEnd(t *testing.T) {
	ctx := context.Background()
	plans := &memPlans{plans: []models.SubscriptionPlan{
		{ID: 1, Code: "1_month", Name: "1 month", DurationMonths: 1, PriceRub: 150, IsActive: true},
		{ID: 2, Code: "3_months", Name: "3 months", DurationMonths: 3, PriceRub: 370, IsActive: true},
		{ID: 3, Code: "6_months", Name: "6 months", DurationMonths: 6, PriceRub: 690, IsActive: true},
		{ID: 4, Code: "12_months", Name: "12 months", DurationMonths: 12, PriceRub: 1300, IsActive: true},
	}}
	orders := &memOrders{}
	payments := &memPayments{}
	notifier := &recordingNotifier{}
	svc := NewOrderService(orders, plans, payments, payment.URLBuilder{}, notifier)

	user := &models.User{ID: 10, TelegramID: 777, Username: sql.NullString{String: "buyer", Valid: true}}
	states := state.NewManager()

	// /start shows the menu, the order button moves to plan selection
	available, err := svc.Plans(ctx)
	require.NoError(t, err)
	require.Len(t, available, 4)
	states.SetState(user.TelegramID, state.StateSelectingPlan)

	// the 3_months button creates the order with the snapshotted price
	order, plan, err := svc.SelectPlan(ctx, user.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, "ORDER_00001", order.Public)
	assert.Equal(t, 370, order.AmountRub)
	assert.Equal(t, "3_months", plan.Code)
	assert.Equal(t, models.OrderCreated, order.Status)
	states.SetOrderRef(user.TelegramID, order.Public)
	states.SetState(user.TelegramID, state.StateAwaitingCredentials)

	// the credentials message attaches the account and a payment link
	order, err = svc.SubmitCredentials(ctx, user, order.Public, "user@mail.com:pw123456")
	require.NoError(t, err)
	assert.Equal(t, models.OrderAwaitingPayment, order.Status)
	assert.Equal(t, "user@mail.com", order.SpotifyLogin.String)
	assert.NotEmpty(t, order.PaymentURL.String)
	require.Len(t, notifier.awaiting, 1)
	states.SetState(user.TelegramID, state.StateAwaitingPayment)

	// the paid button confirms; the operator message carries the full
	// order detail including the credential login
	order, err = svc.ConfirmPayment(ctx, user, order.Public)
	require.NoError(t, err)
	assert.Equal(t, models.OrderPaid, order.Status)
	require.Len(t, notifier.paid, 1)
	assert.Equal(t, "ORDER_00001", notifier.paid[0].Public)
	assert.Equal(t, 370, notifier.paid[0].AmountRub)
	assert.Equal(t, "user@mail.com", notifier.paid[0].SpotifyLogin.String)
	assert.NotEmpty(t, notifier.paid[0].PaymentURL.String)

	p, err := payments.LatestByOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentCompleted, p.Status)
	states.Clear(user.TelegramID)

	// a second press after the dialogue ended still pings the operator
	_, err = svc.ConfirmPayment(ctx, user, order.Public)
	require.NoError(t, err)
	assert.Len(t, notifier.paid, 2)
}
