package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/chanceofrain/spotifam/core/logger"
	"github.com/chanceofrain/spotifam/internal/models"
	"github.com/chanceofrain/spotifam/internal/payment"
	"github.com/chanceofrain/spotifam/internal/storage"
)

// Credential validation failures.
var (
	ErrCredentialsFormat   = errors.New("credentials must be in login:password format")
	ErrCredentialsTooShort = errors.New("login and password must each be at least 3 characters")
	ErrPlanUnavailable     = errors.New("subscription plan is not available")
	ErrOrderNotPayable     = errors.New("order is not awaiting payment")
)

// AdminNotifier delivers order events to the operator. Implementations must
// be best-effort: a notification failure never fails the order operation.
type AdminNotifier interface {
	OrderAwaitingPayment(ctx context.Context, o *models.Order, plan *models.SubscriptionPlan, user *models.User)
	OrderPaid(ctx context.Context, o *models.Order, user *models.User)
}

// OrderService drives the purchase flow.
type OrderService struct {
	orders   OrderStore
	plans    PlanStore
	payments PaymentStore
	links    payment.URLBuilder
	notifier AdminNotifier
}

func NewOrderService(orders OrderStore, plans PlanStore, payments PaymentStore, links payment.URLBuilder, notifier AdminNotifier) *OrderService {
	return &OrderService{
		orders:   orders,
		plans:    plans,
		payments: payments,
		links:    links,
		notifier: notifier,
	}
}

// Plans lists the purchasable subscription plans.
func (s *OrderService) Plans(ctx context.Context) ([]models.SubscriptionPlan, error) {
	return s.plans.Active(ctx)
}

// SelectPlan creates a new order for the chosen plan in the created state.
// The amount is snapshotted from the plan so later price edits do not move
// existing orders.
func (s *OrderService) SelectPlan(ctx context.Context, userID, planID int64) (*models.Order, *models.SubscriptionPlan, error) {
	plan, err := s.plans.ByID(ctx, planID)
	if err != nil {
		return nil, nil, ErrPlanUnavailable
	}
	if !plan.IsActive {
		return nil, nil, ErrPlanUnavailable
	}

	publicID, err := s.orders.NextPublicID(ctx)
	if err != nil {
		return nil, nil, err
	}
	order, err := s.orders.Create(ctx, publicID, userID, planID, plan.PriceRub)
	if err != nil {
		return nil, nil, err
	}
	logger.SVCOrders.InfoContext(ctx, "order.created",
		"order_id", order.Public,
		"plan_id", planID,
		"amount", order.AmountRub,
	)
	return order, plan, nil
}

// ValidateCredentials checks the "login:password" pair. The password may
// itself contain colons; only the first one splits.
func ValidateCredentials(raw string) (login, password string, err error) {
	raw = strings.TrimSpace(raw)
	i := strings.Index(raw, ":")
	if i < 0 {
		return "", "", ErrCredentialsFormat
	}
	login = strings.TrimSpace(raw[:i])
	password = strings.TrimSpace(raw[i+1:])
	if len(login) < 3 || len(password) < 3 {
		return "", "", ErrCredentialsTooShort
	}
	return login, password, nil
}

// SubmitCredentials stores the validated Spotify pair, attaches a payment
// link and moves the order to awaiting_payment. When the payment provider is
// not configured the placeholder gateway link is used instead. The user is
// passed through to the operator notification.
func (s *OrderService) SubmitCredentials(ctx context.Context, user *models.User, orderPublicID, raw string) (*models.Order, error) {
	login, password, err := ValidateCredentials(raw)
	if err != nil {
		return nil, err
	}

	order, err := s.orders.ByPublicID(ctx, orderPublicID)
	if err != nil {
		return nil, err
	}

	payURL, err := s.links.Build(order.Public, order.AmountRub)
	if err != nil {
		if !errors.Is(err, payment.ErrNotConfigured) {
			logger.SVCPayments.WarnContext(ctx, "payment.link.failed",
				"order_id", order.Public, "error", err)
		}
		payURL = payment.FallbackURL(order.Public, order.AmountRub)
	}

	if err := s.orders.SetCredentials(ctx, order.ID, login, password, payURL); err != nil {
		return nil, err
	}
	if _, err := s.payments.Create(ctx, order.ID, order.AmountRub, "digiseller", models.PaymentPending); err != nil {
		return nil, err
	}

	order, err = s.orders.ByPublicID(ctx, orderPublicID)
	if err != nil {
		return nil, err
	}

	logger.SVCOrders.InfoContext(ctx, "order.awaiting_payment",
		"order_id", order.Public,
		"amount", order.AmountRub,
	)

	if s.notifier != nil {
		if plan, perr := s.plans.ByID(ctx, order.PlanID); perr == nil {
			s.notifier.OrderAwaitingPayment(ctx, order, plan, user)
		}
	}
	return order, nil
}

// ConfirmPayment marks the order paid after the user reports payment.
// Repeated confirmations of a paid order set the status to paid again and
// re-send the operator notification; the duplicate message is how the
// operator learns the user is still waiting. Orders already in processing
// or completed are returned unchanged.
func (s *OrderService) ConfirmPayment(ctx context.Context, user *models.User, orderPublicID string) (*models.Order, error) {
	order, err := s.orders.ByPublicID(ctx, orderPublicID)
	if err != nil {
		return nil, err
	}
	switch order.Status {
	case models.OrderProcessing, models.OrderCompleted:
		return order, nil
	case models.OrderAwaitingPayment, models.OrderPaid:
	default:
		return nil, ErrOrderNotPayable
	}

	if err := s.orders.SetStatus(ctx, order.ID, models.OrderPaid); err != nil {
		return nil, err
	}
	if p, err := s.payments.LatestByOrder(ctx, order.ID); err == nil {
		if err := s.payments.SetStatus(ctx, p.ID, models.PaymentCompleted); err != nil {
			logger.SVCPayments.WarnContext(ctx, "payment.update.failed",
				"order_id", order.Public, "payment_id", p.ID, "error", err)
		}
	}

	order, err = s.orders.ByPublicID(ctx, orderPublicID)
	if err != nil {
		return nil, err
	}
	logger.SVCOrders.InfoContext(ctx, "order.paid",
		"order_id", order.Public,
		"amount", order.AmountRub,
	)
	if s.notifier != nil {
		s.notifier.OrderPaid(ctx, order, user)
	}
	return order, nil
}

// SetStatus lets the console override an order status with no transition
// checks. The status value itself must still be known.
func (s *OrderService) SetStatus(ctx context.Context, orderID int64, status models.OrderStatus) error {
	if !status.Valid() {
		return fmt.Errorf("unknown order status %q", status)
	}
	return s.orders.SetStatus(ctx, orderID, status)
}

// Recent returns the latest orders across all users for the operator's
// order overview.
func (s *OrderService) Recent(ctx context.Context, limit int) ([]storage.OrderRow, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.orders.Recent(ctx, limit)
}

// RecentForUser returns the user's latest orders.
func (s *OrderService) RecentForUser(ctx context.Context, userID int64, limit int) ([]models.Order, error) {
	if limit <= 0 {
		limit = 5
	}
	return s.orders.RecentByUser(ctx, userID, limit)
}

// Get fetches an order by public ID.
func (s *OrderService) Get(ctx context.Context, orderPublicID string) (*models.Order, error) {
	return s.orders.ByPublicID(ctx, orderPublicID)
}
