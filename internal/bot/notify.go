package bot

import (
	"context"
	"fmt"
	"sync"

	tele "gopkg.in/telebot.v4"

	"github.com/chanceofrain/spotifam/core/logger"
	"github.com/chanceofrain/spotifam/core/telegram/helpers"
	"github.com/chanceofrain/spotifam/internal/models"
)

// Notifier pushes order events to the operator chat and delivers broadcast
// messages. The bot instance is attached after startup; until then every
// delivery is a logged no-op.
type Notifier struct {
	adminID int64

	mu  sync.RWMutex
	bot *tele.Bot
}

func NewNotifier(adminID int64) *Notifier {
	return &Notifier{adminID: adminID}
}

// Attach installs the running bot instance.
func (n *Notifier) Attach(bot *tele.Bot) {
	n.mu.Lock()
	n.bot = bot
	n.mu.Unlock()
}

func (n *Notifier) getBot() *tele.Bot {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.bot
}

func describeUser(user *models.User) string {
	if user == nil {
		return "unknown"
	}
	return fmt.Sprintf("%s (id %d)", user.DisplayName(), user.TelegramID)
}

func orderAwaitingPaymentText(o *models.Order, plan *models.SubscriptionPlan, user *models.User) string {
	return fmt.Sprintf(
		"🆕 New order %s\n\nUser: %s\nPlan: %s\nAmount: %d ₽\nSpotify login: %s\nPayment: %s",
		o.Public, describeUser(user), plan.Name, o.AmountRub,
		o.SpotifyLogin.String, o.PaymentURL.String,
	)
}

func orderPaidText(o *models.Order, user *models.User) string {
	return fmt.Sprintf(
		"💰 Order %s reported as PAID\n\nUser: %s\nAmount: %d ₽\nSpotify login: %s\nPayment: %s\n\nVerify the payment and activate the slot.",
		o.Public, describeUser(user), o.AmountRub,
		o.SpotifyLogin.String, o.PaymentURL.String,
	)
}

// OrderAwaitingPayment tells the operator a new order has credentials and a
// payment link. Failures are logged and swallowed; the purchase flow must
// not depend on the operator being reachable.
func (n *Notifier) OrderAwaitingPayment(ctx context.Context, o *models.Order, plan *models.SubscriptionPlan, user *models.User) {
	bot := n.getBot()
	if bot == nil {
		logger.TG.WarnContext(ctx, "notify.skipped", "order_id", o.Public)
		return
	}
	if err := helpers.NotifyUser(bot, n.adminID, orderAwaitingPaymentText(o, plan, user)); err != nil {
		logger.TG.WarnContext(ctx, "notify.failed", "order_id", o.Public, "error", err)
	}
}

// OrderPaid tells the operator the user reported payment. The full order
// detail is repeated here so the operator can activate the slot from this
// one message.
func (n *Notifier) OrderPaid(ctx context.Context, o *models.Order, user *models.User) {
	bot := n.getBot()
	if bot == nil {
		logger.TG.WarnContext(ctx, "notify.skipped", "order_id", o.Public)
		return
	}
	if err := helpers.NotifyUser(bot, n.adminID, orderPaidText(o, user)); err != nil {
		logger.TG.WarnContext(ctx, "notify.failed", "order_id", o.Public, "error", err)
	}
}

// SendTo delivers one broadcast message to a chat.
func (n *Notifier) SendTo(chatID int64, text string) error {
	bot := n.getBot()
	if bot == nil {
		return fmt.Errorf("bot is not running")
	}
	_, err := bot.Send(&tele.Chat{ID: chatID}, text)
	return err
}
