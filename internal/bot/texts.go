package bot

import (
	"fmt"
	"strings"

	"github.com/chanceofrain/spotifam/core/telegram/format"
	"github.com/chanceofrain/spotifam/internal/models"
	"github.com/chanceofrain/spotifam/internal/storage"
)

const defaultWelcome = "Welcome! This bot sells slots in a Spotify Premium family subscription. " +
	"Pick a plan, send your Spotify account credentials and pay the invoice. " +
	"Your slot is activated within 24 hours after payment."

const faqText = `*FAQ*

*How does it work?*
You buy a slot in a Spotify family subscription. After payment we add your account to the family within 24 hours.

*Is my account safe?*
We only need your login to send the family invite. You can change your password right after activation.

*What if my subscription stops working?*
Contact support and we will move you to another family slot for the remaining period.`

const (
	textChoosePlan  = "Choose a subscription plan:"
	textAskAccount  = "Send your Spotify account as `login:password` in one message."
	textBadFormat   = "That does not look right. Send your account as `login:password`, for example `user@mail.com:secret123`."
	textTooShort    = "Login and password must each be at least 3 characters. Try again as `login:password`."
	textUnknownText = "I did not understand that. Use the menu below or /start to begin."
	textBanned      = "Your account is blocked. Contact support if you believe this is a mistake."
	textOrderLost   = "I lost track of your order. Please start over with /start."
)

func planButtonLabel(p models.SubscriptionPlan) string {
	return fmt.Sprintf("%s — %d ₽", p.Name, p.PriceRub)
}

func paymentText(o *models.Order) string {
	url := ""
	if o.PaymentURL.Valid {
		url = o.PaymentURL.String
	}
	return fmt.Sprintf(
		"Order *%s* is ready.\n\nAmount: *%d ₽*\n\nPay here: %s\n\nPress the button below once you have paid.",
		o.Public, o.AmountRub, url,
	)
}

func paidText(o *models.Order) string {
	return fmt.Sprintf(
		"Thanks! Order *%s* is marked as paid.\n\nYour slot will be activated within 24 hours. You will get a confirmation message here.",
		o.Public,
	)
}

func supportText(username string) string {
	username = strings.TrimPrefix(username, "@")
	if username == "" {
		return "Support is not configured yet. Please try again later."
	}
	return fmt.Sprintf("Questions or problems? Write to @%s and mention your order number.", format.EscapeMarkdown(username))
}

func ordersListText(orders []models.Order) string {
	if len(orders) == 0 {
		return "You have no orders yet. Press the button below to buy a subscription."
	}
	var b strings.Builder
	b.WriteString("*Your orders*\n\n")
	for _, o := range orders {
		fmt.Fprintf(&b, "`%s` — %d ₽ — %s\n", o.Public, o.AmountRub, statusLabel(o.Status))
	}
	return b.String()
}

func recentOrdersText(rows []storage.OrderRow) string {
	if len(rows) == 0 {
		return "No orders yet."
	}
	var b strings.Builder
	b.WriteString("*Recent orders*\n\n")
	for _, r := range rows {
		buyer := "—"
		if r.Username.Valid && r.Username.String != "" {
			buyer = "@" + format.EscapeMarkdown(r.Username.String)
		}
		fmt.Fprintf(&b, "`%s` — %s — %d ₽ — %s — %s\n",
			r.Public, r.PlanName, r.AmountRub, statusLabel(r.Status), buyer)
	}
	return b.String()
}

func statusLabel(s models.OrderStatus) string {
	switch s {
	case models.OrderCreated:
		return "created"
	case models.OrderAwaitingPayment:
		return "awaiting payment"
	case models.OrderPaid:
		return "paid"
	case models.OrderProcessing:
		return "processing"
	case models.OrderCompleted:
		return "completed"
	case models.OrderCancelled:
		return "cancelled"
	case models.OrderRefunded:
		return "refunded"
	default:
		return string(s)
	}
}
