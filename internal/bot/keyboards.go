package bot

import (
	tele "gopkg.in/telebot.v4"

	"github.com/chanceofrain/spotifam/core/telegram/keyboard"
	"github.com/chanceofrain/spotifam/internal/models"
)

// Callback keys routed by the callback router.
const (
	cbOrder      = "order_subscription"
	cbSelectPlan = "select_plan"
	cbPaid       = "payment_completed"
	cbBackToMenu = "back_to_menu"
	cbStartOver  = "start_over"
	cbFAQ        = "faq"
	cbSupport    = "support"
	cbMyOrders   = "my_orders"
)

func mainMenuKeyboard() *tele.ReplyMarkup {
	return keyboard.Inline(
		[]keyboard.InlineBtn{{Text: "🎵 Buy subscription", Data: cbOrder}},
		[]keyboard.InlineBtn{
			{Text: "📦 My orders", Data: cbMyOrders},
			{Text: "❓ FAQ", Data: cbFAQ},
		},
		[]keyboard.InlineBtn{{Text: "💬 Support", Data: cbSupport}},
	)
}

func plansKeyboard(plans []models.SubscriptionPlan) *tele.ReplyMarkup {
	rows := make([][]keyboard.InlineBtn, 0, len(plans)+1)
	for _, p := range plans {
		rows = append(rows, []keyboard.InlineBtn{{
			Text:    planButtonLabel(p),
			Data:    cbSelectPlan,
			Payload: formatPlanID(p.ID),
		}})
	}
	rows = append(rows, []keyboard.InlineBtn{{Text: "⬅️ Back", Data: cbBackToMenu}})
	return keyboard.Inline(rows...)
}

func paymentKeyboard(paymentURL string) *tele.ReplyMarkup {
	rows := [][]keyboard.InlineBtn{}
	if paymentURL != "" {
		rows = append(rows, []keyboard.InlineBtn{{Text: "💳 Pay", URL: paymentURL}})
	}
	rows = append(rows,
		[]keyboard.InlineBtn{{Text: "✅ I have paid", Data: cbPaid}},
		[]keyboard.InlineBtn{{Text: "🔄 Start over", Data: cbStartOver}},
	)
	return keyboard.Inline(rows...)
}

func backKeyboard() *tele.ReplyMarkup {
	return keyboard.Row(keyboard.InlineBtn{Text: "⬅️ Back to menu", Data: cbBackToMenu})
}
