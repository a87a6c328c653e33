package bot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tele "gopkg.in/telebot.v4"

	"github.com/chanceofrain/spotifam/core/telegram/callbacks"
	"github.com/chanceofrain/spotifam/core/telegram/helpers"
	"github.com/chanceofrain/spotifam/core/telegram/state"
	"github.com/chanceofrain/spotifam/internal/models"
	"github.com/chanceofrain/spotifam/internal/services"
)

func formatPlanID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// touch registers the interaction and returns the user row.
func (a *App) touch(c tele.Context) (*models.User, error) {
	sender := c.Sender()
	if sender == nil {
		return nil, fmt.Errorf("update without sender")
	}
	return a.users.Touch(helpers.LogCtx(c), sender.ID, sender.Username, sender.FirstName, sender.LastName)
}

func (a *App) handleStart(c tele.Context) error {
	user, err := a.touch(c)
	if err != nil {
		return err
	}
	a.states.Clear(user.TelegramID)

	welcome := a.settings.GetDefault(helpers.LogCtx(c), models.SettingWelcomeMessage, defaultWelcome)
	return helpers.SendText(c, welcome, mainMenuKeyboard())
}

// handleOrdersCommand gives the operator a quick view of the latest orders
// without opening the console.
func (a *App) handleOrdersCommand(c tele.Context) error {
	if _, err := a.touch(c); err != nil {
		return err
	}
	rows, err := a.orders.Recent(helpers.LogCtx(c), 10)
	if err != nil {
		return err
	}
	return helpers.SendMD(c, recentOrdersText(rows))
}

func (a *App) handleStatsCommand(c tele.Context) error {
	ctx := helpers.LogCtx(c)
	stats, err := a.stats.Dashboard(ctx)
	if err != nil {
		return err
	}
	var b strings.Builder
	b.WriteString("*Dashboard*\n\n")
	fmt.Fprintf(&b, "Users: %d (active 7d: %d)\n", stats.TotalUsers, stats.ActiveUsers7d)
	fmt.Fprintf(&b, "Orders: %d\n", stats.TotalOrders)
	for status, n := range stats.OrdersByStatus {
		fmt.Fprintf(&b, "  %s: %d\n", statusLabel(status), n)
	}
	fmt.Fprintf(&b, "Revenue: %d ₽\n", stats.TotalRevenueRub)
	return helpers.SendMD(c, b.String())
}

func (a *App) handleOrderSubscription(c tele.Context) error {
	user, err := a.touch(c)
	if err != nil {
		return err
	}
	if user.IsBanned {
		return helpers.SendText(c, textBanned)
	}

	plans, err := a.orders.Plans(helpers.LogCtx(c))
	if err != nil {
		return err
	}
	if len(plans) == 0 {
		return helpers.SendText(c, "No plans are available right now. Please check back later.", backKeyboard())
	}
	a.states.SetState(user.TelegramID, state.StateSelectingPlan)
	return helpers.EditOrSendMD(c, textChoosePlan, plansKeyboard(plans))
}

func (a *App) handleSelectPlan(c tele.Context) error {
	user, err := a.touch(c)
	if err != nil {
		return err
	}
	if user.IsBanned {
		return helpers.SendText(c, textBanned)
	}

	planID, err := strconv.ParseInt(callbacks.CallbackPayload(c), 10, 64)
	if err != nil {
		return helpers.SendText(c, textOrderLost)
	}

	ctx := helpers.LogCtx(c)
	order, _, err := a.orders.SelectPlan(ctx, user.ID, planID)
	if errors.Is(err, services.ErrPlanUnavailable) {
		return helpers.EditOrSendMD(c, "That plan is no longer available.", backKeyboard())
	}
	if err != nil {
		return err
	}

	a.states.SetOrderRef(user.TelegramID, order.Public)
	a.states.SetState(user.TelegramID, state.StateAwaitingCredentials)
	return helpers.EditOrSendMD(c, textAskAccount, backKeyboard())
}

// handleStaleSelection answers a plan button pressed outside the selection
// step, usually from an old message after the dialogue moved on.
func (a *App) handleStaleSelection(c tele.Context) error {
	if _, err := a.touch(c); err != nil {
		return err
	}
	return helpers.EditOrSendMD(c, textOrderLost, backKeyboard())
}

// handleCredentials consumes the next text message while the user is in the
// awaiting_credentials state.
func (a *App) handleCredentials(c tele.Context, s *state.Session) error {
	user, err := a.touch(c)
	if err != nil {
		return err
	}
	if s.OrderID == "" {
		a.states.Clear(user.TelegramID)
		return helpers.SendText(c, textOrderLost, mainMenuKeyboard())
	}

	order, err := a.orders.SubmitCredentials(helpers.LogCtx(c), user, s.OrderID, c.Text())
	switch {
	case errors.Is(err, services.ErrCredentialsFormat):
		return helpers.SendMD(c, textBadFormat)
	case errors.Is(err, services.ErrCredentialsTooShort):
		return helpers.SendMD(c, textTooShort)
	case err != nil:
		return err
	}

	a.states.SetState(user.TelegramID, state.StateAwaitingPayment)
	payURL := ""
	if order.PaymentURL.Valid {
		payURL = order.PaymentURL.String
	}
	return helpers.SendMD(c, paymentText(order), paymentKeyboard(payURL))
}

func (a *App) handlePaymentCompleted(c tele.Context) error {
	user, err := a.touch(c)
	if err != nil {
		return err
	}
	orderID := a.states.OrderRef(user.TelegramID)
	if orderID == "" {
		return helpers.EditOrSendMD(c, textOrderLost, backKeyboard())
	}

	order, err := a.orders.ConfirmPayment(helpers.LogCtx(c), user, orderID)
	if errors.Is(err, services.ErrOrderNotPayable) {
		return helpers.EditOrSendMD(c, "This order is not awaiting payment. Start over with /start.", backKeyboard())
	}
	if err != nil {
		return err
	}

	a.states.Clear(user.TelegramID)
	return helpers.EditOrSendMD(c, paidText(order), backKeyboard())
}

func (a *App) handleBackToMenu(c tele.Context) error {
	user, err := a.touch(c)
	if err != nil {
		return err
	}
	a.states.Clear(user.TelegramID)
	welcome := a.settings.GetDefault(helpers.LogCtx(c), models.SettingWelcomeMessage, defaultWelcome)
	return helpers.EditOrSendMD(c, welcome, mainMenuKeyboard())
}

func (a *App) handleMyOrders(c tele.Context) error {
	user, err := a.touch(c)
	if err != nil {
		return err
	}
	orders, err := a.orders.RecentForUser(helpers.LogCtx(c), user.ID, 10)
	if err != nil {
		return err
	}
	return helpers.EditOrSendMD(c, ordersListText(orders), backKeyboard())
}

func (a *App) handleFAQ(c tele.Context) error {
	if _, err := a.touch(c); err != nil {
		return err
	}
	return helpers.EditOrSendMD(c, faqText, backKeyboard())
}

func (a *App) handleSupport(c tele.Context) error {
	if _, err := a.touch(c); err != nil {
		return err
	}
	username := a.settings.GetDefault(helpers.LogCtx(c), models.SettingSupportUsername, "")
	return helpers.EditOrSendMD(c, supportText(username), backKeyboard())
}

// handleUnknownText answers free text from idle users.
func (a *App) handleUnknownText(c tele.Context) error {
	if _, err := a.touch(c); err != nil {
		return err
	}
	return helpers.SendText(c, textUnknownText, mainMenuKeyboard())
}
