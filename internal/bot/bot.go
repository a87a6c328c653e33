// Package bot wires the Telegram conversation for selling subscription
// slots: plan selection, credentials intake, payment confirmation and the
// operator notifications around them.
package bot

import (
	"context"

	"github.com/chanceofrain/spotifam/core/config"
	"github.com/chanceofrain/spotifam/core/telegram"
	"github.com/chanceofrain/spotifam/core/telegram/commands"
	"github.com/chanceofrain/spotifam/core/telegram/middleware"
	"github.com/chanceofrain/spotifam/core/telegram/state"
	"github.com/chanceofrain/spotifam/internal/services"
	"github.com/chanceofrain/spotifam/internal/storage"
)

// App holds the bot-facing services and conversation state.
type App struct {
	cfg      *config.Config
	users    *services.UserService
	orders   *services.OrderService
	stats    *services.StatsService
	settings *storage.SettingsRepo
	notifier *Notifier

	states   *state.Manager
	handlers *state.HandlerSet
	registry *telegram.Registry
}

func New(cfg *config.Config, users *services.UserService, orders *services.OrderService, stats *services.StatsService, settings *storage.SettingsRepo, notifier *Notifier) *App {
	a := &App{
		cfg:      cfg,
		users:    users,
		orders:   orders,
		stats:    stats,
		settings: settings,
		notifier: notifier,
		states:   state.NewManager(),
		handlers: state.NewHandlerSet(),
		registry: telegram.NewRegistry(),
	}
	a.wireRoutes()
	return a
}

func (a *App) wireRoutes() {
	a.registry.RegisterCommand("start", commands.Command{
		Handler:     a.handleStart,
		Description: "Main menu",
	})
	a.registry.RegisterCommand("orders", commands.Command{
		Handler:   a.handleOrdersCommand,
		AdminOnly: true,
		Hidden:    true,
	})
	a.registry.RegisterCommand("faq", commands.Command{
		Handler:     a.handleFAQ,
		Description: "Frequently asked questions",
	})
	a.registry.RegisterCommand("stats", commands.Command{
		Handler:   a.handleStatsCommand,
		AdminOnly: true,
		Hidden:    true,
	})

	a.registry.RegisterCallback(cbOrder, a.handleOrderSubscription)
	// Plan buttons on stale messages are rejected unless the user is at the
	// selection step. The paid button stays unguarded: repeat presses after
	// the state is cleared must still re-confirm and re-notify.
	a.registry.RegisterCallback(cbSelectPlan,
		middleware.RequireState(a.states, state.StateSelectingPlan, a.handleStaleSelection)(a.handleSelectPlan))
	a.registry.RegisterCallback(cbPaid, a.handlePaymentCompleted)
	a.registry.RegisterCallback(cbBackToMenu, a.handleBackToMenu)
	a.registry.RegisterCallback(cbStartOver, a.handleBackToMenu)
	a.registry.RegisterCallback(cbMyOrders, a.handleMyOrders)
	a.registry.RegisterCallback(cbFAQ, a.handleFAQ)
	a.registry.RegisterCallback(cbSupport, a.handleSupport)

	a.handlers.Bind(state.StateAwaitingCredentials, a.handleCredentials)
}

// ActiveConversations lists Telegram IDs of users who are mid-dialogue,
// for the activity refresher.
func (a *App) ActiveConversations() []int64 {
	return a.states.ActiveIDs()
}

// Run starts the Telegram loop and blocks until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	opts := telegram.RunOptions{
		Registry:     a.registry,
		States:       a.states,
		Handlers:     a.handlers,
		TextFallback: a.handleUnknownText,
	}
	return telegram.RunTelegram(ctx, a.cfg, opts, func(rt *telegram.Runtime) {
		a.notifier.Attach(rt.Bot)
	})
}
