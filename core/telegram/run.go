package telegram

import (
	"context"
	"fmt"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/chanceofrain/spotifam/core/config"
	"github.com/chanceofrain/spotifam/core/logger"
	"github.com/chanceofrain/spotifam/core/telegram/helpers"
	"github.com/chanceofrain/spotifam/core/telegram/middleware"
	"github.com/chanceofrain/spotifam/core/telegram/router"
	"github.com/chanceofrain/spotifam/core/telegram/sender"
	"github.com/chanceofrain/spotifam/core/telegram/state"
)

// RunOptions wires application handlers into the bot core.
type RunOptions struct {
	Registry *Registry
	States   *state.Manager
	Handlers *state.HandlerSet
	// TextFallback handles plain text from idle users.
	TextFallback tele.HandlerFunc
	// Extra middlewares appended after the default chain.
	Middlewares []tele.MiddlewareFunc
}

// Runtime exposes the running bot to the rest of the application.
type Runtime struct {
	Bot        *tele.Bot
	Dispatcher *sender.Dispatcher
}

// RunTelegram builds the bot, installs routing and blocks until ctx is
// cancelled. The outgoing dispatcher is drained before return.
func RunTelegram(ctx context.Context, cfg *config.Config, opts RunOptions, onReady func(*Runtime)) error {
	log := logger.TG

	poller, err := buildPoller(cfg)
	if err != nil {
		return err
	}

	longPoll := time.Duration(cfg.Telegram.LongPollTimeoutSeconds) * time.Second
	bot, err := tele.NewBot(tele.Settings{
		Token:  cfg.Telegram.Token,
		Poller: poller,
		Client: newHTTPClient(longPoll),
	})
	if err != nil {
		return fmt.Errorf("create bot: %w", err)
	}

	if cfg.Telegram.RunMode == config.RunModeLongpoll {
		// a leftover webhook blocks long polling entirely
		if err := bot.RemoveWebhook(true); err != nil {
			log.Warn("tg.webhook.remove.failed", "error", err)
		}
	}

	for _, mw := range DefaultMiddlewares(cfg) {
		bot.Use(mw)
	}
	for _, mw := range opts.Middlewares {
		bot.Use(mw)
	}

	dispatcher := sender.NewDispatcher(bot, sender.DefaultOptions())
	dispatcher.Start()
	helpers.SetDispatcher(dispatcher)

	cmdRouter := router.NewCommandRouter(opts.Registry, cfg.Telegram.AdminID, nil)
	msgRouter := router.NewMessageRouter(opts.States, opts.Handlers, opts.TextFallback)
	bot.Handle(tele.OnCallback, router.NewCallbackRouter(opts.Registry))
	bot.Handle(tele.OnText, func(c tele.Context) error {
		if isCommand(c.Text()) {
			return cmdRouter(c)
		}
		return msgRouter(c)
	})

	InitBotCommands(bot, opts.Registry)

	stopMetrics := make(chan struct{})
	middleware.StartMetricsReporter(5*time.Minute, stopMetrics)

	if onReady != nil {
		onReady(&Runtime{Bot: bot, Dispatcher: dispatcher})
	}

	log.Info("tg.start",
		"mode", cfg.Telegram.RunMode,
		"admin_id", cfg.Telegram.AdminID,
	)

	go func() {
		<-ctx.Done()
		bot.Stop()
	}()
	bot.Start()

	close(stopMetrics)
	dispatcher.Stop()
	log.Info("tg.stopped")
	return nil
}

func isCommand(text string) bool {
	return len(text) > 1 && text[0] == '/'
}
