package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/chanceofrain/spotifam/core/bootstrap"
	"github.com/chanceofrain/spotifam/core/logger"
	"github.com/chanceofrain/spotifam/internal/activity"
	"github.com/chanceofrain/spotifam/internal/admin"
	"github.com/chanceofrain/spotifam/internal/bot"
	"github.com/chanceofrain/spotifam/internal/payment"
	"github.com/chanceofrain/spotifam/internal/seed"
	"github.com/chanceofrain/spotifam/internal/services"
	"github.com/chanceofrain/spotifam/internal/storage"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yml"
	}

	app, err := bootstrap.Run(configPath, seed.Run)
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}
	defer func() {
		app.DB.Close()
		_ = logger.Shutdown()
	}()

	store := storage.New(app.DB)
	notifier := bot.NewNotifier(app.Config.Telegram.AdminID)

	links := payment.URLBuilder{
		SellerID:  app.Config.Payment.SellerID,
		SecretKey: app.Config.Payment.SecretKey,
		BaseURL:   app.Config.Payment.BaseURL,
	}
	users := services.NewUserService(store.Users)
	orders := services.NewOrderService(store.Orders, store.Plans, store.Payments, links, notifier)
	stats := services.NewStatsService(store.Orders, store.Users)
	broadcasts := services.NewBroadcastService(store.Broadcasts, store.Users, notifier)

	botApp := bot.New(app.Config, users, orders, stats, store.Settings, notifier)
	console := admin.NewServer(app.Config, store, orders, stats, broadcasts)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return botApp.Run(ctx) })
	g.Go(func() error { return console.Run(ctx) })
	g.Go(func() error {
		activity.Loop(ctx, store.Users, botApp.ActiveConversations, 30*time.Second)
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.L.Error("shutdown", "error", err)
		os.Exit(1)
	}
}
