// Package admin serves the operator console: dashboard, order management,
// user moderation, broadcasts and runtime settings.
package admin

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"

	"github.com/chanceofrain/spotifam/core/config"
	"github.com/chanceofrain/spotifam/core/logger"
	"github.com/chanceofrain/spotifam/internal/services"
	"github.com/chanceofrain/spotifam/internal/storage"
)

// pageSize is the row count per list page across the console.
const pageSize = 20

// Server is the admin console HTTP server.
type Server struct {
	cfg        *config.Config
	store      *storage.Store
	orders     *services.OrderService
	stats      *services.StatsService
	broadcasts *services.BroadcastService
	sessions   *sessions.CookieStore
}

func NewServer(cfg *config.Config, store *storage.Store, orders *services.OrderService, stats *services.StatsService, broadcasts *services.BroadcastService) *Server {
	return &Server{
		cfg:        cfg,
		store:      store,
		orders:     orders,
		stats:      stats,
		broadcasts: broadcasts,
		sessions:   newSessionStore(cfg.Admin.SessionSecret),
	}
}

// Router builds the chi route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(requestLogger)
	r.Use(chimw.Recoverer)

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/admin/dashboard", http.StatusSeeOther)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Get("/login", s.handleLoginPage)
		r.Post("/login", s.handleLogin)
		r.Get("/logout", s.handleLogout)

		r.Group(func(r chi.Router) {
			r.Use(s.requireAdmin)
			r.Get("/dashboard", s.handleDashboard)
			r.Get("/users", s.handleUsers)
			r.Get("/orders", s.handleOrders)
			r.Get("/payments", s.handlePayments)
			r.Get("/broadcast", s.handleBroadcastPage)
			r.Post("/broadcast", s.handleBroadcastSend)
			r.Get("/settings", s.handleSettingsPage)
			r.Post("/settings", s.handleSettingsSave)
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(s.requireAdmin)
		r.Post("/user/{id}/ban", s.handleToggleBan)
		r.Post("/order/{id}/status", s.handleOrderStatus)
		r.Get("/stats/chart", s.handleChartData)
	})
	return r
}

// Run serves the console until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Admin.Listen,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.HTTP.Info("http.start", "listen", s.cfg.Admin.Listen)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.HTTP.Info("http.stopped")
	return <-errCh
}

// requestLogger emits one line per request in the shared log schema.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		logger.HTTP.Info("http.request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"took_ms", time.Since(start).Milliseconds(),
		)
	})
}
