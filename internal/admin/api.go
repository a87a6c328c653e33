package admin

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/chanceofrain/spotifam/core/logger"
	"github.com/chanceofrain/spotifam/internal/models"
	"github.com/chanceofrain/spotifam/internal/storage"
)

// handleToggleBan flips the ban flag for a user and returns to the referring
// page, or JSON when requested.
func (s *Server) handleToggleBan(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "bad user id", http.StatusBadRequest)
		return
	}
	user, err := s.store.Users.ByID(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		http.Error(w, "user not found", http.StatusNotFound)
		return
	}
	if err != nil {
		s.fail(w, "load user", err)
		return
	}

	banned := !user.IsBanned
	if err := s.store.Users.SetBanned(r.Context(), id, banned); err != nil {
		s.fail(w, "toggle ban", err)
		return
	}
	logger.HTTP.Info("admin.user.ban_toggled", "user_id", id, "banned", banned)

	if wantsJSON(r) {
		writeJSON(w, map[string]any{"id": id, "is_banned": banned})
		return
	}
	http.Redirect(w, r, "/admin/users", http.StatusSeeOther)
}

// handleOrderStatus overrides an order status from the console. Any known
// status is accepted regardless of the current one.
func (s *Server) handleOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "bad order id", http.StatusBadRequest)
		return
	}
	status := models.OrderStatus(r.PostFormValue("status"))
	if !status.Valid() {
		http.Error(w, "unknown status", http.StatusBadRequest)
		return
	}

	if err := s.orders.SetStatus(r.Context(), id, status); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "order not found", http.StatusNotFound)
			return
		}
		s.fail(w, "set order status", err)
		return
	}
	logger.HTTP.Info("admin.order.status_set", "order_db_id", id, "status", string(status))

	if wantsJSON(r) {
		writeJSON(w, map[string]any{"id": id, "status": status})
		return
	}
	http.Redirect(w, r, "/admin/orders", http.StatusSeeOther)
}

// handleChartData feeds the dashboard chart with the 30-day series.
func (s *Server) handleChartData(w http.ResponseWriter, r *http.Request) {
	points, err := s.stats.DailySeries(r.Context(), 30)
	if err != nil {
		s.fail(w, "chart data", err)
		return
	}
	writeJSON(w, points)
}

func wantsJSON(r *http.Request) bool {
	return r.Header.Get("Accept") == "application/json" ||
		r.Header.Get("X-Requested-With") == "XMLHttpRequest"
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.HTTP.Error("http.json.encode.failed", "error", err)
	}
}
