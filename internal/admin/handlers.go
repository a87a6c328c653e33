package admin

import (
	"net/http"
	"strconv"

	"github.com/chanceofrain/spotifam/core/logger"
	"github.com/chanceofrain/spotifam/internal/models"
	"github.com/chanceofrain/spotifam/internal/services"
	"github.com/chanceofrain/spotifam/internal/storage"
)

var orderStatuses = []models.OrderStatus{
	models.OrderCreated,
	models.OrderAwaitingPayment,
	models.OrderPaid,
	models.OrderProcessing,
	models.OrderCompleted,
	models.OrderCancelled,
	models.OrderRefunded,
}

func pageParam(r *http.Request) int {
	p, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || p < 1 {
		return 1
	}
	return p
}

// pager computes the 1-based prev/next page numbers for a list view.
func pager(page, total int) (prev, next int) {
	if page > 1 {
		prev = page - 1
	}
	if page*pageSize < total {
		next = page + 1
	}
	return prev, next
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := s.stats.Dashboard(r.Context())
	if err != nil {
		s.fail(w, "load dashboard", err)
		return
	}
	s.render(w, "dashboard", page{
		Title:  "Dashboard",
		Active: "dashboard",
		Data:   struct{ Stats *services.DashboardStats }{stats},
	})
}

func (s *Server) handleUsers(w http.ResponseWriter, r *http.Request) {
	p := pageParam(r)
	users, err := s.store.Users.List(r.Context(), pageSize, (p-1)*pageSize)
	if err != nil {
		s.fail(w, "list users", err)
		return
	}
	total, err := s.store.Users.Count(r.Context())
	if err != nil {
		s.fail(w, "count users", err)
		return
	}
	prev, next := pager(p, total)
	s.render(w, "users", page{
		Title:  "Users",
		Active: "users",
		Data: struct {
			Users              []models.User
			PrevPage, NextPage int
		}{users, prev, next},
	})
}

func (s *Server) handleOrders(w http.ResponseWriter, r *http.Request) {
	p := pageParam(r)
	status := models.OrderStatus(r.URL.Query().Get("status"))
	if status != "" && !status.Valid() {
		status = ""
	}
	search := r.URL.Query().Get("q")

	rows, total, err := s.store.Orders.List(r.Context(), storage.ListFilter{
		Status: status,
		Search: search,
		Limit:  pageSize,
		Offset: (p - 1) * pageSize,
	})
	if err != nil {
		s.fail(w, "list orders", err)
		return
	}
	prev, next := pager(p, total)
	s.render(w, "orders", page{
		Title:  "Orders",
		Active: "orders",
		Data: struct {
			Orders             []storage.OrderRow
			Statuses           []models.OrderStatus
			Status             string
			Search             string
			PrevPage, NextPage int
		}{rows, orderStatuses, string(status), search, prev, next},
	})
}

func (s *Server) handlePayments(w http.ResponseWriter, r *http.Request) {
	p := pageParam(r)
	rows, total, err := s.store.Payments.List(r.Context(), pageSize, (p-1)*pageSize)
	if err != nil {
		s.fail(w, "list payments", err)
		return
	}
	prev, next := pager(p, total)
	s.render(w, "payments", page{
		Title:  "Payments",
		Active: "payments",
		Data: struct {
			Payments           []storage.PaymentRow
			PrevPage, NextPage int
		}{rows, prev, next},
	})
}

func (s *Server) handleBroadcastPage(w http.ResponseWriter, r *http.Request) {
	s.renderBroadcast(w, r, "", "")
}

func (s *Server) handleBroadcastSend(w http.ResponseWriter, r *http.Request) {
	job, err := s.broadcasts.Send(r.Context(),
		r.PostFormValue("text"), r.PostFormValue("target"), s.currentAdmin(r))
	switch err {
	case nil:
		s.renderBroadcast(w, r,
			"Broadcast sent: "+strconv.Itoa(job.SentCount)+" delivered, "+strconv.Itoa(job.FailCount)+" failed.", "")
	case services.ErrBroadcastEmpty, services.ErrBroadcastTarget:
		s.renderBroadcast(w, r, err.Error(), "error")
	default:
		s.fail(w, "send broadcast", err)
	}
}

func (s *Server) renderBroadcast(w http.ResponseWriter, r *http.Request, flash, kind string) {
	history, err := s.store.Broadcasts.Recent(r.Context(), 20)
	if err != nil {
		s.fail(w, "broadcast history", err)
		return
	}
	s.render(w, "broadcast", page{
		Title:     "Broadcast",
		Active:    "broadcast",
		Flash:     flash,
		FlashKind: kind,
		Data:      struct{ History []models.BroadcastMessage }{history},
	})
}

func (s *Server) handleSettingsPage(w http.ResponseWriter, r *http.Request) {
	settings, err := s.store.Settings.All(r.Context())
	if err != nil {
		s.fail(w, "list settings", err)
		return
	}
	s.render(w, "settings", page{
		Title:  "Settings",
		Active: "settings",
		Data:   struct{ Settings []models.SystemSetting }{settings},
	})
}

func (s *Server) handleSettingsSave(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	for key, values := range r.PostForm {
		if len(values) == 0 {
			continue
		}
		if err := s.store.Settings.Set(r.Context(), key, values[0]); err != nil {
			s.fail(w, "save setting", err)
			return
		}
	}
	logger.HTTP.Info("admin.settings.saved", "keys", len(r.PostForm))
	http.Redirect(w, r, "/admin/settings", http.StatusSeeOther)
}

func (s *Server) fail(w http.ResponseWriter, action string, err error) {
	logger.HTTP.Error("http.handler.failed", "action", action, "error", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}
