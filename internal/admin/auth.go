package admin

import (
	"net/http"
	"strings"

	"github.com/gorilla/sessions"
	"golang.org/x/crypto/bcrypt"

	"github.com/chanceofrain/spotifam/core/logger"
	"github.com/chanceofrain/spotifam/internal/storage"
)

const (
	sessionName    = "spotifam_admin"
	sessionKeyUser = "admin_username"
)

func newSessionStore(secret string) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(secret))
	// Path covers both the /admin pages and the /api endpoints.
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   12 * 3600,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// HashPassword wraps bcrypt for admin account seeding.
func HashPassword(plain string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func (s *Server) currentAdmin(r *http.Request) string {
	sess, err := s.sessions.Get(r, sessionName)
	if err != nil {
		return ""
	}
	if name, ok := sess.Values[sessionKeyUser].(string); ok {
		return name
	}
	return ""
}

// requireAdmin redirects unauthenticated requests to the login page.
// API routes under /api get a plain 401 instead.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.currentAdmin(r) == "" {
			if strings.HasPrefix(r.URL.Path, "/api/") {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if s.currentAdmin(r) != "" {
		http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = loginTemplate.ExecuteTemplate(w, "login", map[string]string{})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	fail := func() {
		logger.HTTP.Warn("admin.login.failed", "username", logger.SanitizeLimit(username, 64))
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusUnauthorized)
		_ = loginTemplate.ExecuteTemplate(w, "login", map[string]string{
			"Error": "Invalid username or password.",
		})
	}

	admin, err := s.store.Admins.ByUsername(r.Context(), username)
	if err != nil {
		if err != storage.ErrNotFound {
			logger.HTTP.Error("admin.login.lookup.failed", "error", err)
		}
		fail()
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		fail()
		return
	}

	sess, _ := s.sessions.Get(r, sessionName)
	sess.Values[sessionKeyUser] = admin.Username
	if err := sess.Save(r, w); err != nil {
		logger.HTTP.Error("admin.session.save.failed", "error", err)
		http.Error(w, "session error", http.StatusInternalServerError)
		return
	}
	if err := s.store.Admins.TouchLogin(r.Context(), admin.ID); err != nil {
		logger.HTTP.Warn("admin.login.touch.failed", "error", err)
	}
	logger.HTTP.Info("admin.login.ok", "username", admin.Username)
	http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	sess, _ := s.sessions.Get(r, sessionName)
	sess.Options.MaxAge = -1
	_ = sess.Save(r, w)
	http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
}
