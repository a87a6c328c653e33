package admin

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/chanceofrain/spotifam/core/logger"
)

//go:embed templates/*.html
var templateFS embed.FS

// page bundles the fields every console page template receives.
type page struct {
	Title     string
	Active    string
	Flash     string
	FlashKind string
	Data      any
}

var pageTemplates = map[string]*template.Template{
	"dashboard": mustPage("dashboard.html"),
	"users":     mustPage("users.html"),
	"orders":    mustPage("orders.html"),
	"payments":  mustPage("payments.html"),
	"broadcast": mustPage("broadcast.html"),
	"settings":  mustPage("settings.html"),
}

var loginTemplate = template.Must(template.ParseFS(templateFS, "templates/login.html"))

func mustPage(name string) *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/layout.html", "templates/"+name))
}

func (s *Server) render(w http.ResponseWriter, name string, p page) {
	tpl, ok := pageTemplates[name]
	if !ok {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tpl.ExecuteTemplate(w, "layout", p); err != nil {
		logger.HTTP.Error("http.render.failed", "template", name, "error", err)
	}
}
