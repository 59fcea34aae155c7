package web

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/givehub/server/internal/common/logger"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = []string{
	"index.html",
	"register.html",
	"login.html",
	"dashboard.html",
	"needs.html",
	"donate.html",
}

type templateSet map[string]*template.Template

// parseTemplates pairs every page with the shared layout so each page only
// defines its "content" block.
func parseTemplates() templateSet {
	set := make(templateSet, len(pages))
	for _, page := range pages {
		set[page] = template.Must(template.ParseFS(templateFS, "templates/layout.html", "templates/"+page))
	}
	return set
}

type pageData struct {
	Title    string
	LoggedIn bool
	Flashes  []flashMessage
	Data     any
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, page, title string, data any) {
	tmpl, ok := h.templates[page]
	if !ok {
		h.log.Errorf("unknown template: %s", page)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pd := pageData{
		Title:    title,
		LoggedIn: h.isLoggedIn(r),
		Flashes:  consumeFlashes(w, r),
		Data:     data,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "layout.html", pd); err != nil {
		h.log.WithFields(logger.Fields{
			"template": page,
			"action":   "render_failed",
		}).Errorf("template render failed: %v", err)
	}
}
