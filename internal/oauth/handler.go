// Package oauth serves the landing page of the OAuth redirect. The code
// exchange and the message to the opener window are performed by the
// sign-in backend; this page only shows a waiting indicator.
package oauth

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/odyssey-portal/internal/view"
)

// Handler renders the callback landing page.
type Handler struct {
	logger    *slog.Logger
	templates *view.Engine
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, templates *view.Engine) *Handler {
	return &Handler{logger: logger, templates: templates}
}

// MountRoutes registers the callback route.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/callback", h.showCallback)
}

func (h *Handler) showCallback(w http.ResponseWriter, r *http.Request) {
	// The query string carries the authorization code; keep it out of
	// caches and referrers and never echo it.
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Referrer-Policy", "no-referrer")
	data := view.TemplateData{Title: "Connecting…", CurrentPath: r.URL.Path}
	if err := h.templates.Render(w, http.StatusOK, "pages/oauth_callback.html", data); err != nil {
		h.logger.Error("render oauth callback", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
