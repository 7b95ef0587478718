package home

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/odyssey-portal/internal/access"
	"github.com/odyssey-erp/odyssey-portal/internal/shared"
	"github.com/odyssey-erp/odyssey-portal/internal/view"
)

// Handler serves the dashboard and the public landing page.
type Handler struct {
	logger    *slog.Logger
	templates *view.Engine
	csrf      *shared.CSRFManager
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, templates *view.Engine, csrf *shared.CSRFManager) *Handler {
	return &Handler{logger: logger, templates: templates, csrf: csrf}
}

// MountRoutes registers the dashboard routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.showHome)
	r.Get("/welcome", h.showWelcome)
}

func (h *Handler) showHome(w http.ResponseWriter, r *http.Request) {
	if access.IdentityFromContext(r.Context()) == nil {
		http.Redirect(w, r, "/welcome", http.StatusSeeOther)
		return
	}
	h.render(w, r, "pages/home.html", "Dashboard")
}

func (h *Handler) showWelcome(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "pages/landing.html", "Welcome")
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, name, title string) {
	data := view.NewPageData(r, h.csrf, title, nil)
	if err := h.templates.Render(w, http.StatusOK, name, data); err != nil {
		h.logger.Error("render page", slog.String("template", name), slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
