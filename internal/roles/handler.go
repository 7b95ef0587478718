package roles

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/odyssey-portal/internal/access"
	"github.com/odyssey-erp/odyssey-portal/internal/shared"
	"github.com/odyssey-erp/odyssey-portal/internal/view"
)

// Handler serves the role catalogue.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	templates *view.Engine
	csrf      *shared.CSRFManager
	gate      *access.Gate
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service, templates *view.Engine, csrf *shared.CSRFManager, gate *access.Gate) *Handler {
	return &Handler{logger: logger, service: service, templates: templates, csrf: csrf, gate: gate}
}

// MountRoutes registers role routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.gate.Require(shared.PermRolesView))
		r.Get("/", h.listRoles)
	})
}

func (h *Handler) listRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.service.ListRoles(r.Context())
	if err != nil {
		h.logger.Error("list roles failed", slog.Any("error", err))
		h.render(w, r, http.StatusInternalServerError, map[string]any{"Error": "Roles could not be loaded."})
		return
	}
	h.render(w, r, http.StatusOK, map[string]any{"Roles": roles})
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, data map[string]any) {
	viewData := view.NewPageData(r, h.csrf, "Roles", data)
	if err := h.templates.Render(w, status, "pages/roles.html", viewData); err != nil {
		h.logger.Error("render template", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
