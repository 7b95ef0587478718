package accesshttp

import (
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/odyssey-portal/internal/access"
	"github.com/odyssey-erp/odyssey-portal/internal/platform/httpx"
)

// Handler exposes gate decisions to scripts running in portal pages.
type Handler struct {
	gate *access.Gate
}

// NewHandler builds Handler instance.
func NewHandler(gate *access.Gate) *Handler {
	return &Handler{gate: gate}
}

// MountRoutes registers the access API.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.check)
	r.Get("/me", h.me)
}

type checkResponse struct {
	Capability string `json:"capability"`
	Allowed    bool   `json:"allowed"`
}

type meResponse struct {
	UserID      int64    `json:"userId"`
	SuperAdmin  bool     `json:"superAdmin"`
	Role        string   `json:"role,omitempty"`
	Permissions []string `json:"permissions"`
}

func (h *Handler) check(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if !query.Has("capability") {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "capability query parameter is required")
		return
	}
	capability := query.Get("capability")
	httpx.JSON(w, http.StatusOK, checkResponse{
		Capability: capability,
		Allowed:    h.gate.Allowed(r.Context(), capability),
	})
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	id := h.gate.Identity(r.Context())
	if id == nil {
		httpx.RespondError(w, httpx.ErrUnauthorized)
		return
	}
	names := make([]string, 0)
	for name := range id.PermissionNames() {
		names = append(names, name)
	}
	sort.Strings(names)
	httpx.JSON(w, http.StatusOK, meResponse{
		UserID:      id.UserID,
		SuperAdmin:  id.IsSuperAdmin,
		Role:        id.RoleName(),
		Permissions: names,
	})
}
