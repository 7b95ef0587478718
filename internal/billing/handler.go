// Package billing serves the billing page shell. The billing widget itself
// is hosted by the billing provider and embedded as-is.
package billing

import (
	"bytes"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/odyssey-portal/internal/access"
	"github.com/odyssey-erp/odyssey-portal/internal/shared"
	"github.com/odyssey-erp/odyssey-portal/internal/view"
)

// Options configures the embedded widget.
type Options struct {
	WidgetURL string
	PortalURL string
}

// Handler renders the billing page.
type Handler struct {
	logger    *slog.Logger
	templates *view.Engine
	csrf      *shared.CSRFManager
	gate      *access.Gate
	opts      Options
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, templates *view.Engine, csrf *shared.CSRFManager, gate *access.Gate, opts Options) *Handler {
	return &Handler{logger: logger, templates: templates, csrf: csrf, gate: gate, opts: opts}
}

// MountRoutes registers billing routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.gate.Require(shared.PermBillingView))
		r.Get("/", h.showBilling)
	})
}

var manageLinkTemplate = template.Must(template.New("manage").Parse(
	`<a class="button" href="{{.}}" rel="noopener" target="_blank">Manage subscription</a>`))

type pageData struct {
	WidgetURL  string
	ManageLink template.HTML
}

func (h *Handler) showBilling(w http.ResponseWriter, r *http.Request) {
	link, err := h.manageLink(r)
	if err != nil {
		h.logger.Error("render manage link", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	data := view.NewPageData(r, h.csrf, "Billing", pageData{WidgetURL: h.opts.WidgetURL, ManageLink: link})
	if err := h.templates.Render(w, http.StatusOK, "pages/billing.html", data); err != nil {
		h.logger.Error("render billing", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// manageLink is shown only to identities holding billing.manage.
func (h *Handler) manageLink(r *http.Request) (template.HTML, error) {
	if h.opts.PortalURL == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := manageLinkTemplate.Execute(&buf, h.opts.PortalURL); err != nil {
		return "", err
	}
	return h.gate.Render(r.Context(), shared.PermBillingManage, template.HTML(buf.String())), nil
}
