package view

import (
	"net/http"

	"github.com/odyssey-erp/odyssey-portal/internal/access"
	"github.com/odyssey-erp/odyssey-portal/internal/shared"
)

// NewPageData fills the request-scoped fields of TemplateData.
func NewPageData(r *http.Request, csrf *shared.CSRFManager, title string, data any) TemplateData {
	sess := shared.SessionFromContext(r.Context())
	var token string
	if csrf != nil {
		token = csrf.EnsureToken(sess)
	}
	return TemplateData{
		Title:       title,
		CSRFToken:   token,
		Flash:       sess.PopFlash(),
		CurrentPath: r.URL.Path,
		Identity:    access.IdentityFromContext(r.Context()),
		Data:        data,
	}
}
