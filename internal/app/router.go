package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	accesshttp "github.com/odyssey-erp/odyssey-portal/internal/access/http"
	"github.com/odyssey-erp/odyssey-portal/internal/billing"
	"github.com/odyssey-erp/odyssey-portal/internal/home"
	"github.com/odyssey-erp/odyssey-portal/internal/identity"
	"github.com/odyssey-erp/odyssey-portal/internal/oauth"
	"github.com/odyssey-erp/odyssey-portal/internal/observability"
	"github.com/odyssey-erp/odyssey-portal/internal/roles"
	"github.com/odyssey-erp/odyssey-portal/internal/shared"
	"github.com/odyssey-erp/odyssey-portal/internal/users"
	"github.com/odyssey-erp/odyssey-portal/web"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger         *slog.Logger
	Config         *Config
	SessionManager *shared.SessionManager
	CSRFManager    *shared.CSRFManager
	Identity       identity.Middleware
	Metrics        *observability.Metrics

	HomeHandler    *home.Handler
	BillingHandler *billing.Handler
	OAuthHandler   *oauth.Handler
	AccessHandler  *accesshttp.Handler
	UsersHandler   *users.Handler
	RolesHandler   *roles.Handler
}

// NewRouter constructs the chi.Router with portal defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	// Static assets skip session, identity and CSRF handling.
	fileServer := http.StripPrefix("/static/", http.FileServer(http.FS(web.Static())))
	r.Handle("/static/*", staticCacheHandler(fileServer))

	r.Group(func(r chi.Router) {
		for _, mw := range MiddlewareStack(MiddlewareConfig{
			Logger:         params.Logger,
			Config:         params.Config,
			SessionManager: params.SessionManager,
			CSRFManager:    params.CSRFManager,
			Identity:       params.Identity,
			Metrics:        params.Metrics,
		}) {
			r.Use(mw)
		}
		r.Use(chimw.Logger)

		if params.HomeHandler != nil {
			params.HomeHandler.MountRoutes(r)
		}
		if params.BillingHandler != nil {
			r.Route("/billing", params.BillingHandler.MountRoutes)
		}
		if params.OAuthHandler != nil {
			r.Route("/oauth", params.OAuthHandler.MountRoutes)
		}
		if params.AccessHandler != nil {
			r.Route("/api/access", params.AccessHandler.MountRoutes)
		}
		if params.UsersHandler != nil {
			r.Route("/users", params.UsersHandler.MountRoutes)
		}
		if params.RolesHandler != nil {
			r.Route("/roles", params.RolesHandler.MountRoutes)
		}
	})

	return r
}

// staticCacheHandler wraps a file server with Cache-Control headers.
func staticCacheHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		next.ServeHTTP(w, r)
	})
}
