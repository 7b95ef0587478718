package identity

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/odyssey-erp/odyssey-portal/internal/access"
	"github.com/odyssey-erp/odyssey-portal/internal/shared"
)

// Middleware attaches the identity snapshot of the session user to each request.
type Middleware struct {
	Service *Service
	Logger  *slog.Logger
}

// Attach resolves the identity once per request. Anonymous sessions and
// failed resolutions continue without an identity.
func (m Middleware) Attach(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := shared.UserIDFromContext(r.Context())
		if err != nil {
			if !errors.Is(err, shared.ErrAnonymous) {
				m.log().Warn("identity session user", slog.Any("error", err))
			}
			next.ServeHTTP(w, r)
			return
		}
		id, err := m.Service.Resolve(r.Context(), userID)
		if err != nil {
			m.logResolveError(userID, err)
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(access.ContextWithIdentity(r.Context(), id)))
	})
}

func (m Middleware) logResolveError(userID int64, err error) {
	switch {
	case errors.Is(err, shared.ErrNotFound), errors.Is(err, ErrInactive):
		m.log().Info("identity unavailable", slog.Int64("user_id", userID), slog.Any("error", err))
	default:
		m.log().Error("identity resolve", slog.Int64("user_id", userID), slog.Any("error", err))
	}
}

func (m Middleware) log() *slog.Logger {
	if m.Logger == nil {
		return slog.Default()
	}
	return m.Logger
}
