package shared

import "context"

type sessionContextKey struct{}

// ContextWithSession stores the session in context.
func ContextWithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, sess)
}

// SessionFromContext extracts the session from context.
func SessionFromContext(ctx context.Context) *Session {
	sess, _ := ctx.Value(sessionContextKey{}).(*Session)
	return sess
}

// UserIDFromContext returns the user bound to the request session.
// Requests without a session, or with an anonymous one, yield ErrAnonymous.
func UserIDFromContext(ctx context.Context) (int64, error) {
	return SessionFromContext(ctx).UserID()
}
