package access

import "context"

type identityContextKey struct{}

// ContextWithIdentity stores the identity snapshot in context.
func ContextWithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityContextKey{}, id)
}

// IdentityFromContext extracts the identity snapshot from context.
func IdentityFromContext(ctx context.Context) *Identity {
	id, _ := ctx.Value(identityContextKey{}).(*Identity)
	return id
}

// ContextProvider reads the identity stored by ContextWithIdentity.
var ContextProvider IdentityProvider = IdentityProviderFunc(IdentityFromContext)
