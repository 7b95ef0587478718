package access

import (
	"context"
	"errors"
	"html/template"
)

// ErrAccessDenied is returned by callers that surface a denial as an error value.
var ErrAccessDenied = errors.New("access: denied")

// IdentityProvider is the read accessor exposed by the identity collaborator.
type IdentityProvider interface {
	Identity(ctx context.Context) *Identity
}

// IdentityProviderFunc adapts a function to IdentityProvider.
type IdentityProviderFunc func(ctx context.Context) *Identity

// Identity implements IdentityProvider.
func (f IdentityProviderFunc) Identity(ctx context.Context) *Identity {
	return f(ctx)
}

// Decision sources passed to DecisionRecorder.
const (
	SourceRoute    = "route"
	SourceTemplate = "template"
	SourceCheck    = "check"
)

// DecisionRecorder observes gate outcomes. source is one of the Source
// constants.
type DecisionRecorder interface {
	RecordDecision(source, capability string, allowed bool)
}

// Allows reports whether the identity holds capability.
//
// Super admins bypass the role check. Names are compared with exact,
// case-sensitive equality.
func Allows(id *Identity, capability string) bool {
	if id == nil {
		return false
	}
	if id.IsSuperAdmin {
		return true
	}
	_, ok := id.PermissionNames()[capability]
	return ok
}

// Gate evaluates capabilities against the identity of the current request.
type Gate struct {
	provider IdentityProvider
	recorder DecisionRecorder
}

// NewGate constructs a Gate. recorder may be nil.
func NewGate(provider IdentityProvider, recorder DecisionRecorder) *Gate {
	return &Gate{provider: provider, recorder: recorder}
}

// Identity resolves the identity snapshot for ctx.
func (g *Gate) Identity(ctx context.Context) *Identity {
	if g == nil || g.provider == nil {
		return nil
	}
	return g.provider.Identity(ctx)
}

// Allowed resolves the current identity and evaluates capability.
func (g *Gate) Allowed(ctx context.Context, capability string) bool {
	return g.decide(SourceCheck, g.Identity(ctx), capability)
}

// Render returns content when capability is granted and an empty fragment
// otherwise. The decision is recorded with SourceTemplate.
func (g *Gate) Render(ctx context.Context, capability string, content template.HTML) template.HTML {
	if g.decide(SourceTemplate, g.Identity(ctx), capability) {
		return content
	}
	return ""
}

// FuncMap exposes the gate to html/template. Decisions made while
// rendering are recorded with SourceTemplate.
//
//	{{ if can .Identity "billing.manage" }}...{{ end }}
func (g *Gate) FuncMap() template.FuncMap {
	return template.FuncMap{
		"can": func(id *Identity, capability string) bool {
			return g.decide(SourceTemplate, id, capability)
		},
	}
}

func (g *Gate) decide(source string, id *Identity, capability string) bool {
	allowed := Allows(id, capability)
	if g != nil && g.recorder != nil {
		g.recorder.RecordDecision(source, capability, allowed)
	}
	return allowed
}
