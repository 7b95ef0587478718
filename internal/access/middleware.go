package access

import (
	"net/http"
)

// Require ensures the current identity holds capability.
func (g *Gate) Require(capability string) func(http.Handler) http.Handler {
	return g.RequireAll(capability)
}

// RequireAny ensures the current identity holds at least one of the capabilities.
func (g *Gate) RequireAny(capabilities ...string) func(http.Handler) http.Handler {
	required := uniqueCapabilities(capabilities)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(required) == 0 {
				next.ServeHTTP(w, r)
				return
			}
			id := g.Identity(r.Context())
			for _, c := range required {
				if g.decide(SourceRoute, id, c) {
					next.ServeHTTP(w, r)
					return
				}
			}
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		})
	}
}

// RequireAll ensures the current identity holds every capability.
func (g *Gate) RequireAll(capabilities ...string) func(http.Handler) http.Handler {
	required := uniqueCapabilities(capabilities)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(required) == 0 {
				next.ServeHTTP(w, r)
				return
			}
			id := g.Identity(r.Context())
			for _, c := range required {
				if !g.decide(SourceRoute, id, c) {
					http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// uniqueCapabilities drops duplicates while keeping order. Names are not
// trimmed or case-folded.
func uniqueCapabilities(capabilities []string) []string {
	seen := make(map[string]struct{}, len(capabilities))
	out := make([]string, 0, len(capabilities))
	for _, c := range capabilities {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
