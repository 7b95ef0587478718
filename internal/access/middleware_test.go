package access_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/odyssey-erp/odyssey-portal/internal/access"
)

func serve(t *testing.T, mw func(http.Handler) http.Handler, id *access.Identity) (int, bool) {
	t.Helper()
	called := false
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(access.ContextWithIdentity(req.Context(), id)))
		})
	})
	r.With(mw).Get("/", func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	res := httptest.NewRecorder()
	r.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/", nil))
	return res.Code, called
}

func TestRequire(t *testing.T) {
	gate := access.NewGate(access.ContextProvider, nil)

	code, called := serve(t, gate.Require("billing.view"), billingEditor())
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, called)

	code, called = serve(t, gate.Require("users.delete"), billingEditor())
	assert.Equal(t, http.StatusForbidden, code)
	assert.False(t, called)

	code, called = serve(t, gate.Require("billing.view"), nil)
	assert.Equal(t, http.StatusForbidden, code)
	assert.False(t, called)

	code, _ = serve(t, gate.Require("users.delete"), &access.Identity{IsSuperAdmin: true})
	assert.Equal(t, http.StatusOK, code)
}

func TestRequireAny(t *testing.T) {
	gate := access.NewGate(access.ContextProvider, nil)

	code, _ := serve(t, gate.RequireAny("users.delete", "billing.view"), billingEditor())
	assert.Equal(t, http.StatusOK, code)

	code, _ = serve(t, gate.RequireAny("users.delete", "roles.edit"), billingEditor())
	assert.Equal(t, http.StatusForbidden, code)

	code, called := serve(t, gate.RequireAny(), nil)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, called)
}

func TestRequireAll(t *testing.T) {
	gate := access.NewGate(access.ContextProvider, nil)

	code, _ := serve(t, gate.RequireAll("billing.view", "users.edit", "billing.view"), billingEditor())
	assert.Equal(t, http.StatusOK, code)

	code, _ = serve(t, gate.RequireAll("billing.view", "users.delete"), billingEditor())
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = serve(t, gate.RequireAll(), nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestRequireRecordsRouteDecisions(t *testing.T) {
	rec := &recorder{}
	gate := access.NewGate(access.ContextProvider, rec)

	serve(t, gate.Require("billing.view"), billingEditor())
	serve(t, gate.Require("billing.view"), nil)

	assert.Equal(t, []bool{true, false}, rec.decisions["billing.view"])
	assert.Equal(t, []string{access.SourceRoute, access.SourceRoute}, rec.sources)
}
