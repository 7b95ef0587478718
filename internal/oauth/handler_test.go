package oauth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/odyssey-portal/internal/oauth"
	"github.com/odyssey-erp/odyssey-portal/internal/view"
)

func TestCallbackRendersWaitingIndicator(t *testing.T) {
	templates, err := view.NewEngine(nil)
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Route("/oauth", oauth.NewHandler(nil, templates).MountRoutes)

	req := httptest.NewRequest(http.MethodGet, "/oauth/callback?code=s3cr3t-code&state=xyz", nil)
	res := httptest.NewRecorder()
	r.ServeHTTP(res, req)

	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "no-store", res.Header().Get("Cache-Control"))
	assert.Equal(t, "no-referrer", res.Header().Get("Referrer-Policy"))
	body := res.Body.String()
	assert.Contains(t, body, `class="spinner"`)
	assert.NotContains(t, body, "s3cr3t-code")
	assert.NotContains(t, body, "<script")
}
