package shared_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/odyssey-erp/odyssey-portal/internal/shared"
)

func TestEnsureTokenIsStable(t *testing.T) {
	sm, _ := newSessionManager(t)
	csrf := shared.NewCSRFManager("secret", nil)
	sess := sm.NewSession()

	first := csrf.EnsureToken(sess)
	assert.NotEmpty(t, first)
	assert.Equal(t, first, csrf.EnsureToken(sess))
	assert.Equal(t, "", csrf.EnsureToken(nil))
}

func TestVerifyToken(t *testing.T) {
	sm, _ := newSessionManager(t)
	csrf := shared.NewCSRFManager("secret", nil)
	sess := sm.NewSession()

	assert.ErrorIs(t, csrf.VerifyToken(sess, "x"), shared.ErrCSRFTokenMissing)
	token := csrf.EnsureToken(sess)
	assert.NoError(t, csrf.VerifyToken(sess, token))
	assert.ErrorIs(t, csrf.VerifyToken(sess, token+"x"), shared.ErrCSRFTokenMismatch)
	assert.ErrorIs(t, csrf.VerifyToken(sess, ""), shared.ErrCSRFTokenMissing)
	assert.ErrorIs(t, csrf.VerifyToken(nil, token), shared.ErrCSRFTokenMissing)
}

func TestProtect(t *testing.T) {
	sm, _ := newSessionManager(t)
	csrf := shared.NewCSRFManager("secret", nil)
	sess := sm.NewSession()
	token := csrf.EnsureToken(sess)

	handler := csrf.Protect(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	do := func(method string, form url.Values, header string) int {
		var body *strings.Reader
		if form != nil {
			body = strings.NewReader(form.Encode())
		} else {
			body = strings.NewReader("")
		}
		req := httptest.NewRequest(method, "/", body)
		if form != nil {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
		if header != "" {
			req.Header.Set(shared.CSRFHeader, header)
		}
		req = req.WithContext(shared.ContextWithSession(req.Context(), sess))
		res := httptest.NewRecorder()
		handler.ServeHTTP(res, req)
		return res.Code
	}

	assert.Equal(t, http.StatusNoContent, do(http.MethodGet, nil, ""))
	assert.Equal(t, http.StatusForbidden, do(http.MethodPost, nil, ""))
	assert.Equal(t, http.StatusNoContent, do(http.MethodPost, nil, token))
	assert.Equal(t, http.StatusNoContent, do(http.MethodPost, url.Values{shared.CSRFFormField: {token}}, ""))
	assert.Equal(t, http.StatusForbidden, do(http.MethodPost, url.Values{shared.CSRFFormField: {"bogus"}}, ""))
}
