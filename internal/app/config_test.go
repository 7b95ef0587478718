package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("SESSION_SECRET", "session-secret")
	t.Setenv("CSRF_SECRET", "csrf-secret")
}

func TestLoadConfigDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.AppAddr)
	assert.Equal(t, "odyssey_session", cfg.SessionCookieName)
	assert.Equal(t, 60, cfg.RateLimitPerMinute)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, "", cfg.BillingWidgetOrigin())
}

func TestLoadConfigRequiresSecrets(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("CSRF_SECRET", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfigBillingURLs(t *testing.T) {
	setRequired(t)
	t.Setenv("BILLING_WIDGET_URL", "https://billing.example.com/embed/widget")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://billing.example.com", cfg.BillingWidgetOrigin())

	t.Setenv("BILLING_WIDGET_URL", "javascript:alert(1)")
	_, err = LoadConfig()
	assert.Error(t, err)

	t.Setenv("BILLING_WIDGET_URL", "http://localhost:4242/widget")
	t.Setenv("APP_ENV", "production")
	_, err = LoadConfig()
	assert.Error(t, err)
}
