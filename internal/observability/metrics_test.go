package observability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rr.Code)
	}
	return rr.Body.String()
}

func TestMetricsMiddlewareRecordsRequest(t *testing.T) {
	metrics := NewMetrics()

	handler := metrics.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	routeCtx := chi.NewRouteContext()
	routeCtx.RoutePatterns = append(routeCtx.RoutePatterns, "/test")

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx)
	req = req.WithContext(ctx)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusTeapot {
		t.Fatalf("expected status %d, got %d", http.StatusTeapot, rr.Code)
	}

	metricsBody := scrape(t, metrics)
	if !strings.Contains(metricsBody, "odyssey_http_requests_total{code=\"418\",route=\"/test\"} 1") {
		t.Fatalf("expected metrics to record request, got: %s", metricsBody)
	}
	if !strings.Contains(metricsBody, "odyssey_http_request_duration_seconds_bucket{route=\"/test\"") {
		t.Fatalf("expected duration histogram to be present, got: %s", metricsBody)
	}
}

func TestRecordDecision(t *testing.T) {
	metrics := NewMetrics()
	metrics.RecordDecision("route", "billing.view", true)
	metrics.RecordDecision("route", "billing.view", true)
	metrics.RecordDecision("template", "billing.manage", false)

	body := scrape(t, metrics)
	if !strings.Contains(body, `odyssey_access_decisions_total{capability="billing.view",result="allowed",source="route"} 2`) {
		t.Fatalf("expected allowed decisions, got: %s", body)
	}
	if !strings.Contains(body, `odyssey_access_decisions_total{capability="billing.manage",result="denied",source="template"} 1`) {
		t.Fatalf("expected denied decision, got: %s", body)
	}
}

func TestRecordDecisionBucketsUnknownCapabilities(t *testing.T) {
	metrics := NewMetrics()
	metrics.RecordDecision("check", "Billing.View", false)
	metrics.RecordDecision("check", "anything-a-client-sends", false)

	body := scrape(t, metrics)
	if !strings.Contains(body, `odyssey_access_decisions_total{capability="other",result="denied",source="check"} 2`) {
		t.Fatalf("expected unknown capabilities under other, got: %s", body)
	}
	if strings.Contains(body, "Billing.View") {
		t.Fatalf("unexpected raw capability label, got: %s", body)
	}
}

func TestNilMetricsAreNoops(t *testing.T) {
	var metrics *Metrics
	metrics.RecordDecision("route", "billing.view", false)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	if metrics.Middleware(next) == nil {
		t.Fatal("expected passthrough handler")
	}
	rr := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rr.Code)
	}
}
