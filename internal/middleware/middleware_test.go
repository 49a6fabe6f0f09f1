package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	app "github.com/micropost/micropost/internal/app"
	"github.com/micropost/micropost/internal/app/httpapi"
	"github.com/micropost/micropost/internal/metrics"
	"github.com/micropost/micropost/pkg/logger"
)

func TestTracingMiddleware(t *testing.T) {
	log := logger.NewDefault("test")
	var seenTraceID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenTraceID = logger.TraceIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	handler := TracingMiddleware(log)(next)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/messages", nil))

	if seenTraceID == "" {
		t.Fatalf("expected trace ID on request context")
	}
	if got := resp.Header().Get("X-Trace-ID"); got != seenTraceID {
		t.Fatalf("expected echoed trace ID %q, got %q", seenTraceID, got)
	}

	// inbound trace ID is honoured
	req := httptest.NewRequest(http.MethodGet, "/messages", nil)
	req.Header.Set("X-Trace-ID", "trace-123")
	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if seenTraceID != "trace-123" {
		t.Fatalf("expected inbound trace ID, got %q", seenTraceID)
	}
}

func TestMetricsMiddleware(t *testing.T) {
	m := metrics.New("test")
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	handler := MetricsMiddleware(m)(next)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/messages", nil))

	if resp.Code != http.StatusTeapot {
		t.Fatalf("expected status passthrough, got %d", resp.Code)
	}

	// scrape endpoint serves the recorded counter
	scrape := httptest.NewRecorder()
	m.Handler().ServeHTTP(scrape, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if scrape.Code != http.StatusOK {
		t.Fatalf("expected 200 from metrics handler, got %d", scrape.Code)
	}
}

func TestMetricsMiddlewareRecordsRouteTemplate(t *testing.T) {
	m := metrics.New("test")
	log := logger.NewDefault("test")

	// Mount on the API router the way cmd/server does, so CurrentRoute
	// reflects the matched route rather than the mount point.
	api := httpapi.NewHandler(app.New(app.Stores{}, nil), nil)
	api.Use(TracingMiddleware(log), MetricsMiddleware(m))

	resp := httptest.NewRecorder()
	api.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/messages/42", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	scrape := httptest.NewRecorder()
	m.Handler().ServeHTTP(scrape, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := scrape.Body.String()
	if !strings.Contains(body, `path="/messages/{id}"`) {
		t.Fatalf("expected route template label in scrape output, got:\n%s", body)
	}
	if strings.Contains(body, `path="/"`) {
		t.Fatalf("request recorded under the mount point, not its route:\n%s", body)
	}
}
