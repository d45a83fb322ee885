package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/blinksale/rate-limiting/internal/handler"
	"github.com/blinksale/rate-limiting/internal/limiter"
	"github.com/blinksale/rate-limiting/internal/rule"
	"github.com/blinksale/rate-limiting/internal/service"
	"github.com/blinksale/rate-limiting/internal/storage"
)

func newRouter(t *testing.T) (*mux.Router, *limiter.Engine) {
	t.Helper()

	reg, err := rule.NewRegistry(rule.Rule{
		Pattern: "/api/*",
		Key:     rule.KeyByClientIP(false),
		Limit:   2,
		Window:  time.Minute,
		Lockout: 5 * time.Minute,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	logger := zap.NewNop()
	store := storage.NewMemoryStore()
	engine := limiter.NewEngine(store, reg, logger)

	limits := handler.NewLimitsHandler(service.NewAdmissionService(engine, logger), logger)
	health := handler.NewHealthCheckHandler(service.NewHealthService(store, logger), logger)

	router := mux.NewRouter()
	router.HandleFunc("/health", health.HealthCheck()).Methods("GET")
	router.HandleFunc("/limits/{fingerprint}", limits.Status()).Methods("GET")
	router.HandleFunc("/limits/{fingerprint}", limits.Clear()).Methods("DELETE")
	return router, engine
}

func consume(t *testing.T, engine *limiter.Engine, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if _, err := engine.Evaluate(context.Background(), rule.Request{
			Path:       "/api/users",
			RemoteAddr: "203.0.113.7:51234",
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
}

func TestLimitsStatus(t *testing.T) {
	router, engine := newRouter(t)
	consume(t, engine, 2)

	req := httptest.NewRequest(http.MethodGet, "/limits/203.0.113.7", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var status service.FingerprintStatus
	if err := json.Unmarshal(rec.Body.Bytes(), &status); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if status.Count != 2 {
		t.Errorf("expected count 2, got %d", status.Count)
	}
	if status.Fingerprint != "203.0.113.7" {
		t.Errorf("expected fingerprint echoed back, got %q", status.Fingerprint)
	}
}

func TestLimitsStatusNotFound(t *testing.T) {
	router, _ := newRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/limits/198.51.100.1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unseen fingerprint, got %d", rec.Code)
	}
}

func TestLimitsClear(t *testing.T) {
	router, engine := newRouter(t)
	consume(t, engine, 2)

	req := httptest.NewRequest(http.MethodDelete, "/limits/203.0.113.7", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	// State is gone
	req = httptest.NewRequest(http.MethodGet, "/limits/203.0.113.7", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 after clear, got %d", rec.Code)
	}
}

func TestHealthCheck(t *testing.T) {
	router, _ := newRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var status service.HealthStatus
	if err := json.Unmarshal(rec.Body.Bytes(), &status); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if status.Status != service.HealthStatusHealthy {
		t.Errorf("expected healthy, got %q", status.Status)
	}
}
