package handler

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/blinksale/rate-limiting/internal/service"
)

// HealthCheckHandler handles health check requests.
type HealthCheckHandler struct {
	health *service.HealthService
	logger *zap.Logger
}

// NewHealthCheckHandler creates a new health check handler.
func NewHealthCheckHandler(health *service.HealthService, logger *zap.Logger) *HealthCheckHandler {
	return &HealthCheckHandler{
		health: health,
		logger: logger,
	}
}

// HealthCheck handles GET /health.
func (h *HealthCheckHandler) HealthCheck() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := h.health.Check(r.Context())

		w.Header().Set("Content-Type", "application/json")
		if status.Status != service.HealthStatusHealthy {
			w.WriteHeader(http.StatusServiceUnavailable)
		} else {
			w.WriteHeader(http.StatusOK)
		}
		json.NewEncoder(w).Encode(status)
	}
}
