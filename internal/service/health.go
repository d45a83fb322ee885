package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/blinksale/rate-limiting/internal/storage"
)

// Health status constants
const (
	HealthStatusHealthy   = "healthy"
	HealthStatusUnhealthy = "unhealthy"
)

// HealthStatus describes the service health at one point in time.
type HealthStatus struct {
	Status string `json:"status"`
	Time   string `json:"time"`
	Error  string `json:"error,omitempty"`
}

// HealthService reports whether the storage backend is reachable.
type HealthService struct {
	store  storage.Store
	logger *zap.Logger
}

// NewHealthService creates a new health service.
func NewHealthService(store storage.Store, logger *zap.Logger) *HealthService {
	return &HealthService{
		store:  store,
		logger: logger,
	}
}

// Check pings the storage backend and reports the overall status.
func (s *HealthService) Check(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status: HealthStatusHealthy,
		Time:   time.Now().Format(time.RFC3339),
	}

	if err := s.store.Ping(ctx); err != nil {
		s.logger.Warn("storage ping failed", zap.Error(err))
		status.Status = HealthStatusUnhealthy
		status.Error = err.Error()
	}

	return status
}
