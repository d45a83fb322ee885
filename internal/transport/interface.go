package transport

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/blinksale/rate-limiting/internal/handler"
	"github.com/blinksale/rate-limiting/internal/limiter"
	"github.com/blinksale/rate-limiting/internal/middleware"
	"github.com/blinksale/rate-limiting/internal/storage"
)

// Server defines the interface for transport implementations.
type Server interface {
	// Start starts the transport server
	Start(ctx context.Context) error

	// Stop gracefully stops the transport server
	Stop(ctx context.Context) error

	// Addr returns the address the server is listening on
	Addr() string
}

// ServerConfig contains common configuration for transport servers
type ServerConfig struct {
	Address      string             // Address to listen on (e.g., "localhost:8080")
	Engine       *limiter.Engine    // Shared admission engine
	Store        storage.Store      // Shared storage backend (health checks)
	Logger       *zap.Logger        // Shared logger
	Admission    middleware.Options // Admission middleware behavior
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// ServiceHandlers contains all service handlers
type ServiceHandlers struct {
	HealthCheck *handler.HealthCheckHandler
	Limits      *handler.LimitsHandler
}
