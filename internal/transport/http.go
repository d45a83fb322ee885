package transport

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/blinksale/rate-limiting/internal/handler"
	"github.com/blinksale/rate-limiting/internal/middleware"
	"github.com/blinksale/rate-limiting/internal/service"
)

// HTTPServer implements the Server interface for HTTP transport. The
// admission middleware wraps the whole router, so every route is subject to
// the configured rules.
type HTTPServer struct {
	server   *http.Server
	router   *mux.Router
	address  string
	logger   *zap.Logger
	handlers *ServiceHandlers
}

// NewHTTPServer creates a new HTTP server.
func NewHTTPServer(cfg ServerConfig) *HTTPServer {
	router := mux.NewRouter()

	admissionService := service.NewAdmissionService(cfg.Engine, cfg.Logger)
	healthService := service.NewHealthService(cfg.Store, cfg.Logger)

	handlers := &ServiceHandlers{
		HealthCheck: handler.NewHealthCheckHandler(healthService, cfg.Logger),
		Limits:      handler.NewLimitsHandler(admissionService, cfg.Logger),
	}

	router.Use(middleware.Admission(cfg.Engine, cfg.Logger, cfg.Admission))

	hs := &HTTPServer{
		address:  cfg.Address,
		logger:   cfg.Logger,
		handlers: handlers,
		router:   router,
		server: &http.Server{
			Addr:         cfg.Address,
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
	}

	hs.registerRoutes()
	return hs
}

// registerRoutes registers all HTTP routes
func (hs *HTTPServer) registerRoutes() {
	hs.router.HandleFunc("/health", hs.handlers.HealthCheck.HealthCheck()).Methods("GET")

	// Admin routes for per-fingerprint counter state
	hs.router.HandleFunc("/limits/{fingerprint}", hs.handlers.Limits.Status()).Methods("GET")
	hs.router.HandleFunc("/limits/{fingerprint}", hs.handlers.Limits.Clear()).Methods("DELETE")
}

// Handler returns the root handler, useful for mounting extra routes or
// testing the server without binding a socket.
func (hs *HTTPServer) Handler() http.Handler {
	return hs.router
}

// Mount registers an application handler below the admission middleware.
func (hs *HTTPServer) Mount(path string, h http.Handler) {
	hs.router.PathPrefix(path).Handler(h)
}

// Start starts the HTTP server
func (hs *HTTPServer) Start(ctx context.Context) error {
	hs.logger.Info("Starting HTTP server", zap.String("address", hs.address))

	go func() {
		if err := hs.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			hs.logger.Error("HTTP server error", zap.Error(err))
		}
	}()

	return nil
}

// Stop gracefully stops the HTTP server
func (hs *HTTPServer) Stop(ctx context.Context) error {
	hs.logger.Info("Stopping HTTP server")
	return hs.server.Shutdown(ctx)
}

// Addr returns the address the HTTP server is listening on
func (hs *HTTPServer) Addr() string {
	return hs.address
}
