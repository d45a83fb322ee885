package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/blinksale/rate-limiting/internal/config"
	"github.com/blinksale/rate-limiting/internal/limiter"
	"github.com/blinksale/rate-limiting/internal/middleware"
	"github.com/blinksale/rate-limiting/internal/rule"
	"github.com/blinksale/rate-limiting/internal/storage"
	"github.com/blinksale/rate-limiting/internal/transport"
)

func main() {
	config.LoadDotEnv()

	cfg := config.Load()

	// Initialize logger
	logger, err := config.InitLogger(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting admission control server",
		zap.String("address", cfg.ServerAddr()),
		zap.String("backend", cfg.Limiter.Backend),
	)

	// Initialize store
	store, err := newStore(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize store", zap.Error(err))
	}
	defer store.Close()

	// Build the rule registry from configuration
	rules, err := cfg.Limiter.ParseRules()
	if err != nil {
		logger.Fatal("Failed to parse rate limit rules", zap.Error(err))
	}
	registry, err := rule.NewRegistry(rules...)
	if err != nil {
		logger.Fatal("Failed to build rule registry", zap.Error(err))
	}
	logger.Info("Rules loaded", zap.Int("count", registry.Len()))

	engine := limiter.NewEngine(store, registry, logger)

	srv := transport.NewHTTPServer(transport.ServerConfig{
		Address:      cfg.ServerAddr(),
		Engine:       engine,
		Store:        store,
		Logger:       logger,
		Admission:    middleware.Options{FailOpen: cfg.Limiter.FailOpen},
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	})

	if err := srv.Start(context.Background()); err != nil {
		logger.Fatal("Server failed to start", zap.Error(err))
	}

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Stop(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server stopped")
}

// newStore selects the storage backend from configuration.
func newStore(cfg config.Config) (storage.Store, error) {
	switch cfg.Limiter.Backend {
	case "memory":
		return storage.NewMemoryStore(), nil
	case "redis":
		return storage.NewRedisStore(cfg.RedisAddr(), cfg.Redis.Password, cfg.Redis.DB)
	default:
		return nil, fmt.Errorf("unknown limiter backend %q", cfg.Limiter.Backend)
	}
}
