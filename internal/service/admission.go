package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/blinksale/rate-limiting/internal/limiter"
)

// ErrNotFound is returned when no counter state exists for a fingerprint.
var ErrNotFound = errors.New("no counter state for fingerprint")

// FingerprintStatus describes the live counter state of one fingerprint.
type FingerprintStatus struct {
	Fingerprint string `json:"fingerprint"`
	Count       int64  `json:"count"`
	ResetAt     int64  `json:"reset_at"` // Unix timestamp
	Expired     bool   `json:"expired"`  // reset time already passed
}

// AdmissionService exposes the engine's admin operations: inspecting and
// clearing counter state for individual fingerprints.
type AdmissionService struct {
	engine *limiter.Engine
	logger *zap.Logger
}

// NewAdmissionService creates a new admission service.
func NewAdmissionService(engine *limiter.Engine, logger *zap.Logger) *AdmissionService {
	return &AdmissionService{
		engine: engine,
		logger: logger,
	}
}

// Status returns the current counter state for a fingerprint.
func (s *AdmissionService) Status(ctx context.Context, fingerprint string) (*FingerprintStatus, error) {
	snap, ok, err := s.engine.Snapshot(ctx, fingerprint)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}

	return &FingerprintStatus{
		Fingerprint: fingerprint,
		Count:       snap.Count,
		ResetAt:     snap.ResetAt,
		Expired:     snap.ResetAt <= time.Now().Unix(),
	}, nil
}

// Clear removes the counter state for a fingerprint, lifting any active
// window or lockout.
func (s *AdmissionService) Clear(ctx context.Context, fingerprint string) error {
	if err := s.engine.Clear(ctx, fingerprint); err != nil {
		return err
	}

	s.logger.Info("counter state cleared", zap.String("fingerprint", fingerprint))
	return nil
}
