package limiter

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/blinksale/rate-limiting/internal/rule"
	"github.com/blinksale/rate-limiting/internal/storage"
)

// Decision is the outcome of evaluating one request. When Allowed is true the
// rate-limit header values (Limit, Remaining, ResetAt) are populated; a denial
// carries none of them.
type Decision struct {
	Allowed   bool
	Limit     int64
	Remaining int64
	ResetAt   int64 // unix seconds
}

// Snapshot is the decoded counter state for one fingerprint, used by the
// admin surface.
type Snapshot struct {
	Count   int64
	ResetAt int64 // unix seconds
}

// Engine applies the per-fingerprint counter state machine. It is the sole
// writer of counter records; the store is treated as a durable map.
//
// Per request the engine performs one Exists+Get+Set round trip and holds no
// in-process lock across it. Two concurrent hits on the same fingerprint can
// therefore both read the same count and both be allowed; exact counting needs
// an atomic increment primitive in the store contract.
type Engine struct {
	store  storage.Store
	rules  *rule.Registry
	logger *zap.Logger
	now    func() time.Time
}

// NewEngine creates an admission engine over the given store and rule set.
func NewEngine(store storage.Store, rules *rule.Registry, logger *zap.Logger) *Engine {
	return &Engine{
		store:  store,
		rules:  rules,
		logger: logger,
		now:    time.Now,
	}
}

// Evaluate decides whether the request may proceed. A request whose path
// matches no rule is always allowed and touches no backend state. Store
// failures surface as errors; whether to fail open or closed on them is the
// caller's policy.
func (e *Engine) Evaluate(ctx context.Context, req rule.Request) (Decision, error) {
	r, ok := e.rules.FindMatch(req.Path)
	if !ok {
		return Decision{Allowed: true}, nil
	}

	fingerprint := r.Key(req)
	key := e.stateKey(fingerprint)
	now := e.now().Unix()

	exists, err := e.store.Exists(ctx, key)
	if err != nil {
		return Decision{}, fmt.Errorf("check counter state: %w", err)
	}

	if !exists {
		return e.startWindow(ctx, key, r, now)
	}

	raw, err := e.store.Get(ctx, key)
	if err != nil {
		return Decision{}, fmt.Errorf("read counter state: %w", err)
	}

	rec, err := parseRecord(raw)
	if err != nil {
		// Undecodable state is treated as unseen, never as a denial.
		e.logger.Warn("unreadable counter record, reinitializing",
			zap.String("fingerprint", fingerprint), zap.Error(err))
		return e.startWindow(ctx, key, r, now)
	}

	if rec.ResetAt <= now {
		return e.startWindow(ctx, key, r, now)
	}

	newCount := rec.Count + 1
	if newCount <= r.Limit {
		// Still inside the window and under the limit. The hit that lands
		// exactly on the limit is the last one allowed.
		rec.Count = newCount
		if err := e.store.Set(ctx, key, rec.encode()); err != nil {
			return Decision{}, fmt.Errorf("write counter state: %w", err)
		}
		return Decision{
			Allowed:   true,
			Limit:     r.Limit,
			Remaining: r.Limit - newCount,
			ResetAt:   rec.ResetAt,
		}, nil
	}

	// Limit already reached by a prior hit: deny and push the reset out by
	// the lockout, count held. Every further hit while locked pushes it again.
	rec.ResetAt = now + int64(r.Lockout/time.Second)
	if err := e.store.Set(ctx, key, rec.encode()); err != nil {
		return Decision{}, fmt.Errorf("write counter state: %w", err)
	}

	e.logger.Debug("request denied, lockout applied",
		zap.String("fingerprint", fingerprint),
		zap.Int64("reset_at", rec.ResetAt))

	return Decision{Allowed: false}, nil
}

// startWindow begins a fresh counting window for the key: first hit counted,
// reset one window ahead.
func (e *Engine) startWindow(ctx context.Context, key string, r rule.Rule, now int64) (Decision, error) {
	rec := record{Count: 1, ResetAt: now + int64(r.Window/time.Second)}
	if err := e.store.Set(ctx, key, rec.encode()); err != nil {
		return Decision{}, fmt.Errorf("write counter state: %w", err)
	}
	return Decision{
		Allowed:   true,
		Limit:     r.Limit,
		Remaining: r.Limit - 1,
		ResetAt:   rec.ResetAt,
	}, nil
}

// Snapshot returns the decoded counter state for a fingerprint, or false if
// none is stored (or the stored record is unreadable).
func (e *Engine) Snapshot(ctx context.Context, fingerprint string) (Snapshot, bool, error) {
	raw, err := e.store.Get(ctx, e.stateKey(fingerprint))
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("read counter state: %w", err)
	}
	if raw == "" {
		return Snapshot{}, false, nil
	}

	rec, err := parseRecord(raw)
	if err != nil {
		e.logger.Warn("unreadable counter record",
			zap.String("fingerprint", fingerprint), zap.Error(err))
		return Snapshot{}, false, nil
	}

	return Snapshot{Count: rec.Count, ResetAt: rec.ResetAt}, true, nil
}

// Clear removes the counter state for a fingerprint.
func (e *Engine) Clear(ctx context.Context, fingerprint string) error {
	if err := e.store.Delete(ctx, e.stateKey(fingerprint)); err != nil {
		return fmt.Errorf("clear counter state: %w", err)
	}
	return nil
}

// stateKey namespaces counter records in the shared backend.
func (e *Engine) stateKey(fingerprint string) string {
	return "admission:counter:" + fingerprint
}
