package rule

import (
	"errors"
	"net/http"
	"path"
	"time"
)

// Request is the descriptor the admission core sees for one inbound request.
// The transport adapter builds it from whatever protocol it speaks; the core
// only ever reads it.
type Request struct {
	Path       string
	RemoteAddr string
	Header     http.Header
}

// KeyFunc maps a request to the fingerprint string used as the counter key.
// It must be pure: same request, same fingerprint.
type KeyFunc func(r Request) string

// Rule is an immutable admission rule: which paths it covers, how requests are
// fingerprinted, and the limit/window/lockout applied to each fingerprint.
type Rule struct {
	// Pattern is a path-matching expression with path.Match semantics.
	// A pattern without metacharacters matches the exact path.
	Pattern string

	// Key extracts the fingerprint the counter is tracked under.
	Key KeyFunc

	// Limit is the maximum number of hits allowed per window.
	Limit int64

	// Window is how long a counting window stays valid before it resets.
	Window time.Duration

	// Lockout extends the blocked period once Limit is exceeded.
	Lockout time.Duration
}

var (
	ErrPatternRequired = errors.New("pattern is required")
	ErrKeyFuncRequired = errors.New("key function is required")
	ErrLimitTooSmall   = errors.New("limit must be at least 1")
	ErrWindowTooSmall  = errors.New("window must be greater than 0")
	ErrNegativeLockout = errors.New("lockout must not be negative")
)

// Validate checks the rule invariants.
func (r Rule) Validate() error {
	if r.Pattern == "" {
		return ErrPatternRequired
	}
	if _, err := path.Match(r.Pattern, "/"); err != nil {
		return err
	}
	if r.Key == nil {
		return ErrKeyFuncRequired
	}
	if r.Limit < 1 {
		return ErrLimitTooSmall
	}
	if r.Window <= 0 {
		return ErrWindowTooSmall
	}
	if r.Lockout < 0 {
		return ErrNegativeLockout
	}
	return nil
}

// Matches reports whether the rule covers the given request path.
func (r Rule) Matches(reqPath string) bool {
	ok, err := path.Match(r.Pattern, reqPath)
	if err != nil {
		return false
	}
	return ok
}
