package middleware

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/blinksale/rate-limiting/internal/limiter"
	"github.com/blinksale/rate-limiting/internal/rule"
)

// Options controls how the admission middleware reacts to the engine.
type Options struct {
	// FailOpen forwards requests when the engine cannot reach its backend.
	// When false, backend failures reject the request instead.
	FailOpen bool
}

// Admission returns an HTTP middleware that runs every request through the
// admission engine. Allowed requests are forwarded with the rate-limit
// headers merged into the response; denied requests get a 503 rejection that
// carries no rate-limit headers, with the body negotiated from the Accept
// header.
func Admission(engine *limiter.Engine, logger *zap.Logger, opts Options) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := uuid.NewString()

			decision, err := engine.Evaluate(r.Context(), rule.Request{
				Path:       r.URL.Path,
				RemoteAddr: r.RemoteAddr,
				Header:     r.Header,
			})
			if err != nil {
				logger.Error("admission check failed",
					zap.String("request_id", requestID),
					zap.String("path", r.URL.Path),
					zap.Bool("fail_open", opts.FailOpen),
					zap.Error(err))
				if opts.FailOpen {
					next.ServeHTTP(w, r)
					return
				}
				reject(w, r)
				return
			}

			if !decision.Allowed {
				logger.Debug("request rejected",
					zap.String("request_id", requestID),
					zap.String("path", r.URL.Path))
				reject(w, r)
				return
			}

			if decision.Limit > 0 {
				w.Header().Set("X-RateLimit-Limit", strconv.FormatInt(decision.Limit, 10))
				w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(decision.Remaining, 10))
				w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(decision.ResetAt, 10))
			}

			next.ServeHTTP(w, r)
		})
	}
}

// reject writes the denial response. The body format follows the client's
// Accept header; rate-limit headers are deliberately absent.
func reject(w http.ResponseWriter, r *http.Request) {
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]string{
			"error": "rate limit exceeded",
		})
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusServiceUnavailable)
	w.Write([]byte("rate limit exceeded\n"))
}
