package videogen

import (
	"log/slog"
	"time"

	"github.com/mhpenta/videogen/blob"
	"github.com/mhpenta/videogen/ratelimiter"
)

// SessionOption configures the Session.
type SessionOption func(*Session)

// WithLogger sets a structured logger for the session.
// When set, the session logs submissions, completions, failures, and rate
// limiting events.
func WithLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithPollInterval sets how often the session refreshes a long-running
// operation. Values at or below zero keep the default.
func WithPollInterval(interval time.Duration) SessionOption {
	return func(s *Session) {
		if interval > 0 {
			s.pollInterval = interval
		}
	}
}

// WithBlobStore backs the session's media handles with a caller-owned
// store, so the presentation layer can dereference handles it observes.
func WithBlobStore(store *blob.Store) SessionOption {
	return func(s *Session) {
		if store != nil {
			s.store = store
		}
	}
}

// WithTransitionHook observes every outcome transition. The hook runs on
// the generating goroutine; keep it cheap.
func WithTransitionHook(hook func(Outcome)) SessionOption {
	return func(s *Session) {
		s.onTransition = hook
	}
}

// WithRateLimiter overrides the rate limiter for a model, e.g. with a
// distributed implementation.
func WithRateLimiter(model Model, limiter ratelimiter.Limiter) SessionOption {
	return func(s *Session) {
		s.rateLimiters.Set(model.String(), limiter)
	}
}

// WithWaitOnRateLimit makes the session wait for capacity instead of
// returning a RateLimitError. maxWait of zero means no limit on the wait.
func WithWaitOnRateLimit(maxWait time.Duration) SessionOption {
	return func(s *Session) {
		s.waitOnRateLimit = true
		s.maxRateWait = maxWait
	}
}
