package videogen

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/mhpenta/videogen/blob"
	"github.com/mhpenta/videogen/ratelimiter"
)

// DefaultPollInterval is how often the Session refreshes a long-running
// operation's state.
const DefaultPollInterval = 5 * time.Second

// genericFailureReason is surfaced when a failure carries no usable text.
const genericFailureReason = "video generation failed, please try again"

// Session orchestrates video generation for one user session. It owns the
// single current-outcome slot and the blob store backing the live media
// handle, and drives the submit/poll/fetch protocol against a
// VideoGenerator.
//
// Concurrency policy: the latest submission wins. Each Generate call bumps
// a sequence number; only the pipeline holding the current number may
// publish into the outcome slot. A superseded pipeline's result is
// discarded and its media revoked immediately, so no stale clip and no
// orphaned reference can outlive a newer request. The remote job of a
// superseded generation is not aborted.
type Session struct {
	gen    VideoGenerator
	store  *blob.Store
	logger *slog.Logger

	pollInterval time.Duration

	// Rate limiting (per model)
	rateLimiters    ratelimiter.Registry
	waitOnRateLimit bool
	maxRateWait     time.Duration

	// onTransition, when set, observes every outcome transition.
	onTransition func(Outcome)

	mu        sync.Mutex
	seq       uint64
	outcome   Outcome
	lastMedia *LocalMediaHandle
}

// NewSession creates a Session over the given generator. Rate limiters
// are seeded from the generator's model definitions; use WithRateLimiter
// to override with a custom implementation.
func NewSession(gen VideoGenerator, opts ...SessionOption) *Session {
	s := &Session{
		gen:          gen,
		store:        blob.NewStore(),
		logger:       slog.Default(),
		pollInterval: DefaultPollInterval,
		rateLimiters: ratelimiter.NewRegistry(),
		outcome:      Outcome{Phase: PhaseIdle},
	}

	for _, info := range gen.Models() {
		if info.RateLimits.TokensPerMinute > 0 || info.RateLimits.RequestsPerMinute > 0 {
			s.rateLimiters.Set(info.Name, ratelimiter.New(
				info.RateLimits.TokensPerMinute,
				info.RateLimits.RequestsPerMinute,
			))
		}
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Outcome returns the current state of the generation slot.
func (s *Session) Outcome() Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.outcome
}

// Generate executes a frozen request end to end: it validates, publishes
// Pending before any network interaction, submits the long-running job,
// polls until terminal, fetches the clip, and publishes Ready or Failed.
//
// Remote errors do not escape as Go errors; they land in a Failed outcome
// with a user-safe reason. Only local pre-flight errors (validation, rate
// limiting) return non-nil, and those leave the outcome slot untouched.
// Retry is a caller-initiated Generate with the same request.
func (s *Session) Generate(ctx context.Context, req *GenerationRequest) (Outcome, error) {
	if req == nil {
		return s.Outcome(), errors.New("nil generation request")
	}
	if err := req.Validate(); err != nil {
		return s.Outcome(), err
	}

	if err := s.checkRateLimit(ctx, req); err != nil {
		s.logger.Warn("rate limit hit",
			"model", req.Model.String(),
			"error", err.Error(),
		)
		return s.Outcome(), err
	}

	seq := s.beginPending()
	start := time.Now()

	s.logger.Debug("starting video generation",
		"mode", req.Mode.String(),
		"model", req.Model.String(),
		"prompt_length", len(req.Prompt),
	)

	op, err := s.gen.Submit(ctx, req)
	if err != nil {
		return s.fail(seq, start, err), nil
	}

	for !op.Done {
		select {
		case <-ctx.Done():
			return s.fail(seq, start, ctx.Err()), nil
		case <-time.After(s.pollInterval):
		}

		op, err = s.gen.Poll(ctx, op)
		if err != nil {
			return s.fail(seq, start, err), nil
		}
	}

	if op.Failure != "" {
		return s.fail(seq, start, errors.New(op.Failure)), nil
	}

	video, err := s.gen.Fetch(ctx, op)
	if err != nil {
		return s.fail(seq, start, err), nil
	}

	handle := newLocalMediaHandle(s.store, video.Data, video.MIMEType)
	out := Outcome{Phase: PhaseReady, Media: handle, RemoteHandle: video.URI}
	if !s.publish(seq, out) {
		handle.Revoke()
		s.logger.Debug("discarding superseded generation result",
			"operation", op.Name,
		)
		return s.Outcome(), nil
	}

	s.logger.Info("generation completed",
		"mode", req.Mode.String(),
		"model", req.Model.String(),
		"duration_ms", time.Since(start).Milliseconds(),
		"video_bytes", len(video.Data),
	)

	return out, nil
}

// Reset returns the slot to Idle, revoking the live media handle and
// invalidating any in-flight pipeline.
func (s *Session) Reset() {
	s.mu.Lock()
	s.seq++
	if s.lastMedia != nil {
		s.lastMedia.Revoke()
		s.lastMedia = nil
	}
	out := Outcome{Phase: PhaseIdle}
	s.outcome = out
	hook := s.onTransition
	s.mu.Unlock()

	if hook != nil {
		hook(out)
	}
}

// Close tears down the session and releases provider resources.
func (s *Session) Close() error {
	s.Reset()
	return s.gen.Close()
}

// SetRateLimiter sets a custom rate limiter for a model.
func (s *Session) SetRateLimiter(model Model, limiter ratelimiter.Limiter) *Session {
	s.rateLimiters.Set(model.String(), limiter)
	return s
}

// beginPending claims a new generation sequence and publishes Pending.
func (s *Session) beginPending() uint64 {
	s.mu.Lock()
	s.seq++
	seq := s.seq
	out := Outcome{Phase: PhasePending}
	s.outcome = out
	hook := s.onTransition
	s.mu.Unlock()

	if hook != nil {
		hook(out)
	}
	return seq
}

// publish installs out as the current outcome if seq still owns the slot.
// A Ready outcome revokes the previous live handle before taking over.
func (s *Session) publish(seq uint64, out Outcome) bool {
	s.mu.Lock()
	if seq != s.seq {
		s.mu.Unlock()
		return false
	}
	if out.Phase == PhaseReady {
		if s.lastMedia != nil {
			s.lastMedia.Revoke()
		}
		s.lastMedia = out.Media
	}
	s.outcome = out
	hook := s.onTransition
	s.mu.Unlock()

	if hook != nil {
		hook(out)
	}
	return true
}

// fail publishes a Failed outcome carrying a user-safe reason.
func (s *Session) fail(seq uint64, start time.Time, err error) Outcome {
	out := Outcome{Phase: PhaseFailed, Reason: userSafeReason(err)}
	if !s.publish(seq, out) {
		s.logger.Debug("discarding superseded generation failure",
			"error", err.Error(),
		)
		return s.Outcome()
	}

	s.logger.Error("generation failed",
		"duration_ms", time.Since(start).Milliseconds(),
		"error", err.Error(),
	)
	return out
}

// checkRateLimit checks client-side rate limits for the request's model.
func (s *Session) checkRateLimit(ctx context.Context, req *GenerationRequest) error {
	const tokenBuffer = 100

	// A model without a registered limiter is not limited client-side.
	limiter, err := s.rateLimiters.Get(req.Model.String())
	if err != nil {
		return nil
	}

	estimatedTokens := estimatePromptTokens(req.Prompt) + tokenBuffer

	if s.waitOnRateLimit {
		return limiter.WaitAndConsume(ctx, estimatedTokens, s.maxRateWait)
	}

	if !limiter.TryConsume(estimatedTokens) {
		return &RateLimitError{
			RetryAfter: limiter.TimeUntilAvailable(estimatedTokens),
			LimitType:  "tokens",
			Model:      req.Model.String(),
		}
	}

	return nil
}

// estimatePromptTokens approximates prompt token usage for client-side
// rate limiting: roughly four characters per token, with a 20% margin.
func estimatePromptTokens(prompt string) int {
	if prompt == "" {
		return 0
	}
	chars := len([]rune(prompt))
	return int(math.Ceil(float64(chars)/4.0*1.2)) + 3
}

// userSafeReason derives a presentable failure message from an error.
func userSafeReason(err error) string {
	if err == nil {
		return genericFailureReason
	}
	msg := strings.TrimSpace(err.Error())
	if msg == "" {
		return genericFailureReason
	}
	return msg
}
