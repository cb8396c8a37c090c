package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/akhilm/jobsift/internal/model"
)

// SourceRateLimiter enforces a minimum delay between consecutive polls of
// the same source. The polite-delay concern belongs to the source side of
// the boundary, not to the aggregation logic.
type SourceRateLimiter struct {
	mu       sync.Mutex
	lastPoll map[string]time.Time // key: source name
	minDelay time.Duration
}

// NewSourceRateLimiter creates a rate limiter that enforces minDelay
// between consecutive polls of the same source.
func NewSourceRateLimiter(minDelay time.Duration) *SourceRateLimiter {
	return &SourceRateLimiter{
		lastPoll: make(map[string]time.Time),
		minDelay: minDelay,
	}
}

// Wait blocks until enough time has passed since the last poll of the
// given source. Returns an error if the context is cancelled while waiting.
func (r *SourceRateLimiter) Wait(ctx context.Context, name string) error {
	r.mu.Lock()
	last, ok := r.lastPoll[name]
	now := time.Now()

	if !ok {
		// First poll for this source — no wait needed.
		r.lastPoll[name] = now
		r.mu.Unlock()
		return nil
	}

	elapsed := now.Sub(last)
	if elapsed >= r.minDelay {
		r.lastPoll[name] = now
		r.mu.Unlock()
		return nil
	}

	// Need to wait for the remainder.
	remaining := r.minDelay - elapsed
	r.mu.Unlock()

	select {
	case <-ctx.Done():
		return fmt.Errorf("rate limiter wait for %s: %w", name, ctx.Err())
	case <-time.After(remaining):
	}

	// Record the actual time after waiting.
	r.mu.Lock()
	r.lastPoll[name] = time.Now()
	r.mu.Unlock()

	return nil
}

// PacedSource is a decorator that waits on the rate limiter before
// delegating to the wrapped source.
type PacedSource struct {
	inner   model.Source
	limiter *SourceRateLimiter
}

// NewPacedSource wraps a source with poll pacing. Sources sharing the
// same limiter instance are throttled independently by name.
func NewPacedSource(inner model.Source, limiter *SourceRateLimiter) *PacedSource {
	return &PacedSource{inner: inner, limiter: limiter}
}

func (s *PacedSource) Name() string { return s.inner.Name() }

// Listings waits for the rate limiter to allow a poll, then delegates to
// the wrapped source.
func (s *PacedSource) Listings(ctx context.Context) ([]model.RawListing, error) {
	if err := s.limiter.Wait(ctx, s.inner.Name()); err != nil {
		return nil, err
	}
	return s.inner.Listings(ctx)
}
