package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/akhilm/jobsift/internal/model"
)

// RetrySource is a decorator that retries transient failures with
// exponential backoff and jitter before delegating to the wrapped source.
type RetrySource struct {
	inner      model.Source
	maxRetries int
	baseDelay  time.Duration
	logger     *slog.Logger
}

// NewRetrySource wraps a source with retry logic.
// maxRetries is the number of additional attempts after the first failure.
// baseDelay is the delay before the first retry, doubled on each subsequent retry.
func NewRetrySource(inner model.Source, maxRetries int, baseDelay time.Duration, logger *slog.Logger) *RetrySource {
	return &RetrySource{
		inner:      inner,
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
		logger:     logger,
	}
}

func (s *RetrySource) Name() string { return s.inner.Name() }

// Listings polls the wrapped source until it succeeds, the error turns
// out to be permanent, or the retry budget is spent. The final attempt's
// error is what the caller sees.
func (s *RetrySource) Listings(ctx context.Context) ([]model.RawListing, error) {
	for attempt := 0; ; attempt++ {
		listings, err := s.inner.Listings(ctx)
		if err == nil {
			return listings, nil
		}
		if !isRetryable(err) || attempt == s.maxRetries {
			return nil, err
		}

		delay := s.backoffDelay(attempt+1, err)
		s.logger.Warn("retrying after transient error",
			"source", s.inner.Name(),
			"attempt", attempt+1,
			"max_retries", s.maxRetries,
			"delay", delay,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("retry cancelled: %w", ctx.Err())
		case <-time.After(delay):
		}
	}
}

// backoffDelay computes the delay before the given retry: exponential in
// the attempt number with ±30% jitter, unless the error carries a
// server-mandated Retry-After, which always wins.
func (s *RetrySource) backoffDelay(attempt int, err error) time.Duration {
	var httpErr *model.HTTPError
	if errors.As(err, &httpErr) && httpErr.RetryAfter > 0 {
		return httpErr.RetryAfter
	}

	delay := s.baseDelay * time.Duration(1<<(attempt-1))
	jitter := (rand.Float64()*2 - 1) * 0.3
	return delay + time.Duration(float64(delay)*jitter)
}

// isRetryable returns true if the error represents a transient failure worth retrying.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}

	// Context cancellation — never retry.
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var httpErr *model.HTTPError
	if errors.As(err, &httpErr) {
		// 429 Too Many Requests — retryable.
		if httpErr.StatusCode == 429 {
			return true
		}
		// 5xx — retryable.
		if httpErr.StatusCode >= 500 {
			return true
		}
		// 4xx (not 429) — not retryable.
		return false
	}

	// Non-HTTP errors (network, filesystem, DNS, etc.) — retryable.
	return true
}
