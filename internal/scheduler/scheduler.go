package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/akhilm/jobsift/internal/pipeline"
)

// Scheduler owns the main loop: ticks on an interval and runs the
// aggregation pipeline once per tick.
type Scheduler struct {
	pipe     *pipeline.Pipeline
	interval time.Duration
	logger   *slog.Logger
}

// NewScheduler creates a scheduler that runs the pipeline at the given interval.
func NewScheduler(pipe *pipeline.Pipeline, interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		pipe:     pipe,
		interval: interval,
		logger:   logger,
	}
}

// Run starts the aggregation loop. It runs one immediate pass, then ticks
// on the configured interval. It returns nil when ctx is cancelled
// (graceful shutdown). A failed persist is logged but does not stop the
// loop; the next tick retries with a fresh load.
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.Info("starting scheduler", "interval", s.interval.String())

	// Run one immediate pass.
	s.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("shutting down scheduler")
			return nil
		case <-time.After(s.interval):
			s.runOnce(ctx)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	if _, err := s.pipe.Run(ctx); err != nil {
		s.logger.Error("aggregation run failed", "error", err)
	}
}
