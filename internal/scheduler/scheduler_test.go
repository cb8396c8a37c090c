package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/akhilm/jobsift/internal/classify"
	"github.com/akhilm/jobsift/internal/eligibility"
	"github.com/akhilm/jobsift/internal/model"
	"github.com/akhilm/jobsift/internal/pipeline"
)

// --- Mock implementations ---

type CountingSource struct {
	calls atomic.Int32
}

func (s *CountingSource) Name() string { return "counting" }

func (s *CountingSource) Listings(_ context.Context) ([]model.RawListing, error) {
	s.calls.Add(1)
	return nil, nil
}

type NoOpStore struct{}

func (s *NoOpStore) Load() ([]model.JobPosting, error)  { return nil, nil }
func (s *NoOpStore) Persist(_ []model.JobPosting) error { return nil }

// FailingStore fails every persist, counting the attempts.
type FailingStore struct {
	persists atomic.Int32
}

func (s *FailingStore) Load() ([]model.JobPosting, error) { return nil, nil }

func (s *FailingStore) Persist(_ []model.JobPosting) error {
	s.persists.Add(1)
	return errors.New("disk full")
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func makePipeline(st model.CollectionStore, sources ...model.Source) *pipeline.Pipeline {
	filter := eligibility.New(eligibility.DefaultRuleset(), eligibility.DefaultPolicy())
	return pipeline.New(sources, filter, classify.NewDefault(), st, discardLogger())
}

// --- Tests ---

func TestRun_CancelReturnsPromptly(t *testing.T) {
	src := &CountingSource{}
	s := NewScheduler(makePipeline(&NoOpStore{}, src), 1*time.Hour, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- s.Run(ctx)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected nil error on cancel, got: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not return within 2s after cancel")
	}

	// The immediate pass runs before the first tick.
	if got := src.calls.Load(); got != 1 {
		t.Errorf("source calls = %d, want 1 (immediate pass only)", got)
	}
}

func TestRun_TicksUntilCancelled(t *testing.T) {
	src := &CountingSource{}
	s := NewScheduler(makePipeline(&NoOpStore{}, src), 100*time.Millisecond, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- s.Run(ctx)
	}()

	// Allow time for the immediate pass plus at least one tick.
	time.Sleep(250 * time.Millisecond)
	cancel()
	<-done

	if got := src.calls.Load(); got < 2 {
		t.Errorf("source calls = %d, want >= 2", got)
	}
}

func TestRun_PersistFailureDoesNotStopLoop(t *testing.T) {
	src := &CountingSource{}
	st := &FailingStore{}
	s := NewScheduler(makePipeline(st, src), 50*time.Millisecond, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- s.Run(ctx)
	}()

	time.Sleep(200 * time.Millisecond)
	cancel()

	if err := <-done; err != nil {
		t.Fatalf("expected nil error on cancel, got: %v", err)
	}
	// The failed persist surfaced in at least one pass, and the next tick
	// still ran a fresh pass.
	if got := st.persists.Load(); got < 2 {
		t.Errorf("persist attempts = %d, want >= 2 (loop should survive failures)", got)
	}
	if got := src.calls.Load(); got < 2 {
		t.Errorf("source calls = %d, want >= 2", got)
	}
}
