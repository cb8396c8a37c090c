package store

import "github.com/akhilm/jobsift/internal/model"

// ReadOnly wraps a store for dry runs: loads pass through, persists are
// discarded, so a run can be inspected without growing the collection.
type ReadOnly struct {
	inner model.CollectionStore
}

func NewReadOnly(inner model.CollectionStore) *ReadOnly {
	return &ReadOnly{inner: inner}
}

func (s *ReadOnly) Load() ([]model.JobPosting, error) { return s.inner.Load() }

func (s *ReadOnly) Persist(_ []model.JobPosting) error { return nil }
