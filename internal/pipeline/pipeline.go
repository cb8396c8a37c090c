package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/akhilm/jobsift/internal/classify"
	"github.com/akhilm/jobsift/internal/eligibility"
	"github.com/akhilm/jobsift/internal/identity"
	"github.com/akhilm/jobsift/internal/model"
	"github.com/akhilm/jobsift/internal/normalize"
	"github.com/akhilm/jobsift/internal/store"
)

// Summary is the outcome of one aggregation run.
type Summary struct {
	RunID               string
	Ingested            int // raw listings received from all sources
	DroppedInvalid      int // listings with no usable title
	RejectedEligibility int // failed the experience or visa check
	RejectedDedup       int // id or URL already in the collection
	NewlyPersisted      int
	TotalPersisted      int
}

// Pipeline owns one aggregation pass: for every source, raw listings are
// normalized, filtered, classified, keyed, and deduplicated, then the
// accepted postings are merged into the persisted collection.
type Pipeline struct {
	sources    []model.Source
	filter     *eligibility.Filter
	classifier *classify.Classifier
	store      model.CollectionStore
	logger     *slog.Logger
	now        func() time.Time
}

// New creates a pipeline wired with all its dependencies.
func New(
	sources []model.Source,
	filter *eligibility.Filter,
	classifier *classify.Classifier,
	st model.CollectionStore,
	logger *slog.Logger,
) *Pipeline {
	return &Pipeline{
		sources:    sources,
		filter:     filter,
		classifier: classifier,
		store:      st,
		logger:     logger,
		now:        time.Now,
	}
}

// Run executes one aggregation pass. Per-listing and per-source failures
// are recovered locally; the only error Run returns is a failed persist,
// in which case the run must not be reported as successful.
//
// Sources are consumed fully one at a time and accepted postings enter
// the dedup index immediately, so a listing from an earlier source
// suppresses the identical listing from a later one.
func (p *Pipeline) Run(ctx context.Context) (Summary, error) {
	sum := Summary{RunID: uuid.NewString()}

	existing, err := p.store.Load()
	if err != nil {
		// Start from an empty collection; only persisting may fail a run.
		p.logger.Warn("could not load existing collection, starting fresh",
			"run_id", sum.RunID,
			"error", err,
		)
		existing = nil
	}
	p.logger.Info("collection loaded", "run_id", sum.RunID, "existing", len(existing))

	index := identity.NewDedupIndex(existing)
	var accepted []model.JobPosting

	for _, src := range p.sources {
		if ctx.Err() != nil {
			break
		}

		listings, err := src.Listings(ctx)
		if err != nil {
			p.logger.Warn("source failed, treating as empty",
				"run_id", sum.RunID,
				"source", src.Name(),
				"error", err,
			)
			continue
		}

		srcAccepted := 0
		for _, raw := range listings {
			sum.Ingested++

			posting, err := normalize.Posting(raw, p.now())
			if err != nil {
				sum.DroppedInvalid++
				p.logger.Debug("dropping invalid listing",
					"source", src.Name(),
					"error", err,
				)
				continue
			}

			if !p.filter.Eligible(posting) {
				sum.RejectedEligibility++
				continue
			}

			posting.Role = p.classifier.Classify(posting.Title, posting.Snippet)
			posting.ID = identity.Key(posting.Title, posting.Company, posting.PostURL)
			// Accepted postings passed the visa check.
			posting.VisaSponsorship = true

			if index.Seen(posting) {
				sum.RejectedDedup++
				continue
			}

			index.Add(posting)
			accepted = append(accepted, posting)
			srcAccepted++
		}

		p.logger.Info("source consumed",
			"run_id", sum.RunID,
			"source", src.Name(),
			"listings", len(listings),
			"accepted", srcAccepted,
		)
	}

	merged := store.Merge(existing, accepted)
	if err := p.store.Persist(merged); err != nil {
		return sum, fmt.Errorf("persisting collection: %w", err)
	}

	sum.NewlyPersisted = len(accepted)
	sum.TotalPersisted = len(merged)

	p.logger.Info("run complete",
		"run_id", sum.RunID,
		"ingested", sum.Ingested,
		"dropped_invalid", sum.DroppedInvalid,
		"rejected_eligibility", sum.RejectedEligibility,
		"rejected_dedup", sum.RejectedDedup,
		"newly_persisted", sum.NewlyPersisted,
		"total_persisted", sum.TotalPersisted,
	)

	return sum, nil
}
