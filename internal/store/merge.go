package store

import "github.com/akhilm/jobsift/internal/model"

// Merge appends the newly accepted postings to the existing collection.
// Existing entries are never reordered or edited; the result is a fresh
// slice so neither input is mutated.
func Merge(existing, accepted []model.JobPosting) []model.JobPosting {
	merged := make([]model.JobPosting, 0, len(existing)+len(accepted))
	merged = append(merged, existing...)
	merged = append(merged, accepted...)
	return merged
}
