package model

import "context"

// Role is the category a posting is classified into. Always one of the
// five enumerated values, never empty.
type Role string

const (
	RoleSDE    Role = "SDE"
	RoleSWE    Role = "SWE"
	RoleDevOps Role = "DevOps"
	RoleCloud  Role = "Cloud"
	RoleAIML   Role = "AI/ML"
)

// Roles lists every valid role category.
var Roles = []Role{RoleSDE, RoleSWE, RoleDevOps, RoleCloud, RoleAIML}

// RawListing is an unvalidated field→value mapping produced by a source
// collaborator. Any key may be absent or empty; no key is required except
// title. Recognized keys: title, company, location, post_url (or url),
// posted_at, description (or snippet). Everything else is ignored.
type RawListing map[string]string

// JobPosting is the canonical record. Once accepted into the collection it
// is immutable; the store only ever appends.
type JobPosting struct {
	ID              string // 12 hex chars, derived from (title, company, post_url)
	Title           string
	Company         string // "Unknown" when the source didn't name one
	Location        string // "Remote" when the source didn't name one
	Role            Role
	PostURL         string // may be empty, never meaningful as a dedup key when it is
	PostedAt        string // free-text label, e.g. "3 days ago" or "Recently"
	ExperienceText  string // bounded snippet of the experience requirements
	VisaSponsorship bool
	Snippet         string
	ScrapedAt       string // ISO 8601 ingestion timestamp
}

// Source yields raw listings from one external collaborator (a board API,
// a scraper dump, ...). A failing source is treated as zero results at the
// pipeline boundary; it never aborts the run.
type Source interface {
	Name() string
	Listings(ctx context.Context) ([]RawListing, error)
}

// CollectionStore loads and persists the full posting collection.
type CollectionStore interface {
	// Load returns the persisted collection, or an empty one when nothing
	// usable exists. Implementations only return an error for conditions
	// the caller may want to log; callers recover by starting empty.
	Load() ([]JobPosting, error)
	// Persist writes the whole collection back. Failure here is the one
	// fatal outcome of a pipeline run.
	Persist(postings []JobPosting) error
}
