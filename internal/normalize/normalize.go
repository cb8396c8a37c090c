package normalize

import (
	"strings"
	"time"

	"github.com/akhilm/jobsift/internal/model"
)

// Defaults applied when a source omits a field.
const (
	DefaultCompany  = "Unknown"
	DefaultLocation = "Remote"
	DefaultPostedAt = "Recently"
)

// Experience snippets longer than this are cut and marked with an ellipsis.
const maxExperienceText = 200

// Posting turns a raw listing into a canonical JobPosting. Every output
// field is populated; the only way to fail is a missing or empty title.
// The posting's ID and Role are left for the identity and classify stages.
func Posting(raw model.RawListing, now time.Time) (model.JobPosting, error) {
	title := strings.TrimSpace(raw["title"])
	if title == "" {
		return model.JobPosting{}, &model.ValidationError{Field: "title", Reason: "is required"}
	}

	url := strings.TrimSpace(raw["post_url"])
	if url == "" {
		url = strings.TrimSpace(raw["url"])
	}

	snippet := strings.TrimSpace(raw["description"])
	if snippet == "" {
		snippet = strings.TrimSpace(raw["snippet"])
	}

	return model.JobPosting{
		Title:          title,
		Company:        orDefault(raw["company"], DefaultCompany),
		Location:       orDefault(raw["location"], DefaultLocation),
		PostURL:        url,
		PostedAt:       orDefault(raw["posted_at"], DefaultPostedAt),
		ExperienceText: truncate(snippet, maxExperienceText),
		Snippet:        snippet,
		ScrapedAt:      now.Format(time.RFC3339),
	}, nil
}

func orDefault(v, def string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return def
	}
	return v
}

// truncate cuts s at limit runes and appends "..." when anything was cut.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
