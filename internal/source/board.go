package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/akhilm/jobsift/internal/model"
)

// boardJob is a single job in a board feed response.
type boardJob struct {
	Title    string `json:"title"`
	Company  string `json:"company"`
	Location string `json:"location"`
	URL      string `json:"url"`
	PostedAt string `json:"posted_at"`
	Snippet  string `json:"snippet"`
}

// boardResponse is the top-level board feed payload.
type boardResponse struct {
	Jobs []boardJob `json:"jobs"`
}

// BoardSource polls a JSON job feed over HTTP and yields its jobs as raw
// listings. Field gaps are passed through untouched; the normalizer owns
// defaults and validation.
type BoardSource struct {
	name   string
	url    string
	client *http.Client
}

// NewBoardSource creates a source for the JSON feed at url.
func NewBoardSource(name, url string, client *http.Client) *BoardSource {
	return &BoardSource{
		name:   name,
		url:    url,
		client: client,
	}
}

func (s *BoardSource) Name() string { return s.name }

// Listings fetches the feed and converts each job to a raw listing.
func (s *BoardSource) Listings(ctx context.Context) ([]model.RawListing, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("board fetch for %s: %w", s.name, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("board fetch for %s: %w", s.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("board fetch for %s: %w", s.name, &model.HTTPError{
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
		})
	}

	var feed boardResponse
	if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("board fetch for %s: %w", s.name, err)
	}

	listings := make([]model.RawListing, 0, len(feed.Jobs))
	for _, j := range feed.Jobs {
		listings = append(listings, model.RawListing{
			"title":       j.Title,
			"company":     j.Company,
			"location":    j.Location,
			"post_url":    j.URL,
			"posted_at":   j.PostedAt,
			"description": j.Snippet,
		})
	}
	return listings, nil
}
