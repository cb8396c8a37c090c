package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/akhilm/jobsift/internal/model"
)

func TestBoardSource_Listings(t *testing.T) {
	payload := `{
		"jobs": [
			{
				"title": "Junior DevOps Engineer",
				"company": "Acme",
				"location": "Remote, US",
				"url": "https://boards.example/acme/jobs/1",
				"posted_at": "2 hours ago",
				"snippet": "entry level, visa sponsorship available"
			},
			{
				"title": "Software Engineer",
				"url": "https://boards.example/acme/jobs/2"
			}
		]
	}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	src := NewBoardSource("acme", srv.URL, srv.Client())
	listings, err := src.Listings(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(listings) != 2 {
		t.Fatalf("expected 2 listings, got %d", len(listings))
	}

	first := listings[0]
	if first["title"] != "Junior DevOps Engineer" {
		t.Errorf("title = %q", first["title"])
	}
	if first["company"] != "Acme" {
		t.Errorf("company = %q", first["company"])
	}
	if first["post_url"] != "https://boards.example/acme/jobs/1" {
		t.Errorf("post_url = %q", first["post_url"])
	}
	if first["description"] != "entry level, visa sponsorship available" {
		t.Errorf("description = %q", first["description"])
	}

	// Field gaps pass through as empty values; the normalizer owns defaults.
	second := listings[1]
	if second["company"] != "" {
		t.Errorf("company = %q, want empty", second["company"])
	}
}

func TestBoardSource_EmptyFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"jobs": []}`))
	}))
	defer srv.Close()

	src := NewBoardSource("empty", srv.URL, srv.Client())
	listings, err := src.Listings(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(listings) != 0 {
		t.Fatalf("expected 0 listings, got %d", len(listings))
	}
}

func TestBoardSource_HTTPErrorCarriesStatusAndRetryAfter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "120")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	src := NewBoardSource("throttled", srv.URL, srv.Client())
	_, err := src.Listings(context.Background())
	if err == nil {
		t.Fatal("expected error for 429 response")
	}

	var httpErr *model.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected HTTPError, got %T", err)
	}
	if httpErr.StatusCode != 429 {
		t.Errorf("StatusCode = %d, want 429", httpErr.StatusCode)
	}
	if httpErr.RetryAfter != 120*time.Second {
		t.Errorf("RetryAfter = %v, want 2m0s", httpErr.RetryAfter)
	}
}

func TestBoardSource_MalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"jobs": [`))
	}))
	defer srv.Close()

	src := NewBoardSource("bad", srv.URL, srv.Client())
	if _, err := src.Listings(context.Background()); err == nil {
		t.Fatal("expected error for malformed payload")
	}
}

func TestParseRetryAfter(t *testing.T) {
	tests := []struct {
		value string
		want  time.Duration
	}{
		{"", 0},
		{"120", 120 * time.Second},
		{"not-a-number", 0},
	}
	for _, tt := range tests {
		if got := parseRetryAfter(tt.value); got != tt.want {
			t.Errorf("parseRetryAfter(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}
