package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeDump(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dump.ndjson")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFileSource_Listings(t *testing.T) {
	dump := `{"title": "Junior Engineer", "company": "Acme", "post_url": "https://a.example/1"}

{"title": "Cloud Engineer", "snippet": "aws, new grad"}
`
	src := NewFileSource("scraper-dump", writeDump(t, dump))

	listings, err := src.Listings(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(listings) != 2 {
		t.Fatalf("expected 2 listings (blank lines skipped), got %d", len(listings))
	}
	if listings[0]["title"] != "Junior Engineer" {
		t.Errorf("title = %q", listings[0]["title"])
	}
	if listings[1]["snippet"] != "aws, new grad" {
		t.Errorf("snippet = %q", listings[1]["snippet"])
	}
}

func TestFileSource_MissingFile(t *testing.T) {
	src := NewFileSource("gone", filepath.Join(t.TempDir(), "nope.ndjson"))
	if _, err := src.Listings(context.Background()); err == nil {
		t.Fatal("expected error for missing dump")
	}
}

func TestFileSource_MalformedLine(t *testing.T) {
	src := NewFileSource("bad", writeDump(t, `{"title": "ok"}
not json
`))
	if _, err := src.Listings(context.Background()); err == nil {
		t.Fatal("expected error for malformed line")
	}
}
