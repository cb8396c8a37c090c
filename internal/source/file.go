package source

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/akhilm/jobsift/internal/model"
)

// FileSource reads raw listings from an NDJSON dump: one JSON object of
// string fields per line. External scrapers write these dumps; this is
// the boundary where their output enters the pipeline.
type FileSource struct {
	name string
	path string
}

// NewFileSource creates a source reading the NDJSON file at path.
func NewFileSource(name, path string) *FileSource {
	return &FileSource{name: name, path: path}
}

func (s *FileSource) Name() string { return s.name }

// Listings parses every line of the dump. A malformed line fails the
// whole source; the pipeline boundary turns that into zero results.
func (s *FileSource) Listings(_ context.Context) ([]model.RawListing, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("listing dump for %s: %w", s.name, err)
	}
	defer f.Close()

	var listings []model.RawListing
	scanner := bufio.NewScanner(f)
	// Scraper snippets can be long; allow lines up to 1 MiB.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var raw model.RawListing
		if err := json.Unmarshal(scanner.Bytes(), &raw); err != nil {
			return nil, fmt.Errorf("listing dump for %s line %d: %w", s.name, line, err)
		}
		listings = append(listings, raw)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("listing dump for %s: %w", s.name, err)
	}
	return listings, nil
}
