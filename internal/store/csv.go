package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/akhilm/jobsift/internal/model"
)

// Column order of the persisted table. External consumers depend on it,
// so it never changes.
var columns = []string{
	"id", "title", "company", "location", "role", "post_url",
	"posted_at", "experience_text", "visa_sponsorship", "snippet", "scraped_at",
}

// CSVStore persists the posting collection as a flat CSV table with a
// header row. It is the canonical on-disk format.
type CSVStore struct {
	path string
}

// NewCSVStore returns a store backed by the CSV file at path. The file
// need not exist yet.
func NewCSVStore(path string) *CSVStore {
	return &CSVStore{path: path}
}

// Load reads the persisted collection. A missing file is a normal first
// run and yields an empty collection with no error. A malformed file
// yields an empty collection and an error the caller can log; load
// failure never aborts a run.
func (s *CSVStore) Load() ([]model.JobPosting, error) {
	f, err := os.Open(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", s.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s header: %w", s.path, err)
	}
	if len(header) != len(columns) {
		return nil, fmt.Errorf("reading %s: expected %d columns, got %d", s.path, len(columns), len(header))
	}

	var postings []model.JobPosting
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s row %d: %w", s.path, len(postings)+2, err)
		}
		postings = append(postings, fromRecord(rec))
	}
	return postings, nil
}

// Persist writes the full collection back atomically: the rows go to a
// temp file in the same directory which then replaces the old file, so a
// failed write never leaves a truncated table behind.
func (s *CSVStore) Persist(postings []model.JobPosting) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(columns); err != nil {
		tmp.Close()
		return fmt.Errorf("writing header: %w", err)
	}
	for _, p := range postings {
		if err := w.Write(toRecord(p)); err != nil {
			tmp.Close()
			return fmt.Errorf("writing posting %s: %w", p.ID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("flushing %s: %w", tmp.Name(), err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmp.Name(), err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replacing %s: %w", s.path, err)
	}
	return nil
}

func toRecord(p model.JobPosting) []string {
	return []string{
		p.ID, p.Title, p.Company, p.Location, string(p.Role), p.PostURL,
		p.PostedAt, p.ExperienceText, formatBool(p.VisaSponsorship),
		p.Snippet, p.ScrapedAt,
	}
}

func fromRecord(rec []string) model.JobPosting {
	return model.JobPosting{
		ID:              rec[0],
		Title:           rec[1],
		Company:         rec[2],
		Location:        rec[3],
		Role:            model.Role(rec[4]),
		PostURL:         rec[5],
		PostedAt:        rec[6],
		ExperienceText:  rec[7],
		VisaSponsorship: parseBool(rec[8]),
		Snippet:         rec[9],
		ScrapedAt:       rec[10],
	}
}

// Booleans serialize as literal True/False in the table.
func formatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

func parseBool(s string) bool {
	return strings.EqualFold(s, "true") || s == "1"
}
