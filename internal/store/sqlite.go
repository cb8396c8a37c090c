package store

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/akhilm/jobsift/internal/model"
)

// SQLiteStore persists the posting collection in a SQLite database. It is
// an alternative backend to the CSV table with the same append-only
// semantics: Persist only inserts rows whose id is not already present.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and
// ensures the postings table exists.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Verify the connection is alive.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}

	createTable := `CREATE TABLE IF NOT EXISTS postings (
		id               TEXT PRIMARY KEY,
		title            TEXT NOT NULL,
		company          TEXT NOT NULL,
		location         TEXT NOT NULL,
		role             TEXT NOT NULL,
		post_url         TEXT NOT NULL,
		posted_at        TEXT NOT NULL,
		experience_text  TEXT NOT NULL,
		visa_sponsorship INTEGER NOT NULL,
		snippet          TEXT NOT NULL,
		scraped_at       TEXT NOT NULL
	)`
	if _, err := db.Exec(createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating postings table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Load returns every persisted posting in insertion order.
func (s *SQLiteStore) Load() ([]model.JobPosting, error) {
	rows, err := s.db.Query(`SELECT id, title, company, location, role, post_url,
		posted_at, experience_text, visa_sponsorship, snippet, scraped_at
		FROM postings ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("loading postings: %w", err)
	}
	defer rows.Close()

	var postings []model.JobPosting
	for rows.Next() {
		var p model.JobPosting
		var visa int
		if err := rows.Scan(&p.ID, &p.Title, &p.Company, &p.Location, &p.Role,
			&p.PostURL, &p.PostedAt, &p.ExperienceText, &visa, &p.Snippet, &p.ScrapedAt); err != nil {
			return nil, fmt.Errorf("scanning posting: %w", err)
		}
		p.VisaSponsorship = visa != 0
		postings = append(postings, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("loading postings: %w", err)
	}
	return postings, nil
}

// Persist inserts any posting not already present. Existing rows are left
// untouched; the collection only grows.
func (s *SQLiteStore) Persist(postings []model.JobPosting) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning persist: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT OR IGNORE INTO postings
		(id, title, company, location, role, post_url, posted_at,
		 experience_text, visa_sponsorship, snippet, scraped_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range postings {
		visa := 0
		if p.VisaSponsorship {
			visa = 1
		}
		if _, err := stmt.Exec(p.ID, p.Title, p.Company, p.Location, string(p.Role),
			p.PostURL, p.PostedAt, p.ExperienceText, visa, p.Snippet, p.ScrapedAt); err != nil {
			return fmt.Errorf("inserting posting %s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing persist: %w", err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
