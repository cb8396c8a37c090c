package identity

import (
	"crypto/md5"
	"encoding/hex"

	"github.com/akhilm/jobsift/internal/model"
)

// Width of the derived key in hex characters.
const keyWidth = 12

// Key derives the stable dedup key for a posting from its identity triple.
// The same (title, company, post_url) always yields the same key.
func Key(title, company, postURL string) string {
	sum := md5.Sum([]byte(title + "_" + company + "_" + postURL))
	return hex.EncodeToString(sum[:])[:keyWidth]
}

// DedupIndex tracks the ids and non-empty post URLs already accepted,
// seeded from the persisted collection and grown over one pipeline run.
// Two sources can produce different ids for effectively the same URL
// (differing trimmed titles), so the URL set is checked independently of
// the id set — it is the stronger signal.
type DedupIndex struct {
	ids  map[string]struct{}
	urls map[string]struct{}
}

// NewDedupIndex returns an index seeded with the given postings.
func NewDedupIndex(existing []model.JobPosting) *DedupIndex {
	idx := &DedupIndex{
		ids:  make(map[string]struct{}, len(existing)),
		urls: make(map[string]struct{}, len(existing)),
	}
	for _, p := range existing {
		idx.Add(p)
	}
	return idx
}

// Seen reports whether the posting's id or non-empty URL is already known.
func (d *DedupIndex) Seen(p model.JobPosting) bool {
	if _, ok := d.ids[p.ID]; ok {
		return true
	}
	if p.PostURL != "" {
		if _, ok := d.urls[p.PostURL]; ok {
			return true
		}
	}
	return false
}

// Add records the posting's id and non-empty URL.
func (d *DedupIndex) Add(p model.JobPosting) {
	d.ids[p.ID] = struct{}{}
	if p.PostURL != "" {
		d.urls[p.PostURL] = struct{}{}
	}
}
