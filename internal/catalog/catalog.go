// Package catalog defines the project archive's data model and the
// contract every backing store implements.
package catalog

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// ProjectRecord is one archived document. Records are keyed by their
// case-folded title; there is no separate identifier.
type ProjectRecord struct {
	Title     string    `json:"title"`
	Tags      []string  `json:"tags"`
	File      string    `json:"file"`
	CreatedAt time.Time `json:"createdAt"`
}

// Catalog is the full ordered collection of records, insertion order
// preserved.
type Catalog []ProjectRecord

// Candidate is caller-supplied input for Append. CreatedAt is assigned
// by the store, never the caller.
type Candidate struct {
	Title string   `json:"title"`
	File  string   `json:"file"`
	Tags  []string `json:"tags"`
}

// Key returns the uniqueness and lookup key for a title: trimmed and
// case-folded. Duplicate detection and deletion both match on it.
func Key(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}

// Validate normalizes the candidate in place and reports whether it can
// be stored: title and file must be non-empty after trimming, file must
// parse as an absolute http/https URL, and blank tags are dropped. A nil
// tag slice becomes an empty one so stored records always carry a
// sequence.
func (c *Candidate) Validate() error {
	c.Title = strings.TrimSpace(c.Title)
	if c.Title == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}

	c.File = strings.TrimSpace(c.File)
	if c.File == "" {
		return fmt.Errorf("%w: file is required", ErrValidation)
	}
	u, err := url.Parse(c.File)
	if err != nil {
		return fmt.Errorf("%w: invalid file URL: %v", ErrValidation, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: file URL scheme must be http or https, got %q", ErrValidation, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: file URL must be absolute", ErrValidation)
	}

	tags := make([]string, 0, len(c.Tags))
	for _, t := range c.Tags {
		t = strings.TrimSpace(t)
		if t != "" {
			tags = append(tags, t)
		}
	}
	c.Tags = tags

	return nil
}

// Record materializes the validated candidate with the given creation
// time.
func (c Candidate) Record(now time.Time) ProjectRecord {
	return ProjectRecord{
		Title:     c.Title,
		Tags:      c.Tags,
		File:      c.File,
		CreatedAt: now,
	}
}

// FindByTitle returns the index of the record whose case-folded title
// matches, or -1.
func (cat Catalog) FindByTitle(title string) int {
	key := Key(title)
	for i, r := range cat {
		if Key(r.Title) == key {
			return i
		}
	}
	return -1
}

// Store is the narrow persistence contract of the catalog. Both the
// JSON file store and the sqlite store implement it, so callers never
// depend on the backing format.
type Store interface {
	// ListAll reads the full catalog. A missing backing document is an
	// empty catalog, not an error.
	ListAll() (Catalog, error)

	// Append validates the candidate, rejects case-insensitive duplicate
	// titles, assigns CreatedAt and persists. Returns the stored record.
	Append(c Candidate) (ProjectRecord, error)

	// DeleteByTitle removes the record matching the case-folded title and
	// returns it.
	DeleteByTitle(title string) (ProjectRecord, error)

	Close() error
}
