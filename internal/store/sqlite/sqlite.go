// Package sqlite is the embedded-database alternative to the JSON file
// store, selected with `storage: sqlite` in the config. It implements
// the same catalog.Store contract.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/MatthewDes/EcosolGIS-website/internal/catalog"
)

type Store struct {
	readDB  *sql.DB
	writeDB *sql.DB
}

func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	writeDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening write db: %w", err)
	}
	writeDB.SetMaxOpenConns(1)

	readDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		writeDB.Close()
		return nil, fmt.Errorf("opening read db: %w", err)
	}

	s := &Store{readDB: readDB, writeDB: writeDB}
	if err := s.init(); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	// key is the case-folded title; rowid keeps insertion order.
	_, err := s.writeDB.Exec(`
		CREATE TABLE IF NOT EXISTS projects (
			key        TEXT PRIMARY KEY,
			title      TEXT NOT NULL,
			file       TEXT NOT NULL,
			tags       TEXT NOT NULL DEFAULT '[]',
			created_at DATETIME NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	var errs []error
	if s.readDB != nil {
		errs = append(errs, s.readDB.Close())
	}
	if s.writeDB != nil {
		errs = append(errs, s.writeDB.Close())
	}
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}

func (s *Store) ListAll() (catalog.Catalog, error) {
	rows, err := s.readDB.Query(`SELECT title, file, tags, created_at FROM projects ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("%w: querying projects: %v", catalog.ErrStorageUnavailable, err)
	}
	defer rows.Close()

	cat := catalog.Catalog{}
	for rows.Next() {
		var (
			rec  catalog.ProjectRecord
			tags string
		)
		if err := rows.Scan(&rec.Title, &rec.File, &tags, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: scanning project: %v", catalog.ErrStorageUnavailable, err)
		}
		if err := json.Unmarshal([]byte(tags), &rec.Tags); err != nil {
			return nil, fmt.Errorf("%w: tags of %q: %v", catalog.ErrCorruptData, rec.Title, err)
		}
		if rec.Tags == nil {
			rec.Tags = []string{}
		}
		cat = append(cat, rec)
	}
	return cat, rows.Err()
}

func (s *Store) Append(c catalog.Candidate) (catalog.ProjectRecord, error) {
	if err := c.Validate(); err != nil {
		return catalog.ProjectRecord{}, err
	}

	rec := c.Record(time.Now())
	tags, err := json.Marshal(rec.Tags)
	if err != nil {
		return catalog.ProjectRecord{}, fmt.Errorf("%w: encoding tags: %v", catalog.ErrStorageUnavailable, err)
	}

	tx, err := s.writeDB.Begin()
	if err != nil {
		return catalog.ProjectRecord{}, fmt.Errorf("%w: %v", catalog.ErrStorageUnavailable, err)
	}
	defer tx.Rollback()

	var existing string
	err = tx.QueryRow(`SELECT title FROM projects WHERE key = ?`, catalog.Key(rec.Title)).Scan(&existing)
	switch {
	case err == nil:
		return catalog.ProjectRecord{}, fmt.Errorf("%w: %q", catalog.ErrDuplicateTitle, rec.Title)
	case !errors.Is(err, sql.ErrNoRows):
		return catalog.ProjectRecord{}, fmt.Errorf("%w: %v", catalog.ErrStorageUnavailable, err)
	}

	_, err = tx.Exec(
		`INSERT INTO projects (key, title, file, tags, created_at) VALUES (?, ?, ?, ?, ?)`,
		catalog.Key(rec.Title), rec.Title, rec.File, string(tags), rec.CreatedAt,
	)
	if err != nil {
		return catalog.ProjectRecord{}, fmt.Errorf("%w: inserting %q: %v", catalog.ErrStorageUnavailable, rec.Title, err)
	}
	if err := tx.Commit(); err != nil {
		return catalog.ProjectRecord{}, fmt.Errorf("%w: %v", catalog.ErrStorageUnavailable, err)
	}
	return rec, nil
}

func (s *Store) DeleteByTitle(title string) (catalog.ProjectRecord, error) {
	tx, err := s.writeDB.Begin()
	if err != nil {
		return catalog.ProjectRecord{}, fmt.Errorf("%w: %v", catalog.ErrStorageUnavailable, err)
	}
	defer tx.Rollback()

	var (
		rec  catalog.ProjectRecord
		tags string
	)
	err = tx.QueryRow(
		`SELECT title, file, tags, created_at FROM projects WHERE key = ?`, catalog.Key(title),
	).Scan(&rec.Title, &rec.File, &tags, &rec.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return catalog.ProjectRecord{}, fmt.Errorf("%w: %q", catalog.ErrNotFound, title)
	}
	if err != nil {
		return catalog.ProjectRecord{}, fmt.Errorf("%w: %v", catalog.ErrStorageUnavailable, err)
	}
	if err := json.Unmarshal([]byte(tags), &rec.Tags); err != nil {
		return catalog.ProjectRecord{}, fmt.Errorf("%w: tags of %q: %v", catalog.ErrCorruptData, rec.Title, err)
	}
	if rec.Tags == nil {
		rec.Tags = []string{}
	}

	if _, err := tx.Exec(`DELETE FROM projects WHERE key = ?`, catalog.Key(title)); err != nil {
		return catalog.ProjectRecord{}, fmt.Errorf("%w: deleting %q: %v", catalog.ErrStorageUnavailable, title, err)
	}
	if err := tx.Commit(); err != nil {
		return catalog.ProjectRecord{}, fmt.Errorf("%w: %v", catalog.ErrStorageUnavailable, err)
	}
	return rec, nil
}

// Count returns the number of stored records, for the stats command.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.readDB.QueryRow(`SELECT COUNT(*) FROM projects`).Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: %v", catalog.ErrStorageUnavailable, err)
	}
	return n, nil
}
