// Package jsonfile persists the catalog as a single JSON document.
//
// Every mutation is a whole-document read-modify-write with a
// timestamped backup copy taken first. Mutations are serialized behind
// a mutex within one process; across processes the store assumes a
// single writer, so concurrent external writers can lose updates.
package jsonfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/MatthewDes/EcosolGIS-website/internal/catalog"
)

const backupStamp = "20060102-150405"

// document is the on-disk wrapper layout. Reads also accept a bare
// array; writes always produce the wrapper.
type document struct {
	Projects catalog.Catalog `json:"projects"`
}

type Store struct {
	path string
	log  *zap.Logger

	mu sync.Mutex

	now func() time.Time
}

// Open prepares a store backed by the JSON document at path. The file
// itself is created lazily on first write.
func Open(path string, log *zap.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{path: path, log: log, now: time.Now}, nil
}

func (s *Store) Close() error { return nil }

// ListAll reads the backing document in full. A missing file is an
// empty catalog.
func (s *Store) ListAll() (catalog.Catalog, error) {
	cat, _, err := s.read()
	return cat, err
}

// Append validates the candidate, rejects duplicate titles, assigns the
// creation time and persists the grown catalog.
func (s *Store) Append(c catalog.Candidate) (catalog.ProjectRecord, error) {
	if err := c.Validate(); err != nil {
		return catalog.ProjectRecord{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cat, raw, err := s.read()
	if err != nil {
		return catalog.ProjectRecord{}, err
	}

	if cat.FindByTitle(c.Title) >= 0 {
		return catalog.ProjectRecord{}, fmt.Errorf("%w: %q", catalog.ErrDuplicateTitle, c.Title)
	}

	rec := c.Record(s.now())
	if err := s.write(append(cat, rec), raw); err != nil {
		return catalog.ProjectRecord{}, err
	}
	return rec, nil
}

// DeleteByTitle removes the record whose case-folded title matches and
// persists the shrunk catalog.
func (s *Store) DeleteByTitle(title string) (catalog.ProjectRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cat, raw, err := s.read()
	if err != nil {
		return catalog.ProjectRecord{}, err
	}

	i := cat.FindByTitle(title)
	if i < 0 {
		return catalog.ProjectRecord{}, fmt.Errorf("%w: %q", catalog.ErrNotFound, title)
	}

	removed := cat[i]
	cat = append(cat[:i:i], cat[i+1:]...)
	if err := s.write(cat, raw); err != nil {
		return catalog.ProjectRecord{}, err
	}
	return removed, nil
}

// read returns the parsed catalog plus the raw bytes currently on disk,
// which the backup step reuses so a mutation copies exactly what it
// read.
func (s *Store) read() (catalog.Catalog, []byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return catalog.Catalog{}, nil, nil
		}
		return nil, nil, fmt.Errorf("%w: reading %s: %v", catalog.ErrStorageUnavailable, s.path, err)
	}

	cat, err := decode(data)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %v", catalog.ErrCorruptData, s.path, err)
	}
	return cat, data, nil
}

// decode accepts both document layouts: a bare record array and the
// {projects: [...]} wrapper.
func decode(data []byte) (catalog.Catalog, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return catalog.Catalog{}, nil
	}

	if trimmed[0] == '[' {
		var cat catalog.Catalog
		if err := json.Unmarshal(data, &cat); err != nil {
			return nil, err
		}
		return cat, nil
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Projects == nil {
		doc.Projects = catalog.Catalog{}
	}
	return doc.Projects, nil
}

func (s *Store) write(cat catalog.Catalog, prev []byte) error {
	s.backup(prev)

	data, err := json.MarshalIndent(document{Projects: cat}, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encoding catalog: %v", catalog.ErrStorageUnavailable, err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("%w: writing %s: %v", catalog.ErrStorageUnavailable, s.path, err)
	}
	return nil
}

// backup copies the previous document contents to a timestamped sibling
// before a write. Backups are advisory: a failure is logged and never
// blocks the write, and there is nothing to back up on the first write.
func (s *Store) backup(prev []byte) {
	if prev == nil {
		return
	}
	path := BackupPath(s.path, s.now())
	if err := os.WriteFile(path, prev, 0o644); err != nil {
		s.log.Warn("catalog backup failed", zap.String("path", path), zap.Error(err))
		return
	}
	s.log.Debug("catalog backed up", zap.String("path", path))
}

// BackupPath derives the timestamped backup name for a catalog path:
// projects.json becomes projects.backup-20060102-150405.json.
func BackupPath(path string, t time.Time) string {
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	return fmt.Sprintf("%s.backup-%s%s", base, t.Format(backupStamp), ext)
}

// BackupGlob matches every backup sibling of a catalog path.
func BackupGlob(path string) string {
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	return base + ".backup-*" + ext
}
