package sqlite

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/MatthewDes/EcosolGIS-website/internal/catalog"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	s, err := Open(filepath.Join(dir, "projects.db"))
	if err != nil {
		t.Fatalf("opening test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAppendAndListAll(t *testing.T) {
	s := testStore(t)

	rec, err := s.Append(catalog.Candidate{
		Title: "Wetland Survey",
		File:  "https://example.com/wetland.pdf",
		Tags:  []string{"ecology", "gis"},
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if rec.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be assigned")
	}

	cat, err := s.ListAll()
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(cat) != 1 {
		t.Fatalf("expected 1 record, got %d", len(cat))
	}
	if cat[0].Title != "Wetland Survey" || len(cat[0].Tags) != 2 {
		t.Errorf("unexpected record: %+v", cat[0])
	}
}

func TestListAllEmpty(t *testing.T) {
	s := testStore(t)
	cat, err := s.ListAll()
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(cat) != 0 {
		t.Errorf("expected empty catalog, got %d", len(cat))
	}
}

func TestInsertionOrderPreserved(t *testing.T) {
	s := testStore(t)
	titles := []string{"Gamma", "Alpha", "Beta"}
	for _, title := range titles {
		if _, err := s.Append(catalog.Candidate{Title: title, File: "https://example.com/x.pdf"}); err != nil {
			t.Fatalf("Append(%s): %v", title, err)
		}
	}
	cat, err := s.ListAll()
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	for i, title := range titles {
		if cat[i].Title != title {
			t.Errorf("position %d: expected %s, got %s", i, title, cat[i].Title)
		}
	}
}

func TestDuplicateTitleRejected(t *testing.T) {
	s := testStore(t)
	if _, err := s.Append(catalog.Candidate{Title: "Wetland Survey", File: "https://example.com/a.pdf"}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	_, err := s.Append(catalog.Candidate{Title: "wetland SURVEY", File: "https://example.com/b.pdf"})
	if !errors.Is(err, catalog.ErrDuplicateTitle) {
		t.Errorf("expected ErrDuplicateTitle, got %v", err)
	}
}

func TestDeleteByTitle(t *testing.T) {
	s := testStore(t)
	if _, err := s.Append(catalog.Candidate{Title: "Wetland Survey", File: "https://example.com/a.pdf", Tags: []string{"gis"}}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	removed, err := s.DeleteByTitle("WETLAND survey")
	if err != nil {
		t.Fatalf("DeleteByTitle: %v", err)
	}
	if removed.Title != "Wetland Survey" || len(removed.Tags) != 1 {
		t.Errorf("unexpected removed record: %+v", removed)
	}

	cat, _ := s.ListAll()
	if len(cat) != 0 {
		t.Errorf("expected empty catalog, got %d", len(cat))
	}
}

func TestDeleteMissingTitle(t *testing.T) {
	s := testStore(t)
	_, err := s.DeleteByTitle("Forest Census")
	if !errors.Is(err, catalog.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCount(t *testing.T) {
	s := testStore(t)
	for _, title := range []string{"A", "B"} {
		if _, err := s.Append(catalog.Candidate{Title: title, File: "https://example.com/x.pdf"}); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	n, err := s.Count()
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2, got %d", n)
	}
}
