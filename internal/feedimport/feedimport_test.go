package feedimport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/mmcdole/gofeed"
	"go.uber.org/zap"

	"github.com/MatthewDes/EcosolGIS-website/internal/catalog"
	"github.com/MatthewDes/EcosolGIS-website/internal/store/jsonfile"
)

func TestCandidatesMapping(t *testing.T) {
	feed := &gofeed.Feed{
		Items: []*gofeed.Item{
			{Title: "Wetland Survey", Link: "https://example.com/wetland.pdf", Categories: []string{"ecology"}},
			{Title: "No Link Item"},
			{Title: "Dune Mapping", Link: "https://example.com/dune.pdf"},
		},
	}

	got := Candidates(feed, []string{"imported"})
	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(got))
	}
	if got[0].Title != "Wetland Survey" || got[0].File != "https://example.com/wetland.pdf" {
		t.Errorf("unexpected first candidate: %+v", got[0])
	}
	if len(got[0].Tags) != 2 || got[0].Tags[0] != "ecology" || got[0].Tags[1] != "imported" {
		t.Errorf("unexpected tags: %v", got[0].Tags)
	}
	if len(got[1].Tags) != 1 || got[1].Tags[0] != "imported" {
		t.Errorf("expected extra tag only, got %v", got[1].Tags)
	}
}

const sampleRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Field Reports</title>
    <item>
      <title>Wetland Survey</title>
      <link>https://example.com/wetland.pdf</link>
      <category>ecology</category>
      <category>gis</category>
    </item>
    <item>
      <title>Dune Mapping</title>
      <link>https://example.com/dune.pdf</link>
    </item>
  </channel>
</rss>`

func TestImportAppendsAndSkipsDuplicates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(sampleRSS))
	}))
	defer srv.Close()

	store, err := jsonfile.Open(filepath.Join(t.TempDir(), "projects.json"), zap.NewNop())
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	defer store.Close()

	// Pre-seed one of the feed's titles so it collides.
	if _, err := store.Append(catalog.Candidate{Title: "wetland survey", File: "https://example.com/old.pdf"}); err != nil {
		t.Fatalf("seeding store: %v", err)
	}

	res, err := Import(context.Background(), store, srv.URL, nil)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if len(res.Added) != 1 || res.Added[0].Title != "Dune Mapping" {
		t.Errorf("unexpected added records: %+v", res.Added)
	}
	if len(res.Skipped) != 1 || res.Skipped[0].Title != "Wetland Survey" {
		t.Errorf("unexpected skipped items: %+v", res.Skipped)
	}

	cat, err := store.ListAll()
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(cat) != 2 {
		t.Errorf("expected 2 records after import, got %d", len(cat))
	}
}
