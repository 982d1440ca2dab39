package view

import (
	"reflect"
	"testing"

	"github.com/MatthewDes/EcosolGIS-website/internal/catalog"
)

func wetlandCatalog() catalog.Catalog {
	return catalog.Catalog{
		{Title: "Wetland Survey", Tags: []string{"ecology", "gis"}, File: "https://x/a.pdf"},
	}
}

func testState(cat catalog.Catalog) *State {
	s := NewState()
	s.SetCatalog(cat)
	return s
}

func titles(cat catalog.Catalog) []string {
	var out []string
	for _, r := range cat {
		out = append(out, r.Title)
	}
	return out
}

func TestSearchMatchesTitle(t *testing.T) {
	s := testState(wetlandCatalog())

	s.SetSearch("wetland")
	if got := s.Recompute(); len(got) != 1 {
		t.Errorf("search 'wetland': expected 1 record, got %d", len(got))
	}

	s.SetSearch("forest")
	if got := s.Recompute(); len(got) != 0 {
		t.Errorf("search 'forest': expected 0 records, got %d", len(got))
	}
}

func TestSearchMatchesTags(t *testing.T) {
	s := testState(wetlandCatalog())
	s.SetSearch("ecol")
	if got := s.Recompute(); len(got) != 1 {
		t.Errorf("search 'ecol': expected tag substring match, got %d records", len(got))
	}
}

func TestSearchIsCaseFolded(t *testing.T) {
	s := testState(wetlandCatalog())
	s.SetSearch("  WETLAND  ")
	if got := s.Recompute(); len(got) != 1 {
		t.Errorf("expected case-folded trimmed search to match, got %d records", len(got))
	}
}

func TestTagFilterMembership(t *testing.T) {
	s := testState(wetlandCatalog())

	s.ToggleTag("gis")
	if got := s.Recompute(); len(got) != 1 {
		t.Errorf("filter {gis}: expected 1 record, got %d", len(got))
	}

	s.ToggleTag("gis")
	s.ToggleTag("ocean")
	if got := s.Recompute(); len(got) != 0 {
		t.Errorf("filter {ocean}: expected 0 records, got %d", len(got))
	}
}

func TestTagFiltersAreORCombined(t *testing.T) {
	cat := catalog.Catalog{
		{Title: "A", Tags: []string{"ecology"}},
		{Title: "B", Tags: []string{"gis"}},
		{Title: "C", Tags: []string{"ocean"}},
	}
	s := testState(cat)
	s.ToggleTag("ecology")
	s.ToggleTag("gis")

	got := titles(s.Recompute())
	want := []string{"A", "B"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestSearchAndTagFilterBothApply(t *testing.T) {
	cat := catalog.Catalog{
		{Title: "Wetland Survey", Tags: []string{"ecology"}},
		{Title: "Wetland Atlas", Tags: []string{"gis"}},
	}
	s := testState(cat)
	s.SetSearch("wetland")
	s.ToggleTag("gis")

	got := titles(s.Recompute())
	if !reflect.DeepEqual(got, []string{"Wetland Atlas"}) {
		t.Errorf("expected only the gis record, got %v", got)
	}
}

func TestRecomputeIsIdempotent(t *testing.T) {
	cat := catalog.Catalog{
		{Title: "A", Tags: []string{"ecology"}},
		{Title: "B", Tags: []string{"gis"}},
	}
	s := testState(cat)
	s.SetSearch("a")
	first := s.Recompute()
	second := s.Recompute()
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated Recompute differs: %v vs %v", first, second)
	}
}

func TestClearSearchRestoresAll(t *testing.T) {
	s := testState(wetlandCatalog())
	s.SetSearch("forest")
	if got := s.Recompute(); len(got) != 0 {
		t.Fatalf("expected no match, got %d", len(got))
	}
	s.ClearSearch()
	if got := s.Recompute(); len(got) != 1 {
		t.Errorf("expected all records after ClearSearch, got %d", len(got))
	}
}

func TestTagVocabulary(t *testing.T) {
	cat := catalog.Catalog{
		{Title: "A", Tags: []string{" GIS ", "ecology"}},
		{Title: "B", Tags: []string{"gis", "Ocean", ""}},
	}
	s := testState(cat)

	got := s.TagVocabulary()
	want := []string{"ecology", "gis", "ocean"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TagVocabulary = %v, want %v", got, want)
	}
}

func TestActiveTagsFollowVocabularyOrder(t *testing.T) {
	cat := catalog.Catalog{
		{Title: "A", Tags: []string{"ocean", "ecology", "gis"}},
	}
	s := testState(cat)
	s.ToggleTag("ocean")
	s.ToggleTag("ecology")

	got := s.ActiveTags()
	want := []string{"ecology", "ocean"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ActiveTags = %v, want %v", got, want)
	}
}

func TestEmptyCatalogRecomputesEmpty(t *testing.T) {
	s := testState(nil)
	if got := s.Recompute(); len(got) != 0 {
		t.Errorf("expected empty result, got %d", len(got))
	}
	if vocab := s.TagVocabulary(); len(vocab) != 0 {
		t.Errorf("expected empty vocabulary, got %v", vocab)
	}
}
