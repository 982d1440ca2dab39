// Package view holds the client-side filter state over a catalog
// snapshot. The State is owned by whoever renders it; nothing here is
// package-global, so instances are independently testable.
package view

import (
	"sort"
	"strings"

	"github.com/MatthewDes/EcosolGIS-website/internal/catalog"
)

type State struct {
	all        catalog.Catalog
	activeTags map[string]bool
	searchTerm string
}

func NewState() *State {
	return &State{activeTags: make(map[string]bool)}
}

// SetCatalog replaces the snapshot the filters run against.
func (s *State) SetCatalog(cat catalog.Catalog) {
	s.all = cat
}

func (s *State) Catalog() catalog.Catalog { return s.all }

// SetSearch updates the free-text term. Matching is case-folded, so the
// term is folded once here.
func (s *State) SetSearch(term string) {
	s.searchTerm = strings.ToLower(strings.TrimSpace(term))
}

func (s *State) Search() string { return s.searchTerm }

// ClearSearch drops the term, used when the user cancels input.
func (s *State) ClearSearch() {
	s.searchTerm = ""
}

// ToggleTag flips a tag's membership in the active filter set.
func (s *State) ToggleTag(tag string) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if s.activeTags[tag] {
		delete(s.activeTags, tag)
	} else {
		s.activeTags[tag] = true
	}
}

func (s *State) TagActive(tag string) bool {
	return s.activeTags[strings.ToLower(strings.TrimSpace(tag))]
}

// ActiveTags returns the active filter set in vocabulary order.
func (s *State) ActiveTags() []string {
	if len(s.activeTags) == 0 {
		return nil
	}
	var out []string
	for _, t := range s.TagVocabulary() {
		if s.activeTags[t] {
			out = append(out, t)
		}
	}
	return out
}

// Recompute derives the visible sequence: a record stays iff the search
// term matches its title or one of its tags (substring, case-folded, or
// no term is set) AND, when any tag filters are active, at least one of
// its tags is in the active set.
func (s *State) Recompute() catalog.Catalog {
	out := catalog.Catalog{}
	for _, rec := range s.all {
		if s.matchesSearch(rec) && s.matchesTags(rec) {
			out = append(out, rec)
		}
	}
	return out
}

func (s *State) matchesSearch(rec catalog.ProjectRecord) bool {
	if s.searchTerm == "" {
		return true
	}
	if strings.Contains(strings.ToLower(rec.Title), s.searchTerm) {
		return true
	}
	for _, t := range rec.Tags {
		if strings.Contains(strings.ToLower(t), s.searchTerm) {
			return true
		}
	}
	return false
}

func (s *State) matchesTags(rec catalog.ProjectRecord) bool {
	if len(s.activeTags) == 0 {
		return true
	}
	for _, t := range rec.Tags {
		if s.activeTags[strings.ToLower(strings.TrimSpace(t))] {
			return true
		}
	}
	return false
}

// TagVocabulary unions every tag in the snapshot, trimmed, case-folded,
// deduplicated and sorted. It feeds the filter controls.
func (s *State) TagVocabulary() []string {
	seen := make(map[string]bool)
	var out []string
	for _, rec := range s.all {
		for _, t := range rec.Tags {
			t = strings.ToLower(strings.TrimSpace(t))
			if t == "" || seen[t] {
				continue
			}
			seen[t] = true
			out = append(out, t)
		}
	}
	sort.Strings(out)
	return out
}
