package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MatthewDes/EcosolGIS-website/internal/catalog"
)

func loadedApp(t *testing.T, cat catalog.Catalog) *App {
	t.Helper()
	app := NewApp(RunOpts{
		Load:   func(context.Context) (catalog.Catalog, error) { return cat, nil },
		Source: "test",
	})
	model, _ := app.Update(catalogLoadedMsg{cat: cat})
	return model.(*App)
}

func keyMsg(s string) tea.KeyMsg {
	if len(s) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{}
}

func TestLoadPopulatesVisibleList(t *testing.T) {
	cat := catalog.Catalog{
		{Title: "Wetland Survey", Tags: []string{"ecology", "gis"}},
		{Title: "Dune Mapping", Tags: []string{"gis"}},
	}
	app := loadedApp(t, cat)

	if app.loading {
		t.Error("expected loading cleared after snapshot")
	}
	if len(app.visible) != 2 {
		t.Errorf("expected 2 visible records, got %d", len(app.visible))
	}
	if got := app.tagBar.tags; len(got) != 2 || got[0] != "ecology" || got[1] != "gis" {
		t.Errorf("unexpected tag vocabulary: %v", got)
	}
}

func TestLoadErrorEntersErrorState(t *testing.T) {
	app := NewApp(RunOpts{
		Load: func(context.Context) (catalog.Catalog, error) {
			return nil, errors.New("connection refused")
		},
	})
	model, _ := app.Update(loadErrMsg{err: errors.New("connection refused")})
	app = model.(*App)

	if app.loading {
		t.Error("expected loading cleared on error")
	}
	if app.loadErr == nil {
		t.Error("expected loadErr set")
	}
}

func TestStaleDebounceTickIsDropped(t *testing.T) {
	cat := catalog.Catalog{{Title: "Wetland Survey", Tags: []string{"gis"}}}
	app := loadedApp(t, cat)

	// Enter search mode and type; each keystroke bumps the generation.
	model, _ := app.Update(keyMsg("/"))
	app = model.(*App)
	model, _ = app.Update(keyMsg("x"))
	app = model.(*App)
	staleGen := app.searchGen
	model, _ = app.Update(keyMsg("y"))
	app = model.(*App)

	// The stale tick must not apply "x" as the term.
	model, _ = app.Update(searchDebounceMsg{gen: staleGen})
	app = model.(*App)
	if app.state.Search() != "" {
		t.Errorf("stale tick applied search %q", app.state.Search())
	}

	// The current tick applies the full input.
	model, _ = app.Update(searchDebounceMsg{gen: app.searchGen})
	app = model.(*App)
	if app.state.Search() != "xy" {
		t.Errorf("expected search %q, got %q", "xy", app.state.Search())
	}
	if len(app.visible) != 0 {
		t.Errorf("expected no records matching %q, got %d", "xy", len(app.visible))
	}
}

func TestEscClearsSearchImmediately(t *testing.T) {
	cat := catalog.Catalog{{Title: "Wetland Survey", Tags: []string{"gis"}}}
	app := loadedApp(t, cat)

	model, _ := app.Update(keyMsg("/"))
	app = model.(*App)
	model, _ = app.Update(keyMsg("z"))
	app = model.(*App)
	model, _ = app.Update(searchDebounceMsg{gen: app.searchGen})
	app = model.(*App)
	if len(app.visible) != 0 {
		t.Fatalf("expected filtered-out list, got %d records", len(app.visible))
	}

	model, _ = app.Update(keyMsg("esc"))
	app = model.(*App)
	if app.state.Search() != "" {
		t.Errorf("expected search cleared on esc, got %q", app.state.Search())
	}
	if len(app.visible) != 1 {
		t.Errorf("expected full list restored, got %d records", len(app.visible))
	}
}

func TestFilterToggleRecomputes(t *testing.T) {
	cat := catalog.Catalog{
		{Title: "A", Tags: []string{"ecology"}},
		{Title: "B", Tags: []string{"gis"}},
	}
	app := loadedApp(t, cat)

	model, _ := app.Update(keyMsg("f"))
	app = model.(*App)
	// Vocabulary is [ecology gis]; toggle slot 2 = gis.
	model, _ = app.Update(keyMsg("2"))
	app = model.(*App)

	if len(app.visible) != 1 || app.visible[0].Title != "B" {
		t.Errorf("expected only the gis record visible, got %+v", app.visible)
	}
}
