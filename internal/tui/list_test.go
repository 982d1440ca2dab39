package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/MatthewDes/EcosolGIS-website/internal/catalog"
)

func TestTruncateStr(t *testing.T) {
	tests := []struct {
		input string
		n     int
		want  string
	}{
		{"hello", 10, "hello"},
		{"hello world", 8, "hello..."},
		{"abc", 3, "abc"},
		{"abcd", 3, "abc"},
		{"", 5, ""},
		{"test", 0, ""},
	}
	for _, tt := range tests {
		got := truncateStr(tt.input, tt.n)
		if got != tt.want {
			t.Errorf("truncateStr(%q, %d) = %q, want %q", tt.input, tt.n, got, tt.want)
		}
	}
}

func TestRelativeTime(t *testing.T) {
	now := time.Now()

	tests := []struct {
		t    time.Time
		want string
	}{
		{now.Add(-30 * time.Second), "just now"},
		{now.Add(-5 * time.Minute), "5m"},
		{now.Add(-3 * time.Hour), "3h"},
		{now.Add(-2 * 24 * time.Hour), "2d"},
	}
	for _, tt := range tests {
		got := relativeTime(tt.t)
		if got != tt.want {
			t.Errorf("relativeTime(%v ago) = %q, want %q", now.Sub(tt.t), got, tt.want)
		}
	}
}

func TestRelativeTimeZeroIsBlank(t *testing.T) {
	if got := relativeTime(time.Time{}); got != "" {
		t.Errorf("relativeTime(zero) = %q, want empty", got)
	}
}

func TestRenderListEmpty(t *testing.T) {
	got := renderList(catalog.Catalog{}, 0, 12, 40)
	if !strings.Contains(got, "No projects match") {
		t.Errorf("expected empty-state message, got %q", got)
	}
}

func TestRenderListShowsSelection(t *testing.T) {
	cat := catalog.Catalog{
		{Title: "Wetland Survey", Tags: []string{"ecology"}},
		{Title: "Dune Mapping", Tags: []string{"gis"}},
	}
	got := renderList(cat, 1, 12, 40)
	if !strings.Contains(got, "> Dune Mapping") {
		t.Errorf("expected cursor marker on selected item, got %q", got)
	}
}
