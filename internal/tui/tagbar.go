package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/MatthewDes/EcosolGIS-website/internal/view"
)

// tagBar renders the tag filter controls over the view state's tag
// vocabulary. Filter membership itself lives in view.State; the bar
// only holds the cursor.
type tagBar struct {
	state      *view.State
	tags       []string
	filterMode bool
	cursor     int
}

func newTagBar(state *view.State) tagBar {
	return tagBar{state: state}
}

// refresh rebuilds the vocabulary after the snapshot changes.
func (b *tagBar) refresh() {
	b.tags = b.state.TagVocabulary()
	if b.cursor >= len(b.tags) {
		b.cursor = 0
	}
}

func (b *tagBar) toggleCurrent() {
	if b.cursor < len(b.tags) {
		b.state.ToggleTag(b.tags[b.cursor])
	}
}

func (b *tagBar) toggleIndex(i int) {
	if i >= 0 && i < len(b.tags) {
		b.state.ToggleTag(b.tags[i])
	}
}

func (b *tagBar) activeLabel() string {
	active := b.state.ActiveTags()
	if active == nil {
		return "All"
	}
	return strings.Join(active, ", ")
}

func (b *tagBar) render(width int) string {
	sep := tabSeparatorStyle.Render(" · ")
	var parts []string

	// "All" tab lights up when no filter is active
	if b.state.ActiveTags() == nil {
		parts = append(parts, tabActiveStyle.Render("All"))
	} else {
		parts = append(parts, tabInactiveStyle.Render("All"))
	}

	for i, tag := range b.tags {
		style := tabInactiveStyle
		if b.state.TagActive(tag) {
			style = tabActiveStyle
		}
		label := tag
		if b.filterMode && i == b.cursor {
			label = "[" + tag + "]"
		}
		parts = append(parts, style.Render(label))
	}

	// Build row with · separators, stopping when we'd exceed width
	var row string
	for i, part := range parts {
		candidate := row
		if i > 0 {
			candidate += sep
		}
		candidate += part
		if lipgloss.Width(candidate) > width && row != "" {
			break
		}
		row = candidate
	}

	barStyle := lipgloss.NewStyle().
		Background(colorTabBg).
		Width(width).
		PaddingLeft(1)
	return barStyle.Render(row)
}
