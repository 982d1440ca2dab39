package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/MatthewDes/EcosolGIS-website/internal/catalog"
)

func relativeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	default:
		return t.Format("Jan 2 2006")
	}
}

func renderListItem(rec catalog.ProjectRecord, selected bool, width int) string {
	if width < 10 {
		width = 30
	}

	var title string
	if selected {
		title = itemSelectedStyle.Render("> " + truncateStr(rec.Title, width-4))
	} else {
		title = itemTitleStyle.Render("  " + truncateStr(rec.Title, width-4))
	}

	meta := "  " + itemTagStyle.Render(truncateStr(strings.Join(rec.Tags, ", "), width-12))
	if when := relativeTime(rec.CreatedAt); when != "" {
		meta += " " + itemTimeStyle.Render("· "+when)
	}

	return title + "\n" + meta
}

func truncateStr(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

func renderList(projects catalog.Catalog, cursor int, height int, width int) string {
	if len(projects) == 0 {
		return centerText("No projects match", width, height)
	}

	// Each item is 2 lines + 1 blank line = 3 lines
	itemHeight := 3
	visible := height / itemHeight
	if visible < 1 {
		visible = 1
	}

	// Scroll offset keeps the cursor in the window
	start := 0
	if cursor >= visible {
		start = cursor - visible + 1
	}
	end := start + visible
	if end > len(projects) {
		end = len(projects)
		start = end - visible
		if start < 0 {
			start = 0
		}
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(renderListItem(projects[i], i == cursor, width))
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

func renderDetail(rec *catalog.ProjectRecord, width, height int) string {
	if rec == nil {
		return centerText("Nothing selected", width, height)
	}

	var b strings.Builder
	b.WriteString(detailTitleStyle.Width(width).Render(rec.Title))
	b.WriteString("\n")
	if len(rec.Tags) > 0 {
		b.WriteString(detailTagStyle.Width(width).Render("tags: " + strings.Join(rec.Tags, ", ")))
		b.WriteString("\n")
	}
	if !rec.CreatedAt.IsZero() {
		b.WriteString(itemTimeStyle.Render("added " + rec.CreatedAt.Format("Jan 2, 2006")))
		b.WriteString("\n")
	}
	b.WriteString(detailLinkStyle.Width(width).Render(rec.File))
	return b.String()
}

func centerText(s string, width, height int) string {
	pad := (width - len(s)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat("\n", height/3) + strings.Repeat(" ", pad) + s
}
