package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func renderStatusBar(shown, total int, filterLabel string, width int, searching bool) string {
	left := fmt.Sprintf(" %d/%d projects", shown, total)
	if filterLabel != "All" {
		left += " · " + filterLabel
	}

	right := " / search  f filter  o open  r reload  ? help  q quit "
	if searching {
		right = " esc cancel  enter apply "
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + fmt.Sprintf("%*s", gap, "") + right

	return statusBarStyle.Width(width).Render(bar)
}
