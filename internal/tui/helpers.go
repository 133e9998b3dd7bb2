package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// truncate shortens a string to limit display width with ellipsis
func truncate(s string, limit int) string {
	if lipgloss.Width(s) <= limit {
		return s
	}
	if limit <= 3 {
		return strings.Repeat(".", max(limit, 0))
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+3 > limit {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}

// pad right-pads s with spaces to width, ignoring ANSI styling
func pad(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
