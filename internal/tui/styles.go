package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/existflow/taskdeck/internal/model"
)

// Color palette based on TUI design
var (
	// Priority colors
	PriorityHigh   = lipgloss.Color("#FF6B6B") // Red
	PriorityMedium = lipgloss.Color("#FFE66D") // Yellow
	PriorityLow    = lipgloss.Color("#4ECDC4") // Blue

	// Tag colors, keyed by the tokens stored on tasks
	TagGreen  = lipgloss.Color("#95E1A3")
	TagBlue   = lipgloss.Color("#4ECDC4")
	TagRed    = lipgloss.Color("#FF6B6B")
	TagYellow = lipgloss.Color("#FFE66D")

	Starred = lipgloss.Color("#FFB347") // Orange
	Overdue = lipgloss.Color("#FF6B6B") // Red

	// UI colors
	Primary   = lipgloss.Color("#4ECDC4")
	Secondary = lipgloss.Color("#6C757D")
	Surface   = lipgloss.Color("#16213e")
	Text      = lipgloss.Color("#FFFFFF")
	TextMuted = lipgloss.Color("#888888")
	Border    = lipgloss.Color("#333333")
	Danger    = lipgloss.Color("#FF5555")
)

// Styles
var (
	// Header
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			Padding(0, 1)

	// Task table
	TableStyle = lipgloss.NewStyle().
			Padding(1, 2)

	ColumnHeaderStyle = lipgloss.NewStyle().
				Foreground(TextMuted).
				Bold(true)

	BucketHeaderStyle = lipgloss.NewStyle().
				Foreground(Primary).
				Bold(true).
				MarginTop(1)

	// Task row
	TaskItemStyle = lipgloss.NewStyle()

	TaskItemSelectedStyle = lipgloss.NewStyle().
				Background(Surface).
				Bold(true)

	StarStyle    = lipgloss.NewStyle().Foreground(Starred)
	OverdueStyle = lipgloss.NewStyle().Foreground(Overdue).Bold(true)

	// Priority badges
	PriorityHighStyle   = lipgloss.NewStyle().Foreground(PriorityHigh).Bold(true)
	PriorityMediumStyle = lipgloss.NewStyle().Foreground(PriorityMedium)
	PriorityLowStyle    = lipgloss.NewStyle().Foreground(PriorityLow)

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(Border)

	// Modal dialogs
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2)

	DangerModalStyle = ModalStyle.
				BorderForeground(Danger)

	LabelStyle        = lipgloss.NewStyle().Foreground(TextMuted)
	LabelFocusedStyle = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	InputStyle        = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(Border)
	ErrorStyle = lipgloss.NewStyle().Foreground(Danger)

	// Help text
	HelpStyle = lipgloss.NewStyle().
			Foreground(TextMuted)
)

// GetPriorityStyle returns the style for a given priority
func GetPriorityStyle(priority model.Priority) lipgloss.Style {
	switch priority {
	case model.PriorityHigh:
		return PriorityHighStyle
	case model.PriorityMedium:
		return PriorityMediumStyle
	default:
		return PriorityLowStyle
	}
}

// FormatPriority returns a formatted priority string
func FormatPriority(priority model.Priority) string {
	return GetPriorityStyle(priority).Render(string(priority))
}

// TagColor maps a stored color token to a terminal color
func TagColor(token string) lipgloss.Color {
	switch token {
	case "green":
		return TagGreen
	case "blue":
		return TagBlue
	case "red":
		return TagRed
	case "yellow":
		return TagYellow
	default:
		return Secondary
	}
}

// FormatTags renders each tag in its color
func FormatTags(tags, colors []string) string {
	out := ""
	for i, tag := range tags {
		token := ""
		if i < len(colors) {
			token = colors[i]
		}
		if i > 0 {
			out += " "
		}
		out += lipgloss.NewStyle().Foreground(TagColor(token)).Render(tag)
	}
	return out
}
