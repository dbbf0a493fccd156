package format

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

// DefaultBadgeOverflow is the largest count shown verbatim.
const DefaultBadgeOverflow = 99

// BadgeText renders an unread count the way the bell shows it: "" for zero,
// the number up to overflow, and "<overflow>+" above it.
func BadgeText(count, overflow int) string {
	if overflow <= 0 {
		overflow = DefaultBadgeOverflow
	}
	switch {
	case count <= 0:
		return ""
	case count > overflow:
		return strconv.Itoa(overflow) + "+"
	default:
		return strconv.Itoa(count)
	}
}

var badgeStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("15")).
	Background(lipgloss.Color("9")).
	Bold(true).
	Padding(0, 1)

// Bell renders "🔔" followed by a styled badge when count is non-zero.
func Bell(count, overflow int) string {
	text := BadgeText(count, overflow)
	if text == "" {
		return "🔔"
	}
	return "🔔 " + badgeStyle.Render(text)
}
