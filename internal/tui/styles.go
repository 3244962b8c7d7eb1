package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Underline(true)
	subtleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	activeTabStyle = lipgloss.NewStyle().Bold(true).Reverse(true).Padding(0, 1)
	tabStyle       = lipgloss.NewStyle().Padding(0, 1)
	cursorStyle    = lipgloss.NewStyle().Bold(true)
)

// statusColors maps a status value to a badge colour. Unknown statuses render grey.
var statusColors = map[string]lipgloss.Color{
	"active":      "2",
	"available":   "2",
	"completed":   "2",
	"inactive":    "1",
	"sold":        "1",
	"cancelled":   "1",
	"pending":     "3",
	"maintenance": "3",
	"in-progress": "4",
	"occupied":    "4",
}

func badge(status string) string {
	color, ok := statusColors[status]
	if !ok {
		color = "8"
	}
	return lipgloss.NewStyle().Foreground(color).Render("[" + statusLabel(status) + "]")
}
