package display

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rpggio/clipdeck/internal/domain/project"
)

var (
	badgeBase = lipgloss.NewStyle().Padding(0, 1).Bold(true)

	statusStyles = map[project.ClipStatus]lipgloss.Style{
		project.ClipPending:    badgeBase.Foreground(lipgloss.Color("245")),
		project.ClipProcessing: badgeBase.Foreground(lipgloss.Color("33")),
		project.ClipReady:      badgeBase.Foreground(lipgloss.Color("42")),
		project.ClipFailed:     badgeBase.Foreground(lipgloss.Color("196")),
	}

	// Heading styles section titles in CLI output.
	Heading = lipgloss.NewStyle().Bold(true).Underline(true)
	// Muted styles secondary text.
	Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// StatusLabel returns the plain label for a clip status.
func StatusLabel(status project.ClipStatus) string {
	switch status {
	case project.ClipPending:
		return "Pending"
	case project.ClipProcessing:
		return "Processing"
	case project.ClipReady:
		return "Ready"
	case project.ClipFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// StatusBadge renders a colored status label.
func StatusBadge(status project.ClipStatus) string {
	style, ok := statusStyles[status]
	if !ok {
		style = badgeBase
	}
	return style.Render(StatusLabel(status))
}
