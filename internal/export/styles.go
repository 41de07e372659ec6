package export

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorIndex    = lipgloss.Color("#6B7280") // Gray
	colorCommand  = lipgloss.Color("#8B5CF6") // Violet
	colorArgument = lipgloss.Color("#06B6D4") // Cyan
)

type listingStyles struct {
	index    func(...string) string
	command  func(...string) string
	argument func(...string) string
	muted    func(...string) string
}

var plainStyles = listingStyles{
	index:    plain,
	command:  plain,
	argument: plain,
	muted:    plain,
}

var colorStyles = listingStyles{
	index:    lipgloss.NewStyle().Foreground(colorIndex).Render,
	command:  lipgloss.NewStyle().Foreground(colorCommand).Bold(true).Render,
	argument: lipgloss.NewStyle().Foreground(colorArgument).Render,
	muted:    lipgloss.NewStyle().Foreground(colorIndex).Italic(true).Render,
}

// plain matches lipgloss Render's joining without adding escape codes.
func plain(s ...string) string {
	return strings.Join(s, " ")
}
