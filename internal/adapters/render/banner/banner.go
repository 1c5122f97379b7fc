package banner

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	Title   = "Rebor Bot - Balance Injector"
	Tagline = "🚀 Boost your Rebor balance with ease!"

	width = 50
)

// Render draws the startup banner as a two-row bordered box.
func Render() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "205", Dark: "219"}).
		Padding(0, 1).
		Width(width - 2)
	tagline := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")).
		Padding(0, 1).
		Width(width - 2)
	divider := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Render(strings.Repeat("─", width-2))

	box := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("241"))

	return box.Render(lipgloss.JoinVertical(lipgloss.Left,
		title.Render(Title),
		divider,
		tagline.Render(Tagline),
	))
}
