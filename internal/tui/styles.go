package tui

import (
	"github.com/charmbracelet/lipgloss"

	"subghz-inspector/internal/plot"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	metaKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("246"))

	metaBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	onStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("120")).
		Bold(true)

	offStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff6b6b")).
			Bold(true)

	promptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	positiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(plot.Positive.Color()))
	negativeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(plot.Negative.Color()))
)

// paintPolarity colors plot glyphs with the class color
func paintPolarity(p plot.Polarity, s string) string {
	if p == plot.Negative {
		return negativeStyle.Render(s)
	}
	return positiveStyle.Render(s)
}
