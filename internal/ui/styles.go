package ui

import "github.com/charmbracelet/lipgloss"

var (
	// ColorTCP is used for TCP entries.
	ColorTCP = lipgloss.Color("10") // bright green
	// ColorUDP is used for UDP entries.
	ColorUDP = lipgloss.Color("11") // bright yellow
	// ColorOther is used for entries with any other transport protocol.
	ColorOther = lipgloss.Color("14") // bright cyan
	// ColorMuted is used for de-emphasised text.
	ColorMuted = lipgloss.Color("240")
	// ColorHeader is used for column header text.
	ColorHeader = lipgloss.Color("15") // white

	// StyleTitle is the application title in the top-right corner.
	StyleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	// StyleDivider renders a full-width horizontal rule.
	StyleDivider = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// StyleSelected styles the selected / cursor row.
	StyleSelected = lipgloss.NewStyle().
			Bold(true).
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("15"))

	// StyleLabel is used for field names in the detail page.
	StyleLabel = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorOther)

	// StyleHelp is the footer help bar.
	StyleHelp = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// StyleFilter is used to display active filter labels.
	StyleFilter = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("13"))

	// StyleMuted is used for secondary text.
	StyleMuted = lipgloss.NewStyle().Foreground(ColorMuted)
)

// ProtoStyle returns the foreground style for a protocol tag.
func ProtoStyle(proto string) lipgloss.Style {
	switch proto {
	case "tcp":
		return lipgloss.NewStyle().Foreground(ColorTCP)
	case "udp":
		return lipgloss.NewStyle().Foreground(ColorUDP)
	default:
		return lipgloss.NewStyle().Foreground(ColorOther)
	}
}
