package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/sinanfen/todogether-cli/pkg/domain"
)

var (
	// Base palette — warm rose for "us", cool blue for the partner.
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f472b6")).
			Bold(true)

	heartStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fb7185"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c0c4d0"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e4e4ec")).
			Bold(true)

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f87171"))

	statusMsgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ade80"))

	mineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f472b6")).
			Bold(true)

	partnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#60a5fa")).
			Bold(true)

	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868")).
			Strikethrough(true)

	// Form styles
	fieldLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	fieldFocusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f472b6")).
			Bold(true)

	inputPlaceholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#343c4a"))

	// Help bar
	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	helpLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	sectionHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#606878")).
				Bold(true)
)

// severityColors indexes badge colors by severity.
var severityColors = map[domain.Severity]lipgloss.Color{
	domain.SeverityLow:    lipgloss.Color("#8890a0"),
	domain.SeverityMedium: lipgloss.Color("#60a5fa"),
	domain.SeverityHigh:   lipgloss.Color("#f0944a"),
}

// severityBadge renders the severity label in its color, e.g. "Yüksek".
func severityBadge(s domain.Severity) string {
	c, ok := severityColors[s]
	if !ok {
		c = lipgloss.Color("#8890a0")
	}
	return lipgloss.NewStyle().Foreground(c).Bold(true).Render(s.Label())
}

// statusBadge renders the status label: green when completed, gray otherwise.
func statusBadge(s domain.Status) string {
	if s == domain.StatusCompleted {
		return statusMsgStyle.Render(s.Label())
	}
	return dimStyle.Render(s.Label())
}

// renderHeader renders the app banner with an optional right-hand side.
func renderHeader(right string) string {
	banner := titleStyle.Render("TO-DOGETHER") + " " + heartStyle.Render("♥")
	if right == "" {
		return banner
	}
	return banner + "  " + metaStyle.Render(right)
}

// helpEntry renders a single "key label" pair for help bars.
func helpEntry(key, label string) string {
	return helpKeyStyle.Render(key) + " " + helpLabelStyle.Render(label)
}
