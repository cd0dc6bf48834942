// ABOUTME: Shared lipgloss styles for consistent CLI output
// ABOUTME: Defines the palette and the pass/warn/fail markers used by every command

package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#10B981") // Green
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Danger    = lipgloss.Color("#EF4444") // Red
	Muted     = lipgloss.Color("#6B7280") // Gray

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Label = lipgloss.NewStyle().
		Foreground(Muted)

	StatusOK = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	StatusWarning = lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true)

	StatusCritical = lipgloss.NewStyle().
			Foreground(Danger).
			Bold(true)
)

// Verdict renders PASS or FAIL in the matching status color
func Verdict(pass bool) string {
	if pass {
		return StatusOK.Render("PASS")
	}
	return StatusCritical.Render("FAIL")
}

// Mark renders a check or cross in the matching status color
func Mark(pass bool) string {
	if pass {
		return StatusOK.Render("✓")
	}
	return StatusCritical.Render("✗")
}

// Quality colors a link quality label: excellent and good are OK,
// marginal warns, anything else is critical.
func Quality(q string) string {
	switch q {
	case "excellent", "good":
		return StatusOK.Render(q)
	case "marginal":
		return StatusWarning.Render(q)
	default:
		return StatusCritical.Render(q)
	}
}
