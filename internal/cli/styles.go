package cli

import "github.com/charmbracelet/lipgloss"

var (
	groupHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("114"))

	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	pendingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	faintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

// colorDot renders a habit's color swatch.
func colorDot(hex string) string {
	if hex == "" {
		return "●"
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("●")
}

// checkMark renders a completion marker for list and weekly views.
func checkMark(completed bool) string {
	if completed {
		return doneStyle.Render("✓")
	}
	return pendingStyle.Render("·")
}
