package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Title styling
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4"))

	// Error styling
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	// Success styling
	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true)

	// Warning styling
	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFB86C")).
			Bold(true)

	// Spinner styling
	SpinnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7D56F4"))

	// Subtle text styling
	SubtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// Success renders a checklist line for a completed step.
func Success(msg string) string {
	return SuccessStyle.Render("✅") + " " + msg
}

// Failure renders a checklist line for a failed step.
func Failure(msg string) string {
	return ErrorStyle.Render("❌ Error:") + " " + msg
}

// Hyperlink wraps text in an OSC 8 terminal hyperlink to target.
func Hyperlink(target, text string) string {
	return "\x1b]8;;file://" + target + "\x07" + text + "\x1b]8;;\x07"
}
