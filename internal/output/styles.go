package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette. Never use inline lipgloss.Color literals elsewhere.
var (
	// ColorCyan is used for identifiable nouns: file paths, class names, config keys.
	ColorCyan = lipgloss.Color("14")

	// ColorGreen is used for added values and success.
	ColorGreen = lipgloss.Color("82")

	// ColorYellow is used for warnings.
	ColorYellow = lipgloss.Color("220")

	// ColorBoldRed is used for errors (matches ERROR level).
	ColorBoldRed = lipgloss.Color("204")

	// ColorGreenCheck is used for the completion checkmark.
	ColorGreenCheck = lipgloss.Color("10")

	// ColorDimGray is used for borders and other structural chrome.
	ColorDimGray = lipgloss.Color("240")

	// ColorBlue is used for table headers.
	ColorBlue = lipgloss.Color("12")
)

// Semantic styles.
var (
	// StyleNoun styles identifiable nouns (file paths, class names, config keys).
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleDim styles structural chrome (scope prefixes, separators).
	StyleDim = lipgloss.NewStyle().Faint(true)

	// StyleSummary styles completion and summary lines.
	StyleSummary = lipgloss.NewStyle().Bold(true)
)

// Styles groups the styles used by renderers that take them as a value.
type Styles struct {
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}

// GetStyles returns the default style set.
func GetStyles() *Styles {
	return &Styles{
		Bold:    lipgloss.NewStyle().Bold(true),
		Muted:   lipgloss.NewStyle().Foreground(ColorDimGray),
		Success: lipgloss.NewStyle().Foreground(ColorGreen),
		Warning: lipgloss.NewStyle().Foreground(ColorYellow),
		Error:   lipgloss.NewStyle().Bold(true).Foreground(ColorBoldRed),
	}
}

// Validation issue severities.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// SeverityStyle returns the style for an issue severity.
// Unknown severities return an unstyled default.
func SeverityStyle(severity string) lipgloss.Style {
	switch severity {
	case SeverityError:
		return lipgloss.NewStyle().Bold(true).Foreground(ColorBoldRed)
	case SeverityWarning:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	default:
		return lipgloss.NewStyle()
	}
}

// minFieldColumnWidth keeps issue messages aligned across lines.
const minFieldColumnWidth = 20

// FormatIssueLine renders a validation issue.
//
// Format: <severity>  <field>  <message>
func FormatIssueLine(severity, field, message string) string {
	padding := minFieldColumnWidth - len(field)
	if padding < 2 {
		padding = 2
	}
	sev := SeverityStyle(severity).Render(fmt.Sprintf("%-7s", severity))
	return sev + " " + StyleNoun.Render(field) + strings.Repeat(" ", padding) + message
}

// FormatCheckmark renders a green checkmark with a message for stdout output.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(ColorGreenCheck).Render("✔")
	return check + " " + msg
}
