package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleStatusHP = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("203")).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleText = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleHeading = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("81"))

	styleLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleGain = lipgloss.NewStyle().
			Foreground(lipgloss.Color("228"))

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleTrace = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// lineKind identifies the type of an output line for styling.
type lineKind int

const (
	kindText lineKind = iota
	kindHeading
	kindField
	kindGain
	kindSystem
	kindError
	kindTrace
)

// sheetLabels are the field prefixes of the character sheet.
var sheetLabels = []string{
	"Tags:", "Class:", "Species:", "Stats:", "Resources:",
	"Actions:", "Inventory:", "Features:", "Total weight:",
}

// classifyLine determines what kind of output line this is.
func classifyLine(line string) lineKind {
	switch {
	case strings.HasPrefix(line, "[trace]"):
		return kindTrace
	case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
		return kindSystem
	case hasLabel(line):
		return kindField
	case strings.HasPrefix(line, "Gained "),
		strings.Contains(line, " is now "),
		strings.Contains(line, " receives "):
		return kindGain
	case strings.Contains(line, "is not carrying"),
		strings.Contains(line, "cannot "),
		strings.HasPrefix(line, "Cannot "),
		strings.HasPrefix(line, "No item"),
		strings.HasPrefix(line, "I don't know"),
		strings.Contains(line, ": bad "):
		return kindError
	case isHeading(line):
		return kindHeading
	default:
		return kindText
	}
}

func hasLabel(line string) bool {
	for _, l := range sheetLabels {
		if strings.HasPrefix(line, l) {
			return true
		}
	}
	return false
}

// isHeading matches the sheet's "Name: description" first line: a short
// capitalized name before the first colon.
func isHeading(line string) bool {
	i := strings.Index(line, ": ")
	if i <= 0 || i > 30 {
		return false
	}
	name := line[:i]
	return name[0] >= 'A' && name[0] <= 'Z' && !strings.ContainsAny(name, "[]()")
}

// styledField renders "Label: value" with a dim label.
func styledField(line string) string {
	i := strings.Index(line, ":")
	if i < 0 {
		return styleText.Render(line)
	}
	return styleLabel.Render(line[:i+1]) + styleText.Render(line[i+1:])
}

// styledSystemMsg renders a system message in gray with brackets.
func styledSystemMsg(text string) string {
	return styleSystem.Render("[" + text + "]")
}
