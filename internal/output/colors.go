package output

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

var styled = isatty.IsTerminal(os.Stdout.Fd()) &&
	termenv.ColorProfile() != termenv.Ascii

var (
	tipStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	memberStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	updatedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	skippedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	failedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

// ColorTip styles a stack tip branch name
func ColorTip(name string) string {
	if !styled {
		return name
	}
	return tipStyle.Render(name)
}

// ColorMember styles a non-tip stack member branch name
func ColorMember(name string) string {
	if !styled {
		return name
	}
	return memberStyle.Render(name)
}

// ColorDim makes text dim/gray
func ColorDim(text string) string {
	if !styled {
		return text
	}
	return dimStyle.Render(text)
}

// ColorHeading styles a batch summary heading by outcome
func ColorHeading(kind, text string) string {
	if !styled {
		return text
	}
	switch kind {
	case "updated":
		return updatedStyle.Render(text)
	case "skipped":
		return skippedStyle.Render(text)
	case "failed":
		return failedStyle.Render(text)
	}
	return text
}
