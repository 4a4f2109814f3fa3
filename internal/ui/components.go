package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// SectionHeader creates a styled section header with a title and color
// Example: "─── TITLE ───────────"
func SectionHeader(title string, color lipgloss.Color) string {
	dashes := strings.Repeat("─", max(25-len(title), 0))
	headerStyle := lipgloss.NewStyle().Foreground(color)
	titleStyle := lipgloss.NewStyle().Foreground(color).Bold(true)

	return fmt.Sprintf("%s%s%s",
		headerStyle.Render("  ─── "),
		titleStyle.Render(title),
		headerStyle.Render(" "+dashes),
	)
}

// CommitMessage renders a commit message with its type highlighted
func CommitMessage(message string) string {
	commitType, rest, ok := strings.Cut(message, ":")
	if !ok {
		return lipgloss.NewStyle().Foreground(ColorWhite).Bold(true).Render(message)
	}
	typeStyle := lipgloss.NewStyle().Foreground(TypeColor(commitType)).Bold(true)
	restStyle := lipgloss.NewStyle().Foreground(ColorWhite)
	return typeStyle.Render(commitType+":") + restStyle.Render(rest)
}

// YesNoButtons creates interactive Yes/No buttons
// selection: 0 for Yes, 1 for No
func YesNoButtons(selection int) string {
	yesColor, noColor := ColorDarkGray, ColorDarkGray
	yesText, noText := ColorWhite, ColorWhite
	iconYes, iconNo := " ", " "

	switch selection {
	case 0:
		yesColor, yesText, iconYes = ColorGreen, ColorGreen, ">"
	case 1:
		noColor, noText, iconNo = ColorRed, ColorRed, ">"
	}

	yesStyle := lipgloss.NewStyle().Foreground(yesColor)
	yesTextStyle := lipgloss.NewStyle().Foreground(yesText).Bold(true)
	noStyle := lipgloss.NewStyle().Foreground(noColor)
	noTextStyle := lipgloss.NewStyle().Foreground(noText).Bold(true)

	line1 := yesStyle.Render("  ┌────────┐") + " " + noStyle.Render("┌───────┐")
	line2 := fmt.Sprintf("%s%s%s %s%s%s",
		yesStyle.Render("  │"),
		yesTextStyle.Render(fmt.Sprintf(" %s  YES ", iconYes)),
		yesStyle.Render("│"),
		noStyle.Render("│"),
		noTextStyle.Render(fmt.Sprintf(" %s  NO ", iconNo)),
		noStyle.Render("│"),
	)
	line3 := yesStyle.Render("  └────────┘") + " " + noStyle.Render("└───────┘")

	return line1 + "\n" + line2 + "\n" + line3
}

// KeyBinding renders a key binding hint
func KeyBinding(key, description string, color lipgloss.Color) string {
	keyStyle := lipgloss.NewStyle().Foreground(color).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(ColorWhite)

	return fmt.Sprintf("%s %s",
		keyStyle.Render(key),
		descStyle.Render(description),
	)
}

// KeyBindings joins several hints with a separator
func KeyBindings(hints ...string) string {
	sep := lipgloss.NewStyle().Foreground(ColorDarkGray).Render("  •  ")
	return "  " + strings.Join(hints, sep)
}

// StatusIcon returns the appropriate status icon and color
func StatusIcon(status string) (string, lipgloss.Color) {
	switch status {
	case "success", "done":
		return "✓", ColorGreen
	case "retry":
		return "↻", ColorBlue
	case "skipped", "cancelled":
		return "⊘", ColorYellow
	case "failed", "error":
		return "✗", ColorRed
	case "loading", "active":
		return "⏳", ColorYellow
	default:
		return "·", ColorDarkGray
	}
}

// StatusLine renders an icon followed by text in the icon's color
func StatusLine(status, text string) string {
	icon, color := StatusIcon(status)
	return lipgloss.NewStyle().Foreground(color).Render("  " + icon + " " + text)
}

// Box creates a bordered box
func Box(content string, borderColor lipgloss.Color) string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1)

	return style.Render(content)
}

// Dim renders secondary text
func Dim(text string) string {
	return lipgloss.NewStyle().Foreground(ColorDarkGray).Render(text)
}

// ErrorText renders an error line
func ErrorText(text string) string {
	return lipgloss.NewStyle().Foreground(ColorRed).Bold(true).Render(text)
}
