package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Banner is the ASCII art header
var Banner = []string{
	"    _    ___       ____  ____ __  __ ",
	"   / \\  |_ _|     / ___|/ ___|  \\/  |",
	"  / _ \\  | |_____| |  _| |   | |\\/| |",
	" / ___ \\ | |_____| |_| | |___| |  | |",
	"/_/   \\_\\___|     \\____|\\____|_|  |_|",
}

// RenderBanner returns the styled banner, with a dry run notice when enabled
func RenderBanner(dryRun bool) string {
	bannerStyle := lipgloss.NewStyle().Foreground(ColorCyan)

	var lines []string
	for _, line := range Banner {
		lines = append(lines, bannerStyle.Render(line))
	}

	if dryRun {
		lines = append(lines, "")
		warningStyle := lipgloss.NewStyle().
			Foreground(ColorYellow).
			Bold(true)
		lines = append(lines, warningStyle.Render("⚠ DRY RUN MODE (nothing will be committed)"))
	}

	return strings.Join(lines, "\n")
}
