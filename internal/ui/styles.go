package ui

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	ColorCyan       = lipgloss.Color("#00FFFF")
	ColorGreen      = lipgloss.Color("#00FF00")
	ColorYellow     = lipgloss.Color("#FFFF00")
	ColorRed        = lipgloss.Color("#FF0000")
	ColorMagenta    = lipgloss.Color("#FF00FF")
	ColorBlue       = lipgloss.Color("#5555FF")
	ColorPurple     = lipgloss.Color("#AA55FF")
	ColorOrange     = lipgloss.Color("#FFA500")
	ColorLightGreen = lipgloss.Color("#90EE90")
	ColorWhite      = lipgloss.Color("#FFFFFF")
	ColorDarkGray   = lipgloss.Color("8") // ANSI 8
)

// Configure picks the color profile for output written to w. Colors are
// disabled when noColor is set, NO_COLOR is present, or w is not a terminal.
func Configure(w io.Writer, noColor bool) {
	if noColor {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	out := termenv.NewOutput(w, termenv.WithColorCache(true))
	profile := out.EnvColorProfile()
	lipgloss.SetColorProfile(profile)

	// Warp answers background color queries slowly enough to stall startup
	if profile == termenv.Ascii || os.Getenv("TERM_PROGRAM") == "WarpTerminal" {
		lipgloss.SetHasDarkBackground(true)
		return
	}
	lipgloss.SetHasDarkBackground(out.HasDarkBackground())
}

// TypeColor maps a conventional commit type to its display color
func TypeColor(commitType string) lipgloss.Color {
	switch strings.ToLower(commitType) {
	case "feat":
		return ColorGreen
	case "fix":
		return ColorRed
	case "refactor":
		return ColorPurple
	case "docs":
		return ColorBlue
	case "style":
		return ColorMagenta
	case "test":
		return ColorYellow
	case "chore":
		return ColorOrange
	default:
		return ColorWhite
	}
}
