package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/temirov/sqtree/internal/entry"
)

// ColorMode selects whether highlights emit terminal color sequences.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"

	invalidColorModeFormat = "invalid color mode %q (expected auto, always or never)"

	termMatchColor      = lipgloss.Color("10")
	extensionMatchColor = lipgloss.Color("5")
)

// ParseColorMode accepts auto, always or never in any letter case.
func ParseColorMode(value string) (ColorMode, error) {
	switch mode := ColorMode(strings.ToLower(strings.TrimSpace(value))); mode {
	case ColorAuto, ColorAlways, ColorNever:
		return mode, nil
	default:
		return "", fmt.Errorf(invalidColorModeFormat, value)
	}
}

// NewHighlighter returns an entry.Highlighter styling term matches bright
// green and extension matches magenta. In auto mode the color profile is
// detected from writer.
func NewHighlighter(writer io.Writer, mode ColorMode) entry.Highlighter {
	renderer := lipgloss.NewRenderer(writer)
	switch mode {
	case ColorAlways:
		renderer.SetColorProfile(termenv.ANSI)
	case ColorNever:
		renderer.SetColorProfile(termenv.Ascii)
	}
	termStyle := renderer.NewStyle().Foreground(termMatchColor)
	extensionStyle := renderer.NewStyle().Foreground(extensionMatchColor)

	return func(text string, class entry.MatchClass) string {
		if text == "" {
			return text
		}
		switch class {
		case entry.ClassTerm:
			return termStyle.Render(text)
		case entry.ClassExtension:
			return extensionStyle.Render(text)
		default:
			return text
		}
	}
}
