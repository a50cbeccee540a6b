package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
// - Default (white/black): primary text
// - Accent (teal #2DD4BF): ids, paths, highlights
// - Muted (gray): secondary info, hints
// - No colored success/error/warning - use unicode symbols only

const defaultAccentColor = "#2DD4BF"

var (
	// Accent style for document ids, store paths, highlights
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(defaultAccentColor))

	// Muted style for secondary info and hints
	Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))

	// Bold style for emphasis
	Bold = lipgloss.NewStyle().Bold(true)

	// AccentBold combines accent color with bold
	AccentBold = lipgloss.NewStyle().Foreground(lipgloss.Color(defaultAccentColor)).Bold(true)
)

// accentColor holds the user-configured accent, empty when unset or
// disabled. Markdown rendering reads it through AccentColor.
var accentColor string

// ConfigureTheme applies the configured accent color to the shared styles.
// Accepts ANSI color codes ("0" to "255") and hex colors ("#RRGGBB" or
// "#RGB"); "none", "off", "default", and unrecognized values leave the
// default palette in place.
func ConfigureTheme(accent string) {
	color, ok := normalizeAccentColor(accent)
	if !ok {
		accentColor = ""
		Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(defaultAccentColor))
		AccentBold = lipgloss.NewStyle().Foreground(lipgloss.Color(defaultAccentColor)).Bold(true)
		return
	}

	accentColor = color
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	AccentBold = lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true)
}

// AccentColor reports the user-configured accent color, if any.
func AccentColor() (string, bool) {
	return accentColor, accentColor != ""
}

// normalizeAccentColor canonicalizes a user-supplied accent color. It
// returns false for empty, disabling keywords, and values that are neither
// an ANSI 256 code nor a hex color.
func normalizeAccentColor(input string) (string, bool) {
	s := strings.TrimSpace(input)
	switch strings.ToLower(s) {
	case "", "none", "off", "default":
		return "", false
	}

	if strings.HasPrefix(s, "#") {
		hex := strings.ToLower(s[1:])
		for _, r := range hex {
			if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
				return "", false
			}
		}
		switch len(hex) {
		case 3:
			var sb strings.Builder
			for _, r := range hex {
				sb.WriteRune(r)
				sb.WriteRune(r)
			}
			return "#" + sb.String(), true
		case 6:
			return "#" + hex, true
		}
		return "", false
	}

	if n, err := strconv.Atoi(s); err == nil && n >= 0 && n <= 255 {
		return s, true
	}
	return "", false
}
