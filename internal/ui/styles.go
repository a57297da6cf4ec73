package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Output is plain text except for one accent color used for config paths
// and listing headings. Status messages carry symbols, not colors.

const defaultAccentColor = "#A78BFA"

var (
	accentColor = defaultAccentColor

	// Accent styles config paths.
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(defaultAccentColor))
)

// ConfigureTheme sets the accent color from the settings file. Accepted
// values are an ANSI code (0-255), a #rgb or #rrggbb hex string, or one of
// "none", "off" and "default" to drop the accent.
func ConfigureTheme(color string) {
	normalized, ok := normalizeAccentColor(color)
	if !ok {
		accentColor = ""
		Accent = lipgloss.NewStyle()
		return
	}
	accentColor = normalized
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(normalized))
}

// AccentColor returns the configured accent color, if any.
func AccentColor() (string, bool) {
	return accentColor, accentColor != ""
}

func normalizeAccentColor(value string) (string, bool) {
	value = strings.ToLower(strings.TrimSpace(value))
	switch value {
	case "", "none", "off", "default":
		return "", false
	}

	if strings.HasPrefix(value, "#") {
		hex := value[1:]
		if len(hex) == 3 {
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		}
		if len(hex) != 6 {
			return "", false
		}
		if _, err := strconv.ParseUint(hex, 16, 32); err != nil {
			return "", false
		}
		return "#" + hex, true
	}

	n, err := strconv.Atoi(value)
	if err != nil || n < 0 || n > 255 {
		return "", false
	}
	return strconv.Itoa(n), true
}
