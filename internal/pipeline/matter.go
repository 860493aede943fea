package pipeline

import (
	"regexp"
	"strings"
)

// DefaultTheme is the primary color used when the frontmatter has no usable theme.
const DefaultTheme = "#3943b7"

// Frontmatter keys read by the pipeline and the stylesheet compiler.
const (
	KeyTitle    = "title"
	KeySubtitle = "subtitle"
	KeyTheme    = "theme"
)

// Matter is the parsed frontmatter mapping.
// Keys other than title, subtitle and theme are kept but unused.
type Matter map[string]any

// Title returns the title, or "" when absent or not a string.
func (m Matter) Title() string {
	return m.str(KeyTitle)
}

// Subtitle returns the subtitle, or "" when absent or not a string.
func (m Matter) Subtitle() string {
	return m.str(KeySubtitle)
}

// Theme returns the configured theme color, falling back to DefaultTheme
// when the value is missing, not a string, or not a recognizable CSS color.
func (m Matter) Theme() string {
	theme, ok := m.ThemeOverride()
	if !ok {
		return DefaultTheme
	}
	return theme
}

// ThemeOverride reports the theme value and whether it is usable.
// A present but rejected value returns (raw, false) so callers can warn.
func (m Matter) ThemeOverride() (string, bool) {
	raw, ok := m[KeyTheme].(string)
	if !ok {
		return "", false
	}
	theme := strings.TrimSpace(raw)
	if !IsValidColor(theme) {
		return raw, false
	}
	return theme, true
}

func (m Matter) str(key string) string {
	s, _ := m[key].(string)
	return s
}

var (
	hexColorPattern   = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3,4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
	namedColorPattern = regexp.MustCompile(`^[a-zA-Z]+$`)
	funcColorPattern  = regexp.MustCompile(`^(?:rgb|rgba|hsl|hsla)\([0-9.,% /a-z]+\)$`)
)

// IsValidColor reports whether s looks like a CSS color that is safe to
// splice into a Sass variable declaration.
func IsValidColor(s string) bool {
	return hexColorPattern.MatchString(s) ||
		namedColorPattern.MatchString(s) ||
		funcColorPattern.MatchString(s)
}
