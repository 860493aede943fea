package stylesheet

import (
	"fmt"
	"slices"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
)

// HighlightStyles lists the available chroma style names, sorted.
func HighlightStyles() []string {
	names := styles.Names()
	slices.Sort(names)
	return names
}

// IsHighlightStyle reports whether name is a known chroma style.
func IsHighlightStyle(name string) bool {
	_, ok := styles.Registry[name]
	return ok
}

// HighlightCSS returns the rules for chroma's class-based code markup in
// the given style.
func HighlightCSS(style string) (string, error) {
	if !IsHighlightStyle(style) {
		return "", fmt.Errorf("%w: %q", ErrUnknownHighlightStyle, style)
	}

	var sb strings.Builder
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&sb, styles.Get(style)); err != nil {
		return "", fmt.Errorf("writing %s highlight CSS: %w", style, err)
	}
	return sb.String(), nil
}
