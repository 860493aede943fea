// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strconv"
	"strings"

	"github.com/alnah/go-staticpage/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForSassBinary returns hints for a Dart Sass executable that cannot be
// started. Suggests the flag and environment variable, plus an image-level
// install when running in a container or CI.
func ForSassBinary() string {
	var hints []string

	// Detect CI environment
	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""

	if inCI || IsInContainer() {
		hints = append(hints, "install the standalone dart-sass release in the image")
	}

	if os.Getenv("STATICPAGE_SASS_BINARY") == "" {
		hints = append(hints, "set STATICPAGE_SASS_BINARY or --sass-binary to the sass executable")
	}

	return formatHints(hints)
}

// ForPortInUse returns a hint for listen failures.
func ForPortInUse(port int) string {
	return format("port " + strconv.Itoa(port) + " may be in use; choose another with --port")
}

// ForMissingFrontmatter shows the minimal valid document header.
func ForMissingFrontmatter() string {
	return format("start the page with a YAML block, e.g. ---\\ntitle: My page\\n---")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-staticpage/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	// Find a user config path (contains .config/go-staticpage) to suggest
	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/go-staticpage") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForPageNotFound returns hints for an unreadable Markdown file.
func ForPageNotFound() string {
	return format("pass the Markdown file with --page or STATICPAGE_PAGE")
}

// ForHighlightStyle lists the valid highlight styles.
func ForHighlightStyle(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
