package main

// Notes:
// - exitCodeFor: we test the sentinel errors of every package the binary
//   surfaces, plus wrapped errors to verify errors.Is() chains.
// - Exit code constants: we verify Unix conventions (0=success, 1=general, 2=usage)
//   and custom codes are below 126.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"errors"
	"fmt"
	"os"
	"testing"

	staticpage "github.com/alnah/go-staticpage"
	"github.com/alnah/go-staticpage/internal/assets"
	"github.com/alnah/go-staticpage/internal/config"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error to exit code mapping
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		// Success
		{"nil error", nil, ExitSuccess},

		// Listen errors (exit 5)
		{"listen", ErrListen, ExitListen},
		{"wrapped listen", fmt.Errorf("%w on port 80: %w", ErrListen, os.ErrPermission), ExitListen},

		// Render errors (exit 4)
		{"missing frontmatter", staticpage.ErrMissingFrontmatter, ExitRender},
		{"invalid frontmatter", staticpage.ErrInvalidFrontmatter, ExitRender},
		{"missing title", staticpage.ErrMissingTitle, ExitRender},
		{"html conversion", staticpage.ErrHTMLConversion, ExitRender},
		{"stage panic", staticpage.ErrStagePanic, ExitRender},
		{"stylesheet", staticpage.ErrStylesheetCompile, ExitRender},
		{"wrapped title", fmt.Errorf("rendering page: frontmatter: %w", staticpage.ErrMissingTitle), ExitRender},

		// I/O errors (exit 3)
		{"file not exist", os.ErrNotExist, ExitIO},
		{"permission denied", os.ErrPermission, ExitIO},
		{"read page", ErrReadPage, ExitIO},
		{"dotenv", ErrDotEnv, ExitIO},
		{"asset not found", assets.ErrAssetNotFound, ExitIO},
		{"asset read", assets.ErrAssetRead, ExitIO},
		{"asset base path", assets.ErrInvalidBasePath, ExitIO},
		{"wrapped read page", fmt.Errorf("%w page.md: %w", ErrReadPage, os.ErrNotExist), ExitIO},

		// Usage/config/validation errors (exit 2)
		{"usage", ErrUsage, ExitUsage},
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"config not found by name", &config.NotFoundError{Name: "site"}, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"field too long", config.ErrFieldTooLong, ExitUsage},
		{"invalid port", config.ErrInvalidPort, ExitUsage},
		{"invalid value", config.ErrInvalidValue, ExitUsage},
		{"empty markdown", staticpage.ErrEmptyMarkdown, ExitUsage},
		{"unknown highlight style", staticpage.ErrUnknownHighlightStyle, ExitUsage},
		{"invalid asset name", assets.ErrInvalidAssetName, ExitUsage},
		{"path traversal", assets.ErrPathTraversal, ExitUsage},

		// General
		{"unknown error", errors.New("boom"), ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestExitCodeConstants - Unix conventions
// ---------------------------------------------------------------------------

func TestExitCodeConstants(t *testing.T) {
	t.Parallel()

	if ExitSuccess != 0 || ExitGeneral != 1 || ExitUsage != 2 {
		t.Error("exit codes 0-2 must follow Unix conventions")
	}
	codes := []int{ExitSuccess, ExitGeneral, ExitUsage, ExitIO, ExitRender, ExitListen}
	seen := make(map[int]bool)
	for _, c := range codes {
		if c >= 126 {
			t.Errorf("exit code %d is reserved by the shell", c)
		}
		if seen[c] {
			t.Errorf("duplicate exit code %d", c)
		}
		seen[c] = true
	}
}
