package main

import (
	"errors"
	"os"

	staticpage "github.com/alnah/go-staticpage"
	"github.com/alnah/go-staticpage/internal/assets"
	"github.com/alnah/go-staticpage/internal/config"
)

// Exit codes for the staticpage binary.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Clean shutdown
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, env, or config
	ExitIO      = 3 // Page or asset not readable
	ExitRender  = 4 // Frontmatter, title, or stylesheet failure
	ExitListen  = 5 // Port could not be bound
)

// Errors raised by the binary itself.
var (
	ErrUsage    = errors.New("invalid usage")
	ErrDotEnv   = errors.New("cannot read env file")
	ErrReadPage = errors.New("cannot read page")
	ErrListen   = errors.New("cannot listen")
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Listen errors (exit 5)
	if errors.Is(err, ErrListen) {
		return ExitListen
	}

	// Render errors (exit 4)
	if errors.Is(err, staticpage.ErrMissingFrontmatter) ||
		errors.Is(err, staticpage.ErrInvalidFrontmatter) ||
		errors.Is(err, staticpage.ErrMissingTitle) ||
		errors.Is(err, staticpage.ErrHTMLConversion) ||
		errors.Is(err, staticpage.ErrStagePanic) ||
		errors.Is(err, staticpage.ErrStylesheetCompile) {
		return ExitRender
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadPage) ||
		errors.Is(err, ErrDotEnv) ||
		errors.Is(err, assets.ErrAssetNotFound) ||
		errors.Is(err, assets.ErrAssetRead) ||
		errors.Is(err, assets.ErrInvalidBasePath) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidPort) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, staticpage.ErrEmptyMarkdown) ||
		errors.Is(err, staticpage.ErrUnknownHighlightStyle) ||
		errors.Is(err, assets.ErrInvalidAssetName) ||
		errors.Is(err, assets.ErrPathTraversal) {
		return ExitUsage
	}

	return ExitGeneral
}
