package staticpage

import (
	"errors"

	"github.com/alnah/go-staticpage/internal/pipeline"
	"github.com/alnah/go-staticpage/internal/stylesheet"
)

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown = errors.New("markdown content cannot be empty")

	// Page rendering errors.
	ErrMissingFrontmatter = pipeline.ErrMissingFrontmatter
	ErrInvalidFrontmatter = pipeline.ErrInvalidFrontmatter
	ErrMissingTitle       = pipeline.ErrMissingTitle
	ErrHTMLConversion     = pipeline.ErrHTMLConversion
	ErrStagePanic         = pipeline.ErrStagePanic

	// Stylesheet errors.
	ErrStylesheetCompile     = stylesheet.ErrCompile
	ErrUnknownHighlightStyle = stylesheet.ErrUnknownHighlightStyle
	ErrRendererClosed        = stylesheet.ErrCompilerClosed
	ErrSassUnavailable       = stylesheet.ErrSassUnavailable
)

// CompileError carries the Sass compiler's diagnostic.
// It matches ErrStylesheetCompile with errors.Is.
type CompileError = stylesheet.CompileError
