package pipeline

import "errors"

// Sentinel errors for the render pipeline.
var (
	ErrMissingFrontmatter = errors.New("frontmatter is missing")
	ErrInvalidFrontmatter = errors.New("frontmatter is not a valid YAML mapping")
	ErrMissingTitle       = errors.New("frontmatter title is missing or not a string")
	ErrHTMLConversion     = errors.New("HTML conversion failed")
	ErrStagePanic         = errors.New("render stage panicked")
)
