package assets

import (
	"embed"
	"fmt"
)

//go:embed files/*
var files embed.FS

// EmbeddedLoader loads assets from embedded filesystem.
// Implements Loader interface.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// Load reads a bundled asset by file name.
func (e *EmbeddedLoader) Load(name string) ([]byte, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, err
	}

	content, err := files.ReadFile("files/" + name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrAssetNotFound, name)
	}

	return content, nil
}

// Compile-time interface check.
var _ Loader = (*EmbeddedLoader)(nil)
