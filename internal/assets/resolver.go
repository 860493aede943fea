package assets

import (
	"errors"
)

// Resolver combines custom and embedded loaders with fallback logic.
// When a custom loader is configured, it tries custom first, then falls back
// to embedded if the asset is not found in the custom location.
type Resolver struct {
	custom    Loader // nil if no custom path configured
	customDir string
	embedded  Loader
}

// NewResolver creates a Resolver.
// If customBasePath is empty, only embedded assets are used.
// If customBasePath is set, custom assets take precedence with fallback to embedded.
// Returns error if customBasePath is set but invalid.
func NewResolver(customBasePath string) (*Resolver, error) {
	resolver := &Resolver{
		embedded: NewEmbeddedLoader(),
	}

	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		resolver.custom = fsLoader
		resolver.customDir = fsLoader.BasePath()
	}

	return resolver, nil
}

// Load reads an asset, trying the custom loader first if available.
func (r *Resolver) Load(name string) ([]byte, error) {
	content, _, err := r.LoadWithSource(name)
	return content, err
}

// LoadWithSource is Load, also reporting whether the content came from the
// custom directory.
func (r *Resolver) LoadWithSource(name string) (content []byte, custom bool, err error) {
	// If no custom loader, use embedded directly
	if r.custom == nil {
		content, err = r.embedded.Load(name)
		return content, false, err
	}

	// Try custom loader first
	content, err = r.custom.Load(name)
	if err == nil {
		return content, true, nil
	}

	// Only fall back for "not found" errors, not validation or I/O errors
	if !errors.Is(err, ErrAssetNotFound) {
		return nil, false, err
	}

	// Fall back to embedded
	content, err = r.embedded.Load(name)
	return content, false, err
}

// BasePath returns the resolved custom directory, or "" without one.
func (r *Resolver) BasePath() string {
	return r.customDir
}

// HasCustomLoader returns true if a custom asset loader is configured.
func (r *Resolver) HasCustomLoader() bool {
	return r.custom != nil
}

// Compile-time interface check.
var _ Loader = (*Resolver)(nil)
