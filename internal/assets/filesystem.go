package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FilesystemLoader reads override assets from one directory, normally the
// directory holding the executable.
type FilesystemLoader struct {
	basePath string
}

// NewFilesystemLoader returns ErrInvalidBasePath unless basePath names a
// readable directory. The stored path is absolute with symlinks resolved.
func NewFilesystemLoader(basePath string) (*FilesystemLoader, error) {
	dir, err := resolveDir(basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	return &FilesystemLoader{basePath: dir}, nil
}

func resolveDir(path string) (string, error) {
	if path == "" {
		return "", errors.New("empty path")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if target, err := filepath.EvalSymlinks(abs); err == nil {
		abs = target
	}

	info, err := os.Stat(abs)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("directory does not exist: %s", abs)
	case err != nil:
		return "", err
	case !info.IsDir():
		return "", fmt.Errorf("not a directory: %s", abs)
	}
	if _, err := os.ReadDir(abs); err != nil {
		return "", fmt.Errorf("cannot read directory: %v", err)
	}
	return abs, nil
}

// Load reads {basePath}/{name}.
func (f *FilesystemLoader) Load(name string) ([]byte, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, err
	}

	path, err := f.within(name)
	if err != nil {
		return nil, err
	}

	content, err := os.ReadFile(path) // #nosec G304 -- confined to basePath
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("%w: %q", ErrAssetNotFound, name)
	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	return content, nil
}

// BasePath returns the resolved directory assets are read from.
func (f *FilesystemLoader) BasePath() string {
	return f.basePath
}

// within joins name onto basePath and rejects results that leave it once
// symlinks are resolved. A missing file keeps its unresolved path; the read
// fails later.
func (f *FilesystemLoader) within(name string) (string, error) {
	path := filepath.Join(f.basePath, name)
	resolved := path
	if target, err := filepath.EvalSymlinks(path); err == nil {
		resolved = target
	}
	if !strings.HasPrefix(resolved, f.basePath+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q escapes %s", ErrPathTraversal, name, f.basePath)
	}
	return path, nil
}

var _ Loader = (*FilesystemLoader)(nil)
