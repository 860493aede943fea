// Package assets provides the files served next to the rendered page: the
// Sass stylesheet source, the favicon and the client script.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	Loader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (bundled defaults)
//	    ├── FilesystemLoader  - loads from a directory on disk
//	    └── Resolver          - combines both with custom-first fallback
//
// Resolver is the loader used by the binary. It looks in the directory of
// the running executable first and falls back to the bundled copy, so any
// single file can be replaced without rebuilding.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles.sass   # Indented Sass, compiled with $primary set from the theme
//	├── favicon.png   # Served verbatim at /favicon.png
//	└── script.js     # Served verbatim at /script.js
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
