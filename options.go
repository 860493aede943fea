package staticpage

import (
	"log/slog"
	"time"

	"github.com/alnah/go-staticpage/internal/metrics"
	"github.com/alnah/go-staticpage/internal/pipeline"
	"github.com/alnah/go-staticpage/internal/stylesheet"
)

// DefaultHighlightStyle is the chroma style for fenced code blocks.
const DefaultHighlightStyle = pipeline.DefaultHighlightStyle

// DefaultSassBinary is looked up on PATH when no binary is configured.
const DefaultSassBinary = stylesheet.DefaultBinary

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the logger for stage timings and compiler warnings.
func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithRecorder sets the metrics recorder for stage and render durations.
func WithRecorder(rec metrics.Recorder) Option {
	return func(r *Renderer) {
		if rec != nil {
			r.recorder = rec
		}
	}
}

// WithHighlightStyle selects the chroma style for code blocks. NewRenderer
// rejects unknown names.
func WithHighlightStyle(name string) Option {
	return func(r *Renderer) {
		r.highlightStyle = name
	}
}

// WithSassBinary sets the Dart Sass executable (name on PATH or path).
func WithSassBinary(path string) Option {
	return func(r *Renderer) {
		r.compilerOpts = append(r.compilerOpts, stylesheet.WithBinary(path))
	}
}

// WithSassIncludePaths adds load paths for @use and @import.
func WithSassIncludePaths(paths ...string) Option {
	return func(r *Renderer) {
		r.compilerOpts = append(r.compilerOpts, stylesheet.WithIncludePaths(paths...))
	}
}

// WithCompileTimeout bounds a single stylesheet compilation.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithCompileTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("staticpage: WithCompileTimeout duration must be positive")
	}
	return func(r *Renderer) {
		r.compilerOpts = append(r.compilerOpts, stylesheet.WithTimeout(d))
	}
}

// WithSassStartFunc replaces how the Dart Sass transpiler is launched,
// letting callers run without a sass executable.
func WithSassStartFunc(fn stylesheet.StartFunc) Option {
	return func(r *Renderer) {
		r.compilerOpts = append(r.compilerOpts, stylesheet.WithStartFunc(fn))
	}
}
