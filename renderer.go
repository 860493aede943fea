package staticpage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alnah/go-staticpage/internal/logfields"
	"github.com/alnah/go-staticpage/internal/metrics"
	"github.com/alnah/go-staticpage/internal/pipeline"
	"github.com/alnah/go-staticpage/internal/stylesheet"
)

// Renderer turns a Markdown page and a Sass stylesheet into HTML and CSS.
// Create with NewRenderer, call Render once at startup, and Close when done.
type Renderer struct {
	logger         *slog.Logger
	recorder       metrics.Recorder
	highlightStyle string
	compilerOpts   []stylesheet.Option

	processor *pipeline.Processor
	compiler  *stylesheet.Compiler
}

// NewRenderer creates a Renderer. The Sass compiler is started on first use.
func NewRenderer(opts ...Option) (*Renderer, error) {
	r := &Renderer{
		logger:         slog.New(slog.DiscardHandler),
		recorder:       metrics.NoopRecorder{},
		highlightStyle: DefaultHighlightStyle,
	}
	for _, opt := range opts {
		opt(r)
	}

	if !stylesheet.IsHighlightStyle(r.highlightStyle) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownHighlightStyle, r.highlightStyle)
	}

	r.processor = pipeline.NewProcessor(pipeline.WithHighlightStyle(r.highlightStyle))
	r.compiler = stylesheet.NewCompiler(append([]stylesheet.Option{stylesheet.WithLogger(r.logger)}, r.compilerOpts...)...)
	return r, nil
}

// RenderPage runs the page pipeline. Errors name the failing stage and
// match the package sentinels with errors.Is.
func (r *Renderer) RenderPage(ctx context.Context, input Input) (*Page, error) {
	if input.Markdown == "" {
		return nil, ErrEmptyMarkdown
	}

	start := time.Now()
	file := pipeline.NewFile(input.Path, input.Markdown)
	err := r.processor.Process(ctx, file)

	// Completed stages are reported even when a later one fails.
	stages := make([]StageTiming, 0, len(file.Timings))
	for _, t := range file.Timings {
		r.recorder.ObserveStageDuration(t.Stage, t.Duration)
		r.logger.Debug("render stage", logfields.Stage(t.Stage), logfields.Duration(t.Duration))
		stages = append(stages, StageTiming(t))
	}
	if err != nil {
		return nil, fmt.Errorf("rendering page: %w", err)
	}

	elapsed := time.Since(start)
	r.recorder.ObserveRenderDuration(metrics.ArtifactPage, elapsed)
	r.logger.Info("rendered page", logfields.File(input.Path), logfields.Duration(elapsed))

	return &Page{
		Matter:   file.Matter,
		HTML:     file.HTML,
		Duration: elapsed,
		Stages:   stages,
	}, nil
}

// CompileStylesheet compiles source with $primary bound to the page theme
// and appends the code highlighting rules.
func (r *Renderer) CompileStylesheet(ctx context.Context, source string, matter Frontmatter) (*Stylesheet, error) {
	start := time.Now()

	theme := matter.Theme()
	if raw, ok := matter.ThemeOverride(); !ok && raw != "" {
		r.logger.Warn("ignoring invalid theme color", logfields.Theme(raw))
	}

	css, err := r.compiler.Compile(ctx, source, theme)
	if err != nil {
		return nil, fmt.Errorf("compiling stylesheet: %w", err)
	}

	highlight, err := stylesheet.HighlightCSS(r.highlightStyle)
	if err != nil {
		return nil, fmt.Errorf("compiling stylesheet: %w", err)
	}
	if css != "" {
		css += "\n"
	}
	css += highlight

	elapsed := time.Since(start)
	r.recorder.ObserveRenderDuration(metrics.ArtifactStylesheet, elapsed)
	r.logger.Info("compiled stylesheet", logfields.Theme(theme), logfields.Duration(elapsed))

	return &Stylesheet{CSS: css, Theme: theme, Duration: elapsed}, nil
}

// Render renders the page, then compiles the stylesheet with the page's
// theme. A page failure skips stylesheet compilation.
func (r *Renderer) Render(ctx context.Context, input Input, stylesheetSource string) (*Result, error) {
	page, err := r.RenderPage(ctx, input)
	if err != nil {
		return nil, err
	}
	sheet, err := r.CompileStylesheet(ctx, stylesheetSource, page.Matter)
	if err != nil {
		return nil, err
	}
	return &Result{Page: page, Stylesheet: sheet}, nil
}

// Close stops the Sass compiler. It is safe to call more than once.
func (r *Renderer) Close() error {
	return r.compiler.Close()
}
