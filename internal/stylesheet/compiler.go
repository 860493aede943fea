package stylesheet

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/bep/godartsass/v2"
)

// Defaults for the embedded Dart Sass process.
const (
	DefaultBinary  = "sass"
	DefaultTimeout = 30 * time.Second
	PrimaryVar     = "primary"
)

// Transpiler compiles one Sass source. *godartsass.Transpiler satisfies it.
type Transpiler interface {
	Execute(args godartsass.Args) (godartsass.Result, error)
	Close() error
}

// Compile-time interface check.
var _ Transpiler = (*godartsass.Transpiler)(nil)

// StartFunc launches a Transpiler.
type StartFunc func(opts godartsass.Options) (Transpiler, error)

func startDartSass(opts godartsass.Options) (Transpiler, error) {
	return godartsass.Start(opts)
}

// Compiler turns indented Sass into CSS. The Dart Sass process is started on
// the first Compile and stopped by Close.
type Compiler struct {
	binary       string
	includePaths []string
	timeout      time.Duration
	logger       *slog.Logger
	start        StartFunc

	mu         sync.Mutex
	transpiler Transpiler
	closed     bool
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithBinary sets the Dart Sass executable.
func WithBinary(path string) Option {
	return func(c *Compiler) {
		if path != "" {
			c.binary = path
		}
	}
}

// WithIncludePaths sets the directories searched by @use and @import.
func WithIncludePaths(paths ...string) Option {
	return func(c *Compiler) {
		c.includePaths = append(c.includePaths, paths...)
	}
}

// WithTimeout bounds a single compilation inside Dart Sass.
func WithTimeout(d time.Duration) Option {
	return func(c *Compiler) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger receives Sass @warn and @debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Compiler) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithStartFunc replaces how the transpiler is launched.
func WithStartFunc(fn StartFunc) Option {
	return func(c *Compiler) {
		if fn != nil {
			c.start = fn
		}
	}
}

// NewCompiler creates a Compiler. No process is started until Compile.
func NewCompiler(opts ...Option) *Compiler {
	c := &Compiler{
		binary:  DefaultBinary,
		timeout: DefaultTimeout,
		logger:  slog.New(slog.DiscardHandler),
		start:   startDartSass,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Source prepends the theme declaration to src.
func Source(src, theme string) string {
	return "$" + PrimaryVar + ": " + theme + "\n" + src
}

// Compile compiles src with $primary bound to theme.
// Compiler failures are returned as *CompileError.
func (c *Compiler) Compile(ctx context.Context, src, theme string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	t, err := c.acquire()
	if err != nil {
		return "", err
	}

	args := godartsass.Args{
		Source:       Source(src, theme),
		SourceSyntax: godartsass.SourceSyntaxSASS,
		OutputStyle:  godartsass.OutputStyleExpanded,
		IncludePaths: c.includePaths,
	}

	type result struct {
		css string
		err error
	}

	done := make(chan result, 1)

	go func() {
		res, err := t.Execute(args)
		if err != nil {
			done <- result{err: newCompileError(err)}
			return
		}
		done <- result{css: res.CSS}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.css, r.err
	}
}

// acquire starts the transpiler once.
func (c *Compiler) acquire() (Transpiler, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, ErrCompilerClosed
	}
	if c.transpiler != nil {
		return c.transpiler, nil
	}

	t, err := c.start(godartsass.Options{
		DartSassEmbeddedFilename: c.binary,
		Timeout:                  c.timeout,
		LogEventHandler:          c.logEvent,
	})
	if err != nil {
		return nil, newCompileError(fmt.Errorf("%w %s: %w", ErrSassUnavailable, c.binary, err))
	}
	c.transpiler = t
	return t, nil
}

func (c *Compiler) logEvent(e godartsass.LogEvent) {
	switch e.Type {
	case godartsass.LogEventTypeDebug:
		c.logger.Debug("sass debug", slog.String("message", e.Message))
	default:
		c.logger.Warn("sass warning", slog.String("message", e.Message))
	}
}

// Close stops the transpiler. It is safe to call more than once.
func (c *Compiler) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	if c.transpiler == nil {
		return nil
	}
	return c.transpiler.Close()
}
