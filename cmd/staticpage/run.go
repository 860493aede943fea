package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strconv"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"

	staticpage "github.com/alnah/go-staticpage"
	"github.com/alnah/go-staticpage/internal/assets"
	"github.com/alnah/go-staticpage/internal/config"
	"github.com/alnah/go-staticpage/internal/fileutil"
	"github.com/alnah/go-staticpage/internal/hints"
	"github.com/alnah/go-staticpage/internal/logfields"
	"github.com/alnah/go-staticpage/internal/metrics"
	"github.com/alnah/go-staticpage/internal/server"
	"github.com/alnah/go-staticpage/internal/stylesheet"
)

// runMain runs the binary and returns its exit code.
func runMain(args []string, env *Environment) int {
	flags, err := parseFlags(args[1:], env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintln(env.Stderr, "error:", err)
		return ExitUsage
	}
	if flags.version {
		fmt.Fprintf(env.Stdout, "staticpage %s\n", Version)
		return ExitSuccess
	}

	cfg, err := buildConfig(flags, env)
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err, nil))
		return exitCodeFor(err)
	}

	logger := newLogger(env.Stderr, cfg.Log)
	_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
		logger.Debug(fmt.Sprintf(format, args...))
	}))

	ctx, stop := env.NotifyContext(context.Background())
	defer stop()

	if err := serve(ctx, cfg, env, logger); err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err, cfg))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// buildConfig merges defaults, config file, environment and flags, in
// increasing precedence.
func buildConfig(flags *cliFlags, env *Environment) (*config.Config, error) {
	getenv, err := envLookup(env)
	if err != nil {
		return nil, err
	}
	warnUnknownEnvVars(env.Stderr, env.Environ())

	envCfg, err := loadEnvConfig(getenv)
	if err != nil {
		return nil, err
	}

	cfg := config.DefaultConfig()
	configName := flags.config
	if configName == "" {
		configName = envCfg.ConfigPath
	}
	if configName != "" {
		if cfg, err = config.LoadConfig(configName); err != nil {
			return nil, err
		}
	}

	applyEnvConfig(envCfg, cfg)
	applyFlags(flags, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the process logger from the log settings.
func newLogger(w io.Writer, lc config.LogConfig) *slog.Logger {
	level := slog.LevelInfo
	if lc.Verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if lc.Format == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// serve renders the artifacts, then serves them until ctx is canceled.
// Nothing is listening until rendering has succeeded.
func serve(ctx context.Context, cfg *config.Config, env *Environment, logger *slog.Logger) error {
	ps, err := prepare(ctx, cfg, env, logger)
	if err != nil {
		return err
	}
	return ps.run(ctx, env)
}

// pageServer is a rendered page ready to be served.
type pageServer struct {
	srv       *server.Server
	lifecycle *server.Lifecycle
	cfg       *config.Config
	logger    *slog.Logger
}

// prepare loads assets, renders the page and stylesheet, and builds the
// server without binding any port.
func prepare(ctx context.Context, cfg *config.Config, env *Environment, logger *slog.Logger) (*pageServer, error) {
	bundle, err := loadAssets(cfg.Assets.BasePath, logger)
	if err != nil {
		return nil, err
	}

	markdown, err := env.ReadFile(cfg.Page.Path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrReadPage, cfg.Page.Path, err)
	}

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	var prom *metrics.PrometheusRecorder
	if cfg.Server.MetricsPort != 0 {
		prom = metrics.NewPrometheusRecorder(nil)
		recorder = prom
	}

	opts := []staticpage.Option{
		staticpage.WithLogger(logger),
		staticpage.WithRecorder(recorder),
		staticpage.WithHighlightStyle(cfg.Highlight.Style),
		staticpage.WithSassBinary(cfg.Sass.Binary),
		staticpage.WithSassIncludePaths(sassIncludePaths(bundle.Dir, cfg.Sass.IncludePaths)...),
	}
	if env.SassStart != nil {
		opts = append(opts, staticpage.WithSassStartFunc(env.SassStart))
	}
	result, err := render(ctx, logger, staticpage.Input{
		Path:     cfg.Page.Path,
		Markdown: string(markdown),
	}, bundle.Stylesheet, opts...)
	if err != nil {
		return nil, err
	}

	lifecycle := &server.Lifecycle{}
	srvOpts := []server.Option{
		server.WithLogger(logger),
		server.WithRecorder(recorder),
		server.WithGracePeriod(server.GracePeriod(cfg.Production)),
	}
	if prom != nil {
		srvOpts = append(srvOpts, server.WithMetricsHandler(prom.Handler()))
	}
	srv := server.New(server.Artifacts{
		HTML:    []byte(result.Page.HTML),
		CSS:     []byte(result.Stylesheet.CSS),
		Favicon: bundle.Favicon,
		Script:  bundle.Script,
	}, lifecycle, srvOpts...)

	return &pageServer{srv: srv, lifecycle: lifecycle, cfg: cfg, logger: logger}, nil
}

// run binds the listeners and serves until ctx is canceled or a server
// fails. On cancellation the health check turns unhealthy before the
// listeners close.
func (ps *pageServer) run(ctx context.Context, env *Environment) error {
	ln, metricsLn, err := bindListeners(env, ps.cfg.Server)
	if err != nil {
		return err
	}

	errCh := make(chan error, 2)
	go func() { errCh <- ps.srv.Serve(ln) }()
	if metricsLn != nil {
		go func() { errCh <- ps.srv.ServeMetrics(metricsLn) }()
	}

	var serveErr error
	select {
	case <-ctx.Done():
		ps.lifecycle.MarkTerminating()
		ps.logger.Info("shutting down", slog.Duration("grace", server.GracePeriod(ps.cfg.Production)))
	case serveErr = <-errCh:
	}

	if err := ps.srv.Shutdown(context.Background()); err != nil {
		ps.logger.Warn("shutdown", logfields.Error(err))
	}
	return serveErr
}

// sassIncludePaths puts the asset directory ahead of the configured load
// paths, so an overriding stylesheet can use partials stored beside it.
func sassIncludePaths(assetDir string, configured []string) []string {
	if assetDir == "" {
		return configured
	}
	return append([]string{assetDir}, configured...)
}

// render produces the page and stylesheet. The Sass compiler is only
// needed here and is stopped before serving starts.
func render(ctx context.Context, logger *slog.Logger, input staticpage.Input, source string, opts ...staticpage.Option) (*staticpage.Result, error) {
	renderer, err := staticpage.NewRenderer(opts...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := renderer.Close(); err != nil {
			logger.Warn("closing sass compiler", logfields.Error(err))
		}
	}()

	return renderer.Render(ctx, input, source)
}

// loadAssets reads the stylesheet, favicon and script. Files in basePath
// (the executable's directory when empty) replace the embedded copies.
func loadAssets(basePath string, logger *slog.Logger) (*assets.Bundle, error) {
	if basePath == "" {
		dir, err := fileutil.ExecutableDir()
		if err != nil {
			logger.Debug("executable directory unavailable, using embedded assets", logfields.Error(err))
		}
		basePath = dir
	}

	resolver, err := assets.NewResolver(basePath)
	if err != nil {
		return nil, err
	}
	bundle, err := assets.LoadBundle(resolver)
	if err != nil {
		return nil, err
	}
	for _, name := range bundle.Overridden {
		logger.Info("using custom asset", logfields.File(name), logfields.Path(basePath))
	}
	return bundle, nil
}

// bindListeners binds every port before any server starts, so a taken
// metrics port does not leave the page server half started.
func bindListeners(env *Environment, sc config.ServerConfig) (net.Listener, net.Listener, error) {
	ln, err := env.Listen("tcp", ":"+strconv.Itoa(sc.Port))
	if err != nil {
		return nil, nil, fmt.Errorf("%w on port %d: %w", ErrListen, sc.Port, err)
	}
	if sc.MetricsPort == 0 {
		return ln, nil, nil
	}
	metricsLn, err := env.Listen("tcp", ":"+strconv.Itoa(sc.MetricsPort))
	if err != nil {
		_ = ln.Close()
		return nil, nil, fmt.Errorf("%w on metrics port %d: %w", ErrListen, sc.MetricsPort, err)
	}
	return ln, metricsLn, nil
}

// hintFor picks an actionable hint for a fatal error. cfg may be nil when
// configuration itself failed.
func hintFor(err error, cfg *config.Config) string {
	switch {
	case errors.Is(err, stylesheet.ErrSassUnavailable):
		return hints.ForSassBinary()
	case errors.Is(err, ErrListen) && cfg != nil:
		return hints.ForPortInUse(cfg.Server.Port)
	case errors.Is(err, staticpage.ErrMissingFrontmatter):
		return hints.ForMissingFrontmatter()
	case errors.Is(err, ErrReadPage):
		return hints.ForPageNotFound()
	case errors.Is(err, stylesheet.ErrUnknownHighlightStyle):
		return hints.ForHighlightStyle(stylesheet.HighlightStyles())
	}
	var nf *config.NotFoundError
	if errors.As(err, &nf) {
		return hints.ForConfigNotFound(nf.Searched)
	}
	return ""
}
