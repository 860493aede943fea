package main

import (
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// cliFlags holds the parsed command line.
type cliFlags struct {
	config         string
	page           string
	port           int
	metricsPort    int
	assetsDir      string
	sassBinary     string
	includePaths   []string
	highlightStyle string
	logFormat      string
	production     bool
	verbose        bool
	version        bool

	// changed records flags given explicitly, so zero values still
	// override the config file.
	changed map[string]bool
}

// parseFlags parses args (without the program name).
func parseFlags(args []string, stderr io.Writer) (*cliFlags, error) {
	fs := flag.NewFlagSet("staticpage", flag.ContinueOnError)
	fs.SetOutput(stderr)
	f := &cliFlags{}

	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVar(&f.page, "page", "", "Markdown file to render (default: page.md)")
	fs.IntVarP(&f.port, "port", "p", 0, "HTTP port (default: 3000)")
	fs.IntVar(&f.metricsPort, "metrics-port", 0, "Prometheus metrics port (0 = disabled)")
	fs.StringVar(&f.assetsDir, "assets-dir", "", "directory overriding styles.sass, favicon.png and script.js")
	fs.StringVar(&f.sassBinary, "sass-binary", "", "Dart Sass executable (default: sass)")
	fs.StringSliceVar(&f.includePaths, "sass-include", nil, "Sass load path (repeatable)")
	fs.StringVar(&f.highlightStyle, "highlight-style", "", "code highlighting style (default: github)")
	fs.StringVar(&f.logFormat, "log-format", "", "log format: text or json")
	fs.BoolVar(&f.production, "production", false, "wait for in-flight requests on shutdown")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "debug logging with stage timings")
	fs.BoolVar(&f.version, "version", false, "print version and exit")

	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: staticpage [flags]")
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Renders a Markdown page once and serves it over HTTP.")
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Flags:")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: unexpected argument %q", ErrUsage, fs.Arg(0))
	}

	f.changed = make(map[string]bool)
	fs.Visit(func(fl *flag.Flag) { f.changed[fl.Name] = true })
	return f, nil
}
