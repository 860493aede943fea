package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/alnah/go-staticpage/internal/config"
)

const envPrefix = "STATICPAGE_"

// productionEnv is the STATICPAGE_ENV value that enables production mode.
const productionEnv = "production"

// envConfig holds configuration from environment variables.
// Provides container-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath     string   // STATICPAGE_CONFIG: config file path
	Page           string   // STATICPAGE_PAGE: Markdown file
	Port           int      // STATICPAGE_PORT: HTTP port
	MetricsPort    int      // STATICPAGE_METRICS_PORT: Prometheus port
	AssetsDir      string   // STATICPAGE_ASSETS_DIR: asset override directory
	SassBinary     string   // STATICPAGE_SASS_BINARY: Dart Sass executable
	IncludePaths   []string // STATICPAGE_SASS_INCLUDE: comma-separated load paths
	HighlightStyle string   // STATICPAGE_HIGHLIGHT_STYLE: chroma style
	LogFormat      string   // STATICPAGE_LOG_FORMAT: text or json
	Verbose        bool     // STATICPAGE_VERBOSE: debug logging
	Production     bool     // STATICPAGE_ENV=production
}

// knownEnvVars lists valid STATICPAGE_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"STATICPAGE_CONFIG":          true,
	"STATICPAGE_PAGE":            true,
	"STATICPAGE_PORT":            true,
	"STATICPAGE_METRICS_PORT":    true,
	"STATICPAGE_ASSETS_DIR":      true,
	"STATICPAGE_SASS_BINARY":     true,
	"STATICPAGE_SASS_INCLUDE":    true,
	"STATICPAGE_HIGHLIGHT_STYLE": true,
	"STATICPAGE_LOG_FORMAT":      true,
	"STATICPAGE_VERBOSE":         true,
	"STATICPAGE_ENV":             true,
}

// envLookup returns a getenv that falls back to the dotenv file. Process
// variables take precedence, as with godotenv.Load.
func envLookup(env *Environment) (func(string) string, error) {
	if env.DotEnvPath == "" {
		return env.Getenv, nil
	}
	dotenv, err := godotenv.Read(env.DotEnvPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return env.Getenv, nil
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrDotEnv, env.DotEnvPath, err)
	}
	return func(key string) string {
		if v := env.Getenv(key); v != "" {
			return v
		}
		return dotenv[key]
	}, nil
}

// loadEnvConfig reads configuration from environment variables.
// Malformed numbers are reported rather than ignored.
func loadEnvConfig(getenv func(string) string) (*envConfig, error) {
	cfg := &envConfig{
		ConfigPath:     getenv("STATICPAGE_CONFIG"),
		Page:           getenv("STATICPAGE_PAGE"),
		AssetsDir:      getenv("STATICPAGE_ASSETS_DIR"),
		SassBinary:     getenv("STATICPAGE_SASS_BINARY"),
		HighlightStyle: getenv("STATICPAGE_HIGHLIGHT_STYLE"),
		LogFormat:      getenv("STATICPAGE_LOG_FORMAT"),
		Production:     getenv("STATICPAGE_ENV") == productionEnv,
	}

	var err error
	if cfg.Port, err = envInt(getenv, "STATICPAGE_PORT"); err != nil {
		return nil, err
	}
	if cfg.MetricsPort, err = envInt(getenv, "STATICPAGE_METRICS_PORT"); err != nil {
		return nil, err
	}
	if v := getenv("STATICPAGE_VERBOSE"); v != "" {
		if cfg.Verbose, err = strconv.ParseBool(v); err != nil {
			return nil, fmt.Errorf("%w: STATICPAGE_VERBOSE=%q", ErrUsage, v)
		}
	}
	if v := getenv("STATICPAGE_SASS_INCLUDE"); v != "" {
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				cfg.IncludePaths = append(cfg.IncludePaths, p)
			}
		}
	}

	return cfg, nil
}

func envInt(getenv func(string) string, key string) (int, error) {
	v := getenv(key)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not a number", ErrUsage, key, v)
	}
	return n, nil
}

// warnUnknownEnvVars logs warnings for unrecognized STATICPAGE_* variables.
// Helps catch typos like STATICPAGE_PROT instead of STATICPAGE_PORT.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, env := range environ {
		if strings.HasPrefix(env, envPrefix) {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies set environment variables over cfg.
// Precedence: flags > env vars > config file > defaults
// (flags are applied afterwards by applyFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Page != "" {
		cfg.Page.Path = env.Page
	}
	if env.Port != 0 {
		cfg.Server.Port = env.Port
	}
	if env.MetricsPort != 0 {
		cfg.Server.MetricsPort = env.MetricsPort
	}
	if env.AssetsDir != "" {
		cfg.Assets.BasePath = env.AssetsDir
	}
	if env.SassBinary != "" {
		cfg.Sass.Binary = env.SassBinary
	}
	if len(env.IncludePaths) > 0 {
		cfg.Sass.IncludePaths = env.IncludePaths
	}
	if env.HighlightStyle != "" {
		cfg.Highlight.Style = env.HighlightStyle
	}
	if env.LogFormat != "" {
		cfg.Log.Format = env.LogFormat
	}
	if env.Verbose {
		cfg.Log.Verbose = true
	}
	if env.Production {
		cfg.Production = true
	}
}

// applyFlags applies explicitly given flags over cfg.
func applyFlags(f *cliFlags, cfg *config.Config) {
	if f.changed["page"] {
		cfg.Page.Path = f.page
	}
	if f.changed["port"] {
		cfg.Server.Port = f.port
	}
	if f.changed["metrics-port"] {
		cfg.Server.MetricsPort = f.metricsPort
	}
	if f.changed["assets-dir"] {
		cfg.Assets.BasePath = f.assetsDir
	}
	if f.changed["sass-binary"] {
		cfg.Sass.Binary = f.sassBinary
	}
	if f.changed["sass-include"] {
		cfg.Sass.IncludePaths = f.includePaths
	}
	if f.changed["highlight-style"] {
		cfg.Highlight.Style = f.highlightStyle
	}
	if f.changed["log-format"] {
		cfg.Log.Format = f.logFormat
	}
	if f.changed["production"] {
		cfg.Production = f.production
	}
	if f.changed["verbose"] {
		cfg.Log.Verbose = f.verbose
	}
}
