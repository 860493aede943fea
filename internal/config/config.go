package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-staticpage/internal/fileutil"
	"github.com/alnah/go-staticpage/internal/stylesheet"
	"github.com/alnah/go-staticpage/internal/yamlutil"
)

// AppName names the per-user config directory.
const AppName = "go-staticpage"

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidPort     = errors.New("invalid port")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength  = 4096 // PATH_MAX on Linux
	MaxStyleLength = 50   // chroma style names are short
)

// Defaults.
const (
	DefaultPort      = 3000
	DefaultPagePath  = "page.md"
	DefaultLogFormat = LogFormatText
)

// Log output formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config holds all configuration for the page server.
type Config struct {
	Server     ServerConfig    `yaml:"server"`
	Page       PageConfig      `yaml:"page"`
	Assets     AssetsConfig    `yaml:"assets"`
	Sass       SassConfig      `yaml:"sass"`
	Highlight  HighlightConfig `yaml:"highlight"`
	Log        LogConfig       `yaml:"log"`
	Production bool            `yaml:"production"` // Enables the shutdown grace period
}

// ServerConfig defines the listeners.
type ServerConfig struct {
	Port        int `yaml:"port"`        // HTTP port (default: 3000)
	MetricsPort int `yaml:"metricsPort"` // Prometheus port (0 = disabled)
}

// PageConfig defines the Markdown source.
type PageConfig struct {
	Path string `yaml:"path"` // Markdown file (default: page.md)
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = directory of the executable
}

// SassConfig defines stylesheet compilation options.
type SassConfig struct {
	Binary       string   `yaml:"binary"`       // Dart Sass executable (default: sass)
	IncludePaths []string `yaml:"includePaths"` // Import search path
}

// HighlightConfig defines code block highlighting.
type HighlightConfig struct {
	Style string `yaml:"style"` // chroma style name (default: github)
}

// LogConfig defines log output.
type LogConfig struct {
	Format  string `yaml:"format"`  // "text" or "json"
	Verbose bool   `yaml:"verbose"` // Debug level
}

// Validate checks ports, names and field lengths.
// Called automatically by LoadConfig, but available for callers that
// assemble a Config from flags and environment.
func (c *Config) Validate() error {
	if err := validatePort("server.port", c.Server.Port, false); err != nil {
		return err
	}
	if err := validatePort("server.metricsPort", c.Server.MetricsPort, true); err != nil {
		return err
	}
	if c.Server.MetricsPort != 0 && c.Server.MetricsPort == c.Server.Port {
		return fmt.Errorf("%w: server.metricsPort must differ from server.port (%d)", ErrInvalidPort, c.Server.Port)
	}

	if c.Page.Path == "" {
		return fmt.Errorf("%w: page.path is required", ErrInvalidValue)
	}
	if err := validateFieldLength("page.path", c.Page.Path, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("assets.basePath", c.Assets.BasePath, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("sass.binary", c.Sass.Binary, MaxPathLength); err != nil {
		return err
	}
	for i, p := range c.Sass.IncludePaths {
		if err := validateFieldLength(fmt.Sprintf("sass.includePaths[%d]", i), p, MaxPathLength); err != nil {
			return err
		}
	}

	if err := validateFieldLength("highlight.style", c.Highlight.Style, MaxStyleLength); err != nil {
		return err
	}
	if c.Highlight.Style != "" && !stylesheet.IsHighlightStyle(c.Highlight.Style) {
		return fmt.Errorf("%w: highlight.style: %w %q", ErrInvalidValue, stylesheet.ErrUnknownHighlightStyle, c.Highlight.Style)
	}

	switch c.Log.Format {
	case "", LogFormatText, LogFormatJSON:
		// valid
	default:
		return fmt.Errorf("%w: log.format: %q (must be text or json)", ErrInvalidValue, c.Log.Format)
	}

	return nil
}

func validatePort(fieldName string, port int, allowZero bool) error {
	if allowZero && port == 0 {
		return nil
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("%w: %s must be between 1 and 65535, got %d", ErrInvalidPort, fieldName, port)
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Server:    ServerConfig{Port: DefaultPort, MetricsPort: 0},
		Page:      PageConfig{Path: DefaultPagePath},
		Assets:    AssetsConfig{BasePath: ""},
		Sass:      SassConfig{Binary: stylesheet.DefaultBinary},
		Highlight: HighlightConfig{Style: "github"},
		Log:       LogConfig{Format: DefaultLogFormat},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Keys absent from the file keep their DefaultConfig values.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-staticpage/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	// Try current directory first (both extensions)
	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	// Try user config directory (both extensions)
	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, AppName, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", &NotFoundError{Name: name, Searched: triedPaths}
}

// NotFoundError lists the locations searched for a config name.
// It matches ErrConfigNotFound with errors.Is.
type NotFoundError struct {
	Name     string
	Searched []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%v: %s: tried %s", ErrConfigNotFound, e.Name, strings.Join(e.Searched, ", "))
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrConfigNotFound
}
