package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Server.Port != DefaultPort {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, DefaultPort)
	}
	if cfg.Server.MetricsPort != 0 {
		t.Errorf("Server.MetricsPort = %d, want 0 (disabled)", cfg.Server.MetricsPort)
	}
	if cfg.Page.Path != DefaultPagePath {
		t.Errorf("Page.Path = %q, want %q", cfg.Page.Path, DefaultPagePath)
	}
	if cfg.Assets.BasePath != "" {
		t.Errorf("Assets.BasePath = %q, want empty", cfg.Assets.BasePath)
	}
	if cfg.Sass.Binary != "sass" {
		t.Errorf("Sass.Binary = %q, want %q", cfg.Sass.Binary, "sass")
	}
	if cfg.Highlight.Style != "github" {
		t.Errorf("Highlight.Style = %q, want %q", cfg.Highlight.Style, "github")
	}
	if cfg.Production {
		t.Error("Production = true, want false")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() error = %v", err)
	}
}

func TestValidateFieldLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   string
		max     int
		wantErr bool
	}{
		{"empty", "", 10, false},
		{"at limit", strings.Repeat("a", 10), 10, false},
		{"over limit", strings.Repeat("a", 11), 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validateFieldLength("field", tt.value, tt.max)
			if tt.wantErr {
				if !errors.Is(err, ErrFieldTooLong) {
					t.Errorf("validateFieldLength() error = %v, want ErrFieldTooLong", err)
				}
				if err != nil && !strings.Contains(err.Error(), "field") {
					t.Errorf("error %q should name the field", err)
				}
				return
			}
			if err != nil {
				t.Errorf("validateFieldLength() unexpected error = %v", err)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{
			name:   "defaults valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "port zero",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: ErrInvalidPort,
		},
		{
			name:    "port too large",
			mutate:  func(c *Config) { c.Server.Port = 65536 },
			wantErr: ErrInvalidPort,
		},
		{
			name:    "negative port",
			mutate:  func(c *Config) { c.Server.Port = -1 },
			wantErr: ErrInvalidPort,
		},
		{
			name:   "max port",
			mutate: func(c *Config) { c.Server.Port = 65535 },
		},
		{
			name:   "metrics port enabled",
			mutate: func(c *Config) { c.Server.MetricsPort = 9090 },
		},
		{
			name:    "metrics port out of range",
			mutate:  func(c *Config) { c.Server.MetricsPort = 70000 },
			wantErr: ErrInvalidPort,
		},
		{
			name:    "metrics port equals port",
			mutate:  func(c *Config) { c.Server.MetricsPort = c.Server.Port },
			wantErr: ErrInvalidPort,
		},
		{
			name:    "empty page path",
			mutate:  func(c *Config) { c.Page.Path = "" },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "page path too long",
			mutate:  func(c *Config) { c.Page.Path = strings.Repeat("p", MaxPathLength+1) },
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "include path too long",
			mutate:  func(c *Config) { c.Sass.IncludePaths = []string{"ok", strings.Repeat("p", MaxPathLength+1)} },
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "unknown highlight style",
			mutate:  func(c *Config) { c.Highlight.Style = "no-such-style" },
			wantErr: ErrInvalidValue,
		},
		{
			name:   "empty highlight style uses default",
			mutate: func(c *Config) { c.Highlight.Style = "" },
		},
		{
			name:   "json log format",
			mutate: func(c *Config) { c.Log.Format = LogFormatJSON },
		},
		{
			name:    "unknown log format",
			mutate:  func(c *Config) { c.Log.Format = "xml" },
			wantErr: ErrInvalidValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()

			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() unexpected error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("empty name returns ErrEmptyConfigName", func(t *testing.T) {
		_, err := LoadConfig("")
		if !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("valid file path loads config", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "test.yaml")
		content := `server:
  port: 8080
  metricsPort: 9090
page:
  path: "docs/index.md"
sass:
  includePaths:
    - "vendor/sass"
highlight:
  style: "monokai"
production: true
`
		if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		cfg, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Server.Port != 8080 {
			t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
		}
		if cfg.Server.MetricsPort != 9090 {
			t.Errorf("Server.MetricsPort = %d, want 9090", cfg.Server.MetricsPort)
		}
		if cfg.Page.Path != "docs/index.md" {
			t.Errorf("Page.Path = %q, want %q", cfg.Page.Path, "docs/index.md")
		}
		if len(cfg.Sass.IncludePaths) != 1 || cfg.Sass.IncludePaths[0] != "vendor/sass" {
			t.Errorf("Sass.IncludePaths = %v, want [vendor/sass]", cfg.Sass.IncludePaths)
		}
		if cfg.Highlight.Style != "monokai" {
			t.Errorf("Highlight.Style = %q, want %q", cfg.Highlight.Style, "monokai")
		}
		if !cfg.Production {
			t.Error("Production = false, want true")
		}
	})

	t.Run("absent keys keep defaults", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "partial.yaml")
		if err := os.WriteFile(configPath, []byte("page:\n  path: other.md\n"), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		cfg, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Server.Port != DefaultPort {
			t.Errorf("Server.Port = %d, want default %d", cfg.Server.Port, DefaultPort)
		}
		if cfg.Sass.Binary != "sass" {
			t.Errorf("Sass.Binary = %q, want default", cfg.Sass.Binary)
		}
	})

	t.Run("nonexistent file path returns ErrConfigNotFound", func(t *testing.T) {
		_, err := LoadConfig("/nonexistent/path/config.yaml")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("invalid YAML returns ErrConfigParse", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "invalid.yaml")
		if err := os.WriteFile(configPath, []byte("page: [unclosed"), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("unknown field returns ErrConfigParse in strict mode", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "unknown.yaml")
		content := `server:
  port: 3000
unknownField: "should fail"
`
		if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("invalid port returns ErrInvalidPort", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "port.yaml")
		if err := os.WriteFile(configPath, []byte("server:\n  port: 99999\n"), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrInvalidPort) {
			t.Errorf("error = %v, want ErrInvalidPort", err)
		}
	})

	t.Run("unreadable file returns read error not ErrConfigNotFound", func(t *testing.T) {
		if os.Getuid() == 0 {
			t.Skip("root ignores file permissions")
		}
		dir := t.TempDir()
		configPath := filepath.Join(dir, "unreadable.yaml")
		if err := os.WriteFile(configPath, []byte("production: true\n"), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}
		if err := os.Chmod(configPath, 0000); err != nil {
			t.Fatalf("setup chmod: %v", err)
		}
		defer os.Chmod(configPath, 0600)

		_, err := LoadConfig(configPath)
		if err == nil {
			t.Fatal("expected error for unreadable file")
		}
		if errors.Is(err, ErrConfigNotFound) {
			t.Error("error should not be ErrConfigNotFound for permission error")
		}
	})

	t.Run("config name resolves yaml in current directory", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "site.yaml"), []byte("page:\n  path: fromname.md\n"), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}
		t.Chdir(dir)

		cfg, err := LoadConfig("site")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Page.Path != "fromname.md" {
			t.Errorf("Page.Path = %q, want %q", cfg.Page.Path, "fromname.md")
		}
	})

	t.Run("config name resolves yml when yaml not found", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "site.yml"), []byte("page:\n  path: fromyml.md\n"), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}
		t.Chdir(dir)

		cfg, err := LoadConfig("site")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Page.Path != "fromyml.md" {
			t.Errorf("Page.Path = %q, want %q", cfg.Page.Path, "fromyml.md")
		}
	})

	t.Run("config name prefers yaml over yml", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "site.yaml"), []byte("page:\n  path: yaml.md\n"), 0600); err != nil {
			t.Fatalf("setup yaml: %v", err)
		}
		if err := os.WriteFile(filepath.Join(dir, "site.yml"), []byte("page:\n  path: yml.md\n"), 0600); err != nil {
			t.Fatalf("setup yml: %v", err)
		}
		t.Chdir(dir)

		cfg, err := LoadConfig("site")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Page.Path != "yaml.md" {
			t.Errorf("Page.Path = %q, want %q (should prefer .yaml)", cfg.Page.Path, "yaml.md")
		}
	})

	t.Run("unknown config name lists searched paths", func(t *testing.T) {
		t.Chdir(t.TempDir())

		_, err := LoadConfig("definitely-missing-config")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("error = %v, want ErrConfigNotFound", err)
		}
		if !strings.Contains(err.Error(), "definitely-missing-config.yaml") {
			t.Errorf("error %q should list tried paths", err)
		}
		var nf *NotFoundError
		if !errors.As(err, &nf) {
			t.Fatalf("error = %T, want *NotFoundError", err)
		}
		if nf.Name != "definitely-missing-config" || len(nf.Searched) < 2 {
			t.Errorf("NotFoundError = %+v", nf)
		}
	})
}
