// Package config loads the viewer settings from YAML with environment
// variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure.
type Config struct {
	Logging  LoggingConfig  `yaml:"logging"`
	Profiles ProfilesConfig `yaml:"profiles"`
	Formats  FormatsConfig  `yaml:"formats"`
	UI       UIConfig       `yaml:"ui"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// ProfilesConfig points at a directory of device profiles (*.otp).
type ProfilesConfig struct {
	Dir string `yaml:"dir"`
}

// FormatsConfig selects an input format catalog. Empty means built-in.
type FormatsConfig struct {
	Catalog string `yaml:"catalog"`
}

// UIConfig contains the initial window size in dp.
type UIConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// DefaultPath returns ~/.config/opentraceview/config.yaml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "opentraceview", "config.yaml"), nil
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
		UI: UIConfig{
			Width:  480,
			Height: 640,
		},
	}
}

// Load reads the configuration at path. A missing file yields the defaults;
// environment overrides are applied in both cases.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	// Logging
	if v := os.Getenv("OTV_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("OTV_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("OTV_LOG_OUTPUT"); v != "" {
		cfg.Logging.Output = v
	}

	// Data sources
	if v := os.Getenv("OTV_PROFILES_DIR"); v != "" {
		cfg.Profiles.Dir = v
	}
	if v := os.Getenv("OTV_FORMATS_CATALOG"); v != "" {
		cfg.Formats.Catalog = v
	}

	// UI
	if n, err := strconv.Atoi(os.Getenv("OTV_UI_WIDTH")); err == nil {
		cfg.UI.Width = n
	}
	if n, err := strconv.Atoi(os.Getenv("OTV_UI_HEIGHT")); err == nil {
		cfg.UI.Height = n
	}
}

// Validate checks enumerated settings and sizes.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level: unknown level %q", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format: must be text or json, got %q", c.Logging.Format)
	}
	if c.UI.Width <= 0 || c.UI.Height <= 0 {
		return fmt.Errorf("ui: window size must be positive, got %dx%d", c.UI.Width, c.UI.Height)
	}
	return nil
}

// ProfilePaths lists the *.otp files in the profiles directory, sorted.
func (c *Config) ProfilePaths() ([]string, error) {
	if c.Profiles.Dir == "" {
		return nil, nil
	}
	paths, err := filepath.Glob(filepath.Join(c.Profiles.Dir, "*.otp"))
	if err != nil {
		return nil, fmt.Errorf("listing profiles: %w", err)
	}
	return paths, nil
}
