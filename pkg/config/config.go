// Package config loads and validates the runtime configuration for a
// statistical test battery invocation: the TestParameters the core
// battery package consumes, plus the ambient settings (logging,
// reporting, metrics) that surround it.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jhkimqd/sts-battery/pkg/battery"
)

// Config is the top-level runtime configuration.
type Config struct {
	Framework FrameworkConfig        `yaml:"framework"`
	Battery   battery.TestParameters `yaml:"battery"`
	Source    SourceConfig           `yaml:"source"`
	Reporting ReportingConfig        `yaml:"reporting"`
	Metrics   MetricsConfig          `yaml:"metrics"`
}

// FrameworkConfig contains general framework settings.
type FrameworkConfig struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// SourceConfig selects and configures the bit-stream input: either a
// file path, or a built-in generator name.
type SourceConfig struct {
	Kind       string `yaml:"kind"` // "file" | "lcg" | "qr" | "sha1"
	Path       string `yaml:"path"`
	Format     string `yaml:"format"` // "ascii" | "binary"
	MasterSeed uint64 `yaml:"master_seed"`
}

// ReportingConfig contains reporting and output settings.
type ReportingConfig struct {
	OutputDir string `yaml:"output_dir"`
	KeepLastN int     `yaml:"keep_last_n"`
}

// MetricsConfig controls the optional Prometheus exporter.
type MetricsConfig struct {
	Enabled bool          `yaml:"enabled"`
	Listen  string        `yaml:"listen"`
	Timeout time.Duration `yaml:"timeout"`
}

// DefaultConfig returns a default configuration using
// battery.DefaultTestParameters for the core and a built-in LCG
// generator as a ready-to-run source.
func DefaultConfig() *Config {
	return &Config{
		Framework: FrameworkConfig{
			LogLevel:  "info",
			LogFormat: "text",
		},
		Battery: battery.DefaultTestParameters(),
		Source: SourceConfig{
			Kind:       "lcg",
			Format:     "ascii",
			MasterSeed: 1,
		},
		Reporting: ReportingConfig{
			OutputDir: "./reports",
			KeepLastN: 50,
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Listen:  ":9191",
			Timeout: 10 * time.Second,
		},
	}
}

// Load loads configuration from a YAML file, falling back to
// DefaultConfig when path does not exist. Environment variables in the
// file are expanded before parsing.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = "config.yaml"
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	expanded := []byte(os.ExpandEnv(string(data)))
	if err := yaml.Unmarshal(expanded, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Save writes configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate validates the configuration, delegating the core parameter
// checks to battery.TestParameters.Validate.
func (c *Config) Validate() error {
	if err := c.Battery.Validate(); err != nil {
		return err
	}
	switch c.Source.Kind {
	case "file":
		if c.Source.Path == "" {
			return fmt.Errorf("source.path is required when source.kind is \"file\"")
		}
	case "lcg", "qr", "sha1":
		// built-in generators need no further configuration
	default:
		return fmt.Errorf("source.kind must be one of file|lcg|qr|sha1, got %q", c.Source.Kind)
	}
	if c.Source.Kind == "file" {
		switch c.Source.Format {
		case "ascii", "binary":
		default:
			return fmt.Errorf("source.format must be ascii or binary, got %q", c.Source.Format)
		}
	}
	if c.Reporting.OutputDir == "" {
		return fmt.Errorf("reporting.output_dir is required")
	}
	return nil
}
