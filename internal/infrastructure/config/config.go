package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"

	"github.com/GriffinCanCode/tabclean/internal/cleaning"
	"github.com/GriffinCanCode/tabclean/internal/infrastructure/logging"
	"github.com/GriffinCanCode/tabclean/internal/tableio"
)

// ErrUnsupportedFile is returned for config files that are neither YAML nor TOML.
var ErrUnsupportedFile = errors.New("unsupported config file type")

// Config holds all application configuration.
type Config struct {
	Cleaning cleaning.Config `envconfig:"TABCLEAN" yaml:"cleaning" toml:"cleaning"`
	Run      RunConfig       `envconfig:"TABCLEAN" yaml:"run" toml:"run"`
	Logging  logging.Config  `yaml:"logging" toml:"logging"`
	Schema   tableio.Schema  `ignored:"true" yaml:"schema" toml:"schema"`
}

// RunConfig holds input/output settings for the command line tool.
type RunConfig struct {
	Workers        int      `envconfig:"WORKERS" default:"4" yaml:"workers" toml:"workers"`
	OutputDir      string   `envconfig:"OUTPUT_DIR" yaml:"output_dir" toml:"output_dir"`
	OutputFormat   string   `envconfig:"OUTPUT_FORMAT" yaml:"output_format" toml:"output_format"`
	ReportDir      string   `envconfig:"REPORT_DIR" yaml:"report_dir" toml:"report_dir"`
	MissingMarkers []string `envconfig:"MISSING_MARKERS" yaml:"missing_markers" toml:"missing_markers"`
	Sheet          string   `envconfig:"SHEET" yaml:"sheet" toml:"sheet"`
}

// Load loads configuration from environment variables, applying defaults.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Cleaning: cleaning.DefaultConfig(),
		Run: RunConfig{
			Workers: 4,
		},
		Logging: logging.DefaultConfig(),
	}
}

// LoadWithFile loads environment configuration and overlays the file at
// path when it is non-empty. Values in the file win over the environment.
func LoadWithFile(path string) (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return cfg, nil
	}
	if err := cfg.ApplyFile(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyFile decodes a YAML (.yaml, .yml) or TOML (.toml) file onto cfg.
// Keys absent from the file keep their current values.
func (c *Config) ApplyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parse yaml config %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parse toml config %s: %w", path, err)
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFile, path)
	}
	return nil
}

// Validate checks thresholds and run settings.
func (c *Config) Validate() error {
	if err := c.Cleaning.Validate(); err != nil {
		return err
	}
	if c.Run.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Run.Workers)
	}
	if c.Run.OutputFormat != "" {
		if _, err := tableio.ParseFormat(c.Run.OutputFormat); err != nil {
			return err
		}
	}
	return nil
}

// ReadOptions returns the table decoding options implied by the config.
func (c *Config) ReadOptions() tableio.ReadOptions {
	return tableio.ReadOptions{
		Schema:         c.Schema,
		MissingMarkers: c.Run.MissingMarkers,
		Sheet:          c.Run.Sheet,
	}
}
