package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/tabclean/internal/cleaning"
	"github.com/GriffinCanCode/tabclean/internal/tableio"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Cleaning config
	assert.Equal(t, 0.4, cfg.Cleaning.MissingThreshold)
	assert.Equal(t, 3.0, cfg.Cleaning.ZScoreThreshold)

	// Run config
	assert.Equal(t, 4, cfg.Run.Workers)
	assert.Empty(t, cfg.Run.OutputDir)

	// Logging config
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.Development)
	assert.Equal(t, []string{"stderr"}, cfg.Logging.OutputPaths)

	assert.NoError(t, cfg.Validate())
}

func TestLoadOrDefault(t *testing.T) {
	// Should match defaults when no env vars set
	cfg := LoadOrDefault()

	assert.NotNil(t, cfg)
	assert.Equal(t, Default().Cleaning, cfg.Cleaning)
	assert.Equal(t, 4, cfg.Run.Workers)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	envVars := map[string]string{
		"TABCLEAN_MISSING_THRESHOLD": "0.25",
		"TABCLEAN_ZSCORE_THRESHOLD":  "2.5",
		"TABCLEAN_WORKERS":           "8",
		"TABCLEAN_OUTPUT_DIR":        "/tmp/clean",
		"TABCLEAN_OUTPUT_FORMAT":     "json",
		"TABCLEAN_MISSING_MARKERS":   "NA,-,?",
		"LOG_LEVEL":                  "debug",
		"LOG_DEV":                    "true",
	}

	for key, value := range envVars {
		require.NoError(t, os.Setenv(key, value))
		defer os.Unsetenv(key)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 0.25, cfg.Cleaning.MissingThreshold)
	assert.Equal(t, 2.5, cfg.Cleaning.ZScoreThreshold)
	assert.Equal(t, 8, cfg.Run.Workers)
	assert.Equal(t, "/tmp/clean", cfg.Run.OutputDir)
	assert.Equal(t, "json", cfg.Run.OutputFormat)
	assert.Equal(t, []string{"NA", "-", "?"}, cfg.Run.MissingMarkers)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)

	assert.Equal(t, []string{"NA", "-", "?"}, cfg.ReadOptions().MissingMarkers)
}

func TestLoadUnprefixedFallback(t *testing.T) {
	require.NoError(t, os.Setenv("ZSCORE_THRESHOLD", "1.5"))
	defer os.Unsetenv("ZSCORE_THRESHOLD")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 1.5, cfg.Cleaning.ZScoreThreshold)
}

func TestLoadInvalidValue(t *testing.T) {
	require.NoError(t, os.Setenv("TABCLEAN_WORKERS", "many"))
	defer os.Unsetenv("TABCLEAN_WORKERS")

	_, err := Load()
	assert.Error(t, err)

	// Falls back to defaults
	cfg := LoadOrDefault()
	assert.Equal(t, 4, cfg.Run.Workers)
}

func TestApplyFile(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "yaml",
			file: "tabclean.yaml",
			content: `cleaning:
  zscore_threshold: 2.5
run:
  workers: 2
schema:
  text: [zip]
logging:
  level: warn
`,
		},
		{
			name: "toml",
			file: "tabclean.toml",
			content: `[cleaning]
zscore_threshold = 2.5

[run]
workers = 2

[schema]
text = ["zip"]

[logging]
level = "warn"
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			cfg := Default()
			require.NoError(t, cfg.ApplyFile(path))

			assert.Equal(t, 2.5, cfg.Cleaning.ZScoreThreshold)
			assert.Equal(t, 0.4, cfg.Cleaning.MissingThreshold, "absent keys keep their value")
			assert.Equal(t, 2, cfg.Run.Workers)
			assert.Equal(t, []string{"zip"}, cfg.Schema.Text)
			assert.Equal(t, "warn", cfg.Logging.Level)
			assert.Equal(t, tableio.Schema{Text: []string{"zip"}}, cfg.ReadOptions().Schema)
		})
	}

	t.Run("unsupported extension", func(t *testing.T) {
		path := filepath.Join(dir, "tabclean.ini")
		require.NoError(t, os.WriteFile(path, []byte("x=1"), 0o644))
		err := Default().ApplyFile(path)
		assert.ErrorIs(t, err, ErrUnsupportedFile)
	})

	t.Run("missing file", func(t *testing.T) {
		err := Default().ApplyFile(filepath.Join(dir, "absent.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yml")
		require.NoError(t, os.WriteFile(path, []byte("cleaning: [1, 2"), 0o644))
		assert.Error(t, Default().ApplyFile(path))
	})
}

func TestLoadWithFile(t *testing.T) {
	require.NoError(t, os.Setenv("TABCLEAN_WORKERS", "6"))
	defer os.Unsetenv("TABCLEAN_WORKERS")

	path := filepath.Join(t.TempDir(), "c.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cleaning:\n  missing_threshold: 0.1\n"), 0o644))

	cfg, err := LoadWithFile(path)
	require.NoError(t, err)
	assert.Equal(t, 0.1, cfg.Cleaning.MissingThreshold)
	assert.Equal(t, 6, cfg.Run.Workers)

	cfg, err = LoadWithFile("")
	require.NoError(t, err)
	assert.Equal(t, 0.4, cfg.Cleaning.MissingThreshold)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"defaults", func(*Config) {}, nil},
		{"bad missing threshold", func(c *Config) { c.Cleaning.MissingThreshold = 1.5 }, cleaning.ErrInvalidThreshold},
		{"bad zscore threshold", func(c *Config) { c.Cleaning.ZScoreThreshold = 0 }, cleaning.ErrInvalidThreshold},
		{"bad format", func(c *Config) { c.Run.OutputFormat = "parquet" }, tableio.ErrUnknownFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("zero workers", func(t *testing.T) {
		cfg := Default()
		cfg.Run.Workers = 0
		assert.Error(t, cfg.Validate())
	})
}
