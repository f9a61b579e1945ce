// Package config provides 12-factor configuration for tabclean.
//
// Configuration is loaded from environment variables with defaults, then
// optionally overlaid by a YAML or TOML file. CLI flags override both.
//
// Configuration Sections:
//   - Cleaning: missing and z-score thresholds
//   - Run: workers, output locations, missing markers
//   - Logging: log level and output format
//   - Schema: column kinds forced at load time (file only)
//
// Environment Variables:
//   - TABCLEAN_MISSING_THRESHOLD, TABCLEAN_ZSCORE_THRESHOLD
//   - TABCLEAN_WORKERS, TABCLEAN_OUTPUT_DIR, TABCLEAN_OUTPUT_FORMAT
//   - TABCLEAN_REPORT_DIR, TABCLEAN_MISSING_MARKERS, TABCLEAN_SHEET
//   - LOG_LEVEL, LOG_DEV, LOG_OUTPUT
//
// Example file (YAML):
//
//	cleaning:
//	  missing_threshold: 0.3
//	  zscore_threshold: 2.5
//	schema:
//	  text: [zip_code]
package config
