package cleaning

import (
	"fmt"
	gomath "math"
)

const (
	DefaultMissingThreshold = 0.4
	DefaultZScoreThreshold  = 3.0
)

// Config carries the two thresholds of a cleaning pass.
type Config struct {
	// MissingThreshold is the largest tolerated fraction of missing cells in
	// a column, in [0, 1]. A column is dropped when its fraction exceeds it.
	MissingThreshold float64 `envconfig:"MISSING_THRESHOLD" default:"0.4" json:"missing_threshold" yaml:"missing_threshold" toml:"missing_threshold"`
	// ZScoreThreshold bounds the absolute standardized score of numeric
	// cells, > 0. A row is dropped when any score reaches it.
	ZScoreThreshold float64 `envconfig:"ZSCORE_THRESHOLD" default:"3" json:"zscore_threshold" yaml:"zscore_threshold" toml:"zscore_threshold"`
}

// DefaultConfig returns MissingThreshold 0.4 and ZScoreThreshold 3.
func DefaultConfig() Config {
	return Config{
		MissingThreshold: DefaultMissingThreshold,
		ZScoreThreshold:  DefaultZScoreThreshold,
	}
}

// Validate rejects thresholds that would silently empty the output.
func (c Config) Validate() error {
	if gomath.IsNaN(c.MissingThreshold) || c.MissingThreshold < 0 || c.MissingThreshold > 1 {
		return fmt.Errorf("%w: missing threshold %v outside [0, 1]", ErrInvalidThreshold, c.MissingThreshold)
	}
	if gomath.IsNaN(c.ZScoreThreshold) || gomath.IsInf(c.ZScoreThreshold, 0) || c.ZScoreThreshold <= 0 {
		return fmt.Errorf("%w: z-score threshold %v must be a positive finite number", ErrInvalidThreshold, c.ZScoreThreshold)
	}
	return nil
}
