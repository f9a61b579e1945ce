// Package logging provides structured logging using uber/zap.
//
// Two modes:
//   - Production: JSON output for machine parsing
//   - Development: colored console output for humans
//
// Library packages take a *Logger and default to NewNop, so cleaning a table
// never writes anything unless the caller wires a real logger in.
//
// Example Usage:
//
//	logger := logging.NewDefault()
//	logger.Info("Cleaned table", zap.Int("rows", 42))
package logging
