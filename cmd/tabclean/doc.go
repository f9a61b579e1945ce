// Package main is the tabclean command line tool.
//
// tabclean removes sparse columns, imputes numeric medians and drops
// outlier rows from CSV or columnar JSON tables.
//
// Modes:
//   - No input or "-": read stdin, write stdout (or -output)
//   - One file: write stdout unless -output names a file
//   - Directories, globs or several files: clean concurrently, writing
//     <stem>.clean.<ext> next to each input or under -output
//
// Configuration:
//   - Environment variables (TABCLEAN_*, LOG_*)
//   - Config file (-config, YAML or TOML)
//   - CLI flags (override both)
//
// Usage:
//
//	# Clean one file to stdout
//	./tabclean data.csv
//
//	# Batch with reports
//	./tabclean -output clean/ -report reports/ -workers 8 'raw/**/*.csv'
//
//	# Stricter outlier filter, JSON output
//	./tabclean -zscore-threshold 2.5 -format json < data.csv
//
// Signals:
//   - SIGINT, SIGTERM: cancel pending batch jobs
package main
