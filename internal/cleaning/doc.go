// Package cleaning implements a deterministic, single-pass cleaning routine
// for tables.
//
// Steps, always in this order:
//  1. DropSparseColumns: drop every column whose missing fraction exceeds
//     Config.MissingThreshold
//  2. ImputeMedian: fill missing numeric cells with the column median
//  3. FilterOutliers: drop every row with a numeric cell whose absolute
//     z-score is at least Config.ZScoreThreshold
//
// Numeric columns are selected once, by their Kind tag, after step 1 and
// reused by steps 2 and 3. Text columns take part only in column dropping
// and in row removal.
//
// Edge cases:
//   - zero rows: every missing fraction is 0, nothing is dropped
//   - numeric column with no present values: not imputed, reported as skipped,
//     scores 0 in step 3
//   - zero-variance column: scores 0, never removes rows
//   - out-of-range thresholds: rejected by Config.Validate with
//     ErrInvalidThreshold
//   - infinite numeric cells: stats.ErrNonFinite (NaN is read as missing)
//
// Example Usage:
//
//	c, err := cleaning.New(cleaning.DefaultConfig(), cleaning.WithLogger(logger))
//	out, report, err := c.Run(t)
package cleaning
