package cleaning

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/tabclean/internal/infrastructure/logging"
	"github.com/GriffinCanCode/tabclean/internal/table"
)

// Cleaner runs the three cleaning steps with a fixed Config.
// A Cleaner holds no per-run state and is safe for concurrent use.
type Cleaner struct {
	cfg    Config
	logger *logging.Logger
	now    func() time.Time
}

// Option configures a Cleaner.
type Option func(*Cleaner)

// WithLogger sets the logger used for step summaries.
func WithLogger(logger *logging.Logger) Option {
	return func(c *Cleaner) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithClock overrides the time source used for report timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Cleaner) {
		if now != nil {
			c.now = now
		}
	}
}

// New validates cfg and returns a Cleaner.
func New(cfg Config, opts ...Option) (*Cleaner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Cleaner{
		cfg:    cfg,
		logger: logging.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.Named("cleaning")
	return c, nil
}

// Config returns the thresholds this Cleaner applies.
func (c *Cleaner) Config() Config { return c.cfg }

// Clean is Run without the report.
func (c *Cleaner) Clean(t *table.Table) (*table.Table, error) {
	out, _, err := c.Run(t)
	return out, err
}

// Run drops sparse columns, imputes numeric medians and filters outlier rows,
// in that order. The input is never modified and the returned table shares
// no storage with it. On error no table is returned.
func (c *Cleaner) Run(t *table.Table) (*table.Table, *Report, error) {
	if t == nil {
		return nil, nil, ErrNilTable
	}

	started := c.now()
	report := &Report{
		RunID:     uuid.NewString(),
		Config:    c.cfg,
		Input:     Shape{Rows: t.Rows(), Columns: t.Width()},
		StartedAt: started,
	}
	log := c.logger.With(zap.String("run_id", report.RunID))

	// SelectColumns always copies, so later steps never touch the input.
	kept, dropped, err := DropSparseColumns(t, c.cfg.MissingThreshold)
	if err != nil {
		return nil, nil, err
	}
	report.DroppedColumns = orEmpty(dropped)
	log.Debug("Dropped sparse columns",
		zap.Int("dropped", len(dropped)),
		zap.Int("kept", kept.Width()),
		zap.Float64("missing_threshold", c.cfg.MissingThreshold))

	numeric := kept.NumericColumns()

	imputed, imputations, skipped, err := ImputeMedian(kept, numeric)
	if err != nil {
		return nil, nil, err
	}
	report.Imputations = orEmpty(imputations)
	report.SkippedImputes = orEmpty(skipped)
	log.Debug("Imputed medians",
		zap.Int("columns", len(imputations)),
		zap.Strings("skipped", skipped))

	filtered, droppedRows, err := FilterOutliers(imputed, numeric, c.cfg.ZScoreThreshold)
	if err != nil {
		return nil, nil, err
	}
	report.DroppedRows = orEmpty(droppedRows)
	log.Debug("Filtered outlier rows",
		zap.Int("dropped", len(droppedRows)),
		zap.Int("kept", filtered.Rows()),
		zap.Float64("zscore_threshold", c.cfg.ZScoreThreshold))

	report.Output = Shape{Rows: filtered.Rows(), Columns: filtered.Width()}
	report.Elapsed = c.now().Sub(started)
	log.Info("Cleaned table", zap.String("summary", report.Summary()), zap.Duration("elapsed", report.Elapsed))

	return filtered, report, nil
}

// orEmpty keeps report lists encoding as [] rather than null.
func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// Clean runs a single pass with cfg and no logging.
func Clean(t *table.Table, cfg Config) (*table.Table, error) {
	c, err := New(cfg)
	if err != nil {
		return nil, err
	}
	return c.Clean(t)
}
