package batch

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/GriffinCanCode/tabclean/internal/cleaning"
	"github.com/GriffinCanCode/tabclean/internal/infrastructure/logging"
	"github.com/GriffinCanCode/tabclean/internal/shared/id"
	"github.com/GriffinCanCode/tabclean/internal/tableio"
)

// DefaultWorkers bounds concurrent cleanings when no worker count is set.
const DefaultWorkers = 4

// Job is one input table and where its results go.
type Job struct {
	Input  string
	Output string
	Report string
}

// Result is the outcome of a Job. Report is nil when Err is set.
type Result struct {
	Job    Job
	Report *cleaning.Report
	Err    error
}

// Runner cleans many tables concurrently with one Cleaner.
type Runner struct {
	cleaner *cleaning.Cleaner
	read    tableio.ReadOptions
	format  tableio.Format
	workers int
	logger  *logging.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithWorkers sets the number of tables cleaned at once.
func WithWorkers(n int) RunnerOption {
	return func(r *Runner) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithReadOptions sets how inputs are decoded.
func WithReadOptions(opts tableio.ReadOptions) RunnerOption {
	return func(r *Runner) { r.read = opts }
}

// WithFormat forces the output encoding. Empty derives it from each output path.
func WithFormat(f tableio.Format) RunnerOption {
	return func(r *Runner) { r.format = f }
}

// WithLogger sets the runner logger.
func WithLogger(logger *logging.Logger) RunnerOption {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRunner creates a Runner around cleaner.
func NewRunner(cleaner *cleaning.Cleaner, opts ...RunnerOption) *Runner {
	r := &Runner{
		cleaner: cleaner,
		workers: DefaultWorkers,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.Named("batch")
	return r
}

// Run cleans every job, at most Workers at a time. Each table is read,
// cleaned and written independently. The first failure cancels jobs that
// have not started yet and is returned; results keep the order of jobs.
func (r *Runner) Run(ctx context.Context, jobs []Job) ([]Result, error) {
	results := make([]Result, len(jobs))
	if len(jobs) == 0 {
		return results, nil
	}

	batchID := id.NewBatchID()
	log := r.logger.With(zap.Stringer("batch_id", batchID))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	started := time.Now()
	for i, job := range jobs {
		results[i].Job = job
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			report, err := r.runJob(job, batchID, log)
			if err != nil {
				results[i].Err = err
				log.Error("Cleaning failed", zap.String("input", job.Input), zap.Error(err))
				return err
			}
			results[i].Report = report
			return nil
		})
	}

	err := g.Wait()
	log.Info("Batch finished",
		zap.Int("jobs", len(jobs)),
		zap.Int("workers", r.workers),
		zap.Duration("elapsed", time.Since(started)),
		zap.Bool("ok", err == nil),
	)
	return results, err
}

func (r *Runner) runJob(job Job, batchID id.BatchID, log *logging.Logger) (*cleaning.Report, error) {
	in, err := tableio.ReadFile(job.Input, r.read)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	out, report, err := r.cleaner.Run(in)
	if err != nil {
		return nil, fmt.Errorf("clean %s: %w", job.Input, err)
	}
	report.Source = job.Input
	report.BatchID = batchID.String()

	if err := tableio.WriteFile(job.Output, out, r.format); err != nil {
		return nil, fmt.Errorf("write %s: %w", job.Output, err)
	}
	if job.Report != "" {
		if err := tableio.WriteReportFile(job.Report, report); err != nil {
			return nil, fmt.Errorf("write report %s: %w", job.Report, err)
		}
	}

	log.Debug("Table cleaned",
		zap.String("input", job.Input),
		zap.String("output", job.Output),
		zap.String("summary", report.Summary()),
	)
	return report, nil
}
