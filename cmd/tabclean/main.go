package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/tabclean/internal/batch"
	"github.com/GriffinCanCode/tabclean/internal/cleaning"
	"github.com/GriffinCanCode/tabclean/internal/infrastructure/config"
	"github.com/GriffinCanCode/tabclean/internal/infrastructure/logging"
	"github.com/GriffinCanCode/tabclean/internal/table"
	"github.com/GriffinCanCode/tabclean/internal/tableio"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type options struct {
	input            string
	output           string
	format           string
	report           string
	sheet            string
	configPath       string
	missingThreshold float64
	zscoreThreshold  float64
	workers          int
	dev              bool
	logLevel         string
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("tabclean", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var opts options
	fs.StringVar(&opts.input, "input", "", "Input table, directory or glob (repeatable as arguments; - for stdin)")
	fs.StringVar(&opts.output, "output", "", "Output file for one input, directory for several")
	fs.StringVar(&opts.format, "format", "", "Output format: csv, json or xlsx")
	fs.StringVar(&opts.report, "report", "", "Report file for one input, directory for several")
	fs.StringVar(&opts.sheet, "sheet", "", "XLSX worksheet to read (default first)")
	fs.StringVar(&opts.configPath, "config", "", "YAML or TOML config file")
	fs.Float64Var(&opts.missingThreshold, "missing-threshold", cleaning.DefaultMissingThreshold, "Drop columns whose missing fraction exceeds this")
	fs.Float64Var(&opts.zscoreThreshold, "zscore-threshold", cleaning.DefaultZScoreThreshold, "Drop rows with any |z| at or above this")
	fs.IntVar(&opts.workers, "workers", batch.DefaultWorkers, "Tables cleaned concurrently")
	fs.BoolVar(&opts.dev, "dev", false, "Development logging (console, debug level)")
	fs.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	cfg, err := config.LoadWithFile(opts.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "tabclean: %v\n", err)
		return exitUsage
	}
	applyFlags(fs, &opts, cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "tabclean: %v\n", err)
		return exitUsage
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		fmt.Fprintf(stderr, "tabclean: %v\n", err)
		return exitUsage
	}
	defer logger.Sync()

	cleaner, err := cleaning.New(cfg.Cleaning, cleaning.WithLogger(logger))
	if err != nil {
		fmt.Fprintf(stderr, "tabclean: %v\n", err)
		return exitUsage
	}

	inputs := fs.Args()
	if opts.input != "" {
		inputs = append([]string{opts.input}, inputs...)
	}

	a := &app{cfg: cfg, cleaner: cleaner, logger: logger, stdin: stdin, stdout: stdout}
	if err := a.dispatch(ctx, inputs, opts); err != nil {
		logger.Error("Cleaning failed", zap.Error(err))
		fmt.Fprintf(stderr, "tabclean: %v\n", err)
		return exitError
	}
	return exitOK
}

// applyFlags copies explicitly set flags over file and environment values.
func applyFlags(fs *flag.FlagSet, opts *options, cfg *config.Config) {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "missing-threshold":
			cfg.Cleaning.MissingThreshold = opts.missingThreshold
		case "zscore-threshold":
			cfg.Cleaning.ZScoreThreshold = opts.zscoreThreshold
		case "workers":
			cfg.Run.Workers = opts.workers
		case "format":
			cfg.Run.OutputFormat = opts.format
		case "sheet":
			cfg.Run.Sheet = opts.sheet
		case "dev":
			cfg.Logging.Development = opts.dev
			if opts.dev && cfg.Logging.Level == "info" {
				cfg.Logging.Level = "debug"
			}
		case "log-level":
			cfg.Logging.Level = opts.logLevel
		}
	})
}

type app struct {
	cfg     *config.Config
	cleaner *cleaning.Cleaner
	logger  *logging.Logger
	stdin   io.Reader
	stdout  io.Writer
}

func (a *app) dispatch(ctx context.Context, inputs []string, opts options) error {
	if len(inputs) == 0 || (len(inputs) == 1 && inputs[0] == "-") {
		return a.single("", opts.output, opts.report)
	}
	if len(inputs) == 1 {
		if info, err := os.Stat(inputs[0]); err == nil && info.Mode().IsRegular() {
			return a.single(inputs[0], opts.output, opts.report)
		}
	}
	return a.batch(ctx, inputs, opts)
}

// single cleans one table. An empty input reads stdin and an empty output
// writes stdout.
func (a *app) single(input, output, reportPath string) error {
	format, err := a.outputFormat()
	if err != nil {
		return err
	}

	tbl, err := a.read(input)
	if err != nil {
		return err
	}

	cleaned, report, err := a.cleaner.Run(tbl)
	if err != nil {
		return err
	}
	report.Source = input

	if output == "" {
		if format == "" {
			format = tableio.FormatCSV
		}
		if err := tableio.Encode(a.stdout, cleaned, format); err != nil {
			return err
		}
	} else if err := tableio.WriteFile(output, cleaned, format); err != nil {
		return err
	}

	if reportPath != "" {
		return tableio.WriteReportFile(reportPath, report)
	}
	return nil
}

func (a *app) read(input string) (*table.Table, error) {
	if input == "" {
		return tableio.Decode(a.stdin, "", a.cfg.ReadOptions())
	}
	return tableio.ReadFile(input, a.cfg.ReadOptions())
}

// batch cleans every table matched by inputs. -output and -report name
// directories here, falling back to the configured ones.
func (a *app) batch(ctx context.Context, inputs []string, opts options) error {
	format, err := a.outputFormat()
	if err != nil {
		return err
	}

	outputDir := a.cfg.Run.OutputDir
	if opts.output != "" {
		outputDir = opts.output
	}
	reportDir := a.cfg.Run.ReportDir
	if opts.report != "" {
		reportDir = opts.report
	}

	paths, err := batch.CollectInputs(ctx, inputs)
	if err != nil {
		return err
	}
	jobs, err := batch.PlanJobs(paths, outputDir, reportDir, format)
	if err != nil {
		return err
	}

	runner := batch.NewRunner(a.cleaner,
		batch.WithWorkers(a.cfg.Run.Workers),
		batch.WithReadOptions(a.cfg.ReadOptions()),
		batch.WithFormat(format),
		batch.WithLogger(a.logger),
	)
	results, err := runner.Run(ctx, jobs)
	for _, res := range results {
		if res.Report != nil {
			fmt.Fprintf(a.stdout, "%s -> %s: %s\n", res.Job.Input, res.Job.Output, res.Report.Summary())
		}
	}
	return err
}

func (a *app) outputFormat() (tableio.Format, error) {
	if a.cfg.Run.OutputFormat == "" {
		return "", nil
	}
	return tableio.ParseFormat(a.cfg.Run.OutputFormat)
}
