package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charlievieth/fastwalk"

	"github.com/GriffinCanCode/tabclean/internal/tableio"
)

var (
	ErrNoInputs        = errors.New("no input tables matched")
	ErrOutputCollision = errors.New("output path collides with another job")
)

const (
	cleanSuffix  = ".clean"
	reportSuffix = ".report.json"
)

// CollectInputs expands args into a sorted, de-duplicated list of table
// files. An argument may be a file, a directory (walked recursively for
// files with a table extension) or a doublestar glob such as data/**/*.csv.
func CollectInputs(ctx context.Context, args []string) ([]string, error) {
	seen := make(map[string]struct{})
	add := func(p string) {
		seen[filepath.Clean(p)] = struct{}{}
	}

	for _, arg := range args {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		info, err := os.Stat(arg)
		switch {
		case err == nil && info.IsDir():
			files, err := walkTables(ctx, arg)
			if err != nil {
				return nil, err
			}
			for _, f := range files {
				add(f)
			}
		case err == nil:
			add(arg)
		case hasMeta(arg):
			matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
			if err != nil {
				return nil, fmt.Errorf("glob %q: %w", arg, err)
			}
			for _, m := range matches {
				add(m)
			}
		default:
			return nil, err
		}
	}

	if len(seen) == 0 {
		return nil, ErrNoInputs
	}
	paths := make([]string, 0, len(seen))
	for p := range seen {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths, nil
}

// walkTables returns every file below root whose extension names a table
// format, skipping cleaned tables and reports from earlier runs. fastwalk
// invokes the callback from several goroutines.
func walkTables(ctx context.Context, root string) ([]string, error) {
	var (
		mu    sync.Mutex
		files []string
	)
	conf := fastwalk.Config{Follow: false}

	err := fastwalk.Walk(&conf, root, func(p string, d os.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil || d.IsDir() {
			return nil
		}
		if _, ok := tableio.FormatFromPath(p); !ok || isGenerated(p) {
			return nil
		}
		mu.Lock()
		files = append(files, p)
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return files, nil
}

// isGenerated reports whether path is named like a PlanJobs output or report.
func isGenerated(path string) bool {
	if strings.HasSuffix(path, reportSuffix) {
		return true
	}
	stem, _ := splitExt(path)
	return strings.HasSuffix(stem, cleanSuffix)
}

func hasMeta(path string) bool {
	return strings.ContainsAny(path, "*?[{")
}

// PlanJobs assigns an output path, and a report path when reportDir is set,
// to each input. With an empty outputDir the cleaned table is written next
// to its input as <stem>.clean.<ext>. An empty format keeps the input's
// extension. No output or report may coincide with another job's output,
// report or input.
func PlanJobs(inputs []string, outputDir, reportDir string, format tableio.Format) ([]Job, error) {
	jobs := make([]Job, 0, len(inputs))
	outputs := make(map[string]string, len(inputs))
	sources := make(map[string]struct{}, len(inputs))
	for _, in := range inputs {
		sources[filepath.Clean(in)] = struct{}{}
	}
	claim := func(path, in string) error {
		if prev, dup := outputs[path]; dup {
			return fmt.Errorf("%w: %s and %s -> %s", ErrOutputCollision, prev, in, path)
		}
		if _, isInput := sources[filepath.Clean(path)]; isInput {
			return fmt.Errorf("%w: %s -> %s, which is also an input", ErrOutputCollision, in, path)
		}
		outputs[path] = in
		return nil
	}

	for _, in := range inputs {
		stem, ext := splitExt(in)
		if format != "" {
			ext = "." + string(format)
		}

		dir := filepath.Dir(in)
		if outputDir != "" {
			dir = outputDir
		}
		out := filepath.Join(dir, filepath.Base(stem)+cleanSuffix+ext)
		if err := claim(out, in); err != nil {
			return nil, err
		}

		job := Job{Input: in, Output: out}
		if reportDir != "" {
			job.Report = filepath.Join(reportDir, filepath.Base(stem)+reportSuffix)
			if err := claim(job.Report, in); err != nil {
				return nil, err
			}
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// splitExt separates a path into stem and extension, treating a trailing
// .gz as part of the extension.
func splitExt(path string) (string, string) {
	gz := ""
	if strings.EqualFold(filepath.Ext(path), ".gz") {
		gz = path[len(path)-3:]
		path = path[:len(path)-3]
	}
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext), ext + gz
}
