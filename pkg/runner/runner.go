package runner

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/yaklabco/admonish/pkg/convert"
	"github.com/yaklabco/admonish/pkg/fsutil"
)

var (
	// ErrNoConverter is returned when a Runner has no Converter.
	ErrNoConverter = errors.New("runner has no converter")

	// ErrOutputConflict is recorded for sources that map to the same
	// output file. None of them is rendered.
	ErrOutputConflict = errors.New("output path conflict")
)

// Runner renders many files with one shared Converter.
type Runner struct {
	Converter *convert.Converter
}

// New creates a Runner around conv.
func New(conv *convert.Converter) *Runner {
	return &Runner{Converter: conv}
}

// Run discovers the files selected by opts and renders them on a pool of
// opts.Jobs workers. Outcomes are returned in discovery order. A failing
// file is recorded in its outcome and does not stop the run.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	if r.Converter == nil {
		return nil, ErrNoConverter
	}

	start := time.Now()

	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, err
	}
	opts.WorkingDir = workDir

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	outcomes := make(map[string]FileOutcome, len(files))
	pending := make([]string, 0, len(files))
	conflicts := outputConflicts(opts, files)
	for _, path := range files {
		if err, ok := conflicts[path]; ok {
			outcomes[path] = FileOutcome{Path: path, Output: opts.OutputPath(opts.WorkingDir, path), Error: err}
			continue
		}
		pending = append(pending, path)
	}

	for outcome := range r.renderAll(ctx, opts, pending) {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}
	result.Stats.Duration = time.Since(start)

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}

	return result, nil
}

// renderAll renders files on a worker pool. The returned channel is closed
// once every worker has stopped.
func (r *Runner) renderAll(ctx context.Context, opts Options, files []string) <-chan FileOutcome {
	outCh := make(chan FileOutcome)
	if len(files) == 0 {
		close(outCh)
		return outCh
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	workCh := make(chan string)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range workCh {
				if ctx.Err() != nil {
					return
				}
				outcome := r.RenderFile(ctx, opts, path)
				select {
				case <-ctx.Done():
					return
				case outCh <- outcome:
				}
			}
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	return outCh
}

// outputConflicts returns an error for every file whose output path is
// shared with another file, naming the other sources.
func outputConflicts(opts Options, files []string) map[string]error {
	if opts.OutDir == "" {
		return nil
	}

	byOutput := make(map[string][]string, len(files))
	for _, path := range files {
		output := opts.OutputPath(opts.WorkingDir, path)
		byOutput[output] = append(byOutput[output], path)
	}

	conflicts := make(map[string]error)
	for output, sources := range byOutput {
		if len(sources) < 2 {
			continue
		}
		for _, path := range sources {
			others := slices.DeleteFunc(slices.Clone(sources), func(other string) bool { return other == path })
			conflicts[path] = fmt.Errorf("%w: %s is also rendered from %s",
				ErrOutputConflict, output, strings.Join(others, ", "))
		}
	}
	return conflicts
}

// RenderFile converts a single source file. When opts.OutDir is set the
// HTML is written under it; identical existing output is left alone.
func (r *Runner) RenderFile(ctx context.Context, opts Options, path string) FileOutcome {
	outcome := FileOutcome{Path: path}

	content, source, err := fsutil.ReadSource(ctx, path)
	if err != nil {
		outcome.Error = err
		return outcome
	}
	outcome.BytesIn = source.Size
	outcome.Source = source

	converted, err := r.Converter.Convert(ctx, path, content)
	if err != nil {
		outcome.Error = err
		return outcome
	}
	outcome.Result = converted

	output := opts.OutputPath(opts.WorkingDir, path)
	if output == "" {
		return outcome
	}
	outcome.Output = output

	outcome.Written, err = fsutil.WriteOutput(ctx, output, converted.HTML)
	if err != nil {
		outcome.Error = fmt.Errorf("write %s: %w", output, err)
	}
	return outcome
}
