package runner

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"

	"github.com/yaklabco/admonish/pkg/convert"
	"github.com/yaklabco/admonish/pkg/fsutil"
)

// FileOutcome is the result of rendering one source file.
type FileOutcome struct {
	// Path is the absolute source path.
	Path string

	// Output is the written file, empty when Options.OutDir is unset.
	Output string

	// Result holds the conversion; nil when Error is set.
	Result *convert.Result

	// Written is false when the output already held identical content.
	Written bool

	// BytesIn is the size of the source file.
	BytesIn int64

	// Source is the input state the output was rendered from.
	Source *fsutil.Source

	// Error is set if the file could not be read, converted or written.
	Error error
}

// HTML returns the rendered bytes, or nil for a failed file.
func (o FileOutcome) HTML() []byte {
	if o.Result == nil {
		return nil
	}
	return o.Result.HTML
}

// Stats aggregates a run.
type Stats struct {
	FilesDiscovered int
	FilesRendered   int
	FilesWritten    int
	FilesUnchanged  int
	FilesErrored    int
	Admonitions     int
	BytesIn         uint64
	BytesOut        uint64
	Duration        time.Duration
}

// Summary renders stats as one human readable line.
func (s Stats) Summary() string {
	line := fmt.Sprintf("rendered %s (%s in, %s out), %s",
		english.Plural(s.FilesRendered, "file", ""),
		humanize.Bytes(s.BytesIn),
		humanize.Bytes(s.BytesOut),
		english.Plural(s.Admonitions, "admonition", ""),
	)
	if s.FilesUnchanged > 0 {
		line += fmt.Sprintf(", %s unchanged", humanize.Comma(int64(s.FilesUnchanged)))
	}
	if s.FilesErrored > 0 {
		line += fmt.Sprintf(", %s failed", humanize.Comma(int64(s.FilesErrored)))
	}
	if s.Duration > 0 {
		line += " in " + s.Duration.Round(time.Millisecond).String()
	}
	return line
}

// Result is the outcome of a Run, with files in discovery order.
type Result struct {
	Files []FileOutcome
	Stats Stats
}

// HasErrors reports whether any file failed.
func (r *Result) HasErrors() bool {
	return r != nil && r.Stats.FilesErrored > 0
}

// Errors returns the per-file errors in file order.
func (r *Result) Errors() []error {
	if r == nil {
		return nil
	}
	var errs []error
	for _, file := range r.Files {
		if file.Error != nil {
			errs = append(errs, file.Error)
		}
	}
	return errs
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesRendered++
	r.Stats.BytesIn += uint64(outcome.BytesIn) //nolint:gosec // file sizes are non-negative
	if outcome.Result != nil {
		r.Stats.Admonitions += outcome.Result.Admonitions
		r.Stats.BytesOut += uint64(len(outcome.Result.HTML))
	}

	if outcome.Output == "" {
		return
	}
	if outcome.Written {
		r.Stats.FilesWritten++
	} else {
		r.Stats.FilesUnchanged++
	}
}
