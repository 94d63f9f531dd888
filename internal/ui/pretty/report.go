package pretty

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize/english"

	"github.com/yaklabco/admonish/pkg/runner"
)

const (
	symbolOK   = "✓"
	symbolFail = "✗"
	symbolSame = "="
	arrow      = "→"
)

// Reporter formats runner outcomes relative to a base directory.
type Reporter struct {
	styles *Styles
	base   string
}

// NewReporter creates a Reporter; paths under base are shown relative.
func NewReporter(styles *Styles, base string) *Reporter {
	return &Reporter{styles: styles, base: base}
}

func (r *Reporter) rel(path string) string {
	if r.base == "" {
		return path
	}
	rel, err := filepath.Rel(r.base, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}

// Outcome renders one file result as a single line.
func (r *Reporter) Outcome(outcome runner.FileOutcome) string {
	s := r.styles

	if outcome.Error != nil {
		if outcome.Path == "" {
			return fmt.Sprintf("%s %v", s.Error.Render(symbolFail), outcome.Error)
		}
		return fmt.Sprintf("%s %s: %v", s.Error.Render(symbolFail), s.FilePath.Render(r.rel(outcome.Path)), outcome.Error)
	}

	symbol := s.Success.Render(symbolOK)
	if outcome.Output != "" && !outcome.Written {
		symbol = s.Dim.Render(symbolSame)
	}

	line := symbol + " " + s.FilePath.Render(r.rel(outcome.Path))
	if outcome.Output != "" {
		line += " " + s.Arrow.Render(arrow) + " " + r.rel(outcome.Output)
	}
	if outcome.Result != nil && outcome.Result.Admonitions > 0 {
		line += " " + s.Count.Render("("+english.Plural(outcome.Result.Admonitions, "admonition", "")+")")
	}
	return line
}

// Summary renders aggregate stats, highlighted by outcome.
func (r *Reporter) Summary(stats runner.Stats) string {
	line := stats.Summary()
	switch {
	case stats.FilesErrored > 0:
		return r.styles.Error.Render(line)
	case stats.FilesRendered == 0:
		return r.styles.Warning.Render(line)
	default:
		return r.styles.Success.Render(line)
	}
}
