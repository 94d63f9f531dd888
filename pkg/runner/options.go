// Package runner renders trees of Markdown files to HTML.
package runner

import (
	"path/filepath"
	"strings"

	"github.com/yaklabco/admonish/pkg/config"
)

// OutputExt is the extension given to rendered files.
const OutputExt = ".html"

// Options controls which files are rendered and where the output goes.
type Options struct {
	// Paths are files or directories to render. Empty means WorkingDir.
	Paths []string

	// WorkingDir resolves relative Paths and anchors output paths.
	// Empty means the process working directory.
	WorkingDir string

	// Extensions are the Markdown file extensions, with leading dot.
	// Empty means config.DefaultExtensions.
	Extensions []string

	// IncludeGlobs, when set, restrict discovery to matching files.
	IncludeGlobs []string

	// ExcludeGlobs skip matching files and directories.
	ExcludeGlobs []string

	// FollowSymlinks walks into symlinked directories.
	FollowSymlinks bool

	// Jobs caps the number of concurrent conversions. 0 means runtime.NumCPU.
	Jobs int

	// OutDir receives <rel>.html for every input. Empty keeps the HTML
	// in the outcome instead of writing it.
	OutDir string
}

func (o Options) extensions() []string {
	if len(o.Extensions) == 0 {
		return config.DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) paths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

// OutputPath maps a source file to its location under OutDir. The
// relative path is taken from workDir, or else from the input directory
// that holds the file; anything else keeps only its base name. It returns
// "" when OutDir is unset.
func (o Options) OutputPath(workDir, source string) string {
	if o.OutDir == "" {
		return ""
	}

	rel, ok := relWithin(workDir, source)
	for _, input := range o.paths() {
		if ok {
			break
		}
		if !filepath.IsAbs(input) {
			input = filepath.Join(workDir, input)
		}
		rel, ok = relWithin(filepath.Clean(input), source)
	}
	if !ok {
		rel = filepath.Base(source)
	}
	rel = strings.TrimSuffix(rel, filepath.Ext(rel)) + OutputExt

	outDir := o.OutDir
	if !filepath.IsAbs(outDir) {
		outDir = filepath.Join(workDir, outDir)
	}
	return filepath.Join(outDir, rel)
}

// relWithin returns path relative to dir when path lies strictly below it.
func relWithin(dir, path string) (string, bool) {
	rel, err := filepath.Rel(dir, path)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return rel, true
}
