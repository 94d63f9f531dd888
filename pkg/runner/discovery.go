package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
)

// Discover lists the Markdown files selected by opts as sorted absolute
// paths. Hidden files and directories are skipped during walks; a hidden
// file named explicitly in Paths is still rendered.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, err
	}

	sel := newSelector(workDir, opts)
	found := make(map[string]struct{})

	for _, input := range opts.paths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		abs := input
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(workDir, abs)
		}
		abs = filepath.Clean(abs)

		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", input, err)
		}

		if !info.IsDir() {
			if sel.wantFile(abs) {
				found[abs] = struct{}{}
			}
			continue
		}

		if err := sel.walk(ctx, abs, found); err != nil {
			return nil, err
		}
	}

	files := make([]string, 0, len(found))
	for file := range found {
		files = append(files, file)
	}
	slices.Sort(files)

	return files, nil
}

func resolveWorkDir(dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve working directory: %w", err)
	}
	return abs, nil
}

// selector applies the extension and glob filters relative to workDir.
type selector struct {
	workDir        string
	extensions     []string
	include        []string
	exclude        []string
	followSymlinks bool
}

func newSelector(workDir string, opts Options) *selector {
	exts := make([]string, 0, len(opts.extensions()))
	for _, ext := range opts.extensions() {
		exts = append(exts, strings.ToLower(ext))
	}
	return &selector{
		workDir:        workDir,
		extensions:     exts,
		include:        opts.IncludeGlobs,
		exclude:        opts.ExcludeGlobs,
		followSymlinks: opts.FollowSymlinks,
	}
}

func (s *selector) rel(p string) string {
	rel, err := filepath.Rel(s.workDir, p)
	if err != nil {
		return filepath.ToSlash(p)
	}
	return filepath.ToSlash(rel)
}

func (s *selector) wantFile(p string) bool {
	if !slices.Contains(s.extensions, strings.ToLower(filepath.Ext(p))) {
		return false
	}
	rel := s.rel(p)
	if matchAny(rel, s.exclude) {
		return false
	}
	return len(s.include) == 0 || matchAny(rel, s.include)
}

func (s *selector) skipDir(p string) bool {
	return matchAny(s.rel(p), s.exclude)
}

func (s *selector) walk(ctx context.Context, root string, found map[string]struct{}) error {
	err := filepath.WalkDir(root, func(p string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrPermission) {
				return nil
			}
			return walkErr
		}

		hidden := p != root && strings.HasPrefix(entry.Name(), ".")

		if entry.IsDir() {
			if hidden || (p != root && s.skipDir(p)) {
				return filepath.SkipDir
			}
			return nil
		}
		if hidden {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			target, err := filepath.EvalSymlinks(p)
			if err != nil {
				return nil //nolint:nilerr // dangling links are ignored
			}
			info, err := os.Stat(target)
			if err != nil {
				return nil //nolint:nilerr // unreadable targets are ignored
			}
			if info.IsDir() {
				if !s.followSymlinks || s.skipDir(p) {
					return nil
				}
				return s.walk(ctx, target, found)
			}
		}

		if s.wantFile(p) {
			found[p] = struct{}{}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk %s: %w", root, err)
	}
	return nil
}

func matchAny(rel string, patterns []string) bool {
	for _, pattern := range patterns {
		if MatchGlob(pattern, rel) {
			return true
		}
	}
	return false
}

// MatchGlob reports whether the slash-separated rel path matches pattern.
// A "**" segment matches any number of path segments. A pattern without
// a slash is also tried against the last path segment, so "*.md" and
// "drafts" behave the way .gitignore entries do.
func MatchGlob(pattern, rel string) bool {
	pattern = strings.TrimSuffix(filepath.ToSlash(pattern), "/")
	rel = strings.TrimPrefix(filepath.ToSlash(rel), "./")

	if pattern == "" {
		return false
	}

	if !strings.Contains(pattern, "/") {
		if ok, _ := path.Match(pattern, path.Base(rel)); ok {
			return true
		}
	}

	return matchSegments(strings.Split(pattern, "/"), strings.Split(rel, "/"))
}

func matchSegments(pattern, segments []string) bool {
	for len(pattern) > 0 {
		if pattern[0] == "**" {
			rest := pattern[1:]
			for skip := 0; skip <= len(segments); skip++ {
				if matchSegments(rest, segments[skip:]) {
					return true
				}
			}
			return false
		}
		if len(segments) == 0 {
			return false
		}
		if ok, err := path.Match(pattern[0], segments[0]); err != nil || !ok {
			return false
		}
		pattern, segments = pattern[1:], segments[1:]
	}
	return len(segments) == 0
}
