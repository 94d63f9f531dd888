package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/yaklabco/admonish/pkg/fsutil"
)

// WatchFunc receives the outcome of every re-render. Watcher failures are
// delivered as an outcome with an empty Path.
type WatchFunc func(FileOutcome)

// Watcher re-renders sources as they change on disk.
type Watcher struct {
	runner  *Runner
	opts    Options
	sel     *selector
	fsw     *fsnotify.Watcher
	named   map[string]struct{}
	roots   []string
	sources map[string]*fsutil.Source
}

// NewWatcher registers watches for every directory opts selects. The
// watches are active when it returns, so changes made afterwards are seen
// by Run.
func (r *Runner) NewWatcher(ctx context.Context, opts Options) (*Watcher, error) {
	if r.Converter == nil {
		return nil, ErrNoConverter
	}

	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, err
	}
	opts.WorkingDir = workDir

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fsnotify: %w", err)
	}

	w := &Watcher{
		runner:  r,
		opts:    opts,
		sel:     newSelector(workDir, opts),
		fsw:     fsw,
		named:   make(map[string]struct{}),
		sources: make(map[string]*fsutil.Source),
	}

	for _, input := range opts.paths() {
		abs := input
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(workDir, abs)
		}
		abs = filepath.Clean(abs)

		info, err := os.Stat(abs)
		if err != nil {
			_ = fsw.Close()
			return nil, fmt.Errorf("stat %s: %w", input, err)
		}

		if info.IsDir() {
			w.roots = append(w.roots, abs)
			err = w.addDirs(abs)
		} else {
			w.named[abs] = struct{}{}
			err = fsw.Add(filepath.Dir(abs))
		}
		if err != nil {
			_ = fsw.Close()
			return nil, fmt.Errorf("watch %s: %w", input, err)
		}
	}

	files, err := Discover(ctx, opts)
	if err != nil {
		_ = fsw.Close()
		return nil, err
	}
	for _, file := range files {
		if _, source, err := fsutil.ReadSource(ctx, file); err == nil {
			w.sources[file] = source
		}
	}

	return w, nil
}

// Close stops all watches.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// Run delivers re-render outcomes to fn until ctx is done or the watcher
// is closed. Events that leave a file's content unchanged are dropped.
func (w *Watcher) Run(ctx context.Context, fn WatchFunc) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handle(ctx, event, fn)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			fn(FileOutcome{Error: fmt.Errorf("watch: %w", err)})
		}
	}
}

// Watch renders changed files until ctx is done.
func (r *Runner) Watch(ctx context.Context, opts Options, fn WatchFunc) error {
	w, err := r.NewWatcher(ctx, opts)
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()

	return w.Run(ctx, fn)
}

func (w *Watcher) handle(ctx context.Context, event fsnotify.Event, fn WatchFunc) {
	path := filepath.Clean(event.Name)

	if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		delete(w.sources, path)
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}

	info, err := os.Stat(path)
	if err != nil {
		return
	}
	if info.IsDir() {
		if event.Has(fsnotify.Create) && w.underRoot(path) && !w.sel.skipDir(path) &&
			!strings.HasPrefix(filepath.Base(path), ".") {
			if err := w.addDirs(path); err != nil {
				fn(FileOutcome{Error: fmt.Errorf("watch %s: %w", path, err)})
			}
		}
		return
	}

	if !w.selected(path) {
		return
	}

	if prev, ok := w.sources[path]; ok {
		changed, err := prev.Changed(ctx)
		if err == nil && !changed {
			return
		}
	}

	if err := w.conflict(path); err != nil {
		fn(FileOutcome{Path: path, Output: w.opts.OutputPath(w.opts.WorkingDir, path), Error: err})
		return
	}

	outcome := w.runner.RenderFile(ctx, w.opts, path)
	if outcome.Source != nil {
		w.sources[path] = outcome.Source
	}
	fn(outcome)
}

// conflict reports whether path shares its output file with another
// known source.
func (w *Watcher) conflict(path string) error {
	known := make([]string, 0, len(w.sources)+1)
	known = append(known, path)
	for source := range w.sources {
		if source != path {
			known = append(known, source)
		}
	}
	return outputConflicts(w.opts, known)[path]
}

func (w *Watcher) selected(path string) bool {
	if _, ok := w.named[path]; ok {
		return true
	}
	if strings.HasPrefix(filepath.Base(path), ".") || !w.underRoot(path) {
		return false
	}
	return w.sel.wantFile(path)
}

func (w *Watcher) underRoot(path string) bool {
	for _, root := range w.roots {
		if path == root || strings.HasPrefix(path, root+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func (w *Watcher) addDirs(root string) error {
	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrPermission) {
				return nil
			}
			return walkErr
		}
		if !entry.IsDir() {
			return nil
		}
		if path != root && (strings.HasPrefix(entry.Name(), ".") || w.sel.skipDir(path)) {
			return filepath.SkipDir
		}
		return w.fsw.Add(path)
	})
}
