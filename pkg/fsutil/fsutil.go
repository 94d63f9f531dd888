// Package fsutil reads Markdown sources and writes rendered output safely.
// Sources carry a content hash so watchers can ignore events that leave a
// file unchanged; outputs are written atomically and only when they differ.
package fsutil

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"
)

// Sentinel errors for error categorization via errors.Is.
var (
	ErrNotFound         = errors.New("file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrIsDirectory      = errors.New("path is a directory")
)

// Source is the state of an input file when it was read.
type Source struct {
	Path    string
	ModTime time.Time
	Size    int64
	Hash    [sha256.Size]byte
}

// ReadSource reads path and records its state.
func ReadSource(ctx context.Context, path string) ([]byte, *Source, error) {
	select {
	case <-ctx.Done():
		return nil, nil, fmt.Errorf("read source: %w", ctx.Err())
	default:
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, nil, classify(path, err)
	}
	if stat.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, classify(path, err)
	}

	return content, &Source{
		Path:    path,
		ModTime: stat.ModTime(),
		Size:    int64(len(content)),
		Hash:    sha256.Sum256(content),
	}, nil
}

// Changed reports whether the file differs from when s was read.
// A size difference is decisive; otherwise the content hash decides, since
// a same-size edit can keep the modification time on coarse clocks.
// A deleted file counts as changed.
func (s *Source) Changed(ctx context.Context) (bool, error) {
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("check source: %w", ctx.Err())
	default:
	}

	stat, err := os.Stat(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", s.Path, err)
	}

	if stat.Size() != s.Size {
		return true, nil
	}

	content, err := os.ReadFile(s.Path)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", s.Path, err)
	}
	return sha256.Sum256(content) != s.Hash, nil
}

func classify(path string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
	default:
		return fmt.Errorf("read %s: %w", path, err)
	}
}
