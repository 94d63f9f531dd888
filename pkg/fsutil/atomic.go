package fsutil

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// DefaultFileMode is the permission mode for rendered files.
const DefaultFileMode os.FileMode = 0o644

// DefaultDirMode is the permission mode for created output directories.
const DefaultDirMode os.FileMode = 0o755

// WriteAtomic writes content to path through a temp file in the same
// directory and a rename, so readers never observe a partial file.
// If mode is 0, DefaultFileMode is used. On error the temp file is
// removed and any existing file at path is left untouched.
func WriteAtomic(ctx context.Context, path string, content []byte, mode os.FileMode) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("write atomic: %w", ctx.Err())
	default:
	}

	if mode == 0 {
		mode = DefaultFileMode
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}

	success = true
	return nil
}

// WriteOutput creates the parent directories of path and writes content
// atomically unless the file already holds exactly content.
// It reports whether the file was written.
func WriteOutput(ctx context.Context, path string, content []byte) (bool, error) {
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("write output: %w", ctx.Err())
	default:
	}

	existing, err := os.ReadFile(path)
	switch {
	case err == nil && bytes.Equal(existing, content):
		return false, nil
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return false, fmt.Errorf("read existing: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), DefaultDirMode); err != nil {
		return false, fmt.Errorf("create output dir: %w", err)
	}

	if err := WriteAtomic(ctx, path, content, DefaultFileMode); err != nil {
		return false, err
	}
	return true, nil
}
