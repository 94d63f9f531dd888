package cli

import (
	"errors"
	"io/fs"

	"github.com/yaklabco/admonish/internal/configloader"
	"github.com/yaklabco/admonish/pkg/convert"
	"github.com/yaklabco/admonish/pkg/fsutil"
	"github.com/yaklabco/admonish/pkg/runner"
)

// Exit codes for admonish.
const (
	// ExitSuccess indicates every file rendered.
	ExitSuccess = 0

	// ExitRenderErrors indicates the run finished but some files failed.
	ExitRenderErrors = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

var (
	// ErrRenderFailed is returned when at least one file failed to render.
	// The failures themselves have already been reported.
	ErrRenderFailed = errors.New("some files failed to render")

	// ErrConfig wraps configuration loading failures.
	ErrConfig = errors.New("failed to load configuration")

	// ErrUsage wraps invalid flag combinations.
	ErrUsage = errors.New("invalid usage")
)

// ExitCodeFromResult maps a finished run to an exit code.
func ExitCodeFromResult(result *runner.Result) int {
	if result.HasErrors() {
		return ExitRenderErrors
	}
	return ExitSuccess
}

// ExitCode maps an error returned by a command to an exit code.
func ExitCode(err error) int {
	var validation *configloader.ValidationError

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrRenderFailed):
		return ExitRenderErrors
	case errors.Is(err, ErrUsage), errors.Is(err, convert.ErrInvalidFlavor):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfig), errors.As(err, &validation):
		return ExitConfigError
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrPermission),
		errors.Is(err, fsutil.ErrNotFound), errors.Is(err, fsutil.ErrPermissionDenied):
		return ExitIOError
	default:
		return ExitInternalError
	}
}
