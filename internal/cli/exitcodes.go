package cli

import (
	"errors"

	"github.com/yaklabco/gliedit/internal/configloader"
	"github.com/yaklabco/gliedit/internal/session"
	"github.com/yaklabco/gliedit/pkg/buffer"
)

// Exit codes for gliedit. Values above 63 follow sysexits.h.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitInvalidLines indicates check found lines that are not valid records.
	ExitInvalidLines = 1

	// ExitInvalidUsage indicates invalid command-line usage, including line
	// numbers outside the file.
	ExitInvalidUsage = 64

	// ExitDataError indicates the file is not valid UTF-8.
	ExitDataError = 65

	// ExitNoInput indicates the file does not exist.
	ExitNoInput = 66

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates the file could not be written.
	ExitIOError = 74

	// ExitConflict indicates a save was refused because the file changed on
	// disk.
	ExitConflict = 75

	// ExitNoPermission indicates the file is unreadable or open read-only.
	ExitNoPermission = 77

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 78
)

// ExitCodeFromError maps a command error onto an exit code.
func ExitCodeFromError(err error) int {
	var validation *configloader.ValidationError

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrInvalidLinesFound):
		return ExitInvalidLines
	case errors.Is(err, ErrConfigLoad), errors.As(err, &validation), errors.Is(err, configloader.ErrConfigExists):
		return ExitConfigError
	case errors.Is(err, buffer.ErrLineOutOfBounds), errors.Is(err, buffer.ErrInvalidArguments):
		return ExitInvalidUsage
	case errors.Is(err, buffer.ErrInvalidEncoding):
		return ExitDataError
	case errors.Is(err, buffer.ErrFileNotFound):
		return ExitNoInput
	case errors.Is(err, buffer.ErrPermissionDenied), errors.Is(err, session.ErrReadOnly):
		return ExitNoPermission
	case errors.Is(err, buffer.ErrConcurrentModification):
		return ExitConflict
	case errors.Is(err, buffer.ErrWriteFailure):
		return ExitIOError
	default:
		return ExitInternalError
	}
}
