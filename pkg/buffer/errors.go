package buffer

import (
	"errors"
	"fmt"
)

// Sentinel errors for error categorization via errors.Is.
var (
	// ErrFileNotFound indicates the ignore file does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates the ignore file could not be read.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrInvalidEncoding indicates the file is not valid UTF-8 text.
	ErrInvalidEncoding = errors.New("file contains invalid UTF-8")

	// ErrLineOutOfBounds is matched by every *LineOutOfBoundsError.
	ErrLineOutOfBounds = errors.New("line out of bounds")

	// ErrInvalidArguments indicates a malformed line specification or an inverted range.
	ErrInvalidArguments = errors.New("invalid arguments")

	// ErrConcurrentModification indicates the file changed on disk since it was loaded.
	ErrConcurrentModification = errors.New("file was modified by another process")

	// ErrWriteFailure indicates an atomic write could not be committed.
	// The original file is untouched when this is returned.
	ErrWriteFailure = errors.New("unable to save changes")
)

// LineOutOfBoundsError reports a line address outside [1, Total].
type LineOutOfBoundsError struct {
	// Requested is the line number that was asked for.
	Requested int

	// Total is the number of lines in the file.
	Total int
}

// Error implements the error interface.
func (e *LineOutOfBoundsError) Error() string {
	return fmt.Sprintf("line %d is out of bounds (file has %d lines)", e.Requested, e.Total)
}

// Is reports whether target is ErrLineOutOfBounds.
func (e *LineOutOfBoundsError) Is(target error) bool {
	return target == ErrLineOutOfBounds
}

func outOfBounds(requested, total int) error {
	return &LineOutOfBoundsError{Requested: requested, Total: total}
}
