package mover

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/fenilsonani/chronoban/internal/platform"
)

// Operations that can fail while moving
const (
	OpMkdir    = "create directory"
	OpRename   = "rename"
	OpSchedule = "schedule"
)

// ErrorReason categorizes why an operation on an entry failed
type ErrorReason int

const (
	ErrorPermissionDenied ErrorReason = iota
	ErrorNotFound
	ErrorCrossDevice
	ErrorAlreadyExists
	ErrorNotDirectory
	ErrorTimestampUnavailable
	ErrorUnknown
)

// String returns a human-readable error reason
func (e ErrorReason) String() string {
	switch e {
	case ErrorPermissionDenied:
		return "Permission denied"
	case ErrorNotFound:
		return "Not found"
	case ErrorCrossDevice:
		return "Different filesystem"
	case ErrorAlreadyExists:
		return "Already exists"
	case ErrorNotDirectory:
		return "Not a directory"
	case ErrorTimestampUnavailable:
		return "Timestamp unavailable"
	case ErrorUnknown:
		return "Unknown error"
	default:
		return "Unspecified error"
	}
}

// MoveError is a categorized per-entry failure. It is counted and reported,
// never fatal to the run.
type MoveError struct {
	Path     string
	Op       string
	Reason   ErrorReason
	Original error
}

// Error implements the error interface
func (e *MoveError) Error() string {
	return fmt.Sprintf("%s %s: %s (%v)", e.Op, e.Path, e.Reason, e.Original)
}

// Unwrap exposes the underlying error
func (e *MoveError) Unwrap() error {
	return e.Original
}

// UserMessage returns a user-friendly error message
func (e *MoveError) UserMessage() string {
	switch e.Reason {
	case ErrorPermissionDenied:
		return fmt.Sprintf("Permission denied (%s): %s", e.Op, e.Path)
	case ErrorNotFound:
		return fmt.Sprintf("Disappeared before %s: %s", e.Op, e.Path)
	case ErrorCrossDevice:
		return fmt.Sprintf("Cannot move across filesystems: %s", e.Path)
	case ErrorAlreadyExists:
		return fmt.Sprintf("Destination appeared during %s: %s", e.Op, e.Path)
	case ErrorNotDirectory:
		return fmt.Sprintf("A file is in the way (%s): %s", e.Op, e.Path)
	case ErrorTimestampUnavailable:
		return fmt.Sprintf("No usable timestamp: %s", e.Path)
	default:
		return fmt.Sprintf("Error during %s of %s: %v", e.Op, e.Path, e.Original)
	}
}

// CategorizeError analyzes an error and returns a categorized MoveError
func CategorizeError(op, path string, err error) *MoveError {
	if err == nil {
		return nil
	}

	moveErr := &MoveError{
		Path:     path,
		Op:       op,
		Original: err,
		Reason:   ErrorUnknown,
	}

	if errors.Is(err, platform.ErrAccessTimeUnavailable) {
		moveErr.Reason = ErrorTimestampUnavailable
		return moveErr
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		if reason, ok := errnoReason(errno); ok {
			moveErr.Reason = reason
			return moveErr
		}
	}

	switch {
	case os.IsNotExist(err):
		moveErr.Reason = ErrorNotFound
	case os.IsPermission(err):
		moveErr.Reason = ErrorPermissionDenied
	case os.IsExist(err):
		moveErr.Reason = ErrorAlreadyExists
	}

	return moveErr
}

func errnoReason(errno syscall.Errno) (ErrorReason, bool) {
	switch errno {
	case syscall.EACCES, syscall.EPERM:
		return ErrorPermissionDenied, true
	case syscall.ENOENT:
		return ErrorNotFound, true
	case syscall.EXDEV:
		return ErrorCrossDevice, true
	case syscall.EEXIST, syscall.ENOTEMPTY:
		return ErrorAlreadyExists, true
	case syscall.ENOTDIR:
		return ErrorNotDirectory, true
	default:
		return ErrorUnknown, false
	}
}

// GroupErrors groups move errors by reason
func GroupErrors(errs []*MoveError) map[ErrorReason][]*MoveError {
	grouped := make(map[ErrorReason][]*MoveError)
	for _, err := range errs {
		grouped[err.Reason] = append(grouped[err.Reason], err)
	}
	return grouped
}

// FormatErrorSummary creates a user-friendly summary of errors
func FormatErrorSummary(errs []*MoveError) string {
	if len(errs) == 0 {
		return ""
	}

	grouped := GroupErrors(errs)
	var b strings.Builder
	b.WriteString("\n⚠️  Issues encountered:\n")

	if perms, ok := grouped[ErrorPermissionDenied]; ok {
		fmt.Fprintf(&b, "   ├─ Permission denied: %d entries\n", len(perms))
		b.WriteString("   │  └─ Tip: check ownership of the directory being organized\n")
	}

	if gone, ok := grouped[ErrorNotFound]; ok {
		fmt.Fprintf(&b, "   ├─ Disappeared during the run: %d entries\n", len(gone))
	}

	if xdev, ok := grouped[ErrorCrossDevice]; ok {
		fmt.Fprintf(&b, "   ├─ Across filesystems: %d entries\n", len(xdev))
		b.WriteString("   │  └─ Tip: only same-filesystem moves are supported\n")
	}

	if exists, ok := grouped[ErrorAlreadyExists]; ok {
		fmt.Fprintf(&b, "   ├─ Destination appeared: %d entries\n", len(exists))
	}

	if notDir, ok := grouped[ErrorNotDirectory]; ok {
		fmt.Fprintf(&b, "   ├─ File in the way of a bucket: %d entries\n", len(notDir))
	}

	if ts, ok := grouped[ErrorTimestampUnavailable]; ok {
		fmt.Fprintf(&b, "   ├─ Timestamp unavailable: %d entries\n", len(ts))
		b.WriteString("   │  └─ Tip: retry without --use-atime\n")
	}

	if unknown, ok := grouped[ErrorUnknown]; ok {
		fmt.Fprintf(&b, "   └─ Other errors: %d entries\n", len(unknown))
	}

	return b.String()
}
