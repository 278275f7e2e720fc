package mover

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"
	"testing"

	"github.com/fenilsonani/chronoban/internal/platform"
)

func TestCategorizeError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		reason ErrorReason
	}{
		{"EACCES", syscall.EACCES, ErrorPermissionDenied},
		{"EPERM", syscall.EPERM, ErrorPermissionDenied},
		{"ENOENT", syscall.ENOENT, ErrorNotFound},
		{"EXDEV", syscall.EXDEV, ErrorCrossDevice},
		{"EEXIST", syscall.EEXIST, ErrorAlreadyExists},
		{"ENOTEMPTY", syscall.ENOTEMPTY, ErrorAlreadyExists},
		{"ENOTDIR", syscall.ENOTDIR, ErrorNotDirectory},
		{"os.ErrNotExist", os.ErrNotExist, ErrorNotFound},
		{"os.ErrPermission", os.ErrPermission, ErrorPermissionDenied},
		{"os.ErrExist", os.ErrExist, ErrorAlreadyExists},
		{
			"link error with EXDEV",
			&os.LinkError{Op: "rename", Old: "/a/x", New: "/b/x", Err: syscall.EXDEV},
			ErrorCrossDevice,
		},
		{
			"path error with EACCES",
			&os.PathError{Op: "mkdir", Path: "/a/2023-03", Err: syscall.EACCES},
			ErrorPermissionDenied,
		},
		{
			"atime unavailable",
			fmt.Errorf("x.txt: %w", platform.ErrAccessTimeUnavailable),
			ErrorTimestampUnavailable,
		},
		{"generic error", errors.New("something went wrong"), ErrorUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CategorizeError(OpRename, "/data/x.txt", tt.err)
			if result == nil {
				t.Fatal("expected non-nil result")
			}
			if result.Reason != tt.reason {
				t.Errorf("Reason = %v, want %v", result.Reason, tt.reason)
			}
			if result.Path != "/data/x.txt" {
				t.Errorf("Path = %q, want /data/x.txt", result.Path)
			}
			if result.Op != OpRename {
				t.Errorf("Op = %q, want %q", result.Op, OpRename)
			}
			if !errors.Is(result, tt.err) {
				t.Errorf("expected result to unwrap to %v", tt.err)
			}
		})
	}
}

func TestCategorizeErrorNil(t *testing.T) {
	if result := CategorizeError(OpMkdir, "/data", nil); result != nil {
		t.Errorf("expected nil for nil error, got %v", result)
	}
}

func TestErrorReasonString(t *testing.T) {
	tests := []struct {
		reason ErrorReason
		want   string
	}{
		{ErrorPermissionDenied, "Permission denied"},
		{ErrorNotFound, "Not found"},
		{ErrorCrossDevice, "Different filesystem"},
		{ErrorAlreadyExists, "Already exists"},
		{ErrorNotDirectory, "Not a directory"},
		{ErrorTimestampUnavailable, "Timestamp unavailable"},
		{ErrorUnknown, "Unknown error"},
		{ErrorReason(99), "Unspecified error"},
	}

	for _, tt := range tests {
		if got := tt.reason.String(); got != tt.want {
			t.Errorf("ErrorReason(%d).String() = %q, want %q", tt.reason, got, tt.want)
		}
	}
}

func TestMoveErrorMessages(t *testing.T) {
	err := &MoveError{Path: "/data/a.txt", Op: OpRename, Reason: ErrorPermissionDenied, Original: syscall.EACCES}

	if !strings.Contains(err.Error(), "/data/a.txt") {
		t.Errorf("Error() should contain the path: %s", err.Error())
	}
	if !strings.Contains(err.Error(), OpRename) {
		t.Errorf("Error() should contain the operation: %s", err.Error())
	}

	msg := err.UserMessage()
	if !strings.Contains(msg, "Permission denied") || !strings.Contains(msg, "/data/a.txt") {
		t.Errorf("unexpected user message: %s", msg)
	}

	unknown := &MoveError{Path: "/data/b.txt", Op: OpMkdir, Reason: ErrorUnknown, Original: errors.New("boom")}
	if !strings.Contains(unknown.UserMessage(), "boom") {
		t.Errorf("unknown user message should include the original error: %s", unknown.UserMessage())
	}
}

func TestGroupErrors(t *testing.T) {
	errs := []*MoveError{
		{Path: "/a", Reason: ErrorPermissionDenied},
		{Path: "/b", Reason: ErrorPermissionDenied},
		{Path: "/c", Reason: ErrorCrossDevice},
		{Path: "/d", Reason: ErrorUnknown},
	}

	grouped := GroupErrors(errs)

	if len(grouped[ErrorPermissionDenied]) != 2 {
		t.Errorf("expected 2 permission errors, got %d", len(grouped[ErrorPermissionDenied]))
	}
	if len(grouped[ErrorCrossDevice]) != 1 {
		t.Errorf("expected 1 cross-device error, got %d", len(grouped[ErrorCrossDevice]))
	}
	if len(grouped[ErrorUnknown]) != 1 {
		t.Errorf("expected 1 unknown error, got %d", len(grouped[ErrorUnknown]))
	}
}

func TestFormatErrorSummary(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		if got := FormatErrorSummary(nil); got != "" {
			t.Errorf("expected empty summary, got %q", got)
		}
	})

	t.Run("mixed", func(t *testing.T) {
		errs := []*MoveError{
			{Path: "/a", Reason: ErrorPermissionDenied},
			{Path: "/b", Reason: ErrorTimestampUnavailable},
			{Path: "/c", Reason: ErrorTimestampUnavailable},
			{Path: "/d", Reason: ErrorUnknown},
		}

		summary := FormatErrorSummary(errs)
		for _, want := range []string{
			"Permission denied: 1 entries",
			"Timestamp unavailable: 2 entries",
			"--use-atime",
			"Other errors: 1 entries",
		} {
			if !strings.Contains(summary, want) {
				t.Errorf("summary missing %q:\n%s", want, summary)
			}
		}
		if strings.Contains(summary, "Across filesystems") {
			t.Errorf("summary should not mention absent reasons:\n%s", summary)
		}
	})
}
