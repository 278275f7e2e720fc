package platform

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"
)

// Platform represents the operating system platform
type Platform string

const (
	MacOS   Platform = "darwin"
	Linux   Platform = "linux"
	Windows Platform = "windows"
	Unknown Platform = "unknown"
)

// Detect returns the current platform
func Detect() Platform {
	switch runtime.GOOS {
	case "darwin":
		return MacOS
	case "linux":
		return Linux
	case "windows":
		return Windows
	default:
		return Unknown
	}
}

// ErrAccessTimeUnavailable is returned when the file metadata carries no
// access time (unsupported OS or a filesystem without native stat data).
var ErrAccessTimeUnavailable = errors.New("access time unavailable")

// TimeSource selects which timestamp of an entry is used
type TimeSource int

const (
	ModTime TimeSource = iota
	AccessTime
)

// String returns the flag-style name of the source
func (s TimeSource) String() string {
	switch s {
	case ModTime:
		return "mtime"
	case AccessTime:
		return "atime"
	default:
		return "unknown"
	}
}

// Timestamp extracts the configured timestamp from file metadata
func (s TimeSource) Timestamp(info os.FileInfo) (time.Time, error) {
	switch s {
	case ModTime:
		return info.ModTime(), nil
	case AccessTime:
		atime, ok := accessTime(info)
		if !ok {
			return time.Time{}, fmt.Errorf("%s: %w", info.Name(), ErrAccessTimeUnavailable)
		}
		return atime, nil
	default:
		return time.Time{}, fmt.Errorf("unknown time source %d", int(s))
	}
}
