// Package testutil provides test helpers and fixtures for chronoban tests.
// Disk fixtures live under t.TempDir(); in-memory fixtures use afero.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/spf13/afero"
)

// TestFixture holds the root of an on-disk test tree
type TestFixture struct {
	T       *testing.T
	RootDir string // canonical temp directory (auto-cleaned)
}

// NewFixture creates a new test fixture rooted at a fresh temp directory.
// The root is resolved through symlinks so it matches canonicalized paths.
func NewFixture(t *testing.T) *TestFixture {
	t.Helper()

	root, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("failed to resolve temp dir: %v", err)
	}

	return &TestFixture{
		T:       t,
		RootDir: root,
	}
}

// =============================================================================
// File Creation Helpers
// =============================================================================

// CreateFile creates a file with specified content and returns its path
func (f *TestFixture) CreateFile(relPath string, content []byte) string {
	f.T.Helper()

	fullPath := filepath.Join(f.RootDir, relPath)
	dir := filepath.Dir(fullPath)

	if err := os.MkdirAll(dir, 0755); err != nil {
		f.T.Fatalf("failed to create directory %s: %v", dir, err)
	}

	if err := os.WriteFile(fullPath, content, 0644); err != nil {
		f.T.Fatalf("failed to create file %s: %v", fullPath, err)
	}

	return fullPath
}

// CreateFileWithTime creates a file whose access and modification times are ts
func (f *TestFixture) CreateFileWithTime(relPath string, ts time.Time) string {
	f.T.Helper()

	fullPath := f.CreateFile(relPath, []byte(relPath))
	if err := os.Chtimes(fullPath, ts, ts); err != nil {
		f.T.Fatalf("failed to set file time for %s: %v", fullPath, err)
	}

	return fullPath
}

// CreateFileWithAge creates a file and sets its modification time to the past
func (f *TestFixture) CreateFileWithAge(relPath string, age time.Duration) string {
	f.T.Helper()
	return f.CreateFileWithTime(relPath, time.Now().Add(-age))
}

// =============================================================================
// Directory Helpers
// =============================================================================

// CreateDir creates a directory and returns its path
func (f *TestFixture) CreateDir(relPath string) string {
	f.T.Helper()

	fullPath := filepath.Join(f.RootDir, relPath)
	if err := os.MkdirAll(fullPath, 0755); err != nil {
		f.T.Fatalf("failed to create directory %s: %v", fullPath, err)
	}

	return fullPath
}

// CreateUnreadableDir creates a directory that cannot be listed
func (f *TestFixture) CreateUnreadableDir(relPath string) string {
	f.T.Helper()

	dirPath := f.CreateDir(relPath)
	f.CreateFile(filepath.Join(relPath, "hidden.txt"), []byte("hidden"))
	if err := os.Chmod(dirPath, 0000); err != nil {
		f.T.Fatalf("failed to chmod directory %s: %v", dirPath, err)
	}

	// Restore permissions so TempDir cleanup works
	f.T.Cleanup(func() {
		os.Chmod(dirPath, 0755)
	})

	return dirPath
}

// CreateReadOnlyDir makes an existing directory read-only (no entries can be
// added or removed)
func (f *TestFixture) CreateReadOnlyDir(relPath string) string {
	f.T.Helper()

	dirPath := f.CreateDir(relPath)
	if err := os.Chmod(dirPath, 0555); err != nil {
		f.T.Fatalf("failed to chmod directory %s: %v", dirPath, err)
	}

	f.T.Cleanup(func() {
		os.Chmod(dirPath, 0755)
	})

	return dirPath
}

// CreateSymlink creates a symbolic link
func (f *TestFixture) CreateSymlink(target, linkPath string) string {
	f.T.Helper()

	fullLinkPath := filepath.Join(f.RootDir, linkPath)
	if err := os.MkdirAll(filepath.Dir(fullLinkPath), 0755); err != nil {
		f.T.Fatalf("failed to create directory for %s: %v", fullLinkPath, err)
	}

	if err := os.Symlink(target, fullLinkPath); err != nil {
		f.T.Fatalf("failed to create symlink %s -> %s: %v", fullLinkPath, target, err)
	}

	return fullLinkPath
}

// =============================================================================
// Path Helpers
// =============================================================================

// Path returns the full path for a relative path within the fixture
func (f *TestFixture) Path(relPath string) string {
	return filepath.Join(f.RootDir, relPath)
}

// =============================================================================
// Assertion Helpers
// =============================================================================

// FileExists checks if a path exists (symlinks are not followed)
func (f *TestFixture) FileExists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// AssertFileExists fails the test if the file doesn't exist
func (f *TestFixture) AssertFileExists(path string) {
	f.T.Helper()
	if !f.FileExists(path) {
		f.T.Errorf("expected file to exist: %s", path)
	}
}

// AssertFileNotExists fails the test if the file exists
func (f *TestFixture) AssertFileNotExists(path string) {
	f.T.Helper()
	if f.FileExists(path) {
		f.T.Errorf("expected file to not exist: %s", path)
	}
}

// Snapshot returns every path under the fixture root with its mod time, so
// tests can check that nothing changed.
func (f *TestFixture) Snapshot() map[string]time.Time {
	f.T.Helper()

	snap := make(map[string]time.Time)
	err := filepath.Walk(f.RootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		snap[path] = info.ModTime()
		return nil
	})
	if err != nil {
		f.T.Fatalf("failed to snapshot %s: %v", f.RootDir, err)
	}

	return snap
}

// CountFiles counts regular files under path
func CountFiles(path string) (int, error) {
	count := 0
	err := filepath.Walk(path, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			count++
		}
		return nil
	})
	return count, err
}

// =============================================================================
// In-memory Helpers
// =============================================================================

// MemFile creates a file in an afero filesystem with the given mod time
func MemFile(t *testing.T, fs afero.Fs, path string, ts time.Time) string {
	t.Helper()

	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", path, err)
	}
	if err := afero.WriteFile(fs, path, []byte(filepath.Base(path)), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	if err := fs.Chtimes(path, ts, ts); err != nil {
		t.Fatalf("failed to set time for %s: %v", path, err)
	}

	return path
}

// MemDir creates a directory in an afero filesystem
func MemDir(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()

	if err := fs.MkdirAll(path, 0755); err != nil {
		t.Fatalf("failed to create directory %s: %v", path, err)
	}

	return path
}

// MemExists reports whether path exists in an afero filesystem
func MemExists(fs afero.Fs, path string) bool {
	_, err := fs.Stat(path)
	return err == nil
}

// =============================================================================
// Environment Helpers
// =============================================================================

// IsRoot returns true when running as root (permission checks are bypassed)
func IsRoot() bool {
	return os.Geteuid() == 0
}

// SkipIfRoot skips tests that rely on permission errors
func SkipIfRoot(t *testing.T) {
	t.Helper()
	if IsRoot() {
		t.Skip("skipping test when running as root")
	}
}

// SkipOnWindows skips tests that rely on Unix permission bits or symlinks
func SkipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("skipping test on windows")
	}
}
