package security

import (
	"fmt"
	"path/filepath"
	"strings"
)

// PathValidator refuses roots that must never be reorganized
type PathValidator struct {
	protectedPaths []string
}

// NewPathValidator creates a new PathValidator with default protected paths
func NewPathValidator() *PathValidator {
	return &PathValidator{
		protectedPaths: []string{
			// Unix system directories
			"/",
			"/bin",
			"/boot",
			"/dev",
			"/etc",
			"/lib",
			"/lib64",
			"/proc",
			"/root",
			"/sbin",
			"/sys",
			"/usr",
			"/var",
			// macOS system directories
			"/System",
			"/Applications",
			"/Library",
		},
	}
}

// ValidateRoot checks a canonical root before anything under it is moved.
// Only the protected directories themselves are refused; their descendants
// are ordinary roots.
func (pv *PathValidator) ValidateRoot(root string) error {
	if !filepath.IsAbs(root) {
		return fmt.Errorf("root must be absolute: %s", root)
	}

	cleanRoot := filepath.Clean(root)
	if cleanRoot != root {
		return fmt.Errorf("root is not canonical: %s", root)
	}

	if strings.ContainsRune(cleanRoot, 0) {
		return fmt.Errorf("root contains a null byte: %q", root)
	}

	if pv.IsProtectedPath(cleanRoot) {
		return fmt.Errorf("refusing to organize protected path: %s", cleanRoot)
	}

	return nil
}

// IsProtectedPath reports whether path is exactly one of the protected paths
func (pv *PathValidator) IsProtectedPath(path string) bool {
	cleanPath := filepath.Clean(path)
	for _, protected := range pv.protectedPaths {
		if cleanPath == protected {
			return true
		}
	}
	return false
}

// AddProtectedPath adds a custom protected path
func (pv *PathValidator) AddProtectedPath(path string) {
	pv.protectedPaths = append(pv.protectedPaths, filepath.Clean(path))
}
