package security

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// ResolveRoot turns a user supplied directory into the absolute, canonical
// base of a run and checks that it is an organizable directory. Symlinks are
// resolved only on the OS filesystem.
func ResolveRoot(fs afero.Fs, path string, pv *PathValidator) (string, error) {
	if path == "" {
		path = "."
	}

	root, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	if _, ok := fs.(*afero.OsFs); ok {
		root, err = filepath.EvalSymlinks(root)
		if err != nil {
			return "", fmt.Errorf("failed to resolve %s: %w", path, err)
		}
	}

	info, err := fs.Stat(root)
	if err != nil {
		return "", fmt.Errorf("cannot access %s: %w", root, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", root)
	}

	if pv != nil {
		if err := pv.ValidateRoot(root); err != nil {
			return "", err
		}
	}

	return root, nil
}
