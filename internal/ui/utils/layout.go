package utils

import (
	"path/filepath"
	"strings"
)

// TruncatePath shortens a path to fit within maxWidth, keeping the file name
// and as much of the start and end of the directory as fits
func TruncatePath(path string, maxWidth int) string {
	if len(path) <= maxWidth {
		return path
	}

	if maxWidth < 10 {
		// Too small to show anything meaningful
		return "..."
	}

	dir, file := filepath.Split(path)

	// If filename alone is too long, truncate it
	if len(file) > maxWidth-4 {
		return "..." + file[len(file)-(maxWidth-4):]
	}

	availableForDir := maxWidth - len(file) - 3 // 3 for "..."
	if availableForDir < 10 {
		return "..." + string(filepath.Separator) + file
	}

	dir = filepath.Clean(dir)
	parts := strings.Split(dir, string(filepath.Separator))
	if len(parts) <= 2 {
		return "..." + dir[len(dir)-availableForDir:] + string(filepath.Separator) + file
	}

	firstPart := parts[0]
	if firstPart == "" {
		firstPart = string(filepath.Separator) + parts[1]
	}
	lastPart := parts[len(parts)-1]

	// firstPart/.../lastPart/file
	if len(firstPart)+len(lastPart)+5 <= availableForDir {
		return filepath.Join(firstPart, "...", lastPart, file)
	}

	return "..." + string(filepath.Separator) + filepath.Join(lastPart, file)
}
