package scanner

import (
	"fmt"
	"path/filepath"
	"regexp"
	"time"
)

var bucketPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// IsBucketName reports whether name has the YYYY-MM shape
func IsBucketName(name string) bool {
	return bucketPattern.MatchString(name)
}

// IsBucketDir reports whether the directory at path is a bucket of base:
// its name is YYYY-MM and it sits directly under base. Bucket directories
// are never descended into or reorganized.
func IsBucketDir(base, path string) bool {
	return IsBucketName(filepath.Base(path)) &&
		filepath.Clean(filepath.Dir(path)) == filepath.Clean(base)
}

// BucketName renders the local-time year and month of t as YYYY-MM
func BucketName(t time.Time) string {
	local := t.Local()
	return fmt.Sprintf("%04d-%02d", local.Year(), int(local.Month()))
}
