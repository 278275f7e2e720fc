//go:build !linux && !darwin && !windows

package platform

import (
	"os"
	"time"
)

func accessTime(info os.FileInfo) (time.Time, bool) {
	return time.Time{}, false
}
