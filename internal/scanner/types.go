package scanner

import (
	"path/filepath"
	"time"
)

// Action is what the scheduler should do with a classified entry
type Action int

const (
	ActionMove Action = iota
	ActionSkip
	ActionError
)

// String returns a human-readable action name
func (a Action) String() string {
	switch a {
	case ActionMove:
		return "move"
	case ActionSkip:
		return "skip"
	case ActionError:
		return "error"
	default:
		return "unknown"
	}
}

// SkipReason explains why an entry stays where it is
type SkipReason int

const (
	SkipNone SkipReason = iota
	SkipBucketDir
	SkipTooYoung
	SkipDestinationExists
)

// String returns a human-readable skip reason
func (r SkipReason) String() string {
	switch r {
	case SkipNone:
		return "none"
	case SkipBucketDir:
		return "already organized"
	case SkipTooYoung:
		return "younger than minimum age"
	case SkipDestinationExists:
		return "destination already exists"
	default:
		return "unknown"
	}
}

// Operations that can fail while scanning
const (
	OpReadDir   = "read directory"
	OpTimestamp = "read timestamp"
	OpCheckDest = "check destination"
)

// Entry is a filesystem entry discovered during a scan
type Entry struct {
	Path  string
	Name  string
	IsDir bool
	Time  time.Time
}

// Plan is the classification of one entry. Move plans carry the source,
// the destination and its bucket; skip plans carry a Reason; error plans
// carry the failing operation and error.
type Plan struct {
	Action Action
	Source string
	Dest   string
	Bucket string
	Reason SkipReason
	Op     string
	Err    error
}

// BucketDir returns the directory a move plan lands in
func (p Plan) BucketDir() string {
	if p.Dest == "" {
		return ""
	}
	return filepath.Dir(p.Dest)
}
