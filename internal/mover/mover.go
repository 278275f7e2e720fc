package mover

import (
	"os"
	"sync"

	"github.com/fenilsonani/chronoban/internal/scanner"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// BucketDirMode is the permission used for newly created bucket directories
const BucketDirMode os.FileMode = 0755

// Status is the final state of one Plan
type Status int

const (
	StatusMoved Status = iota
	StatusWouldMove
	StatusSkipped
	StatusFailed
)

// String returns a human-readable status
func (s Status) String() string {
	switch s {
	case StatusMoved:
		return "moved"
	case StatusWouldMove:
		return "would move"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is the result of settling one Plan
type Outcome struct {
	Plan   scanner.Plan
	Status Status
	Err    *MoveError
}

// Mover realizes planned moves, or simulates them in dry-run mode
type Mover struct {
	fs     afero.Fs
	dryRun bool
	log    zerolog.Logger

	mu       sync.Mutex
	reserved map[string]struct{} // destinations claimed during this run
}

// New creates a new Mover
func New(fs afero.Fs, dryRun bool, log zerolog.Logger) *Mover {
	return &Mover{
		fs:       fs,
		dryRun:   dryRun,
		log:      log.With().Str("component", "mover").Logger(),
		reserved: make(map[string]struct{}),
	}
}

// DryRun reports whether moves are only simulated
func (m *Mover) DryRun() bool {
	return m.dryRun
}

// Execute performs a move plan: ensure the bucket exists, check that the
// destination is still free, then rename the source into it. Each step is
// attempted exactly once and an existing destination is never replaced.
func (m *Mover) Execute(plan scanner.Plan) Outcome {
	if m.dryRun {
		return Outcome{Plan: plan, Status: StatusWouldMove}
	}

	bucketDir := plan.BucketDir()
	if err := m.fs.MkdirAll(bucketDir, BucketDirMode); err != nil {
		m.log.Debug().Err(err).Str("dir", bucketDir).Msg("mkdir failed")
		return Outcome{Plan: plan, Status: StatusFailed, Err: CategorizeError(OpMkdir, bucketDir, err)}
	}

	exists, err := scanner.PathExists(m.fs, plan.Dest)
	if err != nil {
		return Outcome{Plan: plan, Status: StatusFailed, Err: CategorizeError(scanner.OpCheckDest, plan.Dest, err)}
	}
	if exists {
		m.log.Debug().Str("dest", plan.Dest).Msg("destination appeared before rename")
		return collision(plan)
	}

	if err := m.fs.Rename(plan.Source, plan.Dest); err != nil {
		m.log.Debug().Err(err).Str("source", plan.Source).Msg("rename failed")
		return Outcome{Plan: plan, Status: StatusFailed, Err: CategorizeError(OpRename, plan.Source, err)}
	}

	return Outcome{Plan: plan, Status: StatusMoved}
}

// Settle turns any Plan into an Outcome: moves are reserved and executed,
// skips and scan errors pass through without touching the filesystem.
func (m *Mover) Settle(plan scanner.Plan) Outcome {
	switch plan.Action {
	case scanner.ActionMove:
		if o, taken := m.reserve(plan); taken {
			return o
		}
		return m.Execute(plan)
	case scanner.ActionSkip:
		return Outcome{Plan: plan, Status: StatusSkipped}
	default:
		return Outcome{Plan: plan, Status: StatusFailed, Err: CategorizeError(plan.Op, plan.Source, plan.Err)}
	}
}

// reserve claims the destination of a move plan for this run. When an
// earlier plan already claimed it, the collision outcome is returned and
// taken is true. Dry runs reserve too, so they count collisions between
// sources exactly like a real run.
func (m *Mover) reserve(plan scanner.Plan) (o Outcome, taken bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.reserved[plan.Dest]; ok {
		return collision(plan), true
	}
	m.reserved[plan.Dest] = struct{}{}
	return Outcome{}, false
}

func collision(plan scanner.Plan) Outcome {
	plan.Action = scanner.ActionSkip
	plan.Reason = scanner.SkipDestinationExists
	return Outcome{Plan: plan, Status: StatusSkipped}
}
