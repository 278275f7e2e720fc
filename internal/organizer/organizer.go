// Package organizer runs one pass over a directory: it validates the root,
// streams plans from the scanner into the move scheduler and returns the
// run summary.
package organizer

import (
	"context"
	"fmt"
	"time"

	"github.com/fenilsonani/chronoban/internal/config"
	"github.com/fenilsonani/chronoban/internal/mover"
	"github.com/fenilsonani/chronoban/internal/platform"
	"github.com/fenilsonani/chronoban/internal/progress"
	"github.com/fenilsonani/chronoban/internal/scanner"
	"github.com/fenilsonani/chronoban/internal/security"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Summary describes a finished run
type Summary struct {
	RunID       string        `json:"run_id" yaml:"run_id"`
	Root        string        `json:"root" yaml:"root"`
	DryRun      bool          `json:"dry_run" yaml:"dry_run"`
	Recursive   bool          `json:"recursive" yaml:"recursive"`
	TimeSource  string        `json:"time_source" yaml:"time_source"`
	MinAgeDays  int           `json:"min_age_days" yaml:"min_age_days"`
	Jobs        int           `json:"jobs" yaml:"jobs"`
	StartTime   time.Time     `json:"start_time" yaml:"start_time"`
	EndTime     time.Time     `json:"end_time" yaml:"end_time"`
	Duration    time.Duration `json:"duration_ns" yaml:"duration"`
	Stats       mover.Stats   `json:"stats" yaml:"stats"`
	Interrupted bool          `json:"interrupted" yaml:"interrupted"`

	Failures []*mover.MoveError `json:"-" yaml:"-"`
}

// Organizer runs a single organize pass
type Organizer struct {
	cfg       *config.Config
	fs        afero.Fs
	runID     string
	validator *security.PathValidator
	observer  mover.Observer
	progress  *progress.Reporter
	log       zerolog.Logger

	root string // resolved once, then reused
}

// New creates a new Organizer for cfg. Every run gets its own identifier,
// attached to all of its log lines.
func New(cfg *config.Config, fs afero.Fs, log zerolog.Logger) *Organizer {
	runID := uuid.NewString()
	return &Organizer{
		cfg:       cfg,
		fs:        fs,
		runID:     runID,
		validator: security.NewPathValidator(),
		log:       log.With().Str("run", runID).Logger(),
	}
}

// RunID returns the identifier of this run
func (o *Organizer) RunID() string {
	return o.runID
}

// SetObserver sets the observer that receives every outcome
func (o *Organizer) SetObserver(observer mover.Observer) {
	o.observer = observer
}

// SetProgressReporter sets the progress reporter
func (o *Organizer) SetProgressReporter(pr *progress.Reporter) {
	o.progress = pr
}

// SetPathValidator replaces the validator used on the root; nil disables it
func (o *Organizer) SetPathValidator(pv *security.PathValidator) {
	o.validator = pv
}

// ResolveRoot returns the canonical root this run will organize. The root
// is resolved on the first call; later calls and Run reuse that result.
func (o *Organizer) ResolveRoot() (string, error) {
	if o.root != "" {
		return o.root, nil
	}

	root, err := security.ResolveRoot(o.fs, o.cfg.Root, o.validator)
	if err != nil {
		return "", err
	}
	o.root = root
	return root, nil
}

// Run organizes the configured root. The returned error is fatal to the
// run; per-entry failures are only counted in the summary. Cancelling ctx
// stops the run early and still returns the partial summary.
func (o *Organizer) Run(ctx context.Context) (*Summary, error) {
	if err := o.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	root, err := o.ResolveRoot()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	o.log.Info().
		Str("root", root).
		Str("platform", string(platform.Detect())).
		Bool("dry_run", o.cfg.DryRun).
		Bool("recursive", o.cfg.Recursive).
		Str("time_source", o.cfg.TimeSource().String()).
		Int("min_age_days", o.cfg.MinAgeDays).
		Int("jobs", o.cfg.Jobs).
		Msg("run started")

	sc := scanner.New(o.fs, root, scanner.Options{
		MinAge:     o.cfg.MinAge(),
		TimeSource: o.cfg.TimeSource(),
		Recursive:  o.cfg.Recursive,
		Now:        start,
	}, o.log)

	var observer mover.Observer
	if o.progress != nil {
		observer = mover.Observers(o.observer, o.progress)
	} else if o.observer != nil {
		observer = o.observer
	}

	scheduler := mover.NewScheduler(mover.New(o.fs, o.cfg.DryRun, o.log), o.cfg.Jobs, observer, o.log)
	result, err := scheduler.Run(ctx, o.source(sc))

	if o.progress != nil {
		o.progress.Finish(result.Interrupted)
	}

	if err != nil {
		return nil, err
	}

	end := time.Now()
	summary := &Summary{
		RunID:       o.runID,
		Root:        root,
		DryRun:      o.cfg.DryRun,
		Recursive:   o.cfg.Recursive,
		TimeSource:  o.cfg.TimeSource().String(),
		MinAgeDays:  o.cfg.MinAgeDays,
		Jobs:        o.cfg.Jobs,
		StartTime:   start,
		EndTime:     end,
		Duration:    end.Sub(start),
		Stats:       result.Stats,
		Interrupted: result.Interrupted,
		Failures:    result.Failures,
	}

	event := o.log.Info()
	if summary.Interrupted {
		event = o.log.Warn()
	}
	event.
		Int("moved", summary.Stats.Moved).
		Int("skipped", summary.Stats.Skipped).
		Int("errors", summary.Stats.Errors).
		Bool("interrupted", summary.Interrupted).
		Dur("duration", summary.Duration).
		Msg("run finished")

	return summary, nil
}

// source walks sc, counting each plan as discovered when progress is set
func (o *Organizer) source(sc *scanner.Scanner) mover.Source {
	return func(ctx context.Context, emit func(scanner.Plan) error) error {
		if o.progress == nil {
			return sc.Walk(ctx, emit)
		}

		err := sc.Walk(ctx, func(plan scanner.Plan) error {
			o.progress.Discovered()
			return emit(plan)
		})
		o.progress.ScanFinished()
		return err
	}
}
