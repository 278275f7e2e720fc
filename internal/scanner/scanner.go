package scanner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fenilsonani/chronoban/internal/platform"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Options controls how entries are classified
type Options struct {
	MinAge     time.Duration
	TimeSource platform.TimeSource
	Recursive  bool
	Now        time.Time // reference time for age checks; zero means time.Now()
}

// Scanner walks a base directory and classifies its entries into Plans
type Scanner struct {
	fs   afero.Fs
	base string
	opts Options
	log  zerolog.Logger
}

// New creates a new Scanner. base must already be absolute and canonical.
func New(fs afero.Fs, base string, opts Options, log zerolog.Logger) *Scanner {
	return &Scanner{
		fs:   fs,
		base: filepath.Clean(base),
		opts: opts,
		log:  log.With().Str("component", "scanner").Logger(),
	}
}

// Base returns the directory being organized
func (s *Scanner) Base() string {
	return s.base
}

// Walk classifies entries one at a time and hands each Plan to emit before
// looking at the next entry. An error from emit stops the walk and is
// returned.
func (s *Scanner) Walk(ctx context.Context, emit func(Plan) error) error {
	now := s.opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	infos, err := afero.ReadDir(s.fs, s.base)
	if err != nil {
		return fmt.Errorf("failed to read directory %s: %w", s.base, err)
	}

	return s.walk(ctx, s.base, infos, now, emit)
}

// Collect walks the base and gathers every Plan in discovery order
func (s *Scanner) Collect(ctx context.Context) ([]Plan, error) {
	var plans []Plan
	err := s.Walk(ctx, func(plan Plan) error {
		plans = append(plans, plan)
		return nil
	})
	return plans, err
}

func (s *Scanner) walk(ctx context.Context, dir string, infos []os.FileInfo, now time.Time, emit func(Plan) error) error {
	for _, info := range infos {
		if err := ctx.Err(); err != nil {
			return err
		}

		path := filepath.Join(dir, info.Name())

		if info.IsDir() {
			if err := s.visitDir(ctx, path, now, emit); err != nil {
				return err
			}
			continue
		}

		var plan Plan
		entry, err := s.entry(path, info)
		if err != nil {
			plan = s.errorPlan(path, OpTimestamp, err)
		} else {
			plan = s.Classify(entry, now)
		}

		if err := emit(plan); err != nil {
			return err
		}
	}

	return nil
}

func (s *Scanner) visitDir(ctx context.Context, path string, now time.Time, emit func(Plan) error) error {
	if IsBucketDir(s.base, path) {
		s.log.Debug().Str("path", path).Msg("skipping bucket directory")
		return emit(Plan{
			Action: ActionSkip,
			Source: path,
			Reason: SkipBucketDir,
		})
	}

	if !s.opts.Recursive {
		s.log.Debug().Str("path", path).Msg("ignoring directory (not recursive)")
		return nil
	}

	infos, err := afero.ReadDir(s.fs, path)
	if err != nil {
		return emit(s.errorPlan(path, OpReadDir, err))
	}

	s.log.Debug().Str("path", path).Int("entries", len(infos)).Msg("descending")
	return s.walk(ctx, path, infos, now, emit)
}

// entry reads the configured timestamp of a non-directory entry
func (s *Scanner) entry(path string, info os.FileInfo) (Entry, error) {
	ts, err := s.opts.TimeSource.Timestamp(info)
	if err != nil {
		return Entry{}, err
	}
	return Entry{Path: path, Name: info.Name(), IsDir: info.IsDir(), Time: ts}, nil
}

// Classify decides what happens to a file entry: skipped as too young,
// skipped because its destination exists, or planned for a move into the
// bucket of its timestamp.
func (s *Scanner) Classify(e Entry, now time.Time) Plan {
	if s.tooYoung(e.Time, now) {
		return Plan{Action: ActionSkip, Source: e.Path, Reason: SkipTooYoung}
	}

	bucket := BucketName(e.Time)
	dest := filepath.Join(s.base, bucket, e.Name)

	exists, err := s.exists(dest)
	if err != nil {
		plan := s.errorPlan(e.Path, OpCheckDest, err)
		plan.Dest, plan.Bucket = dest, bucket
		return plan
	}
	if exists {
		return Plan{Action: ActionSkip, Source: e.Path, Dest: dest, Bucket: bucket, Reason: SkipDestinationExists}
	}

	return Plan{Action: ActionMove, Source: e.Path, Dest: dest, Bucket: bucket}
}

func (s *Scanner) errorPlan(path, op string, err error) Plan {
	return Plan{Action: ActionError, Source: path, Op: op, Err: err}
}

// tooYoung applies the minimum age filter. Future timestamps count as too
// young whenever a minimum age is configured.
func (s *Scanner) tooYoung(ts, now time.Time) bool {
	if s.opts.MinAge <= 0 {
		return false
	}
	return now.Sub(ts) < s.opts.MinAge
}

func (s *Scanner) exists(path string) (bool, error) {
	return PathExists(s.fs, path)
}

// PathExists checks path without following a trailing symlink, so a
// dangling link counts as existing
func PathExists(fs afero.Fs, path string) (bool, error) {
	var err error
	if lstater, ok := fs.(afero.Lstater); ok {
		_, _, err = lstater.LstatIfPossible(path)
	} else {
		_, err = fs.Stat(path)
	}

	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}
