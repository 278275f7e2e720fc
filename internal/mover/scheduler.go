package mover

import (
	"context"
	"fmt"
	"sync"

	"github.com/fenilsonani/chronoban/internal/scanner"
	"github.com/panjf2000/ants/v2"
	"github.com/rs/zerolog"
)

// Scheduler consumes Plans and settles each exactly once, running at most
// jobs moves at the same time
type Scheduler struct {
	mover    *Mover
	jobs     int
	observer Observer
	log      zerolog.Logger
}

// NewScheduler creates a new Scheduler. jobs <= 1 settles plans sequentially.
func NewScheduler(m *Mover, jobs int, observer Observer, log zerolog.Logger) *Scheduler {
	if jobs < 1 {
		jobs = 1
	}
	return &Scheduler{
		mover:    m,
		jobs:     jobs,
		observer: observer,
		log:      log.With().Str("component", "scheduler").Logger(),
	}
}

// Source produces plans by handing each one to emit. An error from emit
// must stop the source and be returned.
type Source func(ctx context.Context, emit func(scanner.Plan) error) error

// Run settles every Plan produced by source. Outcomes are counted by a
// single aggregator goroutine; workers only hand outcomes over. With one
// job each plan is settled inside emit, so source does not classify the
// next entry until the previous move is done. Once ctx is done no further
// moves are started, in-flight moves finish and the run is marked
// interrupted. Source errors caused by cancellation are not returned.
func (s *Scheduler) Run(ctx context.Context, source Source) (*Result, error) {
	outcomes := make(chan Outcome, s.jobs)
	aggregated := make(chan *Result, 1)

	go func() {
		result := &Result{DryRun: s.mover.DryRun()}
		for o := range outcomes {
			result.record(o)
			if s.observer != nil {
				s.observer.Observe(o)
			}
		}
		aggregated <- result
	}()

	var err error
	if s.jobs == 1 {
		err = s.runSequential(ctx, source, outcomes)
	} else {
		err = s.runPool(ctx, source, outcomes)
	}

	close(outcomes)
	result := <-aggregated
	result.Interrupted = ctx.Err() != nil

	if err != nil && ctx.Err() != nil {
		err = nil
	}
	return result, err
}

func (s *Scheduler) runSequential(ctx context.Context, source Source, outcomes chan<- Outcome) error {
	s.log.Debug().Msg("settling plans sequentially")

	return source(ctx, func(plan scanner.Plan) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		outcomes <- s.mover.Settle(plan)
		return nil
	})
}

func (s *Scheduler) runPool(ctx context.Context, source Source, outcomes chan<- Outcome) error {
	plans := make(chan scanner.Plan, s.jobs)
	sourceDone := make(chan error, 1)
	go func() {
		defer close(plans)
		sourceDone <- source(ctx, func(plan scanner.Plan) error {
			select {
			case plans <- plan:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}()

	// Submit blocks while every worker is busy, which bounds in-flight moves.
	pool, err := ants.NewPool(s.jobs)
	if err != nil {
		// Drain so the producer is not left blocked.
		for range plans {
		}
		<-sourceDone
		return fmt.Errorf("failed to create worker pool: %w", err)
	}
	defer pool.Release()

	s.log.Debug().Int("jobs", s.jobs).Msg("settling plans on worker pool")

	var wg sync.WaitGroup
	for plan := range plans {
		plan := plan // per-iteration copy for the pool closure (go < 1.22 loop semantics)
		if ctx.Err() != nil {
			continue
		}

		if plan.Action != scanner.ActionMove {
			outcomes <- s.mover.Settle(plan)
			continue
		}

		// Reserve in scan order; the first source to claim a destination wins.
		if o, taken := s.mover.reserve(plan); taken {
			outcomes <- o
			continue
		}

		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			outcomes <- s.mover.Execute(plan)
		})
		if submitErr != nil {
			wg.Done()
			outcomes <- Outcome{Plan: plan, Status: StatusFailed, Err: CategorizeError(OpSchedule, plan.Source, submitErr)}
		}
	}

	wg.Wait()
	return <-sourceDone
}
