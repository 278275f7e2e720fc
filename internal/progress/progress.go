package progress

import (
	"fmt"
	"sync"
	"time"

	"github.com/fenilsonani/chronoban/internal/mover"
)

// Phase represents the current phase of a run
type Phase string

const (
	PhaseScanning    Phase = "scanning"
	PhaseMoving      Phase = "moving"
	PhaseComplete    Phase = "complete"
	PhaseInterrupted Phase = "interrupted"
)

// RunProgress is a point-in-time view of a run
type RunProgress struct {
	Phase      Phase
	Root       string
	DryRun     bool
	Discovered int // plans emitted by the scanner so far
	Processed  int // plans settled by the scheduler so far
	Moved      int
	Skipped    int
	Errors     int
	Current    string // source of the last settled plan
	StartTime  time.Time
}

// Fraction returns the settled share of discovered plans, between 0 and 1.
// It only reaches 1 once scanning has finished.
func (p RunProgress) Fraction() float64 {
	if p.Discovered == 0 {
		if p.Phase == PhaseComplete {
			return 1
		}
		return 0
	}
	f := float64(p.Processed) / float64(p.Discovered)
	if p.Phase == PhaseScanning && f >= 1 {
		f = 0.99
	}
	return f
}

// Reporter provides thread-safe progress reporting. It implements
// mover.Observer so it can be attached to the scheduler's aggregator.
type Reporter struct {
	mu        sync.RWMutex
	progress  RunProgress
	listeners []chan RunProgress
}

// NewReporter creates a new progress reporter for a run over root
func NewReporter(root string, dryRun bool) *Reporter {
	return &Reporter{
		progress: RunProgress{
			Phase:     PhaseScanning,
			Root:      root,
			DryRun:    dryRun,
			StartTime: time.Now(),
		},
	}
}

// Subscribe returns a channel that receives progress updates. Updates are
// dropped for a listener whose buffer is full.
func (r *Reporter) Subscribe() <-chan RunProgress {
	r.mu.Lock()
	defer r.mu.Unlock()

	ch := make(chan RunProgress, 16)
	r.listeners = append(r.listeners, ch)
	return ch
}

// Unsubscribe closes and removes a listener channel
func (r *Reporter) Unsubscribe(ch <-chan RunProgress) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, listener := range r.listeners {
		if listener == ch {
			close(listener)
			r.listeners = append(r.listeners[:i], r.listeners[i+1:]...)
			return
		}
	}
}

// Discovered records one plan emitted by the scanner
func (r *Reporter) Discovered() {
	r.update(func(p *RunProgress) {
		p.Discovered++
	})
}

// ScanFinished marks the end of discovery
func (r *Reporter) ScanFinished() {
	r.update(func(p *RunProgress) {
		if p.Phase == PhaseScanning {
			p.Phase = PhaseMoving
		}
	})
}

// Observe records one settled outcome
func (r *Reporter) Observe(o mover.Outcome) {
	r.update(func(p *RunProgress) {
		p.Processed++
		p.Current = o.Plan.Source
		switch o.Status {
		case mover.StatusMoved, mover.StatusWouldMove:
			p.Moved++
		case mover.StatusSkipped:
			p.Skipped++
		case mover.StatusFailed:
			p.Errors++
		}
	})
}

// Finish marks the run as complete or interrupted
func (r *Reporter) Finish(interrupted bool) {
	r.update(func(p *RunProgress) {
		p.Phase = PhaseComplete
		if interrupted {
			p.Phase = PhaseInterrupted
		}
		p.Current = ""
	})
}

// Snapshot returns the current progress
func (r *Reporter) Snapshot() RunProgress {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.progress
}

func (r *Reporter) update(fn func(*RunProgress)) {
	r.mu.Lock()
	fn(&r.progress)
	snapshot := r.progress
	listeners := make([]chan RunProgress, len(r.listeners))
	copy(listeners, r.listeners)
	r.mu.Unlock()

	// Notify all listeners (non-blocking)
	for _, listener := range listeners {
		select {
		case listener <- snapshot:
		default:
		}
	}
}

// FormatProgress returns a human-readable progress line
func FormatProgress(p RunProgress) string {
	elapsed := time.Since(p.StartTime)

	verb := "Organizing"
	if p.DryRun {
		verb = "Simulating"
	}

	switch p.Phase {
	case PhaseScanning:
		return fmt.Sprintf("%s... %d processed, %d found so far [%s]",
			verb, p.Processed, p.Discovered, FormatDuration(elapsed))
	case PhaseMoving:
		return fmt.Sprintf("%s... %d/%d processed (%d%%) [%s]",
			verb, p.Processed, p.Discovered, int(p.Fraction()*100), FormatDuration(elapsed))
	case PhaseComplete:
		return fmt.Sprintf("Done: %d moved, %d skipped, %d errors in %s",
			p.Moved, p.Skipped, p.Errors, FormatDuration(elapsed))
	case PhaseInterrupted:
		return fmt.Sprintf("Interrupted: %d moved, %d skipped, %d errors in %s",
			p.Moved, p.Skipped, p.Errors, FormatDuration(elapsed))
	default:
		return "Preparing..."
	}
}

// FormatDuration formats duration in human-readable format
func FormatDuration(d time.Duration) string {
	d = d.Round(time.Second)

	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%dm%ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm%ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}
