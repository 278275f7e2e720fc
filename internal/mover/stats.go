package mover

// Stats holds the run counters. Dry-run moves count as moved.
type Stats struct {
	Moved   int `json:"moved" yaml:"moved"`
	Skipped int `json:"skipped" yaml:"skipped"`
	Errors  int `json:"errors" yaml:"errors"`
}

// Record counts one outcome
func (s *Stats) Record(o Outcome) {
	switch o.Status {
	case StatusMoved, StatusWouldMove:
		s.Moved++
	case StatusSkipped:
		s.Skipped++
	case StatusFailed:
		s.Errors++
	}
}

// Total returns the number of counted outcomes
func (s Stats) Total() int {
	return s.Moved + s.Skipped + s.Errors
}

// Result is what a scheduler run produced
type Result struct {
	Stats
	Failures    []*MoveError
	DryRun      bool
	Interrupted bool
}

func (r *Result) record(o Outcome) {
	r.Stats.Record(o)
	if o.Err != nil {
		r.Failures = append(r.Failures, o.Err)
	}
}

// Observer receives every outcome from the single aggregation point, one at
// a time, in the order outcomes are counted.
type Observer interface {
	Observe(Outcome)
}

// ObserverFunc adapts a function to Observer
type ObserverFunc func(Outcome)

// Observe calls f(o)
func (f ObserverFunc) Observe(o Outcome) {
	f(o)
}

type multiObserver []Observer

func (m multiObserver) Observe(o Outcome) {
	for _, obs := range m {
		obs.Observe(o)
	}
}

// Observers fans outcomes out to several observers, ignoring nils
func Observers(observers ...Observer) Observer {
	var m multiObserver
	for _, obs := range observers {
		if obs != nil {
			m = append(m, obs)
		}
	}
	return m
}
