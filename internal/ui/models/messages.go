package models

import (
	runprogress "github.com/fenilsonani/chronoban/internal/progress"
)

// ProgressMsg carries a progress snapshot into the program
type ProgressMsg runprogress.RunProgress

// DoneMsg signals that the run has finished
type DoneMsg struct {
	Err error
}
