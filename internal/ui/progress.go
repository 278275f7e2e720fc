// Package ui renders the live terminal view of a run.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fenilsonani/chronoban/internal/mover"
	"github.com/fenilsonani/chronoban/internal/organizer"
	runprogress "github.com/fenilsonani/chronoban/internal/progress"
	"github.com/fenilsonani/chronoban/internal/reporter"
	"github.com/fenilsonani/chronoban/internal/ui/models"
	"golang.org/x/term"
)

// IsTerminal reports whether w is an interactive terminal
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// RunWithProgress runs org under a live progress view written to out. Every
// outcome line is printed above the view in the order outcomes are counted.
// Pressing ctrl+c stops the run gracefully and the partial summary is still
// returned.
func RunWithProgress(ctx context.Context, org *organizer.Organizer, root string, dryRun bool, out io.Writer) (*organizer.Summary, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := models.NewRunViewModel(root, dryRun, cancel)
	p := tea.NewProgram(model, tea.WithOutput(out), tea.WithoutSignalHandler())

	pr := runprogress.NewReporter(root, dryRun)
	updates := pr.Subscribe()
	defer pr.Unsubscribe(updates)

	org.SetProgressReporter(pr)
	org.SetObserver(mover.ObserverFunc(func(o mover.Outcome) {
		line, _ := reporter.FormatOutcome(o)
		p.Println(line)
	}))

	go func() {
		for u := range updates {
			p.Send(models.ProgressMsg(u))
		}
	}()

	var (
		summary *organizer.Summary
		runErr  error
	)
	done := make(chan struct{})
	go func() {
		defer close(done)
		summary, runErr = org.Run(ctx)
		p.Send(models.DoneMsg{Err: runErr})
	}()

	_, uiErr := p.Run()
	if uiErr != nil {
		cancel()
	}
	<-done

	if runErr != nil {
		return nil, runErr
	}
	if uiErr != nil {
		return summary, fmt.Errorf("progress view failed: %w", uiErr)
	}

	return summary, nil
}
