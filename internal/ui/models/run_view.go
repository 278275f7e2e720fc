package models

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	runprogress "github.com/fenilsonani/chronoban/internal/progress"
	"github.com/fenilsonani/chronoban/internal/ui/components"
	"github.com/fenilsonani/chronoban/internal/ui/styles"
	"github.com/fenilsonani/chronoban/internal/ui/utils"
)

const maxBarWidth = 60

// RunViewModel renders the live view of an organize run
type RunViewModel struct {
	root      string
	dryRun    bool
	spinner   spinner.Model
	progress  progress.Model
	statusBar *components.StatusBar
	snapshot  runprogress.RunProgress
	cancel    context.CancelFunc
	width     int
	startTime time.Time

	interrupting bool
	done         bool
	err          error
}

// NewRunViewModel creates the run view. cancel is called once when the
// operator asks to stop.
func NewRunViewModel(root string, dryRun bool, cancel context.CancelFunc) *RunViewModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.SpinnerStyle

	p := progress.New(progress.WithDefaultGradient())
	p.Width = 40

	bar := components.NewStatusBar("chronoban", dryRun)
	bar.SetShortcuts("ctrl+c:stop")

	return &RunViewModel{
		root:      root,
		dryRun:    dryRun,
		spinner:   s,
		progress:  p,
		statusBar: bar,
		cancel:    cancel,
		width:     80,
		startTime: time.Now(),
		snapshot:  runprogress.RunProgress{Phase: runprogress.PhaseScanning, Root: root, DryRun: dryRun},
	}
}

// Init initializes the run view
func (m *RunViewModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles messages
func (m *RunViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.interrupt()
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progress.Width = min(msg.Width-4, maxBarWidth)
		return m, nil

	case ProgressMsg:
		m.snapshot = runprogress.RunProgress(msg)
		m.statusBar.SetCounts(m.snapshot.Moved, m.snapshot.Skipped, m.snapshot.Errors)
		return m, nil

	case DoneMsg:
		m.done = true
		m.err = msg.Err
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *RunViewModel) interrupt() {
	if m.interrupting {
		return
	}
	m.interrupting = true
	if m.cancel != nil {
		m.cancel()
	}
}

// Interrupting reports whether the operator asked to stop
func (m *RunViewModel) Interrupting() bool {
	return m.interrupting
}

// Done reports whether the run has finished
func (m *RunViewModel) Done() bool {
	return m.done
}

// View renders the run view. It is empty once the run has finished so the
// summary printed afterwards starts on a clean line.
func (m *RunViewModel) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder

	verb := "Organizing"
	if m.dryRun {
		verb = "Simulating"
	}
	if m.interrupting {
		verb = "Stopping"
	}

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(styles.HeaderStyle.Render(verb))
	b.WriteString(" ")
	b.WriteString(styles.FilePathStyle.Render(utils.TruncatePath(m.root, m.width/2)))
	b.WriteString(" ")
	b.WriteString(styles.DimStyle.Render(fmt.Sprintf("(%s)", runprogress.FormatDuration(time.Since(m.startTime)))))
	b.WriteString("\n\n")

	b.WriteString(m.progress.ViewAs(m.snapshot.Fraction()))
	b.WriteString(fmt.Sprintf("  %d/%d", m.snapshot.Processed, m.snapshot.Discovered))
	b.WriteString("\n")

	if m.snapshot.Current != "" {
		b.WriteString(styles.DimStyle.Render(utils.TruncatePath(m.snapshot.Current, m.width-2)))
	}
	b.WriteString("\n\n")

	b.WriteString(m.statusBar.Render(m.width))
	if m.interrupting {
		b.WriteString("\n")
		b.WriteString(styles.HelpStyle.Render("Waiting for in-flight moves to finish..."))
	}

	return b.String()
}
