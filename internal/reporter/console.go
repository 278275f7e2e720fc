package reporter

import (
	"fmt"
	"io"

	"github.com/fenilsonani/chronoban/internal/mover"
	"github.com/fenilsonani/chronoban/internal/scanner"
	"github.com/fenilsonani/chronoban/internal/ui/styles"
)

// Stream selects where a console line goes
type Stream int

const (
	Stdout Stream = iota
	Stderr
)

// FormatOutcome renders the console line for one outcome and the stream it
// belongs on. Collisions and failures go to stderr.
func FormatOutcome(o mover.Outcome) (string, Stream) {
	p := o.Plan

	switch o.Status {
	case mover.StatusMoved:
		return fmt.Sprintf("%s %s -> %s", styles.SuccessStyle.Render("Moved:"), p.Source, p.Dest), Stdout
	case mover.StatusWouldMove:
		return fmt.Sprintf("%s %s -> %s", styles.InfoStyle.Render("[dry run] Would move:"), p.Source, p.Dest), Stdout
	case mover.StatusSkipped:
		if p.Reason == scanner.SkipDestinationExists {
			return fmt.Sprintf("%s %s: %s (%s)", styles.WarningStyle.Render("Skipping"), p.Source, p.Reason, p.Dest), Stderr
		}
		return fmt.Sprintf("%s %s: %s", styles.DimStyle.Render("Skipping"), p.Source, p.Reason), Stdout
	default:
		msg := fmt.Sprintf("failed to process %s", p.Source)
		if o.Err != nil {
			msg = o.Err.UserMessage()
		}
		return fmt.Sprintf("%s %s", styles.ErrorStyle.Render("Error:"), msg), Stderr
	}
}

// Console prints one line per outcome as soon as it is counted
type Console struct {
	out    io.Writer
	errOut io.Writer
}

// NewConsole creates a console observer writing to out and errOut
func NewConsole(out, errOut io.Writer) *Console {
	return &Console{out: out, errOut: errOut}
}

// Observe implements mover.Observer
func (c *Console) Observe(o mover.Outcome) {
	line, stream := FormatOutcome(o)
	if stream == Stderr {
		fmt.Fprintln(c.errOut, line)
		return
	}
	fmt.Fprintln(c.out, line)
}

// Banner prints the run header
func Banner(w io.Writer, root string, dryRun bool) {
	fmt.Fprintf(w, "%s %s\n", styles.HeaderStyle.Render("Organizing files in:"), root)
	if dryRun {
		fmt.Fprintln(w, styles.WarningStyle.Render("Dry run: no files will be moved"))
	}
}
