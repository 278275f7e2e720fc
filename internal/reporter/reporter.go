package reporter

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/fenilsonani/chronoban/internal/mover"
	"github.com/fenilsonani/chronoban/internal/organizer"
	"github.com/fenilsonani/chronoban/internal/progress"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"gopkg.in/yaml.v3"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatTable   OutputFormat = "table"
	FormatJSON    OutputFormat = "json"
	FormatYAML    OutputFormat = "yaml"
	FormatSummary OutputFormat = "summary"
)

// Reporter handles report generation
type Reporter struct {
	writer io.Writer
	format OutputFormat
}

// New creates a new Reporter
func New(writer io.Writer, format OutputFormat) *Reporter {
	return &Reporter{
		writer: writer,
		format: format,
	}
}

// Report writes the summary of a finished run
func (r *Reporter) Report(summary *organizer.Summary) error {
	switch r.format {
	case FormatTable:
		return r.reportTable(summary)
	case FormatJSON:
		return r.reportJSON(summary)
	case FormatYAML:
		return r.reportYAML(summary)
	case FormatSummary:
		return r.reportSummary(summary)
	default:
		return fmt.Errorf("unsupported format: %s", r.format)
	}
}

// reportSummary generates the plain summary printed after every run
func (r *Reporter) reportSummary(s *organizer.Summary) error {
	fmt.Fprintf(r.writer, "\n=== Summary ===\n")
	if s.DryRun {
		fmt.Fprintf(r.writer, "Would move: %d\n", s.Stats.Moved)
	} else {
		fmt.Fprintf(r.writer, "Moved:   %d\n", s.Stats.Moved)
	}
	fmt.Fprintf(r.writer, "Skipped: %d\n", s.Stats.Skipped)
	fmt.Fprintf(r.writer, "Errors:  %d\n", s.Stats.Errors)
	fmt.Fprintf(r.writer, "Took %s\n", progress.FormatDuration(s.Duration))

	if s.Interrupted {
		fmt.Fprintf(r.writer, "Run was interrupted; counts are partial.\n")
	}

	return nil
}

// reportTable generates a table report
func (r *Reporter) reportTable(s *organizer.Summary) error {
	mode := "move"
	if s.DryRun {
		mode = "dry run"
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Field", "Value"})
	tw.AppendRows([]table.Row{
		{"Run", s.RunID},
		{"Root", s.Root},
		{"Mode", mode},
		{"Recursive", strconv.FormatBool(s.Recursive)},
		{"Time source", s.TimeSource},
		{"Min age (days)", s.MinAgeDays},
		{"Jobs", s.Jobs},
	})
	tw.AppendSeparator()
	tw.AppendRows([]table.Row{
		{"Moved", s.Stats.Moved},
		{"Skipped", s.Stats.Skipped},
		{"Errors", s.Stats.Errors},
		{"Duration", progress.FormatDuration(s.Duration)},
	})
	if s.Interrupted {
		tw.AppendFooter(table.Row{"Interrupted", "counts are partial"})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft},
		{Number: 2, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
	})

	_, err := fmt.Fprintln(r.writer, tw.Render())
	return err
}

type failureRecord struct {
	Path   string `json:"path" yaml:"path"`
	Op     string `json:"op" yaml:"op"`
	Reason string `json:"reason" yaml:"reason"`
	Error  string `json:"error" yaml:"error"`
}

type report struct {
	Timestamp         string `json:"timestamp" yaml:"timestamp"`
	organizer.Summary `yaml:",inline"`
	Failures          []failureRecord `json:"failures,omitempty" yaml:"failures,omitempty"`
}

func newReport(s *organizer.Summary) report {
	rep := report{
		Timestamp: time.Now().Format(time.RFC3339),
		Summary:   *s,
	}
	for _, f := range s.Failures {
		rep.Failures = append(rep.Failures, failureRecord{
			Path:   f.Path,
			Op:     f.Op,
			Reason: f.Reason.String(),
			Error:  errorText(f),
		})
	}
	return rep
}

func errorText(f *mover.MoveError) string {
	if f.Original == nil {
		return ""
	}
	return f.Original.Error()
}

// reportJSON generates a JSON report
func (r *Reporter) reportJSON(s *organizer.Summary) error {
	encoder := json.NewEncoder(r.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(newReport(s))
}

// reportYAML generates a YAML report
func (r *Reporter) reportYAML(s *organizer.Summary) error {
	encoder := yaml.NewEncoder(r.writer)
	defer encoder.Close()
	return encoder.Encode(newReport(s))
}

// SaveToFile saves the report to a file
func SaveToFile(summary *organizer.Summary, path string, format OutputFormat) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	reporter := New(file, format)
	return reporter.Report(summary)
}
