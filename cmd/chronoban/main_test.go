package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fenilsonani/chronoban/internal/config"
	"github.com/fenilsonani/chronoban/internal/testutil"
	"github.com/spf13/pflag"
)

var march2023 = time.Date(2023, 3, 15, 12, 0, 0, 0, time.Local)

// execute runs the root command with fresh flag state
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	rootCmd.Flags().VisitAll(func(f *pflag.Flag) {
		if err := f.Value.Set(f.DefValue); err != nil {
			t.Fatalf("failed to reset flag %s: %v", f.Name, err)
		}
		f.Changed = false
	})

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestOrganizeScenario(t *testing.T) {
	fixture := testutil.NewFixture(t)
	fixture.CreateDir("2023-03")
	fixture.CreateFileWithTime("a.txt", march2023)

	stdout, _, err := execute(t, fixture.RootDir)
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	fixture.AssertFileExists(fixture.Path("2023-03/a.txt"))
	for _, want := range []string{"Organizing files in:", fixture.RootDir, "Moved:   1", "Skipped: 1", "Errors:  0"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, stdout)
		}
	}
}

func TestOrganizeDryRunFlag(t *testing.T) {
	fixture := testutil.NewFixture(t)
	src := fixture.CreateFileWithTime("a.txt", march2023)

	stdout, _, err := execute(t, "-n", "-j", "2", fixture.RootDir)
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	fixture.AssertFileExists(src)
	fixture.AssertFileNotExists(fixture.Path("2023-03"))
	for _, want := range []string{"Dry run", "Would move:", "Would move: 1"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, stdout)
		}
	}
}

func TestOrganizeCollisionGoesToStderr(t *testing.T) {
	fixture := testutil.NewFixture(t)
	fixture.CreateFileWithTime("2023-03/a.txt", march2023)
	fixture.CreateFileWithTime("a.txt", march2023)

	_, stderr, err := execute(t, fixture.RootDir)
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !strings.Contains(stderr, "destination already exists") {
		t.Errorf("stderr missing collision line:\n%s", stderr)
	}
}

func TestOrganizeConfigFile(t *testing.T) {
	fixture := testutil.NewFixture(t)
	src := fixture.CreateFileWithTime("inbox/a.txt", march2023)

	cfgPath := filepath.Join(t.TempDir(), "chronoban.yaml")
	cfg := config.GetDefault()
	cfg.Root = fixture.Path("inbox")
	cfg.DryRun = true
	cfg.Output = "json"
	if err := config.Save(cfg, cfgPath); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	stdout, _, err := execute(t, "--config", cfgPath)
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	fixture.AssertFileExists(src)
	if !strings.Contains(stdout, `"dry_run": true`) {
		t.Errorf("expected JSON summary of a dry run:\n%s", stdout)
	}

	// An explicit flag beats the file
	if _, _, err := execute(t, "--config", cfgPath, "--dry-run=false"); err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	fixture.AssertFileExists(fixture.Path("inbox/2023-03/a.txt"))
}

func TestOrganizeReportFile(t *testing.T) {
	fixture := testutil.NewFixture(t)
	fixture.CreateFileWithTime("a.txt", march2023)
	reportPath := filepath.Join(t.TempDir(), "report.yaml")

	stdout, _, err := execute(t, "--output", "yaml", "--report-file", reportPath, fixture.RootDir)
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	data, err := os.ReadFile(reportPath)
	if err != nil {
		t.Fatalf("report file not written: %v", err)
	}
	if !strings.Contains(string(data), "moved: 1") {
		t.Errorf("unexpected report:\n%s", data)
	}
	if !strings.Contains(stdout, "Report saved to:") {
		t.Errorf("stdout missing report notice:\n%s", stdout)
	}
}

func TestSaveConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")

	if _, _, err := execute(t, "--save-config", path, "-r", "-a", "30", "/somewhere"); err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("saved config does not load: %v", err)
	}
	if !cfg.Recursive || cfg.MinAgeDays != 30 || cfg.Root != "/somewhere" {
		t.Errorf("unexpected saved config: %+v", cfg)
	}
}

func TestFatalErrors(t *testing.T) {
	fixture := testutil.NewFixture(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing root", []string{fixture.Path("missing")}, "missing"},
		{"negative min age", []string{"--min-age-days=-1", fixture.RootDir}, "min age"},
		{"zero jobs", []string{"--jobs=0", fixture.RootDir}, "jobs"},
		{"bad output", []string{"--output", "xml", fixture.RootDir}, "output format"},
		{"too many args", []string{fixture.RootDir, fixture.RootDir}, "accepts at most 1 arg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestVerboseForcesDebug(t *testing.T) {
	cfg := config.GetDefault()
	if err := rootCmd.Flags().Set("verbose", "true"); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		f := rootCmd.Flags().Lookup("verbose")
		f.Value.Set(f.DefValue)
		f.Changed = false
	})

	applyFlags(rootCmd, cfg, nil)
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}
