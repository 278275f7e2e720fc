package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fenilsonani/chronoban/internal/config"
	"github.com/fenilsonani/chronoban/internal/logger"
	"github.com/fenilsonani/chronoban/internal/mover"
	"github.com/fenilsonani/chronoban/internal/organizer"
	"github.com/fenilsonani/chronoban/internal/reporter"
	"github.com/fenilsonani/chronoban/internal/ui"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

var (
	configPath     string
	saveConfigPath string
	verbose        bool
	logLevel       string
	logFile        string
	dryRun         bool
	minAgeDays     int
	recursive      bool
	useAtime       bool
	jobs           int
	outputFmt      string
	reportFile     string
	showProgress   bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "chronoban [directory]",
	Short: "Sort files into YYYY-MM folders by date",
	Long: `chronoban moves every file of a directory into a sub-directory named after
the year and month of the file's modification (or access) time, for example
2023-03/. Existing YYYY-MM folders are left alone, so running it again is safe.`,
	Version:      fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime),
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runOrganize,
}

func runOrganize(cmd *cobra.Command, args []string) error {
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	applyFlags(cmd, cfg, args)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if saveConfigPath != "" {
		if err := config.Save(cfg, saveConfigPath); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Configuration saved to: %s\n", saveConfigPath)
		return nil
	}

	log, closer, err := logger.New(cfg.LogLevel, cfg.LogFile, stderr)
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	org := organizer.New(cfg, afero.NewOsFs(), log)

	root, err := org.ResolveRoot()
	if err != nil {
		return err
	}
	reporter.Banner(stdout, root, cfg.DryRun)

	summary, err := organize(ctx, org, cfg, root, stdout, stderr)
	if err != nil {
		return err
	}

	format := reporter.OutputFormat(cfg.Output)
	if err := reporter.New(stdout, format).Report(summary); err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}

	if cfg.ReportFile != "" {
		if err := reporter.SaveToFile(summary, cfg.ReportFile, format); err != nil {
			return fmt.Errorf("failed to save report: %w", err)
		}
		fmt.Fprintf(stdout, "Report saved to: %s\n", cfg.ReportFile)
	}

	if len(summary.Failures) > 0 {
		fmt.Fprint(stderr, mover.FormatErrorSummary(summary.Failures))
	}

	return nil
}

// organize runs the pass, under the live view when asked for and stdout is
// a terminal
func organize(ctx context.Context, org *organizer.Organizer, cfg *config.Config, root string, stdout, stderr io.Writer) (*organizer.Summary, error) {
	if cfg.Progress && ui.IsTerminal(stdout) {
		return ui.RunWithProgress(ctx, org, root, cfg.DryRun, stdout)
	}

	org.SetObserver(reporter.NewConsole(stdout, stderr))
	return org.Run(ctx)
}

// applyFlags overrides cfg with the flags that were set explicitly
func applyFlags(cmd *cobra.Command, cfg *config.Config, args []string) {
	if len(args) == 1 {
		cfg.Root = args[0]
	}

	flags := cmd.Flags()
	if flags.Changed("dry-run") {
		cfg.DryRun = dryRun
	}
	if flags.Changed("min-age-days") {
		cfg.MinAgeDays = minAgeDays
	}
	if flags.Changed("recursive") {
		cfg.Recursive = recursive
	}
	if flags.Changed("use-atime") {
		cfg.UseAccessTime = useAtime
	}
	if flags.Changed("jobs") {
		cfg.Jobs = jobs
	}
	if flags.Changed("output") {
		cfg.Output = outputFmt
	}
	if flags.Changed("report-file") {
		cfg.ReportFile = reportFile
	}
	if flags.Changed("progress") {
		cfg.Progress = showProgress
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("log-file") {
		cfg.LogFile = logFile
	}
	if flags.Changed("verbose") {
		cfg.Verbose = verbose
	}
	if cfg.Verbose {
		cfg.LogLevel = "debug"
	}
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "", "config file path")
	rootCmd.Flags().StringVar(&saveConfigPath, "save-config", "", "write the effective configuration to a file and exit")
	rootCmd.Flags().BoolVar(&verbose, "verbose", false, "debug diagnostics on stderr")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "warn", "diagnostics level (debug, info, warn, error)")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "also append JSON diagnostics to this file")

	rootCmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "show what would be moved without moving anything")
	rootCmd.Flags().IntVarP(&minAgeDays, "min-age-days", "a", 0, "only move files at least this many days old")
	rootCmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "also organize files in subdirectories")
	rootCmd.Flags().BoolVar(&useAtime, "use-atime", false, "bucket by access time instead of modification time")
	rootCmd.Flags().IntVarP(&jobs, "jobs", "j", 1, "maximum number of moves running at once")

	rootCmd.Flags().StringVar(&outputFmt, "output", "summary", "summary format (summary, table, json, yaml)")
	rootCmd.Flags().StringVar(&reportFile, "report-file", "", "also save the summary to a file")
	rootCmd.Flags().BoolVar(&showProgress, "progress", false, "show a live progress view when stdout is a terminal")
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.Load(configPath)
	}
	return config.GetDefault(), nil
}
