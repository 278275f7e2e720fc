package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fenilsonani/chronoban/internal/platform"
	"gopkg.in/yaml.v3"
)

// Day is the length of one unit of MinAgeDays.
const Day = 24 * time.Hour

// Config represents the settings of a single organize run
type Config struct {
	Root          string `yaml:"root"`
	DryRun        bool   `yaml:"dry_run"`
	MinAgeDays    int    `yaml:"min_age_days"`
	Recursive     bool   `yaml:"recursive"`
	UseAccessTime bool   `yaml:"use_atime"`
	Jobs          int    `yaml:"jobs"` // 1 runs moves sequentially

	Output     string `yaml:"output"`      // summary, table, json, yaml
	ReportFile string `yaml:"report_file"` // optional copy of the summary
	Progress   bool   `yaml:"progress"`

	Verbose  bool   `yaml:"verbose"`
	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`
}

// Output formats accepted by the reporter
var outputFormats = []string{"summary", "table", "json", "yaml"}

// Log levels accepted by the logger
var logLevels = []string{"debug", "info", "warn", "error"}

// Load loads configuration from a file. Values missing from the file keep
// their defaults.
func Load(configPath string) (*Config, error) {
	cfg := GetDefault()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Save saves configuration to a file
func Save(config *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.MinAgeDays < 0 {
		return fmt.Errorf("min age days must be >= 0")
	}

	if c.Jobs < 1 {
		return fmt.Errorf("jobs must be >= 1")
	}

	if !contains(outputFormats, c.Output) {
		return fmt.Errorf("unsupported output format %q (want one of %s)",
			c.Output, strings.Join(outputFormats, ", "))
	}

	if c.LogLevel != "" && !contains(logLevels, strings.ToLower(c.LogLevel)) {
		return fmt.Errorf("unsupported log level %q (want one of %s)",
			c.LogLevel, strings.Join(logLevels, ", "))
	}

	return nil
}

// MinAge converts MinAgeDays into a duration. Zero disables the age filter.
func (c *Config) MinAge() time.Duration {
	return time.Duration(c.MinAgeDays) * Day
}

// TimeSource returns which timestamp buckets entries
func (c *Config) TimeSource() platform.TimeSource {
	if c.UseAccessTime {
		return platform.AccessTime
	}
	return platform.ModTime
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
