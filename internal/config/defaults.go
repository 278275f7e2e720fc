package config

// GetDefault returns the default configuration
func GetDefault() *Config {
	return &Config{
		Root:          ".",
		DryRun:        false,
		MinAgeDays:    0, // no age filter
		Recursive:     false,
		UseAccessTime: false,
		Jobs:          1,
		Output:        "summary",
		Progress:      false,
		Verbose:       false,
		LogLevel:      "warn",
	}
}
