package config

import (
	"fmt"
	"os"
	"slices"
)

// OutputFormats lists the accepted values of the output key.
var OutputFormats = []string{"auto", "text", "markdown", "json", "csv", "yaml"}

// Validate checks option values without touching the filesystem.
func (c *Config) Validate() error {
	if c.StatePath == "" {
		return fmt.Errorf("state_path is required")
	}
	if c.InstructorDelimiter == "" {
		return fmt.Errorf("instructor_delimiter must not be empty")
	}
	if c.MaxAttempts < 0 {
		return fmt.Errorf("max_attempts must be >= 0, got %d", c.MaxAttempts)
	}
	if !slices.Contains(OutputFormats, c.OutputFormat) {
		return fmt.Errorf("invalid output format %q (valid: %v)", c.OutputFormat, OutputFormats)
	}
	return nil
}

// ValidateSources checks that the source files exist.
func (c *Config) ValidateSources() error {
	src := c.Sources()
	for _, path := range []string{src.Locations, src.Courses, src.Time} {
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("source file not found: %s\nHint: use --data-dir or data_dir in examsched.yaml to point at the source files", path)
		}
	}
	return nil
}
