// Package config loads the CLI configuration from defaults, a YAML file,
// EXAMSCHED_ environment variables and command-line flags.
package config

import (
	"path/filepath"

	intconfig "github.com/leapstack-labs/examsched/internal/config"
	"github.com/leapstack-labs/examsched/internal/ingest"
)

// Delimiter is an instructor delimiter. Backslash escapes such as "\t"
// are expanded when it is decoded from configuration.
type Delimiter string

// Config holds all CLI configuration options.
type Config struct {
	DataDir             string    `koanf:"data_dir"`
	LocationsFile       string    `koanf:"locations_file"`
	CoursesFile         string    `koanf:"courses_file"`
	TimeFile            string    `koanf:"time_file"`
	StatePath           string    `koanf:"state_path"`
	OutputFormat        string    `koanf:"output"`
	Verbose             bool      `koanf:"verbose"`
	InstructorDelimiter Delimiter `koanf:"instructor_delimiter"`
	MaxAttempts         int       `koanf:"max_attempts"`
	SkipMalformed       bool      `koanf:"skip_malformed"`

	// Root is the directory relative paths are resolved against.
	Root string `koanf:"-"`
}

// Default configuration values, re-exported for the CLI.
const (
	DefaultStateFile = intconfig.DefaultStateFile
	DefaultOutput    = intconfig.DefaultOutput
)

// Sources returns the source file paths for ingestion. File names are
// joined to DataDir unless absolute.
func (c *Config) Sources() ingest.Sources {
	return ingest.Sources{
		Locations: joinIfRelative(c.DataDir, c.LocationsFile),
		Courses:   joinIfRelative(c.DataDir, c.CoursesFile),
		Time:      joinIfRelative(c.DataDir, c.TimeFile),
	}
}

func joinIfRelative(dir, name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(dir, name)
}
