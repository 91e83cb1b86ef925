// Package config holds the configuration defaults and config file lookup
// shared by the CLI and the library packages.
package config

// Default configuration values.
const (
	DefaultDataDir             = "."
	DefaultLocationsFile       = "locations.csv"
	DefaultCoursesFile         = "courses.csv"
	DefaultTimeFile            = "time.csv"
	DefaultStateFile           = ".examsched/state.db"
	DefaultOutput              = "auto" // TTY=text, otherwise markdown
	DefaultInstructorDelimiter = ","
	DefaultMaxAttempts         = 5
)

// Defaults returns the default value of every config key.
func Defaults() map[string]any {
	return map[string]any{
		"data_dir":             DefaultDataDir,
		"locations_file":       DefaultLocationsFile,
		"courses_file":         DefaultCoursesFile,
		"time_file":            DefaultTimeFile,
		"state_path":           DefaultStateFile,
		"output":               DefaultOutput,
		"verbose":              false,
		"instructor_delimiter": DefaultInstructorDelimiter,
		"max_attempts":         DefaultMaxAttempts,
		"skip_malformed":       false,
	}
}
