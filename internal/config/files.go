package config

import (
	"os"
	"path/filepath"
)

// ConfigFileNames are the config file names looked up in a directory, in
// order of preference.
var ConfigFileNames = []string{"examsched.yaml", "examsched.yml"}

// FindConfigFile returns the config file in dir, or "" if there is none.
func FindConfigFile(dir string) string {
	for _, name := range ConfigFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// FindRoot walks up from startDir to the first directory holding a config
// file, giving up after maxLevels parents. It returns "" if none is found.
func FindRoot(startDir string, maxLevels int) string {
	dir := startDir
	for range maxLevels {
		if FindConfigFile(dir) != "" {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
	return ""
}
