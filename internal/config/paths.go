package config

import (
	"os"
	"path/filepath"
)

// Paths contains standard filesystem paths for twscan.
type Paths struct {
	// SettingsFile is the path to the CLI settings file (~/.twscan/settings.yaml).
	SettingsFile string

	// HomeDir is the twscan home directory (~/.twscan).
	HomeDir string
}

// DefaultPaths returns the default paths for twscan.
func DefaultPaths() (*Paths, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	home := filepath.Join(homeDir, ".twscan")

	return &Paths{
		SettingsFile: filepath.Join(home, "settings.yaml"),
		HomeDir:      home,
	}, nil
}

// ExpandTilde expands a leading ~ or ~/ to the user's home directory.
// ~username forms are returned unchanged.
func ExpandTilde(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	if len(path) == 1 {
		return homeDir
	}

	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	return path
}
