package config

import (
	"os"
	"path/filepath"

	oerrors "github.com/lyonhq/twscan/internal/errors"
)

// ConventionalNames lists the file names looked up at the repository root,
// in priority order.
var ConventionalNames = []string{
	"tailwind.config.js",
	"tailwind.config.cjs",
	"tailwind.config.mjs",
	"tailwind.config.cue",
	"tailwind.config.json",
	"tailwind.config.yaml",
	"tailwind.config.yml",
}

// ConventionalName returns the conventional file name for a format.
func ConventionalName(format Format) string {
	switch format {
	case FormatCUE:
		return "tailwind.config.cue"
	case FormatJSON:
		return "tailwind.config.json"
	case FormatYAML:
		return "tailwind.config.yaml"
	default:
		return "tailwind.config.js"
	}
}

// Discover returns the path of the first conventional config file in dir.
func Discover(dir string) (string, error) {
	for _, name := range ConventionalNames {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err == nil && info.Mode().IsRegular() {
			return path, nil
		}
	}

	return "", oerrors.NewNotFoundError(
		"no build configuration found",
		dir,
		"Run 'twscan config init' to create tailwind.config.js, or pass --config.",
	)
}
