package config

import (
	"os"

	"github.com/lyonhq/twscan/internal/output"
)

// ConfigSource indicates where a configuration value came from.
type ConfigSource string

const (
	// SourceFlag indicates value came from a command-line flag.
	SourceFlag ConfigSource = "flag"
	// SourceEnv indicates value came from an environment variable.
	SourceEnv ConfigSource = "env"
	// SourceSettings indicates value came from the settings file.
	SourceSettings ConfigSource = "settings"
	// SourceDiscovered indicates value was found by name convention.
	SourceDiscovered ConfigSource = "discovered"
)

// EnvConfig names the environment variable holding the build config path.
const EnvConfig = "TWSCAN_CONFIG"

// ResolveConfigPathOptions contains options for config path resolution.
type ResolveConfigPathOptions struct {
	// FlagValue is the --config flag value (empty if not set).
	FlagValue string

	// SettingsValue is the config path from the settings file (empty if not set).
	SettingsValue string

	// WorkDir is searched for a conventional config file when nothing else is set.
	WorkDir string
}

// ResolveConfigPathResult contains the resolved config path and its source.
type ResolveConfigPathResult struct {
	// ConfigPath is the resolved config file path.
	ConfigPath string
	// Source indicates where the config path came from.
	Source ConfigSource
	// Shadowed contains values that were overridden by higher precedence.
	Shadowed map[ConfigSource]string
}

// ResolveConfigPath resolves the build config path using precedence:
// (1) --config flag, (2) TWSCAN_CONFIG env, (3) settings file,
// (4) conventional file in WorkDir.
func ResolveConfigPath(opts ResolveConfigPathOptions) (ResolveConfigPathResult, error) {
	result := ResolveConfigPathResult{
		Shadowed: make(map[ConfigSource]string),
	}

	envValue := os.Getenv(EnvConfig)

	candidates := []struct {
		source ConfigSource
		value  string
	}{
		{SourceFlag, opts.FlagValue},
		{SourceEnv, envValue},
		{SourceSettings, opts.SettingsValue},
	}

	for _, c := range candidates {
		if c.value == "" {
			continue
		}
		if result.Source == "" {
			result.ConfigPath = ExpandTilde(c.value)
			result.Source = c.source
			continue
		}
		result.Shadowed[c.source] = c.value
	}

	if result.Source != "" {
		return result, nil
	}

	dir := opts.WorkDir
	if dir == "" {
		dir = "."
	}
	path, err := Discover(dir)
	if err != nil {
		return result, err
	}
	result.ConfigPath = path
	result.Source = SourceDiscovered
	return result, nil
}

// LogResolved logs the resolution at DEBUG level.
func (r ResolveConfigPathResult) LogResolved(key string) {
	output.Debug("config value resolved",
		"key", key,
		"value", r.ConfigPath,
		"source", r.Source,
	)
	for source, shadowed := range r.Shadowed {
		output.Debug("  shadowed by higher precedence",
			"key", key,
			"shadowed_source", source,
			"shadowed_value", shadowed,
		)
	}
}
