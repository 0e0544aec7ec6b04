package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// Environment variable prefix for twscan settings.
const envPrefix = "TWSCAN"

// LogSettings contains logging-related settings.
type LogSettings struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Nil means the default (on). Env: TWSCAN_LOG_TIMESTAMPS
	Timestamps *bool `mapstructure:"timestamps" yaml:"timestamps,omitempty"`
}

// Settings holds the CLI's own preferences, separate from the build config.
type Settings struct {
	// Config is the default build config path. Env: TWSCAN_CONFIG
	Config string `mapstructure:"config" yaml:"config,omitempty"`

	// Output is the default output format. Env: TWSCAN_OUTPUT
	Output string `mapstructure:"output" yaml:"output,omitempty"`

	// Concurrency bounds the scanner's parallel file reads.
	// Zero means the number of CPUs. Env: TWSCAN_CONCURRENCY
	Concurrency int `mapstructure:"concurrency" yaml:"concurrency,omitempty"`

	// Log contains logging-related settings.
	Log LogSettings `mapstructure:"log" yaml:"log,omitempty"`
}

// WithDefaults returns a copy with unset values filled in.
func (s Settings) WithDefaults() Settings {
	if s.Output == "" {
		s.Output = "text"
	}
	if s.Concurrency <= 0 {
		s.Concurrency = runtime.NumCPU()
	}
	return s
}

// SettingsLoader loads Settings from a file and the environment.
type SettingsLoader struct {
	v *viper.Viper
}

// NewSettingsLoader creates a new settings loader.
func NewSettingsLoader() *SettingsLoader {
	v := viper.New()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("config", EnvConfig)
	_ = v.BindEnv("output", "TWSCAN_OUTPUT")
	_ = v.BindEnv("concurrency", "TWSCAN_CONCURRENCY")
	_ = v.BindEnv("log.timestamps", "TWSCAN_LOG_TIMESTAMPS")

	return &SettingsLoader{v: v}
}

// Load reads the settings file at path (the default location when empty).
// A missing file is not an error; environment variables override file values.
func (l *SettingsLoader) Load(path string) (*Settings, error) {
	if path == "" {
		paths, err := DefaultPaths()
		if err != nil {
			return nil, fmt.Errorf("getting settings path: %w", err)
		}
		path = paths.SettingsFile
	}

	l.v.SetConfigFile(ExpandTilde(path))
	l.v.SetConfigType("yaml")

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading settings file: %w", err)
		}
	}

	var s Settings
	if err := l.v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("unmarshaling settings: %w", err)
	}
	return &s, nil
}
