package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lyonhq/twscan/internal/cmdtypes"
	"github.com/lyonhq/twscan/internal/config"
	oerrors "github.com/lyonhq/twscan/internal/errors"
	"github.com/lyonhq/twscan/internal/output"
)

// NewConfigInitCmd creates the config init command.
func NewConfigInitCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var (
		formatFlag string
		forceFlag  bool
	)

	c := &cobra.Command{
		Use:   "init",
		Short: "Create the default build configuration",
		Long: `Create the default build configuration: three content globs for the
project templates and scripts, an empty theme extension and no plugins.

The file is written to the path given by --config, or to the conventional
name for the chosen format in the working directory.

Examples:
  # Write tailwind.config.js
  twscan config init

  # Write tailwind.config.cue instead
  twscan config init --format cue

  # Overwrite an existing file
  twscan config init --force`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runInit(cfg, formatFlag, forceFlag)
		},
	}

	c.Flags().StringVar(&formatFlag, "format", "", "Config format: js, cue, json, yaml (default: from --config extension, else js)")
	c.Flags().BoolVarP(&forceFlag, "force", "f", false, "Overwrite an existing config file")

	return c
}

func runInit(cfg *cmdtypes.GlobalConfig, formatFlag string, force bool) error {
	target, format, err := initTarget(cfg, formatFlag)
	if err != nil {
		return oerrors.NewExitError(err, oerrors.ExitCodeFromError(err))
	}

	if _, err := os.Stat(target); err == nil && !force {
		err := oerrors.NewValidationError("configuration already exists", target, "",
			"Use --force to overwrite existing configuration.")
		return oerrors.NewExitError(err, oerrors.ExitValidationError)
	}

	data, err := config.Render(config.DefaultBuildConfig(), format)
	if err != nil {
		return oerrors.NewExitError(err, oerrors.ExitGeneralError)
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return oerrors.NewExitError(oerrors.Wrap(oerrors.ErrPermission, "could not create "+filepath.Dir(target)), oerrors.ExitPermissionDenied)
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return oerrors.NewExitError(oerrors.Wrap(oerrors.ErrPermission, "could not write "+target), oerrors.ExitPermissionDenied)
	}

	output.Println(output.FormatCheckmark("Created " + target))
	output.Println("Validate with: twscan config vet")
	return nil
}

// initTarget picks the file to write. An explicit --config or TWSCAN_CONFIG
// path wins; otherwise the conventional name in the working directory.
func initTarget(cfg *cmdtypes.GlobalConfig, formatFlag string) (string, config.Format, error) {
	explicit := cfg.ResolveErr == nil &&
		(cfg.ConfigSource == config.SourceFlag || cfg.ConfigSource == config.SourceEnv)

	var format config.Format
	if formatFlag != "" {
		format = config.Format(formatFlag)
		if !validFormat(format) {
			return "", "", oerrors.NewValidationError(
				fmt.Sprintf("unknown config format %q", formatFlag), "", "format",
				"Use one of js, cue, json, yaml.")
		}
	}

	if explicit {
		detected, err := config.DetectFormat(cfg.ConfigPath)
		if err != nil {
			return "", "", err
		}
		if format != "" && format != detected {
			return "", "", oerrors.NewValidationError(
				fmt.Sprintf("--format %s does not match the extension of %s", format, cfg.ConfigPath), "", "format", "")
		}
		abs, err := filepath.Abs(cfg.ConfigPath)
		if err != nil {
			return "", "", fmt.Errorf("resolving config path: %w", err)
		}
		return abs, detected, nil
	}

	if format == "" {
		format = config.FormatJS
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", "", fmt.Errorf("getting working directory: %w", err)
	}
	return filepath.Join(wd, config.ConventionalName(format)), format, nil
}

func validFormat(f config.Format) bool {
	for _, known := range config.Formats() {
		if f == known {
			return true
		}
	}
	return false
}
