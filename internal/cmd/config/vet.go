package config

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/lyonhq/twscan/internal/cmdtypes"
	"github.com/lyonhq/twscan/internal/cmdutil"
	"github.com/lyonhq/twscan/internal/config"
	oerrors "github.com/lyonhq/twscan/internal/errors"
	"github.com/lyonhq/twscan/internal/output"
)

type vetReport struct {
	Path   string        `json:"path" yaml:"path"`
	Valid  bool          `json:"valid" yaml:"valid"`
	Issues config.Issues `json:"issues" yaml:"issues"`
}

// NewConfigVetCmd creates the config vet command.
func NewConfigVetCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "vet",
		Short: "Validate the build configuration",
		Long: `Validate the build configuration.

Checks performed:
  1. Config file exists at the resolved path
  2. Config file parses (static object literal for .js files)
  3. Config matches the schema (content, theme, plugins and friends)
  4. Rule checks: glob syntax, duplicates, unknown plugins and keys, empty content

Warnings are reported but do not fail the command.

Examples:
  # Validate the config in the working directory
  twscan config vet

  # Validate another file
  twscan config vet --config ./site/tailwind.config.cjs`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runVet(cfg)
		},
	}
}

func runVet(cfg *cmdtypes.GlobalConfig) error {
	bc, err := cmdutil.LoadBuildConfig(cfg)
	if err != nil {
		return err
	}

	issues := config.Validate(bc)
	report := vetReport{Path: bc.Path, Valid: !issues.HasErrors(), Issues: issues}
	if report.Issues == nil {
		report.Issues = config.Issues{}
	}

	err = cmdutil.WriteResult(cfg, report, func(w io.Writer) error {
		if err := cmdutil.PrintIssues(w, issues); err != nil {
			return err
		}
		if report.Valid {
			msg := "Configuration is valid: " + bc.Path
			if n := len(issues.Warnings()); n > 0 {
				msg += " (" + cmdutil.Pluralize(n, "warning", "warnings") + ")"
			}
			_, err := io.WriteString(w, output.FormatCheckmark(msg)+"\n")
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := issues.Err(); err != nil {
		return &oerrors.ExitError{Err: err, Code: oerrors.ExitValidationError, Printed: true}
	}
	return nil
}
