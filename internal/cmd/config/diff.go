package config

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/lyonhq/twscan/internal/cmdtypes"
	"github.com/lyonhq/twscan/internal/cmdutil"
	"github.com/lyonhq/twscan/internal/config"
	"github.com/lyonhq/twscan/internal/output"
)

type diffReport struct {
	From      string `json:"from" yaml:"from"`
	To        string `json:"to" yaml:"to"`
	Identical bool   `json:"identical" yaml:"identical"`
	Diff      string `json:"diff,omitempty" yaml:"diff,omitempty"`
}

// NewConfigDiffCmd creates the config diff command.
func NewConfigDiffCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "diff [other]",
		Short: "Compare the build configuration with another one",
		Long: `Compare the normalized build configuration with another config file, or
with the default configuration when no file is given. Files in different
formats compare by content.

Examples:
  # What differs from the stock config
  twscan config diff

  # Compare two configs
  twscan config diff ../other/tailwind.config.js`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runDiff(cfg, args)
		},
	}
}

func runDiff(cfg *cmdtypes.GlobalConfig, args []string) error {
	from, err := cmdutil.LoadBuildConfig(cfg)
	if err != nil {
		return err
	}

	to := config.DefaultBuildConfig()
	toName := "default"
	if len(args) == 1 {
		to, err = config.Load(args[0])
		if err != nil {
			return cmdutil.Exit(err)
		}
		toName = to.Path
	}

	report := diffReport{From: from.Path, To: toName, Identical: config.Equal(from, to)}
	if !report.Identical {
		fromYAML, err := documentYAML(from)
		if err != nil {
			return err
		}
		toYAML, err := documentYAML(to)
		if err != nil {
			return err
		}
		report.Diff, err = output.RenderYAMLDiff(from.Path, fromYAML, toName, toYAML,
			cfg.Output == output.FormatText && output.IsTTY())
		if err != nil {
			return cmdutil.Exit(err)
		}
		// Unknown keys are not part of the document.
		if report.Diff == "" {
			report.Diff = "differences are limited to unrecognized keys"
		}
	}

	return cmdutil.WriteResult(cfg, report, func(w io.Writer) error {
		if report.Identical {
			_, err := fmt.Fprintln(w, "No differences.")
			return err
		}
		_, err := fmt.Fprintf(w, "--- %s\n+++ %s\n%s", report.From, report.To, output.IndentDiff(report.Diff, "  "))
		return err
	})
}

// documentYAML renders the normalized document through its JSON tags.
func documentYAML(bc *config.BuildConfig) ([]byte, error) {
	data, err := yaml.Marshal(bc.Document())
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", bc.Path, err)
	}
	return data, nil
}
