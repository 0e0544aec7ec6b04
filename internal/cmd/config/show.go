package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lyonhq/twscan/internal/cmdtypes"
	"github.com/lyonhq/twscan/internal/cmdutil"
	"github.com/lyonhq/twscan/internal/config"
	"github.com/lyonhq/twscan/internal/output"
	"github.com/lyonhq/twscan/internal/plugin"
)

// NewConfigShowCmd creates the config show command.
func NewConfigShowCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var asFlag string

	c := &cobra.Command{
		Use:   "show",
		Short: "Print the normalized build configuration",
		Long: `Print the build configuration after parsing and normalization.

With -o text the config is written back in a config file format (--as,
default: the format it was read from) followed by the plugin registry status.
With -o json or -o yaml the normalized document is written.

Examples:
  # Print the config as it would be written by config init
  twscan config show

  # Convert a JS config to CUE
  twscan config show --as cue > tailwind.config.cue`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runShow(cfg, asFlag)
		},
	}

	c.Flags().StringVar(&asFlag, "as", "", "Config format for text output: js, cue, json, yaml")
	return c
}

func runShow(cfg *cmdtypes.GlobalConfig, as string) error {
	bc, err := cmdutil.LoadBuildConfig(cfg)
	if err != nil {
		return err
	}
	cmdutil.LogIssues(config.Validate(bc).Warnings())

	format := bc.Format
	if as != "" {
		format = config.Format(as)
	}

	return cmdutil.WriteResult(cfg, bc.Document(), func(w io.Writer) error {
		data, err := config.Render(bc, format)
		if err != nil {
			return err
		}
		if _, err := w.Write(data); err != nil {
			return err
		}

		plugins := plugin.Resolve(bc.Plugins)
		if len(plugins) == 0 {
			return nil
		}
		unknown := false
		tbl := output.NewTable("PLUGIN", "STATUS", "DESCRIPTION")
		for _, p := range plugins {
			status := output.StyleSummary.Render("registered")
			if !p.Known {
				status = output.SeverityStyle(output.SeverityWarning).Render("unknown")
				unknown = true
			}
			tbl.Row(p.Ref, status, p.Description)
		}
		if _, err := fmt.Fprintf(w, "\n%s\n", tbl.String()); err != nil {
			return err
		}
		if unknown {
			_, err = fmt.Fprintf(w, "\nRegistered plugins: %s\n", strings.Join(plugin.Registered(), ", "))
		}
		return err
	})
}
