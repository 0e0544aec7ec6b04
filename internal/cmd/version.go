package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/lyonhq/twscan/internal/cmdtypes"
	"github.com/lyonhq/twscan/internal/cmdutil"
	"github.com/lyonhq/twscan/internal/version"
)

type versionReport struct {
	CLI    version.Info       `json:"cli" yaml:"cli"`
	Binary version.BinaryInfo `json:"binary" yaml:"binary"`
}

// NewVersionCmd creates the version command.
func NewVersionCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show twscan version information.

Displays:
  - twscan version, commit, and build date
  - CUE SDK version used to evaluate config files
  - the standalone tailwindcss binary found in PATH, if any`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			report := versionReport{
				CLI:    version.Get(),
				Binary: version.DetectBinary(c.Context()),
			}
			return cmdutil.WriteResult(cfg, report, func(w io.Writer) error {
				_, err := io.WriteString(w, version.FullVersionString(report.CLI, report.Binary)+"\n")
				return err
			})
		},
	}
}
