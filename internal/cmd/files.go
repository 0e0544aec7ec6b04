package cmd

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lyonhq/twscan/internal/cmdtypes"
	"github.com/lyonhq/twscan/internal/cmdutil"
	"github.com/lyonhq/twscan/internal/output"
)

// NewFilesCmd creates the files command.
func NewFilesCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var ff cmdutil.FilesFlags

	c := &cobra.Command{
		Use:   "files",
		Short: "List files matched by the content globs",
		Long: `List the files the build scans for class names.

Patterns are resolved against the directory of the config file. A leading
"!" excludes matches.

Examples:
  # List matched files
  twscan files

  # Show them as a tree
  twscan files --tree`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runFiles(c, cfg, &ff)
		},
	}

	ff.AddTo(c)
	return c
}

func runFiles(c *cobra.Command, cfg *cmdtypes.GlobalConfig, ff *cmdutil.FilesFlags) error {
	bc, err := cmdutil.LoadValidBuildConfig(cfg)
	if err != nil {
		return err
	}

	scanner, err := cmdutil.NewScanner(cfg, bc)
	if err != nil {
		return err
	}

	files, err := scanner.Files(c.Context())
	if err != nil {
		return cmdutil.Exit(err)
	}
	if len(files) == 0 {
		output.Warn("content globs matched no files", "root", scanner.Root())
	}

	return cmdutil.WriteResult(cfg, files, func(w io.Writer) error {
		if ff.Tree {
			annotations := make(map[string]string, len(files))
			for _, f := range files {
				annotations[f] = ""
			}
			_, err := io.WriteString(w, output.RenderFileTree(filepath.Base(scanner.Root()), annotations))
			return err
		}
		for _, f := range files {
			if _, err := fmt.Fprintln(w, f); err != nil {
				return err
			}
		}
		return nil
	})
}
