// Package cmdutil provides shared command utilities: flag groups, build
// config loading and result printing.
package cmdutil

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/lyonhq/twscan/internal/content"
)

// ScanFlags holds flags for commands that scan content (scan).
type ScanFlags struct {
	Watch    bool
	Sources  bool
	Debounce time.Duration
}

// AddTo registers the scan flags on the given cobra command.
func (f *ScanFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&f.Watch, "watch", "w", false,
		"Rescan when content files or the config change")
	cmd.Flags().BoolVar(&f.Sources, "sources", false,
		"Show the files each class was found in")
	cmd.Flags().DurationVar(&f.Debounce, "debounce", content.DefaultDebounce,
		"Quiet period before a rescan in --watch mode")
}

// FilesFlags holds flags for the files command.
type FilesFlags struct {
	Tree bool
}

// AddTo registers the files flags on the given cobra command.
func (f *FilesFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.Tree, "tree", false, "Render matched files as a tree")
}

// ThemeFlags holds flags for the theme command.
type ThemeFlags struct {
	Changed    bool
	Categories []string
}

// AddTo registers the theme flags on the given cobra command.
func (f *ThemeFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.Changed, "changed", false,
		"Only show tokens that differ from the defaults")
	cmd.Flags().StringSliceVarP(&f.Categories, "category", "c", nil,
		"Limit output to these categories (repeatable)")
}
