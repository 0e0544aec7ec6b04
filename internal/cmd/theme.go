package cmd

import (
	"fmt"
	"io"
	"slices"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lyonhq/twscan/internal/cmdtypes"
	"github.com/lyonhq/twscan/internal/cmdutil"
	"github.com/lyonhq/twscan/internal/output"
	"github.com/lyonhq/twscan/internal/theme"
)

// NewThemeCmd creates the theme command.
func NewThemeCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var tf cmdutil.ThemeFlags

	c := &cobra.Command{
		Use:   "theme",
		Short: "Print resolved theme tokens",
		Long: `Print the design tokens the build uses: the defaults, with categories set
directly under theme replacing them and categories under theme.extend merged
into them.

Examples:
  # All tokens
  twscan theme

  # Only what the config changes
  twscan theme --changed

  # Colors and spacing as JSON
  twscan theme -c colors -c spacing -o json`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runTheme(cfg, &tf)
		},
	}

	tf.AddTo(c)
	return c
}

func runTheme(cfg *cmdtypes.GlobalConfig, tf *cmdutil.ThemeFlags) error {
	bc, err := cmdutil.LoadValidBuildConfig(cfg)
	if err != nil {
		return err
	}

	resolved := theme.Resolve(bc.Theme)
	known := resolved.Categories()
	for _, c := range tf.Categories {
		if !slices.Contains(known, c) {
			output.Warn("unknown theme category", "category", c, "known", strings.Join(known, ", "))
		}
	}
	tokens := theme.Flatten(resolved, tf.Categories...)

	if tf.Changed {
		changed := make(map[string]bool)
		for _, p := range theme.Changed(theme.Default(), resolved) {
			changed[p] = true
		}
		kept := make([]theme.Token, 0, len(changed))
		for _, t := range tokens {
			if changed[t.Path] {
				kept = append(kept, t)
				delete(changed, t.Path)
			}
		}
		// What is left was dropped by a category override.
		for p := range changed {
			if inCategories(p, tf.Categories) {
				kept = append(kept, theme.Token{Path: p, Value: "(removed)"})
			}
		}
		sort.Slice(kept, func(i, j int) bool { return kept[i].Path < kept[j].Path })
		tokens = kept
		if len(tokens) == 0 {
			output.Info("theme matches the defaults")
		}
	}

	return cmdutil.WriteResult(cfg, tokens, func(w io.Writer) error {
		if len(tokens) == 0 {
			return nil
		}
		tbl := output.NewTable("TOKEN", "VALUE")
		for _, t := range tokens {
			tbl.Row(t.Path, t.Value)
		}
		_, err := fmt.Fprintln(w, tbl.String())
		return err
	})
}

func inCategories(path string, categories []string) bool {
	if len(categories) == 0 {
		return true
	}
	for _, c := range categories {
		if path == c || strings.HasPrefix(path, c+".") {
			return true
		}
	}
	return false
}
