package cmdutil

import (
	"fmt"
	"io"

	"github.com/lyonhq/twscan/internal/cmdtypes"
	"github.com/lyonhq/twscan/internal/config"
	"github.com/lyonhq/twscan/internal/output"
)

// PrintIssues writes one aligned line per validation issue.
func PrintIssues(w io.Writer, issues config.Issues) error {
	for _, i := range issues {
		if _, err := fmt.Fprintln(w, output.FormatIssueLine(string(i.Severity), i.Field, i.Message)); err != nil {
			return err
		}
	}
	return nil
}

// WriteResult writes v in the configured output format; text is used for
// FormatText.
func WriteResult(cfg *cmdtypes.GlobalConfig, v any, text func(io.Writer) error) error {
	if err := output.Write(output.Writer(), cfg.Output, v, text); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// Pluralize returns "1 file" or "2 files".
func Pluralize(n int, singular, plural string) string {
	if n == 1 {
		return "1 " + singular
	}
	return fmt.Sprintf("%d %s", n, plural)
}
