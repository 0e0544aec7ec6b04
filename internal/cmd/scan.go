package cmd

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"
	"sync/atomic"

	"github.com/spf13/cobra"

	"github.com/lyonhq/twscan/internal/cmdtypes"
	"github.com/lyonhq/twscan/internal/cmdutil"
	"github.com/lyonhq/twscan/internal/config"
	"github.com/lyonhq/twscan/internal/content"
	"github.com/lyonhq/twscan/internal/output"
)

// NewScanCmd creates the scan command.
func NewScanCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var sf cmdutil.ScanFlags

	c := &cobra.Command{
		Use:   "scan",
		Short: "Extract the class names the build would keep",
		Long: `Read every file matched by the content globs and list the class-name
candidates found in them. The prefix, safelist and blocklist settings of the
config are applied.

Examples:
  # List classes
  twscan scan

  # Show where each class was found
  twscan scan --sources

  # Rescan whenever a template or the config changes
  twscan scan --watch`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runScan(c.Context(), cfg, &sf)
		},
	}

	sf.AddTo(c)
	return c
}

func runScan(ctx context.Context, cfg *cmdtypes.GlobalConfig, sf *cmdutil.ScanFlags) error {
	bc, err := cmdutil.LoadValidBuildConfig(cfg)
	if err != nil {
		return err
	}

	cache, err := content.NewCache(content.DefaultCacheSize)
	if err != nil {
		return cmdutil.Exit(err)
	}

	scanner, err := cmdutil.NewScanner(cfg, bc, content.WithCache(cache), content.WithDebounce(sf.Debounce))
	if err != nil {
		return err
	}

	var res *content.Result
	err = output.RunWithSpinner(ctx, func(ctx context.Context) error {
		var scanErr error
		res, scanErr = scanner.Scan(ctx)
		return scanErr
	}, output.WithTitle("Scanning content"))
	if err != nil {
		return cmdutil.Exit(err)
	}
	if err := writeScanResult(cfg, sf, res); err != nil {
		return err
	}

	if !sf.Watch {
		return nil
	}
	return watchScan(ctx, cfg, sf, bc, cache)
}

// watchScan rescans on every debounced change until ctx is cancelled. A
// change to the config file reloads it; an invalid config keeps the previous
// one in effect.
func watchScan(ctx context.Context, cfg *cmdtypes.GlobalConfig, sf *cmdutil.ScanFlags, bc *config.BuildConfig, cache *content.Cache) error {
	for {
		scanner, err := cmdutil.NewScanner(cfg, bc, content.WithCache(cache), content.WithDebounce(sf.Debounce))
		if err != nil {
			return err
		}
		output.Info("watching for changes", "root", scanner.Root())

		wctx, cancel := context.WithCancel(ctx)
		var reload atomic.Bool

		err = scanner.Watch(wctx, func(paths []string) {
			if slices.Contains(paths, bc.Path) {
				reload.Store(true)
				cancel()
				return
			}
			for _, p := range paths {
				rel, _ := filepath.Rel(scanner.Root(), p)
				output.FileLogger(filepath.ToSlash(rel)).Info("changed")
			}
			res, err := scanner.Scan(wctx)
			if err != nil {
				output.Error("rescan failed", "err", err)
				return
			}
			if err := writeScanResult(cfg, sf, res); err != nil {
				output.Error("writing scan result", "err", err)
			}
		})
		cancel()
		if err != nil {
			return cmdutil.Exit(err)
		}
		if ctx.Err() != nil || !reload.Load() {
			return nil
		}

		next, err := config.Load(bc.Path)
		if err == nil {
			issues := config.Validate(next)
			cmdutil.LogIssues(issues)
			err = issues.Err()
		}
		if err != nil {
			output.Error("config reload failed; keeping the previous config", "path", bc.Path, "err", err)
		} else {
			output.Info("config reloaded", "path", bc.Path)
			bc = next
		}

		rescanner, err := cmdutil.NewScanner(cfg, bc, content.WithCache(cache))
		if err != nil {
			return err
		}
		res, err := rescanner.Scan(ctx)
		if err != nil {
			return cmdutil.Exit(err)
		}
		if err := writeScanResult(cfg, sf, res); err != nil {
			return err
		}
	}
}

func writeScanResult(cfg *cmdtypes.GlobalConfig, sf *cmdutil.ScanFlags, res *content.Result) error {
	output.Info("scan complete",
		"files", cmdutil.Pluralize(len(res.Files), "file", "files"),
		"classes", cmdutil.Pluralize(len(res.Classes), "class", "classes"),
	)

	view := *res
	if !sf.Sources {
		view.Sources = nil
	}

	return cmdutil.WriteResult(cfg, view, func(w io.Writer) error {
		if !sf.Sources {
			for _, c := range res.Classes {
				if _, err := fmt.Fprintln(w, c); err != nil {
					return err
				}
			}
			return nil
		}

		tbl := output.NewTable("CLASS", "FILES")
		for _, c := range res.Classes {
			files := res.Sources[c]
			if len(files) == 0 {
				tbl.Row(c, output.StyleDim.Render("(safelist)"))
				continue
			}
			tbl.Row(c, strings.Join(files, "\n"))
		}
		_, err := fmt.Fprintln(w, tbl.String())
		return err
	})
}
