// Package cmd provides CLI command implementations.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lyonhq/twscan/internal/cmd/config"
	"github.com/lyonhq/twscan/internal/cmdtypes"
	buildconfig "github.com/lyonhq/twscan/internal/config"
	oerrors "github.com/lyonhq/twscan/internal/errors"
	"github.com/lyonhq/twscan/internal/output"
)

// NewRootCmd creates the root command for the twscan CLI.
func NewRootCmd() *cobra.Command {
	var (
		configFlag       string
		settingsFlag     string
		outputFormatFlag string
		verboseFlag      bool
		timestampsFlag   bool
		concurrencyFlag  int
	)

	// Populated in PersistentPreRunE and read by every sub-command at run time.
	cfg := &cmdtypes.GlobalConfig{}

	rootCmd := &cobra.Command{
		Use:   "twscan",
		Short: "Utility-first CSS build config inspector",
		Long: `twscan loads a tailwind.config.js style build configuration, validates it
and resolves what the build would see: the content files matched by its globs,
the class names extracted from them and the theme tokens after extension.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initializeGlobals(cmd, cfg, globalFlags{
				config:      configFlag,
				settings:    settingsFlag,
				output:      outputFormatFlag,
				verbose:     verboseFlag,
				timestamps:  timestampsFlag,
				concurrency: concurrencyFlag,
			})
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to the build config (env: "+buildconfig.EnvConfig+")")
	rootCmd.PersistentFlags().StringVar(&settingsFlag, "settings", "", "Path to the settings file (default: ~/.twscan/settings.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outputFormatFlag, "output", "o", "", "Output format: text, json, yaml (env: TWSCAN_OUTPUT)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&timestampsFlag, "timestamps", true, "Show timestamps in log output")
	rootCmd.PersistentFlags().IntVar(&concurrencyFlag, "concurrency", 0, "Files read in parallel (default: number of CPUs)")

	rootCmd.AddCommand(config.NewConfigCmd(cfg))
	rootCmd.AddCommand(NewFilesCmd(cfg))
	rootCmd.AddCommand(NewScanCmd(cfg))
	rootCmd.AddCommand(NewThemeCmd(cfg))
	rootCmd.AddCommand(NewVersionCmd(cfg))

	return rootCmd
}

type globalFlags struct {
	config      string
	settings    string
	output      string
	verbose     bool
	timestamps  bool
	concurrency int
}

// initializeGlobals loads settings, sets up logging and resolves the build
// config path.
func initializeGlobals(cmd *cobra.Command, cfg *cmdtypes.GlobalConfig, flags globalFlags) error {
	settings, err := buildconfig.NewSettingsLoader().Load(flags.settings)
	if err != nil {
		return oerrors.NewExitError(err, oerrors.ExitGeneralError)
	}
	resolved := settings.WithDefaults()

	// Timestamps: flag (if explicitly set) > settings > default (nil = true)
	logCfg := output.LogConfig{Verbose: flags.verbose}
	if cmd.Flags().Changed("timestamps") {
		logCfg.Timestamps = output.BoolPtr(flags.timestamps)
	} else if settings.Log.Timestamps != nil {
		logCfg.Timestamps = settings.Log.Timestamps
	}
	output.SetupLogging(logCfg)

	formatValue := resolved.Output
	if flags.output != "" {
		formatValue = flags.output
	}
	format, err := output.ParseFormat(formatValue)
	if err != nil {
		return oerrors.NewExitError(fmt.Errorf("--output: %w", err), oerrors.ExitGeneralError)
	}

	concurrency := resolved.Concurrency
	if flags.concurrency > 0 {
		concurrency = flags.concurrency
	}

	cfg.Settings = settings
	cfg.Output = format
	cfg.Concurrency = concurrency
	cfg.Verbose = flags.verbose

	wd, err := os.Getwd()
	if err != nil {
		return oerrors.NewExitError(fmt.Errorf("getting working directory: %w", err), oerrors.ExitGeneralError)
	}

	result, err := buildconfig.ResolveConfigPath(buildconfig.ResolveConfigPathOptions{
		FlagValue:     flags.config,
		SettingsValue: settings.Config,
		WorkDir:       wd,
	})
	if err != nil {
		// Commands that need a build config report this; config init does not.
		cfg.ResolveErr = err
		output.Debug("no build config resolved", "dir", wd)
	} else {
		cfg.ConfigPath = result.ConfigPath
		cfg.ConfigSource = result.Source
		result.LogResolved("config")
	}

	output.Debug("initializing CLI",
		"config", cfg.ConfigPath,
		"output", cfg.Output,
		"concurrency", cfg.Concurrency,
	)
	return nil
}
