// Package config provides CLI command implementations for the config command group.
package config

import (
	"github.com/spf13/cobra"

	"github.com/lyonhq/twscan/internal/cmdtypes"
)

// NewConfigCmd creates the config command group.
func NewConfigCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:   "config",
		Short: "Build configuration management",
		Long: `Create, validate, print and compare the build configuration.

The config path is resolved using precedence:
  --config flag > TWSCAN_CONFIG env > settings file > tailwind.config.* in the
  working directory`,
	}

	c.AddCommand(NewConfigInitCmd(cfg))
	c.AddCommand(NewConfigVetCmd(cfg))
	c.AddCommand(NewConfigShowCmd(cfg))
	c.AddCommand(NewConfigDiffCmd(cfg))

	return c
}
