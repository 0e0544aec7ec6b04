// Package cmdtypes provides shared types for the cmd package and its sub-packages.
// It is separate from internal/cmd to avoid import cycles between internal/cmd
// and its sub-packages (internal/cmd/config).
package cmdtypes

import (
	"github.com/lyonhq/twscan/internal/config"
	oerrors "github.com/lyonhq/twscan/internal/errors"
	"github.com/lyonhq/twscan/internal/output"
)

// GlobalConfig holds CLI-wide configuration resolved during PersistentPreRunE.
// It is populated once at startup and passed explicitly into every sub-command
// constructor.
type GlobalConfig struct {
	Settings *config.Settings

	// ConfigPath is the resolved build config path and ConfigSource where it
	// came from. When nothing was found ResolveErr holds the reason and
	// commands that need a config report it.
	ConfigPath   string
	ConfigSource config.ConfigSource
	ResolveErr   error

	Output      output.Format
	Concurrency int
	Verbose     bool
}

// Exit codes, aliased from internal/errors.
const (
	ExitSuccess          = oerrors.ExitSuccess
	ExitGeneralError     = oerrors.ExitGeneralError
	ExitValidationError  = oerrors.ExitValidationError
	ExitPermissionDenied = oerrors.ExitPermissionDenied
	ExitNotFound         = oerrors.ExitNotFound
)

// ExitError is a type alias to internal/errors.ExitError.
type ExitError = oerrors.ExitError
