package cmdutil

import (
	"github.com/lyonhq/twscan/internal/cmdtypes"
	"github.com/lyonhq/twscan/internal/config"
	"github.com/lyonhq/twscan/internal/content"
	oerrors "github.com/lyonhq/twscan/internal/errors"
	"github.com/lyonhq/twscan/internal/output"
)

// Exit wraps err in an ExitError carrying the exit code for its sentinel.
func Exit(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*oerrors.ExitError); ok {
		return err
	}
	return oerrors.NewExitError(err, oerrors.ExitCodeFromError(err))
}

// LoadBuildConfig loads the build config resolved at startup.
func LoadBuildConfig(cfg *cmdtypes.GlobalConfig) (*config.BuildConfig, error) {
	if cfg.ResolveErr != nil {
		return nil, Exit(cfg.ResolveErr)
	}
	bc, err := config.Load(cfg.ConfigPath)
	if err != nil {
		return nil, Exit(err)
	}
	return bc, nil
}

// LoadValidBuildConfig loads the build config, logs validation warnings and
// fails on validation errors.
func LoadValidBuildConfig(cfg *cmdtypes.GlobalConfig) (*config.BuildConfig, error) {
	bc, err := LoadBuildConfig(cfg)
	if err != nil {
		return nil, err
	}

	issues := config.Validate(bc)
	LogIssues(issues)
	if err := issues.Err(); err != nil {
		return nil, &oerrors.ExitError{Err: err, Code: oerrors.ExitValidationError, Printed: true}
	}
	return bc, nil
}

// LogIssues writes validation issues to the log.
func LogIssues(issues config.Issues) {
	for _, i := range issues {
		switch i.Severity {
		case config.SeverityError:
			output.Error(i.Message, "field", i.Field)
		default:
			output.Warn(i.Message, "field", i.Field)
		}
	}
}

// NewScanner creates a content scanner honouring the CLI's concurrency.
func NewScanner(cfg *cmdtypes.GlobalConfig, bc *config.BuildConfig, opts ...content.Option) (*content.Scanner, error) {
	opts = append([]content.Option{content.WithConcurrency(cfg.Concurrency)}, opts...)
	s, err := content.NewScanner(bc, opts...)
	if err != nil {
		return nil, Exit(oerrors.NewValidationError(err.Error(), bc.Path, "content", ""))
	}
	return s, nil
}
