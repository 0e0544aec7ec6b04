package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	oerrors "github.com/lyonhq/twscan/internal/errors"
	"github.com/lyonhq/twscan/internal/plugin"
)

// Severity ranks a validation issue.
type Severity string

const (
	// SeverityError makes the configuration unusable.
	SeverityError Severity = "error"

	// SeverityWarning flags a likely mistake; the build still runs.
	SeverityWarning Severity = "warning"
)

// Issue is a single validation finding.
type Issue struct {
	Severity Severity `json:"severity" yaml:"severity"`
	Field    string   `json:"field" yaml:"field"`
	Message  string   `json:"message" yaml:"message"`
}

// Issues is an ordered list of findings.
type Issues []Issue

// HasErrors reports whether any issue has error severity.
func (is Issues) HasErrors() bool {
	for _, i := range is {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Warnings returns the warning-severity issues.
func (is Issues) Warnings() Issues {
	return is.filter(SeverityWarning)
}

// Errors returns the error-severity issues.
func (is Issues) Errors() Issues {
	return is.filter(SeverityError)
}

func (is Issues) filter(sev Severity) Issues {
	var out Issues
	for _, i := range is {
		if i.Severity == sev {
			out = append(out, i)
		}
	}
	return out
}

// Err returns a ValidationErrors for the error-severity issues, or nil.
func (is Issues) Err() error {
	errs := is.Errors()
	if len(errs) == 0 {
		return nil
	}
	out := make(ValidationErrors, 0, len(errs))
	for _, i := range errs {
		out = append(out, ValidationError{Field: i.Field, Message: i.Message})
	}
	return out
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString("config validation failed:\n")
	for _, err := range e {
		sb.WriteString(fmt.Sprintf("  %s: %s\n", err.Field, err.Message))
	}
	return sb.String()
}

// Unwrap lets errors.Is match ErrValidation.
func (e ValidationErrors) Unwrap() error {
	return oerrors.ErrValidation
}

var darkModes = map[string]bool{"media": true, "class": true, "selector": true}

// Validate checks rules the schema cannot express. The schema already ran for
// parsed configs; the type-level checks repeat here for configs built in code.
func Validate(cfg *BuildConfig) Issues {
	var issues Issues
	add := func(sev Severity, field, format string, args ...any) {
		issues = append(issues, Issue{Severity: sev, Field: field, Message: fmt.Sprintf(format, args...)})
	}

	includes := 0
	seen := make(map[string]int)
	for i, glob := range cfg.Content {
		field := fmt.Sprintf("content[%d]", i)
		pattern := strings.TrimPrefix(glob, "!")

		if strings.TrimSpace(pattern) == "" {
			add(SeverityError, field, "empty glob pattern")
			continue
		}
		if !doublestar.ValidatePattern(pattern) {
			add(SeverityError, field, "invalid glob pattern %q", glob)
			continue
		}
		if prev, ok := seen[glob]; ok {
			add(SeverityWarning, field, "duplicate of content[%d]", prev)
			continue
		}
		seen[glob] = i
		if !strings.HasPrefix(glob, "!") {
			includes++
		}
	}
	switch {
	case len(cfg.Content) == 0:
		add(SeverityWarning, "content", "no content globs configured; every utility class will be purged")
	case includes == 0 && !issues.HasErrors():
		add(SeverityWarning, "content", "content only has exclusion patterns; no files will be scanned")
	}

	seenPlugins := make(map[string]int)
	for i, ref := range cfg.Plugins {
		field := fmt.Sprintf("plugins[%d]", i)
		if strings.TrimSpace(ref) == "" {
			add(SeverityError, field, "empty plugin reference")
			continue
		}
		if prev, ok := seenPlugins[ref]; ok {
			add(SeverityWarning, field, "duplicate of plugins[%d]", prev)
			continue
		}
		seenPlugins[ref] = i
		if !plugin.Known(ref) {
			add(SeverityWarning, field, "%q is not a recognized plugin; it is reported but not applied", ref)
		}
	}

	if cfg.DarkMode != "" && !darkModes[cfg.DarkMode] {
		add(SeverityError, "darkMode", "must be one of media, class, selector (got %q)", cfg.DarkMode)
	}
	if cfg.DarkModeSelector != "" && cfg.DarkMode == "media" {
		add(SeverityError, "darkMode", "a custom selector requires class or selector mode")
	}

	switch cfg.Important.(type) {
	case nil, bool, string:
	default:
		add(SeverityError, "important", "must be a boolean or a selector string")
	}

	if cfg.Prefix != "" && strings.ContainsAny(cfg.Prefix, " \t\n:") {
		add(SeverityError, "prefix", "must not contain whitespace or ':'")
	}

	for _, key := range sortedKeys(cfg.Extra) {
		add(SeverityWarning, key, "unknown configuration key")
	}

	return issues
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
