// Package config loads, normalizes and validates the build configuration of
// a utility-first CSS framework, and the CLI's own settings.
package config

import (
	"path/filepath"
	"reflect"
)

// Format identifies the syntax of a build configuration file.
type Format string

const (
	// FormatJS is a static CommonJS or ESM object literal.
	FormatJS Format = "js"

	// FormatCUE is native CUE.
	FormatCUE Format = "cue"

	// FormatJSON is JSON.
	FormatJSON Format = "json"

	// FormatYAML is YAML.
	FormatYAML Format = "yaml"
)

// Formats lists every supported format in discovery order.
func Formats() []Format {
	return []Format{FormatJS, FormatCUE, FormatJSON, FormatYAML}
}

// BuildConfig is the normalized build configuration.
// It is constructed once by the loader and treated as read-only afterwards.
type BuildConfig struct {
	// Content holds the glob patterns of files scanned for class names.
	// A leading "!" excludes matches.
	Content []string

	// Relative is set by the object form of content. Patterns are always
	// resolved against the config file's directory; the flag is kept so the
	// config renders back unchanged.
	Relative bool

	// Theme holds design-token overrides and extensions.
	Theme Theme

	// Plugins holds plugin references in declaration order.
	Plugins []string

	// DarkMode is "media", "class" or "selector"; empty means the default.
	DarkMode string

	// DarkModeSelector is the custom selector of the list form of darkMode.
	DarkModeSelector string

	// Safelist holds classes that are always emitted.
	Safelist []string

	// Blocklist holds classes that are never emitted.
	Blocklist []string

	// Prefix is prepended to every utility class.
	Prefix string

	// Important is a bool or a selector string; nil when unset.
	Important any

	// Extra holds unrecognized top-level keys.
	Extra map[string]any

	// Path is the absolute path of the source file; empty for built configs.
	Path string

	// Format is the syntax the config was parsed from.
	Format Format
}

// Theme splits theme keys the way the framework applies them.
type Theme struct {
	// Extend is merged into the default tokens per category.
	Extend map[string]any

	// Override replaces default categories wholesale.
	Override map[string]any
}

// DefaultContent is the content list of the project's stock configuration.
var DefaultContent = []string{
	"./templates/**/*.html",
	"./core/templates/**/*.html",
	"./static/js/**/*.js",
}

// DefaultBuildConfig returns the project's stock configuration: three content
// globs, an empty theme extension and no plugins.
func DefaultBuildConfig() *BuildConfig {
	content := make([]string, len(DefaultContent))
	copy(content, DefaultContent)

	return &BuildConfig{
		Content: content,
		Theme: Theme{
			Extend:   map[string]any{},
			Override: map[string]any{},
		},
		Plugins: []string{},
		Format:  FormatJS,
	}
}

// Clone returns a deep copy of the configuration.
func (c *BuildConfig) Clone() *BuildConfig {
	if c == nil {
		return nil
	}

	out := *c
	out.Content = cloneStrings(c.Content)
	out.Plugins = cloneStrings(c.Plugins)
	out.Safelist = cloneStrings(c.Safelist)
	out.Blocklist = cloneStrings(c.Blocklist)
	out.Theme = Theme{
		Extend:   CloneMap(c.Theme.Extend),
		Override: CloneMap(c.Theme.Override),
	}
	out.Important = CloneValue(c.Important)
	out.Extra = CloneMap(c.Extra)
	return &out
}

// Equal reports whether two configurations are structurally identical.
// Path and Format are ignored so the same settings compare equal across files.
func Equal(a, b *BuildConfig) bool {
	if a == nil || b == nil {
		return a == b
	}
	return reflect.DeepEqual(a.Document(), b.Document()) &&
		reflect.DeepEqual(normalizeMap(a.Extra), normalizeMap(b.Extra))
}

// Dir returns the directory content patterns are resolved against.
// Configs without a path resolve against the working directory.
func (c *BuildConfig) Dir() string {
	if c.Path == "" {
		return "."
	}
	return filepath.Dir(c.Path)
}

// Document is the ordered, serializable view of a BuildConfig.
type Document struct {
	Content   any            `json:"content" yaml:"content"`
	Theme     map[string]any `json:"theme" yaml:"theme"`
	Plugins   []string       `json:"plugins" yaml:"plugins"`
	DarkMode  any            `json:"darkMode,omitempty" yaml:"darkMode,omitempty"`
	Safelist  []string       `json:"safelist,omitempty" yaml:"safelist,omitempty"`
	Blocklist []string       `json:"blocklist,omitempty" yaml:"blocklist,omitempty"`
	Prefix    string         `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Important any            `json:"important,omitempty" yaml:"important,omitempty"`
}

// ContentFiles is the object form of content.
type ContentFiles struct {
	Files    []string `json:"files" yaml:"files"`
	Relative bool     `json:"relative,omitempty" yaml:"relative,omitempty"`
}

// Document returns the serializable view with empty collections materialized,
// so the stock config renders as content/theme.extend/plugins with [] and {}.
func (c *BuildConfig) Document() Document {
	content := cloneStrings(c.Content)
	if content == nil {
		content = []string{}
	}

	var contentDoc any = content
	if c.Relative {
		contentDoc = ContentFiles{Files: content, Relative: true}
	}

	theme := CloneMap(c.Theme.Override)
	if theme == nil {
		theme = map[string]any{}
	}
	extend := CloneMap(c.Theme.Extend)
	if extend == nil {
		extend = map[string]any{}
	}
	theme["extend"] = extend

	plugins := cloneStrings(c.Plugins)
	if plugins == nil {
		plugins = []string{}
	}

	var darkMode any
	switch {
	case c.DarkModeSelector != "":
		darkMode = []string{c.DarkMode, c.DarkModeSelector}
	case c.DarkMode != "":
		darkMode = c.DarkMode
	}

	return Document{
		Content:   contentDoc,
		Theme:     theme,
		Plugins:   plugins,
		DarkMode:  darkMode,
		Safelist:  nonEmpty(c.Safelist),
		Blocklist: nonEmpty(c.Blocklist),
		Prefix:    c.Prefix,
		Important: CloneValue(c.Important),
	}
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func nonEmpty(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	return cloneStrings(in)
}

// CloneMap deep-copies a decoded configuration map.
func CloneMap(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = CloneValue(v)
	}
	return out
}

// CloneValue deep-copies maps and slices of a decoded configuration value.
func CloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return CloneMap(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = CloneValue(e)
		}
		return out
	case []string:
		return cloneStrings(t)
	default:
		return v
	}
}

// normalizeMap treats nil and empty maps as equal.
func normalizeMap(m map[string]any) map[string]any {
	if len(m) == 0 {
		return nil
	}
	return m
}
