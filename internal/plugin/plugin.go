// Package plugin recognizes plugin references declared in a build config.
// Plugins are reported, never executed.
package plugin

import "sort"

// Plugin is a resolved plugin reference.
type Plugin struct {
	// Ref is the reference as written in the config.
	Ref string `json:"ref" yaml:"ref"`

	// Known reports whether Ref is a registered first-party plugin.
	Known bool `json:"known" yaml:"known"`

	// Description summarizes what a known plugin adds.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// registry holds the first-party plugins.
var registry = map[string]string{
	"@tailwindcss/forms":             "form element reset and base styles",
	"@tailwindcss/typography":        "prose classes for rendered HTML",
	"@tailwindcss/aspect-ratio":      "aspect-w-* and aspect-h-* utilities",
	"@tailwindcss/container-queries": "@container variants",
	"@tailwindcss/line-clamp":        "line-clamp-* utilities (built in since v3.3)",
}

// Known reports whether ref is a registered plugin.
func Known(ref string) bool {
	_, ok := registry[ref]
	return ok
}

// Registered returns the registered plugin references, sorted.
func Registered() []string {
	refs := make([]string, 0, len(registry))
	for ref := range registry {
		refs = append(refs, ref)
	}
	sort.Strings(refs)
	return refs
}

// Resolve resolves refs in order.
func Resolve(refs []string) []Plugin {
	plugins := make([]Plugin, 0, len(refs))
	for _, ref := range refs {
		desc, ok := registry[ref]
		plugins = append(plugins, Plugin{Ref: ref, Known: ok, Description: desc})
	}
	return plugins
}
