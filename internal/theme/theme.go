// Package theme resolves design tokens: the built-in defaults with the build
// configuration's overrides and extensions applied.
package theme

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/lyonhq/twscan/internal/config"
)

// Tokens maps a category such as "colors" or "spacing" to its values.
type Tokens map[string]any

// Token is one leaf of a flattened token tree.
type Token struct {
	Path  string `json:"path" yaml:"path"`
	Value string `json:"value" yaml:"value"`
}

// Default returns a fresh copy of the built-in tokens.
func Default() Tokens {
	return Tokens{
		"colors":       defaultColors(),
		"spacing":      defaultSpacing(),
		"screens":      defaultScreens(),
		"borderRadius": defaultBorderRadius(),
		"fontFamily":   defaultFontFamily(),
		"fontSize":     defaultFontSize(),
	}
}

// Resolve applies a configured theme to the defaults. Categories set directly
// under theme replace the default category; categories under theme.extend are
// merged into it. Maps merge recursively, scalars and lists replace.
func Resolve(t config.Theme) Tokens {
	out := Default()

	for k, v := range t.Override {
		out[k] = config.CloneValue(v)
	}
	for k, v := range t.Extend {
		out[k] = merge(out[k], v)
	}
	return out
}

func merge(dst, src any) any {
	dm, dok := dst.(map[string]any)
	sm, sok := src.(map[string]any)
	if !dok || !sok {
		return config.CloneValue(src)
	}

	out := config.CloneMap(dm)
	for k, v := range sm {
		out[k] = merge(out[k], v)
	}
	return out
}

// Categories returns the sorted category names.
func (t Tokens) Categories() []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Flatten returns every leaf as a dotted path, sorted by path. When
// categories are given only those are included.
func Flatten(t Tokens, categories ...string) []Token {
	leaves := leavesOf(t, categories)

	out := make([]Token, 0, len(leaves))
	for path, v := range leaves {
		out = append(out, Token{Path: path, Value: FormatValue(v)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// Changed returns the sorted dotted paths whose value differs between base
// and resolved, including paths present in only one of them.
func Changed(base, resolved Tokens) []string {
	a := leavesOf(base, nil)
	b := leavesOf(resolved, nil)

	var paths []string
	for p, av := range a {
		if bv, ok := b[p]; !ok || !reflect.DeepEqual(av, bv) {
			paths = append(paths, p)
		}
	}
	for p := range b {
		if _, ok := a[p]; !ok {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)
	return paths
}

func leavesOf(t Tokens, categories []string) map[string]any {
	out := make(map[string]any)
	want := make(map[string]bool, len(categories))
	for _, c := range categories {
		want[c] = true
	}
	for k, v := range t {
		if len(want) > 0 && !want[k] {
			continue
		}
		collect(out, k, v)
	}
	return out
}

func collect(out map[string]any, prefix string, v any) {
	m, ok := v.(map[string]any)
	if !ok || len(m) == 0 {
		out[prefix] = v
		return
	}
	for k, child := range m {
		collect(out, prefix+"."+k, child)
	}
}

// FormatValue renders a token value on one line.
func FormatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	case []any:
		parts := make([]string, len(t))
		for i, e := range t {
			parts[i] = FormatValue(e)
		}
		return strings.Join(parts, ", ")
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = k + ": " + FormatValue(t[k])
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return fmt.Sprintf("%v", t)
	}
}
