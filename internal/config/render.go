package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/ast"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/format"
	"gopkg.in/yaml.v3"
)

// Render serializes cfg in the given format. Unknown keys held in Extra are
// not rendered.
func Render(cfg *BuildConfig, f Format) ([]byte, error) {
	doc := cfg.Document()

	switch f {
	case FormatJS:
		return renderJS(doc), nil

	case FormatCUE:
		return renderCUE(doc)

	case FormatJSON:
		b, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encoding JSON: %w", err)
		}
		return append(b, '\n'), nil

	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("encoding YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encoding YAML: %w", err)
		}
		return buf.Bytes(), nil

	default:
		return nil, fmt.Errorf("unknown config format %q", f)
	}
}

func renderCUE(doc Document) ([]byte, error) {
	ctx := cuecontext.New()
	v := ctx.Encode(doc)
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("encoding CUE: %w", err)
	}

	node := v.Syntax(cue.Final(), cue.Concrete(true))
	if st, ok := node.(*ast.StructLit); ok {
		node = &ast.File{Decls: st.Elts}
	}

	b, err := format.Node(node)
	if err != nil {
		return nil, fmt.Errorf("formatting CUE: %w", err)
	}
	return b, nil
}

var jsIdent = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

type jsField struct {
	key   string
	value string
}

// renderJS writes the CommonJS module layout used by the framework's own
// scaffolding: two-space indent and trailing commas.
func renderJS(doc Document) []byte {
	var fields []jsField

	fields = append(fields, jsField{"content", jsValue(doc.Content, 1)})

	var themeFields []jsField
	keys := make([]string, 0, len(doc.Theme))
	for k := range doc.Theme {
		if k != "extend" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		themeFields = append(themeFields, jsField{k, jsValue(doc.Theme[k], 2)})
	}
	themeFields = append(themeFields, jsField{"extend", jsValue(doc.Theme["extend"], 2)})
	fields = append(fields, jsField{"theme", jsObject(themeFields, 1)})

	plugins := make([]string, 0, len(doc.Plugins))
	for _, p := range doc.Plugins {
		plugins = append(plugins, "require("+quote(p)+")")
	}
	fields = append(fields, jsField{"plugins", jsList(plugins, 1)})

	if doc.DarkMode != nil {
		fields = append(fields, jsField{"darkMode", jsValue(doc.DarkMode, 1)})
	}
	if len(doc.Safelist) > 0 {
		fields = append(fields, jsField{"safelist", jsValue(doc.Safelist, 1)})
	}
	if len(doc.Blocklist) > 0 {
		fields = append(fields, jsField{"blocklist", jsValue(doc.Blocklist, 1)})
	}
	if doc.Prefix != "" {
		fields = append(fields, jsField{"prefix", quote(doc.Prefix)})
	}
	if doc.Important != nil {
		fields = append(fields, jsField{"important", jsValue(doc.Important, 1)})
	}

	var buf bytes.Buffer
	buf.WriteString("/** @type {import('tailwindcss').Config} */\n")
	buf.WriteString("module.exports = ")
	buf.WriteString(jsObject(fields, 0))
	buf.WriteString("\n")
	return buf.Bytes()
}

func jsValue(v any, depth int) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return quote(t)
	case bool:
		return fmt.Sprintf("%t", t)
	case []string:
		items := make([]string, len(t))
		for i, s := range t {
			items[i] = quote(s)
		}
		return jsList(items, depth)
	case []any:
		items := make([]string, len(t))
		for i, e := range t {
			items[i] = jsValue(e, depth+1)
		}
		return jsList(items, depth)
	case ContentFiles:
		return jsObject([]jsField{
			{"relative", fmt.Sprintf("%t", t.Relative)},
			{"files", jsValue(t.Files, depth+1)},
		}, depth)
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fields := make([]jsField, len(keys))
		for i, k := range keys {
			fields[i] = jsField{k, jsValue(t[k], depth+1)}
		}
		return jsObject(fields, depth)
	default:
		return fmt.Sprintf("%v", t)
	}
}

func jsList(items []string, depth int) string {
	if len(items) == 0 {
		return "[]"
	}
	indent := strings.Repeat("  ", depth+1)
	var sb strings.Builder
	sb.WriteString("[\n")
	for _, item := range items {
		sb.WriteString(indent)
		sb.WriteString(item)
		sb.WriteString(",\n")
	}
	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString("]")
	return sb.String()
}

func jsObject(fields []jsField, depth int) string {
	if len(fields) == 0 {
		return "{}"
	}
	indent := strings.Repeat("  ", depth+1)
	var sb strings.Builder
	sb.WriteString("{\n")
	for _, f := range fields {
		key := f.key
		if !jsIdent.MatchString(key) {
			key = quote(key)
		}
		sb.WriteString(indent)
		sb.WriteString(key)
		sb.WriteString(": ")
		sb.WriteString(f.value)
		sb.WriteString(",\n")
	}
	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString("}")
	return sb.String()
}
