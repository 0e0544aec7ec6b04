package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cuejson "cuelang.org/go/encoding/json"
	cueyaml "cuelang.org/go/encoding/yaml"

	oerrors "github.com/lyonhq/twscan/internal/errors"
	"github.com/lyonhq/twscan/internal/output"
)

const hintStaticJS = "Only static object literals are supported: no functions, spreads, variables or computed values."

// DetectFormat maps a file extension to a Format.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".js", ".cjs", ".mjs":
		return FormatJS, nil
	case ".cue":
		return FormatCUE, nil
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", oerrors.NewParseError(
			fmt.Sprintf("unsupported config file extension %q", filepath.Ext(path)),
			path,
			"Use one of .js, .cjs, .mjs, .cue, .json, .yaml or .yml.",
		)
	}
}

// Load reads and parses the build configuration at path.
func Load(path string) (*BuildConfig, error) {
	abs, err := filepath.Abs(ExpandTilde(path))
	if err != nil {
		return nil, fmt.Errorf("resolving config path: %w", err)
	}

	format, err := DetectFormat(abs)
	if err != nil {
		return nil, err
	}

	src, err := os.ReadFile(abs)
	if err != nil {
		switch {
		case errors.Is(err, os.ErrNotExist):
			return nil, oerrors.NewNotFoundError("configuration file not found", abs,
				"Run 'twscan config init' to create a default configuration.")
		case errors.Is(err, os.ErrPermission):
			return nil, oerrors.NewPermissionError("configuration file is not readable", abs, "")
		default:
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	cfg, err := Parse(abs, src, format)
	if err != nil {
		return nil, err
	}
	cfg.Path = abs

	output.Debug("loaded build config",
		"path", abs,
		"format", format,
		"content", len(cfg.Content),
		"plugins", len(cfg.Plugins),
	)
	return cfg, nil
}

// Parse parses src in the given format, validates it against the embedded
// schema and normalizes it. name is used in positions and error messages.
func Parse(name string, src []byte, format Format) (*BuildConfig, error) {
	ctx := cuecontext.New()

	v, err := compile(ctx, name, src, format)
	if err != nil {
		return nil, err
	}

	def, err := compileSchema(ctx)
	if err != nil {
		return nil, err
	}

	unified := def.Unify(v)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, &oerrors.DetailError{
			Type:     "validation failed",
			Message:  strings.TrimSpace(cueerrors.Details(err, nil)),
			Location: cuePosition(err, name),
			Hint:     "The config must be an object with content, theme and plugins keys of the documented types.",
			Cause:    oerrors.ErrValidation,
		}
	}

	var raw map[string]any
	if err := unified.Decode(&raw); err != nil {
		return nil, oerrors.NewParseError(fmt.Sprintf("decoding config: %v", err), name, "")
	}

	cfg, err := fromMap(raw)
	if err != nil {
		return nil, oerrors.NewValidationError(err.Error(), name, "", "")
	}
	cfg.Format = format
	return cfg, nil
}

func compile(ctx *cue.Context, name string, src []byte, format Format) (cue.Value, error) {
	var v cue.Value

	switch format {
	case FormatJS:
		cueSrc, err := jsToCUE(src)
		if err != nil {
			var se *JSSyntaxError
			if errors.As(err, &se) {
				return v, oerrors.NewParseError(se.Message, fmt.Sprintf("%s:%d:%d", name, se.Line, se.Col), hintStaticJS)
			}
			return v, oerrors.NewParseError(err.Error(), name, hintStaticJS)
		}
		v = ctx.CompileBytes(cueSrc, cue.Filename(name))

	case FormatCUE:
		v = ctx.CompileBytes(src, cue.Filename(name))

	case FormatJSON:
		expr, err := cuejson.Extract(name, src)
		if err != nil {
			return v, oerrors.NewParseError(strings.TrimSpace(cueerrors.Details(err, nil)), cuePosition(err, name), "")
		}
		v = ctx.BuildExpr(expr)

	case FormatYAML:
		file, err := cueyaml.Extract(name, src)
		if err != nil {
			return v, oerrors.NewParseError(strings.TrimSpace(cueerrors.Details(err, nil)), cuePosition(err, name), "")
		}
		v = ctx.BuildFile(file)

	default:
		return v, oerrors.NewParseError(fmt.Sprintf("unknown config format %q", format), name, "")
	}

	if err := v.Err(); err != nil {
		hint := ""
		if format == FormatJS {
			hint = hintStaticJS
		}
		return v, oerrors.NewParseError(strings.TrimSpace(cueerrors.Details(err, nil)), cuePosition(err, name), hint)
	}
	return v, nil
}

// cuePosition returns the position of the first CUE error, or fallback.
func cuePosition(err error, fallback string) string {
	for _, e := range cueerrors.Errors(err) {
		if pos := e.Position(); pos.IsValid() {
			return pos.String()
		}
	}
	return fallback
}

// fromMap normalizes a decoded, schema-checked config object.
func fromMap(raw map[string]any) (*BuildConfig, error) {
	cfg := &BuildConfig{
		Content: []string{},
		Theme: Theme{
			Extend:   map[string]any{},
			Override: map[string]any{},
		},
		Plugins: []string{},
	}

	for key, val := range raw {
		var err error
		switch key {
		case "content":
			err = decodeContent(cfg, val)
		case "theme":
			err = decodeTheme(cfg, val)
		case "plugins":
			cfg.Plugins, err = toStrings(key, val)
		case "darkMode":
			err = decodeDarkMode(cfg, val)
		case "safelist":
			cfg.Safelist, err = toStrings(key, val)
		case "blocklist":
			cfg.Blocklist, err = toStrings(key, val)
		case "prefix":
			s, ok := val.(string)
			if !ok {
				err = fmt.Errorf("prefix: expected string, got %T", val)
			}
			cfg.Prefix = s
		case "important":
			cfg.Important = val
		default:
			if cfg.Extra == nil {
				cfg.Extra = make(map[string]any)
			}
			cfg.Extra[key] = val
		}
		if err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func decodeContent(cfg *BuildConfig, val any) error {
	switch t := val.(type) {
	case []any:
		globs, err := toStrings("content", t)
		if err != nil {
			return err
		}
		cfg.Content = globs
	case map[string]any:
		globs, err := toStrings("content.files", t["files"])
		if err != nil {
			return err
		}
		cfg.Content = globs
		if rel, ok := t["relative"].(bool); ok {
			cfg.Relative = rel
		}
	default:
		return fmt.Errorf("content: expected list or object, got %T", val)
	}
	return nil
}

func decodeTheme(cfg *BuildConfig, val any) error {
	m, ok := val.(map[string]any)
	if !ok {
		return fmt.Errorf("theme: expected object, got %T", val)
	}
	for k, v := range m {
		if k == "extend" {
			ext, ok := v.(map[string]any)
			if !ok {
				return fmt.Errorf("theme.extend: expected object, got %T", v)
			}
			if ext != nil {
				cfg.Theme.Extend = ext
			}
			continue
		}
		cfg.Theme.Override[k] = v
	}
	return nil
}

func decodeDarkMode(cfg *BuildConfig, val any) error {
	switch t := val.(type) {
	case string:
		cfg.DarkMode = t
	case []any:
		parts, err := toStrings("darkMode", t)
		if err != nil {
			return err
		}
		if len(parts) != 2 {
			return fmt.Errorf("darkMode: expected [mode, selector], got %d elements", len(parts))
		}
		cfg.DarkMode, cfg.DarkModeSelector = parts[0], parts[1]
	default:
		return fmt.Errorf("darkMode: expected string or list, got %T", val)
	}
	return nil
}

func toStrings(field string, val any) ([]string, error) {
	list, ok := val.([]any)
	if !ok {
		return nil, fmt.Errorf("%s: expected list, got %T", field, val)
	}
	out := make([]string, 0, len(list))
	for i, e := range list {
		s, ok := e.(string)
		if !ok {
			return nil, fmt.Errorf("%s[%d]: expected string, got %T", field, i, e)
		}
		out = append(out, s)
	}
	return out, nil
}
