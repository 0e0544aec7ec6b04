package config

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/lyonhq/twscan/internal/errors"
	"github.com/lyonhq/twscan/internal/testutil"
)

func TestParse_OriginalConfig(t *testing.T) {
	cfg, err := Parse("tailwind.config.js", []byte(testutil.OriginalConfigJS), FormatJS)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"./templates/**/*.html",
		"./core/templates/**/*.html",
		"./static/js/**/*.js",
	}, cfg.Content)
	assert.Empty(t, cfg.Theme.Extend)
	assert.NotNil(t, cfg.Theme.Extend)
	assert.Empty(t, cfg.Theme.Override)
	assert.Empty(t, cfg.Plugins)
	assert.Empty(t, cfg.Extra)
	assert.Equal(t, FormatJS, cfg.Format)

	assert.True(t, Equal(cfg, DefaultBuildConfig()))
	assert.Empty(t, Validate(cfg))
}

func TestLoad_Idempotent(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "tailwind.config.js", testutil.OriginalConfigJS)

	first, err := Load(path)
	require.NoError(t, err)
	second, err := Load(path)
	require.NoError(t, err)

	assert.Empty(t, cmp.Diff(first.Document(), second.Document()))
	assert.True(t, Equal(first, second))
	assert.Equal(t, path, first.Path)
	assert.Equal(t, dir, first.Dir())
}

func TestParse_EquivalentFormats(t *testing.T) {
	sources := map[Format]string{
		FormatCUE: `
content: [
	"./templates/**/*.html",
	"./core/templates/**/*.html",
	"./static/js/**/*.js",
]
theme: extend: {}
plugins: []
`,
		FormatJSON: `{
  "content": ["./templates/**/*.html", "./core/templates/**/*.html", "./static/js/**/*.js"],
  "theme": {"extend": {}},
  "plugins": []
}`,
		FormatYAML: `
content:
  - ./templates/**/*.html
  - ./core/templates/**/*.html
  - ./static/js/**/*.js
theme:
  extend: {}
plugins: []
`,
	}

	for format, src := range sources {
		t.Run(string(format), func(t *testing.T) {
			cfg, err := Parse("tailwind.config."+string(format), []byte(src), format)
			require.NoError(t, err)
			assert.True(t, Equal(cfg, DefaultBuildConfig()), cmp.Diff(DefaultBuildConfig().Document(), cfg.Document()))
		})
	}
}

func TestParse_ESMWithThemeAndPlugins(t *testing.T) {
	src := `import forms from '@tailwindcss/forms'
`
	_, err := Parse("tailwind.config.mjs", []byte(src), FormatJS)
	require.Error(t, err, "imports are dynamic")

	src = `/** @type {import('tailwindcss').Config} */
export default {
  content: ['./src/**/*.{html,js}', '!./src/vendor/**'],
  darkMode: ['class', '[data-theme="dark"]'],
  theme: {
    colors: {
      brand: {
        50: '#f0f9ff', // lightest
        DEFAULT: '#0ea5e9',
      },
    },
    extend: {
      spacing: { '128': '32rem' },
      fontFamily: { display: ["Inter", 'sans-serif'] },
    },
  },
  plugins: [
    require('@tailwindcss/forms'),
    require("@tailwindcss/typography"),
  ],
  safelist: ['bg-red-500'],
  prefix: 'tw-',
  important: '#app',
};
`
	cfg, err := Parse("tailwind.config.mjs", []byte(src), FormatJS)
	require.NoError(t, err)

	assert.Equal(t, []string{"./src/**/*.{html,js}", "!./src/vendor/**"}, cfg.Content)
	assert.Equal(t, "class", cfg.DarkMode)
	assert.Equal(t, `[data-theme="dark"]`, cfg.DarkModeSelector)
	assert.Equal(t, map[string]any{
		"brand": map[string]any{"50": "#f0f9ff", "DEFAULT": "#0ea5e9"},
	}, cfg.Theme.Override["colors"])
	assert.Equal(t, map[string]any{"128": "32rem"}, cfg.Theme.Extend["spacing"])
	assert.Equal(t, map[string]any{"display": []any{"Inter", "sans-serif"}}, cfg.Theme.Extend["fontFamily"])
	assert.Equal(t, []string{"@tailwindcss/forms", "@tailwindcss/typography"}, cfg.Plugins)
	assert.Equal(t, []string{"bg-red-500"}, cfg.Safelist)
	assert.Equal(t, "tw-", cfg.Prefix)
	assert.Equal(t, "#app", cfg.Important)
}

func TestParse_ContentObjectForm(t *testing.T) {
	src := `module.exports = {
  content: {
    relative: true,
    files: ["./templates/**/*.html"],
  },
}`
	cfg, err := Parse("tailwind.config.js", []byte(src), FormatJS)
	require.NoError(t, err)
	assert.Equal(t, []string{"./templates/**/*.html"}, cfg.Content)
	assert.True(t, cfg.Relative)
}

func TestParse_MissingContent(t *testing.T) {
	cfg, err := Parse("tailwind.config.js", []byte(`module.exports = { theme: { extend: {} } }`), FormatJS)
	require.NoError(t, err)
	assert.NotNil(t, cfg.Content)
	assert.Empty(t, cfg.Content)
	assert.Empty(t, cfg.Plugins)
}

func TestParse_UnderscoreKeys(t *testing.T) {
	src := `module.exports = {
  content: ["./templates/**/*.html"],
  theme: { extend: { colors: { _brand: '#fff', brand: { _dark: '#000' } } } },
}`
	cfg, err := Parse("tailwind.config.js", []byte(src), FormatJS)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"colors": map[string]any{
			"_brand": "#fff",
			"brand":  map[string]any{"_dark": "#000"},
		},
	}, cfg.Theme.Extend)
}

func TestParse_UnknownKeysKept(t *testing.T) {
	src := `module.exports = {
  content: ["./templates/**/*.html"],
  corePlugins: { preflight: false },
}`
	cfg, err := Parse("tailwind.config.js", []byte(src), FormatJS)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"preflight": false}, cfg.Extra["corePlugins"])
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		format   Format
		sentinel error
		contains string
	}{
		{
			name:     "function value",
			src:      "module.exports = {\n  content: [],\n  theme: { extend: ({ theme }) => ({}) },\n}",
			format:   FormatJS,
			sentinel: oerrors.ErrParse,
			contains: "static object literals",
		},
		{
			name:     "variable reference",
			src:      "module.exports = {\n  content: globs,\n}",
			format:   FormatJS,
			sentinel: oerrors.ErrParse,
			contains: "tailwind.config.js:2",
		},
		{
			name:     "unterminated string",
			src:      "module.exports = {\n  content: ['./a/**/*.html],\n}",
			format:   FormatJS,
			sentinel: oerrors.ErrParse,
			contains: "tailwind.config.js:2:13",
		},
		{
			name:     "interpolated template literal",
			src:      "module.exports = { content: [`${dir}/**/*.html`] }",
			format:   FormatJS,
			sentinel: oerrors.ErrParse,
			contains: "interpolation",
		},
		{
			name:     "content is a string",
			src:      `content: "./templates/**/*.html"`,
			format:   FormatCUE,
			sentinel: oerrors.ErrValidation,
			contains: "content",
		},
		{
			name:     "dark mode outside the allowed set",
			src:      "darkMode: dark\n",
			format:   FormatYAML,
			sentinel: oerrors.ErrValidation,
			contains: "darkMode",
		},
		{
			name:     "empty glob",
			src:      `{"content": [""]}`,
			format:   FormatJSON,
			sentinel: oerrors.ErrValidation,
			contains: "content",
		},
		{
			name:     "broken JSON",
			src:      `{"content": [}`,
			format:   FormatJSON,
			sentinel: oerrors.ErrParse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("tailwind.config."+string(tt.format), []byte(tt.src), tt.format)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.sentinel), "got %v", err)
			if tt.contains != "" {
				assert.Contains(t, err.Error(), tt.contains)
			}
		})
	}
}

func TestLoad_NotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "tailwind.config.js"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, oerrors.ErrNotFound))
	assert.Contains(t, err.Error(), "twscan config init")
}

func TestDetectFormat(t *testing.T) {
	tests := map[string]Format{
		"tailwind.config.js":   FormatJS,
		"tailwind.config.CJS":  FormatJS,
		"tailwind.config.mjs":  FormatJS,
		"tailwind.config.cue":  FormatCUE,
		"tailwind.config.json": FormatJSON,
		"tailwind.config.yml":  FormatYAML,
		"tailwind.config.yaml": FormatYAML,
	}
	for name, want := range tests {
		got, err := DetectFormat(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := DetectFormat("tailwind.config.ts")
	assert.True(t, errors.Is(err, oerrors.ErrParse))
}
