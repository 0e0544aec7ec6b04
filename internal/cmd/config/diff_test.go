package config

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lyonhq/twscan/internal/output"
	"github.com/lyonhq/twscan/internal/testutil"
)

func TestConfigDiff_StockAgainstDefault(t *testing.T) {
	stdout, _, err := execute(t, globalsFor(projectConfig(t), output.FormatText), "diff")
	require.NoError(t, err)
	assert.Equal(t, "No differences.\n", stdout)
}

func TestConfigDiff_AcrossFormats(t *testing.T) {
	other := testutil.WriteFile(t, t.TempDir(), "tailwind.config.yaml", `content:
  - ./templates/**/*.html
  - ./core/templates/**/*.html
  - ./static/js/**/*.js
theme:
  extend: {}
plugins: []
`)

	stdout, _, err := execute(t, globalsFor(projectConfig(t), output.FormatText), "diff", other)
	require.NoError(t, err)
	assert.Equal(t, "No differences.\n", stdout)
}

func TestConfigDiff_Changes(t *testing.T) {
	other := testutil.WriteFile(t, t.TempDir(), "tailwind.config.json",
		`{"content": ["./templates/**/*.html"], "plugins": ["@tailwindcss/typography"]}`)

	stdout, _, err := execute(t, globalsFor(projectConfig(t), output.FormatJSON), "diff", other)
	require.NoError(t, err)

	var report diffReport
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.False(t, report.Identical)
	assert.Contains(t, report.Diff, "content")
	assert.Contains(t, report.Diff, "@tailwindcss/typography")
}
