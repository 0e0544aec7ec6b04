package config

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/lyonhq/twscan/internal/errors"
	"github.com/lyonhq/twscan/internal/output"
	"github.com/lyonhq/twscan/internal/testutil"
)

func TestConfigVet_Valid(t *testing.T) {
	path := projectConfig(t)

	stdout, _, err := execute(t, globalsFor(path, output.FormatText), "vet")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Configuration is valid")
	assert.NotContains(t, stdout, "warning")
}

func TestConfigVet_WarningsDoNotFail(t *testing.T) {
	path := testutil.WriteFile(t, t.TempDir(), "tailwind.config.js", `module.exports = {
  content: ["./templates/**/*.html", "./templates/**/*.html"],
  plugins: ["tailwindcss-animate"],
}
`)

	stdout, _, err := execute(t, globalsFor(path, output.FormatText), "vet")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Configuration is valid")
	assert.Contains(t, stdout, "2 warnings")
	assert.Contains(t, stdout, "tailwindcss-animate")
}

func TestConfigVet_Errors(t *testing.T) {
	path := testutil.WriteFile(t, t.TempDir(), "tailwind.config.json",
		`{"content": ["./templates/[a-.html"]}`)

	stdout, _, err := execute(t, globalsFor(path, output.FormatJSON), "vet")
	require.Error(t, err)
	assert.Equal(t, oerrors.ExitValidationError, exitCode(t, err))

	var report vetReport
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.False(t, report.Valid)
	require.NotEmpty(t, report.Issues)
	assert.Equal(t, "content[0]", report.Issues[0].Field)
}

func TestConfigVet_ParseError(t *testing.T) {
	path := testutil.WriteFile(t, t.TempDir(), "tailwind.config.js",
		"const globs = require('./globs')\nmodule.exports = { content: globs }\n")

	_, _, err := execute(t, globalsFor(path, output.FormatText), "vet")
	require.Error(t, err)
	assert.Equal(t, oerrors.ExitValidationError, exitCode(t, err))
}

func TestConfigVet_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tailwind.config.js")

	_, _, err := execute(t, globalsFor(path, output.FormatText), "vet")
	require.Error(t, err)
	assert.Equal(t, oerrors.ExitNotFound, exitCode(t, err))
}
