package cmd

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/lyonhq/twscan/internal/errors"
	"github.com/lyonhq/twscan/internal/testutil"
)

func TestFiles_StockConfig(t *testing.T) {
	res := runCLI(t, testutil.WriteProject(t), "files")
	require.NoError(t, res.err)

	assert.Equal(t, []string{
		"core/templates/core/course_detail.html",
		"static/js/main.js",
		"templates/base.html",
	}, strings.Split(strings.TrimSpace(res.stdout), "\n"))
}

func TestFiles_JSON(t *testing.T) {
	res := runCLI(t, testutil.WriteProject(t), "files", "-o", "json")
	require.NoError(t, res.err)

	var files []string
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &files))
	assert.NotContains(t, files, "static/css/input.css")
	assert.NotContains(t, files, "core/views.py")
}

func TestFiles_Tree(t *testing.T) {
	res := runCLI(t, testutil.WriteProject(t), "files", "--tree")
	require.NoError(t, res.err)

	assert.Contains(t, res.stdout, "templates")
	assert.Contains(t, res.stdout, "base.html")
	assert.Contains(t, res.stdout, "main.js")
}

func TestFiles_ExcludePattern(t *testing.T) {
	dir := testutil.WriteProject(t)
	testutil.WriteFile(t, dir, "tailwind.config.js", `module.exports = {
  content: ["./templates/**/*.html", "./core/templates/**/*.html", "!./core/**"],
}
`)

	res := runCLI(t, dir, "files")
	require.NoError(t, res.err)
	assert.Equal(t, "templates/base.html\n", res.stdout)
}

func TestFiles_NoMatchesWarns(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "tailwind.config.js", `module.exports = { content: ["./src/**/*.vue"] }`)

	res := runCLI(t, dir, "files")
	require.NoError(t, res.err)
	assert.Empty(t, res.stdout)
	assert.Contains(t, res.logs, "content globs matched no files")
}

func TestFiles_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "tailwind.config.js", `module.exports = { content: "./templates/*.html" }`)

	res := runCLI(t, dir, "files")
	require.Error(t, res.err)
	assert.Equal(t, oerrors.ExitValidationError, exitCode(t, res.err))
}
