package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	buildconfig "github.com/lyonhq/twscan/internal/config"
	oerrors "github.com/lyonhq/twscan/internal/errors"
	"github.com/lyonhq/twscan/internal/output"
	"github.com/lyonhq/twscan/internal/testutil"
)

type cliResult struct {
	stdout string
	logs   string
	err    error
}

// runCLI executes the root command in dir with an isolated HOME and captures
// command output and log lines.
func runCLI(t *testing.T, dir string, args ...string) cliResult {
	t.Helper()

	t.Setenv("HOME", t.TempDir())
	t.Setenv(buildconfig.EnvConfig, "")
	t.Chdir(dir)

	var stdout, logs bytes.Buffer
	restore := output.SetOutput(&stdout)
	t.Cleanup(restore)
	output.SetLogOutput(&logs)
	t.Cleanup(func() { output.SetLogOutput(os.Stderr) })

	root := NewRootCmd()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)

	err := root.ExecuteContext(context.Background())
	return cliResult{stdout: stdout.String(), logs: logs.String(), err: err}
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	var exitErr *oerrors.ExitError
	require.ErrorAs(t, err, &exitErr)
	return exitErr.Code
}

func TestNewRootCmd(t *testing.T) {
	root := NewRootCmd()

	assert.Equal(t, "twscan", root.Use)
	for _, name := range []string{"config", "settings", "output", "verbose", "timestamps", "concurrency"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(name), name)
	}

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"config", "files", "scan", "theme", "version"})
}

func TestRoot_InvalidOutputFormat(t *testing.T) {
	res := runCLI(t, testutil.WriteProject(t), "files", "-o", "xml")
	require.Error(t, res.err)
	assert.Equal(t, oerrors.ExitGeneralError, exitCode(t, res.err))
}

func TestRoot_NoConfigFound(t *testing.T) {
	res := runCLI(t, t.TempDir(), "files")
	require.Error(t, res.err)
	assert.Equal(t, oerrors.ExitNotFound, exitCode(t, res.err))
}

func TestRoot_ConfigFlagWins(t *testing.T) {
	project := testutil.WriteProject(t)
	other := t.TempDir()
	path := testutil.WriteFile(t, other, "site.config.json", `{"content": ["./pages/*.html"]}`)
	testutil.WriteFile(t, other, "pages/index.html", `<p class="italic">x</p>`)

	res := runCLI(t, project, "files", "--config", path, "-o", "json")
	require.NoError(t, res.err)

	var files []string
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &files))
	assert.Equal(t, []string{"pages/index.html"}, files)
}

func TestRoot_SettingsFileSuppliesConfig(t *testing.T) {
	project := testutil.WriteProject(t)
	settings := testutil.WriteFile(t, t.TempDir(), "settings.yaml",
		"config: "+project+"/tailwind.config.js\noutput: json\n")

	res := runCLI(t, t.TempDir(), "files", "--settings", settings)
	require.NoError(t, res.err)

	var files []string
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &files))
	assert.Len(t, files, 3)
}
