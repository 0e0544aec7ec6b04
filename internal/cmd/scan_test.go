package cmd

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lyonhq/twscan/internal/content"
	"github.com/lyonhq/twscan/internal/testutil"
)

func TestScan_StockConfig(t *testing.T) {
	res := runCLI(t, testutil.WriteProject(t), "scan")
	require.NoError(t, res.err)

	classes := strings.Split(strings.TrimSpace(res.stdout), "\n")
	assert.Subset(t, classes, []string{
		"bg-gray-50", "md:px-8", "hover:text-blue-600", "lg:grid-cols-3",
		"bg-green-100", "bg-red-100", "w-[42rem]", "hidden", "shadow-lg",
	})
	assert.NotContains(t, classes, "not-scanned")
	assert.NotContains(t, classes, "not-a-template-class")
	assert.True(t, sortedStrings(classes), "classes are sorted")
	assert.Contains(t, res.logs, "scan complete")
}

func TestScan_JSONWithSources(t *testing.T) {
	res := runCLI(t, testutil.WriteProject(t), "scan", "--sources", "-o", "json")
	require.NoError(t, res.err)

	var out content.Result
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &out))
	assert.Len(t, out.Files, 3)
	assert.Equal(t, []string{"static/js/main.js"}, out.Sources["ring-2"])
	assert.ElementsMatch(t,
		[]string{"core/templates/core/course_detail.html", "templates/base.html"},
		out.Sources["font-bold"])
}

func TestScan_JSONWithoutSources(t *testing.T) {
	res := runCLI(t, testutil.WriteProject(t), "scan", "-o", "json")
	require.NoError(t, res.err)

	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &out))
	assert.NotContains(t, out, "sources")
}

func TestScan_SafelistAndBlocklist(t *testing.T) {
	dir := testutil.WriteProject(t)
	testutil.WriteFile(t, dir, "tailwind.config.js", `module.exports = {
  content: ["./templates/**/*.html"],
  safelist: ["text-center"],
  blocklist: ["antialiased"],
}
`)

	res := runCLI(t, dir, "scan", "--sources")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "text-center")
	assert.Contains(t, res.stdout, "(safelist)")
	assert.NotContains(t, res.stdout, "antialiased")
}

func sortedStrings(s []string) bool {
	for i := 1; i < len(s); i++ {
		if s[i-1] > s[i] {
			return false
		}
	}
	return true
}
