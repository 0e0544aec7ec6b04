package content

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lyonhq/twscan/internal/config"
	"github.com/lyonhq/twscan/internal/testutil"
)

func loadProject(t *testing.T) (string, *config.BuildConfig) {
	t.Helper()
	dir := testutil.WriteProject(t)
	cfg, err := config.Load(filepath.Join(dir, "tailwind.config.js"))
	require.NoError(t, err)
	return dir, cfg
}

func TestFiles_StockConfig(t *testing.T) {
	_, cfg := loadProject(t)

	s, err := NewScanner(cfg)
	require.NoError(t, err)

	files, err := s.Files(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{
		"core/templates/core/course_detail.html",
		"static/js/main.js",
		"templates/base.html",
	}, files)
}

func TestFiles_Exclusions(t *testing.T) {
	dir, cfg := loadProject(t)
	testutil.WriteFile(t, dir, "static/js/vendor/lib.js", "var x = 'vendor-only'")

	s, err := NewScanner(cfg)
	require.NoError(t, err)
	files, err := s.Files(context.Background())
	require.NoError(t, err)
	assert.Contains(t, files, "static/js/vendor/lib.js")

	cfg.Content = append(cfg.Content, "!./static/js/vendor/**")
	s, err = NewScanner(cfg)
	require.NoError(t, err)
	files, err = s.Files(context.Background())
	require.NoError(t, err)
	assert.NotContains(t, files, "static/js/vendor/lib.js")
	assert.Contains(t, files, "static/js/main.js")
}

func TestFiles_SkipsNodeModules(t *testing.T) {
	dir, cfg := loadProject(t)
	testutil.WriteFile(t, dir, "static/js/node_modules/pkg/index.js", "x")

	s, err := NewScanner(cfg)
	require.NoError(t, err)
	files, err := s.Files(context.Background())
	require.NoError(t, err)
	assert.NotContains(t, files, "static/js/node_modules/pkg/index.js")

	cfg.Content = []string{"./static/js/node_modules/**/*.js"}
	s, err = NewScanner(cfg)
	require.NoError(t, err)
	files, err = s.Files(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"static/js/node_modules/pkg/index.js"}, files)
}

func TestFiles_MissingBaseAndOverlap(t *testing.T) {
	_, cfg := loadProject(t)
	cfg.Content = []string{
		"./templates/**/*.html",
		"./templates/*.html",
		"./missing/**/*.html",
		"./{templates,static}/**/*.{html,js}",
	}

	s, err := NewScanner(cfg)
	require.NoError(t, err)
	files, err := s.Files(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"static/js/main.js", "templates/base.html"}, files)
}

func TestFiles_EmptyContent(t *testing.T) {
	_, cfg := loadProject(t)
	cfg.Content = []string{}

	s, err := NewScanner(cfg)
	require.NoError(t, err)
	files, err := s.Files(context.Background())
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestFiles_Cancelled(t *testing.T) {
	_, cfg := loadProject(t)
	s, err := NewScanner(cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Files(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewScanner_InvalidPattern(t *testing.T) {
	cfg := config.DefaultBuildConfig()
	cfg.Content = []string{"./templates/[/*.html"}
	_, err := NewScanner(cfg)
	assert.Error(t, err)
}

func TestMatches(t *testing.T) {
	dir, cfg := loadProject(t)
	cfg.Content = append(cfg.Content, "!./templates/admin/**")
	s, err := NewScanner(cfg)
	require.NoError(t, err)

	assert.True(t, s.Matches(filepath.Join(dir, "templates", "base.html")))
	assert.True(t, s.Matches(filepath.Join(dir, "templates", "new", "page.html")))
	assert.False(t, s.Matches(filepath.Join(dir, "templates", "admin", "page.html")))
	assert.False(t, s.Matches(filepath.Join(dir, "static", "css", "input.css")))
	assert.False(t, s.Matches(filepath.Join(dir, "core", "views.py")))
	assert.Equal(t, dir, s.Root())
}

func TestMatches_LaterPatternNamesSkippedDir(t *testing.T) {
	dir, cfg := loadProject(t)
	testutil.WriteFile(t, dir, "node_modules/lib/a.html", `<p class="m-1"></p>`)
	testutil.WriteFile(t, dir, "node_modules/other/b.html", `<p class="m-2"></p>`)
	cfg.Content = []string{"./**/*.html", "./node_modules/lib/**/*.html"}
	s, err := NewScanner(cfg)
	require.NoError(t, err)

	files, err := s.Files(context.Background())
	require.NoError(t, err)
	assert.Contains(t, files, "node_modules/lib/a.html")
	assert.NotContains(t, files, "node_modules/other/b.html")

	for _, f := range files {
		assert.True(t, s.Matches(filepath.Join(dir, filepath.FromSlash(f))), f)
	}
	assert.False(t, s.Matches(filepath.Join(dir, "node_modules", "other", "b.html")))
}

func TestSkipped(t *testing.T) {
	tests := []struct {
		match   string
		pattern string
		want    bool
	}{
		{"a.html", "**/*.html", false},
		{"src/a.html", "**/*.html", false},
		{"node_modules/x/a.html", "**/*.html", true},
		{"node_modules/x/a.html", "node_modules/**/*.html", false},
		{"pkg/node_modules/a.html", "**/node_modules/*.html", false},
		{"node_modules/x/a.html", "node_modules_old/**/*.html", true},
		{".git/hooks/a.html", ".github/**/*.html", true},
		{".github/a.html", ".github/**/*.html", false},
	}

	for _, tt := range tests {
		t.Run(tt.match+" "+tt.pattern, func(t *testing.T) {
			assert.Equal(t, tt.want, skipped(tt.match, tt.pattern))
		})
	}
}

func TestWatchable(t *testing.T) {
	dir, cfg := loadProject(t)
	cfg.Content = append(cfg.Content, "./vendor/ui/**/*.html")
	s, err := NewScanner(cfg)
	require.NoError(t, err)

	tests := []struct {
		rel  string
		want bool
	}{
		{"templates", true},
		{"templates/partials", true},
		{"core", true},
		{"core/templates/core", true},
		{"static", true},
		{"static/css", false},
		{"vendor", true},
		{"vendor/ui/cards", true},
		{"vendor/other", false},
		{"templates/node_modules", false},
		{"node_modules", false},
		{"node_modules/x", false},
		{".venv", false},
	}

	for _, tt := range tests {
		t.Run(tt.rel, func(t *testing.T) {
			assert.Equal(t, tt.want, s.watchable(filepath.Join(dir, filepath.FromSlash(tt.rel))))
		})
	}
}
