// Package content resolves the build configuration's content globs to files
// and extracts utility-class candidates from them.
package content

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/lyonhq/twscan/internal/config"
	"github.com/lyonhq/twscan/internal/output"
)

// skippedDirs are never descended into unless a pattern names them.
var skippedDirs = map[string]bool{
	".git":         true,
	".hg":          true,
	".svn":         true,
	"node_modules": true,
}

// Scanner matches files against a build configuration and extracts
// candidates from them. A Scanner is safe for concurrent use.
type Scanner struct {
	root       string
	configPath string

	includes []string
	excludes []string

	prefix    string
	safelist  []string
	blocklist []string

	concurrency int
	debounce    time.Duration
	cache       *Cache
	extract     func([]byte) []string
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithConcurrency bounds the number of files read at once.
func WithConcurrency(n int) Option {
	return func(s *Scanner) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithCache shares an extraction cache with the scanner.
func WithCache(c *Cache) Option {
	return func(s *Scanner) {
		s.cache = c
	}
}

// WithExtractor replaces the default candidate extractor.
func WithExtractor(fn func([]byte) []string) Option {
	return func(s *Scanner) {
		if fn != nil {
			s.extract = fn
		}
	}
}

// WithDebounce sets how long Watch waits for changes to settle.
func WithDebounce(d time.Duration) Option {
	return func(s *Scanner) {
		if d > 0 {
			s.debounce = d
		}
	}
}

// NewScanner creates a scanner for cfg. Content patterns are resolved
// against the directory of the config file.
func NewScanner(cfg *config.BuildConfig, opts ...Option) (*Scanner, error) {
	root, err := filepath.Abs(cfg.Dir())
	if err != nil {
		return nil, fmt.Errorf("resolving content root: %w", err)
	}

	s := &Scanner{
		root:        root,
		configPath:  cfg.Path,
		prefix:      cfg.Prefix,
		safelist:    cfg.Safelist,
		blocklist:   cfg.Blocklist,
		concurrency: runtime.NumCPU(),
		debounce:    DefaultDebounce,
		extract:     Extract,
	}
	for _, opt := range opts {
		opt(s)
	}

	for _, glob := range cfg.Content {
		exclude := strings.HasPrefix(glob, "!")
		pattern := s.absPattern(strings.TrimPrefix(glob, "!"))
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("content pattern %q: %w", glob, doublestar.ErrBadPattern)
		}
		if exclude {
			s.excludes = append(s.excludes, pattern)
		} else {
			s.includes = append(s.includes, pattern)
		}
	}

	output.Debug("content scanner ready",
		"root", root,
		"includes", len(s.includes),
		"excludes", len(s.excludes),
		"concurrency", s.concurrency,
	)
	return s, nil
}

// Root returns the absolute directory patterns are resolved against.
func (s *Scanner) Root() string {
	return s.root
}

func (s *Scanner) absPattern(p string) string {
	p = filepath.ToSlash(p)
	if !path.IsAbs(p) && !filepath.IsAbs(p) {
		p = path.Join(filepath.ToSlash(s.root), p)
	}
	return path.Clean(p)
}

// Files returns the sorted root-relative slash paths of regular files that
// match an include pattern and no exclude pattern.
func (s *Scanner) Files(ctx context.Context) ([]string, error) {
	abs, err := s.absFiles(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(abs))
	for i, a := range abs {
		out[i] = s.rel(a)
	}
	sort.Strings(out)
	return out, nil
}

func (s *Scanner) absFiles(ctx context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var files []string

	for _, pattern := range s.includes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		base, rel := doublestar.SplitPattern(pattern)
		if info, err := os.Stat(filepath.FromSlash(base)); err != nil || !info.IsDir() {
			output.Debug("content base directory missing", "pattern", pattern, "base", base)
			continue
		}

		matches, err := doublestar.Glob(os.DirFS(filepath.FromSlash(base)), rel)
		if err != nil {
			return nil, fmt.Errorf("matching %q: %w", pattern, err)
		}

		for _, m := range matches {
			if skipped(m, rel) {
				continue
			}
			full := path.Join(base, m)
			if seen[full] || s.excluded(full) {
				continue
			}
			info, err := os.Stat(filepath.FromSlash(full))
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
			seen[full] = true
			files = append(files, full)
		}
	}

	sort.Strings(files)
	return files, nil
}

// Matches reports whether the absolute path would be selected by Files.
func (s *Scanner) Matches(abs string) bool {
	abs = filepath.ToSlash(abs)
	if s.excluded(abs) {
		return false
	}
	for _, pattern := range s.includes {
		base, rel := doublestar.SplitPattern(pattern)
		if ok, _ := doublestar.Match(pattern, abs); ok && !skipped(relTo(abs, base), rel) {
			return true
		}
	}
	return false
}

// watchable reports whether dir holds or leads to files an include pattern
// can match: it lies under an include base without crossing a skipped
// directory, or it is an ancestor of an include base.
func (s *Scanner) watchable(dir string) bool {
	dir = filepath.ToSlash(dir)
	for _, pattern := range s.includes {
		base, rel := doublestar.SplitPattern(pattern)
		if within(dir, base) && !skippedDir(relTo(dir, base), rel) {
			return true
		}
		if dir != base && within(base, dir) {
			return true
		}
	}
	return false
}

func (s *Scanner) excluded(abs string) bool {
	for _, pattern := range s.excludes {
		if ok, _ := doublestar.Match(pattern, abs); ok {
			return true
		}
	}
	return false
}

// skipped reports whether match passes through a skipped directory the
// pattern does not name explicitly.
func skipped(match, pattern string) bool {
	return skippedDir(path.Dir(match), pattern)
}

// skippedDir reports whether dir is, or lies below, a skipped directory the
// pattern does not name as one of its segments.
func skippedDir(dir, pattern string) bool {
	if dir == "" || dir == "." {
		return false
	}
	named := strings.Split(pattern, "/")
	for _, d := range strings.Split(dir, "/") {
		if skippedDirs[d] && !slices.Contains(named, d) {
			return true
		}
	}
	return false
}

// within reports whether p is dir or lies below it.
func within(p, dir string) bool {
	return p == dir || strings.HasPrefix(p, strings.TrimSuffix(dir, "/")+"/")
}

// relTo returns p relative to dir; both are slash paths with p within dir.
func relTo(p, dir string) string {
	return strings.TrimPrefix(strings.TrimPrefix(p, dir), "/")
}

func (s *Scanner) rel(abs string) string {
	r, err := filepath.Rel(s.root, filepath.FromSlash(abs))
	if err != nil {
		return abs
	}
	return filepath.ToSlash(r)
}
