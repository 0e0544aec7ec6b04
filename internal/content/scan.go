package content

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	oerrors "github.com/lyonhq/twscan/internal/errors"
	"github.com/lyonhq/twscan/internal/output"
)

// Result is the outcome of a scan.
type Result struct {
	// Files are the root-relative paths that were read.
	Files []string `json:"files" yaml:"files"`

	// Classes are the sorted class names the build keeps.
	Classes []string `json:"classes" yaml:"classes"`

	// Sources maps each class to the files it was found in. Safelisted
	// classes not found in any file map to an empty list.
	Sources map[string][]string `json:"sources,omitempty" yaml:"sources,omitempty"`
}

// Scan reads every matched file concurrently and collects candidates.
// The configured prefix filters candidates, the safelist adds classes and the
// blocklist removes them.
func (s *Scanner) Scan(ctx context.Context) (*Result, error) {
	files, err := s.absFiles(ctx)
	if err != nil {
		return nil, err
	}

	var (
		mu      sync.Mutex
		sources = make(map[string][]string)
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for _, file := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			classes, err := s.fileClasses(file)
			if err != nil {
				return err
			}

			rel := s.rel(file)
			mu.Lock()
			defer mu.Unlock()
			for _, c := range classes {
				if s.keep(c) {
					sources[c] = append(sources[c], rel)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, c := range s.safelist {
		if _, ok := sources[c]; !ok {
			sources[c] = []string{}
		}
	}
	for _, c := range s.blocklist {
		delete(sources, c)
	}

	res := &Result{
		Files:   make([]string, len(files)),
		Classes: make([]string, 0, len(sources)),
		Sources: sources,
	}
	for i, f := range files {
		res.Files[i] = s.rel(f)
	}
	sort.Strings(res.Files)
	for c, fs := range sources {
		sort.Strings(fs)
		res.Classes = append(res.Classes, c)
	}
	sort.Strings(res.Classes)

	output.Debug("scan complete", "files", len(res.Files), "classes", len(res.Classes))
	return res, nil
}

// keep applies the configured class prefix.
func (s *Scanner) keep(class string) bool {
	if s.prefix == "" {
		return true
	}
	return strings.HasPrefix(utilityOf(class), s.prefix)
}

// fileClasses returns the candidates of one file, consulting the cache.
func (s *Scanner) fileClasses(file string) ([]string, error) {
	name := filepath.FromSlash(file)

	info, err := os.Stat(name)
	if err != nil {
		return nil, statError(name, err)
	}
	if s.cache != nil {
		if classes, ok := s.cache.Get(name, info); ok {
			return classes, nil
		}
	}

	src, err := os.ReadFile(name)
	if err != nil {
		return nil, statError(name, err)
	}
	classes := s.extract(src)

	if s.cache != nil {
		s.cache.Put(name, info, classes)
	}
	return classes, nil
}

func statError(name string, err error) error {
	switch {
	case errors.Is(err, os.ErrPermission):
		return oerrors.NewPermissionError("content file is not readable", name, "")
	case errors.Is(err, os.ErrNotExist):
		return oerrors.NewNotFoundError("content file disappeared during the scan", name, "Run the scan again.")
	default:
		return fmt.Errorf("reading %s: %w", name, err)
	}
}
