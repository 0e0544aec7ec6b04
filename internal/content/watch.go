package content

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/lyonhq/twscan/internal/output"
)

// DefaultDebounce is how long Watch waits after the last event.
const DefaultDebounce = 200 * time.Millisecond

// Watch reports changes to matched files and to the config file until ctx is
// cancelled. Events are debounced; onChange receives the sorted absolute
// paths that changed and never runs concurrently with itself.
func (s *Scanner) Watch(ctx context.Context, onChange func(paths []string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if s.configPath != "" {
		if err := watcher.Add(filepath.Dir(s.configPath)); err != nil {
			return fmt.Errorf("watch config directory: %w", err)
		}
	}
	for _, pattern := range s.includes {
		base, _ := doublestar.SplitPattern(pattern)
		if err := s.addTree(watcher, filepath.FromSlash(base)); err != nil {
			return err
		}
	}
	output.Debug("watching content", "dirs", len(watcher.WatchList()))

	var (
		mu       sync.Mutex
		pending  = make(map[string]bool)
		timer    *time.Timer
		callback sync.Mutex
	)

	flush := func() {
		mu.Lock()
		paths := make([]string, 0, len(pending))
		for p := range pending {
			paths = append(paths, p)
		}
		pending = make(map[string]bool)
		mu.Unlock()

		if len(paths) == 0 || ctx.Err() != nil {
			return
		}
		sort.Strings(paths)

		callback.Lock()
		defer callback.Unlock()
		onChange(paths)
	}

	for {
		select {
		case <-ctx.Done():
			mu.Lock()
			if timer != nil {
				timer.Stop()
			}
			mu.Unlock()
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if event.Has(fsnotify.Create) && s.watchable(event.Name) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := s.addTree(watcher, event.Name); err != nil {
						output.Warn("watching new directory failed", "dir", event.Name, "err", err)
					}
				}
			}
			if !s.relevant(event.Name) {
				continue
			}
			output.Debug("content changed", "path", event.Name, "op", event.Op.String())

			if s.cache != nil {
				s.cache.Remove(event.Name)
			}

			mu.Lock()
			pending[event.Name] = true
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(s.debounce, flush)
			mu.Unlock()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			output.Error("content watcher error", "err", err)
		}
	}
}

func (s *Scanner) relevant(name string) bool {
	if s.configPath != "" && filepath.Clean(name) == filepath.Clean(s.configPath) {
		return true
	}
	return s.Matches(name)
}

// addTree watches dir and every directory below it that an include pattern
// can reach. A missing dir is not an error; it is picked up when created
// inside an already watched directory.
func (s *Scanner) addTree(w *fsnotify.Watcher, dir string) error {
	if _, err := os.Stat(dir); err != nil {
		return nil
	}
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if !s.watchable(p) {
			return filepath.SkipDir
		}
		if err := w.Add(p); err != nil {
			return fmt.Errorf("watch %s: %w", p, err)
		}
		return nil
	})
}
