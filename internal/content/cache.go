package content

import (
	"fmt"
	"io/fs"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the number of files whose candidates are kept.
const DefaultCacheSize = 4096

type cacheEntry struct {
	size    int64
	modTime time.Time
	classes []string
}

// Cache holds extracted candidates per absolute file path. An entry is valid
// while the file's size and modification time are unchanged. It is safe for
// concurrent use and is meant to be shared across rescans.
type Cache struct {
	entries *lru.Cache[string, cacheEntry]
}

// NewCache creates a cache holding at most size files.
func NewCache(size int) (*Cache, error) {
	entries, err := lru.New[string, cacheEntry](size)
	if err != nil {
		return nil, fmt.Errorf("creating extraction cache: %w", err)
	}
	return &Cache{entries: entries}, nil
}

// Get returns the cached candidates for path if info still matches.
func (c *Cache) Get(path string, info fs.FileInfo) ([]string, bool) {
	e, ok := c.entries.Get(path)
	if !ok || e.size != info.Size() || !e.modTime.Equal(info.ModTime()) {
		return nil, false
	}
	return e.classes, true
}

// Put stores the candidates extracted from path.
func (c *Cache) Put(path string, info fs.FileInfo, classes []string) {
	c.entries.Add(path, cacheEntry{size: info.Size(), modTime: info.ModTime(), classes: classes})
}

// Remove drops path from the cache.
func (c *Cache) Remove(path string) {
	c.entries.Remove(path)
}

// Len returns the number of cached files.
func (c *Cache) Len() int {
	return c.entries.Len()
}
