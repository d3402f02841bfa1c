package loader

import (
	"fmt"
	"os"
	"sync"
)

// FileCache provides thread-safe caching of encoded image bytes to avoid
// redundant disk reads.
//
// The cache stores raw file contents keyed by path; decoding stays lazy and
// per-handle. Cached bytes remain in memory until removed via Evict or
// Clear, so long-running shells loading many icons should clear the cache
// when a theme changes.
//
// FileCache is safe for concurrent use by multiple goroutines.
type FileCache struct {
	mu    sync.RWMutex
	files map[string][]byte
}

// NewFileCache creates an empty cache, ready for immediate use.
func NewFileCache() *FileCache {
	return &FileCache{
		files: make(map[string][]byte),
	}
}

// Load returns the file's bytes from the cache, reading the whole file from
// disk on a miss. The exact path string is the cache key; relative and
// absolute paths to the same file cache separately.
func (c *FileCache) Load(path string) ([]byte, error) {
	c.mu.RLock()
	if data, ok := c.files[path]; ok {
		c.mu.RUnlock()
		return data, nil
	}
	c.mu.RUnlock()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image file: %w", err)
	}

	c.mu.Lock()
	c.files[path] = data
	c.mu.Unlock()

	return data, nil
}

// Clear removes every entry, freeing the associated memory.
func (c *FileCache) Clear() {
	c.mu.Lock()
	c.files = make(map[string][]byte)
	c.mu.Unlock()
}

// Evict removes one entry by its path. Evicting an unknown path does
// nothing.
func (c *FileCache) Evict(path string) {
	c.mu.Lock()
	delete(c.files, path)
	c.mu.Unlock()
}

// Len reports how many files are currently cached.
func (c *FileCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.files)
}
