package cache

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/aisystant/coursesync"
)

// FileCache persists entries as one pretty-printed JSON object.
//
// The file is read on first use. A missing file is an empty cache; a file
// that cannot be parsed makes every operation fail, so a corrupted cache is
// never overwritten. Every Set rewrites the file before returning.
type FileCache struct {
	path string

	mu      sync.Mutex
	loaded  bool
	loadErr error
	data    map[string]string
}

// NewFileCache creates a cache stored at path. Nothing is read until first use.
func NewFileCache(path string) *FileCache {
	return &FileCache{path: path}
}

// Path returns the storage location.
func (c *FileCache) Path() string {
	return c.path
}

// Load reads the storage location once and reports whether it is usable.
func (c *FileCache) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadLocked()
}

func (c *FileCache) loadLocked() error {
	if c.loaded {
		return c.loadErr
	}
	c.loaded = true
	c.data = make(map[string]string)

	raw, err := os.ReadFile(c.path) // #nosec G304 - path comes from configuration
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		c.loadErr = &coursesync.CacheError{Message: "reading cache file", Path: c.path, Cause: err}
		return c.loadErr
	}

	if err := json.Unmarshal(raw, &c.data); err != nil {
		c.data = nil
		c.loadErr = &coursesync.CacheError{Message: "malformed cache file", Path: c.path, Cause: err}
		return c.loadErr
	}
	if c.data == nil {
		// A literal "null" document.
		c.data = make(map[string]string)
	}
	return nil
}

// Get retrieves a cached translation. A cache that failed to load reports misses.
func (c *FileCache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.loadLocked(); err != nil {
		return "", false
	}
	val, ok := c.data[key]
	return val, ok
}

// Set stores a translation and flushes the whole cache to disk.
func (c *FileCache) Set(key string, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.loadLocked(); err != nil {
		return err
	}

	c.data[key] = value
	return c.saveLocked()
}

func (c *FileCache) saveLocked() error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(c.data); err != nil {
		return &coursesync.CacheError{Message: "encoding cache", Path: c.path, Cause: err}
	}

	if dir := filepath.Dir(c.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &coursesync.CacheError{Message: "creating cache directory", Path: dir, Cause: err}
		}
	}

	if err := os.WriteFile(c.path, buf.Bytes(), 0o644); err != nil {
		return &coursesync.CacheError{Message: "writing cache file", Path: c.path, Cause: err}
	}
	return nil
}

// Len returns the number of entries.
func (c *FileCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.loadLocked(); err != nil {
		return 0
	}
	return len(c.data)
}

// Entries returns a copy of all entries.
func (c *FileCache) Entries() (map[string]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.loadLocked(); err != nil {
		return nil, err
	}
	out := make(map[string]string, len(c.data))
	for k, v := range c.data {
		out[k] = v
	}
	return out, nil
}

// Close is a no-op; every write is already on disk.
func (c *FileCache) Close() error {
	return nil
}

var (
	_ Backend                = (*FileCache)(nil)
	_ coursesync.CacheLoader = (*FileCache)(nil)
)
