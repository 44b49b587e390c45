package cache

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestOpen_FileDefault(t *testing.T) {
	dir := t.TempDir()
	c, err := Open(Options{Dir: dir}, TitlesNamespace)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	fc, ok := c.(*FileCache)
	if !ok {
		t.Fatalf("expected *FileCache, got %T", c)
	}
	if fc.Path() != filepath.Join(dir, "titles_cache.json") {
		t.Errorf("Path = %q", fc.Path())
	}
}

func TestOpen_Memory(t *testing.T) {
	c, err := Open(Options{Backend: BackendMemory}, DocumentsNamespace)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if _, ok := c.(*InMemoryCache); !ok {
		t.Errorf("expected *InMemoryCache, got %T", c)
	}
}

func TestOpen_RedisRequiresURL(t *testing.T) {
	if _, err := Open(Options{Backend: BackendRedis}, DocumentsNamespace); err == nil {
		t.Error("expected error without redis URL")
	}
}

func TestOpen_Unknown(t *testing.T) {
	_, err := Open(Options{Backend: "memcached"}, DocumentsNamespace)
	if !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("expected ErrUnknownBackend, got %v", err)
	}
}
