package cache

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aisystant/coursesync"
)

func TestFileCache_MissingFileIsEmpty(t *testing.T) {
	c := NewFileCache(filepath.Join(t.TempDir(), "cache.json"))

	if err := c.Load(); err != nil {
		t.Fatalf("missing file should load as empty: %v", err)
	}
	if _, ok := c.Get("anything"); ok {
		t.Error("expected miss")
	}
	if c.Len() != 0 {
		t.Errorf("Len = %d, want 0", c.Len())
	}
}

func TestFileCache_SetGetNonASCII(t *testing.T) {
	path := filepath.Join(t.TempDir(), "_", "translations_cache.json")
	c := NewFileCache(path)

	key := coursesync.CacheKey("Системное мышление", "en")
	value := "Системное мышление → Systems thinking ✓ <b>&</b>"

	if err := c.Set(key, value); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, ok := c.Get(key)
	if !ok || got != value {
		t.Errorf("Get = %q, %v; want %q", got, ok, value)
	}

	// A fresh instance sees the same bytes.
	reloaded := NewFileCache(path)
	got, ok = reloaded.Get(key)
	if !ok || got != value {
		t.Errorf("reloaded Get = %q, %v; want %q", got, ok, value)
	}
}

func TestFileCache_FileFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	c := NewFileCache(path)

	c.Set("b", "Привет")
	c.Set("a", "<p>")

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading cache file: %v", err)
	}
	content := string(raw)

	if !strings.Contains(content, "Привет") {
		t.Error("non-ASCII text should be stored verbatim")
	}
	if !strings.Contains(content, `"<p>"`) || strings.Contains(content, `\u003c`) {
		t.Error("HTML characters should not be escaped")
	}
	if !strings.Contains(content, "\n    \"a\": ") {
		t.Errorf("expected 4-space indentation, got:\n%s", content)
	}
	if strings.Index(content, `"a"`) > strings.Index(content, `"b"`) {
		t.Error("keys should be sorted for diffability")
	}
}

func TestFileCache_FlushesEveryWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	c := NewFileCache(path)

	c.Set("k1", "v1")
	if got, ok := NewFileCache(path).Get("k1"); !ok || got != "v1" {
		t.Error("first write should be on disk")
	}

	c.Set("k2", "v2")
	if NewFileCache(path).Len() != 2 {
		t.Error("second write should be on disk")
	}
}

func TestFileCache_MalformedFailsFast(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	original := []byte(`{"k1": "v1",`)
	os.WriteFile(path, original, 0644)

	c := NewFileCache(path)

	err := c.Load()
	if err == nil {
		t.Fatal("expected error for malformed cache")
	}
	var ce *coursesync.CacheError
	if !errors.As(err, &ce) {
		t.Errorf("expected CacheError, got %T", err)
	}

	if err := c.Set("k2", "v2"); err == nil {
		t.Error("Set must fail on a corrupted cache")
	}

	raw, _ := os.ReadFile(path)
	if string(raw) != string(original) {
		t.Error("corrupted cache file must not be overwritten")
	}
}

func TestFileCache_Namespaces(t *testing.T) {
	dir := t.TempDir()
	titles := NewFileCache(filepath.Join(dir, TitlesNamespace+".json"))
	docs := NewFileCache(filepath.Join(dir, DocumentsNamespace+".json"))

	titles.Set("k", "title")
	if _, ok := docs.Get("k"); ok {
		t.Error("namespaces must not share entries")
	}
}

func TestFileCache_Entries(t *testing.T) {
	c := NewFileCache(filepath.Join(t.TempDir(), "cache.json"))
	c.Set("k1", "v1")

	entries, err := c.Entries()
	if err != nil {
		t.Fatalf("Entries failed: %v", err)
	}
	entries["k1"] = "mutated"

	if got, _ := c.Get("k1"); got != "v1" {
		t.Error("Entries should return a copy")
	}
}
