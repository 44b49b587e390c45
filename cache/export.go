package cache

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"time"
)

// DumpVersion is the format version written by Export.
const DumpVersion = "1.0"

// Dump is the portable JSON form of one cache namespace. Entries are sorted
// by key so dumps diff cleanly under version control.
type Dump struct {
	Version    string            `json:"version"`
	ExportedAt string            `json:"exported_at"`
	Namespace  string            `json:"namespace,omitempty"`
	Meta       map[string]string `json:"metadata,omitempty"`
	Entries    []DumpEntry       `json:"entries"`
}

// DumpEntry is one cache key with its stored translation.
type DumpEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Export writes every entry of c as a Dump. The cache must be Enumerable.
func Export(w io.Writer, c TranslationCache, namespace string, meta map[string]string) error {
	src, ok := c.(Enumerable)
	if !ok {
		return fmt.Errorf("cache %T cannot be enumerated", c)
	}
	entries, err := src.Entries()
	if err != nil {
		return fmt.Errorf("listing %s: %w", namespace, err)
	}

	d := Dump{
		Version:    DumpVersion,
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Namespace:  namespace,
		Meta:       meta,
		Entries:    make([]DumpEntry, 0, len(entries)),
	}
	for _, k := range slices.Sorted(maps.Keys(entries)) {
		d.Entries = append(d.Entries, DumpEntry{Key: k, Value: entries[k]})
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}

// ImportResult counts what Import did with each entry of a dump.
type ImportResult struct {
	Namespace string
	Imported  int
	Skipped   int
	Failed    int
}

// Import loads a Dump into c. Keys already present keep their value since
// a memo entry is never replaced. A dump taken from a different namespace is
// rejected unless namespace is empty.
func Import(r io.Reader, c TranslationCache, namespace string) (*ImportResult, error) {
	var d Dump
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("decoding dump: %w", err)
	}
	if d.Version != DumpVersion {
		return nil, fmt.Errorf("unsupported dump version %q", d.Version)
	}
	if namespace != "" && d.Namespace != "" && d.Namespace != namespace {
		return nil, fmt.Errorf("dump holds namespace %s, not %s", d.Namespace, namespace)
	}

	res := &ImportResult{Namespace: d.Namespace}
	for _, e := range d.Entries {
		switch _, exists := c.Get(e.Key); {
		case exists:
			res.Skipped++
		case c.Set(e.Key, e.Value) != nil:
			res.Failed++
		default:
			res.Imported++
		}
	}
	return res, nil
}
