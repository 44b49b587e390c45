// Package cache provides persistent translation caches.
//
// A cache is a plain key/value memo; keys are derived by coursesync.CacheKey.
// Logical caches (titles, document bodies) are separated by namespace, which
// each backend maps onto its own storage location.
package cache

import "github.com/aisystant/coursesync"

// TranslationCache is the interface for translation caching.
type TranslationCache = coursesync.TranslationCache

// Enumerable is implemented by caches whose entries can be listed for export.
type Enumerable interface {
	Entries() (map[string]string, error)
}

// Backend is a cache that holds external resources.
type Backend interface {
	TranslationCache
	Close() error
}

// Well-known namespaces.
const (
	// TitlesNamespace memoizes section titles translated for slugs.
	TitlesNamespace = "titles_cache"
	// DocumentsNamespace memoizes whole translated documents.
	DocumentsNamespace = "translations_cache"
)
