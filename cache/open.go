package cache

import (
	"errors"
	"fmt"
	"path/filepath"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
)

// ErrUnknownBackend is returned by Open for unsupported backend names.
var ErrUnknownBackend = errors.New("unknown cache backend")

// Options selects and locates a cache backend.
type Options struct {
	Backend    string // file (default), memory, redis or sqlite
	Dir        string // Directory of JSON cache files (default "_")
	RedisURL   string
	SQLitePath string // Database file (default Dir/cache.db)
}

// Open returns the cache for one namespace.
func Open(opts Options, namespace string) (Backend, error) {
	dir := opts.Dir
	if dir == "" {
		dir = "_"
	}

	switch opts.Backend {
	case "", BackendFile:
		return NewFileCache(filepath.Join(dir, namespace+".json")), nil
	case BackendMemory:
		return NewInMemoryCache(), nil
	case BackendRedis:
		if opts.RedisURL == "" {
			return nil, fmt.Errorf("redis cache requires a URL")
		}
		return DialRedis(opts.RedisURL, namespace)
	case BackendSQLite:
		path := opts.SQLitePath
		if path == "" {
			path = filepath.Join(dir, "cache.db")
		}
		return NewSQLiteCache(path, namespace)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
	}
}
