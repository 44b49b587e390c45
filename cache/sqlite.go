package cache

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/aisystant/coursesync"
)

// SQLiteCache stores every namespace in one SQLite database.
type SQLiteCache struct {
	db        *sql.DB
	namespace string
	path      string
}

// NewSQLiteCache opens or creates the database at path and its schema.
func NewSQLiteCache(path, namespace string) (*SQLiteCache, error) {
	if namespace == "" {
		namespace = DocumentsNamespace
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating cache directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	c := &SQLiteCache{db: db, namespace: namespace, path: path}
	if err := c.createSchema(); err != nil {
		db.Close()
		return nil, &coursesync.CacheError{Message: "creating schema", Path: path, Cause: err}
	}
	return c, nil
}

func (c *SQLiteCache) createSchema() error {
	_, err := c.db.Exec(`CREATE TABLE IF NOT EXISTS translations (
		namespace TEXT NOT NULL,
		key TEXT NOT NULL,
		value TEXT NOT NULL,
		PRIMARY KEY (namespace, key)
	)`)
	return err
}

// Get retrieves a cached translation.
func (c *SQLiteCache) Get(key string) (string, bool) {
	var val string
	err := c.db.QueryRow(
		`SELECT value FROM translations WHERE namespace = ? AND key = ?`,
		c.namespace, key,
	).Scan(&val)
	if err != nil {
		return "", false
	}
	return val, true
}

// Set stores a translation; the write is committed before returning.
func (c *SQLiteCache) Set(key string, value string) error {
	_, err := c.db.Exec(
		`INSERT INTO translations (namespace, key, value) VALUES (?, ?, ?)
		 ON CONFLICT(namespace, key) DO UPDATE SET value = excluded.value`,
		c.namespace, key, value,
	)
	if err != nil {
		return &coursesync.CacheError{Message: "writing entry", Path: c.path, Cause: err}
	}
	return nil
}

// Entries returns all entries of the namespace.
func (c *SQLiteCache) Entries() (map[string]string, error) {
	rows, err := c.db.Query(`SELECT key, value FROM translations WHERE namespace = ?`, c.namespace)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		result[k] = v
	}
	return result, rows.Err()
}

// Close releases the database connection.
func (c *SQLiteCache) Close() error {
	return c.db.Close()
}

var _ Backend = (*SQLiteCache)(nil)
