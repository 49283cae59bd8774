package metadata

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"

	"github.com/vmunix/watchrr/pkg/tvdb"
)

// searchTTL bounds how long a cached search response is reused.
const searchTTL = time.Hour

const cacheSchema = `
CREATE TABLE IF NOT EXISTS metadata_cache (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	expires_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_metadata_cache_expires ON metadata_cache(expires_at);
`

// Cache provides SQLite-backed caching for metadata API responses.
type Cache struct {
	db *sql.DB
}

// OpenCache opens (creating if necessary) the cache database at path.
func OpenCache(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open cache db: %w", err)
	}
	if _, err := db.Exec(cacheSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init cache schema: %w", err)
	}
	return &Cache{db: db}, nil
}

// NewCache wraps an existing database handle. The schema must already exist.
func NewCache(db *sql.DB) *Cache {
	return &Cache{db: db}
}

// Close releases the underlying database handle.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Get retrieves a cached value by key.
// Returns nil, false if not found or expired.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	var value string
	var expiresAt time.Time

	err := c.db.QueryRowContext(ctx,
		"SELECT value, expires_at FROM metadata_cache WHERE key = ?", key,
	).Scan(&value, &expiresAt)

	if err != nil || time.Now().After(expiresAt) {
		return nil, false
	}

	return []byte(value), true
}

// Set stores a value with the given TTL.
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	expiresAt := time.Now().Add(ttl)

	_, err := c.db.ExecContext(ctx,
		`INSERT INTO metadata_cache (key, value, expires_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at`,
		key, string(value), expiresAt,
	)
	if err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Delete removes a cached value.
func (c *Cache) Delete(ctx context.Context, key string) error {
	_, err := c.db.ExecContext(ctx, "DELETE FROM metadata_cache WHERE key = ?", key)
	if err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

// Prune removes all expired entries.
// Returns the number of entries removed.
func (c *Cache) Prune(ctx context.Context) (int64, error) {
	result, err := c.db.ExecContext(ctx,
		"DELETE FROM metadata_cache WHERE expires_at < ?", time.Now(),
	)
	if err != nil {
		return 0, fmt.Errorf("cache prune: %w", err)
	}
	return result.RowsAffected()
}

// CachedSearcher wraps a Searcher with response caching. Cache failures
// degrade to live lookups rather than failing the search.
type CachedSearcher struct {
	inner Searcher
	cache *Cache
	log   *slog.Logger
}

// NewCachedSearcher creates a caching wrapper around inner.
func NewCachedSearcher(inner Searcher, cache *Cache, log *slog.Logger) *CachedSearcher {
	return &CachedSearcher{
		inner: inner,
		cache: cache,
		log:   log.With("component", "metadata-cache"),
	}
}

// Search returns cached results when fresh, otherwise delegates to the
// wrapped searcher and stores the response.
func (s *CachedSearcher) Search(ctx context.Context, query string, year, limit int) ([]tvdb.SearchResult, error) {
	key := fmt.Sprintf("tvdb:search:%s:%d:%d", query, year, limit)

	if data, ok := s.cache.Get(ctx, key); ok {
		var results []tvdb.SearchResult
		if err := json.Unmarshal(data, &results); err == nil {
			s.log.Debug("cache hit", "query", query)
			return results, nil
		}
		// Unreadable entry: drop it and fall through to a live lookup.
		_ = s.cache.Delete(ctx, key)
	}

	results, err := s.inner.Search(ctx, query, year, limit)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(results); err == nil {
		if err := s.cache.Set(ctx, key, data, searchTTL); err != nil {
			s.log.Warn("cache store failed", "query", query, "error", err)
		}
	}

	return results, nil
}
