package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// PageCache provides SQLite-based storage for rendered page sources.
// It satisfies render.PageCache so the crawl can read through it.
//
// Design decision: We store the fully rendered page source rather
// than the raw HTTP response. The interesting content only exists
// after scripting has run, so caching the pre-render body would force
// a browser session on every run anyway.
type PageCache struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string

	// ttl is how long a cached page stays valid. Zero means forever.
	ttl time.Duration
}

// Options configures PageCache behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent
	// performance. This is recommended for most use cases.
	EnableWAL bool

	// TTL is how long a cached page stays valid. Entries older than
	// this are treated as misses and overwritten on the next store.
	// Zero disables expiry.
	TTL time.Duration
}

// DefaultOptions returns the default cache options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
		TTL:               24 * time.Hour,
	}
}

// Open opens or creates a PageCache at the specified directory.
// If CreateIfNotExists is true, the directory and database file are
// created. If CreateIfNotExists is false and the database doesn't
// exist, an error is returned.
func Open(dbDir string, opts Options) (*PageCache, error) {
	dbPath := filepath.Join(dbDir, "cafscan.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite connection string: mode=rw prevents creating
	// new files, mode=rwc allows creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	pc := &PageCache{
		db:     db,
		dbPath: dbPath,
		ttl:    opts.TTL,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := pc.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return pc, nil
}

// Close closes the database connection.
func (pc *PageCache) Close() error {
	return pc.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (pc *PageCache) createTables() error {
	schema := `
	-- Pages store rendered page sources keyed by URL
	CREATE TABLE IF NOT EXISTS pages (
		url TEXT PRIMARY KEY,
		html TEXT NOT NULL,
		fetched_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_pages_fetched_at ON pages(fetched_at);
	`

	_, err := pc.db.ExecContext(context.Background(), schema)
	return err
}

// Get returns the cached page source for pageURL, if present and not
// expired. An expired entry is reported as a miss; it is replaced the
// next time Put stores the URL.
func (pc *PageCache) Get(ctx context.Context, pageURL string) (string, bool, error) {
	var html string
	var fetchedAt string

	query := `SELECT html, fetched_at FROM pages WHERE url = ?`
	err := pc.db.QueryRowContext(ctx, query, pageURL).Scan(&html, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read cached page: %w", err)
	}

	if pc.ttl > 0 && time.Since(parseTimestamp(fetchedAt)) > pc.ttl {
		return "", false, nil
	}
	return html, true, nil
}

// Put stores the page source for pageURL, replacing any previous
// entry and resetting its fetch time.
func (pc *PageCache) Put(ctx context.Context, pageURL string, html string) error {
	query := `
	INSERT INTO pages (url, html, fetched_at) VALUES (?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(url) DO UPDATE SET
		html = excluded.html,
		fetched_at = excluded.fetched_at`

	if _, err := pc.db.ExecContext(ctx, query, pageURL, html); err != nil {
		return fmt.Errorf("failed to store cached page: %w", err)
	}
	return nil
}

// Purge removes every cached page. Useful when the site has changed
// and stale snapshots would poison a fresh crawl.
func (pc *PageCache) Purge(ctx context.Context) (int64, error) {
	result, err := pc.db.ExecContext(ctx, `DELETE FROM pages`)
	if err != nil {
		return 0, fmt.Errorf("failed to purge cache: %w", err)
	}
	return result.RowsAffected()
}

// Stats reports the number of cached pages and the oldest fetch time.
// An empty cache has a zero oldest time.
func (pc *PageCache) Stats(ctx context.Context) (int64, time.Time, error) {
	var count int64
	var oldest string

	query := `SELECT COUNT(*), COALESCE(MIN(fetched_at), '') FROM pages`
	if err := pc.db.QueryRowContext(ctx, query).Scan(&count, &oldest); err != nil {
		return 0, time.Time{}, fmt.Errorf("failed to read cache stats: %w", err)
	}
	return count, parseTimestamp(oldest), nil
}

// timestampFormats are the layouts SQLite may return for DATETIME
// columns depending on how the value was written.
var timestampFormats = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999",
}

// parseTimestamp attempts to parse a timestamp string using multiple
// formats. If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
