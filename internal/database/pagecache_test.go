package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// setupTestCache creates a temporary page cache for testing.
func setupTestCache(t *testing.T) *PageCache {
	t.Helper()

	pc, err := Open(t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open cache: %v", err)
	}
	t.Cleanup(func() { _ = pc.Close() })

	return pc
}

// TestOpen tests cache opening and creation.
func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("creates database in new directory", func(t *testing.T) {
		t.Parallel()

		dbDir := filepath.Join(t.TempDir(), "newdir", "subdir")
		pc, err := Open(dbDir, DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open cache: %v", err)
		}
		defer pc.Close()

		dbPath := filepath.Join(dbDir, "cafscan.db")
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			t.Error("database file was not created")
		}
	})

	t.Run("CreateIfNotExists=false fails on missing database", func(t *testing.T) {
		t.Parallel()

		opts := DefaultOptions()
		opts.CreateIfNotExists = false

		if _, err := Open(t.TempDir(), opts); err == nil {
			t.Error("expected error for missing database")
		}
	})

	t.Run("reopens existing database", func(t *testing.T) {
		t.Parallel()

		dbDir := t.TempDir()
		pc, err := Open(dbDir, DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open cache: %v", err)
		}
		if err := pc.Put(context.Background(), "https://example.com/a", "<html>a</html>"); err != nil {
			t.Fatalf("failed to store page: %v", err)
		}
		if err := pc.Close(); err != nil {
			t.Fatalf("failed to close cache: %v", err)
		}

		opts := DefaultOptions()
		opts.CreateIfNotExists = false
		pc2, err := Open(dbDir, opts)
		if err != nil {
			t.Fatalf("failed to reopen cache: %v", err)
		}
		defer pc2.Close()

		html, ok, err := pc2.Get(context.Background(), "https://example.com/a")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok || html != "<html>a</html>" {
			t.Errorf("expected stored page to survive reopen, got ok=%v html=%q", ok, html)
		}
	})
}

// TestPageCacheGetPut tests the read-through storage operations.
func TestPageCacheGetPut(t *testing.T) {
	t.Parallel()

	t.Run("miss on unknown URL", func(t *testing.T) {
		t.Parallel()

		pc := setupTestCache(t)
		_, ok, err := pc.Get(context.Background(), "https://example.com/missing")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ok {
			t.Error("expected miss for unknown URL")
		}
	})

	t.Run("hit after put", func(t *testing.T) {
		t.Parallel()

		pc := setupTestCache(t)
		if err := pc.Put(context.Background(), "https://example.com/page", "<html>body</html>"); err != nil {
			t.Fatalf("failed to store page: %v", err)
		}

		html, ok, err := pc.Get(context.Background(), "https://example.com/page")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok {
			t.Fatal("expected hit after put")
		}
		if html != "<html>body</html>" {
			t.Errorf("unexpected page source: %q", html)
		}
	})

	t.Run("put replaces previous entry", func(t *testing.T) {
		t.Parallel()

		pc := setupTestCache(t)
		url := "https://example.com/page"
		if err := pc.Put(context.Background(), url, "<html>old</html>"); err != nil {
			t.Fatalf("failed to store page: %v", err)
		}
		if err := pc.Put(context.Background(), url, "<html>new</html>"); err != nil {
			t.Fatalf("failed to replace page: %v", err)
		}

		html, ok, err := pc.Get(context.Background(), url)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok || html != "<html>new</html>" {
			t.Errorf("expected replacement to win, got ok=%v html=%q", ok, html)
		}
	})

	t.Run("expired entry is a miss", func(t *testing.T) {
		t.Parallel()

		opts := DefaultOptions()
		opts.TTL = time.Nanosecond
		pc, err := Open(t.TempDir(), opts)
		if err != nil {
			t.Fatalf("failed to open cache: %v", err)
		}
		defer pc.Close()

		if err := pc.Put(context.Background(), "https://example.com/page", "<html>x</html>"); err != nil {
			t.Fatalf("failed to store page: %v", err)
		}
		time.Sleep(10 * time.Millisecond)

		_, ok, err := pc.Get(context.Background(), "https://example.com/page")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ok {
			t.Error("expected expired entry to be a miss")
		}
	})
}

// TestPageCachePurge tests dropping the cache contents.
func TestPageCachePurge(t *testing.T) {
	t.Parallel()

	pc := setupTestCache(t)
	for _, url := range []string{"https://example.com/a", "https://example.com/b"} {
		if err := pc.Put(context.Background(), url, "<html></html>"); err != nil {
			t.Fatalf("failed to store page: %v", err)
		}
	}

	removed, err := pc.Purge(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed != 2 {
		t.Errorf("expected 2 pages removed, got %d", removed)
	}

	count, _, err := pc.Stats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 0 {
		t.Errorf("expected empty cache after purge, got %d pages", count)
	}
}

// TestPageCacheStats tests the cache summary query.
func TestPageCacheStats(t *testing.T) {
	t.Parallel()

	t.Run("empty cache", func(t *testing.T) {
		t.Parallel()

		pc := setupTestCache(t)
		count, oldest, err := pc.Stats(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if count != 0 {
			t.Errorf("expected 0 pages, got %d", count)
		}
		if !oldest.IsZero() {
			t.Errorf("expected zero oldest time, got %v", oldest)
		}
	})

	t.Run("counts stored pages", func(t *testing.T) {
		t.Parallel()

		pc := setupTestCache(t)
		if err := pc.Put(context.Background(), "https://example.com/a", "<html></html>"); err != nil {
			t.Fatalf("failed to store page: %v", err)
		}

		count, oldest, err := pc.Stats(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if count != 1 {
			t.Errorf("expected 1 page, got %d", count)
		}
		if oldest.IsZero() {
			t.Error("expected non-zero oldest time")
		}
	})
}
