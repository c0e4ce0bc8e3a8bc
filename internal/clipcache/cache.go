package clipcache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"audioheal/internal/services"
)

const schema = `
CREATE TABLE IF NOT EXISTS clips (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    markup TEXT NOT NULL,
    voice TEXT NOT NULL,
    engine TEXT NOT NULL,
    sample_rate INTEGER NOT NULL,
    file_name TEXT NOT NULL,
    byte_size INTEGER NOT NULL,
    created_at TEXT NOT NULL,
    last_used_at TEXT NOT NULL,
    hits INTEGER NOT NULL DEFAULT 0,
    UNIQUE (markup, voice, engine, sample_rate)
)`

// Cache stores synthesized PCM keyed by markup, voice, engine, and
// sample rate.
type Cache struct {
	db   *sql.DB
	dir  string
	lock *flock.Flock
}

// Stats summarizes cache contents.
type Stats struct {
	Entries    int
	TotalBytes int64
	TotalHits  int64
}

// Open initializes or connects to the cache under dir. The directory is
// created if needed and locked for the lifetime of the cache.
func Open(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "clipcache", "open", dir, err)
	}

	lock := flock.New(filepath.Join(dir, "cache.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "clipcache", "lock", dir, err)
	}
	if !locked {
		return nil, services.Wrap(services.ErrConfiguration, "clipcache", "lock", "cache directory is in use by another process", nil)
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, "clips.db"))
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open cache db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, fmt.Errorf("ensure cache schema: %w", err)
	}

	return &Cache{db: db, dir: dir, lock: lock}, nil
}

// Close releases the database and the directory lock.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.db != nil {
		errs = append(errs, c.db.Close())
	}
	if c.lock != nil {
		errs = append(errs, c.lock.Unlock())
	}
	return errors.Join(errs...)
}

// Lookup returns the cached PCM for the key, or ok=false on a miss. A
// row whose payload file has gone missing is dropped and reported as a
// miss rather than an error.
func (c *Cache) Lookup(ctx context.Context, markup, voice, engine string, sampleRate int) ([]byte, bool, error) {
	var id int64
	var fileName string
	row := c.db.QueryRowContext(ctx,
		`SELECT id, file_name FROM clips WHERE markup = ? AND voice = ? AND engine = ? AND sample_rate = ?`,
		markup, voice, engine, sampleRate,
	)
	if err := row.Scan(&id, &fileName); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("lookup clip: %w", err)
	}

	pcm, err := os.ReadFile(filepath.Join(c.dir, fileName))
	if err != nil {
		if os.IsNotExist(err) {
			_, _ = c.db.ExecContext(ctx, `DELETE FROM clips WHERE id = ?`, id)
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read clip payload: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	if _, err := c.db.ExecContext(ctx, `UPDATE clips SET hits = hits + 1, last_used_at = ? WHERE id = ?`, now, id); err != nil {
		return nil, false, fmt.Errorf("record clip hit: %w", err)
	}
	return pcm, true, nil
}

// Store saves the PCM payload under the key, replacing any previous
// entry and its payload file.
func (c *Cache) Store(ctx context.Context, markup, voice, engine string, sampleRate int, pcm []byte) error {
	var oldFile string
	row := c.db.QueryRowContext(ctx,
		`SELECT file_name FROM clips WHERE markup = ? AND voice = ? AND engine = ? AND sample_rate = ?`,
		markup, voice, engine, sampleRate,
	)
	switch err := row.Scan(&oldFile); {
	case err == nil:
	case errors.Is(err, sql.ErrNoRows):
	default:
		return fmt.Errorf("check existing clip: %w", err)
	}

	fileName := uuid.NewString() + ".pcm"
	if err := os.WriteFile(filepath.Join(c.dir, fileName), pcm, 0o644); err != nil {
		return fmt.Errorf("write clip payload: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO clips (markup, voice, engine, sample_rate, file_name, byte_size, created_at, last_used_at, hits)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, 0)
         ON CONFLICT (markup, voice, engine, sample_rate)
         DO UPDATE SET file_name = excluded.file_name, byte_size = excluded.byte_size, last_used_at = excluded.last_used_at`,
		markup, voice, engine, sampleRate, fileName, len(pcm), now, now,
	)
	if err != nil {
		_ = os.Remove(filepath.Join(c.dir, fileName))
		return fmt.Errorf("insert clip: %w", err)
	}

	if oldFile != "" && oldFile != fileName {
		_ = os.Remove(filepath.Join(c.dir, oldFile))
	}
	return nil
}

// Stats reports entry count, total payload bytes, and accumulated hits.
func (c *Cache) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	row := c.db.QueryRowContext(ctx,
		`SELECT COUNT(1), COALESCE(SUM(byte_size), 0), COALESCE(SUM(hits), 0) FROM clips`,
	)
	if err := row.Scan(&stats.Entries, &stats.TotalBytes, &stats.TotalHits); err != nil {
		return Stats{}, fmt.Errorf("cache stats: %w", err)
	}
	return stats, nil
}

// Clear removes every entry and payload file, returning the number of
// entries dropped.
func (c *Cache) Clear(ctx context.Context) (int, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT file_name FROM clips`)
	if err != nil {
		return 0, fmt.Errorf("list clips: %w", err)
	}
	var files []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			return 0, fmt.Errorf("scan clip row: %w", err)
		}
		files = append(files, name)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return 0, fmt.Errorf("iterate clips: %w", err)
	}
	rows.Close()

	if _, err := c.db.ExecContext(ctx, `DELETE FROM clips`); err != nil {
		return 0, fmt.Errorf("clear clips: %w", err)
	}
	for _, name := range files {
		_ = os.Remove(filepath.Join(c.dir, name))
	}
	return len(files), nil
}
