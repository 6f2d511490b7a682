// Package sqlite provides the durable embedding cache backed by SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/inkwell-labs/inkwell-cli/internal/core/ports/driven"
)

// Ensure CacheStore implements the interface.
var _ driven.VectorCacheStore = (*CacheStore)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS vectors (
	key        TEXT PRIMARY KEY,
	dims       INTEGER NOT NULL,
	vector     BLOB NOT NULL,
	created_at INTEGER NOT NULL
);
`

// CacheStore persists embedding vectors in a SQLite database.
// Vectors are stored as little-endian float32 blobs.
type CacheStore struct {
	db   *sql.DB
	path string
}

// NewCacheStore opens (or creates) the cache database at path.
// If path is empty, defaults to ~/.inkwell/cache/embeddings.db.
func NewCacheStore(path string) (*CacheStore, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		path = filepath.Join(home, ".inkwell", "cache", "embeddings.db")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	// WAL mode so concurrent sessions can read while one writes
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating vectors table: %w", err)
	}

	return &CacheStore{db: db, path: path}, nil
}

// LoadAll returns every persisted vector.
func (s *CacheStore) LoadAll(ctx context.Context) ([]driven.VectorEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT key, vector, created_at FROM vectors ORDER BY key")
	if err != nil {
		return nil, fmt.Errorf("querying vectors: %w", err)
	}
	defer rows.Close()

	var entries []driven.VectorEntry
	for rows.Next() {
		var (
			key       string
			blob      []byte
			createdAt int64
		)
		if err := rows.Scan(&key, &blob, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning vector row: %w", err)
		}
		entries = append(entries, driven.VectorEntry{
			Key:       key,
			Vector:    bytesToFloat32Slice(blob),
			CreatedAt: time.Unix(createdAt, 0),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating vector rows: %w", err)
	}
	return entries, nil
}

// Put inserts or replaces the vector for a key.
func (s *CacheStore) Put(ctx context.Context, entry driven.VectorEntry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO vectors (key, dims, vector, created_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET dims = excluded.dims, vector = excluded.vector`,
		entry.Key, len(entry.Vector), float32SliceToBytes(entry.Vector), entry.CreatedAt.Unix())
	if err != nil {
		return fmt.Errorf("upserting vector %q: %w", entry.Key, err)
	}
	return nil
}

// Clear removes every persisted vector.
func (s *CacheStore) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM vectors")
	if err != nil {
		return 0, fmt.Errorf("clearing vectors: %w", err)
	}
	return res.RowsAffected()
}

// Count returns the number of persisted vectors.
func (s *CacheStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM vectors").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting vectors: %w", err)
	}
	return n, nil
}

// Path returns the database file path.
func (s *CacheStore) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *CacheStore) Close() error {
	return s.db.Close()
}

// float32SliceToBytes converts a []float32 to a little-endian byte slice.
func float32SliceToBytes(floats []float32) []byte {
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}
