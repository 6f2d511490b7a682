package driven

import (
	"context"
	"time"
)

// VectorEntry is one persisted embedding cache row.
type VectorEntry struct {
	// Key is the normalized task text the vector was computed for.
	Key string

	// Vector is the embedding.
	Vector []float32

	// CreatedAt is the insertion time.
	CreatedAt time.Time
}

// VectorCacheStore persists computed embeddings between runs.
//
// The on-disk format is internal and not a compatibility surface; any
// store that can hold a mapping of normalized text to vector works.
// A store failure must never block duplicate detection, so callers log
// and continue in-memory when Put or LoadAll fails.
type VectorCacheStore interface {
	// LoadAll returns every persisted entry. A missing or corrupt
	// backing file yields an empty result, not an error.
	LoadAll(ctx context.Context) ([]VectorEntry, error)

	// Put persists a single entry, overwriting any previous vector
	// for the same key.
	Put(ctx context.Context, entry VectorEntry) error

	// Close releases resources.
	Close() error
}
