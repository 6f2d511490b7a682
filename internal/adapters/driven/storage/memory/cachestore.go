// Package memory provides in-memory adapter implementations used by
// tests and dry runs.
package memory

import (
	"context"
	"sync"

	"github.com/inkwell-labs/inkwell-cli/internal/core/ports/driven"
)

// Ensure CacheStore implements the interface.
var _ driven.VectorCacheStore = (*CacheStore)(nil)

// CacheStore is an in-memory VectorCacheStore.
type CacheStore struct {
	mu      sync.Mutex
	entries map[string]driven.VectorEntry
}

// NewCacheStore creates an empty in-memory cache store.
func NewCacheStore() *CacheStore {
	return &CacheStore{entries: make(map[string]driven.VectorEntry)}
}

// LoadAll returns every stored entry.
func (s *CacheStore) LoadAll(_ context.Context) ([]driven.VectorEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := make([]driven.VectorEntry, 0, len(s.entries))
	for _, e := range s.entries {
		entries = append(entries, e)
	}
	return entries, nil
}

// Put stores an entry, overwriting any previous vector for the key.
func (s *CacheStore) Put(_ context.Context, entry driven.VectorEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[entry.Key] = entry
	return nil
}

// Len returns the number of stored entries.
func (s *CacheStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Close is a no-op.
func (s *CacheStore) Close() error {
	return nil
}
