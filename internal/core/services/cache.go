package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/inkwell-labs/inkwell-cli/internal/core/ports/driven"
	"github.com/inkwell-labs/inkwell-cli/internal/logger"
)

// EmbeddingCache memoizes embeddings keyed by normalized task text.
// Two texts differing only in case or spacing share one entry.
//
// Every insert is written through to the durable store synchronously;
// writes are rare relative to reads, so the simple scheme is enough.
// Store failures are logged and ignored; the in-memory state stays
// authoritative and detection never blocks on persistence.
type EmbeddingCache struct {
	mu       sync.Mutex
	provider *Provider
	store    driven.VectorCacheStore // optional, may be nil
	entries  map[string]cacheEntry
}

type cacheEntry struct {
	vector    []float32
	createdAt time.Time
}

// NewEmbeddingCache creates a cache backed by the given provider and
// durable store. The store may be nil for a memory-only cache. Existing
// durable entries are loaded eagerly; a missing or corrupt store starts
// the cache empty rather than failing startup.
func NewEmbeddingCache(ctx context.Context, provider *Provider, store driven.VectorCacheStore) *EmbeddingCache {
	c := &EmbeddingCache{
		provider: provider,
		store:    store,
		entries:  make(map[string]cacheEntry),
	}
	if store != nil {
		persisted, err := store.LoadAll(ctx)
		if err != nil {
			logger.Warn("Failed to load embedding cache, starting empty: %v", err)
			return c
		}
		for _, e := range persisted {
			c.entries[e.Key] = cacheEntry{vector: e.Vector, createdAt: e.CreatedAt}
		}
		logger.Debug("Loaded %d cached embeddings", len(persisted))
	}
	return c
}

// NormalizeKey derives the cache key for a text: lowercased, internal
// whitespace collapsed to single spaces, ends trimmed.
func NormalizeKey(text string) string {
	return strings.ToLower(strings.Join(strings.Fields(text), " "))
}

// GetOrCompute returns the embedding for text, computing and caching it
// on first request.
func (c *EmbeddingCache) GetOrCompute(ctx context.Context, text string) ([]float32, error) {
	vectors, err := c.GetOrComputeBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// GetOrComputeBatch returns embeddings for all texts in order, batching
// the provider call to only the texts missing from the cache.
func (c *EmbeddingCache) GetOrComputeBatch(ctx context.Context, texts []string) ([][]float32, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]string, len(texts))
	var missing []string
	seen := make(map[string]bool)
	for i, text := range texts {
		keys[i] = NormalizeKey(text)
		if _, ok := c.entries[keys[i]]; !ok && !seen[keys[i]] {
			seen[keys[i]] = true
			missing = append(missing, keys[i])
		}
	}

	if len(missing) > 0 {
		logger.Debug("Embedding cache: %d hits, %d misses", len(texts)-len(missing), len(missing))
		computed, err := c.provider.EmbedBatch(ctx, missing)
		if err != nil {
			return nil, err
		}
		now := time.Now()
		for i, key := range missing {
			c.entries[key] = cacheEntry{vector: computed[i], createdAt: now}
			c.persist(ctx, driven.VectorEntry{Key: key, Vector: computed[i], CreatedAt: now})
		}
	}

	vectors := make([][]float32, len(texts))
	for i, key := range keys {
		vectors[i] = c.entries[key].vector
	}
	return vectors, nil
}

// persist writes one entry through to the durable store.
// Caller holds c.mu.
func (c *EmbeddingCache) persist(ctx context.Context, entry driven.VectorEntry) {
	if c.store == nil {
		return
	}
	if err := c.store.Put(ctx, entry); err != nil {
		logger.Warn("Failed to persist embedding for %q: %v", entry.Key, err)
	}
}

// Len returns the number of cached entries.
func (c *EmbeddingCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
