package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/inkwell-labs/inkwell-cli/internal/core/ports/driven"
)

// --- Mock implementations shared by the service tests ---

// mockEmbeddingService implements driven.EmbeddingService with fixed
// vectors keyed by normalized text. Unknown texts fail loudly so a test
// cannot silently score garbage.
type mockEmbeddingService struct {
	mu         sync.Mutex
	vectors    map[string][]float32
	embedCalls int
	embedErr   error
	closed     bool
}

func newMockEmbeddingService(vectors map[string][]float32) *mockEmbeddingService {
	return &mockEmbeddingService{vectors: vectors}
}

func (m *mockEmbeddingService) Embed(_ context.Context, text string) ([]float32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.embedCalls++
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	vec, ok := m.vectors[text]
	if !ok {
		return nil, fmt.Errorf("no fixture vector for %q", text)
	}
	return vec, nil
}

func (m *mockEmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		vec, err := m.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		out[i] = vec
	}
	return out, nil
}

func (m *mockEmbeddingService) Dimensions() int { return 3 }

func (m *mockEmbeddingService) ModelName() string { return "mock-embedder" }

func (m *mockEmbeddingService) Ping(_ context.Context) error { return nil }

func (m *mockEmbeddingService) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *mockEmbeddingService) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.embedCalls
}

// availableProvider wraps a mock service in a Provider.
func availableProvider(svc driven.EmbeddingService) *Provider {
	return NewProvider(func(_ context.Context) (driven.EmbeddingService, error) {
		return svc, nil
	})
}

// unavailableProvider always fails to load.
func unavailableProvider() *Provider {
	return NewProvider(func(_ context.Context) (driven.EmbeddingService, error) {
		return nil, fmt.Errorf("model download failed")
	})
}

// failingCacheStore implements driven.VectorCacheStore and fails every
// operation, for persistence-failure tests.
type failingCacheStore struct {
	loadErr error
	putErr  error
	puts    int
}

func (s *failingCacheStore) LoadAll(_ context.Context) ([]driven.VectorEntry, error) {
	return nil, s.loadErr
}

func (s *failingCacheStore) Put(_ context.Context, _ driven.VectorEntry) error {
	s.puts++
	return s.putErr
}

func (s *failingCacheStore) Close() error { return nil }
