package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
	"github.com/inkwell-labs/inkwell-cli/internal/core/ports/driven"
	"github.com/inkwell-labs/inkwell-cli/internal/logger"
)

// EmbeddingFactory constructs and verifies an embedding backend.
// It is called at most once per Provider; a returned error marks the
// provider unavailable for the process lifetime.
type EmbeddingFactory func(ctx context.Context) (driven.EmbeddingService, error)

// Provider wraps an embedding backend behind a one-shot lazy
// initialization. The first use triggers the expensive backend load and
// connectivity check; both success and failure are memoized, because a
// failed load (missing model, unreachable server) is almost always
// persistent and retrying on every call would be expensive.
//
// A Provider is safe for concurrent use. Concurrent first-use is
// serialized behind a single initialization attempt.
type Provider struct {
	factory EmbeddingFactory

	once sync.Once
	svc  driven.EmbeddingService
	err  error
}

// NewProvider creates a provider around the given factory.
// A nil factory yields a provider that is permanently unavailable.
func NewProvider(factory EmbeddingFactory) *Provider {
	return &Provider{factory: factory}
}

// init performs the one-time backend load. The factory is expected to
// Ping the service so an unreachable backend is caught here rather than
// on the first Embed call.
func (p *Provider) init(ctx context.Context) {
	p.once.Do(func() {
		if p.factory == nil {
			p.err = domain.ErrModelUnavailable
			return
		}
		svc, err := p.factory(ctx)
		if err != nil {
			logger.Warn("Embedding backend failed to load, falling back to lexical matching: %v", err)
			p.err = fmt.Errorf("%w: %v", domain.ErrModelUnavailable, err)
			return
		}
		p.svc = svc
		logger.Info("Embedding backend ready: %s (%d dims)", svc.ModelName(), svc.Dimensions())
	})
}

// Available reports whether the embedding backend loaded successfully.
// The first call performs the load.
func (p *Provider) Available(ctx context.Context) bool {
	p.init(ctx)
	return p.err == nil
}

// Embed generates an embedding for the given text.
// Returns domain.ErrModelUnavailable when the backend failed to load.
func (p *Provider) Embed(ctx context.Context, text string) ([]float32, error) {
	p.init(ctx)
	if p.err != nil {
		return nil, p.err
	}
	return p.svc.Embed(ctx, text)
}

// EmbedBatch generates embeddings for multiple texts.
// Returns domain.ErrModelUnavailable when the backend failed to load.
func (p *Provider) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	p.init(ctx)
	if p.err != nil {
		return nil, p.err
	}
	return p.svc.EmbedBatch(ctx, texts)
}

// ModelName returns the loaded model's name, or "" when unavailable.
func (p *Provider) ModelName() string {
	if p.svc == nil {
		return ""
	}
	return p.svc.ModelName()
}

// Close releases the backend, if one was loaded.
func (p *Provider) Close() error {
	if p.svc == nil {
		return nil
	}
	return p.svc.Close()
}
