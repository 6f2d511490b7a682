package driven

import "context"

// EmbeddingService generates vector embeddings from task text.
//
// Implementations may include:
//   - Ollama (all-minilm, nomic-embed-text)
//   - OpenAI (text-embedding-3-small, text-embedding-3-large)
//
// Construction of an implementation is cheap; the expensive part is the
// first round trip, which is why services.Provider performs a one-time
// Ping before committing to the embedding method.
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts efficiently.
	// This is more efficient than calling Embed in a loop for large batches.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size (e.g., 384, 1536).
	// The dimension is fixed by the model for the process lifetime.
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight
	// test request. Used once at first use to decide availability.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
