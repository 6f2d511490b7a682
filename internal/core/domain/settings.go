package domain

import "fmt"

// EmbeddingBackend identifies the embedding service used for semantic
// duplicate detection.
type EmbeddingBackend string

// Available embedding backends.
const (
	// BackendOllama is a local Ollama instance.
	BackendOllama EmbeddingBackend = "ollama"

	// BackendOpenAI is the OpenAI embeddings API.
	BackendOpenAI EmbeddingBackend = "openai"

	// BackendOff disables embeddings; duplicate detection uses the
	// lexical method only.
	BackendOff EmbeddingBackend = "off"
)

// IsValid returns true if the backend is recognised.
func (b EmbeddingBackend) IsValid() bool {
	switch b {
	case BackendOllama, BackendOpenAI, BackendOff:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b EmbeddingBackend) String() string {
	return string(b)
}

// Default configuration values.
//
// The similarity threshold default follows the deployed configuration
// of the original system (0.8). Deployments that prefer stricter
// matching raise it per call or in the settings file.
const (
	DefaultSimilarityThreshold       = 0.8
	DefaultConfidenceReviewThreshold = 0.9
	DefaultOllamaModel               = "all-minilm"
	DefaultOpenAIModel               = "text-embedding-3-small"
)

// EmbeddingSettings configures the embedding backend.
type EmbeddingSettings struct {
	// Backend selects the embedding service.
	Backend EmbeddingBackend `toml:"backend"`

	// Model is the embedding model id. Empty uses the backend default.
	Model string `toml:"model"`

	// BaseURL overrides the backend's API base URL.
	BaseURL string `toml:"base_url"`

	// APIKey authenticates against hosted backends.
	APIKey string `toml:"api_key"`
}

// TodoistSettings configures the Todoist task store adapter.
type TodoistSettings struct {
	// Token is the Todoist API token.
	Token string `toml:"token"`
}

// Settings is the configuration surface consumed by the core.
type Settings struct {
	// SimilarityThreshold is the minimum similarity score for a new
	// item to be classified as a duplicate.
	SimilarityThreshold float64 `toml:"similarity_threshold"`

	// ConfidenceReviewThreshold is the OCR confidence below which an
	// item is queued for human review before duplicate detection.
	ConfidenceReviewThreshold float64 `toml:"confidence_review_threshold"`

	// CachePath is the location of the durable embedding cache.
	// Empty uses ~/.inkwell/cache/embeddings.db.
	CachePath string `toml:"cache_path"`

	// Embedding configures the embedding backend.
	Embedding EmbeddingSettings `toml:"embedding"`

	// Todoist configures the task store.
	Todoist TodoistSettings `toml:"todoist"`
}

// DefaultSettings returns settings with all defaults applied.
func DefaultSettings() Settings {
	return Settings{
		SimilarityThreshold:       DefaultSimilarityThreshold,
		ConfidenceReviewThreshold: DefaultConfidenceReviewThreshold,
		Embedding: EmbeddingSettings{
			Backend: BackendOllama,
		},
	}
}

// Validate checks the settings for out-of-range values.
func (s Settings) Validate() error {
	if s.SimilarityThreshold < -1 || s.SimilarityThreshold > 1 {
		return fmt.Errorf("%w: similarity_threshold %.2f outside [-1,1]",
			ErrInvalidInput, s.SimilarityThreshold)
	}
	if s.ConfidenceReviewThreshold < 0 || s.ConfidenceReviewThreshold > 1 {
		return fmt.Errorf("%w: confidence_review_threshold %.2f outside [0,1]",
			ErrInvalidInput, s.ConfidenceReviewThreshold)
	}
	if s.Embedding.Backend != "" && !s.Embedding.Backend.IsValid() {
		return fmt.Errorf("%w: unknown embedding backend %q",
			ErrInvalidInput, s.Embedding.Backend)
	}
	return nil
}
