package services

import (
	"context"
	"math"
	"strings"
	"unicode"

	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
	"github.com/inkwell-labs/inkwell-cli/internal/logger"
)

// SimilarityScorer scores a query text against candidate tasks.
// It uses cosine similarity over cached embeddings when the provider is
// available and degrades to token-set Jaccard similarity otherwise.
// An embedding failure mid-call also degrades that call to lexical
// scoring rather than failing it.
type SimilarityScorer struct {
	provider *Provider
	cache    *EmbeddingCache
}

// NewSimilarityScorer creates a scorer over the given provider and cache.
func NewSimilarityScorer(provider *Provider, cache *EmbeddingCache) *SimilarityScorer {
	return &SimilarityScorer{provider: provider, cache: cache}
}

// Score returns one result per candidate, in candidate order.
func (s *SimilarityScorer) Score(
	ctx context.Context, query string, candidates []domain.ExistingTask,
) []domain.SimilarityResult {
	if len(candidates) == 0 {
		return []domain.SimilarityResult{}
	}

	if s.provider.Available(ctx) {
		results, err := s.embeddingScore(ctx, query, candidates)
		if err == nil {
			return results
		}
		logger.Warn("Embedding scoring failed, degrading to lexical: %v", err)
	}
	return s.lexicalScore(query, candidates)
}

// Best returns the highest-scoring candidate, or nil when candidates is
// empty. Ties keep the earliest-supplied candidate so duplicate
// assignment is deterministic across runs.
func (s *SimilarityScorer) Best(
	ctx context.Context, query string, candidates []domain.ExistingTask,
) *domain.SimilarityResult {
	results := s.Score(ctx, query, candidates)
	if len(results) == 0 {
		return nil
	}
	best := results[0]
	for _, r := range results[1:] {
		if r.Score > best.Score {
			best = r
		}
	}
	return &best
}

func (s *SimilarityScorer) embeddingScore(
	ctx context.Context, query string, candidates []domain.ExistingTask,
) ([]domain.SimilarityResult, error) {
	texts := make([]string, 0, len(candidates)+1)
	texts = append(texts, query)
	for _, c := range candidates {
		texts = append(texts, c.Text)
	}

	vectors, err := s.cache.GetOrComputeBatch(ctx, texts)
	if err != nil {
		return nil, err
	}

	queryVec := vectors[0]
	results := make([]domain.SimilarityResult, len(candidates))
	for i, c := range candidates {
		results[i] = domain.SimilarityResult{
			CandidateID: c.ID,
			Score:       Cosine(queryVec, vectors[i+1]),
			Method:      domain.MethodEmbedding,
		}
	}
	return results, nil
}

func (s *SimilarityScorer) lexicalScore(
	query string, candidates []domain.ExistingTask,
) []domain.SimilarityResult {
	queryTokens := tokenSet(query)
	results := make([]domain.SimilarityResult, len(candidates))
	for i, c := range candidates {
		results[i] = domain.SimilarityResult{
			CandidateID: c.ID,
			Score:       jaccard(queryTokens, tokenSet(c.Text)),
			Method:      domain.MethodLexical,
		}
	}
	return results
}

// Cosine returns the cosine similarity of two vectors. A zero-norm
// vector or mismatched lengths score 0.0.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0.0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0.0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// tokenSet lowercases text, splits on non-alphanumeric runes, and
// returns the deduplicated set of non-empty tokens.
func tokenSet(text string) map[string]struct{} {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

// jaccard returns the intersection size over the union size. An empty
// union scores 0.0, not NaN.
func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0.0
	}
	intersection := 0
	for token := range a {
		if _, ok := b[token]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0.0
	}
	return float64(intersection) / float64(union)
}
