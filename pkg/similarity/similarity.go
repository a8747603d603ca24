package similarity

import (
	"context"
	"math"
	"strings"
	"sync"

	"github.com/cinepedia/scraper/pkg/ai"
)

// DefaultThreshold is the cosine similarity above which two section titles
// are considered the same heading. Encyclopedia headings are short, so the
// bar sits fairly low.
const DefaultThreshold = 0.55

// Matcher decides whether a page section title matches one of the headings
// a resolver is configured to read.
type Matcher interface {
	Matches(ctx context.Context, title string, candidates []string) (bool, error)
}

// EmbeddingMatcher matches titles by exact casefolded equality first and
// falls back to embedding cosine similarity for reworded headings
// ("Résumé détaillé" vs "Résumé"). Embeddings are cached per title since
// the same config headings are compared against every page.
type EmbeddingMatcher struct {
	client    ai.Client
	threshold float64

	mu    sync.Mutex
	cache map[string][]float32
}

func NewEmbeddingMatcher(client ai.Client, threshold float64) *EmbeddingMatcher {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &EmbeddingMatcher{
		client:    client,
		threshold: threshold,
		cache:     map[string][]float32{},
	}
}

func (m *EmbeddingMatcher) Matches(ctx context.Context, title string, candidates []string) (bool, error) {
	folded := fold(title)
	for _, c := range candidates {
		if folded == fold(c) {
			return true, nil
		}
	}

	// Exact match failed; an empty title only ever matches exactly.
	if folded == "" {
		return false, nil
	}

	titleVec, err := m.embed(ctx, title)
	if err != nil {
		return false, err
	}
	for _, c := range candidates {
		if fold(c) == "" {
			continue
		}
		candVec, err := m.embed(ctx, c)
		if err != nil {
			return false, err
		}
		if Cosine(titleVec, candVec) >= m.threshold {
			return true, nil
		}
	}
	return false, nil
}

func (m *EmbeddingMatcher) embed(ctx context.Context, text string) ([]float32, error) {
	key := fold(text)

	m.mu.Lock()
	cached, ok := m.cache[key]
	m.mu.Unlock()
	if ok {
		return cached, nil
	}

	vec, err := m.client.GenerateEmbedding(ctx, []byte(text))
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.cache[key] = vec
	m.mu.Unlock()
	return vec, nil
}

func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Cosine computes the cosine similarity of two vectors. Mismatched lengths
// or zero vectors yield 0.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
