package similarity

import (
	"context"
	"testing"

	"github.com/cinepedia/scraper/pkg/ai"
)

// stubClient returns canned embedding vectors keyed by input text.
type stubClient struct {
	vectors map[string][]float32
	calls   int
}

func (s *stubClient) GenerateCompletion(context.Context, string, ...ai.GenerateOption) (string, error) {
	return "", nil
}

func (s *stubClient) GenerateCompletionWithFormat(context.Context, string, string, string, any, ...ai.GenerateOption) error {
	return nil
}

func (s *stubClient) GenerateEmbedding(_ context.Context, input []byte) ([]float32, error) {
	s.calls++
	if v, ok := s.vectors[string(input)]; ok {
		return v, nil
	}
	return []float32{0, 0, 1}, nil
}

func (s *stubClient) ResetMetrics()               {}
func (s *stubClient) GetMetrics() ai.ModelMetrics { return ai.ModelMetrics{} }

func TestMatchesExactFold(t *testing.T) {
	stub := &stubClient{}
	m := NewEmbeddingMatcher(stub, 0)

	ok, err := m.Matches(context.Background(), "  Synopsis ", []string{"synopsis"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("casefolded equality did not match")
	}
	if stub.calls != 0 {
		t.Errorf("exact match hit the embedding model %d times", stub.calls)
	}
}

func TestMatchesEmptyTitleOnlyExact(t *testing.T) {
	stub := &stubClient{}
	m := NewEmbeddingMatcher(stub, 0)

	ok, err := m.Matches(context.Background(), "", []string{"", "Synopsis"})
	if err != nil || !ok {
		t.Errorf("empty title should match empty candidate: %v %v", ok, err)
	}

	ok, err = m.Matches(context.Background(), "", []string{"Synopsis"})
	if err != nil || ok {
		t.Errorf("empty title matched a non-empty candidate: %v %v", ok, err)
	}
	if stub.calls != 0 {
		t.Errorf("empty title hit the embedding model %d times", stub.calls)
	}
}

func TestMatchesEmbeddingFallback(t *testing.T) {
	stub := &stubClient{vectors: map[string][]float32{
		"Résumé détaillé": {1, 0, 0},
		"Résumé":          {0.9, 0.1, 0},
		"Distribution":    {0, 1, 0},
	}}
	m := NewEmbeddingMatcher(stub, 0.8)

	ok, err := m.Matches(context.Background(), "Résumé détaillé", []string{"Résumé"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("similar heading did not match")
	}

	ok, err = m.Matches(context.Background(), "Résumé détaillé", []string{"Distribution"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("dissimilar heading matched")
	}
}

func TestMatcherCachesEmbeddings(t *testing.T) {
	stub := &stubClient{vectors: map[string][]float32{}}
	m := NewEmbeddingMatcher(stub, 0.99)

	ctx := context.Background()
	if _, err := m.Matches(ctx, "Analyse", []string{"Contexte"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first := stub.calls
	if _, err := m.Matches(ctx, "Analyse", []string{"Contexte"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stub.calls != first {
		t.Errorf("repeat comparison re-embedded: %d -> %d calls", first, stub.calls)
	}
}

func TestCosine(t *testing.T) {
	cases := []struct {
		name string
		a    []float32
		b    []float32
		want float64
	}{
		{name: "identical", a: []float32{1, 0}, b: []float32{1, 0}, want: 1},
		{name: "orthogonal", a: []float32{1, 0}, b: []float32{0, 1}, want: 0},
		{name: "opposite", a: []float32{1, 0}, b: []float32{-1, 0}, want: -1},
		{name: "length mismatch", a: []float32{1}, b: []float32{1, 0}, want: 0},
		{name: "zero vector", a: []float32{0, 0}, b: []float32{1, 0}, want: 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Cosine(tc.a, tc.b)
			if diff := got - tc.want; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("Cosine() = %v, want %v", got, tc.want)
			}
		})
	}
}
