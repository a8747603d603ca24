package extract

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/cinepedia/scraper/pkg/ai"
	"github.com/cinepedia/scraper/pkg/common"
	"github.com/cinepedia/scraper/pkg/entity"
)

// stubClient answers schema-constrained completions with canned JSON
// payloads keyed by format name.
type stubClient struct {
	payloads map[string]string
	failures int
	calls    int
}

func (s *stubClient) GenerateCompletion(ctx context.Context, prompt string, opts ...ai.GenerateOption) (string, error) {
	return "", errors.New("not implemented")
}

func (s *stubClient) GenerateCompletionWithFormat(ctx context.Context, name, description, prompt string, out any, opts ...ai.GenerateOption) error {
	s.calls++
	if s.failures > 0 {
		s.failures--
		return errors.New("model unavailable")
	}
	payload, ok := s.payloads[name]
	if !ok {
		return errors.New("no payload for " + name)
	}
	return json.Unmarshal([]byte(payload), out)
}

func (s *stubClient) GenerateEmbedding(ctx context.Context, input []byte) ([]float32, error) {
	return nil, errors.New("not implemented")
}

func (s *stubClient) ResetMetrics()               {}
func (s *stubClient) GetMetrics() ai.ModelMetrics { return ai.ModelMetrics{} }

func TestSpecificationsExtractor(t *testing.T) {
	client := &stubClient{payloads: map[string]string{
		"movie_specifications": `{
			"directed_by": ["Alfred Hitchcock"],
			"genres": ["thriller"],
			"duration": "2 heures 8 minutes",
			"confidence": 0.9
		}`,
	}}

	ext := NewSpecificationsExtractor(client)
	results, err := ext.Extract(context.Background(), &common.Section{
		Title:   common.TechnicalSheetSection,
		Content: "Réalisation : Alfred Hitchcock. Durée : 2 heures 8 minutes.",
	}, common.BaseInfo{Title: "Sueurs froides"})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}

	spec, ok := results[0].Entity.(*entity.Specifications)
	if !ok {
		t.Fatalf("expected *entity.Specifications, got %T", results[0].Entity)
	}
	if spec.Duration != "2 heures 8 minutes" {
		t.Errorf("duration = %q", spec.Duration)
	}
	if results[0].Score != 0.9 {
		t.Errorf("score = %v, want 0.9", results[0].Score)
	}
}

func TestSummaryExtractorSourceAndEmpty(t *testing.T) {
	client := &stubClient{payloads: map[string]string{
		"movie_summary": `{"content": "Un détective sujet au vertige.", "confidence": 0.8}`,
	}}

	ext := NewSummaryExtractor(client)
	results, err := ext.Extract(context.Background(), &common.Section{
		Title:   common.SynopsisSection,
		Content: "Scottie, détective...",
	}, common.BaseInfo{Title: "Sueurs froides"})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	summary := results[0].Entity.(*entity.Summary)
	if summary.Source != common.SynopsisSection {
		t.Errorf("source = %q, want section title", summary.Source)
	}

	// An empty content means the section held no plot. No result, no error.
	client.payloads["movie_summary"] = `{"content": "", "confidence": 0.1}`
	results, err = ext.Extract(context.Background(), &common.Section{
		Title:   common.SynopsisSection,
		Content: "Voir aussi: liens externes",
	}, common.BaseInfo{Title: "Sueurs froides"})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results for empty content, got %d", len(results))
	}
}

func TestActorsExtractorOneResultPerActor(t *testing.T) {
	client := &stubClient{payloads: map[string]string{
		"movie_cast": `{"actors": [
			{"full_name": "James Stewart", "roles": ["Scottie"], "confidence": 0.95},
			{"full_name": "", "roles": ["?"], "confidence": 0.2},
			{"full_name": "Kim Novak", "roles": ["Madeleine", "Judy"], "confidence": 0.9}
		]}`,
	}}

	ext := NewActorsExtractor(client)
	results, err := ext.Extract(context.Background(), &common.Section{
		Title:   common.DistributionSection,
		Content: "James Stewart : Scottie...",
	}, common.BaseInfo{Title: "Sueurs froides"})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected nameless actor dropped, got %d results", len(results))
	}

	first := results[0].Entity.(*entity.Actor)
	if first.FullName != "James Stewart" || results[0].Score != 0.95 {
		t.Errorf("first actor = %q score %v", first.FullName, results[0].Score)
	}
	second := results[1].Entity.(*entity.Actor)
	if len(second.Roles) != 2 {
		t.Errorf("expected both roles kept, got %v", second.Roles)
	}
}

func TestExtractRetriesTransientFailures(t *testing.T) {
	client := &stubClient{
		payloads: map[string]string{
			"movie_summary": `{"content": "Histoire.", "confidence": 0.7}`,
		},
		failures: 2,
	}

	ext := NewSummaryExtractor(client)
	results, err := ext.Extract(context.Background(), &common.Section{
		Title:   common.SynopsisSection,
		Content: "Texte.",
	}, common.BaseInfo{Title: "Sueurs froides"})
	if err != nil {
		t.Fatalf("expected retries to recover, got %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if client.calls != 3 {
		t.Errorf("calls = %d, want 3", client.calls)
	}
}

func TestExtractGivesUpAfterRetries(t *testing.T) {
	client := &stubClient{
		payloads: map[string]string{
			"movie_summary": `{"content": "Histoire.", "confidence": 0.7}`,
		},
		failures: extractRetries,
	}

	ext := NewSummaryExtractor(client)
	_, err := ext.Extract(context.Background(), &common.Section{
		Title:   common.SynopsisSection,
		Content: "Texte.",
	}, common.BaseInfo{Title: "Sueurs froides"})
	if err == nil {
		t.Fatal("expected error after exhausted retries")
	}
}

func TestVisibleFeaturesResolveAs(t *testing.T) {
	client := &stubClient{payloads: map[string]string{
		"person_visible_features": `{"traits": ["grand", "moustache"], "confidence": 0.6}`,
	}}

	ext := NewVisibleFeaturesExtractor(client)
	if ext.ResolveAs() != "characteristics" {
		t.Fatalf("ResolveAs = %q, want characteristics", ext.ResolveAs())
	}

	results, err := ext.Extract(context.Background(), &common.Section{
		Title:   common.BiographySection,
		Content: "Un homme grand à moustache.",
	}, common.BaseInfo{Title: "Georges Méliès"})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
}
