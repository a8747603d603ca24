package resolver

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/cinepedia/scraper/pkg/common"
	"github.com/cinepedia/scraper/pkg/entity"
)

// foldMatcher matches section titles by casefolded equality only, keeping
// tests free of embedding calls.
type foldMatcher struct{}

func (foldMatcher) Matches(_ context.Context, title string, candidates []string) (bool, error) {
	for _, c := range candidates {
		if strings.EqualFold(strings.TrimSpace(title), strings.TrimSpace(c)) {
			return true, nil
		}
	}
	return false, nil
}

// stubExtractor returns canned results for a fixed component kind.
type stubExtractor struct {
	kind      string
	resolveAs string
	results   []entity.ExtractionResult
	err       error
	calls     int
}

func (s *stubExtractor) Kind() string      { return s.kind }
func (s *stubExtractor) ResolveAs() string { return s.resolveAs }

func (s *stubExtractor) Extract(
	_ context.Context,
	_ *common.Section,
	_ common.BaseInfo,
) ([]entity.ExtractionResult, error) {
	s.calls++
	return s.results, s.err
}

func testBase() common.BaseInfo {
	return common.BaseInfo{
		Title:     "Sueurs froides",
		Permalink: "https://fr.wikipedia.org/wiki/Sueurs_froides",
		SourceID:  "Sueurs froides",
	}
}

func TestExtractPartsMatchesConfiguredSections(t *testing.T) {
	summary := &stubExtractor{
		kind:    "summary",
		results: []entity.ExtractionResult{{Entity: &entity.Summary{Content: "Un synopsis."}, Score: 0.8}},
	}
	configs := []ResolutionConfig{
		{Extractor: summary, SectionTitles: []string{common.SynopsisSection}},
	}
	sections := []*common.Section{
		{Title: common.SynopsisSection, Content: "..."},
		{Title: "Autour du film", Content: "..."},
	}

	parts, err := extractParts(context.Background(), foldMatcher{}, configs, testBase(), sections)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.calls != 1 {
		t.Errorf("extractor ran %d times, want 1", summary.calls)
	}
	if len(parts) != 1 {
		t.Fatalf("parts = %d, want 1", len(parts))
	}
}

func TestExtractPartsWalksChildSections(t *testing.T) {
	actors := &stubExtractor{
		kind:    "actor",
		results: []entity.ExtractionResult{{Entity: &entity.Actor{FullName: "Kim Novak"}, Score: 0.9}},
	}
	configs := []ResolutionConfig{
		{Extractor: actors, SectionTitles: []string{common.DistributionSection}},
	}
	sections := []*common.Section{
		{
			Title: "Fiche technique et distribution",
			Children: []*common.Section{
				{Title: common.DistributionSection, Content: "..."},
			},
		},
	}

	_, err := extractParts(context.Background(), foldMatcher{}, configs, testBase(), sections)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if actors.calls != 1 {
		t.Errorf("nested section was not visited: %d calls", actors.calls)
	}
}

func TestExtractPartsSkipsFailingExtractor(t *testing.T) {
	failing := &stubExtractor{kind: "specifications", err: errors.New("model unavailable")}
	working := &stubExtractor{
		kind:    "summary",
		results: []entity.ExtractionResult{{Entity: &entity.Summary{Content: "Un synopsis."}, Score: 0.5}},
	}
	configs := []ResolutionConfig{
		{Extractor: failing, SectionTitles: []string{common.InfoboxSectionTitle}},
		{Extractor: working, SectionTitles: []string{common.SynopsisSection}},
	}
	sections := []*common.Section{
		{Title: common.InfoboxSectionTitle, Content: "..."},
		{Title: common.SynopsisSection, Content: "..."},
	}

	parts, err := extractParts(context.Background(), foldMatcher{}, configs, testBase(), sections)
	if err != nil {
		t.Fatalf("one failing extractor aborted the page: %v", err)
	}
	if len(parts) != 1 {
		t.Errorf("parts = %d, want 1 from the working extractor", len(parts))
	}
}

func TestExtractPartsNoSections(t *testing.T) {
	configs := []ResolutionConfig{
		{Extractor: &stubExtractor{kind: "summary"}, SectionTitles: []string{common.SynopsisSection}},
	}
	sections := []*common.Section{
		{Title: "Notes et références", Content: "..."},
	}

	_, err := extractParts(context.Background(), foldMatcher{}, configs, testBase(), sections)
	if !errors.Is(err, ErrNoSections) {
		t.Errorf("err = %v, want ErrNoSections", err)
	}
}

func TestExtractPartsNoParts(t *testing.T) {
	failing := &stubExtractor{kind: "specifications", err: errors.New("model unavailable")}
	empty := &stubExtractor{kind: "summary"}
	configs := []ResolutionConfig{
		{Extractor: failing, SectionTitles: []string{common.InfoboxSectionTitle}},
		{Extractor: empty, SectionTitles: []string{common.SynopsisSection}},
	}
	sections := []*common.Section{
		{Title: common.InfoboxSectionTitle, Content: "..."},
		{Title: common.SynopsisSection, Content: "..."},
	}

	// Sections matched but nothing came back: the page must count as
	// unresolved, not compose into a bare shell entity.
	_, err := extractParts(context.Background(), foldMatcher{}, configs, testBase(), sections)
	if !errors.Is(err, ErrNoParts) {
		t.Errorf("err = %v, want ErrNoParts", err)
	}
}

func TestExtractPartsAppliesResolveAs(t *testing.T) {
	features := &stubExtractor{
		kind:      "visible_features",
		resolveAs: "characteristics",
		results:   []entity.ExtractionResult{{Entity: &entity.VisibleFeatures{Traits: []string{"blonde"}}, Score: 0.4}},
	}
	configs := []ResolutionConfig{
		{Extractor: features, SectionTitles: []string{common.BiographySection}},
	}
	sections := []*common.Section{{Title: common.BiographySection, Content: "..."}}

	parts, err := extractParts(context.Background(), foldMatcher{}, configs, testBase(), sections)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(parts) != 1 || parts[0].ResolveAs != "characteristics" {
		t.Errorf("parts = %+v", parts)
	}
}

func TestMovieResolverPatchMedia(t *testing.T) {
	r := NewMovieResolver(nil, foldMatcher{})
	movie := &entity.Movie{UID: "movie_sueurs_froides", Title: "Sueurs froides", Type: common.EntityTypeMovie}
	sections := []*common.Section{
		{
			Title: common.InfoboxSectionTitle,
			Media: []common.Media{
				{Src: "https://example.org/affiche.jpg", MediaType: "poster"},
				{Src: "https://example.org/photo.jpg", MediaType: "image"},
				{Src: "https://example.org/photo.jpg", MediaType: "image"},
			},
		},
	}

	r.PatchMedia(movie, sections)

	if movie.Media == nil {
		t.Fatal("media component was not created")
	}
	if movie.Media.UID != "movie_sueurs_froides_media" {
		t.Errorf("media uid = %q", movie.Media.UID)
	}
	if len(movie.Media.Posters) != 1 || len(movie.Media.OtherMedia) != 1 {
		t.Errorf("posters = %d, other = %d", len(movie.Media.Posters), len(movie.Media.OtherMedia))
	}
}

func TestMovieResolverNormalizeDuration(t *testing.T) {
	r := NewMovieResolver(nil, foldMatcher{})

	movie := &entity.Movie{Specifications: &entity.Specifications{Duration: "2 heures 8 minutes"}}
	r.normalizeDuration(movie)
	if movie.Specifications.Duration != "02:08:00" {
		t.Errorf("duration = %q, want %q", movie.Specifications.Duration, "02:08:00")
	}

	// Unpadded clock notation is rewritten to the canonical form too.
	movie = &entity.Movie{Specifications: &entity.Specifications{Duration: "2:08:00"}}
	r.normalizeDuration(movie)
	if movie.Specifications.Duration != "02:08:00" {
		t.Errorf("duration = %q, want %q", movie.Specifications.Duration, "02:08:00")
	}

	// A value no parser understands is cleared, never stored raw.
	movie = &entity.Movie{Specifications: &entity.Specifications{Duration: "environ deux heures"}}
	r.normalizeDuration(movie)
	if movie.Specifications.Duration != "" {
		t.Errorf("unparseable duration kept as %q, want cleared", movie.Specifications.Duration)
	}
}

func TestDedupeNationalities(t *testing.T) {
	got := dedupeNationalities([]string{"Américaine", "américaine", " Américaine ", "Britannique"})
	if len(got) != 2 || got[0] != "Américaine" || got[1] != "Britannique" {
		t.Errorf("deduped = %v", got)
	}
}
