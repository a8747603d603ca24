package resolver

import (
	"context"
	"errors"

	"github.com/cinepedia/scraper/pkg/common"
	"github.com/cinepedia/scraper/pkg/entity"
	"github.com/cinepedia/scraper/pkg/extract"
	"github.com/cinepedia/scraper/pkg/logger"
	"github.com/cinepedia/scraper/pkg/similarity"
)

// ErrNoSections is returned when none of a resolver's configured section
// headings appear on the page. The page is likely not the kind of entity
// the resolver handles.
var ErrNoSections = errors.New("no configured sections found on page")

// ErrNoParts is returned when sections matched but no extractor produced
// a single result. Composing would store a bare shell entity, so the page
// counts as unresolved instead.
var ErrNoParts = errors.New("no field could be extracted from any configuration")

// ResolutionConfig binds one extractor to the section headings it should
// read. A resolver is a list of these, walked in order over the page.
type ResolutionConfig struct {
	Extractor     extract.Extractor
	SectionTitles []string
}

// Resolver turns a parsed page into one canonical entity.
type Resolver interface {
	EntityType() string
	Resolve(
		ctx context.Context,
		base common.BaseInfo,
		sections []*common.Section,
	) (any, error)
}

// extractParts runs every configured extractor over the sections whose
// titles match its configuration and collects the scored results.
//
// A failing extractor is logged and skipped: one bad model response must
// not cost the rest of the page. A page where no configuration matches
// any section fails with ErrNoSections; one where sections matched but
// every extractor came back empty fails with ErrNoParts.
func extractParts(
	ctx context.Context,
	matcher similarity.Matcher,
	configs []ResolutionConfig,
	base common.BaseInfo,
	sections []*common.Section,
) ([]entity.ExtractionResult, error) {
	flat := flattenSections(sections)
	parts := []entity.ExtractionResult{}
	matchedAny := false

	for _, cfg := range configs {
		for _, section := range flat {
			ok, err := matcher.Matches(ctx, section.Title, cfg.SectionTitles)
			if err != nil {
				logger.Warn(
					"Section matching failed, skipping section",
					"section", section.Title,
					"entity", base.Title,
					"err", err,
				)
				continue
			}
			if !ok {
				continue
			}
			matchedAny = true

			results, err := cfg.Extractor.Extract(ctx, section, base)
			if err != nil {
				logger.Warn(
					"Extraction failed, skipping section",
					"kind", cfg.Extractor.Kind(),
					"section", section.Title,
					"entity", base.Title,
					"err", err,
				)
				continue
			}

			resolveAs := cfg.Extractor.ResolveAs()
			for _, r := range results {
				if r.ResolveAs == "" {
					r.ResolveAs = resolveAs
				}
				parts = append(parts, r)
			}
		}
	}

	if !matchedAny {
		return nil, ErrNoSections
	}
	if len(parts) == 0 {
		return nil, ErrNoParts
	}
	return parts, nil
}

// flattenSections walks the section tree depth first, parents before
// children.
func flattenSections(sections []*common.Section) []*common.Section {
	var flat []*common.Section
	for _, s := range sections {
		if s == nil {
			continue
		}
		flat = append(flat, s)
		flat = append(flat, flattenSections(s.Children)...)
	}
	return flat
}
