package resolver

import (
	"context"
	"strings"

	"github.com/cinepedia/scraper/pkg/ai"
	"github.com/cinepedia/scraper/pkg/common"
	"github.com/cinepedia/scraper/pkg/entity"
	"github.com/cinepedia/scraper/pkg/extract"
	"github.com/cinepedia/scraper/pkg/similarity"
)

// PersonResolver resolves a person page: biography, characteristics and
// visible-feature extraction, media patching and nationality cleanup.
type PersonResolver struct {
	matcher similarity.Matcher
	configs []ResolutionConfig
}

// NewPersonResolver builds a person resolver with the default section
// configuration.
func NewPersonResolver(
	client ai.Client,
	matcher similarity.Matcher,
) *PersonResolver {
	configs := []ResolutionConfig{
		{
			Extractor: extract.NewBiographyExtractor(client),
			SectionTitles: []string{
				common.InfoboxSectionTitle,
				common.BiographySection,
				common.OrphanSectionTitle,
			},
		},
		{
			Extractor: extract.NewCharacteristicsExtractor(client),
			SectionTitles: []string{
				common.InfoboxSectionTitle,
				common.BiographySection,
			},
		},
		{
			Extractor: extract.NewVisibleFeaturesExtractor(client),
			SectionTitles: []string{
				common.BiographySection,
				common.AnalysisSection,
			},
		},
	}

	return &PersonResolver{
		matcher: matcher,
		configs: configs,
	}
}

func (r *PersonResolver) EntityType() string { return common.EntityTypePerson }

func (r *PersonResolver) Resolve(
	ctx context.Context,
	base common.BaseInfo,
	sections []*common.Section,
) (any, error) {
	return r.ResolvePerson(ctx, base, sections)
}

// ResolvePerson runs the full person pipeline.
func (r *PersonResolver) ResolvePerson(
	ctx context.Context,
	base common.BaseInfo,
	sections []*common.Section,
) (*entity.Person, error) {
	base.EntityType = common.EntityTypePerson

	parts, err := extractParts(ctx, r.matcher, r.configs, base, sections)
	if err != nil {
		return nil, err
	}

	person, err := entity.ComposePerson(base, parts)
	if err != nil {
		return nil, err
	}

	r.PatchMedia(person, sections)
	if person.Biography != nil {
		person.Biography.Nationalities = dedupeNationalities(person.Biography.Nationalities)
	}

	return person, nil
}

// PatchMedia folds the media items found on the page into the person's
// media component.
func (r *PersonResolver) PatchMedia(person *entity.Person, sections []*common.Section) {
	found := collectMedia(sections)
	if len(found) == 0 {
		return
	}

	media := person.Media
	if media == nil {
		media = &entity.PersonMedia{}
		media.ParentUID = person.UID
		entity.AssignUID(media)
		person.Media = media
	}

	seen := map[string]struct{}{}
	for _, existing := range media.Portraits {
		seen[existing.Src] = struct{}{}
	}
	for _, existing := range media.OtherMedia {
		seen[existing.Src] = struct{}{}
	}

	for _, m := range found {
		if _, dup := seen[m.Src]; dup {
			continue
		}
		seen[m.Src] = struct{}{}
		if isPortrait(m) {
			media.Portraits = append(media.Portraits, m)
		} else {
			media.OtherMedia = append(media.OtherMedia, m)
		}
	}
}

// dedupeNationalities removes case-insensitive duplicates while keeping
// first-occurrence order and original casing. Extractors frequently return
// both "Américaine" and "américaine" for the same infobox line.
func dedupeNationalities(values []string) []string {
	if len(values) < 2 {
		return values
	}
	seen := map[string]struct{}{}
	out := make([]string, 0, len(values))
	for _, v := range values {
		key := strings.ToLower(strings.TrimSpace(v))
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	return out
}
