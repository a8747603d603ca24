package resolver

import (
	"context"

	"github.com/cinepedia/scraper/pkg/ai"
	"github.com/cinepedia/scraper/pkg/common"
	"github.com/cinepedia/scraper/pkg/entity"
	"github.com/cinepedia/scraper/pkg/extract"
	"github.com/cinepedia/scraper/pkg/logger"
	"github.com/cinepedia/scraper/pkg/similarity"
)

// MovieResolver resolves a movie page: extraction configs for the infobox,
// technical sheet, plot, cast and analysis sections, plus media patching
// and running-time normalization over the composed result.
type MovieResolver struct {
	matcher similarity.Matcher
	configs []ResolutionConfig
	parsers []DurationParser
}

// NewMovieResolver builds a movie resolver with the default section
// configuration. Extra duration parsers take precedence over the built-in
// clock and French notations.
func NewMovieResolver(
	client ai.Client,
	matcher similarity.Matcher,
	extraParsers ...DurationParser,
) *MovieResolver {
	configs := []ResolutionConfig{
		{
			Extractor: extract.NewSpecificationsExtractor(client),
			SectionTitles: []string{
				common.InfoboxSectionTitle,
				common.TechnicalSheetSection,
			},
		},
		{
			Extractor: extract.NewSummaryExtractor(client),
			SectionTitles: []string{
				common.SynopsisSection,
				common.SummarySection,
				common.OrphanSectionTitle,
			},
		},
		{
			Extractor: extract.NewActorsExtractor(client),
			SectionTitles: []string{
				common.DistributionSection,
				common.TechnicalSheetSection,
			},
		},
		{
			Extractor: extract.NewInfluenceExtractor(client),
			SectionTitles: []string{
				common.InfluencesSection,
				common.AnalysisSection,
				common.ContextSection,
			},
		},
	}

	parsers := append(extraParsers, ClockDurationParser{}, FrenchDurationParser{})

	return &MovieResolver{
		matcher: matcher,
		configs: configs,
		parsers: parsers,
	}
}

func (r *MovieResolver) EntityType() string { return common.EntityTypeMovie }

func (r *MovieResolver) Resolve(
	ctx context.Context,
	base common.BaseInfo,
	sections []*common.Section,
) (any, error) {
	return r.ResolveMovie(ctx, base, sections)
}

// ResolveMovie runs the full movie pipeline: section extraction,
// composition, media patching and duration normalization.
func (r *MovieResolver) ResolveMovie(
	ctx context.Context,
	base common.BaseInfo,
	sections []*common.Section,
) (*entity.Movie, error) {
	base.EntityType = common.EntityTypeMovie

	parts, err := extractParts(ctx, r.matcher, r.configs, base, sections)
	if err != nil {
		return nil, err
	}

	movie, err := entity.ComposeMovie(base, parts)
	if err != nil {
		return nil, err
	}

	r.PatchMedia(movie, sections)
	r.normalizeDuration(movie)

	return movie, nil
}

// PatchMedia folds the media items found on the page into the movie's
// media component. Extractors never see images, so this is the only route
// media takes into an entity.
func (r *MovieResolver) PatchMedia(movie *entity.Movie, sections []*common.Section) {
	found := collectMedia(sections)
	if len(found) == 0 {
		return
	}

	media := movie.Media
	if media == nil {
		media = &entity.Media{}
		media.ParentUID = movie.UID
		entity.AssignUID(media)
		movie.Media = media
	}

	seen := map[string]struct{}{}
	for _, existing := range media.Posters {
		seen[existing.Src] = struct{}{}
	}
	for _, existing := range media.Trailers {
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
		switch {
		case isPoster(m):
			media.Posters = append(media.Posters, m)
		case isTrailer(m):
			media.Trailers = append(media.Trailers, m)
		default:
			media.OtherMedia = append(media.OtherMedia, m)
		}
	}
}

// normalizeDuration rewrites the extracted running time into canonical
// HH:MM:SS clock form. A value no parser understands is cleared with a
// warning; the field holds canonical durations or nothing.
func (r *MovieResolver) normalizeDuration(movie *entity.Movie) {
	if movie.Specifications == nil || movie.Specifications.Duration == "" {
		return
	}

	raw := movie.Specifications.Duration
	d, ok := parseDuration(raw, r.parsers)
	if !ok {
		logger.Warn("Unparseable running time, clearing field", "movie", movie.UID, "duration", raw)
		movie.Specifications.Duration = ""
		return
	}
	movie.Specifications.Duration = formatDuration(d)
}
