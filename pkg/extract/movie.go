package extract

import (
	"context"
	"fmt"

	"github.com/cinepedia/scraper/pkg/ai"
	"github.com/cinepedia/scraper/pkg/common"
	"github.com/cinepedia/scraper/pkg/entity"
)

type specificationsDTO struct {
	OtherTitles      []string `json:"other_titles,omitempty"`
	ReleaseDate      string   `json:"release_date,omitempty"`
	DirectedBy       []string `json:"directed_by,omitempty"`
	ProducedBy       []string `json:"produced_by,omitempty"`
	Genres           []string `json:"genres,omitempty"`
	SpecialEffectsBy []string `json:"special_effects_by,omitempty"`
	SceneryBy        []string `json:"scenery_by,omitempty"`
	WrittenBy        []string `json:"written_by,omitempty"`
	MusicBy          []string `json:"music_by,omitempty"`
	Duration         string   `json:"duration,omitempty"`
	Confidence       float64  `json:"confidence"`
}

// SpecificationsExtractor pulls the technical sheet of a movie out of the
// infobox or the "Fiche technique" section.
type SpecificationsExtractor struct {
	client ai.Client
}

func NewSpecificationsExtractor(client ai.Client) *SpecificationsExtractor {
	return &SpecificationsExtractor{client: client}
}

func (e *SpecificationsExtractor) Kind() string      { return "specifications" }
func (e *SpecificationsExtractor) ResolveAs() string { return "" }

func (e *SpecificationsExtractor) Extract(
	ctx context.Context,
	section *common.Section,
	base common.BaseInfo,
) ([]entity.ExtractionResult, error) {
	var dto specificationsDTO
	prompt := fmt.Sprintf(specificationsPrompt, base.Title, section.Content)
	if err := generate(ctx, e.client, "movie_specifications", "Technical sheet of a movie", prompt, &dto); err != nil {
		return nil, err
	}

	spec := &entity.Specifications{
		OtherTitles:      dto.OtherTitles,
		ReleaseDate:      dto.ReleaseDate,
		DirectedBy:       dto.DirectedBy,
		ProducedBy:       dto.ProducedBy,
		Genres:           dto.Genres,
		SpecialEffectsBy: dto.SpecialEffectsBy,
		SceneryBy:        dto.SceneryBy,
		WrittenBy:        dto.WrittenBy,
		MusicBy:          dto.MusicBy,
		Duration:         dto.Duration,
	}
	return []entity.ExtractionResult{{Entity: spec, Score: dto.Confidence}}, nil
}

type summaryDTO struct {
	Content    string  `json:"content"`
	Confidence float64 `json:"confidence"`
}

// SummaryExtractor condenses a plot section into a summary component.
type SummaryExtractor struct {
	client ai.Client
}

func NewSummaryExtractor(client ai.Client) *SummaryExtractor {
	return &SummaryExtractor{client: client}
}

func (e *SummaryExtractor) Kind() string      { return "summary" }
func (e *SummaryExtractor) ResolveAs() string { return "" }

func (e *SummaryExtractor) Extract(
	ctx context.Context,
	section *common.Section,
	base common.BaseInfo,
) ([]entity.ExtractionResult, error) {
	var dto summaryDTO
	prompt := fmt.Sprintf(summaryPrompt, base.Title, section.Title, section.Content)
	if err := generate(ctx, e.client, "movie_summary", "Plot summary of a movie", prompt, &dto); err != nil {
		return nil, err
	}
	if dto.Content == "" {
		return nil, nil
	}

	summary := &entity.Summary{
		Content: dto.Content,
		Source:  section.Title,
	}
	return []entity.ExtractionResult{{Entity: summary, Score: dto.Confidence}}, nil
}

type actorDTO struct {
	FullName   string   `json:"full_name"`
	Roles      []string `json:"roles,omitempty"`
	Confidence float64  `json:"confidence"`
}

type castDTO struct {
	Actors []actorDTO `json:"actors"`
}

// ActorsExtractor pulls the cast out of a distribution section, one result
// per performer.
type ActorsExtractor struct {
	client ai.Client
}

func NewActorsExtractor(client ai.Client) *ActorsExtractor {
	return &ActorsExtractor{client: client}
}

func (e *ActorsExtractor) Kind() string      { return "actor" }
func (e *ActorsExtractor) ResolveAs() string { return "" }

func (e *ActorsExtractor) Extract(
	ctx context.Context,
	section *common.Section,
	base common.BaseInfo,
) ([]entity.ExtractionResult, error) {
	var dto castDTO
	prompt := fmt.Sprintf(actorsPrompt, base.Title, section.Content)
	if err := generate(ctx, e.client, "movie_cast", "Cast of a movie", prompt, &dto); err != nil {
		return nil, err
	}

	results := make([]entity.ExtractionResult, 0, len(dto.Actors))
	for _, a := range dto.Actors {
		if a.FullName == "" {
			continue
		}
		results = append(results, entity.ExtractionResult{
			Entity: &entity.Actor{FullName: a.FullName, Roles: a.Roles},
			Score:  a.Confidence,
		})
	}
	return results, nil
}

type influenceDTO struct {
	Persons    []string `json:"persons,omitempty"`
	Works      []string `json:"works,omitempty"`
	Confidence float64  `json:"confidence"`
}

// InfluenceExtractor identifies the persons and works a movie drew from.
type InfluenceExtractor struct {
	client ai.Client
}

func NewInfluenceExtractor(client ai.Client) *InfluenceExtractor {
	return &InfluenceExtractor{client: client}
}

func (e *InfluenceExtractor) Kind() string      { return "influence" }
func (e *InfluenceExtractor) ResolveAs() string { return "" }

func (e *InfluenceExtractor) Extract(
	ctx context.Context,
	section *common.Section,
	base common.BaseInfo,
) ([]entity.ExtractionResult, error) {
	var dto influenceDTO
	prompt := fmt.Sprintf(influencePrompt, base.Title, section.Content)
	if err := generate(ctx, e.client, "movie_influences", "Influences of a movie", prompt, &dto); err != nil {
		return nil, err
	}
	if len(dto.Persons) == 0 && len(dto.Works) == 0 {
		return nil, nil
	}

	influence := &entity.Influence{Persons: dto.Persons, Works: dto.Works}
	return []entity.ExtractionResult{{Entity: influence, Score: dto.Confidence}}, nil
}
