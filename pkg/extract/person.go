package extract

import (
	"context"
	"fmt"

	"github.com/cinepedia/scraper/pkg/ai"
	"github.com/cinepedia/scraper/pkg/common"
	"github.com/cinepedia/scraper/pkg/entity"
)

type childhoodDTO struct {
	Birthplace    string   `json:"birthplace,omitempty"`
	ParentsTrades []string `json:"parents_trades,omitempty"`
}

type biographyDTO struct {
	Content       string        `json:"content"`
	BirthDate     string        `json:"birth_date,omitempty"`
	DeathDate     string        `json:"death_date,omitempty"`
	Nationalities []string      `json:"nationalities,omitempty"`
	Occupations   []string      `json:"occupations,omitempty"`
	Childhood     *childhoodDTO `json:"childhood,omitempty"`
	Confidence    float64       `json:"confidence"`
}

// BiographyExtractor pulls biographical facts out of a "Biographie" section
// or the person infobox.
type BiographyExtractor struct {
	client ai.Client
}

func NewBiographyExtractor(client ai.Client) *BiographyExtractor {
	return &BiographyExtractor{client: client}
}

func (e *BiographyExtractor) Kind() string      { return "biography" }
func (e *BiographyExtractor) ResolveAs() string { return "" }

func (e *BiographyExtractor) Extract(
	ctx context.Context,
	section *common.Section,
	base common.BaseInfo,
) ([]entity.ExtractionResult, error) {
	var dto biographyDTO
	prompt := fmt.Sprintf(biographyPrompt, base.Title, section.Content)
	if err := generate(ctx, e.client, "person_biography", "Biography of a person", prompt, &dto); err != nil {
		return nil, err
	}

	bio := &entity.Biography{
		Content:       dto.Content,
		BirthDate:     dto.BirthDate,
		DeathDate:     dto.DeathDate,
		Nationalities: dto.Nationalities,
		Occupations:   dto.Occupations,
	}
	if dto.Childhood != nil {
		bio.Childhood = &entity.Childhood{
			Birthplace:    dto.Childhood.Birthplace,
			ParentsTrades: dto.Childhood.ParentsTrades,
		}
	}
	return []entity.ExtractionResult{{Entity: bio, Score: dto.Confidence}}, nil
}

type characteristicsDTO struct {
	Gender     string   `json:"gender,omitempty"`
	Height     string   `json:"height,omitempty"`
	Traits     []string `json:"traits,omitempty"`
	Languages  []string `json:"languages,omitempty"`
	Confidence float64  `json:"confidence"`
}

// CharacteristicsExtractor pulls personal characteristics out of a section.
type CharacteristicsExtractor struct {
	client ai.Client
}

func NewCharacteristicsExtractor(client ai.Client) *CharacteristicsExtractor {
	return &CharacteristicsExtractor{client: client}
}

func (e *CharacteristicsExtractor) Kind() string      { return "characteristics" }
func (e *CharacteristicsExtractor) ResolveAs() string { return "" }

func (e *CharacteristicsExtractor) Extract(
	ctx context.Context,
	section *common.Section,
	base common.BaseInfo,
) ([]entity.ExtractionResult, error) {
	var dto characteristicsDTO
	prompt := fmt.Sprintf(characteristicsPrompt, base.Title, section.Content)
	if err := generate(ctx, e.client, "person_characteristics", "Characteristics of a person", prompt, &dto); err != nil {
		return nil, err
	}

	ch := &entity.Characteristics{
		Gender:    dto.Gender,
		Height:    dto.Height,
		Traits:    dto.Traits,
		Languages: dto.Languages,
	}
	return []entity.ExtractionResult{{Entity: ch, Score: dto.Confidence}}, nil
}

type visibleFeaturesDTO struct {
	Traits     []string `json:"traits,omitempty"`
	Confidence float64  `json:"confidence"`
}

// VisibleFeaturesExtractor notes visible physical features. Its results do
// not get a field of their own; the composer folds them into the broader
// characteristics component.
type VisibleFeaturesExtractor struct {
	client ai.Client
}

func NewVisibleFeaturesExtractor(client ai.Client) *VisibleFeaturesExtractor {
	return &VisibleFeaturesExtractor{client: client}
}

func (e *VisibleFeaturesExtractor) Kind() string      { return "visible_features" }
func (e *VisibleFeaturesExtractor) ResolveAs() string { return "characteristics" }

func (e *VisibleFeaturesExtractor) Extract(
	ctx context.Context,
	section *common.Section,
	base common.BaseInfo,
) ([]entity.ExtractionResult, error) {
	var dto visibleFeaturesDTO
	prompt := fmt.Sprintf(visibleFeaturesPrompt, base.Title, section.Content)
	if err := generate(ctx, e.client, "person_visible_features", "Visible features of a person", prompt, &dto); err != nil {
		return nil, err
	}
	if len(dto.Traits) == 0 {
		return nil, nil
	}

	features := &entity.VisibleFeatures{Traits: dto.Traits}
	return []entity.ExtractionResult{{Entity: features, Score: dto.Confidence}}, nil
}
