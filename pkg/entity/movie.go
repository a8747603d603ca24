package entity

import (
	"fmt"

	"github.com/cinepedia/scraper/pkg/common"
)

// Summary holds the prose description of a work alongside the section it
// came from.
type Summary struct {
	ComponentMeta
	Content string `json:"content,omitempty"`
	Source  string `json:"source,omitempty"`
}

func (s *Summary) Kind() string     { return "summary" }
func (s *Summary) Blank() Component { return &Summary{} }

// Media collects the audiovisual assets attached to a work.
type Media struct {
	ComponentMeta
	Posters    []common.Media `json:"posters,omitempty"`
	Trailers   []common.Media `json:"trailers,omitempty"`
	OtherMedia []common.Media `json:"other_media,omitempty"`
}

func (m *Media) Kind() string     { return "media" }
func (m *Media) Blank() Component { return &Media{} }

// Specifications is the technical sheet of a movie, mostly sourced from the
// infobox and the "Fiche technique" section.
type Specifications struct {
	ComponentMeta
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
}

func (s *Specifications) Kind() string     { return "specifications" }
func (s *Specifications) Blank() Component { return &Specifications{} }

// Actor is one cast member of a movie with the roles they played.
type Actor struct {
	ComponentMeta
	FullName string   `json:"full_name,omitempty" validate:"omitempty,min=1"`
	Roles    []string `json:"roles,omitempty"`
}

func (a *Actor) Kind() string     { return "actor" }
func (a *Actor) Blank() Component { return &Actor{} }

// Cast members are told apart by name, so two extractions of the same
// person land on the same uid and merge instead of duplicating.
func (a *Actor) identityKey() string { return a.FullName }

// Influence records works and persons a movie drew from.
type Influence struct {
	ComponentMeta
	Persons []string `json:"persons,omitempty"`
	Works   []string `json:"works,omitempty"`
}

func (i *Influence) Kind() string     { return "influence" }
func (i *Influence) Blank() Component { return &Influence{} }

func (i *Influence) identityKey() string { return contentHash(i.Persons, i.Works) }

// Movie is the canonical composed form of a movie page.
type Movie struct {
	UID       string `json:"uid" validate:"required"`
	Title     string `json:"title" validate:"required"`
	Permalink string `json:"permalink,omitempty" validate:"omitempty,url"`
	Type      string `json:"type" validate:"required,eq=movie"`

	Specifications *Specifications `json:"specifications,omitempty"`
	Summary        *Summary        `json:"summary,omitempty"`
	Media          *Media          `json:"media,omitempty"`
	Actors         []*Actor        `json:"actors,omitempty" validate:"dive"`
	Influences     []*Influence    `json:"influences,omitempty" validate:"dive"`
}

// MovieDescriptor is the static field table for movies. Order matters: it
// is the routing priority for extracted parts.
var MovieDescriptor = &Descriptor{
	EntityType: common.EntityTypeMovie,
	Fields: []FieldSpec{
		{Name: "specifications", Kind: SingleField, ComponentKind: "specifications", Blank: func() Component { return &Specifications{} }},
		{Name: "summary", Kind: SingleField, ComponentKind: "summary", Blank: func() Component { return &Summary{} }},
		{Name: "media", Kind: SingleField, ComponentKind: "media", Blank: func() Component { return &Media{} }},
		{Name: "actors", Kind: ListField, ComponentKind: "actor", Blank: func() Component { return &Actor{} }},
		{Name: "influences", Kind: ListField, ComponentKind: "influence", Blank: func() Component { return &Influence{} }},
	},
}

// ComposeMovie folds extraction results into one validated movie.
func ComposeMovie(base common.BaseInfo, parts []ExtractionResult) (*Movie, error) {
	uid, err := DeriveEntityUID(base)
	if err != nil {
		return nil, err
	}
	base.UID = uid

	fields, err := ComposeFields(MovieDescriptor, base, parts)
	if err != nil {
		return nil, err
	}

	movie := &Movie{}
	if err := buildEntity(fields, movie); err != nil {
		return nil, fmt.Errorf("failed to compose movie %q: %w", base.UID, err)
	}
	return movie, nil
}

// Revalidate re-derives the uids of a deserialized movie and re-runs
// validation. Sanitization is idempotent, so a round trip through storage
// never changes identity.
func (m *Movie) Revalidate() error {
	m.UID = SanitizeUID(m.UID)
	for _, c := range collectMovieComponents(m) {
		c.Meta().UID = SanitizeUID(c.Meta().UID)
		c.Meta().ParentUID = SanitizeUID(c.Meta().ParentUID)
	}
	return validate.Struct(m)
}

func collectMovieComponents(m *Movie) []Component {
	var out []Component
	if m.Specifications != nil {
		out = append(out, m.Specifications)
	}
	if m.Summary != nil {
		out = append(out, m.Summary)
	}
	if m.Media != nil {
		out = append(out, m.Media)
	}
	for _, a := range m.Actors {
		out = append(out, a)
	}
	for _, i := range m.Influences {
		out = append(out, i)
	}
	return out
}
