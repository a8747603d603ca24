package entity

import (
	"fmt"

	"github.com/cinepedia/scraper/pkg/common"
)

// Childhood covers the early-life details of a biography. Kept as a nested
// object so partial extractions merge recursively instead of overwriting
// each other wholesale.
type Childhood struct {
	Birthplace    string   `json:"birthplace,omitempty"`
	ParentsTrades []string `json:"parents_trades,omitempty"`
}

// Biography is the life story of a person.
type Biography struct {
	ComponentMeta
	Content       string     `json:"content,omitempty"`
	BirthDate     string     `json:"birth_date,omitempty"`
	DeathDate     string     `json:"death_date,omitempty"`
	Nationalities []string   `json:"nationalities,omitempty"`
	Occupations   []string   `json:"occupations,omitempty"`
	Childhood     *Childhood `json:"childhood,omitempty"`
}

func (b *Biography) Kind() string     { return "biography" }
func (b *Biography) Blank() Component { return &Biography{} }

// PersonMedia collects portraits and other assets attached to a person.
type PersonMedia struct {
	ComponentMeta
	Portraits  []common.Media `json:"portraits,omitempty"`
	OtherMedia []common.Media `json:"other_media,omitempty"`
}

func (m *PersonMedia) Kind() string     { return "person_media" }
func (m *PersonMedia) Blank() Component { return &PersonMedia{} }

// Characteristics are the physical and personal traits of a person.
type Characteristics struct {
	ComponentMeta
	Gender    string   `json:"gender,omitempty" validate:"omitempty,oneof=female male other"`
	Height    string   `json:"height,omitempty"`
	Traits    []string `json:"traits,omitempty"`
	Languages []string `json:"languages,omitempty"`
}

func (c *Characteristics) Kind() string     { return "characteristics" }
func (c *Characteristics) Blank() Component { return &Characteristics{} }

// VisibleFeatures is a narrower extraction that only sees what a portrait
// or description shows. It carries no fields of its own and exists so that
// extractors can produce it under its own kind; the resolver folds it into
// characteristics through resolve-as.
type VisibleFeatures struct {
	ComponentMeta
	Traits []string `json:"traits,omitempty"`
}

func (v *VisibleFeatures) Kind() string     { return "visible_features" }
func (v *VisibleFeatures) Blank() Component { return &VisibleFeatures{} }

// Person is the canonical composed form of a person page.
type Person struct {
	UID       string `json:"uid" validate:"required"`
	Title     string `json:"title" validate:"required"`
	Permalink string `json:"permalink,omitempty" validate:"omitempty,url"`
	Type      string `json:"type" validate:"required,eq=person"`

	Biography       *Biography       `json:"biography,omitempty"`
	Characteristics *Characteristics `json:"characteristics,omitempty"`
	Media           *PersonMedia     `json:"media,omitempty"`
}

// PersonDescriptor is the static field table for persons.
var PersonDescriptor = &Descriptor{
	EntityType: common.EntityTypePerson,
	Fields: []FieldSpec{
		{Name: "biography", Kind: SingleField, ComponentKind: "biography", Blank: func() Component { return &Biography{} }},
		{Name: "characteristics", Kind: SingleField, ComponentKind: "characteristics", Blank: func() Component { return &Characteristics{} }},
		{Name: "media", Kind: SingleField, ComponentKind: "person_media", Blank: func() Component { return &PersonMedia{} }},
	},
}

// ComposePerson folds extraction results into one validated person.
func ComposePerson(base common.BaseInfo, parts []ExtractionResult) (*Person, error) {
	uid, err := DeriveEntityUID(base)
	if err != nil {
		return nil, err
	}
	base.UID = uid

	fields, err := ComposeFields(PersonDescriptor, base, parts)
	if err != nil {
		return nil, err
	}

	person := &Person{}
	if err := buildEntity(fields, person); err != nil {
		return nil, fmt.Errorf("failed to compose person %q: %w", base.UID, err)
	}
	return person, nil
}

// Revalidate re-derives the uids of a deserialized person and re-runs
// validation.
func (p *Person) Revalidate() error {
	p.UID = SanitizeUID(p.UID)
	for _, c := range collectPersonComponents(p) {
		c.Meta().UID = SanitizeUID(c.Meta().UID)
		c.Meta().ParentUID = SanitizeUID(c.Meta().ParentUID)
	}
	return validate.Struct(p)
}

func collectPersonComponents(p *Person) []Component {
	var out []Component
	if p.Biography != nil {
		out = append(out, p.Biography)
	}
	if p.Characteristics != nil {
		out = append(out, p.Characteristics)
	}
	if p.Media != nil {
		out = append(out, p.Media)
	}
	return out
}
