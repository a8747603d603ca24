package entity

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator"
)

// ComponentMeta carries the identity and provenance of a component: the
// derived uid, the uid of the owning entity, and the confidence score the
// producing extractor assigned. It is embedded by every component type.
//
// The parent_uid is an identity-only back-reference, not an ownership
// pointer: components never hold their parent in memory.
type ComponentMeta struct {
	UID       string  `json:"uid,omitempty"`
	ParentUID string  `json:"parent_uid,omitempty"`
	Score     float64 `json:"score,omitempty" validate:"gte=0,lte=1"`
}

// Meta exposes the embedded metadata for generic handling.
func (m *ComponentMeta) Meta() *ComponentMeta {
	return m
}

// Component is a scored, identifiable sub-part of an entity. Concrete
// component types embed ComponentMeta and report their kind, the stable
// lowercase name used for uid derivation and composer routing.
type Component interface {
	Meta() *ComponentMeta
	Kind() string
	// Blank returns a fresh zero instance of the same concrete type,
	// used to reconstruct components after a field-level merge.
	Blank() Component
}

var validate = validator.New()

// ValidateComponent runs struct validation over a component. It is the gate
// every reconstructed component passes after a merge.
func ValidateComponent(c Component) error {
	return validate.Struct(c)
}

// componentToMap projects a component onto its field-name to value mapping,
// dropping null/absent fields, the form the field merge policy operates on.
func componentToMap(c Component) (map[string]any, error) {
	raw, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to project component %q: %w", c.Meta().UID, err)
	}
	fields := map[string]any{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("failed to project component %q: %w", c.Meta().UID, err)
	}
	for key, value := range fields {
		if value == nil {
			delete(fields, key)
		}
	}
	return fields, nil
}

// componentFromMap rebuilds a concrete component from a merged field map.
func componentFromMap(fields map[string]any, into Component) error {
	raw, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, into)
}

// convertComponent re-types a component into the blank target type via its
// field map, dropping the source uid so the target derives its own. This is
// how a narrow extraction ("visible features") is folded into a broader
// declared field ("characteristics").
func convertComponent(src Component, target Component) (Component, error) {
	fields, err := componentToMap(src)
	if err != nil {
		return nil, err
	}
	delete(fields, "uid")
	if err := componentFromMap(fields, target); err != nil {
		return nil, fmt.Errorf("cannot resolve %q as %q: %w", src.Kind(), target.Kind(), err)
	}
	AssignUID(target)
	return target, nil
}
