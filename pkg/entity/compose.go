package entity

import (
	"encoding/json"
	"fmt"

	"github.com/cinepedia/scraper/pkg/common"
	"github.com/cinepedia/scraper/pkg/logger"
)

// FieldKind tells the composer whether a declared field holds a single
// component or a list of them.
type FieldKind int

const (
	SingleField FieldKind = iota
	ListField
)

// FieldSpec describes one declared component field of a root entity type:
// its serialized name, its arity, the component kind that routes into it
// and the constructor for blank instances of that kind.
type FieldSpec struct {
	Name          string
	Kind          FieldKind
	ComponentKind string
	Blank         func() Component
}

// Descriptor is the static field table of a root entity type, built once at
// startup. Field order is the routing priority: each extraction result is
// assigned to the first field whose component kind it matches, and to
// exactly one field.
type Descriptor struct {
	EntityType string
	Fields     []FieldSpec
}

func (d *Descriptor) field(componentKind string) *FieldSpec {
	for i := range d.Fields {
		if d.Fields[i].ComponentKind == componentKind {
			return &d.Fields[i]
		}
	}
	return nil
}

// ComposeFields folds an ordered list of extraction results into the field
// map of one entity. Results are processed in extraction order; identity
// collisions are resolved through UpdateComponent, so the outcome is
// deterministic for a fixed input order.
//
// Results that fit no declared field are dropped silently: extractors may
// produce noise, and noise must not abort composition. Results whose
// parent uid points at a different entity are skipped with a warning.
func ComposeFields(desc *Descriptor, base common.BaseInfo, parts []ExtractionResult) (map[string]any, error) {
	singles := map[string]Component{}
	lists := map[string][]Component{}

	for _, part := range parts {
		component := part.Entity
		if component == nil {
			continue
		}

		meta := component.Meta()
		if meta.ParentUID != "" && meta.ParentUID != base.UID {
			logger.Warn(
				"Skipping extraction result, parent does not match entity",
				"part", meta.UID,
				"entity", base.UID,
			)
			continue
		}
		if meta.ParentUID == "" {
			meta.ParentUID = base.UID
		}
		meta.Score = clampScore(part.Score)

		kind := component.Kind()
		if part.ResolveAs != "" && part.ResolveAs != kind {
			spec := desc.field(part.ResolveAs)
			if spec == nil {
				logger.Debug("No declared field for resolve-as kind, dropping part", "kind", part.ResolveAs)
				continue
			}
			converted, err := convertComponent(component, spec.Blank())
			if err != nil {
				logger.Warn("Failed to resolve part as broader kind", "kind", part.ResolveAs, "err", err)
				continue
			}
			converted.Meta().Score = clampScore(part.Score)
			component = converted
			meta = component.Meta()
			kind = part.ResolveAs
		}

		spec := desc.field(kind)
		if spec == nil {
			// Noise that fits no declared field. Not an error.
			logger.Debug("No declared field for extracted kind, dropping part", "kind", kind, "entity", base.UID)
			continue
		}

		AssignUID(component)

		switch spec.Kind {
		case ListField:
			lists[spec.Name] = upsertListItem(lists[spec.Name], component, meta.Score)
		default:
			singles[spec.Name] = upsertSingle(singles[spec.Name], component)
		}
	}

	fields := map[string]any{
		"uid":       base.UID,
		"title":     base.Title,
		"permalink": base.Permalink,
		"type":      desc.EntityType,
	}
	for name, component := range singles {
		fields[name] = component
	}
	for name, items := range lists {
		fields[name] = items
	}
	return fields, nil
}

// upsertListItem places a component into a list field. Items are keyed by
// uid: an unknown uid appends, a known uid either replaces the element
// outright (when the newcomer scores strictly higher) or merges into it
// field by field.
func upsertListItem(items []Component, component Component, score float64) []Component {
	for i, existing := range items {
		if existing.Meta().UID != component.Meta().UID {
			continue
		}
		if score > existing.Meta().Score {
			items[i] = component
			return items
		}
		merged, err := UpdateComponent(existing, component)
		if err != nil {
			logger.Warn("Keeping existing list item after merge failure", "uid", existing.Meta().UID, "err", err)
			return items
		}
		items[i] = merged
		return items
	}
	return append(items, component)
}

// upsertSingle applies override-or-complete semantics at whole-component
// granularity: no current value adopts the candidate entirely, a matching
// uid merges field by field, and a different uid keeps the current value.
func upsertSingle(current Component, candidate Component) Component {
	if current == nil {
		return candidate
	}
	merged, err := UpdateComponent(current, candidate)
	if err != nil {
		logger.Warn("Keeping current component after merge failure", "uid", current.Meta().UID, "err", err)
		return current
	}
	return merged
}

// buildEntity renders a composed field map into a concrete root entity and
// runs strict validation over the result. Validation failures here are
// composition failures and surface to the caller, never silently dropping
// fields.
func buildEntity(fields map[string]any, into any) error {
	raw, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("failed to encode composed fields: %w", err)
	}
	if err := json.Unmarshal(raw, into); err != nil {
		return fmt.Errorf("failed to build entity from composed fields: %w", err)
	}
	if err := validate.Struct(into); err != nil {
		return fmt.Errorf("composed entity failed validation: %w", err)
	}
	return nil
}
