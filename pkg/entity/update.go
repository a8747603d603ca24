package entity

import (
	"fmt"

	"github.com/cinepedia/scraper/pkg/logger"
)

// UpdateComponent merges a candidate into the current component, field by
// field, and returns the merged instance.
//
// Components with different uids do not describe the same logical part of
// an entity: the current component is returned unchanged. This guards
// against accidental cross-entity merges.
//
// When the merged field map no longer reconstructs into a valid instance
// of the current component's type, the current component is returned
// together with ErrIncompatibleMerge. The caller chooses the fallback; the
// composer keeps the pre-merge value and logs the conflict, because noisy
// extractor output must never abort a whole entity.
func UpdateComponent(current, candidate Component) (Component, error) {
	if current == nil {
		return candidate, nil
	}
	if candidate == nil {
		return current, nil
	}

	if current.Meta().UID != candidate.Meta().UID {
		logger.Debug(
			"Component uid mismatch, keeping current",
			"current", current.Meta().UID,
			"candidate", candidate.Meta().UID,
		)
		return current, nil
	}

	currentFields, err := componentToMap(current)
	if err != nil {
		return current, fmt.Errorf("%w: %v", ErrIncompatibleMerge, err)
	}
	candidateFields, err := componentToMap(candidate)
	if err != nil {
		return current, fmt.Errorf("%w: %v", ErrIncompatibleMerge, err)
	}

	merged := mergeFieldMaps(
		currentFields,
		candidateFields,
		current.Meta().Score,
		candidate.Meta().Score,
	)

	rebuilt := current.Blank()
	if err := componentFromMap(merged, rebuilt); err != nil {
		return current, fmt.Errorf("%w: %v", ErrIncompatibleMerge, err)
	}
	if err := ValidateComponent(rebuilt); err != nil {
		return current, fmt.Errorf("%w: %v", ErrIncompatibleMerge, err)
	}

	return rebuilt, nil
}
