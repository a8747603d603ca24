package entity

import (
	"encoding/json"
)

// metaFields are never touched by the field merge policy: identity and
// provenance always stay with the side being updated.
var metaFields = map[string]struct{}{
	"uid":        {},
	"parent_uid": {},
	"score":      {},
}

// mergeFieldMaps folds the candidate field map into the current one and
// returns the merged mapping. Policy, in order:
//
//  1. uid/parent_uid/score are retained from the current side.
//  2. A field the current side does not have adopts the candidate's value
//     unconditionally: empty slots are filled regardless of score.
//  3. Two lists are unioned and deduplicated, independent of score.
//  4. Two nested objects merge recursively under the same scores.
//  5. Two scalars are a genuine conflict: the candidate wins only when
//     candidateScore >= currentScore. Ties go to the candidate.
func mergeFieldMaps(current, candidate map[string]any, currentScore, candidateScore float64) map[string]any {
	merged := make(map[string]any, len(current))
	for key, value := range current {
		merged[key] = value
	}

	for key, candidateValue := range candidate {
		if _, isMeta := metaFields[key]; isMeta {
			continue
		}
		if candidateValue == nil {
			continue
		}

		currentValue, exists := merged[key]
		if !exists || currentValue == nil {
			merged[key] = candidateValue
			continue
		}

		merged[key] = mergeValue(currentValue, candidateValue, currentScore, candidateScore)
	}

	return merged
}

func mergeValue(current, candidate any, currentScore, candidateScore float64) any {
	currentList, currentIsList := current.([]any)
	candidateList, candidateIsList := candidate.([]any)
	if currentIsList && candidateIsList {
		return unionLists(currentList, candidateList)
	}

	currentMap, currentIsMap := current.(map[string]any)
	candidateMap, candidateIsMap := candidate.(map[string]any)
	if currentIsMap && candidateIsMap {
		return mergeFieldMaps(currentMap, candidateMap, currentScore, candidateScore)
	}

	if candidateScore >= currentScore {
		return candidate
	}
	return current
}

// unionLists concatenates both lists and removes duplicates by value
// equality. Result order keeps first occurrence but is not part of the
// contract.
func unionLists(current, candidate []any) []any {
	seen := make(map[string]struct{}, len(current)+len(candidate))
	union := make([]any, 0, len(current)+len(candidate))

	for _, item := range append(append([]any{}, current...), candidate...) {
		key := canonicalKey(item)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		union = append(union, item)
	}
	return union
}

// canonicalKey renders a value as its canonical JSON form so structurally
// equal list elements dedupe regardless of where they came from.
func canonicalKey(value any) string {
	raw, err := json.Marshal(value)
	if err != nil {
		return ""
	}
	return string(raw)
}
