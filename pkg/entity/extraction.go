package entity

// ExtractionResult pairs one extracted component with the confidence score
// its producing extractor assigned. Results are ephemeral: created per
// extractor invocation, consumed by the composer, then discarded.
//
// ResolveAs optionally names a broader component kind the result should be
// folded into, for cases where a narrow extraction (e.g. visible features)
// belongs to a wider declared field (e.g. characteristics).
type ExtractionResult struct {
	Entity    Component
	Score     float64
	ResolveAs string
}

// clampScore bounds a score into [0,1]. Extractors are trusted to stay in
// range but the composer clamps rather than rejecting out-of-range values.
func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
