package entity

import "errors"

var (
	// ErrMissingIdentity is returned when a root entity carries neither an
	// external source id nor a preset uid. Construction cannot proceed.
	ErrMissingIdentity = errors.New("entity has no external id and no preset uid")

	// ErrIncompatibleMerge is returned when a merged field map no longer
	// reconstructs into a valid component. Callers are expected to fall
	// back to the pre-merge value.
	ErrIncompatibleMerge = errors.New("merged component failed validation")
)
