package store

import (
	"context"
	"encoding/json"
	"errors"
)

// ErrNotFound is returned when no entity with the requested uid exists.
var ErrNotFound = errors.New("entity not found")

// EntityRecord is the stored form of a composed entity: identity columns
// for lookup plus the full entity document as JSON.
type EntityRecord struct {
	UID       string          `json:"uid"`
	Type      string          `json:"type"`
	Title     string          `json:"title"`
	Permalink string          `json:"permalink,omitempty"`
	Payload   json.RawMessage `json:"payload"`
}

// EntityStorage persists composed entities and serves lookups and search.
// Saving the same uid twice replaces the stored document; composition
// already decided which fields win, storage only keeps the outcome.
type EntityStorage interface {
	SaveEntity(ctx context.Context, record EntityRecord) error
	GetEntity(ctx context.Context, uid string) (*EntityRecord, error)
	// ScanEntities walks every stored entity, optionally narrowed by type.
	ScanEntities(ctx context.Context, entityType string) ([]EntityRecord, error)
	SearchEntities(ctx context.Context, query string, entityType string, limit int) ([]EntityRecord, error)
}

// Record builds an EntityRecord from a composed entity document.
func Record(uid, entityType, title, permalink string, doc any) (EntityRecord, error) {
	payload, err := json.Marshal(doc)
	if err != nil {
		return EntityRecord{}, err
	}
	return EntityRecord{
		UID:       uid,
		Type:      entityType,
		Title:     title,
		Permalink: permalink,
		Payload:   payload,
	}, nil
}
