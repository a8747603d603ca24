package pgx

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/cinepedia/scraper/pkg/ai"
	"github.com/cinepedia/scraper/pkg/store"

	pgxv5 "github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pgvector/pgvector-go"
)

type pgxIConn interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, optionsAndArgs ...any) (pgxv5.Rows, error)
	QueryRow(ctx context.Context, sql string, optionsAndArgs ...any) pgxv5.Row
	Begin(ctx context.Context) (pgxv5.Tx, error)
}

// EntityDBStorage implements store.EntityStorage on PostgreSQL with
// pgvector. Every saved entity gets a title embedding so search can rank
// semantically, not just by substring.
type EntityDBStorage struct {
	conn     pgxIConn
	aiClient ai.Client
	dbLock   sync.Mutex
}

// NewEntityDBStorageWithConnection creates an EntityDBStorage on an
// existing connection or pool. The AI client is used to embed titles at
// save and query time.
func NewEntityDBStorageWithConnection(
	conn pgxIConn,
	aiClient ai.Client,
) *EntityDBStorage {
	return &EntityDBStorage{
		conn:     conn,
		aiClient: aiClient,
		dbLock:   sync.Mutex{},
	}
}

// SaveEntity upserts the entity document keyed by uid.
func (s *EntityDBStorage) SaveEntity(ctx context.Context, record store.EntityRecord) error {
	if record.UID == "" {
		return fmt.Errorf("record has no uid")
	}

	embedding, err := s.aiClient.GenerateEmbedding(ctx, []byte(record.Title))
	if err != nil {
		return fmt.Errorf("failed to embed entity title: %w", err)
	}

	s.dbLock.Lock()
	defer s.dbLock.Unlock()

	_, err = s.conn.Exec(ctx, `
		INSERT INTO entities (uid, type, title, permalink, payload, embedding)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (uid) DO UPDATE SET
			type = EXCLUDED.type,
			title = EXCLUDED.title,
			permalink = EXCLUDED.permalink,
			payload = EXCLUDED.payload,
			embedding = EXCLUDED.embedding,
			updated_at = now()
	`, record.UID, record.Type, record.Title, record.Permalink, record.Payload, pgvector.NewVector(embedding))
	return err
}

func (s *EntityDBStorage) GetEntity(ctx context.Context, uid string) (*store.EntityRecord, error) {
	var record store.EntityRecord
	err := s.conn.QueryRow(ctx, `
		SELECT uid, type, title, permalink, payload
		FROM entities
		WHERE uid = $1
	`, uid).Scan(&record.UID, &record.Type, &record.Title, &record.Permalink, &record.Payload)
	if err != nil {
		if errors.Is(err, pgxv5.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// ScanEntities walks every stored entity, optionally narrowed by type.
func (s *EntityDBStorage) ScanEntities(
	ctx context.Context,
	entityType string,
) ([]store.EntityRecord, error) {
	rows, err := s.conn.Query(ctx, `
		SELECT uid, type, title, permalink, payload
		FROM entities
		WHERE ($1 = '' OR type = $1)
		ORDER BY uid
	`, entityType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.EntityRecord
	for rows.Next() {
		var record store.EntityRecord
		if err := rows.Scan(&record.UID, &record.Type, &record.Title, &record.Permalink, &record.Payload); err != nil {
			return nil, err
		}
		out = append(out, record)
	}
	return out, rows.Err()
}

// SearchEntities ranks entities by embedding distance to the query,
// optionally filtered by type.
func (s *EntityDBStorage) SearchEntities(
	ctx context.Context,
	query string,
	entityType string,
	limit int,
) ([]store.EntityRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	embedding, err := s.aiClient.GenerateEmbedding(ctx, []byte(query))
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	rows, err := s.conn.Query(ctx, `
		SELECT uid, type, title, permalink, payload
		FROM entities
		WHERE ($1 = '' OR type = $1)
		ORDER BY embedding <=> $2
		LIMIT $3
	`, entityType, pgvector.NewVector(embedding), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.EntityRecord
	for rows.Next() {
		var record store.EntityRecord
		if err := rows.Scan(&record.UID, &record.Type, &record.Title, &record.Permalink, &record.Payload); err != nil {
			return nil, err
		}
		out = append(out, record)
	}
	return out, rows.Err()
}
