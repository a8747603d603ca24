package json

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/cinepedia/scraper/pkg/store"
)

// EntityDirStorage keeps one JSON file per entity in a flat directory.
// It backs local development and tests; production uses the database
// index instead.
type EntityDirStorage struct {
	dir string
	mu  sync.RWMutex
}

// NewEntityDirStorage creates the storage directory if needed.
func NewEntityDirStorage(dir string) (*EntityDirStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage dir: %w", err)
	}
	return &EntityDirStorage{dir: dir}, nil
}

func (s *EntityDirStorage) path(uid string) string {
	return filepath.Join(s.dir, uid+".json")
}

// SaveEntity writes the record to <uid>.json. The write goes through a
// temp file and rename so a crash never leaves a half-written entity.
func (s *EntityDirStorage) SaveEntity(ctx context.Context, record store.EntityRecord) error {
	if record.UID == "" {
		return fmt.Errorf("record has no uid")
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.dir, "."+record.UID+"-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path(record.UID))
}

func (s *EntityDirStorage) GetEntity(ctx context.Context, uid string) (*store.EntityRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path(uid))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}

	var record store.EntityRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// ScanEntities lists every stored entity, optionally narrowed by type.
func (s *EntityDirStorage) ScanEntities(
	ctx context.Context,
	entityType string,
) ([]store.EntityRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	var out []store.EntityRecord
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			continue
		}
		var record store.EntityRecord
		if err := json.Unmarshal(data, &record); err != nil {
			continue
		}
		if entityType != "" && record.Type != entityType {
			continue
		}
		out = append(out, record)
	}
	return out, nil
}

// SearchEntities matches by casefolded substring over titles. Good enough
// for a directory of local files; semantic search lives in the database
// index.
func (s *EntityDirStorage) SearchEntities(
	ctx context.Context,
	query string,
	entityType string,
	limit int,
) ([]store.EntityRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	var out []store.EntityRecord
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			continue
		}
		var record store.EntityRecord
		if err := json.Unmarshal(data, &record); err != nil {
			continue
		}
		if entityType != "" && record.Type != entityType {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(record.Title), needle) {
			continue
		}
		out = append(out, record)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}
