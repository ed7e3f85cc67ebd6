// Package storage keeps produced export artifacts (DXF and PDF files)
// on the local filesystem until they are downloaded or cleaned up.
// Drawing parameters themselves are never persisted.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/techdraw/backend/internal/models"
)

// Store defines the interface for export artifact storage.
type Store interface {
	Save(name string, format models.ExportFormat, r io.Reader) (*models.ExportRecord, error)
	Get(id string) (*models.ExportRecord, error)
	List(limit int) ([]*models.ExportRecord, error)
	Delete(id string) error
	FilePath(id string) (string, error)
}

// LocalStore implements Store on the local filesystem. Records are
// held in memory; artifacts from an earlier process run are not
// re-indexed, matching the session-scoped lifetime of the tool.
type LocalStore struct {
	mu      sync.RWMutex
	dir     string
	records map[string]*models.ExportRecord
}

// NewLocalStore creates the export directory if needed.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating export directory: %w", err)
	}
	return &LocalStore{
		dir:     dir,
		records: make(map[string]*models.ExportRecord),
	}, nil
}

// Save writes an artifact to disk under a fresh ID.
func (s *LocalStore) Save(name string, format models.ExportFormat, r io.Reader) (*models.ExportRecord, error) {
	id := uuid.New().String()
	path := filepath.Join(s.dir, id)

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating artifact file: %w", err)
	}
	defer f.Close()

	size, err := io.Copy(f, r)
	if err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("writing artifact: %w", err)
	}

	rec := &models.ExportRecord{
		ID:        id,
		Name:      name,
		Format:    format,
		Size:      size,
		CreatedAt: time.Now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[id] = rec
	return rec, nil
}

// Get retrieves artifact metadata by ID.
func (s *LocalStore) Get(id string) (*models.ExportRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, fmt.Errorf("export not found: %s", id)
	}
	return rec, nil
}

// List returns the most recent exports, newest first.
func (s *LocalStore) List(limit int) ([]*models.ExportRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]*models.ExportRecord, 0, len(s.records))
	for _, rec := range s.records {
		list = append(list, rec)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	if len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

// Delete removes an artifact and its record.
func (s *LocalStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return fmt.Errorf("export not found: %s", id)
	}

	path := filepath.Join(s.dir, id)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("deleting artifact: %w", err)
	}
	delete(s.records, id)
	return nil
}

// FilePath returns the on-disk location of an artifact for download.
func (s *LocalStore) FilePath(id string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.records[id]; !ok {
		return "", fmt.Errorf("export not found: %s", id)
	}
	return filepath.Join(s.dir, id), nil
}
