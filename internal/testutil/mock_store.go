// Package testutil provides in-memory fakes for handler tests.
package testutil

import (
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/techdraw/backend/internal/models"
)

// MockStore implements storage.Store entirely in memory.
type MockStore struct {
	mu      sync.RWMutex
	seq     int
	records map[string]*models.ExportRecord
	data    map[string][]byte

	// FailSave forces the next Save call to error, for exercising the
	// export failure path.
	FailSave bool
}

// NewMockStore creates an empty mock store.
func NewMockStore() *MockStore {
	return &MockStore{
		records: make(map[string]*models.ExportRecord),
		data:    make(map[string][]byte),
	}
}

func (m *MockStore) Save(name string, format models.ExportFormat, r io.Reader) (*models.ExportRecord, error) {
	if m.FailSave {
		return nil, fmt.Errorf("mock store: save disabled")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	id := fmt.Sprintf("export-%d", m.seq)
	rec := &models.ExportRecord{
		ID:        id,
		Name:      name,
		Format:    format,
		Size:      int64(len(data)),
		CreatedAt: time.Now(),
	}
	m.records[id] = rec
	m.data[id] = data
	return rec, nil
}

func (m *MockStore) Get(id string) (*models.ExportRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.records[id]
	if !ok {
		return nil, fmt.Errorf("export not found: %s", id)
	}
	return rec, nil
}

func (m *MockStore) List(limit int) ([]*models.ExportRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	list := make([]*models.ExportRecord, 0, len(m.records))
	for _, rec := range m.records {
		list = append(list, rec)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	if len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (m *MockStore) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[id]; !ok {
		return fmt.Errorf("export not found: %s", id)
	}
	delete(m.records, id)
	delete(m.data, id)
	return nil
}

// FilePath is not meaningful for the in-memory store; handler tests
// read artifact bytes through Data instead.
func (m *MockStore) FilePath(id string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if _, ok := m.records[id]; !ok {
		return "", fmt.Errorf("export not found: %s", id)
	}
	return "", fmt.Errorf("mock store holds no files on disk")
}

// Data returns the stored artifact bytes.
func (m *MockStore) Data(id string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.data[id]
	return data, ok
}
