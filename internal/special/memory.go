package special

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryEntryRepository is an in-memory override store for scaffolding and
// tests.
type MemoryEntryRepository struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]*Entry
}

var _ EntryRepository = (*MemoryEntryRepository)(nil)

// NewMemoryEntryRepository creates an empty in-memory override repository.
func NewMemoryEntryRepository() *MemoryEntryRepository {
	return &MemoryEntryRepository{entries: make(map[uuid.UUID]*Entry)}
}

func (m *MemoryEntryRepository) FindByVariant(_ context.Context, projectID uuid.UUID, specialName string) ([]*Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*Entry
	for _, entry := range m.entries {
		if entry.ProjectID == projectID && entry.Special == specialName {
			out = append(out, entry.Clone())
		}
	}
	return out, nil
}

func (m *MemoryEntryRepository) FindByKey(_ context.Context, projectID uuid.UUID, specialName, key string) (*Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, entry := range m.entries {
		if entry.ProjectID == projectID && entry.Special == specialName && entry.Key == key {
			return entry.Clone(), nil
		}
	}
	return nil, &NotFoundError{Key: key}
}

func (m *MemoryEntryRepository) GetByID(_ context.Context, id uuid.UUID) (*Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.entries[id]
	if !ok {
		return nil, &NotFoundError{Key: id.String()}
	}
	return entry.Clone(), nil
}

func (m *MemoryEntryRepository) Insert(_ context.Context, entry *Entry) (*Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := entry.Clone()
	if copied.ID == uuid.Nil {
		copied.ID = uuid.New()
	}
	now := time.Now()
	if copied.CreatedAt.IsZero() {
		copied.CreatedAt = now
	}
	copied.UpdatedAt = now
	m.entries[copied.ID] = copied
	return copied.Clone(), nil
}

func (m *MemoryEntryRepository) UpdateValues(_ context.Context, id uuid.UUID, values map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[id]
	if !ok {
		return &NotFoundError{Key: id.String()}
	}
	if entry.Values == nil {
		entry.Values = make(map[string]string, len(values))
	}
	for lang, value := range values {
		entry.Values[lang] = value
	}
	entry.UpdatedAt = time.Now()
	return nil
}

func (m *MemoryEntryRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.entries[id]; !ok {
		return &NotFoundError{Key: id.String()}
	}
	delete(m.entries, id)
	return nil
}

func (m *MemoryEntryRepository) DeleteVariant(_ context.Context, projectID uuid.UUID, specialName string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	dropped := 0
	for id, entry := range m.entries {
		if entry.ProjectID == projectID && entry.Special == specialName {
			delete(m.entries, id)
			dropped++
		}
	}
	return dropped, nil
}
