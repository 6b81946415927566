package catalog

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryEntryRepository is an in-memory implementation for scaffolding and
// tests.
type MemoryEntryRepository struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]*Entry
}

var _ EntryRepository = (*MemoryEntryRepository)(nil)

// NewMemoryEntryRepository creates an empty in-memory entry repository.
func NewMemoryEntryRepository() *MemoryEntryRepository {
	return &MemoryEntryRepository{
		entries: make(map[uuid.UUID]*Entry),
	}
}

// FindByProject returns every entry belonging to the project.
func (m *MemoryEntryRepository) FindByProject(_ context.Context, projectID uuid.UUID) ([]*Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*Entry
	for _, entry := range m.entries {
		if entry.ProjectID == projectID {
			out = append(out, entry.Clone())
		}
	}
	return out, nil
}

// FindByKey returns the project entry with the given key, or NotFoundError.
func (m *MemoryEntryRepository) FindByKey(_ context.Context, projectID uuid.UUID, key string) (*Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, entry := range m.entries {
		if entry.ProjectID == projectID && entry.Key == key {
			return entry.Clone(), nil
		}
	}
	return nil, &NotFoundError{Resource: "entry", Key: key}
}

// GetByID retrieves an entry by identifier.
func (m *MemoryEntryRepository) GetByID(_ context.Context, id uuid.UUID) (*Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.entries[id]
	if !ok {
		return nil, &NotFoundError{Resource: "entry", Key: id.String()}
	}
	return entry.Clone(), nil
}

// FindByDefaultValue returns project entries whose value for lang equals text.
func (m *MemoryEntryRepository) FindByDefaultValue(_ context.Context, projectID uuid.UUID, lang, text string) ([]*Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*Entry
	for _, entry := range m.entries {
		if entry.ProjectID == projectID && entry.Value(lang) == text {
			out = append(out, entry.Clone())
		}
	}
	return out, nil
}

// List returns a page of project entries plus the unpaged total.
func (m *MemoryEntryRepository) List(_ context.Context, projectID uuid.UUID, opts ListOptions) ([]*Entry, int, error) {
	opts = opts.normalized()

	m.mu.RLock()
	var matched []*Entry
	for _, entry := range m.entries {
		if entry.ProjectID == projectID && opts.matches(entry) {
			matched = append(matched, entry.Clone())
		}
	}
	m.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		less := false
		switch opts.OrderBy {
		case OrderKey:
			less = matched[i].Key < matched[j].Key
		case OrderCreatedAt:
			less = matched[i].CreatedAt.Before(matched[j].CreatedAt)
		default:
			less = matched[i].UpdatedAt.Before(matched[j].UpdatedAt)
		}
		if opts.Order == SortDesc {
			return !less
		}
		return less
	})

	total := len(matched)
	if opts.Skip >= total {
		return nil, total, nil
	}
	matched = matched[opts.Skip:]
	if len(matched) > opts.Limit {
		matched = matched[:opts.Limit]
	}
	return matched, total, nil
}

// Insert stores a new entry, assigning an identity when absent.
func (m *MemoryEntryRepository) Insert(_ context.Context, entry *Entry) (*Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.insertLocked(entry)
}

// InsertMany stores entries with per-row independence.
func (m *MemoryEntryRepository) InsertMany(_ context.Context, entries []*Entry) ([]*Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	inserted := make([]*Entry, 0, len(entries))
	for _, entry := range entries {
		stored, err := m.insertLocked(entry)
		if err != nil {
			continue
		}
		inserted = append(inserted, stored)
	}
	return inserted, nil
}

func (m *MemoryEntryRepository) insertLocked(entry *Entry) (*Entry, error) {
	copied := entry.Clone()
	if copied.ID == uuid.Nil {
		copied.ID = uuid.New()
	}
	m.entries[copied.ID] = copied
	return copied.Clone(), nil
}

// ApplyPatch performs a targeted partial update of one entry.
func (m *MemoryEntryRepository) ApplyPatch(_ context.Context, patch Patch) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[patch.EntryID]
	if !ok {
		return &NotFoundError{Resource: "entry", Key: patch.EntryID.String()}
	}
	if patch.Module != nil {
		entry.Module = *patch.Module
	}
	if len(patch.Values) > 0 {
		if entry.Values == nil {
			entry.Values = make(map[string]string, len(patch.Values))
		}
		for lang, value := range patch.Values {
			entry.Values[lang] = value
		}
	}
	if patch.UpdatedAt != nil {
		entry.UpdatedAt = *patch.UpdatedAt
	} else if patch.Module != nil || len(patch.Values) > 0 {
		entry.UpdatedAt = time.Now()
	}
	return nil
}

// Delete removes an entry.
func (m *MemoryEntryRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.entries[id]; !ok {
		return &NotFoundError{Resource: "entry", Key: id.String()}
	}
	delete(m.entries, id)
	return nil
}

// Count returns the number of entries in the project.
func (m *MemoryEntryRepository) Count(_ context.Context, projectID uuid.UUID) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, entry := range m.entries {
		if entry.ProjectID == projectID {
			count++
		}
	}
	return count, nil
}
