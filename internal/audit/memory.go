package audit

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory audit trail for scaffolding and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	records []*Record
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory audit store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Insert stores a record, assigning identity and timestamp when absent.
func (m *MemoryStore) Insert(_ context.Context, record *Record) (*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := record.Clone()
	if copied.ID == uuid.Nil {
		copied.ID = uuid.New()
	}
	if copied.CreatedAt.IsZero() {
		copied.CreatedAt = time.Now()
	}
	if copied.Source == "" {
		copied.Source = Source
	}
	m.records = append(m.records, copied)
	return copied.Clone(), nil
}

// List returns matching records newest first, plus the unpaged total.
func (m *MemoryStore) List(_ context.Context, opts ListOptions) ([]*Record, int, error) {
	m.mu.RLock()
	var matched []*Record
	for _, record := range m.records {
		if matches(record, opts) {
			matched = append(matched, record.Clone())
		}
	}
	m.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	if opts.Skip > 0 {
		if opts.Skip >= total {
			return nil, total, nil
		}
		matched = matched[opts.Skip:]
	}
	if opts.Limit > 0 && len(matched) > opts.Limit {
		matched = matched[:opts.Limit]
	}
	return matched, total, nil
}

func matches(record *Record, opts ListOptions) bool {
	if opts.Operation != "" && record.Operation != opts.Operation {
		return false
	}
	if opts.ProjectID != uuid.Nil && record.ProjectID != opts.ProjectID {
		return false
	}
	if opts.Keyword != "" &&
		!strings.Contains(record.Username, opts.Keyword) &&
		!strings.Contains(record.Reason, opts.Keyword) {
		return false
	}
	return true
}

// DeleteOlderThan removes records created before the cutoff.
func (m *MemoryStore) DeleteOlderThan(_ context.Context, cutoff time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.records[:0]
	dropped := 0
	for _, record := range m.records {
		if record.CreatedAt.Before(cutoff) {
			dropped++
			continue
		}
		kept = append(kept, record)
	}
	m.records = kept
	return dropped, nil
}

// Clear removes records for the project, or everything when projectID is zero.
func (m *MemoryStore) Clear(_ context.Context, projectID uuid.UUID) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if projectID == uuid.Nil {
		dropped := len(m.records)
		m.records = nil
		return dropped, nil
	}

	kept := m.records[:0]
	dropped := 0
	for _, record := range m.records {
		if record.ProjectID == projectID {
			dropped++
			continue
		}
		kept = append(kept, record)
	}
	m.records = kept
	return dropped, nil
}

// Count returns the number of stored records.
func (m *MemoryStore) Count(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records), nil
}
