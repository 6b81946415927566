package projects

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryProjectRepository is an in-memory project store for scaffolding and
// tests.
type MemoryProjectRepository struct {
	mu       sync.RWMutex
	projects map[uuid.UUID]*Project
}

var _ ProjectRepository = (*MemoryProjectRepository)(nil)

// NewMemoryProjectRepository creates an empty in-memory project repository.
func NewMemoryProjectRepository() *MemoryProjectRepository {
	return &MemoryProjectRepository{projects: make(map[uuid.UUID]*Project)}
}

func (m *MemoryProjectRepository) Create(_ context.Context, project *Project) (*Project, error) {
	if project.Name == "" {
		return nil, ErrNameRequired
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.projects {
		if existing.Name == project.Name {
			return nil, ErrNameExists
		}
	}

	copied := project.Clone()
	if copied.ID == uuid.Nil {
		copied.ID = uuid.New()
	}
	now := time.Now()
	if copied.CreatedAt.IsZero() {
		copied.CreatedAt = now
	}
	copied.UpdatedAt = now
	m.projects[copied.ID] = copied
	return copied.Clone(), nil
}

func (m *MemoryProjectRepository) GetByID(_ context.Context, id uuid.UUID) (*Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	project, ok := m.projects[id]
	if !ok {
		return nil, &NotFoundError{Key: id.String()}
	}
	return project.Clone(), nil
}

func (m *MemoryProjectRepository) GetByName(_ context.Context, name string) (*Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, project := range m.projects {
		if project.Name == name {
			return project.Clone(), nil
		}
	}
	return nil, &NotFoundError{Key: name}
}

func (m *MemoryProjectRepository) List(_ context.Context) ([]*Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Project, 0, len(m.projects))
	for _, project := range m.projects {
		out = append(out, project.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *MemoryProjectRepository) Update(_ context.Context, project *Project) (*Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.projects[project.ID]; !ok {
		return nil, &NotFoundError{Key: project.Name}
	}
	copied := project.Clone()
	copied.UpdatedAt = time.Now()
	m.projects[copied.ID] = copied
	return copied.Clone(), nil
}

func (m *MemoryProjectRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.projects[id]; !ok {
		return &NotFoundError{Key: id.String()}
	}
	delete(m.projects, id)
	return nil
}
