package identity

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryUserRepository is an in-memory account store for scaffolding and
// tests.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*User
}

var _ UserRepository = (*MemoryUserRepository)(nil)

// NewMemoryUserRepository creates an empty in-memory user repository.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[uuid.UUID]*User)}
}

// GetByID retrieves an account by identifier.
func (m *MemoryUserRepository) GetByID(_ context.Context, id uuid.UUID) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.users[id]
	if !ok {
		return nil, &NotFoundError{Username: id.String()}
	}
	return user.Clone(), nil
}

// GetByUsername retrieves an account by username.
func (m *MemoryUserRepository) GetByUsername(_ context.Context, username string) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, user := range m.users {
		if user.Username == username {
			return user.Clone(), nil
		}
	}
	return nil, &NotFoundError{Username: username}
}

// GetByCredentials retrieves the active account matching both credentials.
func (m *MemoryUserRepository) GetByCredentials(_ context.Context, username, password string) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, user := range m.users {
		if user.Username == username && user.Password == password && user.Status == StatusActive {
			return user.Clone(), nil
		}
	}
	return nil, &NotFoundError{Username: username}
}

// List returns every account ordered by username.
func (m *MemoryUserRepository) List(_ context.Context) ([]*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*User, 0, len(m.users))
	for _, user := range m.users {
		out = append(out, user.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

// Create stores a new account.
func (m *MemoryUserRepository) Create(_ context.Context, user *User) (*User, error) {
	if user.Username == "" {
		return nil, ErrUsernameRequired
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.users {
		if existing.Username == user.Username {
			return nil, ErrUsernameExists
		}
	}

	copied := user.Clone()
	if copied.ID == uuid.Nil {
		copied.ID = uuid.New()
	}
	now := time.Now()
	if copied.CreatedAt.IsZero() {
		copied.CreatedAt = now
	}
	copied.UpdatedAt = now
	if copied.Status == "" {
		copied.Status = StatusActive
	}
	m.users[copied.ID] = copied
	return copied.Clone(), nil
}

// Update replaces a stored account.
func (m *MemoryUserRepository) Update(_ context.Context, user *User) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[user.ID]; !ok {
		return nil, &NotFoundError{Username: user.Username}
	}
	copied := user.Clone()
	copied.UpdatedAt = time.Now()
	m.users[copied.ID] = copied
	return copied.Clone(), nil
}

// Delete removes an account.
func (m *MemoryUserRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[id]; !ok {
		return &NotFoundError{Username: id.String()}
	}
	delete(m.users, id)
	return nil
}
