package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository persists accounts.
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	// GetByCredentials returns the active account matching both username and
	// password, or NotFoundError.
	GetByCredentials(ctx context.Context, username, password string) (*User, error)
	List(ctx context.Context) ([]*User, error)
	Create(ctx context.Context, user *User) (*User, error)
	Update(ctx context.Context, user *User) (*User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
