package special

import (
	"context"

	"github.com/google/uuid"
)

// EntryRepository persists variant override entries.
type EntryRepository interface {
	FindByVariant(ctx context.Context, projectID uuid.UUID, specialName string) ([]*Entry, error)
	FindByKey(ctx context.Context, projectID uuid.UUID, specialName, key string) (*Entry, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Entry, error)
	Insert(ctx context.Context, entry *Entry) (*Entry, error)
	UpdateValues(ctx context.Context, id uuid.UUID, values map[string]string) error
	Delete(ctx context.Context, id uuid.UUID) error
	// DeleteVariant removes every override of one variant and returns how
	// many were dropped.
	DeleteVariant(ctx context.Context, projectID uuid.UUID, specialName string) (int, error)
}
