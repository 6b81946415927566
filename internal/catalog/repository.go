package catalog

import (
	"context"

	"github.com/google/uuid"
)

// EntryRepository abstracts the persistent collection of translation entries.
//
// Batch writes are not atomic: InsertMany issues per-row independent writes
// and a failing row must not abort its siblings. ApplyPatch performs a
// targeted partial write of the fields carried by the patch; concurrent
// writers converge last-write-wins on a given entry.
type EntryRepository interface {
	FindByProject(ctx context.Context, projectID uuid.UUID) ([]*Entry, error)
	FindByKey(ctx context.Context, projectID uuid.UUID, key string) (*Entry, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Entry, error)
	// FindByDefaultValue returns the project entries whose value for lang
	// equals text.
	FindByDefaultValue(ctx context.Context, projectID uuid.UUID, lang, text string) ([]*Entry, error)
	List(ctx context.Context, projectID uuid.UUID, opts ListOptions) ([]*Entry, int, error)
	Insert(ctx context.Context, entry *Entry) (*Entry, error)
	// InsertMany inserts entries best-effort and returns the rows that were
	// written. Row failures are joined into the returned error alongside the
	// successful subset; callers log and continue.
	InsertMany(ctx context.Context, entries []*Entry) ([]*Entry, error)
	ApplyPatch(ctx context.Context, patch Patch) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, projectID uuid.UUID) (int, error)
}

// ProjectResolver supplies the language configuration the engines need. The
// projects service satisfies it; tests use small fakes.
type ProjectResolver interface {
	Languages(ctx context.Context, projectID uuid.UUID) ([]Language, error)
}
