package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Store persists audit trail records.
type Store interface {
	Insert(ctx context.Context, record *Record) (*Record, error)
	List(ctx context.Context, opts ListOptions) ([]*Record, int, error)
	// DeleteOlderThan removes records created before the cutoff and returns
	// how many were dropped.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error)
	// Clear removes every record for a project, or all records when the
	// project is zero.
	Clear(ctx context.Context, projectID uuid.UUID) (int, error)
	Count(ctx context.Context) (int, error)
}
