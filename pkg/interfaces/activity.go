package interfaces

import (
	"context"

	usertypes "github.com/goliatone/go-users/pkg/types"
)

// ActivityRecord aliases the go-users activity record so audit consumers and
// host applications share one shape without importing go-users directly.
type ActivityRecord = usertypes.ActivityRecord

// ActivitySink receives audit records translated into activity events. Host
// applications typically back this with a go-users activity feed; failures are
// the sink's concern and never propagate to catalog operations.
type ActivitySink interface {
	Log(ctx context.Context, record ActivityRecord) error
}
