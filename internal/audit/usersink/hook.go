// Package usersink bridges audit records into a go-users activity stream so
// catalog operations appear alongside account activity.
package usersink

import (
	"context"

	"github.com/goliatone/go-localize/internal/audit"
	"github.com/goliatone/go-localize/pkg/interfaces"
	"github.com/google/uuid"
)

// Hook forwards audit records to an activity sink.
type Hook struct {
	sink    interfaces.ActivitySink
	channel string
}

var _ audit.Sink = (*Hook)(nil)

// New constructs a hook publishing to the given sink on the named channel.
func New(sink interfaces.ActivitySink, channel string) *Hook {
	if channel == "" {
		channel = audit.Source
	}
	return &Hook{sink: sink, channel: channel}
}

// Record translates one audit record into an activity event. The audit
// username travels in Data because activity actors are uuid-keyed; when the
// username happens to be a parseable uuid it also becomes the ActorID.
func (h *Hook) Record(ctx context.Context, record *audit.Record) error {
	if h.sink == nil || record == nil {
		return nil
	}

	activity := interfaces.ActivityRecord{
		Verb:       string(record.Operation),
		ObjectType: "project",
		Channel:    h.channel,
		OccurredAt: record.CreatedAt,
		Data: map[string]any{
			"username": record.Username,
			"result":   record.Result,
		},
	}
	if record.ProjectID != uuid.Nil {
		activity.ObjectID = record.ProjectID.String()
	}
	if actorID, err := uuid.Parse(record.Username); err == nil {
		activity.ActorID = actorID
	}
	if record.Reason != "" {
		activity.Data["reason"] = record.Reason
	}
	for k, v := range record.Detail {
		activity.Data[k] = v
	}

	return h.sink.Log(ctx, activity)
}
