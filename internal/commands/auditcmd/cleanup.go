// Package auditcmd hosts the scheduled maintenance commands for the audit
// trail.
package auditcmd

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-localize/internal/audit"
	"github.com/goliatone/go-localize/internal/commands"
	"github.com/goliatone/go-localize/internal/logging"
	"github.com/goliatone/go-localize/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

const cleanupMessageType = "localize.audit.cleanup"

const cleanupOperation = "audit.cleanup"

// DefaultRetentionDays is the audit retention applied when a cleanup run does
// not specify one.
const DefaultRetentionDays = 90

// DefaultCleanupSchedule is the cron expression used when registering the
// cleanup job.
const DefaultCleanupSchedule = "@daily"

// CleanupCommand removes audit records older than the retention window.
type CleanupCommand struct {
	// RetentionDays keeps records newer than this many days. Zero applies
	// the default retention.
	RetentionDays int `json:"retention_days,omitempty"`
	// DryRun reports what would be removed without deleting anything.
	DryRun bool `json:"dry_run,omitempty"`
}

// Type implements command.Message.
func (CleanupCommand) Type() string { return cleanupMessageType }

// Validate rejects negative retention windows.
func (cmd CleanupCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.RetentionDays, validation.Min(0).Error("retention days must not be negative")),
	)
}

var _ command.Commander[CleanupCommand] = (*CleanupHandler)(nil)

// CleanupHandler runs audit retention via the shared handler foundation.
type CleanupHandler struct {
	inner *commands.Handler[CleanupCommand]
}

// NewCleanupHandler creates a handler bound to the supplied audit store.
func NewCleanupHandler(store audit.Store, logger interfaces.Logger, opts ...commands.HandlerOption[CleanupCommand]) *CleanupHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg CleanupCommand) error {
		retention := msg.RetentionDays
		if retention == 0 {
			retention = DefaultRetentionDays
		}
		cutoff := time.Now().AddDate(0, 0, -retention)

		if msg.DryRun {
			total, err := store.Count(ctx)
			if err != nil {
				return err
			}
			logging.WithFields(baseLogger, map[string]any{
				"cutoff":       cutoff,
				"record_count": total,
				"dry_run":      true,
			}).Info("audit.command.cleanup.preview")
			return nil
		}

		dropped, err := store.DeleteOlderThan(ctx, cutoff)
		if err != nil {
			return err
		}
		logging.WithFields(baseLogger, map[string]any{
			"cutoff":        cutoff,
			"dropped_count": dropped,
		}).Info("audit.command.cleanup.completed")
		return nil
	}

	handlerOpts := []commands.HandlerOption[CleanupCommand]{
		commands.WithLogger[CleanupCommand](baseLogger),
		commands.WithOperation[CleanupCommand](cleanupOperation),
		commands.WithMessageFields(func(msg CleanupCommand) map[string]any {
			fields := map[string]any{
				"retention_days": msg.RetentionDays,
			}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			return fields
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &CleanupHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[CleanupCommand].
func (h *CleanupHandler) Execute(ctx context.Context, msg CleanupCommand) error {
	return h.inner.Execute(ctx, msg)
}

// CronRegistrar matches the registration signature used by go-command cron
// schedulers.
type CronRegistrar func(command.HandlerConfig, any) error

// RegisterCleanupJob schedules the retention pass. An empty expression uses
// the daily default.
func RegisterCleanupJob(register CronRegistrar, handler *CleanupHandler, msg CleanupCommand, expression string) error {
	if expression == "" {
		expression = DefaultCleanupSchedule
	}
	cfg := command.HandlerConfig{Expression: expression}
	return register(cfg, func() error {
		return handler.Execute(context.Background(), msg)
	})
}
