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
	"github.com/google/uuid"
)

const exportMessageType = "localize.audit.export"

const exportOperation = "audit.export"

// ExportCommand emits recorded audit events through the logger, newest first.
type ExportCommand struct {
	// Operation restricts the export to one operation when set.
	Operation audit.Operation `json:"operation,omitempty"`
	// ProjectID restricts the export to one project when set.
	ProjectID uuid.UUID `json:"project_id,omitempty"`
	// MaxRecords caps the number of emitted events. Zero emits everything.
	MaxRecords int `json:"max_records,omitempty"`
}

// Type implements command.Message.
func (ExportCommand) Type() string { return exportMessageType }

// Validate rejects negative record caps.
func (cmd ExportCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.MaxRecords, validation.Min(0).Error("max records must not be negative")),
	)
}

var _ command.Commander[ExportCommand] = (*ExportHandler)(nil)

// ExportHandler walks the audit store via the shared handler foundation.
type ExportHandler struct {
	inner *commands.Handler[ExportCommand]
}

// NewExportHandler creates a handler bound to the supplied audit store.
func NewExportHandler(store audit.Store, logger interfaces.Logger, opts ...commands.HandlerOption[ExportCommand]) *ExportHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg ExportCommand) error {
		records, total, err := store.List(ctx, audit.ListOptions{
			Operation: msg.Operation,
			ProjectID: msg.ProjectID,
			Limit:     msg.MaxRecords,
		})
		if err != nil {
			return err
		}

		for idx, record := range records {
			logging.WithFields(baseLogger, map[string]any{
				"index":      idx,
				"operation":  record.Operation,
				"username":   record.Username,
				"ip":         record.IP,
				"result":     record.Result,
				"reason":     record.Reason,
				"created_at": record.CreatedAt.Format(time.RFC3339),
			}).Debug("audit.command.export.event")
		}

		logging.WithFields(baseLogger, map[string]any{
			"exported": len(records),
			"total":    total,
		}).Info("audit.command.export.completed")
		return nil
	}

	handlerOpts := []commands.HandlerOption[ExportCommand]{
		commands.WithLogger[ExportCommand](baseLogger),
		commands.WithOperation[ExportCommand](exportOperation),
		commands.WithMessageFields(func(msg ExportCommand) map[string]any {
			fields := map[string]any{}
			if msg.Operation != "" {
				fields["filter_operation"] = msg.Operation
			}
			if msg.ProjectID != uuid.Nil {
				fields["project_id"] = msg.ProjectID
			}
			if msg.MaxRecords > 0 {
				fields["max_records"] = msg.MaxRecords
			}
			return fields
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ExportHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[ExportCommand].
func (h *ExportHandler) Execute(ctx context.Context, msg ExportCommand) error {
	return h.inner.Execute(ctx, msg)
}
