package catalogcmd

import (
	"context"

	"github.com/goliatone/go-localize/internal/catalog"
	"github.com/goliatone/go-localize/internal/commands"
	"github.com/goliatone/go-localize/internal/logging"
	"github.com/goliatone/go-localize/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

const (
	importOperation = "catalog.import"
	mergeOperation  = "catalog.merge"
	syncOperation   = "catalog.sync_value"
)

var (
	_ command.Commander[ImportCatalogCommand] = (*ImportCatalogHandler)(nil)
	_ command.Commander[MergeCatalogCommand]  = (*MergeCatalogHandler)(nil)
	_ command.Commander[SyncValueCommand]     = (*SyncValueHandler)(nil)
)

// ImportCatalogHandler runs catalog imports via the shared handler
// foundation.
type ImportCatalogHandler struct {
	inner *commands.Handler[ImportCatalogCommand]
}

// NewImportCatalogHandler creates a handler bound to the supplied catalog
// service.
func NewImportCatalogHandler(service catalog.Service, logger interfaces.Logger, opts ...commands.HandlerOption[ImportCatalogCommand]) *ImportCatalogHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg ImportCatalogCommand) error {
		result, err := service.Import(ctx, catalog.ImportRequest{
			ProjectID: msg.ProjectID,
			Rows:      msg.Rows,
		})
		if err != nil {
			return err
		}
		logging.WithFields(baseLogger, map[string]any{
			"project_id":    msg.ProjectID,
			"row_count":     len(msg.Rows),
			"created_count": result.Created,
			"updated_count": result.Updated,
		}).Info("catalog.command.import.completed")
		return nil
	}

	handlerOpts := []commands.HandlerOption[ImportCatalogCommand]{
		commands.WithLogger[ImportCatalogCommand](baseLogger),
		commands.WithOperation[ImportCatalogCommand](importOperation),
		commands.WithMessageFields(func(msg ImportCatalogCommand) map[string]any {
			return map[string]any{
				"project_id": msg.ProjectID,
				"row_count":  len(msg.Rows),
			}
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ImportCatalogHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[ImportCatalogCommand].
func (h *ImportCatalogHandler) Execute(ctx context.Context, msg ImportCatalogCommand) error {
	return h.inner.Execute(ctx, msg)
}

// MergeCatalogHandler runs the consolidation pass via the shared handler
// foundation.
type MergeCatalogHandler struct {
	inner *commands.Handler[MergeCatalogCommand]
}

// NewMergeCatalogHandler creates a handler bound to the supplied catalog
// service.
func NewMergeCatalogHandler(service catalog.Service, logger interfaces.Logger, opts ...commands.HandlerOption[MergeCatalogCommand]) *MergeCatalogHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg MergeCatalogCommand) error {
		merged, err := service.Merge(ctx, msg.ProjectID)
		if err != nil {
			return err
		}
		logging.WithFields(baseLogger, map[string]any{
			"project_id":   msg.ProjectID,
			"merged_count": len(merged),
		}).Info("catalog.command.merge.completed")
		return nil
	}

	handlerOpts := []commands.HandlerOption[MergeCatalogCommand]{
		commands.WithLogger[MergeCatalogCommand](baseLogger),
		commands.WithOperation[MergeCatalogCommand](mergeOperation),
		commands.WithMessageFields(func(msg MergeCatalogCommand) map[string]any {
			return map[string]any{"project_id": msg.ProjectID}
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &MergeCatalogHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[MergeCatalogCommand].
func (h *MergeCatalogHandler) Execute(ctx context.Context, msg MergeCatalogCommand) error {
	return h.inner.Execute(ctx, msg)
}

// SyncValueHandler propagates edited values via the shared handler
// foundation.
type SyncValueHandler struct {
	inner *commands.Handler[SyncValueCommand]
}

// NewSyncValueHandler creates a handler bound to the supplied sync engine and
// project resolver.
func NewSyncValueHandler(syncer *catalog.Syncer, projects catalog.ProjectResolver, logger interfaces.Logger, opts ...commands.HandlerOption[SyncValueCommand]) *SyncValueHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg SyncValueCommand) error {
		languages, err := projects.Languages(ctx, msg.ProjectID)
		if err != nil {
			return err
		}
		updated, err := syncer.Sync(ctx, msg.ProjectID, msg.EntryID, languages, msg.Lang)
		if err != nil {
			return err
		}
		logging.WithFields(baseLogger, map[string]any{
			"project_id":   msg.ProjectID,
			"entry_id":     msg.EntryID,
			"lang":         msg.Lang,
			"synced_count": len(updated),
		}).Info("catalog.command.sync_value.completed")
		return nil
	}

	handlerOpts := []commands.HandlerOption[SyncValueCommand]{
		commands.WithLogger[SyncValueCommand](baseLogger),
		commands.WithOperation[SyncValueCommand](syncOperation),
		commands.WithMessageFields(func(msg SyncValueCommand) map[string]any {
			return map[string]any{
				"project_id": msg.ProjectID,
				"entry_id":   msg.EntryID,
				"lang":       msg.Lang,
			}
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &SyncValueHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[SyncValueCommand].
func (h *SyncValueHandler) Execute(ctx context.Context, msg SyncValueCommand) error {
	return h.inner.Execute(ctx, msg)
}
