package catalogcmd

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-localize/internal/catalog"
	"github.com/google/uuid"
)

const (
	importCatalogMessageType = "localize.catalog.import"
	mergeCatalogMessageType  = "localize.catalog.merge"
	syncValueMessageType     = "localize.catalog.sync_value"
)

// ImportCatalogCommand reconciles a decoded row batch into one project's
// catalog.
type ImportCatalogCommand struct {
	// ProjectID selects the catalog receiving the batch.
	ProjectID uuid.UUID `json:"project_id"`
	// Rows carries the normalized incoming rows; codecs decode uploads into
	// this shape before dispatching.
	Rows []catalog.Row `json:"rows"`
}

// Type implements command.Message.
func (ImportCatalogCommand) Type() string { return importCatalogMessageType }

// Validate ensures the batch addresses a project and carries rows.
func (cmd ImportCatalogCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.ProjectID, validation.By(requireProjectID(importCatalogMessageType))),
		validation.Field(&cmd.Rows, validation.Required.Error("rows are required")),
	)
}

// MergeCatalogCommand runs the duplicate-consolidation pass over one
// project's catalog.
type MergeCatalogCommand struct {
	// ProjectID selects the catalog to consolidate.
	ProjectID uuid.UUID `json:"project_id"`
}

// Type implements command.Message.
func (MergeCatalogCommand) Type() string { return mergeCatalogMessageType }

// Validate ensures the pass addresses a project.
func (cmd MergeCatalogCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.ProjectID, validation.By(requireProjectID(mergeCatalogMessageType))),
	)
}

// SyncValueCommand propagates one entry's language value to its siblings.
type SyncValueCommand struct {
	// ProjectID scopes the sibling search.
	ProjectID uuid.UUID `json:"project_id"`
	// EntryID names the edited entry whose value is propagated.
	EntryID uuid.UUID `json:"entry_id"`
	// Lang selects the language value to propagate.
	Lang string `json:"lang"`
}

// Type implements command.Message.
func (SyncValueCommand) Type() string { return syncValueMessageType }

// Validate ensures the propagation names an entry and a language.
func (cmd SyncValueCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.ProjectID, validation.By(requireProjectID(syncValueMessageType))),
		validation.Field(&cmd.EntryID, validation.By(requireUUID(syncValueMessageType+".entry_id", "entry id is required"))),
		validation.Field(&cmd.Lang, validation.Required.Error("lang is required")),
	)
}

func requireProjectID(messageType string) validation.RuleFunc {
	return requireUUID(messageType+".project_id", "project id is required")
}

func requireUUID(code, message string) validation.RuleFunc {
	return func(value any) error {
		id, ok := value.(uuid.UUID)
		if !ok || id == uuid.Nil {
			return validation.NewError(code, message)
		}
		return nil
	}
}
