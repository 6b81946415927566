package audit

import (
	"time"

	"github.com/google/uuid"
)

// Result values for an audited operation.
const (
	ResultSuccess = "SUCCESS"
	ResultFail    = "FAIL"
)

// Source identifies records produced by this engine, distinguishing them from
// rows written by sibling tools sharing the audit table.
const Source = "localize"

// Operation names an audited action.
type Operation string

const (
	OpLogin  Operation = "login"
	OpLogout Operation = "logout"

	OpAddKey      Operation = "key.add"
	OpUpdateValue Operation = "key.update_value"
	OpDeleteKey   Operation = "key.delete"

	OpImportCatalog Operation = "catalog.import"
	OpExportCatalog Operation = "catalog.export"
	OpMergeCatalog  Operation = "catalog.merge"
	OpSyncValue     Operation = "catalog.sync"

	OpAddProject    Operation = "project.add"
	OpUpdateProject Operation = "project.update"
	OpDeleteProject Operation = "project.delete"

	OpAddSpecial         Operation = "special.add"
	OpUpdateSpecialValue Operation = "special.update_value"
	OpDeleteSpecial      Operation = "special.delete"
	OpImportSpecial      Operation = "special.import"

	OpAddUser    Operation = "user.add"
	OpUpdateUser Operation = "user.update"
	OpDeleteUser Operation = "user.delete"

	OpClearAudit Operation = "audit.clear"
)

// Record is one audit trail row. Detail carries operation-specific context
// such as the edited key, the previous and new values, or import counters.
type Record struct {
	ID        uuid.UUID
	Operation Operation
	Username  string
	IP        string
	ProjectID uuid.UUID
	Detail    map[string]any
	Result    string
	Reason    string
	Level     string
	Source    string
	CreatedAt time.Time
}

// Clone returns a deep copy of the record.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	copied := *r
	if r.Detail != nil {
		copied.Detail = make(map[string]any, len(r.Detail))
		for k, v := range r.Detail {
			copied.Detail[k] = v
		}
	}
	return &copied
}

// ListOptions filters audit trail listings.
type ListOptions struct {
	Operation Operation
	ProjectID uuid.UUID
	Keyword   string
	Limit     int
	Skip      int
}
