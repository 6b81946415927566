package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

var errBunDatabaseRequired = errors.New("audit: bun store requires a database")

// BunStore persists audit records using a Bun-backed database.
type BunStore struct {
	db *bun.DB
}

var _ Store = (*BunStore)(nil)

// NewBunStore constructs a Bun-backed audit store.
func NewBunStore(db *bun.DB) *BunStore {
	return &BunStore{db: db}
}

// CreateTable creates the backing table when it does not exist yet.
func (s *BunStore) CreateTable(ctx context.Context) error {
	if s.db == nil {
		return errBunDatabaseRequired
	}
	_, err := s.db.NewCreateTable().Model((*recordModel)(nil)).IfNotExists().Exec(ctx)
	return err
}

// Insert stores a record, assigning identity and timestamp when absent.
func (s *BunStore) Insert(ctx context.Context, record *Record) (*Record, error) {
	if s.db == nil {
		return nil, errBunDatabaseRequired
	}
	model, err := modelFromRecord(record)
	if err != nil {
		return nil, err
	}
	if model.ID == uuid.Nil {
		model.ID = uuid.New()
	}
	if model.CreatedAt.IsZero() {
		model.CreatedAt = time.Now().UTC()
	}
	if model.Source == "" {
		model.Source = Source
	}
	if _, err := s.db.NewInsert().Model(model).Exec(ctx); err != nil {
		return nil, err
	}
	return modelToRecord(model)
}

// List returns matching records newest first, plus the unpaged total.
func (s *BunStore) List(ctx context.Context, opts ListOptions) ([]*Record, int, error) {
	if s.db == nil {
		return nil, 0, errBunDatabaseRequired
	}

	var models []recordModel
	query := s.db.NewSelect().Model(&models)
	if opts.Operation != "" {
		query = query.Where("operation = ?", string(opts.Operation))
	}
	if opts.ProjectID != uuid.Nil {
		query = query.Where("project_id = ?", opts.ProjectID)
	}
	if opts.Keyword != "" {
		pattern := "%" + opts.Keyword + "%"
		query = query.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("username LIKE ?", pattern).
				WhereOr("reason LIKE ?", pattern)
		})
	}
	query = query.Order("created_at DESC")
	if opts.Limit > 0 {
		query = query.Limit(opts.Limit)
	}
	if opts.Skip > 0 {
		query = query.Offset(opts.Skip)
	}

	total, err := query.ScanAndCount(ctx)
	if err != nil {
		return nil, 0, err
	}

	records := make([]*Record, 0, len(models))
	for i := range models {
		record, err := modelToRecord(&models[i])
		if err != nil {
			return nil, 0, err
		}
		records = append(records, record)
	}
	return records, total, nil
}

// DeleteOlderThan removes records created before the cutoff.
func (s *BunStore) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	if s.db == nil {
		return 0, errBunDatabaseRequired
	}
	result, err := s.db.NewDelete().
		Model((*recordModel)(nil)).
		Where("created_at < ?", cutoff).
		Exec(ctx)
	if err != nil {
		return 0, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, nil
	}
	return int(affected), nil
}

// Clear removes records for the project, or everything when projectID is zero.
func (s *BunStore) Clear(ctx context.Context, projectID uuid.UUID) (int, error) {
	if s.db == nil {
		return 0, errBunDatabaseRequired
	}
	query := s.db.NewDelete().Model((*recordModel)(nil))
	if projectID != uuid.Nil {
		query = query.Where("project_id = ?", projectID)
	} else {
		query = query.Where("1 = 1")
	}
	result, err := query.Exec(ctx)
	if err != nil {
		return 0, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, nil
	}
	return int(affected), nil
}

// Count returns the number of stored records.
func (s *BunStore) Count(ctx context.Context) (int, error) {
	if s.db == nil {
		return 0, errBunDatabaseRequired
	}
	return s.db.NewSelect().Model((*recordModel)(nil)).Count(ctx)
}

type recordModel struct {
	bun.BaseModel `bun:"table:i18n_audit_log"`

	ID        uuid.UUID `bun:"id,pk,type:uuid"`
	Operation string    `bun:"operation"`
	Username  string    `bun:"username"`
	IP        string    `bun:"ip"`
	ProjectID uuid.UUID `bun:"project_id,type:uuid"`
	Detail    string    `bun:"detail"`
	Result    string    `bun:"result"`
	Reason    string    `bun:"reason"`
	Level     string    `bun:"level"`
	Source    string    `bun:"source"`
	CreatedAt time.Time `bun:"created_at"`
}

func modelFromRecord(record *Record) (*recordModel, error) {
	detail, err := encodeDetail(record.Detail)
	if err != nil {
		return nil, err
	}
	return &recordModel{
		ID:        record.ID,
		Operation: string(record.Operation),
		Username:  record.Username,
		IP:        record.IP,
		ProjectID: record.ProjectID,
		Detail:    detail,
		Result:    record.Result,
		Reason:    record.Reason,
		Level:     record.Level,
		Source:    record.Source,
		CreatedAt: record.CreatedAt,
	}, nil
}

func modelToRecord(model *recordModel) (*Record, error) {
	detail, err := decodeDetail(model.Detail)
	if err != nil {
		return nil, err
	}
	return &Record{
		ID:        model.ID,
		Operation: Operation(model.Operation),
		Username:  model.Username,
		IP:        model.IP,
		ProjectID: model.ProjectID,
		Detail:    detail,
		Result:    model.Result,
		Reason:    model.Reason,
		Level:     model.Level,
		Source:    model.Source,
		CreatedAt: model.CreatedAt,
	}, nil
}

func encodeDetail(detail map[string]any) (string, error) {
	if len(detail) == 0 {
		return "{}", nil
	}
	encoded, err := json.Marshal(detail)
	if err != nil {
		return "", fmt.Errorf("audit: encode detail: %w", err)
	}
	return string(encoded), nil
}

func decodeDetail(encoded string) (map[string]any, error) {
	if encoded == "" || encoded == "{}" {
		return nil, nil
	}
	detail := map[string]any{}
	if err := json.Unmarshal([]byte(encoded), &detail); err != nil {
		return nil, fmt.Errorf("audit: decode detail: %w", err)
	}
	return detail, nil
}
