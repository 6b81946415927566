package special

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

var errBunDatabaseRequired = errors.New("special: bun repository requires a database")

// BunEntryRepository persists variant overrides using a Bun-backed database.
type BunEntryRepository struct {
	db *bun.DB
}

var _ EntryRepository = (*BunEntryRepository)(nil)

// NewBunEntryRepository constructs a Bun-backed override repository.
func NewBunEntryRepository(db *bun.DB) *BunEntryRepository {
	return &BunEntryRepository{db: db}
}

// CreateTable creates the backing table when it does not exist yet.
func (r *BunEntryRepository) CreateTable(ctx context.Context) error {
	if r.db == nil {
		return errBunDatabaseRequired
	}
	_, err := r.db.NewCreateTable().Model((*specialModel)(nil)).IfNotExists().Exec(ctx)
	return err
}

func (r *BunEntryRepository) FindByVariant(ctx context.Context, projectID uuid.UUID, specialName string) ([]*Entry, error) {
	if r.db == nil {
		return nil, errBunDatabaseRequired
	}
	var models []specialModel
	err := r.db.NewSelect().Model(&models).
		Where("project_id = ?", projectID).
		Where("special = ?", specialName).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	entries := make([]*Entry, 0, len(models))
	for i := range models {
		entry, err := specialModelToEntry(&models[i])
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (r *BunEntryRepository) FindByKey(ctx context.Context, projectID uuid.UUID, specialName, key string) (*Entry, error) {
	if r.db == nil {
		return nil, errBunDatabaseRequired
	}
	var model specialModel
	err := r.db.NewSelect().Model(&model).
		Where("project_id = ?", projectID).
		Where("special = ?", specialName).
		Where("? = ?", bun.Ident("key"), key).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Key: key}
		}
		return nil, err
	}
	return specialModelToEntry(&model)
}

func (r *BunEntryRepository) GetByID(ctx context.Context, id uuid.UUID) (*Entry, error) {
	if r.db == nil {
		return nil, errBunDatabaseRequired
	}
	var model specialModel
	if err := r.db.NewSelect().Model(&model).Where("id = ?", id).Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Key: id.String()}
		}
		return nil, err
	}
	return specialModelToEntry(&model)
}

func (r *BunEntryRepository) Insert(ctx context.Context, entry *Entry) (*Entry, error) {
	if r.db == nil {
		return nil, errBunDatabaseRequired
	}
	model, err := specialModelFromEntry(entry)
	if err != nil {
		return nil, err
	}
	if model.ID == uuid.Nil {
		model.ID = uuid.New()
	}
	now := time.Now().UTC()
	if model.CreatedAt.IsZero() {
		model.CreatedAt = now
	}
	model.UpdatedAt = now
	if _, err := r.db.NewInsert().Model(model).Exec(ctx); err != nil {
		return nil, err
	}
	return specialModelToEntry(model)
}

func (r *BunEntryRepository) UpdateValues(ctx context.Context, id uuid.UUID, values map[string]string) error {
	if r.db == nil {
		return errBunDatabaseRequired
	}
	if len(values) == 0 {
		return nil
	}

	var model specialModel
	if err := r.db.NewSelect().Model(&model).Where("id = ?", id).Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &NotFoundError{Key: id.String()}
		}
		return err
	}

	merged, err := decodeSpecialValues(model.Values)
	if err != nil {
		return err
	}
	for lang, value := range values {
		merged[lang] = value
	}
	encoded, err := encodeSpecialValues(merged)
	if err != nil {
		return err
	}
	model.Values = encoded
	model.UpdatedAt = time.Now().UTC()

	_, err = r.db.NewUpdate().
		Model(&model).
		Column("values", "updated_at").
		WherePK().
		Exec(ctx)
	return err
}

func (r *BunEntryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if r.db == nil {
		return errBunDatabaseRequired
	}
	result, err := r.db.NewDelete().Model((*specialModel)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return err
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return &NotFoundError{Key: id.String()}
	}
	return nil
}

func (r *BunEntryRepository) DeleteVariant(ctx context.Context, projectID uuid.UUID, specialName string) (int, error) {
	if r.db == nil {
		return 0, errBunDatabaseRequired
	}
	result, err := r.db.NewDelete().Model((*specialModel)(nil)).
		Where("project_id = ?", projectID).
		Where("special = ?", specialName).
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

type specialModel struct {
	bun.BaseModel `bun:"table:i18n_special_entries"`

	ID        uuid.UUID `bun:"id,pk,type:uuid"`
	ProjectID uuid.UUID `bun:"project_id,type:uuid"`
	Special   string    `bun:"special,notnull"`
	Key       string    `bun:"key,notnull"`
	Values    string    `bun:"values"`
	CreatedAt time.Time `bun:"created_at"`
	UpdatedAt time.Time `bun:"updated_at"`
}

func specialModelFromEntry(entry *Entry) (*specialModel, error) {
	encoded, err := encodeSpecialValues(entry.Values)
	if err != nil {
		return nil, err
	}
	return &specialModel{
		ID:        entry.ID,
		ProjectID: entry.ProjectID,
		Special:   entry.Special,
		Key:       entry.Key,
		Values:    encoded,
		CreatedAt: entry.CreatedAt,
		UpdatedAt: entry.UpdatedAt,
	}, nil
}

func specialModelToEntry(model *specialModel) (*Entry, error) {
	values, err := decodeSpecialValues(model.Values)
	if err != nil {
		return nil, err
	}
	return &Entry{
		ID:        model.ID,
		ProjectID: model.ProjectID,
		Special:   model.Special,
		Key:       model.Key,
		Values:    values,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}, nil
}

func encodeSpecialValues(values map[string]string) (string, error) {
	if len(values) == 0 {
		return "{}", nil
	}
	encoded, err := json.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("special: encode values: %w", err)
	}
	return string(encoded), nil
}

func decodeSpecialValues(encoded string) (map[string]string, error) {
	values := map[string]string{}
	if encoded == "" {
		return values, nil
	}
	if err := json.Unmarshal([]byte(encoded), &values); err != nil {
		return nil, fmt.Errorf("special: decode values: %w", err)
	}
	return values, nil
}
