package catalog

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

var errBunDatabaseRequired = errors.New("catalog: bun repository requires a database")

// BunEntryRepository persists catalog entries using a Bun-backed database.
type BunEntryRepository struct {
	db *bun.DB
}

var _ EntryRepository = (*BunEntryRepository)(nil)

// NewBunEntryRepository constructs a Bun-backed entry repository.
func NewBunEntryRepository(db *bun.DB) *BunEntryRepository {
	return &BunEntryRepository{db: db}
}

// CreateTable creates the backing table when it does not exist yet.
func (r *BunEntryRepository) CreateTable(ctx context.Context) error {
	if r.db == nil {
		return errBunDatabaseRequired
	}
	_, err := r.db.NewCreateTable().Model((*entryModel)(nil)).IfNotExists().Exec(ctx)
	return err
}

// FindByProject returns every entry belonging to the project.
func (r *BunEntryRepository) FindByProject(ctx context.Context, projectID uuid.UUID) ([]*Entry, error) {
	if r.db == nil {
		return nil, errBunDatabaseRequired
	}
	var models []entryModel
	if err := r.db.NewSelect().Model(&models).Where("project_id = ?", projectID).Scan(ctx); err != nil {
		return nil, err
	}
	return modelsToEntries(models)
}

// FindByKey returns the project entry with the given key, or NotFoundError.
func (r *BunEntryRepository) FindByKey(ctx context.Context, projectID uuid.UUID, key string) (*Entry, error) {
	if r.db == nil {
		return nil, errBunDatabaseRequired
	}
	var model entryModel
	err := r.db.NewSelect().Model(&model).
		Where("project_id = ?", projectID).
		Where("key = ?", key).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Resource: "entry", Key: key}
		}
		return nil, err
	}
	return modelToEntry(&model)
}

// GetByID retrieves an entry by identifier.
func (r *BunEntryRepository) GetByID(ctx context.Context, id uuid.UUID) (*Entry, error) {
	if r.db == nil {
		return nil, errBunDatabaseRequired
	}
	var model entryModel
	if err := r.db.NewSelect().Model(&model).Where("id = ?", id).Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Resource: "entry", Key: id.String()}
		}
		return nil, err
	}
	return modelToEntry(&model)
}

// FindByDefaultValue returns project entries whose value for lang equals
// text. Values live in a JSON column, so the match is applied after the scan.
func (r *BunEntryRepository) FindByDefaultValue(ctx context.Context, projectID uuid.UUID, lang, text string) ([]*Entry, error) {
	entries, err := r.FindByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	matched := entries[:0]
	for _, entry := range entries {
		if entry.Value(lang) == text {
			matched = append(matched, entry)
		}
	}
	return matched, nil
}

// List returns a page of project entries plus the unpaged total.
func (r *BunEntryRepository) List(ctx context.Context, projectID uuid.UUID, opts ListOptions) ([]*Entry, int, error) {
	if r.db == nil {
		return nil, 0, errBunDatabaseRequired
	}
	opts = opts.normalized()

	var models []entryModel
	query := r.db.NewSelect().Model(&models).Where("project_id = ?", projectID)
	if opts.Keyword != "" {
		pattern := "%" + opts.Keyword + "%"
		query = query.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("? LIKE ?", bun.Ident("key"), pattern).
				WhereOr("? LIKE ?", bun.Ident("values"), pattern)
		})
	}

	total, err := query.
		Order(fmt.Sprintf("%s %s", orderColumn(opts.OrderBy), opts.Order)).
		Limit(opts.Limit).
		Offset(opts.Skip).
		ScanAndCount(ctx)
	if err != nil {
		return nil, 0, err
	}

	entries, err := modelsToEntries(models)
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// Insert stores a new entry, assigning an identity when absent.
func (r *BunEntryRepository) Insert(ctx context.Context, entry *Entry) (*Entry, error) {
	if r.db == nil {
		return nil, errBunDatabaseRequired
	}
	model, err := modelFromEntry(entry)
	if err != nil {
		return nil, err
	}
	if model.ID == uuid.Nil {
		model.ID = uuid.New()
	}
	if _, err := r.db.NewInsert().Model(model).Exec(ctx); err != nil {
		return nil, err
	}
	return modelToEntry(model)
}

// InsertMany inserts entries best-effort. Each row is written independently;
// failures are joined into the returned error next to the successful subset.
func (r *BunEntryRepository) InsertMany(ctx context.Context, entries []*Entry) ([]*Entry, error) {
	if r.db == nil {
		return nil, errBunDatabaseRequired
	}
	var inserted []*Entry
	var errs []error
	for _, entry := range entries {
		stored, err := r.Insert(ctx, entry)
		if err != nil {
			errs = append(errs, fmt.Errorf("insert %q: %w", entry.Key, err))
			continue
		}
		inserted = append(inserted, stored)
	}
	return inserted, errors.Join(errs...)
}

// ApplyPatch performs a targeted partial update of one entry. Value changes
// are merged into the stored JSON document read-modify-write; the final write
// is conditional only on the row id, so concurrent patches converge
// last-write-wins.
func (r *BunEntryRepository) ApplyPatch(ctx context.Context, patch Patch) error {
	if r.db == nil {
		return errBunDatabaseRequired
	}
	if patch.Empty() {
		return nil
	}

	var model entryModel
	if err := r.db.NewSelect().Model(&model).Where("id = ?", patch.EntryID).Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &NotFoundError{Resource: "entry", Key: patch.EntryID.String()}
		}
		return err
	}

	columns := make([]string, 0, 3)
	if patch.Module != nil {
		model.Module = *patch.Module
		columns = append(columns, "module")
	}
	if len(patch.Values) > 0 {
		values, err := decodeValues(model.Values)
		if err != nil {
			return err
		}
		for lang, value := range patch.Values {
			values[lang] = value
		}
		encoded, err := encodeValues(values)
		if err != nil {
			return err
		}
		model.Values = encoded
		columns = append(columns, "values")
	}
	if patch.UpdatedAt != nil {
		model.UpdatedAt = patch.UpdatedAt.UTC()
	} else {
		model.UpdatedAt = time.Now().UTC()
	}
	columns = append(columns, "updated_at")

	_, err := r.db.NewUpdate().
		Model(&model).
		Column(columns...).
		WherePK().
		Exec(ctx)
	return err
}

// Delete removes an entry.
func (r *BunEntryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if r.db == nil {
		return errBunDatabaseRequired
	}
	result, err := r.db.NewDelete().Model((*entryModel)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return err
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return &NotFoundError{Resource: "entry", Key: id.String()}
	}
	return nil
}

// Count returns the number of entries in the project.
func (r *BunEntryRepository) Count(ctx context.Context, projectID uuid.UUID) (int, error) {
	if r.db == nil {
		return 0, errBunDatabaseRequired
	}
	return r.db.NewSelect().Model((*entryModel)(nil)).Where("project_id = ?", projectID).Count(ctx)
}

func orderColumn(orderBy string) string {
	switch orderBy {
	case OrderKey:
		return "key"
	case OrderCreatedAt:
		return "created_at"
	default:
		return "updated_at"
	}
}

type entryModel struct {
	bun.BaseModel `bun:"table:i18n_entries"`

	ID        uuid.UUID `bun:"id,pk,type:uuid"`
	ProjectID uuid.UUID `bun:"project_id,type:uuid"`
	Module    string    `bun:"module"`
	Key       string    `bun:"key,notnull"`
	Values    string    `bun:"values"`
	CreatedAt time.Time `bun:"created_at"`
	UpdatedAt time.Time `bun:"updated_at"`
}

func modelFromEntry(entry *Entry) (*entryModel, error) {
	encoded, err := encodeValues(entry.Values)
	if err != nil {
		return nil, err
	}
	return &entryModel{
		ID:        entry.ID,
		ProjectID: entry.ProjectID,
		Module:    entry.Module,
		Key:       entry.Key,
		Values:    encoded,
		CreatedAt: entry.CreatedAt,
		UpdatedAt: entry.UpdatedAt,
	}, nil
}

func modelToEntry(model *entryModel) (*Entry, error) {
	values, err := decodeValues(model.Values)
	if err != nil {
		return nil, err
	}
	return &Entry{
		ID:        model.ID,
		ProjectID: model.ProjectID,
		Module:    model.Module,
		Key:       model.Key,
		Values:    values,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}, nil
}

func modelsToEntries(models []entryModel) ([]*Entry, error) {
	entries := make([]*Entry, 0, len(models))
	for i := range models {
		entry, err := modelToEntry(&models[i])
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func encodeValues(values map[string]string) (string, error) {
	if len(values) == 0 {
		return "{}", nil
	}
	encoded, err := json.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("catalog: encode values: %w", err)
	}
	return string(encoded), nil
}

func decodeValues(encoded string) (map[string]string, error) {
	values := map[string]string{}
	if encoded == "" {
		return values, nil
	}
	if err := json.Unmarshal([]byte(encoded), &values); err != nil {
		return nil, fmt.Errorf("catalog: decode values: %w", err)
	}
	return values, nil
}
