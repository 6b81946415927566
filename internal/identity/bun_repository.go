package identity

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/goliatone/go-localize/pkg/interfaces"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

var errBunDatabaseRequired = errors.New("identity: bun repository requires a database")

// BunUserRepository persists accounts using a Bun-backed database.
type BunUserRepository struct {
	db *bun.DB
}

var _ UserRepository = (*BunUserRepository)(nil)

// NewBunUserRepository constructs a Bun-backed user repository.
func NewBunUserRepository(db *bun.DB) *BunUserRepository {
	return &BunUserRepository{db: db}
}

// CreateTable creates the backing table when it does not exist yet.
func (r *BunUserRepository) CreateTable(ctx context.Context) error {
	if r.db == nil {
		return errBunDatabaseRequired
	}
	_, err := r.db.NewCreateTable().Model((*userModel)(nil)).IfNotExists().Exec(ctx)
	return err
}

// GetByID retrieves an account by identifier.
func (r *BunUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	if r.db == nil {
		return nil, errBunDatabaseRequired
	}
	var model userModel
	if err := r.db.NewSelect().Model(&model).Where("id = ?", id).Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Username: id.String()}
		}
		return nil, err
	}
	return modelToUser(&model)
}

// GetByUsername retrieves an account by username.
func (r *BunUserRepository) GetByUsername(ctx context.Context, username string) (*User, error) {
	if r.db == nil {
		return nil, errBunDatabaseRequired
	}
	var model userModel
	err := r.db.NewSelect().Model(&model).
		Where("username = ?", username).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Username: username}
		}
		return nil, err
	}
	return modelToUser(&model)
}

// GetByCredentials retrieves the active account matching both credentials.
func (r *BunUserRepository) GetByCredentials(ctx context.Context, username, password string) (*User, error) {
	if r.db == nil {
		return nil, errBunDatabaseRequired
	}
	var model userModel
	err := r.db.NewSelect().Model(&model).
		Where("username = ?", username).
		Where("password = ?", password).
		Where("status = ?", StatusActive).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Username: username}
		}
		return nil, err
	}
	return modelToUser(&model)
}

// List returns every account ordered by username.
func (r *BunUserRepository) List(ctx context.Context) ([]*User, error) {
	if r.db == nil {
		return nil, errBunDatabaseRequired
	}
	var models []userModel
	if err := r.db.NewSelect().Model(&models).Order("username ASC").Scan(ctx); err != nil {
		return nil, err
	}
	users := make([]*User, 0, len(models))
	for i := range models {
		user, err := modelToUser(&models[i])
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

// Create stores a new account.
func (r *BunUserRepository) Create(ctx context.Context, user *User) (*User, error) {
	if r.db == nil {
		return nil, errBunDatabaseRequired
	}
	if user.Username == "" {
		return nil, ErrUsernameRequired
	}
	if _, err := r.GetByUsername(ctx, user.Username); err == nil {
		return nil, ErrUsernameExists
	} else if !IsNotFound(err) {
		return nil, err
	}

	model, err := modelFromUser(user)
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
	if model.Status == "" {
		model.Status = StatusActive
	}
	if _, err := r.db.NewInsert().Model(model).Exec(ctx); err != nil {
		return nil, err
	}
	return modelToUser(model)
}

// Update replaces a stored account.
func (r *BunUserRepository) Update(ctx context.Context, user *User) (*User, error) {
	if r.db == nil {
		return nil, errBunDatabaseRequired
	}
	model, err := modelFromUser(user)
	if err != nil {
		return nil, err
	}
	model.UpdatedAt = time.Now().UTC()
	result, err := r.db.NewUpdate().Model(model).WherePK().Exec(ctx)
	if err != nil {
		return nil, err
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return nil, &NotFoundError{Username: user.Username}
	}
	return modelToUser(model)
}

// Delete removes an account.
func (r *BunUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if r.db == nil {
		return errBunDatabaseRequired
	}
	result, err := r.db.NewDelete().Model((*userModel)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return err
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return &NotFoundError{Username: id.String()}
	}
	return nil
}

type userModel struct {
	bun.BaseModel `bun:"table:i18n_users"`

	ID        uuid.UUID       `bun:"id,pk,type:uuid"`
	Name      string          `bun:"name"`
	Username  string          `bun:"username,notnull,unique"`
	Password  string          `bun:"password"`
	Role      interfaces.Role `bun:"role"`
	Projects  string          `bun:"projects"`
	Status    string          `bun:"status"`
	CreatedAt time.Time       `bun:"created_at"`
	UpdatedAt time.Time       `bun:"updated_at"`
}

func modelFromUser(user *User) (*userModel, error) {
	projects, err := encodeProjects(user.Projects)
	if err != nil {
		return nil, err
	}
	return &userModel{
		ID:        user.ID,
		Name:      user.Name,
		Username:  user.Username,
		Password:  user.Password,
		Role:      user.Role,
		Projects:  projects,
		Status:    user.Status,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}, nil
}

func modelToUser(model *userModel) (*User, error) {
	projects, err := decodeProjects(model.Projects)
	if err != nil {
		return nil, err
	}
	return &User{
		ID:        model.ID,
		Name:      model.Name,
		Username:  model.Username,
		Password:  model.Password,
		Role:      model.Role,
		Projects:  projects,
		Status:    model.Status,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}, nil
}

func encodeProjects(projects []uuid.UUID) (string, error) {
	if len(projects) == 0 {
		return "[]", nil
	}
	encoded, err := json.Marshal(projects)
	if err != nil {
		return "", fmt.Errorf("identity: encode projects: %w", err)
	}
	return string(encoded), nil
}

func decodeProjects(encoded string) ([]uuid.UUID, error) {
	if encoded == "" || encoded == "[]" {
		return nil, nil
	}
	var projects []uuid.UUID
	if err := json.Unmarshal([]byte(encoded), &projects); err != nil {
		return nil, fmt.Errorf("identity: decode projects: %w", err)
	}
	return projects, nil
}
