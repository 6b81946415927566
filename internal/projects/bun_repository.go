package projects

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	cache "github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunProjectRepository implements ProjectRepository with optional caching.
type BunProjectRepository struct {
	repo         repository.Repository[*Project]
	cacheService cache.CacheService
	cachePrefix  string
}

var _ ProjectRepository = (*BunProjectRepository)(nil)

const projectNamespace = "project"

// NewBunProjectRepository creates a project repository without caching.
func NewBunProjectRepository(db *bun.DB) *BunProjectRepository {
	return NewBunProjectRepositoryWithCache(db, nil, nil)
}

// NewBunProjectRepositoryWithCache creates a project repository with caching
// services.
func NewBunProjectRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunProjectRepository {
	base := NewProjectRecordRepository(db)
	var svc cache.CacheService
	if cacheService != nil && serializer != nil {
		base = repositorycache.New(base, cacheService, serializer)
		svc = cacheService
	}
	prefix := ""
	if svc != nil {
		prefix = cachePrefix(projectNamespace)
	}
	return &BunProjectRepository{
		repo:         base,
		cacheService: svc,
		cachePrefix:  prefix,
	}
}

func (r *BunProjectRepository) Create(ctx context.Context, project *Project) (*Project, error) {
	record, err := r.repo.Create(ctx, project)
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (r *BunProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*Project, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, id.String())
	}
	return record, nil
}

func (r *BunProjectRepository) GetByName(ctx context.Context, name string) (*Project, error) {
	record, err := r.repo.GetByIdentifier(ctx, name)
	if err != nil {
		return nil, mapRepositoryError(err, name)
	}
	return record, nil
}

func (r *BunProjectRepository) List(ctx context.Context) ([]*Project, error) {
	records, _, err := r.repo.List(ctx)
	return records, err
}

func (r *BunProjectRepository) Update(ctx context.Context, project *Project) (*Project, error) {
	record, err := r.repo.Update(ctx, project)
	if err != nil {
		return nil, mapRepositoryError(err, project.Name)
	}
	return record, nil
}

func (r *BunProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.repo.Delete(ctx, &Project{ID: id}); err != nil {
		return mapRepositoryError(err, id.String())
	}
	return nil
}

// InvalidateCache drops every cached project lookup.
func (r *BunProjectRepository) InvalidateCache(ctx context.Context) error {
	if r.cacheService == nil || r.cachePrefix == "" {
		return nil
	}
	return r.cacheService.DeleteByPrefix(ctx, r.cachePrefix)
}

func mapRepositoryError(err error, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Key: key}
	}
	return fmt.Errorf("project repository error: %w", err)
}

func cachePrefix(namespace string) string {
	if namespace == "" {
		return ""
	}
	return "localize:" + namespace + ":"
}
