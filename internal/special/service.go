package special

import (
	"context"
	"strings"

	"github.com/goliatone/go-localize/internal/catalog"
	"github.com/goliatone/go-localize/internal/logging"
	"github.com/goliatone/go-localize/pkg/interfaces"
	"github.com/google/uuid"
)

// Service exposes variant override use-cases.
type Service interface {
	List(ctx context.Context, projectID uuid.UUID, specialName string) ([]*Entry, error)
	Create(ctx context.Context, req CreateRequest) (*Entry, error)
	UpdateValue(ctx context.Context, req UpdateValueRequest) (*Entry, error)
	Delete(ctx context.Context, id uuid.UUID) (*Entry, error)
	// Import reconciles a row batch into one variant, creating missing
	// overrides and patching changed values per row, best-effort.
	Import(ctx context.Context, req ImportRequest) (*ImportResult, error)
	// Resolve layers the variant's overrides on top of the base rows.
	Resolve(ctx context.Context, projectID uuid.UUID, specialName string, base []catalog.Row) ([]catalog.Row, error)
}

// CreateRequest captures a new override.
type CreateRequest struct {
	ProjectID uuid.UUID
	Special   string
	Key       string
	Values    map[string]string
}

// UpdateValueRequest edits one language value of one override.
type UpdateValueRequest struct {
	EntryID uuid.UUID
	Lang    string
	Value   string
}

// ImportRequest reconciles rows into one variant.
type ImportRequest struct {
	ProjectID uuid.UUID
	Special   string
	Rows      []catalog.Row
}

// ImportResult summarises an override import run.
type ImportResult struct {
	Created int
	Updated int
}

type service struct {
	entries EntryRepository
	logger  interfaces.Logger
}

// ServiceOption customises the variant service.
type ServiceOption func(*service)

// WithLogger injects the service logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService constructs the variant service over the supplied repository.
func NewService(entries EntryRepository, opts ...ServiceOption) Service {
	s := &service{
		entries: entries,
		logger:  logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) List(ctx context.Context, projectID uuid.UUID, specialName string) ([]*Entry, error) {
	if specialName == "" {
		return nil, ErrSpecialRequired
	}
	return s.entries.FindByVariant(ctx, projectID, specialName)
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Entry, error) {
	if req.Special == "" {
		return nil, ErrSpecialRequired
	}
	key := strings.TrimSpace(req.Key)
	if key == "" {
		return nil, ErrKeyRequired
	}
	if _, err := s.entries.FindByKey(ctx, req.ProjectID, req.Special, key); err == nil {
		return nil, ErrKeyExists
	} else if !IsNotFound(err) {
		return nil, err
	}

	return s.entries.Insert(ctx, &Entry{
		ProjectID: req.ProjectID,
		Special:   req.Special,
		Key:       key,
		Values:    req.Values,
	})
}

func (s *service) UpdateValue(ctx context.Context, req UpdateValueRequest) (*Entry, error) {
	entry, err := s.entries.GetByID(ctx, req.EntryID)
	if err != nil {
		return nil, err
	}
	if err := s.entries.UpdateValues(ctx, entry.ID, map[string]string{req.Lang: req.Value}); err != nil {
		return nil, err
	}
	if entry.Values == nil {
		entry.Values = make(map[string]string, 1)
	}
	entry.Values[req.Lang] = req.Value
	return entry, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) (*Entry, error) {
	entry, err := s.entries.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.entries.Delete(ctx, id); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *service) Import(ctx context.Context, req ImportRequest) (*ImportResult, error) {
	if req.Special == "" {
		return nil, ErrSpecialRequired
	}

	result := &ImportResult{}
	for _, row := range req.Rows {
		key := strings.TrimSpace(row.Key)
		if key == "" {
			return nil, ErrKeyRequired
		}

		existing, err := s.entries.FindByKey(ctx, req.ProjectID, req.Special, key)
		if err != nil {
			if !IsNotFound(err) {
				return nil, err
			}
			if _, err := s.entries.Insert(ctx, &Entry{
				ProjectID: req.ProjectID,
				Special:   req.Special,
				Key:       key,
				Values:    row.Values,
			}); err != nil {
				s.logger.Error("variant import insert failed", "key", key, "error", err)
				continue
			}
			result.Created++
			continue
		}

		changed := make(map[string]string)
		for lang, value := range row.Values {
			if existing.Value(lang) != value {
				changed[lang] = value
			}
		}
		if len(changed) == 0 {
			continue
		}
		if err := s.entries.UpdateValues(ctx, existing.ID, changed); err != nil {
			s.logger.Error("variant import update failed", "key", key, "error", err)
			continue
		}
		result.Updated++
	}
	return result, nil
}

func (s *service) Resolve(ctx context.Context, projectID uuid.UUID, specialName string, base []catalog.Row) ([]catalog.Row, error) {
	overrides, err := s.List(ctx, projectID, specialName)
	if err != nil {
		return nil, err
	}
	byKey := make(map[string]*Entry, len(overrides))
	for _, entry := range overrides {
		byKey[entry.Key] = entry
	}

	out := make([]catalog.Row, 0, len(base))
	for _, row := range base {
		resolved := catalog.Row{
			Key:    row.Key,
			Module: row.Module,
			Values: make(map[string]string, len(row.Values)),
		}
		for lang, value := range row.Values {
			resolved.Values[lang] = value
		}
		if override, ok := byKey[row.Key]; ok {
			for lang, value := range override.Values {
				if value != "" {
					resolved.Values[lang] = value
				}
			}
		}
		out = append(out, resolved)
	}
	return out, nil
}
