package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/goliatone/go-localize/internal/logging"
	"github.com/goliatone/go-localize/pkg/interfaces"
	"github.com/google/uuid"
)

// Service exposes catalog management use-cases.
type Service interface {
	List(ctx context.Context, req ListRequest) (*ListResult, error)
	Create(ctx context.Context, req CreateEntryRequest) (*Entry, error)
	UpdateValue(ctx context.Context, req UpdateValueRequest) (*UpdateValueResult, error)
	Delete(ctx context.Context, req DeleteEntryRequest) (*Entry, error)
	Import(ctx context.Context, req ImportRequest) (*ImportResult, error)
	Export(ctx context.Context, req ExportRequest) ([]Row, error)
	Merge(ctx context.Context, projectID uuid.UUID) ([]*Entry, error)
	Progress(ctx context.Context, projectID uuid.UUID) (Progress, error)
}

// ListRequest pages through a project's entries.
type ListRequest struct {
	ProjectID uuid.UUID
	Options   ListOptions
}

// ListResult carries one page of entries plus the unpaged total.
type ListResult struct {
	Entries []*Entry
	Total   int
}

// CreateEntryRequest captures a manual single-entry creation. Title is the
// default-language text; every other language starts untranslated.
type CreateEntryRequest struct {
	ProjectID uuid.UUID
	Key       string
	Module    string
	Title     string
}

// UpdateValueRequest edits one language value of one entry.
type UpdateValueRequest struct {
	ProjectID uuid.UUID
	EntryID   uuid.UUID
	Lang      string
	Value     string
}

// UpdateValueResult reports the edit plus the sibling entries the sync pass
// filled in, for audit detail.
type UpdateValueResult struct {
	Entry    *Entry
	Previous string
	Synced   []*Entry
}

// DeleteEntryRequest removes one entry.
type DeleteEntryRequest struct {
	ProjectID uuid.UUID
	EntryID   uuid.UUID
}

// ImportRequest reconciles a normalized row batch against the stored catalog.
type ImportRequest struct {
	ProjectID uuid.UUID
	Rows      []Row
}

// ImportResult summarises an import run.
type ImportResult struct {
	Created int
	Updated int
	Result  *ReconcileResult
}

// ExportRequest selects the rows handed to an export codec. When All is
// false only entries with at least one untranslated language are returned.
type ExportRequest struct {
	ProjectID uuid.UUID
	All       bool
}

type service struct {
	entries    EntryRepository
	projects   ProjectResolver
	reconciler *Reconciler
	merger     *Merger
	syncer     *Syncer
	logger     interfaces.Logger
	now        func() time.Time
}

// ServiceOption customises the catalog service.
type ServiceOption func(*service)

// WithLogger injects the service logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the time source used by the engines, primarily for
// tests.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// NewService wires the reconciliation, merge and sync engines over the
// supplied repository.
func NewService(entries EntryRepository, projects ProjectResolver, opts ...ServiceOption) Service {
	s := &service{
		entries:  entries,
		projects: projects,
		logger:   logging.NoOp(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.reconciler = NewReconciler(WithReconcilerClock(s.now))
	s.merger = NewMerger(WithMergerClock(s.now))
	s.syncer = NewSyncer(entries, WithSyncerLogger(s.logger))
	return s
}

func (s *service) List(ctx context.Context, req ListRequest) (*ListResult, error) {
	if req.ProjectID == uuid.Nil {
		return nil, ErrProjectRequired
	}
	languages, err := s.projects.Languages(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}
	opts := req.Options
	if opts.DefaultLang == "" {
		if defaultLang, ok := DefaultLanguage(languages); ok {
			opts.DefaultLang = defaultLang.Code
		}
	}
	entries, total, err := s.entries.List(ctx, req.ProjectID, opts)
	if err != nil {
		return nil, err
	}
	return &ListResult{Entries: entries, Total: total}, nil
}

func (s *service) Create(ctx context.Context, req CreateEntryRequest) (*Entry, error) {
	key := strings.TrimSpace(req.Key)
	if key == "" {
		return nil, ErrRowKeyRequired
	}
	languages, err := s.projects.Languages(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}
	defaultLang, ok := DefaultLanguage(languages)
	if !ok {
		return nil, ErrDefaultLangMissing
	}
	if _, err := s.entries.FindByKey(ctx, req.ProjectID, key); err == nil {
		return nil, ErrKeyExists
	} else if !IsNotFound(err) {
		return nil, err
	}

	now := s.now()
	entry := &Entry{
		ProjectID: req.ProjectID,
		Module:    req.Module,
		Key:       key,
		Values:    make(map[string]string, len(languages)),
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, language := range languages {
		entry.Values[language.Code] = ""
	}
	entry.Values[defaultLang.Code] = req.Title

	return s.entries.Insert(ctx, entry)
}

func (s *service) UpdateValue(ctx context.Context, req UpdateValueRequest) (*UpdateValueResult, error) {
	if req.EntryID == uuid.Nil {
		return nil, ErrEntryRequired
	}
	languages, err := s.projects.Languages(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}
	if !languageConfigured(languages, req.Lang) {
		return nil, ErrLanguageUnknown
	}

	entry, err := s.entries.GetByID(ctx, req.EntryID)
	if err != nil {
		return nil, err
	}
	previous := entry.Value(req.Lang)

	patch := Patch{
		EntryID: entry.ID,
		Values:  map[string]string{req.Lang: req.Value},
	}
	if err := s.entries.ApplyPatch(ctx, patch); err != nil {
		return nil, err
	}
	entry.Values[req.Lang] = req.Value

	synced, err := s.syncer.Sync(ctx, req.ProjectID, entry.ID, languages, req.Lang)
	if err != nil {
		// The edit itself succeeded; sync failures only shrink the
		// propagated set.
		s.logger.Error("value sync failed", "entry_id", entry.ID, "lang", req.Lang, "error", err)
	}

	return &UpdateValueResult{
		Entry:    entry,
		Previous: previous,
		Synced:   synced,
	}, nil
}

func (s *service) Delete(ctx context.Context, req DeleteEntryRequest) (*Entry, error) {
	if req.EntryID == uuid.Nil {
		return nil, ErrEntryRequired
	}
	entry, err := s.entries.GetByID(ctx, req.EntryID)
	if err != nil {
		return nil, err
	}
	if err := s.entries.Delete(ctx, entry.ID); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *service) Import(ctx context.Context, req ImportRequest) (*ImportResult, error) {
	languages, err := s.projects.Languages(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}
	existing, err := s.entries.FindByProject(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}

	result, err := s.reconciler.Reconcile(req.ProjectID, languages, existing, req.Rows)
	if err != nil {
		return nil, err
	}

	// Creates and updates are two independent best-effort batches; a failing
	// row never aborts its siblings.
	inserted, err := s.entries.InsertMany(ctx, result.ToCreate)
	if err != nil {
		s.logger.Error("import insert batch reported failures", "project_id", req.ProjectID, "error", err)
	}
	applied := 0
	for _, patch := range result.ToUpdate {
		if err := s.entries.ApplyPatch(ctx, patch); err != nil {
			s.logger.Error("import update failed", "entry_id", patch.EntryID, "error", err)
			continue
		}
		applied++
	}

	return &ImportResult{
		Created: len(inserted),
		Updated: applied,
		Result:  result,
	}, nil
}

func (s *service) Export(ctx context.Context, req ExportRequest) ([]Row, error) {
	if _, err := s.projects.Languages(ctx, req.ProjectID); err != nil {
		return nil, err
	}
	entries, err := s.entries.FindByProject(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(entries))
	for _, entry := range entries {
		if !req.All && !hasUntranslated(entry) {
			continue
		}
		values := make(map[string]string, len(entry.Values))
		for lang, value := range entry.Values {
			values[lang] = value
		}
		rows = append(rows, Row{
			Key:    entry.Key,
			Module: entry.Module,
			Values: values,
		})
	}
	return rows, nil
}

func (s *service) Merge(ctx context.Context, projectID uuid.UUID) ([]*Entry, error) {
	languages, err := s.projects.Languages(ctx, projectID)
	if err != nil {
		return nil, err
	}
	entries, err := s.entries.FindByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	outcome, err := s.merger.Merge(languages, entries)
	if err != nil {
		return nil, err
	}
	for _, patch := range outcome.Patches {
		if err := s.entries.ApplyPatch(ctx, patch); err != nil {
			s.logger.Error("merge update failed", "entry_id", patch.EntryID, "error", err)
		}
	}
	return outcome.Merged, nil
}

func (s *service) Progress(ctx context.Context, projectID uuid.UUID) (Progress, error) {
	languages, err := s.projects.Languages(ctx, projectID)
	if err != nil {
		return Progress{}, err
	}
	entries, err := s.entries.FindByProject(ctx, projectID)
	if err != nil {
		return Progress{}, err
	}
	return Measure(languages, entries), nil
}

func languageConfigured(languages []Language, code string) bool {
	for _, language := range languages {
		if language.Code == code {
			return true
		}
	}
	return false
}

func hasUntranslated(entry *Entry) bool {
	for _, value := range entry.Values {
		if value == "" {
			return true
		}
	}
	return false
}
