package catalog

import (
	"context"

	"github.com/goliatone/go-localize/internal/logging"
	"github.com/goliatone/go-localize/pkg/interfaces"
	"github.com/google/uuid"
)

// Syncer propagates one edited language value to sibling entries sharing the
// same default-language text.
type Syncer struct {
	entries EntryRepository
	logger  interfaces.Logger
}

// SyncerOption customises a Syncer.
type SyncerOption func(*Syncer)

// WithSyncerLogger injects the logger used for per-row write failures.
func WithSyncerLogger(logger interfaces.Logger) SyncerOption {
	return func(s *Syncer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSyncer constructs a sync engine over the supplied repository.
func NewSyncer(entries EntryRepository, opts ...SyncerOption) *Syncer {
	s := &Syncer{
		entries: entries,
		logger:  logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sync copies the edited entry's value for lang into every project entry that
// shares its default-language text and is still empty for lang. The updated
// subset is returned for audit detail. Existing non-empty values are never
// overwritten, so a second run with the same input updates nothing.
func (s *Syncer) Sync(ctx context.Context, projectID, entryID uuid.UUID, languages []Language, lang string) ([]*Entry, error) {
	if entryID == uuid.Nil {
		return nil, ErrEntryRequired
	}
	defaultLang, ok := DefaultLanguage(languages)
	if !ok {
		return nil, ErrDefaultLangMissing
	}
	if lang == defaultLang.Code {
		return nil, nil
	}

	edited, err := s.entries.GetByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	value := edited.Value(lang)
	if value == "" {
		return nil, nil
	}

	siblings, err := s.entries.FindByDefaultValue(ctx, projectID, defaultLang.Code, edited.Value(defaultLang.Code))
	if err != nil {
		return nil, err
	}

	var updated []*Entry
	for _, sibling := range siblings {
		if sibling == nil || sibling.ID == edited.ID || sibling.Value(lang) != "" {
			continue
		}
		patch := Patch{
			EntryID: sibling.ID,
			Values:  map[string]string{lang: value},
		}
		if err := s.entries.ApplyPatch(ctx, patch); err != nil {
			// Per-row independence: a failed sibling write is logged and the
			// rest of the batch continues.
			s.logger.Error("sync value write failed", "entry_id", sibling.ID, "lang", lang, "error", err)
			continue
		}
		sibling.Values[lang] = value
		updated = append(updated, sibling)
	}

	return updated, nil
}
