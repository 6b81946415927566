package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Reconciler classifies incoming row batches against the stored catalog.
type Reconciler struct {
	now func() time.Time
}

// ReconcilerOption customises a Reconciler.
type ReconcilerOption func(*Reconciler)

// WithReconcilerClock overrides the time source, primarily for tests.
func WithReconcilerClock(clock func() time.Time) ReconcilerOption {
	return func(r *Reconciler) {
		if clock != nil {
			r.now = clock
		}
	}
}

// NewReconciler constructs a reconciliation engine.
func NewReconciler(opts ...ReconcilerOption) *Reconciler {
	r := &Reconciler{now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Reconcile partitions rows into entries to create and patches to apply.
//
// The key map is seeded with the stored entries and extended with every
// synthesized creation, so duplicate keys inside one batch collapse to a
// single create. Updates are proposed only against persisted entries and
// carry only the fields that actually changed. Synthesized entries missing
// one or more translations get their UpdatedAt shifted forward by the number
// of missing languages, deprioritizing them in recency-ordered listings.
func (r *Reconciler) Reconcile(projectID uuid.UUID, languages []Language, existing []*Entry, rows []Row) (*ReconcileResult, error) {
	if projectID == uuid.Nil {
		return nil, ErrProjectRequired
	}

	byKey := make(map[string]*Entry, len(existing)+len(rows))
	for _, entry := range existing {
		if entry != nil {
			byKey[entry.Key] = entry
		}
	}

	now := r.now()
	result := &ReconcileResult{}

	for _, row := range rows {
		key := strings.TrimSpace(row.Key)
		if key == "" {
			return nil, ErrRowKeyRequired
		}

		if stored, ok := byKey[key]; ok {
			if !stored.Persisted() {
				// Duplicate key within this batch; the first occurrence wins.
				continue
			}
			if patch := diffEntry(stored, row, languages); !patch.Empty() {
				patch.EntryID = stored.ID
				result.ToUpdate = append(result.ToUpdate, patch)
			}
			continue
		}

		entry := &Entry{
			ProjectID: projectID,
			Module:    row.Module,
			Key:       key,
			Values:    make(map[string]string, len(languages)),
			CreatedAt: now,
			UpdatedAt: now,
		}
		for _, language := range languages {
			value := row.Values[language.Code]
			if value == "" {
				entry.Missing++
			}
			entry.Values[language.Code] = value
		}
		if entry.Missing > 0 {
			// Completeness heuristic: entries with more untranslated languages
			// sort as older when lists are ordered by recency descending.
			entry.UpdatedAt = now.Add(time.Duration(entry.Missing) * time.Second)
		}

		result.ToCreate = append(result.ToCreate, entry)
		byKey[key] = entry
	}

	return result, nil
}

// diffEntry compares a stored entry against an incoming row and returns a
// patch carrying only the differing fields. Absent row values compare as
// empty strings, matching the stored-side convention.
func diffEntry(stored *Entry, row Row, languages []Language) Patch {
	patch := Patch{}
	for _, language := range languages {
		incoming := row.Values[language.Code]
		if stored.Value(language.Code) != incoming {
			if patch.Values == nil {
				patch.Values = make(map[string]string)
			}
			patch.Values[language.Code] = incoming
		}
	}
	if row.Module != "" && row.Module != stored.Module {
		module := row.Module
		patch.Module = &module
	}
	return patch
}
