package catalog

import (
	"time"
)

// Merger consolidates duplicate partially-translated entries into canonical
// fully-translated ones, keyed by the default-language text.
type Merger struct {
	now func() time.Time
}

// MergerOption customises a Merger.
type MergerOption func(*Merger)

// WithMergerClock overrides the time source, primarily for tests.
func WithMergerClock(clock func() time.Time) MergerOption {
	return func(m *Merger) {
		if clock != nil {
			m.now = clock
		}
	}
}

// NewMerger constructs a merge engine.
func NewMerger(opts ...MergerOption) *Merger {
	m := &Merger{now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// MergeOutcome carries the entries that received copied values and the
// patches the caller must apply to persist the pass.
type MergeOutcome struct {
	// Merged lists the incomplete entries that received at least one value
	// from a complete sibling, with the copied values already applied.
	Merged []*Entry
	// Patches holds the partial writes for the pass: value merges for the
	// merged set and UpdatedAt nudges for incomplete entries with no match.
	Patches []Patch
}

// Merge partitions entries into complete and incomplete by the project
// languages, maps each distinct default-language text to its first-seen
// complete entry, and copies missing values into matching incomplete
// entries.
//
// Complete entries are never altered, so re-running the pass on an already
// merged project yields an empty merged set. When the project has no complete
// or no incomplete entries the pass returns an empty outcome with no patches.
func (m *Merger) Merge(languages []Language, entries []*Entry) (MergeOutcome, error) {
	outcome := MergeOutcome{}

	defaultLang, ok := DefaultLanguage(languages)
	if !ok {
		return outcome, ErrDefaultLangMissing
	}

	byDefaultText := make(map[string]*Entry)
	var incomplete []*Entry
	for _, entry := range entries {
		if entry == nil {
			continue
		}
		entry.Missing = 0
		for _, language := range languages {
			if entry.Value(language.Code) == "" {
				entry.Missing++
			}
		}
		if entry.Missing == 0 {
			// First-seen complete entry wins; later duplicates stay untouched.
			if _, seen := byDefaultText[entry.Value(defaultLang.Code)]; !seen {
				byDefaultText[entry.Value(defaultLang.Code)] = entry
			}
		} else {
			incomplete = append(incomplete, entry)
		}
	}

	if len(incomplete) == 0 || len(byDefaultText) == 0 {
		return outcome, nil
	}

	now := m.now()
	for _, entry := range incomplete {
		representative := byDefaultText[entry.Value(defaultLang.Code)]
		if representative == nil {
			// No canonical sibling; push the entry down the recency order by
			// its missing-language count instead of deleting it.
			shifted := now.Add(time.Duration(entry.Missing) * time.Second)
			outcome.Patches = append(outcome.Patches, Patch{
				EntryID:   entry.ID,
				UpdatedAt: &shifted,
			})
			continue
		}

		copied := make(map[string]string)
		for _, language := range languages {
			if entry.Value(language.Code) == "" {
				value := representative.Value(language.Code)
				entry.Values[language.Code] = value
				copied[language.Code] = value
			}
		}
		outcome.Merged = append(outcome.Merged, entry)
		outcome.Patches = append(outcome.Patches, Patch{
			EntryID: entry.ID,
			Values:  copied,
		})
	}

	return outcome, nil
}
