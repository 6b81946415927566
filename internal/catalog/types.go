package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Entry is one catalog row: a translation key with one value per project
// language. Values may be sparse; a missing key and an empty string both mean
// "untranslated for that language".
type Entry struct {
	ID        uuid.UUID
	ProjectID uuid.UUID
	Module    string
	Key       string
	Values    map[string]string
	CreatedAt time.Time
	UpdatedAt time.Time

	// Missing counts the project languages left untranslated when the entry
	// was synthesized or partitioned. Transient; never persisted.
	Missing int
}

// Persisted reports whether the entry carries a store-assigned identity.
func (e *Entry) Persisted() bool {
	return e != nil && e.ID != uuid.Nil
}

// Value returns the entry's value for a language, with absent keys treated as
// empty.
func (e *Entry) Value(lang string) string {
	if e == nil || e.Values == nil {
		return ""
	}
	return e.Values[lang]
}

// Clone returns a deep copy of the entry.
func (e *Entry) Clone() *Entry {
	if e == nil {
		return nil
	}
	copied := *e
	if e.Values != nil {
		copied.Values = make(map[string]string, len(e.Values))
		for lang, value := range e.Values {
			copied.Values[lang] = value
		}
	}
	return &copied
}

// Language describes one language of a project's configuration.
type Language struct {
	Code     string
	Label    string
	FileName string
	Display  bool
	Default  bool
}

// DefaultLanguage returns the language marked as the project's canonical
// source language.
func DefaultLanguage(languages []Language) (Language, bool) {
	for _, language := range languages {
		if language.Default {
			return language, true
		}
	}
	return Language{}, false
}

// LanguageCodes extracts the ordered code list from a language configuration.
func LanguageCodes(languages []Language) []string {
	codes := make([]string, 0, len(languages))
	for _, language := range languages {
		codes = append(codes, language.Code)
	}
	return codes
}

// Row is one normalized incoming row from an upload, spreadsheet import, or
// manual edit. Codec concerns (spreadsheet, zip) live outside this package;
// callers hand the engines fully decoded rows.
type Row struct {
	Key    string
	Module string
	Values map[string]string
}

// Patch is the changed-fields value object produced by the engines and
// applied by repositories as a targeted partial write. Only non-nil/non-empty
// fields are written.
type Patch struct {
	EntryID   uuid.UUID
	Module    *string
	Values    map[string]string
	UpdatedAt *time.Time
}

// Empty reports whether the patch carries no field changes.
func (p Patch) Empty() bool {
	return p.Module == nil && len(p.Values) == 0 && p.UpdatedAt == nil
}

// ReconcileResult partitions an incoming batch into disjoint create and
// update sets. Never persisted.
type ReconcileResult struct {
	ToCreate []*Entry
	ToUpdate []Patch
}
