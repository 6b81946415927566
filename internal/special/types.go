// Package special manages variant catalogs: per-edition overrides layered on
// top of a project's base catalog.
package special

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Entry is one override row scoped to a named variant of a project.
type Entry struct {
	ID        uuid.UUID
	ProjectID uuid.UUID
	Special   string
	Key       string
	Values    map[string]string
	CreatedAt time.Time
	UpdatedAt time.Time
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

var (
	// ErrSpecialRequired indicates an operation without a variant name.
	ErrSpecialRequired = errors.New("special: variant name is required")
	// ErrKeyRequired indicates an override without a key.
	ErrKeyRequired = errors.New("special: key is required")
	// ErrKeyExists indicates a duplicate override key within one variant.
	ErrKeyExists = errors.New("special: key already exists in this variant")
)

// NotFoundError indicates a missing override entry.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("special: entry %q not found", e.Key)
}

// IsNotFound reports whether err is an override lookup miss.
func IsNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound)
}
