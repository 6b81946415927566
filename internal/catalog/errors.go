package catalog

import (
	"errors"
	"fmt"
)

var (
	ErrRowKeyRequired     = errors.New("catalog: row key is required")
	ErrKeyExists          = errors.New("catalog: key already exists")
	ErrDefaultLangMissing = errors.New("catalog: project has no default language")
	ErrProjectRequired    = errors.New("catalog: project id required")
	ErrEntryRequired      = errors.New("catalog: entry id required")
	ErrLanguageUnknown    = errors.New("catalog: language not configured for project")
)

// NotFoundError reports a missing entry or project.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("catalog: %s %q not found", e.Resource, e.Key)
}

// IsNotFound reports whether err wraps a NotFoundError.
func IsNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound)
}
