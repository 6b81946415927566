package projects

import (
	"errors"
	"fmt"
)

var (
	// ErrNameRequired indicates a project operation without a name.
	ErrNameRequired = errors.New("projects: project name is required")
	// ErrNameExists indicates an attempt to create a duplicate project.
	ErrNameExists = errors.New("projects: project name already exists")
	// ErrDefaultLanguageRequired indicates a language configuration without a
	// default language.
	ErrDefaultLanguageRequired = errors.New("projects: language configuration needs a default language")
)

// NotFoundError indicates a missing project.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("projects: project %q not found", e.Key)
}

// IsNotFound reports whether err is a project lookup miss.
func IsNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound)
}
