package identity

import (
	"errors"
	"fmt"
)

var (
	// ErrUsernameRequired indicates an account operation without a username.
	ErrUsernameRequired = errors.New("identity: username is required")
	// ErrUsernameExists indicates an attempt to provision a duplicate account.
	ErrUsernameExists = errors.New("identity: username already exists")
)

// NotFoundError indicates a missing account.
type NotFoundError struct {
	Username string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("identity: user %q not found", e.Username)
}

// IsNotFound reports whether err is an account lookup miss.
func IsNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound)
}
