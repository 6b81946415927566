package guard

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-localize/pkg/interfaces"
)

var (
	// ErrUnauthorized indicates no actor could be resolved for the request.
	ErrUnauthorized = errors.New("guard: account expired or credentials invalid")
	// ErrForbidden is the target of ForbiddenError unwrapping.
	ErrForbidden = errors.New("guard: insufficient role")
)

// ForbiddenError indicates the actor's role sits below the operation's
// threshold. The message names the current role so denials are actionable.
type ForbiddenError struct {
	Current  interfaces.Role
	Required interfaces.Role
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("guard: %s role may not perform this operation", e.Current.Label())
}

func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}
