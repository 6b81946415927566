package interfaces

import "context"

// Role orders the privilege ladder used to gate catalog operations. Higher
// values subsume lower ones.
type Role int

const (
	RoleVisitor Role = iota + 1
	RoleReporter
	RoleDeveloper
	RoleAdmin
	RoleRoot
)

// Label returns the human-facing role name used in authorization failures.
func (r Role) Label() string {
	switch r {
	case RoleVisitor:
		return "visitor"
	case RoleReporter:
		return "reporter"
	case RoleDeveloper:
		return "developer"
	case RoleAdmin:
		return "admin"
	case RoleRoot:
		return "root"
	default:
		return "unknown"
	}
}

// Allows reports whether the role satisfies the required minimum.
func (r Role) Allows(required Role) bool {
	return r >= required
}

// Actor is the authenticated identity performing an operation.
type Actor struct {
	ID       string
	Username string
	Name     string
	Role     Role
}

// Authenticator resolves credentials into an actor. A nil actor with a nil
// error means the credentials did not match any account.
type Authenticator interface {
	Verify(ctx context.Context, username, password string) (*Actor, error)
}

// DirectoryService is the optional external directory fallback consulted when
// local credential verification fails. Implementations must bound the lookup;
// a timeout is reported as no match, never as a distinct caller error.
type DirectoryService interface {
	Verify(ctx context.Context, username, password string) (*DirectoryUser, error)
}

// DirectoryUser carries the subset of directory attributes needed to
// provision a local account.
type DirectoryUser struct {
	Username string
	Name     string
}
