package identity

import (
	"time"

	"github.com/goliatone/go-localize/pkg/interfaces"
	"github.com/google/uuid"
)

// User statuses.
const (
	StatusActive   = "active"
	StatusDisabled = "disabled"
)

// User is an account able to operate on localization projects. Password is
// stored as provided; hashing policy belongs to the caller that provisions
// accounts.
type User struct {
	ID        uuid.UUID
	Name      string
	Username  string
	Password  string
	Role      interfaces.Role
	Projects  []uuid.UUID
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Actor projects the user into the authorization value passed around in
// contexts and audit records.
func (u *User) Actor() *interfaces.Actor {
	if u == nil {
		return nil
	}
	return &interfaces.Actor{
		ID:       u.ID.String(),
		Username: u.Username,
		Name:     u.Name,
		Role:     u.Role,
	}
}

// Clone returns a deep copy of the user.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	copied := *u
	if u.Projects != nil {
		copied.Projects = make([]uuid.UUID, len(u.Projects))
		copy(copied.Projects, u.Projects)
	}
	return &copied
}
