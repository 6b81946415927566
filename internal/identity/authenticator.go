package identity

import (
	"context"
	"time"

	"github.com/goliatone/go-localize/internal/logging"
	"github.com/goliatone/go-localize/pkg/interfaces"
)

// DefaultDirectoryTimeout bounds how long one directory lookup may take. A
// slow or unreachable directory degrades to "no match" instead of stalling
// logins.
const DefaultDirectoryTimeout = 3 * time.Second

// Authenticator verifies credentials against the local account store, falling
// back to an optional company directory. Directory users without a local
// account are provisioned at the lowest role on first login.
type Authenticator struct {
	users            UserRepository
	directory        interfaces.DirectoryService
	directoryTimeout time.Duration
	logger           interfaces.Logger
}

var _ interfaces.Authenticator = (*Authenticator)(nil)

// AuthenticatorOption customises an Authenticator.
type AuthenticatorOption func(*Authenticator)

// WithDirectory enables the directory fallback.
func WithDirectory(directory interfaces.DirectoryService) AuthenticatorOption {
	return func(a *Authenticator) {
		a.directory = directory
	}
}

// WithDirectoryTimeout overrides the directory lookup deadline.
func WithDirectoryTimeout(timeout time.Duration) AuthenticatorOption {
	return func(a *Authenticator) {
		if timeout > 0 {
			a.directoryTimeout = timeout
		}
	}
}

// WithAuthenticatorLogger injects the authenticator logger.
func WithAuthenticatorLogger(logger interfaces.Logger) AuthenticatorOption {
	return func(a *Authenticator) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// NewAuthenticator constructs an authenticator over the supplied account
// store.
func NewAuthenticator(users UserRepository, opts ...AuthenticatorOption) *Authenticator {
	a := &Authenticator{
		users:            users,
		directoryTimeout: DefaultDirectoryTimeout,
		logger:           logging.NoOp(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Verify resolves credentials to an actor. A nil actor with a nil error means
// no account matched; callers translate that into their own denial.
func (a *Authenticator) Verify(ctx context.Context, username, password string) (*interfaces.Actor, error) {
	if username == "" {
		return nil, nil
	}

	user, err := a.users.GetByCredentials(ctx, username, password)
	if err == nil {
		return user.Actor(), nil
	}
	if !IsNotFound(err) {
		return nil, err
	}

	if a.directory == nil {
		return nil, nil
	}
	return a.verifyAgainstDirectory(ctx, username, password)
}

// verifyAgainstDirectory checks the company directory and keeps the local
// account store in step with it: first-time users are provisioned at the
// lowest role, returning users get their stored password refreshed.
func (a *Authenticator) verifyAgainstDirectory(ctx context.Context, username, password string) (*interfaces.Actor, error) {
	lookupCtx, cancel := context.WithTimeout(ctx, a.directoryTimeout)
	defer cancel()

	directoryUser, err := a.directory.Verify(lookupCtx, username, password)
	if err != nil {
		// Directory trouble must never block the login path.
		a.logger.Warn("directory verification failed", "username", username, "error", err)
		return nil, nil
	}
	if directoryUser == nil {
		return nil, nil
	}

	existing, err := a.users.GetByUsername(ctx, username)
	if err == nil {
		if existing.Password != password {
			existing.Password = password
			if updated, err := a.users.Update(ctx, existing); err != nil {
				a.logger.Warn("directory password refresh failed", "username", username, "error", err)
			} else {
				existing = updated
			}
		}
		return existing.Actor(), nil
	}
	if !IsNotFound(err) {
		return nil, err
	}

	name := directoryUser.Name
	if name == "" {
		name = username
	}
	provisioned, err := a.users.Create(ctx, &User{
		Name:     name,
		Username: username,
		Password: password,
		Role:     interfaces.RoleVisitor,
		Status:   StatusActive,
	})
	if err != nil {
		a.logger.Error("directory user provisioning failed", "username", username, "error", err)
		return nil, err
	}
	a.logger.Info("provisioned directory user", "username", username)
	return provisioned.Actor(), nil
}
