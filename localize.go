// Package localize reconciles, merges, and synchronizes translation catalogs
// across the languages of a project, guarded by role-based authorization with
// asynchronous audit logging.
package localize

import (
	"context"

	"github.com/goliatone/go-localize/internal/audit"
	"github.com/goliatone/go-localize/internal/catalog"
	"github.com/goliatone/go-localize/internal/di"
	"github.com/goliatone/go-localize/internal/guard"
	"github.com/goliatone/go-localize/internal/identity"
	"github.com/goliatone/go-localize/internal/projects"
	"github.com/goliatone/go-localize/internal/special"
	"github.com/goliatone/go-localize/pkg/interfaces"
)

// CatalogService exports the catalog service contract for consumers of the
// localize package.
type CatalogService = catalog.Service

// ProjectService exports the project service contract.
type ProjectService = projects.Service

// SpecialService exports the special-version service contract.
type SpecialService = special.Service

// Guard exports the authorization wrapper applied around catalog operations.
type Guard = guard.Guard

// Recorder exports the asynchronous audit recorder.
type Recorder = audit.Recorder

// AuditStore exports the audit persistence contract.
type AuditStore = audit.Store

// UserRepository exports the account store consulted during sign-in.
type UserRepository = identity.UserRepository

// Authenticator exports the credential verification contract.
type Authenticator = interfaces.Authenticator

// Actor exports the authenticated identity attached to guarded contexts.
type Actor = interfaces.Actor

// Role exports the privilege ladder used for authorization thresholds.
type Role = interfaces.Role

// Role thresholds re-exported for guard callers.
const (
	RoleVisitor   = interfaces.RoleVisitor
	RoleReporter  = interfaces.RoleReporter
	RoleDeveloper = interfaces.RoleDeveloper
	RoleAdmin     = interfaces.RoleAdmin
	RoleRoot      = interfaces.RoleRoot
)

// Module represents the top level localize runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a localize module using the provided configuration and
// optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Catalog returns the configured catalog service.
func (m *Module) Catalog() CatalogService {
	return m.container.CatalogService()
}

// Projects returns the configured project service.
func (m *Module) Projects() ProjectService {
	return m.container.ProjectService()
}

// Specials returns the configured special-version service.
func (m *Module) Specials() SpecialService {
	return m.container.SpecialService()
}

// Guard returns the authorization wrapper for catalog operations.
func (m *Module) Guard() *Guard {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Guard()
}

// Audit returns the asynchronous audit recorder.
func (m *Module) Audit() *Recorder {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Recorder()
}

// AuditLog returns the store behind the audit recorder for queries and
// retention jobs.
func (m *Module) AuditLog() AuditStore {
	return m.container.AuditStore()
}

// Users returns the account repository.
func (m *Module) Users() UserRepository {
	return m.container.UserRepository()
}

// Authenticator returns the credential verifier used by the guard.
func (m *Module) Authenticator() Authenticator {
	return m.container.Authenticator()
}

// Migrate creates database tables when the bun storage provider is active.
func (m *Module) Migrate(ctx context.Context) error {
	return m.container.Migrate(ctx)
}

// Close drains pending audit records and releases module resources.
func (m *Module) Close() error {
	return m.container.Close()
}
