package di

import (
	"context"
	"fmt"
	"time"

	"github.com/goliatone/go-localize/internal/audit"
	"github.com/goliatone/go-localize/internal/audit/usersink"
	"github.com/goliatone/go-localize/internal/catalog"
	"github.com/goliatone/go-localize/internal/guard"
	"github.com/goliatone/go-localize/internal/identity"
	"github.com/goliatone/go-localize/internal/logging"
	"github.com/goliatone/go-localize/internal/logging/console"
	"github.com/goliatone/go-localize/internal/logging/gologger"
	"github.com/goliatone/go-localize/internal/projects"
	"github.com/goliatone/go-localize/internal/runtimeconfig"
	"github.com/goliatone/go-localize/internal/special"
	"github.com/goliatone/go-localize/internal/storage"
	"github.com/goliatone/go-localize/pkg/interfaces"
	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"
)

// DefaultActivityChannel names the go-users activity channel audit records
// fan out to when a sink is configured.
const DefaultActivityChannel = "localize"

// Container wires module dependencies. Repositories default to the in-memory
// implementations; the bun storage provider swaps them for database-backed
// ones during finalisation.
type Container struct {
	Config runtimeconfig.Config

	bunDB    *bun.DB
	ownsDB   bool
	cacheTTL time.Duration

	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	loggerProvider interfaces.LoggerProvider
	directory      interfaces.DirectoryService
	activitySink   interfaces.ActivitySink
	clock          func() time.Time

	entryRepo   catalog.EntryRepository
	projectRepo projects.ProjectRepository
	userRepo    identity.UserRepository
	specialRepo special.EntryRepository
	auditStore  audit.Store

	catalogSvc catalog.Service
	projectSvc projects.Service
	specialSvc special.Service

	authenticator interfaces.Authenticator
	recorder      *audit.Recorder
	guard         *guard.Guard
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithBunDB supplies an already-open database instead of having the container
// open one from the storage configuration. The caller keeps ownership.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache enables the read-through cache wrapper on the project repository.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithLoggerProvider overrides the provider built from the logging config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithDirectory binds the external directory consulted when local credential
// verification misses.
func WithDirectory(directory interfaces.DirectoryService) Option {
	return func(c *Container) {
		c.directory = directory
	}
}

// WithActivitySink mirrors audit records into a go-users activity sink.
func WithActivitySink(sink interfaces.ActivitySink) Option {
	return func(c *Container) {
		c.activitySink = sink
	}
}

// WithClock overrides the time source for the catalog engines and the guard.
func WithClock(clock func() time.Time) Option {
	return func(c *Container) {
		c.clock = clock
	}
}

// WithEntryRepository overrides the default catalog entry repository binding.
func WithEntryRepository(repo catalog.EntryRepository) Option {
	return func(c *Container) {
		c.entryRepo = repo
	}
}

// WithProjectRepository overrides the default project repository binding.
func WithProjectRepository(repo projects.ProjectRepository) Option {
	return func(c *Container) {
		c.projectRepo = repo
	}
}

// WithUserRepository overrides the default user repository binding.
func WithUserRepository(repo identity.UserRepository) Option {
	return func(c *Container) {
		c.userRepo = repo
	}
}

// WithSpecialRepository overrides the default special entry repository binding.
func WithSpecialRepository(repo special.EntryRepository) Option {
	return func(c *Container) {
		c.specialRepo = repo
	}
}

// WithAuditStore overrides the default audit store binding.
func WithAuditStore(store audit.Store) Option {
	return func(c *Container) {
		c.auditStore = store
	}
}

// WithCatalogService overrides the default catalog service binding.
func WithCatalogService(svc catalog.Service) Option {
	return func(c *Container) {
		c.catalogSvc = svc
	}
}

// WithProjectService overrides the default project service binding.
func WithProjectService(svc projects.Service) Option {
	return func(c *Container) {
		c.projectSvc = svc
	}
}

// WithSpecialService overrides the default special-version service binding.
func WithSpecialService(svc special.Service) Option {
	return func(c *Container) {
		c.specialSvc = svc
	}
}

// NewContainer creates a container with the provided configuration.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cacheTTL := cfg.Cache.DefaultTTL
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}

	c := &Container{
		Config:   cfg,
		cacheTTL: cacheTTL,
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := c.configureLogging(); err != nil {
		return nil, err
	}
	if err := c.configureRepositories(); err != nil {
		return nil, err
	}
	c.configureServices()
	c.configureGuard()

	return c, nil
}

func (c *Container) configureLogging() error {
	if c.loggerProvider != nil || !c.Config.Features.Logger {
		return nil
	}

	switch c.Config.Logging.Provider {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     c.Config.Logging.Level,
			Format:    c.Config.Logging.Format,
			AddSource: c.Config.Logging.AddSource,
			Focus:     c.Config.Logging.Focus,
		})
		if err != nil {
			return err
		}
		c.loggerProvider = provider
	default:
		c.loggerProvider = console.NewProvider(console.Options{})
	}
	return nil
}

func (c *Container) configureRepositories() error {
	if c.Config.Storage.Provider == runtimeconfig.StorageProviderBun {
		if c.bunDB == nil {
			db, err := storage.Open(storage.Config{
				Driver: c.Config.Storage.Driver,
				DSN:    c.Config.Storage.DSN,
			})
			if err != nil {
				return fmt.Errorf("di: open storage: %w", err)
			}
			c.bunDB = db
			c.ownsDB = true
		}

		if c.entryRepo == nil {
			c.entryRepo = catalog.NewBunEntryRepository(c.bunDB)
		}
		if c.projectRepo == nil {
			if c.Config.Cache.Enabled && c.cacheService != nil && c.keySerializer != nil {
				c.projectRepo = projects.NewBunProjectRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
			} else {
				c.projectRepo = projects.NewBunProjectRepository(c.bunDB)
			}
		}
		if c.userRepo == nil {
			c.userRepo = identity.NewBunUserRepository(c.bunDB)
		}
		if c.specialRepo == nil {
			c.specialRepo = special.NewBunEntryRepository(c.bunDB)
		}
		if c.auditStore == nil {
			c.auditStore = audit.NewBunStore(c.bunDB)
		}
		return nil
	}

	if c.entryRepo == nil {
		c.entryRepo = catalog.NewMemoryEntryRepository()
	}
	if c.projectRepo == nil {
		c.projectRepo = projects.NewMemoryProjectRepository()
	}
	if c.userRepo == nil {
		c.userRepo = identity.NewMemoryUserRepository()
	}
	if c.specialRepo == nil {
		c.specialRepo = special.NewMemoryEntryRepository()
	}
	if c.auditStore == nil {
		c.auditStore = audit.NewMemoryStore()
	}
	return nil
}

func (c *Container) configureServices() {
	if c.projectSvc == nil {
		c.projectSvc = projects.NewService(
			c.projectRepo,
			c.entryRepo,
			projects.WithLogger(logging.ProjectsLogger(c.loggerProvider)),
		)
	}

	if c.catalogSvc == nil {
		catalogOpts := []catalog.ServiceOption{
			catalog.WithLogger(logging.CatalogLogger(c.loggerProvider)),
		}
		if c.clock != nil {
			catalogOpts = append(catalogOpts, catalog.WithClock(c.clock))
		}
		c.catalogSvc = catalog.NewService(c.entryRepo, c.projectSvc, catalogOpts...)
	}

	if c.specialSvc == nil {
		c.specialSvc = special.NewService(
			c.specialRepo,
			special.WithLogger(logging.SpecialLogger(c.loggerProvider)),
		)
	}

	if c.authenticator == nil {
		authOpts := []identity.AuthenticatorOption{
			identity.WithAuthenticatorLogger(logging.IdentityLogger(c.loggerProvider)),
		}
		if c.directory != nil {
			authOpts = append(authOpts, identity.WithDirectory(c.directory))
		}
		if c.Config.Directory.Timeout > 0 {
			authOpts = append(authOpts, identity.WithDirectoryTimeout(c.Config.Directory.Timeout))
		}
		c.authenticator = identity.NewAuthenticator(c.userRepo, authOpts...)
	}

	if c.recorder == nil {
		recorderOpts := []audit.RecorderOption{
			audit.WithRecorderLogger(logging.AuditLogger(c.loggerProvider)),
		}
		if c.Config.Audit.QueueSize > 0 {
			recorderOpts = append(recorderOpts, audit.WithQueueSize(c.Config.Audit.QueueSize))
		}
		if c.activitySink != nil {
			recorderOpts = append(recorderOpts, audit.WithSink(usersink.New(c.activitySink, DefaultActivityChannel)))
		}
		c.recorder = audit.NewRecorder(c.auditStore, recorderOpts...)
	}
}

func (c *Container) configureGuard() {
	guardOpts := []guard.GuardOption{
		guard.WithGuardLogger(logging.GuardLogger(c.loggerProvider)),
	}
	if c.clock != nil {
		guardOpts = append(guardOpts, guard.WithGuardClock(c.clock))
	}
	c.guard = guard.New(c.authenticator, c.recorder, guardOpts...)
}

// CatalogService exposes the configured catalog service.
func (c *Container) CatalogService() catalog.Service {
	return c.catalogSvc
}

// ProjectService exposes the configured project service.
func (c *Container) ProjectService() projects.Service {
	return c.projectSvc
}

// SpecialService exposes the configured special-version service.
func (c *Container) SpecialService() special.Service {
	return c.specialSvc
}

// Authenticator exposes the credential verifier used by the guard.
func (c *Container) Authenticator() interfaces.Authenticator {
	return c.authenticator
}

// Recorder exposes the asynchronous audit recorder.
func (c *Container) Recorder() *audit.Recorder {
	return c.recorder
}

// AuditStore exposes the persistence behind the audit recorder.
func (c *Container) AuditStore() audit.Store {
	return c.auditStore
}

// Guard exposes the authorization wrapper.
func (c *Container) Guard() *guard.Guard {
	return c.guard
}

// EntryRepository exposes the catalog entry repository binding.
func (c *Container) EntryRepository() catalog.EntryRepository {
	return c.entryRepo
}

// ProjectRepository exposes the project repository binding.
func (c *Container) ProjectRepository() projects.ProjectRepository {
	return c.projectRepo
}

// UserRepository exposes the user repository binding.
func (c *Container) UserRepository() identity.UserRepository {
	return c.userRepo
}

// SpecialRepository exposes the special entry repository binding.
func (c *Container) SpecialRepository() special.EntryRepository {
	return c.specialRepo
}

// BunDB returns the database handle when the bun provider is active.
func (c *Container) BunDB() *bun.DB {
	return c.bunDB
}

// LoggerProvider returns the provider backing module loggers. It is nil when
// the logging feature is disabled and no override was supplied.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// Migrate creates the backing tables for every database-bound repository.
// It is a no-op under the memory provider.
func (c *Container) Migrate(ctx context.Context) error {
	if c.bunDB == nil {
		return nil
	}
	if repo, ok := c.entryRepo.(*catalog.BunEntryRepository); ok {
		if err := repo.CreateTable(ctx); err != nil {
			return err
		}
	}
	if _, ok := c.projectRepo.(*projects.BunProjectRepository); ok {
		if _, err := c.bunDB.NewCreateTable().Model((*projects.Project)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}
	}
	if repo, ok := c.userRepo.(*identity.BunUserRepository); ok {
		if err := repo.CreateTable(ctx); err != nil {
			return err
		}
	}
	if repo, ok := c.specialRepo.(*special.BunEntryRepository); ok {
		if err := repo.CreateTable(ctx); err != nil {
			return err
		}
	}
	if store, ok := c.auditStore.(*audit.BunStore); ok {
		if err := store.CreateTable(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Close drains the audit recorder and releases the database handle when the
// container opened it.
func (c *Container) Close() error {
	if c.recorder != nil {
		c.recorder.Close()
	}
	if c.ownsDB && c.bunDB != nil {
		return c.bunDB.Close()
	}
	return nil
}
