package projects

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"github.com/goliatone/go-localize/internal/catalog"
	"github.com/goliatone/go-localize/internal/logging"
	"github.com/goliatone/go-localize/pkg/interfaces"
	"github.com/google/uuid"
)

// Service exposes project management use-cases. It doubles as the project
// resolver consulted by the catalog engines.
type Service interface {
	Create(ctx context.Context, req CreateProjectRequest) (*Project, error)
	Get(ctx context.Context, id uuid.UUID) (*Project, error)
	GetByName(ctx context.Context, name string) (*Project, error)
	List(ctx context.Context) ([]*Project, error)
	Update(ctx context.Context, req UpdateProjectRequest) (*Project, error)
	Delete(ctx context.Context, id uuid.UUID) (*Project, error)
	Survey(ctx context.Context, id uuid.UUID) (*Survey, error)

	// Languages implements catalog.ProjectResolver.
	Languages(ctx context.Context, projectID uuid.UUID) ([]catalog.Language, error)
}

var _ catalog.ProjectResolver = (Service)(nil)

// CreateProjectRequest captures a new project. Zero-valued settings receive
// defaults: the shared prefix, a port in the default range, and the standard
// language pair.
type CreateProjectRequest struct {
	Name      string
	Owner     string
	Prefix    string
	Port      int
	Versions  []string
	Modules   []string
	Languages []catalog.Language
	Specials  []string
}

// UpdateProjectRequest carries the changed fields of one project. Nil fields
// stay untouched.
type UpdateProjectRequest struct {
	ID        uuid.UUID
	Name      *string
	Owner     *string
	Prefix    *string
	Port      *int
	Versions  []string
	Modules   []string
	Languages []catalog.Language
	Specials  []string
}

type service struct {
	repo    ProjectRepository
	entries catalog.EntryRepository
	logger  interfaces.Logger
	port    func() int
}

// ServiceOption customises the project service.
type ServiceOption func(*service)

// WithLogger injects the service logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithPortAllocator overrides default port assignment, primarily for tests.
func WithPortAllocator(port func() int) ServiceOption {
	return func(s *service) {
		if port != nil {
			s.port = port
		}
	}
}

// NewService constructs the project service over the supplied repositories.
func NewService(repo ProjectRepository, entries catalog.EntryRepository, opts ...ServiceOption) Service {
	s := &service{
		repo:    repo,
		entries: entries,
		logger:  logging.NoOp(),
		port: func() int {
			return DefaultPortBase + rand.Intn(DefaultPortSpan)
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Create(ctx context.Context, req CreateProjectRequest) (*Project, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if _, err := s.repo.GetByName(ctx, name); err == nil {
		return nil, ErrNameExists
	} else if !IsNotFound(err) {
		return nil, err
	}

	languages := req.Languages
	if len(languages) == 0 {
		languages = DefaultLanguages()
	} else {
		if _, ok := catalog.DefaultLanguage(languages); !ok {
			return nil, ErrDefaultLanguageRequired
		}
		languages = normalizeLanguages(languages)
	}

	project := &Project{
		Name:      name,
		Owner:     req.Owner,
		Prefix:    req.Prefix,
		Port:      req.Port,
		Versions:  req.Versions,
		Modules:   req.Modules,
		Languages: languages,
		Specials:  req.Specials,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if project.Prefix == "" {
		project.Prefix = DefaultPrefix
	}
	if project.Port == 0 {
		project.Port = s.port()
	}

	created, err := s.repo.Create(ctx, project)
	if err != nil {
		return nil, err
	}
	s.logger.Info("project created", "name", created.Name, "port", created.Port)
	return created, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Project, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetByName(ctx context.Context, name string) (*Project, error) {
	return s.repo.GetByName(ctx, name)
}

func (s *service) List(ctx context.Context) ([]*Project, error) {
	return s.repo.List(ctx)
}

func (s *service) Update(ctx context.Context, req UpdateProjectRequest) (*Project, error) {
	project, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		project.Name = name
	}
	if req.Owner != nil {
		project.Owner = *req.Owner
	}
	if req.Prefix != nil {
		project.Prefix = *req.Prefix
	}
	if req.Port != nil {
		project.Port = *req.Port
	}
	if req.Versions != nil {
		project.Versions = req.Versions
	}
	if req.Modules != nil {
		project.Modules = req.Modules
	}
	if req.Languages != nil {
		if _, ok := catalog.DefaultLanguage(req.Languages); !ok {
			return nil, ErrDefaultLanguageRequired
		}
		project.Languages = normalizeLanguages(req.Languages)
	}
	if req.Specials != nil {
		project.Specials = req.Specials
	}
	project.UpdatedAt = time.Now()

	return s.repo.Update(ctx, project)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) (*Project, error) {
	project, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *service) Survey(ctx context.Context, id uuid.UUID) (*Survey, error) {
	project, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	entries, err := s.entries.FindByProject(ctx, id)
	if err != nil {
		return nil, err
	}

	return &Survey{
		Progress:  catalog.Measure(project.Languages, entries),
		Entries:   len(entries),
		Languages: len(project.Languages),
		Modules:   len(project.Modules),
		Specials:  len(project.Specials),
	}, nil
}

func (s *service) Languages(ctx context.Context, projectID uuid.UUID) ([]catalog.Language, error) {
	project, err := s.repo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return project.Languages, nil
}

// normalizeLanguages fills derived fields: a missing file name falls back to
// the language code.
func normalizeLanguages(languages []catalog.Language) []catalog.Language {
	out := make([]catalog.Language, len(languages))
	copy(out, languages)
	for i := range out {
		if out[i].FileName == "" {
			out[i].FileName = out[i].Code
		}
	}
	return out
}
