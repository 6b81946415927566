package guard

import (
	"context"
	"time"

	"github.com/goliatone/go-localize/internal/audit"
	"github.com/goliatone/go-localize/internal/logging"
	"github.com/goliatone/go-localize/pkg/interfaces"
	"github.com/google/uuid"
)

// Scheduler queues audit records without blocking the caller.
type Scheduler interface {
	Schedule(record *audit.Record) bool
}

// Guard wraps catalog operations with role-based authorization and exactly
// one scheduled audit record per invocation, rejections included.
type Guard struct {
	auth     interfaces.Authenticator
	recorder Scheduler
	logger   interfaces.Logger
	now      func() time.Time
}

// GuardOption customises a Guard.
type GuardOption func(*Guard)

// WithGuardLogger injects the guard logger.
func WithGuardLogger(logger interfaces.Logger) GuardOption {
	return func(g *Guard) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithGuardClock overrides the time source, primarily for tests.
func WithGuardClock(clock func() time.Time) GuardOption {
	return func(g *Guard) {
		if clock != nil {
			g.now = clock
		}
	}
}

// New constructs a guard over the supplied authenticator and audit scheduler.
func New(auth interfaces.Authenticator, recorder Scheduler, opts ...GuardOption) *Guard {
	g := &Guard{
		auth:     auth,
		recorder: recorder,
		logger:   logging.NoOp(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Action is a guarded unit of work. Its result feeds the audit detail via the
// trail collected with AddDetail.
type Action func(ctx context.Context) (any, error)

// WrapOption annotates one guarded invocation.
type WrapOption func(*invocation)

type invocation struct {
	projectID uuid.UUID
	detail    map[string]any
}

// WithProject stamps the audit record with the project the operation touched.
func WithProject(projectID uuid.UUID) WrapOption {
	return func(inv *invocation) {
		inv.projectID = projectID
	}
}

// WithDetail seeds the audit detail with static fields known before the
// action runs.
func WithDetail(key string, value any) WrapOption {
	return func(inv *invocation) {
		if inv.detail == nil {
			inv.detail = make(map[string]any)
		}
		inv.detail[key] = value
	}
}

// Wrap executes action under the role threshold and schedules the audit
// record for the attempt. The action's error is returned unchanged; audit
// persistence never adds latency or failure modes to the operation itself.
func (g *Guard) Wrap(ctx context.Context, op audit.Operation, required interfaces.Role, action Action, opts ...WrapOption) (any, error) {
	inv := &invocation{}
	for _, opt := range opts {
		opt(inv)
	}

	record := &audit.Record{
		Operation: op,
		IP:        ClientIPFrom(ctx),
		ProjectID: inv.projectID,
		Result:    audit.ResultSuccess,
		CreatedAt: g.now(),
	}
	if len(inv.detail) > 0 {
		record.Detail = make(map[string]any, len(inv.detail))
		for k, v := range inv.detail {
			record.Detail[k] = v
		}
	}

	actor, err := g.resolveActor(ctx)
	if err != nil {
		record.Result = audit.ResultFail
		record.Reason = err.Error()
		g.schedule(record)
		return nil, err
	}
	record.Username = actor.Username

	if !actor.Role.Allows(required) {
		denial := &ForbiddenError{Current: actor.Role, Required: required}
		record.Result = audit.ResultFail
		record.Reason = denial.Error()
		g.schedule(record)
		return nil, denial
	}

	actionCtx, trail := withDetailTrail(WithActor(ctx, actor))
	result, err := action(actionCtx)

	if len(trail.fields) > 0 {
		if record.Detail == nil {
			record.Detail = make(map[string]any, len(trail.fields))
		}
		for k, v := range trail.fields {
			record.Detail[k] = v
		}
	}
	if err != nil {
		record.Result = audit.ResultFail
		record.Reason = err.Error()
	}
	g.schedule(record)

	return result, err
}

// resolveActor takes the session actor when present, otherwise verifies the
// context credentials. No actor and no matching credentials is an
// authorization failure.
func (g *Guard) resolveActor(ctx context.Context) (*interfaces.Actor, error) {
	if actor, ok := ActorFrom(ctx); ok {
		return actor, nil
	}
	creds, ok := CredentialsFrom(ctx)
	if !ok || g.auth == nil {
		return nil, ErrUnauthorized
	}
	actor, err := g.auth.Verify(ctx, creds.Username, creds.Password)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, ErrUnauthorized
	}
	return actor, nil
}

func (g *Guard) schedule(record *audit.Record) {
	if g.recorder == nil {
		return
	}
	if !g.recorder.Schedule(record) {
		g.logger.Warn("audit record dropped", "operation", record.Operation)
	}
}
