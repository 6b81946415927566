package guard

import (
	"context"

	"github.com/goliatone/go-localize/pkg/interfaces"
)

type contextKey string

const (
	actorKey       contextKey = "localize.guard.actor"
	credentialsKey contextKey = "localize.guard.credentials"
	clientIPKey    contextKey = "localize.guard.client_ip"
	detailKey      contextKey = "localize.guard.detail"
)

// Credentials carries a username/password pair for callers without an
// established session.
type Credentials struct {
	Username string
	Password string
}

// WithActor attaches an authenticated actor to the context.
func WithActor(ctx context.Context, actor *interfaces.Actor) context.Context {
	if actor == nil {
		return ctx
	}
	return context.WithValue(ctx, actorKey, actor)
}

// ActorFrom extracts the authenticated actor, if any.
func ActorFrom(ctx context.Context) (*interfaces.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(*interfaces.Actor)
	return actor, ok && actor != nil
}

// WithCredentials attaches fallback credentials to the context.
func WithCredentials(ctx context.Context, creds Credentials) context.Context {
	return context.WithValue(ctx, credentialsKey, creds)
}

// CredentialsFrom extracts fallback credentials, if any.
func CredentialsFrom(ctx context.Context) (Credentials, bool) {
	creds, ok := ctx.Value(credentialsKey).(Credentials)
	return creds, ok
}

// WithClientIP attaches the caller's address for audit records.
func WithClientIP(ctx context.Context, ip string) context.Context {
	if ip == "" {
		return ctx
	}
	return context.WithValue(ctx, clientIPKey, ip)
}

// ClientIPFrom extracts the caller's address, if any.
func ClientIPFrom(ctx context.Context) string {
	ip, _ := ctx.Value(clientIPKey).(string)
	return ip
}

// detailTrail accumulates audit detail during a guarded action. The map is
// shared through the context on purpose; guarded actions run on a single
// goroutine.
type detailTrail struct {
	fields map[string]any
}

func withDetailTrail(ctx context.Context) (context.Context, *detailTrail) {
	trail := &detailTrail{fields: make(map[string]any)}
	return context.WithValue(ctx, detailKey, trail), trail
}

// AddDetail records a key/value pair into the audit detail of the enclosing
// guarded action. Outside a guarded action it is a no-op.
func AddDetail(ctx context.Context, key string, value any) {
	trail, ok := ctx.Value(detailKey).(*detailTrail)
	if !ok || trail == nil {
		return
	}
	trail.fields[key] = value
}
