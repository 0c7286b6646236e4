package internal

import (
	"context"
	"time"
)

type ctxKey string

const (
	ContextSessionKey ctxKey = "sessionID"
	ContextActorKey   ctxKey = "actorEmail"
)

// SessionIDFromContext returns the HR session id attached by the auth middleware.
func SessionIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(ContextSessionKey).(string); ok {
		return id
	}
	return ""
}

// ActorFromContext returns the email of the HR user acting in this request.
func ActorFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if email, ok := ctx.Value(ContextActorKey).(string); ok {
		return email
	}
	return ""
}

func ContextWithSession(ctx context.Context, sessionID, actorEmail string) context.Context {
	ctx = context.WithValue(ctx, ContextSessionKey, sessionID)
	return context.WithValue(ctx, ContextActorKey, actorEmail)
}

// WithTimeout returns a context with timeout, defaulting to 5 seconds if duration is zero or negative.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = 5 * time.Second
	}
	return context.WithTimeout(ctx, duration)
}
