package audit

import "context"

type contextKey string

const actorKey contextKey = "audit_actor"

// Actor identifies the member on whose behalf a record is saved
type Actor struct {
	ID    uint32
	Email string
}

// Valid reports whether the actor carries a persisted identity
func (a Actor) Valid() bool {
	return a.ID != 0
}

// WithActor returns a new context carrying the actor
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// ActorFromContext returns the actor stored by WithActor, if any
func ActorFromContext(ctx context.Context) (Actor, bool) {
	if ctx == nil {
		return Actor{}, false
	}
	actor, ok := ctx.Value(actorKey).(Actor)
	return actor, ok
}
