package logging

import (
	"context"

	"github.com/rs/zerolog"
)

type ctxKey struct{}

// WithLogger stores a logger in the context.
func WithLogger(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// Ctx returns the request logger, falling back to the global one.
func Ctx(ctx context.Context) zerolog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(zerolog.Logger); ok {
		return l
	}
	return L()
}

// Audit records a state-changing action on behalf of a user.
func Audit(ctx context.Context, action, userID, msg string) {
	l := Ctx(ctx)
	l.Info().
		Str(FieldAction, action).
		Str(FieldUserID, userID).
		Msg(msg)
}
