package tracing

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type traceIDKey struct{}

// InjectTraceID attaches a fresh trace id to ctx and to the zerolog logger
// returned by log.Ctx(ctx). An existing id is reused.
func InjectTraceID(ctx context.Context) context.Context {
	return InjectTraceIDWithValue(ctx, "")
}

// InjectTraceIDWithValue uses id when it is a valid uuid (e.g. forwarded by a
// caller in a request header) and generates one otherwise.
func InjectTraceIDWithValue(ctx context.Context, id string) context.Context {
	if existing := TraceID(ctx); existing != "" {
		return ctx
	}

	if _, err := uuid.Parse(id); err != nil {
		id = uuid.New().String()
	}

	logger := log.With().Str("traceId", id).Logger()
	ctx = context.WithValue(ctx, traceIDKey{}, id)
	return logger.WithContext(ctx)
}

func TraceID(ctx context.Context) string {
	id, _ := ctx.Value(traceIDKey{}).(string)
	return id
}
