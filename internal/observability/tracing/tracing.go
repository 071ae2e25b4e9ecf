package tracing

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const TraceIDHeader = "X-Trace-Id"

type traceIDKey struct{}

// InjectTraceID attaches a fresh trace id to both the context and the
// zerolog logger carried by it.
func InjectTraceID(ctx context.Context) context.Context {
	return WithTraceID(ctx, uuid.New().String())
}

// WithTraceID is like InjectTraceID but reuses an id supplied by the caller,
// e.g. from an incoming request header. An empty id generates a new one.
func WithTraceID(ctx context.Context, id string) context.Context {
	if id == "" {
		id = uuid.New().String()
	}
	ctx = context.WithValue(ctx, traceIDKey{}, id)
	logger := loggerFrom(ctx).With().Str("traceId", id).Logger()
	return logger.WithContext(ctx)
}

func TraceID(ctx context.Context) string {
	id, _ := ctx.Value(traceIDKey{}).(string)
	return id
}

// WithOperation tags the context logger with the ledger operation name.
func WithOperation(ctx context.Context, operation string) context.Context {
	logger := loggerFrom(ctx).With().Str("operation", operation).Logger()
	return logger.WithContext(ctx)
}

func loggerFrom(ctx context.Context) *zerolog.Logger {
	l := zerolog.Ctx(ctx)
	if l.GetLevel() == zerolog.Disabled {
		return &log.Logger
	}
	return l
}
