package tracing

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

func InjectTraceID(ctx context.Context) context.Context {
	id := uuid.New().String()
	logger := log.With().Str("traceId", id).Logger()
	return logger.WithContext(ctx)
}

// WithOperation tags the context logger with the protocol operation name,
// so every log line of one mutating call shares traceId and operation.
func WithOperation(ctx context.Context, operation string) context.Context {
	logger := log.Ctx(ctx).With().Str("operation", operation).Logger()
	return logger.WithContext(ctx)
}
