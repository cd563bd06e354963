package infrastructure

import (
	"context"

	"github.com/google/uuid"
)

// GenerateTraceID returns a new UUID v4 trace ID. The HTTP layer derives
// trace IDs from the X-Request-ID header; batch runs generate one here so
// their log lines correlate the same way.
func GenerateTraceID() string {
	return uuid.New().String()
}

// EnsureTraceID returns a context carrying a trace ID, generating one when
// missing. An existing trace ID is never replaced.
func EnsureTraceID(ctx context.Context) context.Context {
	if GetTraceID(ctx) != "" {
		return ctx
	}
	return WithTraceID(ctx, GenerateTraceID())
}
