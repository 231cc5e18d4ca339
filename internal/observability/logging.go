// Package observability provides logging and metrics.
package observability

import (
	"context"
	"log/slog"
	"os"

	"github.com/google/uuid"
)

// Logger wraps slog.Logger to provide specialized logging methods.
type Logger struct {
	*slog.Logger
}

// NewLogger returns a JSON logger writing to stdout. In development the
// level drops to debug.
func NewLogger(env string) *Logger {
	level := slog.LevelInfo
	if env == "development" || env == "" {
		level = slog.LevelDebug
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return &Logger{Logger: slog.New(handler)}
}

// LogContextKey is a type for context keys used by the logging package.
type LogContextKey string

// CorrelationID is the context key carrying the per-operation correlation id.
const CorrelationID LogContextKey = "correlation_id"

// GenerateCorrelationID creates a new unique correlation ID.
func GenerateCorrelationID() string {
	return uuid.NewString()
}

// WithCorrelationID returns a new context with the given correlation ID.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, CorrelationID, id)
}

// ExtractCorrelationID retrieves the correlation ID from the context.
func ExtractCorrelationID(ctx context.Context) string {
	if id, ok := ctx.Value(CorrelationID).(string); ok {
		return id
	}
	return ""
}

// LogOperation logs a store operation with its correlation ID.
func (l *Logger) LogOperation(ctx context.Context, store, op string, fields map[string]any) {
	attrs := []any{
		slog.String("store", store),
		slog.String("operation", op),
		slog.String("correlation_id", ExtractCorrelationID(ctx)),
	}
	for k, v := range fields {
		attrs = append(attrs, slog.Any(k, v))
	}
	l.InfoContext(ctx, "store operation", attrs...)
}

// LogOperationError logs a failed store operation.
func (l *Logger) LogOperationError(ctx context.Context, store, op string, err error) {
	l.ErrorContext(ctx, "store operation failed",
		slog.String("store", store),
		slog.String("operation", op),
		slog.String("correlation_id", ExtractCorrelationID(ctx)),
		slog.String("error", err.Error()),
	)
}
