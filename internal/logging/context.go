package logging

import (
	"context"
	"log/slog"

	"marquee/internal/services"
)

// Structured keys shared by every handler.
const (
	FieldComponent     = "component"
	FieldCommand       = "command"
	FieldCorrelationID = "correlation_id"
	// FieldEventType classifies warnings and errors for filtering.
	FieldEventType = "event_type"
	// FieldErrorHint carries the suggested next step for a warning or error.
	FieldErrorHint = "error_hint"
)

var contextKeys = []struct {
	field  string
	lookup func(context.Context) (string, bool)
}{
	{FieldSessionID, services.SessionIDFromContext},
	{FieldCommand, services.CommandFromContext},
	{FieldCorrelationID, services.RequestIDFromContext},
}

// ContextFields returns the session, command and correlation attributes
// stored on ctx, in that order, skipping any that are unset.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	var out []slog.Attr
	for _, k := range contextKeys {
		if v, ok := k.lookup(ctx); ok {
			out = append(out, slog.String(k.field, v))
		}
	}
	return out
}

// WithContext binds the ContextFields of ctx to logger. A nil logger
// becomes a no-op logger.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	attrs := ContextFields(ctx)
	if len(attrs) == 0 {
		return logger
	}
	return logger.With(attrsToArgs(attrs)...)
}
