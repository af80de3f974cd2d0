package services

import "context"

type contextKey string

const (
	sessionIDKey contextKey = "session_id"
	commandKey   contextKey = "command"
	requestIDKey contextKey = "request_id"
)

// WithSessionID annotates context with the browsing session identifier.
func WithSessionID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, sessionIDKey, id)
}

// SessionIDFromContext extracts the session identifier if present.
func SessionIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(sessionIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithCommand annotates context with the CLI command name.
func WithCommand(ctx context.Context, command string) context.Context {
	if command == "" {
		return ctx
	}
	return context.WithValue(ctx, commandKey, command)
}

// CommandFromContext returns the command name if present.
func CommandFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(commandKey)
	if str, ok := v.(string); ok && str != "" {
		return str, true
	}
	return "", false
}

// WithRequestID annotates context with a correlation identifier.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext extracts the correlation identifier if present.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(requestIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
