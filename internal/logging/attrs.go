package logging

import (
	"context"
	"log/slog"
	"time"
)

// Attr is re-exported so callers only import this package for logging.
type Attr = slog.Attr

func Duration(key string, value time.Duration) Attr { return slog.Duration(key, value) }

func Int(key string, value int) Attr { return slog.Int(key, value) }

func Int64(key string, value int64) Attr { return slog.Int64(key, value) }

func String(key string, value string) Attr { return slog.String(key, value) }

// Error attaches err under the "error" key.
func Error(err error) Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.Any("error", err)
}

func attrsToArgs(attrs []Attr) []any {
	args := make([]any, len(attrs))
	for i, attr := range attrs {
		args[i] = attr
	}
	return args
}

// NewNop returns a logger that discards everything.
func NewNop() *slog.Logger {
	return slog.New(NoopHandler{})
}

// NewComponentLogger tags logger with a component name. A nil logger
// yields a no-op logger.
func NewComponentLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	return logger.With(String(FieldComponent, component))
}

// FieldImpact describes what a warning means for the user.
const FieldImpact = "impact"

// warnDefaults fill in the fields every warning carries when the caller
// omits them.
var warnDefaults = []Attr{
	slog.String(FieldErrorHint, "check the log file for details"),
	slog.String(FieldImpact, "results may be incomplete"),
}

// WarnWithContext logs a warning tagged with eventType. Missing error_hint
// and impact fields are filled from warnDefaults.
func WarnWithContext(logger *slog.Logger, msg, eventType string, attrs ...Attr) {
	if logger == nil {
		return
	}
	present := make(map[string]bool, len(attrs))
	for _, attr := range attrs {
		present[attr.Key] = true
	}
	if !present[FieldEventType] {
		attrs = append(attrs, String(FieldEventType, eventType))
	}
	for _, def := range warnDefaults {
		if !present[def.Key] {
			attrs = append(attrs, def)
		}
	}
	logger.LogAttrs(context.Background(), slog.LevelWarn, msg, attrs...)
}

// NoopHandler discards all log output.
type NoopHandler struct{}

func (NoopHandler) Enabled(context.Context, slog.Level) bool { return false }

func (NoopHandler) Handle(context.Context, slog.Record) error { return nil }

func (NoopHandler) WithAttrs([]slog.Attr) slog.Handler { return NoopHandler{} }

func (NoopHandler) WithGroup(string) slog.Handler { return NoopHandler{} }
