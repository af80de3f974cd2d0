package logging

import "log/slog"

// FieldSessionID is the structured logging key for browsing session identifiers.
const FieldSessionID = "session_id"

// WithSessionID returns a logger whose records carry sessionID. An empty
// ID or nil logger is returned unchanged.
func WithSessionID(logger *slog.Logger, sessionID string) *slog.Logger {
	if logger == nil || sessionID == "" {
		return logger
	}
	return logger.With(slog.String(FieldSessionID, sessionID))
}
