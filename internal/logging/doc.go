// Package logging assembles structured slog loggers and formatting helpers
// used across marquee.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so commands can tag log lines
// with the browsing session, command name, and correlation ID. Console
// output goes to stderr; NewFromConfig also appends JSON lines to a log
// file. A no-op logger is provided for tests and wiring code that cannot
// fail.
package logging
