package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"marquee/internal/config"
)

// LogFileName is the file written under the configured log directory.
const LogFileName = "marquee.log"

// Options describes logger construction parameters. A nil Writer means
// stderr, which keeps tables and JSON on stdout clean.
type Options struct {
	Level     string
	Format    string
	Writer    io.Writer
	AddSource bool
}

// New builds a single-handler logger. Caller locations are included when
// AddSource is set or the level is debug.
func New(opts Options) (*slog.Logger, error) {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	lvl := new(slog.LevelVar)
	lvl.Set(parseLevel(opts.Level))

	handler, err := newHandler(opts.Format, w, lvl, opts.AddSource || lvl.Level() <= slog.LevelDebug)
	if err != nil {
		return nil, err
	}
	return slog.New(handler), nil
}

// NewFromConfig logs in the configured format to stderr and, when a log
// directory is set, appends JSON lines to LogFileName inside it.
func NewFromConfig(cfg *config.Config) (*slog.Logger, error) {
	if cfg == nil {
		return New(Options{Level: "info", Format: "console"})
	}

	lvl := new(slog.LevelVar)
	lvl.Set(parseLevel(cfg.Logging.Level))
	debug := lvl.Level() <= slog.LevelDebug

	console, err := newHandler(cfg.Logging.Format, os.Stderr, lvl, debug)
	if err != nil {
		return nil, err
	}
	dir := strings.TrimSpace(cfg.Paths.LogDir)
	if dir == "" {
		return slog.New(console), nil
	}

	file, err := openLogFile(filepath.Join(dir, LogFileName))
	if err != nil {
		return nil, err
	}
	jsonFile, err := newJSONHandler(file, lvl, debug)
	if err != nil {
		return nil, err
	}
	return slog.New(newTeeHandler(console, jsonFile)), nil
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}

func newHandler(format string, w io.Writer, lvl *slog.LevelVar, addSource bool) (slog.Handler, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "console":
		return newConsoleHandler(w, lvl, addSource), nil
	case "json":
		return newJSONHandler(w, lvl, addSource)
	default:
		return nil, fmt.Errorf("unknown log format %q (want console or json)", format)
	}
}

func parseLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		if strings.EqualFold(strings.TrimSpace(level), "warning") {
			return slog.LevelWarn
		}
		return slog.LevelInfo
	}
	return l
}
