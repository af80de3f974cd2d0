package logging

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

// consoleHandler writes one human-readable line per record:
//
//	2026-10-19T08:00:00Z INFO catalog: catalog loaded [loader.go:40] rows=5
//
// The component attribute is lifted in front of the message. Attributes
// bound with WithAttrs are rendered once and reused for every record.
type consoleHandler struct {
	out       *consoleOutput
	level     slog.Leveler
	addSource bool

	component string
	prefix    string // group path for attrs added later, e.g. "req."
	bound     string // pre-rendered " k=v" pairs from WithAttrs
}

// consoleOutput is shared by a handler and all its derived handlers so
// concurrent records never interleave.
type consoleOutput struct {
	mu sync.Mutex
	w  io.Writer
}

func newConsoleHandler(w io.Writer, lvl *slog.LevelVar, addSource bool) slog.Handler {
	return &consoleHandler{out: &consoleOutput{w: w}, level: lvl, addSource: addSource}
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *consoleHandler) Handle(_ context.Context, record slog.Record) error {
	ts := record.Time
	if ts.IsZero() {
		ts = time.Now()
	}

	var b strings.Builder
	b.WriteString(formatTimestamp(ts))
	b.WriteByte(' ')
	b.WriteString(levelLabel(record.Level))
	b.WriteByte(' ')

	component := h.component
	var attrs strings.Builder
	record.Attrs(func(attr slog.Attr) bool {
		if attr.Key == FieldComponent && h.prefix == "" {
			component = attrString(attr.Value)
			return true
		}
		appendAttr(&attrs, h.prefix, attr)
		return true
	})

	if component != "" {
		b.WriteString(component)
		b.WriteString(": ")
	}
	msg := strings.TrimSpace(record.Message)
	if msg == "" {
		msg = "(no message)"
	}
	b.WriteString(msg)

	if h.addSource {
		if src := record.Source(); src != nil && src.File != "" {
			b.WriteString(" [" + filepath.Base(src.File) + ":" + strconv.Itoa(src.Line) + "]")
		}
	}
	b.WriteString(h.bound)
	b.WriteString(attrs.String())
	b.WriteByte('\n')

	h.out.mu.Lock()
	defer h.out.mu.Unlock()
	_, err := io.WriteString(h.out.w, b.String())
	return err
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	next := *h
	var bound strings.Builder
	bound.WriteString(h.bound)
	for _, attr := range attrs {
		if attr.Key == FieldComponent && h.prefix == "" {
			next.component = attrString(attr.Value)
			continue
		}
		appendAttr(&bound, h.prefix, attr)
	}
	next.bound = bound.String()
	return &next
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.prefix = h.prefix + name + "."
	return &next
}

// appendAttr writes " key=value" for attr, flattening groups into dotted keys.
func appendAttr(b *strings.Builder, prefix string, attr slog.Attr) {
	attr.Value = attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return
	}
	if attr.Value.Kind() == slog.KindGroup {
		inner := prefix
		if attr.Key != "" {
			inner = prefix + attr.Key + "."
		}
		for _, member := range attr.Value.Group() {
			appendAttr(b, inner, member)
		}
		return
	}
	key := prefix + attr.Key
	if attr.Key == "" {
		key = strings.TrimSuffix(prefix, ".")
	}
	if key == "" {
		return
	}
	b.WriteByte(' ')
	b.WriteString(key)
	b.WriteByte('=')
	b.WriteString(formatValue(attr.Value))
}

func levelLabel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "ERROR"
	case level >= slog.LevelWarn:
		return "WARN"
	case level >= slog.LevelInfo:
		return "INFO"
	}
	return "DEBUG"
}

func formatTimestamp(ts time.Time) string {
	return ts.UTC().Format(time.RFC3339)
}
