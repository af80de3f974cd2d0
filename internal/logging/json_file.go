package logging

import (
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
)

// jsonTimeLayout keeps millisecond precision so records from one command
// sort correctly in the log file.
const jsonTimeLayout = "2006-01-02T15:04:05.000Z07:00"

func newJSONHandler(w io.Writer, lvl *slog.LevelVar, addSource bool) (slog.Handler, error) {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       lvl,
		AddSource:   addSource,
		ReplaceAttr: jsonReplaceAttr,
	}), nil
}

// jsonReplaceAttr shortens the built-in keys and flattens source locations
// to file:line. Attributes inside groups are left alone.
func jsonReplaceAttr(groups []string, attr slog.Attr) slog.Attr {
	if len(groups) > 0 {
		return attr
	}
	switch attr.Key {
	case slog.TimeKey:
		if attr.Value.Kind() != slog.KindTime {
			return attr
		}
		return slog.String("ts", attr.Value.Time().UTC().Format(jsonTimeLayout))
	case slog.LevelKey:
		return slog.String("level", strings.ToLower(attr.Value.String()))
	case slog.SourceKey:
		src, ok := attr.Value.Any().(*slog.Source)
		if !ok || src == nil {
			return attr
		}
		return slog.String("caller", filepath.Base(src.File)+":"+strconv.Itoa(src.Line))
	}
	return attr
}
