package logging

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// formatValue renders v for key=value console output. Text that contains
// spaces, '=' or quotes is quoted; scalars use slog's own formatting.
func formatValue(v slog.Value) string {
	v = v.Resolve()
	switch v.Kind() {
	case slog.KindTime:
		return formatTimestamp(v.Time())
	case slog.KindString, slog.KindAny:
		return quoteIfNeeded(attrString(v))
	default:
		return v.String()
	}
}

func quoteIfNeeded(s string) string {
	if s == "" || strings.ContainsFunc(s, needsQuote) {
		return strconv.Quote(s)
	}
	return s
}

func needsQuote(r rune) bool {
	return r <= ' ' || r == '=' || r == '"'
}

// attrString renders v bare, for values shown outside key=value pairs.
func attrString(v slog.Value) string {
	v = v.Resolve()
	switch v.Kind() {
	case slog.KindString:
		return v.String()
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			return err.Error()
		}
		return fmt.Sprint(v.Any())
	case slog.KindTime:
		return formatTimestamp(v.Time())
	default:
		return v.String()
	}
}
