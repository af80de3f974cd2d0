package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"marquee/internal/config"
	"marquee/internal/logging"
	"marquee/internal/services"
)

func TestNewFromConfigWritesJSONFile(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = t.TempDir()

	logger, err := logging.NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Info("catalog loaded", logging.Int("rows", 3))

	content, err := os.ReadFile(filepath.Join(cfg.Paths.LogDir, logging.LogFileName))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(content), &entry); err != nil {
		t.Fatalf("expected a JSON line, got %q: %v", content, err)
	}
	if entry["msg"] != "catalog loaded" || entry["level"] != "info" {
		t.Fatalf("unexpected entry: %v", entry)
	}
	if entry["rows"] != float64(3) {
		t.Fatalf("expected rows attr, got %v", entry["rows"])
	}
}

func TestConsoleLoggerCaller(t *testing.T) {
	tests := []struct {
		level      string
		wantCaller bool
	}{
		{level: "info", wantCaller: false},
		{level: "debug", wantCaller: true},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger, err := logging.New(logging.Options{Format: "console", Level: tt.level, Writer: &buf})
			if err != nil {
				t.Fatalf("New returned error: %v", err)
			}
			logging.NewComponentLogger(logger, "catalog").Info("snapshot ready", logging.String("path", "titles.csv"))

			line := buf.String()
			if got := strings.Contains(line, ".go:"); got != tt.wantCaller {
				t.Fatalf("caller present = %v, want %v in %q", got, tt.wantCaller, line)
			}
			if !strings.Contains(line, "INFO catalog: snapshot ready") {
				t.Fatalf("missing level, component or message in %q", line)
			}
			if !strings.HasSuffix(strings.TrimSpace(line), " path=titles.csv") {
				t.Fatalf("expected attrs at the end of %q", line)
			}
		})
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewLevels(t *testing.T) {
	tests := map[string][]string{
		"invalid": {"info", "warn"},
		"WARNING": {"warn"},
		"error":   {},
		"Debug":   {"debug", "info", "warn"},
	}
	for level, want := range tests {
		var buf bytes.Buffer
		logger, err := logging.New(logging.Options{Format: "json", Level: level, Writer: &buf})
		if err != nil {
			t.Fatalf("New(%q) returned error: %v", level, err)
		}
		logger.Debug("debug")
		logger.Info("info")
		logger.Warn("warn")

		var got []string
		for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
			if line == "" {
				continue
			}
			var entry map[string]any
			if err := json.Unmarshal([]byte(line), &entry); err != nil {
				t.Fatalf("decode %q: %v", line, err)
			}
			got = append(got, entry["msg"].(string))
		}
		if strings.Join(got, ",") != strings.Join(want, ",") {
			t.Errorf("level %q logged %v, want %v", level, got, want)
		}
	}
}

func TestWithContextAddsFields(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithSessionID(ctx, "sess-1")
	ctx = services.WithCommand(ctx, "recommend")
	ctx = services.WithRequestID(ctx, "req-xyz")

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	logging.WithContext(ctx, logger).Info("contextual log")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log entry: %v", err)
	}
	want := map[string]string{
		logging.FieldSessionID:     "sess-1",
		logging.FieldCommand:       "recommend",
		logging.FieldCorrelationID: "req-xyz",
	}
	for key, value := range want {
		if entry[key] != value {
			t.Fatalf("field %s = %v, want %q", key, entry[key], value)
		}
	}
}

func TestWarnWithContextInjectsDefaults(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	logging.WarnWithContext(logger, "book search failed", "book_search_failed",
		logging.String(logging.FieldErrorHint, "check naver credentials"))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log entry: %v", err)
	}
	if entry[logging.FieldEventType] != "book_search_failed" {
		t.Fatalf("unexpected event type %v", entry[logging.FieldEventType])
	}
	if entry[logging.FieldErrorHint] != "check naver credentials" {
		t.Fatalf("caller hint should win, got %v", entry[logging.FieldErrorHint])
	}
	if entry[logging.FieldImpact] == nil {
		t.Fatal("expected impact default")
	}
}

func TestWithSessionIDStampsRecords(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.WithSessionID(slog.New(slog.NewJSONHandler(&buf, nil)), "sess-9")
	logger.Info("hello")
	if !strings.Contains(buf.String(), `"session_id":"sess-9"`) {
		t.Fatalf("expected session id, got %s", buf.String())
	}
}
