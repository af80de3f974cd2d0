package services_test

import (
	"context"
	"testing"

	"marquee/internal/services"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithSessionID(ctx, "sess-1")
	ctx = services.WithCommand(ctx, "recommend")
	ctx = services.WithRequestID(ctx, "req-123")

	if id, ok := services.SessionIDFromContext(ctx); !ok || id != "sess-1" {
		t.Fatalf("unexpected session id: %v %v", id, ok)
	}
	if cmd, ok := services.CommandFromContext(ctx); !ok || cmd != "recommend" {
		t.Fatalf("unexpected command: %v %v", cmd, ok)
	}
	if rid, ok := services.RequestIDFromContext(ctx); !ok || rid != "req-123" {
		t.Fatalf("unexpected request id: %v %v", rid, ok)
	}
}

func TestBlankValuesPreserveContext(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithCommand(ctx, "")
	ctx = services.WithSessionID(ctx, "")
	if _, ok := services.CommandFromContext(ctx); ok {
		t.Fatal("expected no command value")
	}
	if _, ok := services.SessionIDFromContext(ctx); ok {
		t.Fatal("expected no session value")
	}
}
