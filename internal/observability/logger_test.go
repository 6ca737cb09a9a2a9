package observability

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLoggerLevelMapping(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name         string
		level        string
		debugEnabled bool
	}{
		{name: "debug level", level: "debug", debugEnabled: true},
		{name: "info level", level: "info", debugEnabled: false},
		{name: "empty level defaults to info", level: "", debugEnabled: false},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			logger, err := NewLogger(tc.level)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got := logger.Core().Enabled(zapcore.DebugLevel); got != tc.debugEnabled {
				t.Fatalf("debug enabled=%v, want=%v", got, tc.debugEnabled)
			}
		})
	}
}

func TestNewLoggerInvalidLevel(t *testing.T) {
	t.Parallel()

	if _, err := NewLogger("not-a-level"); err == nil {
		t.Fatal("expected error for invalid level")
	}
}

func TestCorrelationIDContextHelpers(t *testing.T) {
	t.Parallel()

	ctx := WithCorrelationID(context.Background(), "cid-123")
	correlationID, ok := CorrelationIDFromContext(ctx)
	if !ok || correlationID != "cid-123" {
		t.Fatalf("correlation id=%q ok=%v, want cid-123 true", correlationID, ok)
	}

	if _, ok := CorrelationIDFromContext(context.Background()); ok {
		t.Fatal("expected correlation id to be missing")
	}
}

func TestWithContextLogger(t *testing.T) {
	t.Parallel()

	core, recorded := observer.New(zapcore.InfoLevel)
	baseLogger := zap.New(core)

	ctx := WithCorrelationID(context.Background(), "cid-789")
	WithContextLogger(baseLogger, ctx).Info("message with correlation")
	WithContextLogger(baseLogger, context.Background()).Info("message without correlation")

	entries := recorded.All()
	if len(entries) != 2 {
		t.Fatalf("entries=%d, want=2", len(entries))
	}
	if got := entries[0].ContextMap()["correlationId"]; got != "cid-789" {
		t.Fatalf("correlationId=%v, want=%q", got, "cid-789")
	}
	if _, ok := entries[1].ContextMap()["correlationId"]; ok {
		t.Fatal("expected correlationId field to be absent")
	}

	if got := WithContextLogger(nil, ctx); got != nil {
		t.Fatal("expected nil logger")
	}
}
