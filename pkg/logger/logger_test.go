package logger

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"
)

func TestLoggerInit(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	logger := Get()
	if logger == nil {
		t.Fatal("logger is nil after initialization")
	}

	// Re-initializing must be safe.
	if err := Init(); err != nil {
		t.Fatalf("failed to re-initialize logger: %v", err)
	}
	if Get() == nil {
		t.Fatal("logger is nil after re-initialization")
	}
}

func TestLoggerBasic(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	ctx := context.Background()
	logger := Get()
	logger.Info(ctx, "test message", String("k", "v"))
	logger.Warn(ctx, "test warning", Int("count", 3), Float64("rate", 0.5))
	logger.Error(ctx, "test failure", Error(errors.New("boom")), Bool("fatal", false))
	logger.Debug(ctx, "test debug", Duration("elapsed", 5*time.Millisecond), Any("payload", map[string]int{"a": 1}))
}

func TestLoggerNamed(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	namedLogger := Named("test")
	if namedLogger == nil {
		t.Fatal("named logger is nil")
	}

	nested := namedLogger.Named("inner")
	if nested == nil {
		t.Fatal("nested named logger is nil")
	}

	nested.Info(context.Background(), "test message")
}

func TestLoggerSetLevel(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	SetLevel(slog.LevelDebug)
	SetLevel(slog.LevelInfo)

	if err := SetLevelString("warn"); err != nil {
		t.Fatalf("failed to set level from string: %v", err)
	}
	if err := SetLevelString("nonsense"); err == nil {
		t.Fatal("expected error for unknown level string")
	}

	// Restore the default for other tests.
	SetLevel(slog.LevelInfo)
}
