package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

// capture points the package logger at a buffer for the duration of a test
func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := defaultLogger
	defaultLogger = slog.New(slog.NewJSONHandler(&buf, nil))
	t.Cleanup(func() { defaultLogger = prev })
	return &buf
}

func TestInitialize(t *testing.T) {
	prev := defaultLogger
	t.Cleanup(func() { defaultLogger = prev })

	t.Run("Level threshold is applied", func(t *testing.T) {
		Initialize("error", "json")
		ctx := context.Background()
		assert.False(t, Get().Enabled(ctx, slog.LevelInfo))
		assert.True(t, Get().Enabled(ctx, slog.LevelError))
	})

	t.Run("Unknown level falls back to info", func(t *testing.T) {
		Initialize("verbose", "text")
		ctx := context.Background()
		assert.True(t, Get().Enabled(ctx, slog.LevelInfo))
		assert.False(t, Get().Enabled(ctx, slog.LevelDebug))
	})
}

func TestWithService(t *testing.T) {
	buf := capture(t)

	WithService("orders").Info("ping")

	assert.Contains(t, buf.String(), `"service":"orders"`)
	assert.Contains(t, buf.String(), `"msg":"ping"`)
}

func TestPersistenceFailure(t *testing.T) {
	buf := capture(t)

	PersistenceFailure("CreateOrder", "orders:guest", errors.New("disk full"))

	out := buf.String()
	assert.Contains(t, out, `"level":"WARN"`)
	assert.Contains(t, out, `"operation":"CreateOrder"`)
	assert.Contains(t, out, `"scope":"orders:guest"`)
	assert.Contains(t, out, "disk full")
}
