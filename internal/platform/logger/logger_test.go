package logger_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/nasda/nasda/internal/config"
	"github.com/nasda/nasda/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name  string
		want  slog.Level
		valid bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{"Warn", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"verbose", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, ok := logger.ParseLevel(tt.name)
			assert.Equal(t, tt.want, level)
			assert.Equal(t, tt.valid, ok)
		})
	}
}

func TestSetupWithWriter(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	buf := &logger.TestLogBuffer{}
	l, err := logger.SetupWithWriter(config.LogConfig{Level: "warn"}, buf)
	require.NoError(t, err)
	require.NotNil(t, l)

	l.Info("dropped below level")
	l.Warn("decoration limit reached", "count", 3)

	entries, err := buf.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "decoration limit reached", entries[0]["msg"])
	assert.Equal(t, float64(3), entries[0]["count"])
	assert.Same(t, l, slog.Default(), "Setup installs the logger as the default")
}

func TestContextLogger(t *testing.T) {
	l, buf := logger.GetTestLogger(t)

	t.Run("absent logger falls back", func(t *testing.T) {
		fallback := slog.Default()
		assert.Same(t, fallback, logger.FromContextOrDefault(context.Background(), fallback))
		assert.Same(t, slog.Default(), logger.FromContext(context.Background()))
	})

	t.Run("stored logger is returned", func(t *testing.T) {
		ctx := logger.WithLogger(context.Background(), l)
		assert.Same(t, l, logger.FromContext(ctx))
	})

	t.Run("With adds attributes", func(t *testing.T) {
		ctx := logger.WithLogger(context.Background(), l)
		ctx = logger.With(ctx, "post_id", "p-1")

		logger.FromContext(ctx).Info("bulk delete")

		logger.AssertLogContains(t, buf, `"post_id":"p-1"`)
		logger.AssertLogLevel(t, buf, "bulk delete", "INFO")
	})
}
