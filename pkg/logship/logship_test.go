package logship

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetupForTesting(t *testing.T) {
	var buf bytes.Buffer

	SetupForTesting(t, &buf, slog.LevelDebug)

	slog.Debug("debug message", "path", "a.txt")
	slog.Info("info message", "bytes", 42)
	slog.Error("error message", "error", "boom")

	output := buf.String()
	assert.Contains(t, output, "debug message")
	assert.Contains(t, output, "info message")
	assert.Contains(t, output, "error message")
	assert.Contains(t, output, "path=a.txt")
	assert.Contains(t, output, "bytes=42")
	assert.Contains(t, output, "level=DEBUG")
}

func TestSetupForTesting_LogLevel(t *testing.T) {
	var buf bytes.Buffer

	SetupForTesting(t, &buf, slog.LevelWarn)

	slog.Debug("debug message")
	slog.Info("info message")
	slog.Warn("warn message")

	output := buf.String()
	assert.NotContains(t, output, "debug message")
	assert.NotContains(t, output, "info message")
	assert.Contains(t, output, "warn message")
}

func TestSetupForTesting_Cleanup(t *testing.T) {
	originalLogger := slog.Default()

	t.Run("with_custom_logger", func(t *testing.T) {
		var buf bytes.Buffer
		SetupForTesting(t, &buf, slog.LevelDebug)

		assert.NotEqual(t, originalLogger, slog.Default())
		slog.Info("test message")
		assert.Contains(t, buf.String(), "test message")
	})

	// restored after the subtest's cleanup ran
	assert.Equal(t, originalLogger, slog.Default())
}

func TestDisable(t *testing.T) {
	originalLogger := slog.Default()
	t.Cleanup(func() { slog.SetDefault(originalLogger) })

	var buf bytes.Buffer
	SetupForTesting(t, &buf, slog.LevelDebug)

	Disable()
	slog.Error("should be discarded")

	assert.Empty(t, buf.String())
}
