package logship

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mattn/go-isatty"
)

// Setup configures the global slog logger.
//
// When the live progress line is being rendered and stderr still points at a
// terminal, log output would tear the display, so logs go to a timestamped
// file in the temp dir instead. Any shell redirection of stderr (2>) is
// honored and keeps logs on stderr.
//
// Returns the log file path, or "" when logging to stderr.
func Setup(isInteractive bool, level slog.Level) (string, error) {
	var output io.Writer
	var logFilePath string

	if isInteractive && isatty.IsTerminal(os.Stderr.Fd()) {
		timestamp := time.Now().Format("2006-01-02T15-04-05")
		logFilePath = filepath.Join(os.TempDir(), fmt.Sprintf("stash-debug-%s.log", timestamp))

		logFile, err := os.OpenFile(logFilePath, //nolint:gosec // Log file in temp directory
			os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600)
		if err != nil {
			return "", err
		}
		output = logFile
	} else {
		output = os.Stderr
		logFilePath = ""
	}

	handler := slog.NewTextHandler(output, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))

	return logFilePath, nil
}

// Disable routes all slog output to the void. Used when --verbose is not set.
func Disable() {
	handler := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.LevelError + 1, // above every level, nothing passes
	})
	slog.SetDefault(slog.New(handler))
}

// SetupForTesting points the global logger at w for the duration of the test.
// The previous logger is restored via t.Cleanup.
func SetupForTesting(t *testing.T, w io.Writer, level slog.Level) {
	original := slog.Default()

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))

	t.Cleanup(func() {
		slog.SetDefault(original)
	})
}
