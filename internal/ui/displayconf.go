package ui

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// DisplayConfigContextKey is the key used to store DisplayConfig in context
type DisplayConfigContextKey struct{}

// GetDisplayConfigContextKey returns the key used to store DisplayConfig in context
func GetDisplayConfigContextKey() DisplayConfigContextKey {
	return DisplayConfigContextKey{}
}

// DisplayConfig contains display-related configuration
type DisplayConfig struct {
	DisableColor  bool
	IsInteractive bool
}

// SimpleOutput reports whether the live single-line progress rewrite should
// be suppressed in favor of plain output.
func (d DisplayConfig) SimpleOutput() bool {
	return !d.IsInteractive
}

// NewDisplayConfig extracts display options from persistent flags and TTY detection
func NewDisplayConfig(cmd *cobra.Command) (DisplayConfig, error) {
	noColor, _ := cmd.Flags().GetBool("no-color")

	// Only stdout matters here: that is where the progress line goes.
	// A piped stdout gets plain output regardless of flags.
	stdoutIsTTY := isatty.IsTerminal(os.Stdout.Fd())

	opts := DisplayConfig{
		DisableColor:  noColor,
		IsInteractive: stdoutIsTTY && !noColor,
	}

	slog.Debug("Display options determined",
		"command", cmd.Name(),
		"no-color-flag", noColor,
		"stdout-is-tty", stdoutIsTTY,
		"is-interactive", opts.IsInteractive,
	)

	return opts, nil
}

// GetDisplayConfigFromContext retrieves DisplayConfig from the command context
func GetDisplayConfigFromContext(cmd *cobra.Command) (DisplayConfig, error) {
	ctx := cmd.Context()
	if ctx == nil {
		return DisplayConfig{}, fmt.Errorf("command context is nil")
	}

	opts, ok := ctx.Value(GetDisplayConfigContextKey()).(DisplayConfig)
	if !ok {
		return DisplayConfig{}, fmt.Errorf("display options not found in context")
	}

	return opts, nil
}
