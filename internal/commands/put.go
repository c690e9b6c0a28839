package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stashdata/stash/internal/files"
	"github.com/stashdata/stash/internal/ui"
	"github.com/stashdata/stash/internal/upload"
	"github.com/stashdata/stash/pkg/config"
)

func NewPutCmd() *cobra.Command {
	var (
		excludes    []string
		concurrency int
		retries     int
		overwrite   bool
	)

	cmd := &cobra.Command{
		Use:   "put <path|glob>...",
		Short: "Upload files to stash storage",
		Long: `Upload files to the configured storage endpoint.

Directory arguments upload recursively; glob patterns expand.

Examples:
  stash put report.pdf                    # Upload one file
  stash put data/ --exclude '*.tmp'       # Upload a directory, skipping temp files
  stash put 'logs/**/*.gz' --retries 5    # Upload compressed logs with extra retries
  stash put big.iso --overwrite           # Replace the remote object if present`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPut(cmd, args, excludes, concurrency, retries, overwrite)
		},
	}

	cmd.Flags().StringArrayVarP(&excludes, "exclude", "e", nil, "Glob pattern of files to skip (repeatable)")
	cmd.Flags().IntVarP(&concurrency, "concurrency", "c", 0, "Maximum uploads in flight at once")
	cmd.Flags().IntVarP(&retries, "retries", "r", 0, "Attempts per file for retryable failures")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace remote objects that already exist")

	return cmd
}

func runPut(cmd *cobra.Command, args, excludes []string, concurrency, retries int, overwrite bool) error {
	// Suppress Cobra's default error handling
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	cfg, err := config.GetConfigFromContext(cmd)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	displayOpts, err := ui.GetDisplayConfigFromContext(cmd)
	if err != nil {
		return fmt.Errorf("failed to get display options: %w", err)
	}

	// Flags override config defaults for this invocation only
	if cmd.Flags().Changed("concurrency") {
		cfg.Concurrency = concurrency
	}
	if cmd.Flags().Changed("retries") {
		cfg.Retries = retries
	}
	cfg.Overwrite = overwrite

	if err := cfg.Validate(); err != nil {
		return ui.NewValidationError(err)
	}

	paths, err := files.Expand(args, excludes)
	if err != nil {
		return ui.NewValidationError(err)
	}
	if len(paths) == 0 {
		return ui.NewValidationError(fmt.Errorf("no files matched the given arguments"))
	}

	progress, err := upload.Run(cmd.Context(), paths, cfg, displayOpts)
	if err != nil {
		if errors.Is(err, upload.ErrUnauthorized) {
			// The scheduler already wrote the notice to stderr
			return ui.NewSilentError(err)
		}
		return err
	}

	if progress.Errors > 0 {
		return ui.NewValidationError(fmt.Errorf("%d of %d uploads failed", progress.Errors, progress.Total))
	}

	return nil
}
