package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/stashdata/stash/internal/ui"
	"github.com/stashdata/stash/internal/version"
	"github.com/stashdata/stash/pkg/config"
	"github.com/stashdata/stash/pkg/logship"
)

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "stash",
		Short: "Stash CLI",
		Long:  "Bulk file uploads to stash storage",
		// Errors are handled in main.go; individual commands set
		// SilenceUsage themselves so unknown commands still show usage.
		SilenceErrors: true,
		// Load config once and store in context for all subcommands
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			verbose, _ := cmd.Flags().GetBool("verbose")

			displayOpts, err := ui.NewDisplayConfig(cmd)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error getting display options: %v\n", err)
				os.Exit(1)
			}

			cfg, err := config.Load()
			if err != nil {
				// Nothing works without config
				fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
				os.Exit(1)
			}

			if verbose {
				logFile, err := logship.Setup(displayOpts.IsInteractive, cfg.GetLogLevel())
				if err != nil {
					fmt.Fprintf(os.Stderr, "Error setting up logger: %v\n", err)
					os.Exit(1)
				}
				if logFile != "" {
					fmt.Fprintf(os.Stderr, "Debug logs: %s\n", logFile)
				}
			} else {
				logship.Disable()
			}

			slog.Debug("Config loaded successfully")

			ctx := context.WithValue(cmd.Context(), config.GetContextKey(), cfg)
			ctx = context.WithValue(ctx, ui.GetDisplayConfigContextKey(), displayOpts)
			cmd.SetContext(ctx)

			// Version check (skip for the version and config commands)
			if cmd.Name() != "version" && cmd.Name() != "config" {
				version.PrintUpdateNotification(cmd.Context(), cfg.SkipVersionCheck)
			}
		},
	}

	// Global flags (inherited by all subcommands)
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output and live progress")

	rootCmd.AddCommand(NewPutCmd())
	rootCmd.AddCommand(NewVersionCmd())
	rootCmd.AddCommand(NewConfigCmd())

	return rootCmd
}
