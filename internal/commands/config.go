package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stashdata/stash/internal/ui"
	"github.com/stashdata/stash/pkg/config"
)

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Read and write stash configuration",
	}

	cmd.AddCommand(newConfigGetCmd())
	cmd.AddCommand(newConfigSetCmd())

	return cmd
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			key := strings.ToLower(args[0])
			if !config.IsValidUserFacingKey(key) {
				return ui.NewValidationError(fmt.Errorf("unknown config key %q", args[0]))
			}

			cfg, err := config.GetConfigFromContext(cmd)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			fmt.Println(configValue(cfg, key))
			return nil
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			key := strings.ToLower(args[0])
			if !config.IsValidUserFacingKey(key) {
				return ui.NewValidationError(fmt.Errorf("unknown config key %q", args[0]))
			}

			cfg, err := config.GetConfigFromContext(cmd)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			if err := setConfigValue(cfg, key, args[1]); err != nil {
				return ui.NewValidationError(err)
			}

			if err := config.Save(cfg); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			fmt.Println(ui.GreenStyle.Render(fmt.Sprintf("Set %s", key)))
			return nil
		},
	}
}

func configValue(cfg *config.Config, key string) string {
	switch key {
	case "endpoint":
		return cfg.Endpoint
	case "token":
		return cfg.Token
	case "concurrency":
		return strconv.Itoa(cfg.Concurrency)
	case "retries":
		return strconv.Itoa(cfg.Retries)
	case "loglevel":
		return cfg.LogLevel
	case "skipversioncheck":
		return strconv.FormatBool(cfg.SkipVersionCheck)
	}
	return ""
}

func setConfigValue(cfg *config.Config, key, value string) error {
	switch key {
	case "endpoint":
		cfg.Endpoint = strings.TrimSuffix(value, "/")
	case "token":
		cfg.Token = value
	case "loglevel":
		cfg.LogLevel = value
	case "concurrency":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("concurrency must be a positive integer, got %q", value)
		}
		cfg.Concurrency = n
	case "retries":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("retries must be a non-negative integer, got %q", value)
		}
		cfg.Retries = n
	case "skipversioncheck":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("skipversioncheck must be true or false, got %q", value)
		}
		cfg.SkipVersionCheck = b
	}
	return nil
}
