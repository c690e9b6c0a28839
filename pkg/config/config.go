package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	DefaultConfigDir  = ".stash"
	DefaultConfigFile = "config.yaml"

	// DefaultConcurrency is the number of uploads kept in flight when the
	// config file and flags are silent.
	DefaultConcurrency = 10

	// DefaultRetries bounds attempts per file for retryable failures.
	DefaultRetries = 3
)

// Config holds the CLI configuration. One instance is built before a batch
// starts and shared read-only by every concurrent upload.
type Config struct {
	Endpoint         string // storage endpoint URL prefix, e.g. https://store.example.com/files
	Token            string // auth token, sent as the x-auth-token header
	Concurrency      int
	Retries          int
	Overwrite        bool // replace remote objects instead of quiet duplicate rejection
	LogLevel         string
	SkipVersionCheck bool
}

// ValidUserFacingConfigKeys lists the keys users can read and write through
// 'stash config'. Overwrite is deliberately absent: it is a per-invocation
// flag, not a sticky default.
var ValidUserFacingConfigKeys = map[string]bool{
	"endpoint":         true,
	"token":            true,
	"concurrency":      true,
	"retries":          true,
	"loglevel":         true,
	"skipversioncheck": true,
}

// IsValidUserFacingKey checks if a config key is a recognized user-facing key
func IsValidUserFacingKey(key string) bool {
	return ValidUserFacingConfigKeys[strings.ToLower(key)]
}

// GetConfigKeyDescription returns a description for a config key
func GetConfigKeyDescription(key string) string {
	descriptions := map[string]string{
		"endpoint":         "Storage endpoint URL prefix uploads are PUT under",
		"token":            "Auth token sent with every upload",
		"concurrency":      fmt.Sprintf("Maximum uploads in flight at once (default: %d)", DefaultConcurrency),
		"retries":          fmt.Sprintf("Attempts per file for retryable failures (default: %d)", DefaultRetries),
		"loglevel":         "Logging level (debug/info/warn/error, default: info)",
		"skipversioncheck": "Disable automatic version update checks (true/false)",
	}
	return descriptions[strings.ToLower(key)]
}

// Load reads the configuration from ~/.stash/config.yaml, with STASH_*
// environment variables taking precedence over file values.
func Load() (*Config, error) {
	configPath := getConfigPath()
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("STASH")
	viper.AutomaticEnv()

	viper.SetDefault("concurrency", DefaultConcurrency)
	viper.SetDefault("retries", DefaultRetries)

	// Create config file if it doesn't exist
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := ensureConfigDir(configPath); err != nil {
			return nil, fmt.Errorf("failed to create config directory: %w", err)
		}
		if err := viper.WriteConfig(); err != nil {
			return nil, fmt.Errorf("failed to create config file: %w", err)
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	config := &Config{
		Endpoint:         strings.TrimSuffix(viper.GetString("endpoint"), "/"),
		Token:            viper.GetString("token"),
		Concurrency:      viper.GetInt("concurrency"),
		Retries:          viper.GetInt("retries"),
		LogLevel:         viper.GetString("loglevel"),
		SkipVersionCheck: viper.GetBool("skipversioncheck"),
	}

	return config, nil
}

// Save writes the current configuration to disk
func Save(config *Config) error {
	viper.Set("endpoint", config.Endpoint)
	viper.Set("token", config.Token)
	viper.Set("concurrency", config.Concurrency)
	viper.Set("retries", config.Retries)
	viper.Set("loglevel", config.LogLevel)
	viper.Set("skipversioncheck", config.SkipVersionCheck)

	if err := viper.WriteConfig(); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Validate checks the invariants a batch depends on before any upload starts.
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("no endpoint configured. Run 'stash config set endpoint <url>'")
	}
	if c.Token == "" {
		return fmt.Errorf("no token configured. Run 'stash config set token <token>'")
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency)
	}
	if c.Retries < 0 {
		return fmt.Errorf("retries must not be negative, got %d", c.Retries)
	}
	return nil
}

// GetLogLevel maps the configured level string to a slog.Level (info default)
func (c *Config) GetLogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// getConfigPath returns the full path to the config file
func getConfigPath() string {
	if path := os.Getenv("STASH_CONFIG_PATH"); path != "" {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback
		return filepath.Join(".", DefaultConfigDir, DefaultConfigFile)
	}

	return filepath.Join(homeDir, DefaultConfigDir, DefaultConfigFile)
}

func ensureConfigDir(configPath string) error {
	return os.MkdirAll(filepath.Dir(configPath), 0o700)
}

// Context key for storing config
type contextKey string

const configContextKey contextKey = "config"

// GetConfigFromContext retrieves the config from the command context
func GetConfigFromContext(cmd *cobra.Command) (*Config, error) {
	ctx := cmd.Context()
	if ctx == nil {
		return nil, fmt.Errorf("no context available")
	}

	cfg, ok := ctx.Value(configContextKey).(*Config)
	if !ok || cfg == nil {
		return nil, fmt.Errorf("config not found in context")
	}

	return cfg, nil
}

// GetContextKey returns the context key used for storing config
// This is needed by root.go to store the config in context
func GetContextKey() interface{} {
	return configContextKey
}
