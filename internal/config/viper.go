// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	CSV struct {
		Delimiter      string `mapstructure:"delimiter" yaml:"delimiter"`
		IncludeHeaders bool   `mapstructure:"include_headers" yaml:"include_headers"`
	} `mapstructure:"csv" yaml:"csv"`

	AI struct {
		Enabled          bool   `mapstructure:"enabled" yaml:"enabled"`
		Model            string `mapstructure:"model" yaml:"model"`
		TimeoutSeconds   int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
		FallbackCategory string `mapstructure:"fallback_category" yaml:"fallback_category"`
		APIKey           string `mapstructure:"api_key" yaml:"-"` // Never serialize API key
	} `mapstructure:"ai" yaml:"ai"`

	Search struct {
		FuzzyThreshold float64 `mapstructure:"fuzzy_threshold" yaml:"fuzzy_threshold"`
	} `mapstructure:"search" yaml:"search"`

	Aggregation struct {
		WindowSize int `mapstructure:"window_size" yaml:"window_size"`
	} `mapstructure:"aggregation" yaml:"aggregation"`

	Data struct {
		Directory   string `mapstructure:"directory" yaml:"directory"`
		RecordsFile string `mapstructure:"records_file" yaml:"records_file"`
	} `mapstructure:"data" yaml:"data"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading:
// defaults, then an optional config file, then RECEIPT_* environment variables.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.receipt-csv")
	v.AddConfigPath(".receipt-csv")
	v.AddConfigPath(".")

	v.SetEnvPrefix("RECEIPT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Continue with defaults and env vars when the file is unreadable
			Logger.Warnf("Error reading config file %s: %v", v.ConfigFileUsed(), err)
		}
	}

	// API key always comes from the unprefixed environment variable
	if err := v.BindEnv("ai.api_key", "GEMINI_API_KEY"); err != nil {
		Logger.Warnf("Failed to bind GEMINI_API_KEY environment variable: %v", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("csv.delimiter", ",")
	v.SetDefault("csv.include_headers", true)

	v.SetDefault("ai.enabled", false)
	v.SetDefault("ai.model", "gemini-2.0-flash")
	v.SetDefault("ai.timeout_seconds", 30)
	v.SetDefault("ai.fallback_category", "other")

	v.SetDefault("search.fuzzy_threshold", 0.8)

	v.SetDefault("aggregation.window_size", 3)

	v.SetDefault("data.directory", "data")
	v.SetDefault("data.records_file", "records.csv")
}

func validateConfig(config *Config) error {
	switch config.Log.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unsupported log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("unsupported log format: %s", config.Log.Format)
	}

	if config.Search.FuzzyThreshold < 0 || config.Search.FuzzyThreshold > 1 {
		return fmt.Errorf("fuzzy threshold must be in [0,1], got %v", config.Search.FuzzyThreshold)
	}

	if config.Aggregation.WindowSize < 1 {
		return fmt.Errorf("aggregation window size must be positive, got %d", config.Aggregation.WindowSize)
	}

	return nil
}

// GetAIEnabled reports whether the AI categorization fallback is switched on.
func (c *Config) GetAIEnabled() bool { return c.AI.Enabled }

// GetAIAPIKey returns the configured Gemini API key.
func (c *Config) GetAIAPIKey() string { return c.AI.APIKey }

// GetAIModel returns the configured Gemini model name.
func (c *Config) GetAIModel() string { return c.AI.Model }

// GetAIFallbackCategory returns the category used when the AI response is unusable.
func (c *Config) GetAIFallbackCategory() string { return c.AI.FallbackCategory }

// GetAITimeout returns the per-request timeout for AI categorization calls.
func (c *Config) GetAITimeout() time.Duration {
	return time.Duration(c.AI.TimeoutSeconds) * time.Second
}

// GetFuzzyThreshold returns the similarity cutoff for fuzzy search.
func (c *Config) GetFuzzyThreshold() float64 { return c.Search.FuzzyThreshold }

// GetWindowSize returns the sliding-window size for spending averages.
func (c *Config) GetWindowSize() int { return c.Aggregation.WindowSize }

// GetRecordsPath returns the path of the record store CSV file.
func (c *Config) GetRecordsPath() string {
	return filepath.Join(c.Data.Directory, c.Data.RecordsFile)
}
