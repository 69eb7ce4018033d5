// ABOUTME: Configuration loading and parsing for the sync engine
// ABOUTME: Supports YAML files with environment variable expansion and duration parsing

package config

import (
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the host-facing configuration for the sync engine.
type Config struct {
	Pipeline PipelineConfig `yaml:"pipeline"`
	Events   EventsConfig   `yaml:"events"`
	Logging  LoggingConfig  `yaml:"logging"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// PipelineConfig holds conversation pipeline tuning.
type PipelineConfig struct {
	// SettleDelay is the wait between join and fetch in NewConversation.
	// Zero keeps the built-in default.
	SettleDelay time.Duration `yaml:"-"`

	// Raw string value for YAML unmarshaling
	SettleDelayRaw string `yaml:"settle_delay"`
}

// EventsConfig holds event stream tuning.
type EventsConfig struct {
	// SubscriberBuffer is the per-subscriber channel buffer for the
	// lifecycle and push streams. Zero keeps the built-in default.
	SubscriberBuffer int `yaml:"subscriber_buffer"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Default returns the configuration used when no file is provided.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "info", Format: "text"},
		Metrics: MetricsConfig{Enabled: true},
	}
}

// Load reads a configuration file from the given path and returns a parsed Config.
// Environment variables in the format ${VAR_NAME} are expanded.
// Duration strings are parsed into time.Duration values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the raw YAML content
	expandedData := expandEnvVars(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expandedData), cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Parse duration fields
	if err := parseDurations(cfg); err != nil {
		return nil, fmt.Errorf("parsing durations: %w", err)
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// expandEnvVars replaces ${VAR_NAME} patterns with the corresponding environment variable values.
// If the environment variable is not set, it is replaced with an empty string.
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)

	return re.ReplaceAllStringFunc(s, func(match string) string {
		varName := re.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}

// Validate checks that all configuration fields hold usable values.
// Returns an error describing the first validation failure encountered.
func (c *Config) Validate() error {
	if c.Pipeline.SettleDelay < 0 {
		return fmt.Errorf("pipeline.settle_delay must not be negative")
	}
	if c.Events.SubscriberBuffer < 0 {
		return fmt.Errorf("events.subscriber_buffer must not be negative")
	}

	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}

	switch c.Logging.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("logging.format %q is not one of text, json", c.Logging.Format)
	}

	return nil
}

// SlogLevel maps the configured logging level onto slog's levels.
func (c *Config) SlogLevel() slog.Level {
	switch c.Logging.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// parseDurations converts the raw duration strings into time.Duration values
func parseDurations(cfg *Config) error {
	var err error

	if cfg.Pipeline.SettleDelayRaw != "" {
		cfg.Pipeline.SettleDelay, err = time.ParseDuration(cfg.Pipeline.SettleDelayRaw)
		if err != nil {
			return fmt.Errorf("parsing settle_delay %q: %w", cfg.Pipeline.SettleDelayRaw, err)
		}
	}

	return nil
}
