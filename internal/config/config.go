package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	v *viper.Viper
}

// New creates a new configuration instance
func New() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/sav-filter/")
	v.AddConfigPath("$HOME/.sav-filter")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	// Set defaults
	setDefaults(v)

	// Environment variables
	v.AutomaticEnv()
	v.SetEnvPrefix("SAV_FILTER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found, using defaults
	}

	return &Config{v: v}, nil
}

// NewFromFile creates a configuration instance from an explicit file path
func NewFromFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvPrefix("SAV_FILTER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return &Config{v: v}, nil
}

// NewFromViper creates a new configuration instance from an existing Viper instance
func NewFromViper(v *viper.Viper) *Config {
	return &Config{v: v}
}

// NewEmptyViper creates a new Viper instance with defaults
func NewEmptyViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.filter_type", "smtp")
	v.SetDefault("server.listen_address", "0.0.0.0:10025")
	v.SetDefault("server.block_spam", false)
	v.SetDefault("server.headers.spam", "X-SAV-Spam")
	v.SetDefault("server.headers.score", "X-SAV-Spam-Score")
	v.SetDefault("server.headers.reason", "X-SAV-Spam-Reason")
	v.SetDefault("server.relay_address", "127.0.0.1")
	v.SetDefault("server.relay_port", 10026)
	v.SetDefault("server.relay_enabled", true)
	v.SetDefault("server.subject_prefix", "")
	v.SetDefault("server.modify_subject", false)

	// Scoring defaults. The weights were tuned against the store's own
	// junk-folder corpus; they stay configurable so recalibration does not
	// require a release.
	v.SetDefault("spam.threshold", 0.35)
	v.SetDefault("spam.weights.sender", 0.40)
	v.SetDefault("spam.weights.subject_first", 0.35)
	v.SetDefault("spam.weights.subject_extra", 0.10)
	v.SetDefault("spam.weights.body_first", 0.25)
	v.SetDefault("spam.weights.body_extra", 0.05)
	v.SetDefault("spam.weights.suspicious_name", 0.35)
	v.SetDefault("spam.weights.freemail", 0.30)
	v.SetDefault("spam.freemail_domains", []string{
		"gmail.com", "googlemail.com", "yahoo.com", "yahoo.fr",
		"hotmail.com", "hotmail.fr", "outlook.com", "outlook.fr",
	})
	v.SetDefault("spam.max_scan_bytes", 16384)

	// Rule store defaults
	v.SetDefault("rules.max_pattern_length", 256)
	v.SetDefault("rules.persist", false)
	v.SetDefault("rules.sqlite_path", "/data/sav_rules.db")

	// LLM review defaults (second opinion on borderline scores)
	v.SetDefault("review.enabled", false)
	v.SetDefault("review.provider", "openai")
	v.SetDefault("review.band_low", 0.25)
	v.SetDefault("review.max_tokens", 1000)
	v.SetDefault("review.temperature", 0.1)
	v.SetDefault("review.top_p", 0.9)
	v.SetDefault("review.max_body_size", 4096)

	// Bedrock defaults
	v.SetDefault("bedrock.region", "us-east-1")
	v.SetDefault("bedrock.model_id", "anthropic.claude-v2")

	// Gemini defaults
	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.model_name", "gemini-pro")

	// OpenAI defaults
	v.SetDefault("openai.api_key", "")
	v.SetDefault("openai.model_name", "gpt-4")

	// Cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.ttl", "24h")
	v.SetDefault("cache.cleanup_frequency", "1h")
	v.SetDefault("cache.sqlite_path", "/data/sav_review_cache.db")
	v.SetDefault("cache.mysql_dsn", "user:password@tcp(localhost:3306)/sav_filter")

	// CLI defaults
	v.SetDefault("cli.verbose", false)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// GetString gets a string value from the configuration
func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}

// GetInt gets an integer value from the configuration
func (c *Config) GetInt(key string) int {
	return c.v.GetInt(key)
}

// GetFloat64 gets a float64 value from the configuration
func (c *Config) GetFloat64(key string) float64 {
	return c.v.GetFloat64(key)
}

// GetBool gets a boolean value from the configuration
func (c *Config) GetBool(key string) bool {
	return c.v.GetBool(key)
}

// GetStringSlice gets a string slice value from the configuration
func (c *Config) GetStringSlice(key string) []string {
	return c.v.GetStringSlice(key)
}

// GetDuration gets a duration value from the configuration
func (c *Config) GetDuration(key string) (time.Duration, error) {
	return time.ParseDuration(c.GetString(key))
}

// GetViper returns the underlying Viper instance
func (c *Config) GetViper() *viper.Viper {
	return c.v
}
