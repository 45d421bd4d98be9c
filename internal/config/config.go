// Package config provides configuration loading and validation for the ranker.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable the ranker reads,
// e.g. RANKER_PORT or RANKER_AMQP_URL.
const EnvPrefix = "RANKER"

// Config is the ranker configuration. Values come from, in increasing
// precedence: defaults, an optional YAML/JSON file, RANKER_* environment
// variables and bound CLI flags.
type Config struct {
	// Sources. CandidatesFile wins over DatabaseURL when both are set.
	DatabaseURL    string `mapstructure:"database_url"`
	CandidatesFile string `mapstructure:"candidates_file"`

	Port    int  `mapstructure:"port"`
	LogJSON bool `mapstructure:"log_json"`
	Debug   bool `mapstructure:"debug"`

	AMQP      AMQPConfig      `mapstructure:"amqp"`
	Artifacts ArtifactsConfig `mapstructure:"artifacts"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// AMQPConfig configures the rank-request worker.
type AMQPConfig struct {
	URL      string `mapstructure:"url"`
	Queue    string `mapstructure:"queue"`
	Workers  int    `mapstructure:"workers"`
	Prefetch int    `mapstructure:"prefetch"`
}

// ArtifactsConfig configures presigned résumé links.
type ArtifactsConfig struct {
	Bucket     string        `mapstructure:"bucket"`
	Region     string        `mapstructure:"region"`
	Endpoint   string        `mapstructure:"endpoint"`
	AccountID  string        `mapstructure:"account_id"`
	AccessKey  string        `mapstructure:"access_key"`
	SecretKey  string        `mapstructure:"secret_key"`
	PresignTTL time.Duration `mapstructure:"presign_ttl"`
}

// RateLimitConfig configures per-client HTTP rate limiting.
type RateLimitConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	DefaultLimit int           `mapstructure:"default_limit"`
	Window       time.Duration `mapstructure:"window"`
	Whitelist    []string      `mapstructure:"whitelist"`
	Blacklist    []string      `mapstructure:"blacklist"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Port: 8080,
		AMQP: AMQPConfig{
			Queue:    "ranking.requests",
			Workers:  2,
			Prefetch: 10,
		},
		Artifacts: ArtifactsConfig{
			PresignTTL: 15 * time.Minute,
		},
		RateLimit: RateLimitConfig{
			Enabled:      true,
			DefaultLimit: 600,
			Window:       time.Minute,
		},
	}
}

// NewViper returns a viper instance with defaults and environment binding
// set up. Callers may bind flags to it before calling Load.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	d := Defaults()
	v.SetDefault("database_url", d.DatabaseURL)
	v.SetDefault("candidates_file", d.CandidatesFile)
	v.SetDefault("port", d.Port)
	v.SetDefault("log_json", d.LogJSON)
	v.SetDefault("debug", d.Debug)
	v.SetDefault("amqp.url", d.AMQP.URL)
	v.SetDefault("amqp.queue", d.AMQP.Queue)
	v.SetDefault("amqp.workers", d.AMQP.Workers)
	v.SetDefault("amqp.prefetch", d.AMQP.Prefetch)
	v.SetDefault("artifacts.bucket", d.Artifacts.Bucket)
	v.SetDefault("artifacts.region", d.Artifacts.Region)
	v.SetDefault("artifacts.endpoint", d.Artifacts.Endpoint)
	v.SetDefault("artifacts.account_id", d.Artifacts.AccountID)
	v.SetDefault("artifacts.access_key", d.Artifacts.AccessKey)
	v.SetDefault("artifacts.secret_key", d.Artifacts.SecretKey)
	v.SetDefault("artifacts.presign_ttl", d.Artifacts.PresignTTL)
	v.SetDefault("rate_limit.enabled", d.RateLimit.Enabled)
	v.SetDefault("rate_limit.default_limit", d.RateLimit.DefaultLimit)
	v.SetDefault("rate_limit.window", d.RateLimit.Window)
	v.SetDefault("rate_limit.whitelist", d.RateLimit.Whitelist)
	v.SetDefault("rate_limit.blacklist", d.RateLimit.Blacklist)

	// DATABASE_URL is the conventional name; accept it as a fallback.
	_ = v.BindEnv("database_url", EnvPrefix+"_DATABASE_URL", "DATABASE_URL")

	return v
}

// LoadConfig loads configuration from defaults, the optional file at path and
// the environment.
func LoadConfig(path string) (*Config, error) {
	return Load(NewViper(), path)
}

// Load reads the optional config file at path into v and decodes the result.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	merged := cfg.MergeWithDefaults(Defaults())
	return &merged, nil
}

// Validate checks that the configuration has valid values.
// It does not require a source; commands check that for themselves.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 1 and 65535, got %d", c.Port)
	}

	if c.CandidatesFile != "" {
		if _, err := os.Stat(c.CandidatesFile); os.IsNotExist(err) {
			return fmt.Errorf("config error: candidates file not found: %s", c.CandidatesFile)
		}
	}

	if c.AMQP.Workers < 0 {
		return fmt.Errorf("config error: 'amqp.workers' must be non-negative")
	}
	if c.AMQP.Prefetch < 0 {
		return fmt.Errorf("config error: 'amqp.prefetch' must be non-negative")
	}

	if (c.Artifacts.AccessKey == "") != (c.Artifacts.SecretKey == "") {
		return fmt.Errorf("config error: 'artifacts.access_key' and 'artifacts.secret_key' must be set together")
	}
	if c.Artifacts.PresignTTL < 0 {
		return fmt.Errorf("config error: 'artifacts.presign_ttl' must be non-negative")
	}

	if c.RateLimit.DefaultLimit < 0 {
		return fmt.Errorf("config error: 'rate_limit.default_limit' must be non-negative")
	}
	if c.RateLimit.Enabled && c.RateLimit.Window <= 0 {
		return fmt.Errorf("config error: 'rate_limit.window' must be positive when rate limiting is enabled")
	}

	return nil
}

// HasSource reports whether a candidate source is configured.
func (c *Config) HasSource() bool {
	return c.CandidatesFile != "" || c.DatabaseURL != ""
}

// MergeWithDefaults returns a new Config with zero-valued fields filled from defaults.
// Bool fields cannot distinguish unset from false and are left alone.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.CandidatesFile == "" {
		result.CandidatesFile = defaults.CandidatesFile
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	if result.AMQP.URL == "" {
		result.AMQP.URL = defaults.AMQP.URL
	}
	if result.AMQP.Queue == "" {
		result.AMQP.Queue = defaults.AMQP.Queue
	}
	if result.AMQP.Workers == 0 {
		result.AMQP.Workers = defaults.AMQP.Workers
	}
	if result.AMQP.Prefetch == 0 {
		result.AMQP.Prefetch = defaults.AMQP.Prefetch
	}

	if result.Artifacts.Region == "" {
		result.Artifacts.Region = defaults.Artifacts.Region
	}
	if result.Artifacts.PresignTTL == 0 {
		result.Artifacts.PresignTTL = defaults.Artifacts.PresignTTL
	}

	if result.RateLimit.DefaultLimit == 0 {
		result.RateLimit.DefaultLimit = defaults.RateLimit.DefaultLimit
	}
	if result.RateLimit.Window == 0 {
		result.RateLimit.Window = defaults.RateLimit.Window
	}

	return result
}
