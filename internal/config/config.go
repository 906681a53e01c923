package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the environment driven configuration for the ask service.
//
// Configuration Loading Order (highest to lowest priority):
// 1. Environment variables
// 2. .env file (if present, loaded by the entrypoint)
// 3. Default values from struct tags
type Config struct {
	ServiceName     string        `env:"SERVICE_NAME" envDefault:"jan-ask"`
	ServiceVersion  string        `env:"SERVICE_VERSION" envDefault:"dev"`
	Environment     string        `env:"ENVIRONMENT" envDefault:"development"`
	HTTPPort        int           `env:"HTTP_PORT" envDefault:"8000"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Logging
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   string `env:"LOG_FORMAT" envDefault:"console"` // json or console
	LogPIILevel string `env:"LOG_PII_LEVEL" envDefault:"hashed"`

	// Completion providers. Keys are optional: an empty key yields an
	// unauthenticated upstream call, not a local validation error.
	XAIAPIKey             string        `env:"XAI_API_KEY"`
	XAIBaseURL            string        `env:"XAI_BASE_URL" envDefault:"https://api.x.ai/v1"`
	OpenAIAPIKey          string        `env:"OPENAI_API_KEY"`
	OpenAIBaseURL         string        `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com/v1"`
	CompletionTimeout     time.Duration `env:"COMPLETION_TIMEOUT" envDefault:"60s"`
	CompletionTemperature float32       `env:"COMPLETION_TEMPERATURE" envDefault:"0.7"`
	ModelRegistryFile     string        `env:"MODEL_REGISTRY_FILE"`

	// Reddit / Pushshift
	RedditEnabled      bool          `env:"REDDIT_ENABLED" envDefault:"true"`
	PushshiftBaseURL   string        `env:"PUSHSHIFT_BASE_URL" envDefault:"https://api.pushshift.io"`
	RedditTimeout      time.Duration `env:"REDDIT_TIMEOUT" envDefault:"10s"`
	RedditSearchSize   int           `env:"REDDIT_SEARCH_SIZE" envDefault:"5"`
	RedditMaxBodyChars int           `env:"REDDIT_MAX_BODY_CHARS" envDefault:"2000"`

	// DuckDuckGo
	DuckDuckGoEnabled   bool          `env:"DUCKDUCKGO_ENABLED" envDefault:"true"`
	DuckDuckGoBaseURL   string        `env:"DUCKDUCKGO_BASE_URL" envDefault:"https://api.duckduckgo.com/"`
	DuckDuckGoTimeout   time.Duration `env:"DUCKDUCKGO_TIMEOUT" envDefault:"5s"`
	DuckDuckGoMaxTopics int           `env:"DUCKDUCKGO_MAX_TOPICS" envDefault:"5"`

	// Observability
	EnableTracing     bool   `env:"ENABLE_TRACING" envDefault:"false"`
	EnableOTelMetrics bool   `env:"ENABLE_OTEL_METRICS" envDefault:"false"`
	OTLPEndpoint      string `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:""`
}

// Load parses environment variables into Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}

	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))
	cfg.XAIBaseURL = strings.TrimRight(strings.TrimSpace(cfg.XAIBaseURL), "/")
	cfg.OpenAIBaseURL = strings.TrimRight(strings.TrimSpace(cfg.OpenAIBaseURL), "/")
	cfg.PushshiftBaseURL = strings.TrimRight(strings.TrimSpace(cfg.PushshiftBaseURL), "/")

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	timeouts := map[string]time.Duration{
		"COMPLETION_TIMEOUT": c.CompletionTimeout,
		"REDDIT_TIMEOUT":     c.RedditTimeout,
		"DUCKDUCKGO_TIMEOUT": c.DuckDuckGoTimeout,
		"SHUTDOWN_TIMEOUT":   c.ShutdownTimeout,
	}
	for name, value := range timeouts {
		if value <= 0 {
			return fmt.Errorf("%s must be positive, got %s", name, value)
		}
	}
	if c.RedditSearchSize <= 0 {
		return fmt.Errorf("REDDIT_SEARCH_SIZE must be positive, got %d", c.RedditSearchSize)
	}
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("HTTP_PORT out of range: %d", c.HTTPPort)
	}
	if c.ModelRegistryFile != "" {
		if _, err := os.Stat(c.ModelRegistryFile); err != nil {
			return fmt.Errorf("MODEL_REGISTRY_FILE: %w", err)
		}
	}
	return nil
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

// MissingKeys lists the provider credentials that are not configured.
func (c *Config) MissingKeys() []string {
	var missing []string
	if strings.TrimSpace(c.XAIAPIKey) == "" {
		missing = append(missing, "XAI_API_KEY")
	}
	if strings.TrimSpace(c.OpenAIAPIKey) == "" {
		missing = append(missing, "OPENAI_API_KEY")
	}
	return missing
}
