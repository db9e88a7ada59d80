package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	API       APIConfig
	Image     ImageConfig
	Catalog   CatalogConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8000"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`
}

// APIConfig holds settings for the manifest backend.
type APIConfig struct {
	URL             string        `envconfig:"API_URL" default:"http://localhost:7071/api"`
	Timeout         time.Duration `envconfig:"API_TIMEOUT" default:"30s"`
	UserAgent       string        `envconfig:"API_USER_AGENT" default:"manifestgen/1.0"`
	RateLimitRPS    float64       `envconfig:"API_RATE_LIMIT_RPS" default:"0"`
	BreakerFailures uint32        `envconfig:"API_BREAKER_FAILURES" default:"5"`
}

// ImageConfig holds image inspector settings.
type ImageConfig struct {
	Headless bool          `envconfig:"IMAGE_HEADLESS" default:"false"`
	Timeout  time.Duration `envconfig:"IMAGE_TIMEOUT" default:"15s"`
	MaxBytes int64         `envconfig:"IMAGE_MAX_BYTES" default:"10485760"`
}

// CatalogConfig points at an optional display/orientation/language catalog file.
type CatalogConfig struct {
	Path string `envconfig:"CATALOG_PATH" default:""`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds per-IP rate limiting for the state API.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"20"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"40"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.API.URL == "" {
		return nil, fmt.Errorf("failed to load config: API_URL is empty")
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8000",
			Host: "0.0.0.0",
		},
		API: APIConfig{
			URL:             "http://localhost:7071/api",
			Timeout:         30 * time.Second,
			UserAgent:       "manifestgen/1.0",
			RateLimitRPS:    0,
			BreakerFailures: 5,
		},
		Image: ImageConfig{
			Headless: false,
			Timeout:  15 * time.Second,
			MaxBytes: 10 * 1024 * 1024,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 20,
			Burst:             40,
			Enabled:           true,
		},
	}
}

// ManifestsEndpoint returns the collection URL for manifest generation.
func (c APIConfig) ManifestsEndpoint() string {
	return trimSlash(c.URL) + "/manifests"
}

func trimSlash(s string) string {
	for len(s) > 0 && s[len(s)-1] == '/' {
		s = s[:len(s)-1]
	}
	return s
}
