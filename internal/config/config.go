// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	GeminiAPIKey  string        `env:"EMPIRE_GEMINI_API_KEY"`
	GeminiModel   string        `env:"EMPIRE_GEMINI_MODEL"`
	GeminiBaseURL string        `env:"EMPIRE_GEMINI_BASE_URL"`
	HTTPTimeout   time.Duration `env:"EMPIRE_HTTP_TIMEOUT" envDefault:"0s"`
	CatalogPath   string        `env:"EMPIRE_CATALOG_PATH"`
	LogLevel      string        `env:"EMPIRE_LOG_LEVEL"    envDefault:"info"`

	// SharedAPIKey is the key name other Gemini tools use.
	SharedAPIKey string `env:"GEMINI_API_KEY"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads Config from the environment. EMPIRE_GEMINI_API_KEY wins over
// GEMINI_API_KEY when both are set.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if strings.TrimSpace(cfg.GeminiAPIKey) == "" {
		cfg.GeminiAPIKey = cfg.SharedAPIKey
	}
	cfg.GeminiAPIKey = strings.TrimSpace(cfg.GeminiAPIKey)
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	if cfg.HTTPTimeout < 0 {
		return Config{}, fmt.Errorf("EMPIRE_HTTP_TIMEOUT must not be negative, got %s", cfg.HTTPTimeout)
	}
	return cfg, nil
}

// Debug reports whether debug logging was requested.
func (c Config) Debug() bool { return c.LogLevel == "debug" }
