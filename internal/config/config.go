package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the non-secret knobs of the dashboard. Secrets (access code,
// signing secret, rate API key) live in secrets.json, not here.
type Config struct {
	Port int `yaml:"port"`

	// BaseCurrency is what the one per-session rate fetch is quoted
	// against; cross rates cover every display currency after that
	BaseCurrency           string `yaml:"baseCurrency"`
	DefaultDisplayCurrency string `yaml:"defaultDisplayCurrency"`

	// RateApiBaseUrl overrides the rate provider endpoint, mainly for
	// tests; empty means the provider's public URL
	RateApiBaseUrl string `yaml:"rateApiBaseUrl"`

	SessionTtl     string `yaml:"sessionTtl"`
	TopTradesCount int    `yaml:"topTradesCount"`
}

func Default() *Config {
	return &Config{
		Port:                   3009,
		BaseCurrency:           "USD",
		DefaultDisplayCurrency: "USD",
		SessionTtl:             "12h",
		TopTradesCount:         10,
	}
}

// LoadFromFile reads a YAML config. Omitted fields keep their defaults, so
// a config file only needs the knobs it changes.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535")
	}
	if len(c.BaseCurrency) != 3 {
		return fmt.Errorf("baseCurrency must be a 3-letter code")
	}
	if len(c.DefaultDisplayCurrency) != 3 {
		return fmt.Errorf("defaultDisplayCurrency must be a 3-letter code")
	}
	if _, err := c.SessionTtlDuration(); err != nil {
		return fmt.Errorf("sessionTtl: %w", err)
	}
	if c.TopTradesCount < 1 {
		return fmt.Errorf("topTradesCount must be positive")
	}
	return nil
}

func (c *Config) SessionTtlDuration() (time.Duration, error) {
	if c.SessionTtl == "" {
		return 0, nil
	}
	return time.ParseDuration(c.SessionTtl)
}
