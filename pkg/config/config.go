package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const (
	TransportHTTP  = "http"
	TransportResty = "resty"
)

type Config struct {
	ClientID  string
	Endpoint  string
	APISecret string
	APIKey    string

	Timeout   time.Duration
	LogLevel  string
	Transport string
}

func Load() (*Config, error) {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()

	cfg := &Config{
		ClientID:  os.Getenv("SALESMANAGO_CLIENT_ID"),
		Endpoint:  os.Getenv("SALESMANAGO_ENDPOINT"),
		APISecret: os.Getenv("SALESMANAGO_API_SECRET"),
		APIKey:    os.Getenv("SALESMANAGO_API_KEY"),
		Timeout:   30 * time.Second,
		LogLevel:  getEnv("SALESMANAGO_LOG_LEVEL", "info"),
		Transport: getEnv("SALESMANAGO_TRANSPORT", TransportHTTP),
	}

	if v := os.Getenv("SALESMANAGO_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("SALESMANAGO_TIMEOUT is invalid: %w", err)
		}
		cfg.Timeout = d
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.ClientID == "" {
		return fmt.Errorf("SALESMANAGO_CLIENT_ID is required")
	}
	if c.Endpoint == "" {
		return fmt.Errorf("SALESMANAGO_ENDPOINT is required")
	}
	if c.APISecret == "" {
		return fmt.Errorf("SALESMANAGO_API_SECRET is required")
	}
	if c.APIKey == "" {
		return fmt.Errorf("SALESMANAGO_API_KEY is required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("SALESMANAGO_TIMEOUT must be positive")
	}
	switch c.Transport {
	case TransportHTTP, TransportResty:
	default:
		return fmt.Errorf("SALESMANAGO_TRANSPORT must be %q or %q, got %q", TransportHTTP, TransportResty, c.Transport)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
