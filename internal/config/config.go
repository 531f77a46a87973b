package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config carries the process-level settings. DATABASE_URL and SECRET_KEY are
// startup-fatal when absent; everything else has a local-dev default.
type Config struct {
	DatabaseURL string
	SecretKey   string
	BaseURL     string
	Port        string
}

// Load reads .env if present and then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		SecretKey:   os.Getenv("SECRET_KEY"),
		BaseURL:     getenv("BASE_URL", "http://localhost:8080"),
		Port:        getenv("PORT", "8080"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is empty")
	}
	if cfg.SecretKey == "" {
		return nil, fmt.Errorf("SECRET_KEY is empty")
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
