package config

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
)

// Config holds the full application configuration surface.
type Config struct {
	ListenAddr   string
	DatabaseURL  string
	JWTSecret    string
	GeminiAPIKey string
	GeminiModel  string
}

// Load reads environment variables (optionally from a .env file) and
// materializes a Config. DATABASE_URL, JWT_SECRET and GEMINI_API_KEY are
// required; everything else has a default.
func Load() (*Config, error) {
	// Missing .env files are acceptable when configuration comes from the
	// environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		ListenAddr:   getenvWithDefault("LISTEN_ADDR", ":3000"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  getenvWithDefault("GEMINI_MODEL", "gemini-2.0-flash"),
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is not set")
	}
	if cfg.GeminiAPIKey == "" {
		return nil, errors.New("GEMINI_API_KEY is not set")
	}

	return cfg, nil
}

func getenvWithDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
