package config

import (
	"errors"
	"os"
)

// ErrMissingJWTSecret is returned when no signing secret is configured.
// The server refuses to start without one.
var ErrMissingJWTSecret = errors.New("JWT_SECRET is not set")

type Config struct {
	Port         string
	DBDriver     string
	DBHost       string
	DBPort       string
	DBUser       string
	DBPassword   string
	DBName       string
	JWTSecret    string
	GinMode      string
	OpenAIAPIKey string
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		DBDriver:     getEnv("DB_DRIVER", "postgres"),
		DBHost:       getEnv("DB_HOST", "localhost"),
		DBPort:       getEnv("DB_PORT", "5432"),
		DBUser:       getEnv("DB_USER", "taskdeck"),
		DBPassword:   getEnv("DB_PASSWORD", "taskdeck"),
		DBName:       getEnv("DB_NAME", "taskdeck"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		GinMode:      getEnv("GIN_MODE", "debug"),
		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
	}

	if cfg.JWTSecret == "" {
		return nil, ErrMissingJWTSecret
	}

	return cfg, nil
}

// IsProduction reports whether the server runs in release mode.
// Controls the Secure attribute on the session cookie.
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
