package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server ServerConfig
	API    APIConfig
	Query  QueryConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

type QueryConfig struct {
	Debounce time.Duration
}

func Load() (*Config, error) {
	// Load .env files if they exist (try .env.local first, then .env)
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Env:  getEnv("ENV", "development"),
		},
		API: APIConfig{
			BaseURL: getEnv("LESSONS_API_BASE", "http://localhost:8080"),
			Timeout: getEnvAsDuration("HTTP_TIMEOUT", 30*time.Second),
		},
		Query: QueryConfig{
			Debounce: getEnvAsDuration("SEARCH_DEBOUNCE", 150*time.Millisecond),
		},
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
