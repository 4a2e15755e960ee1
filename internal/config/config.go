package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	// Backend
	APIBaseURL  string
	HTTPTimeout time.Duration

	// Logging
	LogLevel string
	JSONLogs bool
}

// Load reads an optional .env file and then environment variables into
// AppConfig. Missing values fall back to local-development defaults.
func Load() AppConfig {
	// A missing .env file is not an error; env vars alone are enough.
	_ = godotenv.Load()

	return AppConfig{
		APIBaseURL:  getEnv("CRM_API_URL", "http://localhost:8080/api"),
		HTTPTimeout: getDuration("CRM_HTTP_TIMEOUT", 15*time.Second),
		LogLevel:    getEnv("CRM_LOG_LEVEL", "info"),
		JSONLogs:    strings.ToLower(getEnv("CRM_JSON_LOGS", "false")) == "true",
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
