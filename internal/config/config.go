package config

import (
	"os"
	"strings"
	"time"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	Port           string
	JWTSecret      string
	TokenTTL       time.Duration
	KafkaBrokers   []string
	KafkaTopic     string
	AllowedOrigins []string
}

// Load reads the application configuration from the environment.
func Load() *Config {
	ttl := 30 * time.Minute
	if raw := os.Getenv("ACCESS_TOKEN_TTL"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil {
			ttl = parsed
		}
	}

	var brokers []string
	if raw := os.Getenv("KAFKA_BROKERS"); raw != "" {
		for _, b := range strings.Split(raw, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}
	}

	return &Config{
		Port:           getEnv("PORT", "8000"),
		JWTSecret:      getEnv("SECRET_KEY", "ewash-super-secret-key-change-in-production"),
		TokenTTL:       ttl,
		KafkaBrokers:   brokers,
		KafkaTopic:     getEnv("KAFKA_ORDER_TOPIC", "order-events"),
		AllowedOrigins: strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000"), ","),
	}
}

// getEnv gets an environment variable with a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
