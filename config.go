package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"topup-store/database"
)

// Config holds all configuration for the storefront.
type Config struct {
	Port string
	Env  string

	Postgres database.PostgresConfig

	MongoURI    string
	MongoDBName string

	RedisAddr     string
	RedisPassword string
	CacheTTL      time.Duration

	JWTSecret    string
	SessionTTL   time.Duration
	CookieDomain string
	CookieSecure bool

	CORSOrigins    []string
	CurrencyPrefix string
}

// LoadConfig reads configuration from the environment, with a .env file as
// fallback for local development.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("APP_ENV", "development"),
		Postgres: database.PostgresConfig{
			Host:     getEnv("POSTGRES_HOST", "localhost"),
			Port:     getEnv("POSTGRES_PORT", "5432"),
			User:     os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			Name:     os.Getenv("POSTGRES_DB"),
			SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		},
		MongoURI:       getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:    getEnv("MONGO_DB", "topup_store"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		CacheTTL:       getDurationEnv("CACHE_TTL", 5*time.Minute),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		SessionTTL:     getDurationEnv("SESSION_TTL", 30*24*time.Hour),
		CookieDomain:   getEnv("COOKIE_DOMAIN", "localhost"),
		CookieSecure:   getEnv("COOKIE_SECURE", "false") == "true",
		CORSOrigins:    []string{getEnv("CORS_ORIGIN", "http://localhost:3000")},
		CurrencyPrefix: getEnv("CURRENCY_PREFIX", "Tk"),
	}

	if cfg.Postgres.User == "" || cfg.Postgres.Password == "" || cfg.Postgres.Name == "" {
		return nil, fmt.Errorf("database config incomplete")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}
