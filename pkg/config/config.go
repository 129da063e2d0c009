package config

import (
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultJWTSecret signs tokens when JWT_SECRET is unset. Only development
// may run with it.
const DefaultJWTSecret = "supersecretjwtkey"

var ErrDefaultJWTSecret = errors.New("JWT_SECRET must be set outside development")

type Config struct {
	Port                    string
	Env                     string
	LogLevel                string
	PostgresConnStr         string
	MongoURI                string
	MongoDatabase           string
	RedisURL                string
	NatsURL                 string
	JWTSecret               string
	FirebaseCredentialsPath string
	MetricsPort             string
	ClickFlushSpec          string
}

// Load reads the configuration from the environment, after merging a .env
// file when one is present.
func Load() *Config {
	// A missing .env is fine; the variables may come from the environment.
	_ = godotenv.Load()

	return &Config{
		Port:                    getEnv("PORT", "8080"),
		Env:                     getEnv("ENV", "development"),
		LogLevel:                getEnv("LOG_LEVEL", "info"),
		PostgresConnStr:         getEnv("POSTGRES_CONN_STR", ""),
		MongoURI:                getEnv("MONGO_URI", ""),
		MongoDatabase:           getEnv("MONGO_DATABASE", "forum"),
		RedisURL:                getEnv("REDIS_URL", ""),
		NatsURL:                 getEnv("NATS_URL", ""),
		JWTSecret:               getEnv("JWT_SECRET", DefaultJWTSecret),
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
		MetricsPort:             getEnv("METRICS_PORT", "9090"),
		ClickFlushSpec:          getEnv("CLICK_FLUSH_SPEC", "@every 1m"),
	}
}

// Validate rejects settings that are only safe for local development.
func (c *Config) Validate() error {
	if c.Env != "development" && c.JWTSecret == DefaultJWTSecret {
		return ErrDefaultJWTSecret
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return strings.TrimSpace(value)
	}
	return defaultValue
}
