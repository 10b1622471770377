package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	// Server
	Port string
	Env  string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT
	JWTSecret        string
	JWTExpirationDur time.Duration

	// How long the category engine waits after an external change
	// notification before re-reading the backing store.
	RefreshDebounce time.Duration
}

var appConfig *Config

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "medcast"),
		DBPassword: getEnv("DB_PASSWORD", "medcast"),
		DBName:     getEnv("DB_NAME", "medcast"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret: getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),
	}

	expStr := getEnv("JWT_EXPIRES_IN", "24h")
	expDur, err := time.ParseDuration(expStr)
	if err != nil {
		log.Printf("Warning: invalid JWT_EXPIRES_IN value '%s', falling back to 24h\n", expStr)
		expDur = 24 * time.Hour
	}
	config.JWTExpirationDur = expDur

	debounceStr := getEnv("CATEGORY_REFRESH_DEBOUNCE", "500ms")
	debounce, err := time.ParseDuration(debounceStr)
	if err != nil {
		log.Printf("Warning: invalid CATEGORY_REFRESH_DEBOUNCE value '%s', falling back to 500ms\n", debounceStr)
		debounce = 500 * time.Millisecond
	}
	config.RefreshDebounce = debounce

	appConfig = config
	return config, nil
}

// Get returns the application configuration.
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
