package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// LoadEnv loads variables from a .env file if present.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file found: %v", err)
	}
}

// GetEnv returns an environment variable or a default value.
func GetEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultVal
}

// GetIntEnv returns an int environment variable or a default value.
func GetIntEnv(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// PaystackSecretKey returns the provider secret used both for API calls and
// for webhook signature verification. Empty outside configured environments.
func PaystackSecretKey() string {
	return GetEnv("PAYSTACK_SECRET_KEY", "")
}

// PaystackBaseURL returns the provider API base URL.
func PaystackBaseURL() string {
	return GetEnv("PAYSTACK_BASE_URL", "https://api.paystack.co")
}

// IsProduction checks if the app runs in production mode.
func IsProduction() bool {
	return GetEnv("ENV", "development") == "production"
}
