package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIBaseURL     string
	SocketURL      string
	Environment    string
	RequestTimeout time.Duration
	DebounceDelay  time.Duration
	ChatTimeout    time.Duration
	PageLimit      int
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		APIBaseURL:     getEnv("API_BASE_URL", "http://localhost:4000"),
		SocketURL:      getEnv("SOCKET_URL", "ws://localhost:4000/message"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		RequestTimeout: getEnvAsDuration("REQUEST_TIMEOUT", 30*time.Second),
		DebounceDelay:  getEnvAsDuration("DEBOUNCE_DELAY", 300*time.Millisecond),
		ChatTimeout:    getEnvAsDuration("CHAT_PAGE_TIMEOUT", 5*time.Second),
		PageLimit:      getEnvAsInt("PAGE_LIMIT", 12),
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.Atoi(value)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		d, err := time.ParseDuration(value)
		if err == nil {
			return d
		}
	}
	return defaultValue
}
