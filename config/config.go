package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/jsphweid/buzzer/constants"
)

// Config is everything the outer surfaces (CLI, server, stores) need.
// The core packages take no configuration.
type Config struct {
	LogLevel string
	LogFile  string

	LibraryBackend string // "dir" or "dynamodb"
	LibraryDir     string

	DynamoEndpoint string
	DynamoRegion   string
	DynamoTable    string

	OneShotBackend string // "memory" or "redis"
	RedisAddr      string
	RedisPassword  string
	RedisDB        int

	HTTPAddr   string
	SampleRate int
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// Load reads a .env file if there is one (existing env vars win) and fills
// in defaults for everything unset.
func Load() *Config {
	_ = godotenv.Load()
	return FromEnv()
}

func FromEnv() *Config {
	return &Config{
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFile:        getEnv("LOG_FILE", ""),
		LibraryBackend: getEnv("LIBRARY_BACKEND", "dir"),
		LibraryDir:     constants.GetLibraryDir(),
		DynamoEndpoint: getEnv("DYNAMODB_ENDPOINT", "http://localhost:8000"),
		DynamoRegion:   getEnv("DYNAMODB_REGION", "localhost"),
		DynamoTable:    getEnv("DYNAMODB_TABLE", constants.DynamoTable),
		OneShotBackend: getEnv("ONESHOT_BACKEND", "memory"),
		RedisAddr:      getEnv("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		RedisDB:        getEnvInt("REDIS_DB", 0),
		HTTPAddr:       getEnv("HTTP_ADDR", ":8080"),
		SampleRate:     getEnvInt("SAMPLE_RATE", constants.SampleRate),
	}
}
