package logger

import (
	"os"
	"strings"
)

type LoggerConfig struct {
	Level  string // "debug", "info", "warn", "error"
	Format string // "json", "text"
}

func DefaultConfig() *LoggerConfig {
	return &LoggerConfig{
		Level:  strings.ToLower(getEnv("LOG_LEVEL", "info")),
		Format: strings.ToLower(getEnv("LOG_FORMAT", "json")),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
