package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort       string
	MongoURI       string
	MongoDBName    string
	RedisAddress   string
	NATSURL        string
	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOBucket    string
	MinIOUseSSL    bool
	JWTSecret      string
	SMTPHost       string
	SMTPPort       int
	SMTPEmail      string
	SMTPPassword   string
}

func Load() (*Config, error) {
	// Environment variables are the source of truth; .env is a convenience
	// for local runs.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	minioUseSSL, err := strconv.ParseBool(getEnv("MINIO_USE_SSL", "false"))
	if err != nil {
		log.Printf("Warning: invalid MINIO_USE_SSL value, defaulting to false: %v", err)
		minioUseSSL = false
	}

	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		log.Printf("Warning: invalid SMTP_PORT value, defaulting to 587: %v", err)
		smtpPort = 587
	}

	cfg := &Config{
		HTTPPort:       getEnv("HTTP_PORT", "8083"),
		MongoURI:       getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:    getEnv("MONGO_DB_NAME", "product_service"),
		RedisAddress:   getEnv("REDIS_ADDRESS", "localhost:6379"),
		NATSURL:        getEnv("NATS_URL", "nats://localhost:4222"),
		MinIOEndpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
		MinIOAccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		MinIOSecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
		MinIOBucket:    getEnv("MINIO_BUCKET", "product-images"),
		MinIOUseSSL:    minioUseSSL,
		JWTSecret:      getEnv("JWT_SECRET", ""),
		SMTPHost:       getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:       smtpPort,
		SMTPEmail:      getEnv("SMTP_EMAIL", ""),
		SMTPPassword:   getEnv("SMTP_PASSWORD", ""),
	}

	if cfg.JWTSecret == "" {
		log.Fatal("FATAL: JWT_SECRET is not set. This is required for security.")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
