package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port       string
	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string
	JWTSecret  string

	GroqAPIKey string
	GroqModel  string

	AmazonBaseURL   string
	FlipkartBaseURL string

	// Optional offer cache. Disabled when MinIOEndpoint is empty.
	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOBucket    string
}

// LoadConfig reads configuration from the environment. Secrets have no
// embedded defaults; missing required values are startup errors.
func LoadConfig() (Config, error) {
	// Host environment still applies when there is no .env file.
	_ = godotenv.Load()

	cfg := Config{
		Port:            getEnv("PORT", "8000"),
		DBUser:          getEnv("DB_USER", ""),
		DBPassword:      getEnv("DB_PASSWORD", ""),
		DBHost:          getEnv("DB_HOST", "localhost"),
		DBPort:          getEnv("DB_PORT", "5432"),
		DBName:          getEnv("DB_NAME", "dealbot"),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		GroqAPIKey:      getEnv("GROQ_API_KEY", ""),
		GroqModel:       getEnv("GROQ_MODEL", "llama3-8b-8192"),
		AmazonBaseURL:   getEnv("AMAZON_BASE_URL", "https://www.amazon.in"),
		FlipkartBaseURL: getEnv("FLIPKART_BASE_URL", "https://www.flipkart.com"),
		MinIOEndpoint:   getEnv("MINIO_ENDPOINT", ""),
		MinIOAccessKey:  getEnv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey:  getEnv("MINIO_SECRET_KEY", ""),
		MinIOBucket:     getEnv("MINIO_BUCKET", "dealbot-offers"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.GroqAPIKey == "" {
		return Config{}, fmt.Errorf("GROQ_API_KEY is required")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return fallback
}
