package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                     string
	DBUrl                    string
	JWTSecret                string
	FrontendOrigin           string
	AppEnv                   string
	EnableDocs               bool
	SubscriptionDurationDays int
	TrainerSubscriptionPrice float64
	ClientActivationPrice    float64
	DefaultAdminEmail        string
	DefaultAdminPassword     string
	DefaultAdminName         string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	jwtSecret, exists := os.LookupEnv("JWT_SECRET")
	if !exists || jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return &Config{
		Port:                     getEnv("PORT", "8080"),
		DBUrl:                    getEnv("DB_URL", ""),
		JWTSecret:                jwtSecret,
		FrontendOrigin:           getEnv("FRONTEND_ORIGIN", "http://localhost:5173"),
		AppEnv:                   normalizeEnv(getEnv("APP_ENV", "production")),
		EnableDocs:               getEnvBool("ENABLE_API_DOCS", false),
		SubscriptionDurationDays: getEnvInt("SUBSCRIPTION_DURATION_DAYS", 30),
		TrainerSubscriptionPrice: getEnvFloat("TRAINER_SUBSCRIPTION_PRICE", 6000),
		ClientActivationPrice:    getEnvFloat("CLIENT_ACTIVATION_PRICE", 6000),
		DefaultAdminEmail:        getEnv("DEFAULT_ADMIN_EMAIL", ""),
		DefaultAdminPassword:     getEnv("DEFAULT_ADMIN_PASSWORD", ""),
		DefaultAdminName:         getEnv("DEFAULT_ADMIN_NAME", "Administrator"),
	}, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback
	}

	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func getEnvInt(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func getEnvFloat(key string, fallback float64) float64 {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func normalizeEnv(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "dev", "develop", "development", "local":
		return "development"
	case "prod", "production":
		return "production"
	case "stage", "staging":
		return "staging"
	case "test", "testing":
		return "test"
	default:
		return strings.ToLower(strings.TrimSpace(value))
	}
}

func (c *Config) DocsEnabled() bool {
	return c != nil && c.EnableDocs && c.AppEnv == "development"
}
