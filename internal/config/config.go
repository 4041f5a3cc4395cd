package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	LogFormat    string
	CORSOrigins  []string

	// Storage configuration
	PostgresDBURL string

	// Shop identity stamped onto every invoice at creation
	ShopName   string
	GPayNumber string

	// Thank-you message generation
	GeminiAPIKey  string
	GeminiModelID string
	GeminiTimeout time.Duration
}

// LoadConfig loads the application configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading .env file. Using environment variables.")
	}

	// Create and populate config
	config := &Config{
		// Server configuration
		Port:         getEnvInt("PORT", 8080),
		ReadTimeout:  time.Duration(getEnvInt("READ_TIMEOUT", 15)) * time.Second,
		WriteTimeout: time.Duration(getEnvInt("WRITE_TIMEOUT", 30)) * time.Second,
		LogFormat:    getEnvString("LOG_FORMAT", "json"),
		CORSOrigins:  getEnvStringSlice("CORS_ORIGINS", nil),

		// Storage configuration
		PostgresDBURL: os.Getenv("POSTGRES_DB_URL"),

		// Shop identity
		ShopName:   getEnvString("SHOP_NAME", "Ozone Graphics"),
		GPayNumber: getEnvString("GPAY_NUMBER", ""),

		// Thank-you message generation
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiModelID: getEnvString("GEMINI_MODEL_ID", "gemini-2.5-flash"),
		GeminiTimeout: time.Duration(getEnvInt("GEMINI_TIMEOUT", 30)) * time.Second,
	}

	// Validate critical configuration
	validateConfig(config)

	return config, nil
}

// validateConfig checks if critical configuration values are set and logs warnings if they're missing
func validateConfig(config *Config) {
	// Check if the database URL is provided
	if config.PostgresDBURL == "" {
		log.Println("Warning: No POSTGRES_DB_URL provided. Invoice storage will be unavailable.")
	}

	// Check if the Gemini API key is provided
	if config.GeminiAPIKey == "" {
		log.Println("Warning: No Gemini API key provided. Thank-you messages will use the fallback text.")
	}

	// Check if the GPay number is provided
	if config.GPayNumber == "" {
		log.Println("Warning: No GPAY_NUMBER provided. Invoices will have no payment number.")
	}
}

// getEnvInt gets an integer from an environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}

	return value
}

// getEnvString gets a string from an environment variable with a default value
func getEnvString(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvStringSlice gets a string slice from a comma-separated environment variable
func getEnvStringSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	return strings.Split(valueStr, ",")
}
