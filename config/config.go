package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port   string
	DBName string

	UseDummyData bool // serve canned content instead of calling the text API

	OpenAIKey   string
	OpenAIURL   string
	OpenAIModel string

	GenMaxAttempts  int // attempts before giving up on rate-limited generation
	GenRetryDelayMs int // fixed wait between rate-limited attempts
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:   getEnv("PORT", "3000"),
		DBName: getEnv("DB_NAME", "quizapi"),

		UseDummyData: getEnvBool("USE_DUMMY_DATA", false),

		OpenAIKey:   getEnv("OPENAI_API_KEY", ""),
		OpenAIURL:   getEnv("OPENAI_API_URL", "https://api.openai.com/v1/chat/completions"),
		OpenAIModel: getEnv("OPENAI_MODEL", "gpt-3.5-turbo"),

		GenMaxAttempts:  getEnvInt("GEN_MAX_ATTEMPTS", 5),
		GenRetryDelayMs: getEnvInt("GEN_RETRY_DELAY_MS", 2000),
	}

	// Validate critical configuration
	if !AppConfig.UseDummyData && AppConfig.OpenAIKey == "" {
		log.Println("Warning: OPENAI_API_KEY is not set and dummy mode is off. Generation requests will fail.")
	}
	if AppConfig.UseDummyData {
		log.Println("Dummy mode enabled: serving canned quiz content.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}

// getEnvBool retrieves an environment variable as a boolean or returns the default boolean value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to bool: %v", key, err)
		return defaultValue
	}
	return boolValue
}
