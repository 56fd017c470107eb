package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// AI upstream
	AIAPIKey   string
	AIModel    string
	AIEndpoint string

	// Frontend
	FrontendURL string
}

const (
	// DefaultAIEndpoint is the base URL of the generative-language API.
	DefaultAIEndpoint = "https://generativelanguage.googleapis.com"

	// DefaultAIModel is the model every relay call targets.
	DefaultAIModel = "gemini-2.5-flash-preview-05-20"
)

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port: getEnvOrDefault("PORT", "8080"),
		Env:  getEnvOrDefault("ENV", "development"),
		// AI_API_KEY is deliberately not required at startup: the relay
		// reports a configuration error per request when it is missing.
		AIAPIKey:    os.Getenv("AI_API_KEY"),
		AIModel:     getEnvOrDefault("AI_MODEL", DefaultAIModel),
		AIEndpoint:  getEnvOrDefault("AI_ENDPOINT", DefaultAIEndpoint),
		FrontendURL: getEnvOrDefault("FRONTEND_URL", "http://localhost:5173"),
	}

	return cfg
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}
