package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// LLM provider
	Provider       string // "openai" or "gemini"
	OpenAIAPIKey   string
	OpenAIBaseURL  string
	GeminiAPIKey   string
	Model          string
	MaxTokens      int
	TimeoutSeconds int

	// Uploads
	MaxUploadMB int

	// Frontend
	FrontendURL string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	provider := getEnvOrDefault("LLM_PROVIDER", "openai")

	defaultModel := "gpt-4o"
	if provider == "gemini" {
		defaultModel = "gemini-3-flash-preview"
	}

	cfg := &Config{
		Port:           getEnvOrDefault("PORT", "8080"),
		Env:            getEnvOrDefault("ENV", "development"),
		Provider:       provider,
		OpenAIAPIKey:   getEnvOrDefault("OPENAI_API_KEY", ""),
		OpenAIBaseURL:  getEnvOrDefault("OPENAI_BASE_URL", ""),
		GeminiAPIKey:   getEnvOrDefault("GEMINI_API_KEY", ""),
		Model:          getEnvOrDefault("LLM_MODEL", defaultModel),
		MaxTokens:      getEnvAsIntOrDefault("LLM_MAX_TOKENS", 1000),
		TimeoutSeconds: getEnvAsIntOrDefault("LLM_TIMEOUT_SECONDS", 60),
		MaxUploadMB:    getEnvAsIntOrDefault("MAX_UPLOAD_MB", 10),
		FrontendURL:    getEnvOrDefault("FRONTEND_URL", "http://localhost:8080"),
	}

	// A missing provider credential is deliberately not fatal here; it
	// surfaces as a provider-call failure on the first request.

	return cfg
}

// RequestTimeout bounds a single provider call.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// MaxUploadBytes is the multipart memory limit for the vision endpoint.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.Port)
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
