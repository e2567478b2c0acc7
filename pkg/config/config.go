package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	Exmplr ExmplrConfig
	OpenAI OpenAIConfig
	Chat   ChatConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host string
	Port int
	Env  string
}

// ExmplrConfig holds the trials search endpoint configuration.
type ExmplrConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// OpenAIConfig holds the extraction oracle configuration.
type OpenAIConfig struct {
	APIKey string
	Model  string
}

// ChatConfig holds conversation tuning knobs.
type ChatConfig struct {
	// HistoryWindow caps how many of the most recent transcript messages
	// are sent to the oracle per turn. Zero means the full transcript.
	HistoryWindow int
}

// Load reads configuration from environment variables. Missing credentials
// for either outbound service are a startup error.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
			Env:  getEnv("APP_ENV", "development"),
		},
		Exmplr: ExmplrConfig{
			BaseURL: os.Getenv("EXMPLR_API_URL"),
			APIKey:  os.Getenv("EXMPLR_API_KEY"),
			Timeout: time.Duration(getEnvAsInt("SEARCH_TIMEOUT_SECONDS", 20)) * time.Second,
		},
		OpenAI: OpenAIConfig{
			APIKey: os.Getenv("OPENAI_API_KEY"),
			Model:  getEnv("OPENAI_MODEL", "gpt-4"),
		},
		Chat: ChatConfig{
			HistoryWindow: getEnvAsInt("HISTORY_WINDOW", 0),
		},
	}
	if cfg.Exmplr.BaseURL == "" || cfg.Exmplr.APIKey == "" {
		return nil, fmt.Errorf("EXMPLR_API_URL or EXMPLR_API_KEY environment variable is not set")
	}
	if cfg.OpenAI.APIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is not set")
	}
	return cfg, nil
}

// Addr returns the listen address for the HTTP server.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
