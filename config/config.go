package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	LLM       LLMConfig
	Templates TemplatesConfig
	Output    OutputConfig
	Logging   LoggingConfig
}

type ServerConfig struct {
	Addr string
}

type LLMConfig struct {
	BaseURL    string
	APIKey     string
	Model      string
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
}

type TemplatesConfig struct {
	Dir string
}

type OutputConfig struct {
	Dir string
}

type LoggingConfig struct {
	Level string
	File  string
}

// Load reads configuration from the environment, with a .env file as an
// optional overlay. An empty LLM_API_KEY is allowed: the generator then
// serves demo outlines only.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Addr: getEnv("SERVER_ADDR", ":8000"),
		},
		LLM: LLMConfig{
			BaseURL:    getEnv("LLM_BASE_URL", "https://api.openai.com/v1"),
			APIKey:     getEnv("LLM_API_KEY", ""),
			Model:      getEnv("LLM_MODEL", "gpt-4o-mini"),
			Timeout:    time.Duration(getEnvInt("LLM_TIMEOUT_SECONDS", 120)) * time.Second,
			MaxRetries: getEnvInt("LLM_MAX_RETRIES", 3),
			RetryDelay: time.Duration(getEnvFloat("LLM_RETRY_DELAY", 1.0) * float64(time.Second)),
		},
		Templates: TemplatesConfig{
			Dir: getEnv("TEMPLATES_DIR", "templates"),
		},
		Output: OutputConfig{
			Dir: getEnv("OUTPUT_DIR", "output"),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  getEnv("LOG_FILE", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("SERVER_ADDR is required")
	}
	if c.LLM.MaxRetries < 1 {
		return fmt.Errorf("LLM_MAX_RETRIES must be at least 1")
	}
	if c.LLM.RetryDelay < 0 {
		return fmt.Errorf("LLM_RETRY_DELAY must not be negative")
	}
	if c.Templates.Dir == "" {
		return fmt.Errorf("TEMPLATES_DIR is required")
	}
	if c.Output.Dir == "" {
		return fmt.Errorf("OUTPUT_DIR is required")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}
