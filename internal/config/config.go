package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the process-wide settings. It is loaded once at startup and
// read-only afterwards; every component receives it explicitly instead of
// reading environment variables on its own.
type Config struct {
	Model struct {
		Provider       string `mapstructure:"provider"`        // "ollama", "openai" or "gemini"
		Name           string `mapstructure:"name"`            // Model identifier, e.g. "llava:13b"
		OllamaURL      string `mapstructure:"ollama_url"`      // Base URL of the Ollama endpoint
		OpenaiBaseURL  string `mapstructure:"openai_base_url"` // Optional override for OpenAI-compatible endpoints
		OpenaiApiKey   string `mapstructure:"openai_api_key"`
		GeminiApiKey   string `mapstructure:"gemini_api_key"`
		MaxFrames      int    `mapstructure:"max_frames"`      // Cap on forwarded video preview frames
		TimeoutSeconds int    `mapstructure:"timeout_seconds"` // Outbound request timeout
	} `mapstructure:"model"`

	Server struct {
		Addr string `mapstructure:"addr"`
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`
}

// Timeout returns the outbound request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Model.TimeoutSeconds) * time.Second
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".") // Look for config.yaml in the current directory

	// Defaults match the reference deployment: a local Ollama with a
	// llava-class vision model.
	viper.SetDefault("model.provider", "ollama")
	viper.SetDefault("model.name", "llava:13b")
	viper.SetDefault("model.ollama_url", "http://localhost:11434")
	viper.SetDefault("model.max_frames", 8)
	viper.SetDefault("model.timeout_seconds", 600)
	viper.SetDefault("server.addr", "0.0.0.0")
	viper.SetDefault("server.port", "8000")

	viper.AutomaticEnv()

	// Explicit bindings so the well-known environment variables work without
	// a prefix or a config file.
	viper.BindEnv("model.provider", "MODEL_PROVIDER")
	viper.BindEnv("model.name", "MODEL_NAME")
	viper.BindEnv("model.ollama_url", "OLLAMA_URL")
	viper.BindEnv("model.openai_base_url", "OPENAI_BASE_URL")
	viper.BindEnv("model.openai_api_key", "OPENAI_API_KEY")
	viper.BindEnv("model.gemini_api_key", "GEMINI_API_KEY")
	viper.BindEnv("model.max_frames", "MAX_FRAMES")
	viper.BindEnv("model.timeout_seconds", "REQ_TIMEOUTS")

	if err := viper.ReadInConfig(); err != nil {
		// A missing config file is fine; env vars and defaults cover everything.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	config.Model.OllamaURL = strings.TrimSuffix(config.Model.OllamaURL, "/")

	if config.Model.MaxFrames < 0 {
		return nil, fmt.Errorf("max_frames must not be negative, got %d", config.Model.MaxFrames)
	}
	if config.Model.TimeoutSeconds <= 0 {
		return nil, fmt.Errorf("timeout_seconds must be positive, got %d", config.Model.TimeoutSeconds)
	}

	return &config, nil
}
