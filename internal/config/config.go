// Package config provides configuration loading and validation for the CLI
// and server. Provider credentials resolved here are passed explicitly into
// the analyzer and chat constructors; nothing below the command layer reads
// the environment.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jonathan/resume-analyzer/internal/llm"
)

// Config represents the application configuration. It can be loaded from a
// JSON file; missing values fall back to environment variables and then to
// defaults. All fields are optional; with no provider keys at all the
// engine runs in pure heuristic mode.
type Config struct {
	// Providers
	OpenAIKey   string `json:"openai_api_key,omitempty"`
	OpenAIModel string `json:"openai_model,omitempty"`
	GeminiKey   string `json:"gemini_api_key,omitempty"`
	GeminiModel string `json:"gemini_model,omitempty"`

	// Persistence (optional; analyses are not stored without it)
	DatabaseURL string `json:"database_url,omitempty"`

	// Server
	Port int `json:"port,omitempty"`

	// Behavior
	Verbose bool `json:"verbose,omitempty"`
}

// LoadConfig loads configuration from a JSON file.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv builds a Config from environment variables. Intended as the
// defaults argument to MergeWithDefaults.
func FromEnv() Config {
	port := 0
	if raw := os.Getenv("PORT"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			port = parsed
		}
	}

	return Config{
		OpenAIKey:   os.Getenv("OPENAI_API_KEY"),
		OpenAIModel: os.Getenv("OPENAI_MODEL"),
		GeminiKey:   os.Getenv("GEMINI_API_KEY"),
		GeminiModel: os.Getenv("GEMINI_MODEL"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Port:        port,
	}
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be in [0, 65535]")
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. CLI flags should be applied on top of the result.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.OpenAIKey == "" {
		result.OpenAIKey = defaults.OpenAIKey
	}
	if result.OpenAIModel == "" {
		result.OpenAIModel = defaults.OpenAIModel
	}
	if result.GeminiKey == "" {
		result.GeminiKey = defaults.GeminiKey
	}
	if result.GeminiModel == "" {
		result.GeminiModel = defaults.GeminiModel
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	// Bool fields: cannot distinguish unset from false, so flags win.

	return result
}

// Credentials returns the provider credentials for injection into the
// analyzer and chat constructors.
func (c *Config) Credentials() llm.Credentials {
	return llm.Credentials{
		OpenAIKey: c.OpenAIKey,
		GeminiKey: c.GeminiKey,
	}
}

// LLMConfig returns the provider configuration, applying any model
// overrides on top of the defaults.
func (c *Config) LLMConfig() *llm.Config {
	cfg := llm.DefaultConfig()
	if c.OpenAIModel != "" {
		cfg.OpenAIModel = c.OpenAIModel
	}
	if c.GeminiModel != "" {
		cfg.GeminiModel = c.GeminiModel
	}
	return cfg
}
