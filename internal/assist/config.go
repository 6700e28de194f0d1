package assist

import (
	"os"
	"strconv"
)

// Config holds configuration for the AI writing assistant.
// Disabled by default; an API key enables it.
type Config struct {
	Enabled   bool
	Endpoint  string
	APIKey    string
	Model     string
	MaxTokens int
	TimeoutMs int
}

// DefaultConfig returns an assistant Config with the feature disabled.
func DefaultConfig() Config {
	return Config{
		Enabled:   false,
		Endpoint:  "https://api.openai.com/v1",
		Model:     "gpt-3.5-turbo",
		MaxTokens: 500,
		TimeoutMs: 15000,
	}
}

// LoadConfig reads assistant configuration from environment variables,
// falling back to defaults for any unset values. Setting an API key
// enables the assistant.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("PLANWIZARD_OPENAI_API_KEY"); v != "" {
		cfg.APIKey = v
		cfg.Enabled = true
	}
	if v := os.Getenv("PLANWIZARD_OPENAI_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("PLANWIZARD_OPENAI_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("PLANWIZARD_OPENAI_MAX_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxTokens = n
		}
	}
	if v := os.Getenv("PLANWIZARD_OPENAI_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}

	return cfg
}
