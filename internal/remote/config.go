package remote

import (
	"os"
	"strconv"
)

// Placeholder credential values. Shipping defaults that mean "no remote
// store": running with them is a normal local-only mode, not an error.
const (
	placeholderAPIKey    = "YOUR_API_KEY"
	placeholderProjectID = "YOUR_PROJECT_ID"
)

// Config holds all configuration for the remote plan store.
type Config struct {
	APIKey     string
	ProjectID  string
	Collection string
	BaseURL    string // Firestore REST endpoint; overridable for tests
	DebounceMs int
	TimeoutMs  int
	LogSync    bool
}

// DefaultConfig returns a Config with placeholder credentials, i.e. remote
// sync disabled.
func DefaultConfig() Config {
	return Config{
		APIKey:     placeholderAPIKey,
		ProjectID:  placeholderProjectID,
		Collection: "plans",
		BaseURL:    "https://firestore.googleapis.com/v1",
		DebounceMs: 500,
		TimeoutMs:  10000,
	}
}

// LoadConfig reads remote store configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("PLANWIZARD_FIREBASE_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("PLANWIZARD_FIREBASE_PROJECT_ID"); v != "" {
		cfg.ProjectID = v
	}
	if v := os.Getenv("PLANWIZARD_SYNC_DEBOUNCE_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.DebounceMs = n
		}
	}
	if v := os.Getenv("PLANWIZARD_SYNC_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("PLANWIZARD_LOG_SYNC"); v != "" {
		cfg.LogSync, _ = strconv.ParseBool(v)
	}

	return cfg
}

// Configured reports whether usable credentials are present. False means
// the client operates in local-only mode: loads return nothing, saves
// surface a passive status message.
func (c Config) Configured() bool {
	return c.APIKey != "" && c.ProjectID != "" &&
		c.APIKey != placeholderAPIKey && c.ProjectID != placeholderProjectID
}
