// Package config resolves Prolific API settings from the process
// environment, with optional .env file support for local development.
package config

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
)

// DefaultBaseURL is the production Prolific API endpoint.
const DefaultBaseURL = "https://api.prolific.com/api/v1"

// Config holds the settings for Prolific API access.
// It is loaded once at startup and not mutated afterwards.
type Config struct {
	// APIKey authenticates requests to the Prolific API.
	APIKey string
	// BaseURL overrides the API endpoint, for staging or tests.
	BaseURL string
	// GeminiAPIKey is only required by the chat command.
	GeminiAPIKey string
}

// Load reads configuration from the environment.
// A .env file in the working directory is merged in when present.
func Load() *Config {
	// best effort, env vars win over the file
	_ = godotenv.Load()

	cfg := &Config{
		APIKey:       os.Getenv("PROLIFIC_API_KEY"),
		BaseURL:      os.Getenv("PROLIFIC_API_BASE_URL"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return cfg
}

// Validate returns an error if the required API key is absent.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return errors.New("PROLIFIC_API_KEY environment variable is required: set it in your .env file or environment")
	}
	return nil
}

// ValidateGemini returns an error if the Gemini API key is absent.
func (c *Config) ValidateGemini() error {
	if c.GeminiAPIKey == "" {
		return errors.New("GEMINI_API_KEY environment variable is required: set it in your .env file or environment")
	}
	return nil
}

// AuthHeader returns the Authorization header value for API requests.
func (c *Config) AuthHeader() string {
	return "Token " + c.APIKey
}
