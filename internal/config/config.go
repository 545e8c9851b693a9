// Package config reads runtime settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jonathan/career-navigator/internal/llm"
)

// DefaultPort is used when PORT is unset.
const DefaultPort = 8080

// Config holds everything the CLI and API server need to start.
// Values come from the environment (a .env file is loaded by main first).
type Config struct {
	Provider        llm.Provider
	GeminiAPIKey    string
	AnthropicAPIKey string
	Model           string // optional override for the standard tier

	StoreURI string // MONGODB_URI, falling back to DATABASE_URL

	PasswordSalt string
	LogMode      string
	Port         int

	JWT *JWTConfig
}

// Load reads configuration from environment variables. It only fails on
// malformed values; missing required values are reported by Validate.
func Load() (*Config, error) {
	provider, err := llm.ParseProvider(os.Getenv("LLM_PROVIDER"))
	if err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	port := DefaultPort
	if s := strings.TrimSpace(os.Getenv("PORT")); s != "" {
		port, err = strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("config error: invalid PORT: %v", err)
		}
	}

	jwtCfg, err := newJWTConfig(os.Getenv("JWT_SECRET"), os.Getenv("JWT_EXPIRATION_HOURS"))
	if err != nil {
		return nil, err
	}

	storeURI := os.Getenv("MONGODB_URI")
	if storeURI == "" {
		storeURI = os.Getenv("DATABASE_URL")
	}

	cfg := &Config{
		Provider:        provider,
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		Model:           strings.TrimSpace(os.Getenv("LLM_MODEL")),
		StoreURI:        strings.TrimSpace(storeURI),
		PasswordSalt:    os.Getenv("PASSWORD_SALT"),
		LogMode:         os.Getenv("LOG_MODE"),
		Port:            port,
		JWT:             jwtCfg,
	}
	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	if c.PasswordSalt == "" {
		c.PasswordSalt = DefaultPasswordSalt
	}
	if c.LogMode == "" {
		c.LogMode = "dev"
	}
}

// Validate checks that the provider key and the store location are present.
func (c *Config) Validate() error {
	if c.APIKey() == "" {
		switch c.Provider {
		case llm.ProviderAnthropic:
			return fmt.Errorf("config error: ANTHROPIC_API_KEY is required for provider %s", c.Provider)
		default:
			return fmt.Errorf("config error: GEMINI_API_KEY is required for provider %s", c.Provider)
		}
	}
	if c.StoreURI == "" {
		return fmt.Errorf("config error: MONGODB_URI or DATABASE_URL is required")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config error: PORT out of range: %d", c.Port)
	}
	return nil
}

// ValidateServer additionally requires a JWT secret.
func (c *Config) ValidateServer() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.JWT == nil || c.JWT.Secret == "" {
		return fmt.Errorf("config error: JWT_SECRET is required to serve the API")
	}
	return nil
}

// APIKey returns the key for the configured provider.
func (c *Config) APIKey() string {
	if c.Provider == llm.ProviderAnthropic {
		return c.AnthropicAPIKey
	}
	return c.GeminiAPIKey
}

// LLM returns the model configuration for the provider, with the optional
// model override applied to the standard tier.
func (c *Config) LLM() *llm.Config {
	cfg := llm.ConfigFor(c.Provider)
	if c.Model != "" {
		cfg = cfg.WithModel(llm.TierStandard, c.Model)
	}
	return cfg
}

// Passwords returns the password hasher for the configured salt.
func (c *Config) Passwords() *PasswordConfig {
	return NewPasswordConfig(c.PasswordSalt)
}
