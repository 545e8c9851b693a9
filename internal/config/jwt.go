package config

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultJWTExpirationHours is used when JWT_EXPIRATION_HOURS is unset.
const DefaultJWTExpirationHours = 24

// JWTConfig holds settings for signing and checking API tokens.
type JWTConfig struct {
	Secret          string
	ExpirationHours int
}

// newJWTConfig parses the JWT settings. An empty secret is allowed here so
// the CLI can run without one; ValidateServer rejects it.
func newJWTConfig(secret, expiration string) (*JWTConfig, error) {
	hours := DefaultJWTExpirationHours
	if s := strings.TrimSpace(expiration); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("invalid JWT_EXPIRATION_HOURS: %v", err)
		}
		hours = n
	}

	cfg := &JWTConfig{Secret: secret, ExpirationHours: hours}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *JWTConfig) normalize() error {
	if c.ExpirationHours < 1 {
		return fmt.Errorf("JWT_EXPIRATION_HOURS must be at least 1 hour, got: %d", c.ExpirationHours)
	}
	return nil
}
