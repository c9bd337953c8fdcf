package auth

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const minSigningKeyLength = 32

// Config holds credential signing and password hashing parameters.
type Config struct {
	SigningKey string `toml:"signing_key"`
	Issuer     string `toml:"issuer"`
	TokenTTL   string `toml:"token_ttl"`
	BcryptCost int    `toml:"bcrypt_cost"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	SigningKey string
	Issuer     string
	TokenTTL   string
	BcryptCost string
}

// TokenTTLDuration returns TokenTTL as a time.Duration.
func (c *Config) TokenTTLDuration() time.Duration {
	d, _ := time.ParseDuration(c.TokenTTL)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.SigningKey != "" {
		c.SigningKey = overlay.SigningKey
	}
	if overlay.Issuer != "" {
		c.Issuer = overlay.Issuer
	}
	if overlay.TokenTTL != "" {
		c.TokenTTL = overlay.TokenTTL
	}
	if overlay.BcryptCost != 0 {
		c.BcryptCost = overlay.BcryptCost
	}
}

func (c *Config) loadDefaults() {
	if c.TokenTTL == "" {
		c.TokenTTL = "1h"
	}
	if c.BcryptCost == 0 {
		c.BcryptCost = bcrypt.DefaultCost
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.SigningKey != "" {
		if v := os.Getenv(env.SigningKey); v != "" {
			c.SigningKey = v
		}
	}
	if env.Issuer != "" {
		if v := os.Getenv(env.Issuer); v != "" {
			c.Issuer = v
		}
	}
	if env.TokenTTL != "" {
		if v := os.Getenv(env.TokenTTL); v != "" {
			c.TokenTTL = v
		}
	}
	if env.BcryptCost != "" {
		if v := os.Getenv(env.BcryptCost); v != "" {
			if cost, err := strconv.Atoi(v); err == nil {
				c.BcryptCost = cost
			}
		}
	}
}

func (c *Config) validate() error {
	if c.SigningKey == "" {
		return fmt.Errorf("signing_key required")
	}
	if len(c.SigningKey) < minSigningKeyLength {
		return fmt.Errorf("signing_key must be at least %d bytes", minSigningKeyLength)
	}
	ttl, err := time.ParseDuration(c.TokenTTL)
	if err != nil {
		return fmt.Errorf("invalid token_ttl: %w", err)
	}
	if ttl <= 0 {
		return fmt.Errorf("token_ttl must be positive")
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("bcrypt_cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	return nil
}
