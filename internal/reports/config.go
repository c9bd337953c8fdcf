package reports

import (
	"fmt"
	"os"
	"time"
)

// Config holds report presentation settings.
type Config struct {
	Title      string `toml:"title"`
	FineAmount string `toml:"fine_amount"`
	TimeZone   string `toml:"time_zone"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Title      string
	FineAmount string
	TimeZone   string
}

// Location returns the time zone report timestamps are printed in.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
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
	if overlay.Title != "" {
		c.Title = overlay.Title
	}
	if overlay.FineAmount != "" {
		c.FineAmount = overlay.FineAmount
	}
	if overlay.TimeZone != "" {
		c.TimeZone = overlay.TimeZone
	}
}

func (c *Config) loadDefaults() {
	if c.Title == "" {
		c.Title = "Uniform Violation Report"
	}
	if c.FineAmount == "" {
		c.FineAmount = "Rs. 50"
	}
	if c.TimeZone == "" {
		c.TimeZone = "UTC"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Title != "" {
		if v := os.Getenv(env.Title); v != "" {
			c.Title = v
		}
	}
	if env.FineAmount != "" {
		if v := os.Getenv(env.FineAmount); v != "" {
			c.FineAmount = v
		}
	}
	if env.TimeZone != "" {
		if v := os.Getenv(env.TimeZone); v != "" {
			c.TimeZone = v
		}
	}
}

func (c *Config) validate() error {
	if _, err := time.LoadLocation(c.TimeZone); err != nil {
		return fmt.Errorf("invalid time_zone: %w", err)
	}
	return nil
}
