// Package config loads the service configuration from TOML files and
// UNIFIX_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/unifix/internal/auth"
	"github.com/JaimeStill/unifix/internal/reports"
	"github.com/JaimeStill/unifix/pkg/database"
	"github.com/JaimeStill/unifix/pkg/openapi"
	"github.com/JaimeStill/unifix/pkg/storage"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvUnifixEnv             = "UNIFIX_ENV"
	EnvUnifixShutdownTimeout = "UNIFIX_SHUTDOWN_TIMEOUT"
	EnvUnifixVersion         = "UNIFIX_VERSION"
	EnvUnifixLogLevel        = "UNIFIX_LOG_LEVEL"
)

var databaseEnv = &database.Env{
	Host:            "UNIFIX_DB_HOST",
	Port:            "UNIFIX_DB_PORT",
	Name:            "UNIFIX_DB_NAME",
	User:            "UNIFIX_DB_USER",
	Password:        "UNIFIX_DB_PASSWORD",
	SSLMode:         "UNIFIX_DB_SSL_MODE",
	MaxOpenConns:    "UNIFIX_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "UNIFIX_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "UNIFIX_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "UNIFIX_DB_CONN_TIMEOUT",
}

var storageEnv = &storage.Env{
	ContainerName:    "UNIFIX_STORAGE_CONTAINER_NAME",
	ConnectionString: "UNIFIX_STORAGE_CONNECTION_STRING",
	ServiceURL:       "UNIFIX_STORAGE_SERVICE_URL",
}

var authEnv = &auth.Env{
	SigningKey: "UNIFIX_AUTH_SIGNING_KEY",
	Issuer:     "UNIFIX_AUTH_ISSUER",
	TokenTTL:   "UNIFIX_AUTH_TOKEN_TTL",
	BcryptCost: "UNIFIX_AUTH_BCRYPT_COST",
}

var reportEnv = &reports.Env{
	Title:      "UNIFIX_REPORT_TITLE",
	FineAmount: "UNIFIX_REPORT_FINE_AMOUNT",
	TimeZone:   "UNIFIX_REPORT_TIME_ZONE",
}

var openapiEnv = &openapi.ConfigEnv{
	Title:       "UNIFIX_OPENAPI_TITLE",
	Description: "UNIFIX_OPENAPI_DESCRIPTION",
}

// Config is the root configuration for the Unifix service.
type Config struct {
	Server          ServerConfig    `toml:"server"`
	Database        database.Config `toml:"database"`
	Storage         storage.Config  `toml:"storage"`
	API             APIConfig       `toml:"api"`
	Auth            auth.Config     `toml:"auth"`
	Report          reports.Config  `toml:"report"`
	OpenAPI         openapi.Config  `toml:"openapi"`
	LogLevel        string          `toml:"log_level"`
	ShutdownTimeout string          `toml:"shutdown_timeout"`
	Version         string          `toml:"version"`
}

// Env returns the UNIFIX_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvUnifixEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. If no config.toml exists, defaults and environment
// variables provide all configuration.
func Load() (*Config, error) {
	return LoadFrom(".")
}

// LoadFrom behaves like Load, resolving config files relative to dir.
func LoadFrom(dir string) (*Config, error) {
	cfg := &Config{}

	base := filepath.Join(dir, BaseConfigFile)
	if _, err := os.Stat(base); err == nil {
		loaded, err := load(base)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(dir); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.LogLevel != "" {
		c.LogLevel = overlay.LogLevel
	}
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
	c.API.Merge(&overlay.API)
	c.Auth.Merge(&overlay.Auth)
	c.Report.Merge(&overlay.Report)
	c.OpenAPI.Merge(&overlay.OpenAPI)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if err := c.Auth.Finalize(authEnv); err != nil {
		return fmt.Errorf("auth: %w", err)
	}
	if err := c.Report.Finalize(reportEnv); err != nil {
		return fmt.Errorf("report: %w", err)
	}
	if err := c.OpenAPI.Finalize(openapiEnv); err != nil {
		return fmt.Errorf("openapi: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvUnifixLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvUnifixShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvUnifixVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath(dir string) string {
	if env := os.Getenv(EnvUnifixEnv); env != "" {
		path := filepath.Join(dir, fmt.Sprintf(OverlayConfigPattern, env))
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
