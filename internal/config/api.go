package config

import (
	"fmt"
	"os"

	"github.com/JaimeStill/unifix/pkg/formatting"
	"github.com/JaimeStill/unifix/pkg/middleware"
	"github.com/JaimeStill/unifix/pkg/pagination"
)

const (
	EnvAPIBasePath      = "UNIFIX_API_BASE_PATH"
	EnvAPIMaxUploadSize = "UNIFIX_API_MAX_UPLOAD_SIZE"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "UNIFIX_CORS_ENABLED",
	Origins:          "UNIFIX_CORS_ORIGINS",
	AllowedMethods:   "UNIFIX_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "UNIFIX_CORS_ALLOWED_HEADERS",
	ExposedHeaders:   "UNIFIX_CORS_EXPOSED_HEADERS",
	AllowCredentials: "UNIFIX_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "UNIFIX_CORS_MAX_AGE",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "UNIFIX_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "UNIFIX_PAGINATION_MAX_PAGE_SIZE",
}

// DefaultOrigins are the local front-end origins allowed when CORS is
// enabled without an explicit origin list.
var DefaultOrigins = []string{"http://localhost:5500", "http://localhost:5001"}

// APIConfig holds API routing, upload limits, CORS, and pagination settings.
type APIConfig struct {
	BasePath      string                `toml:"base_path"`
	MaxUploadSize string                `toml:"max_upload_size"`
	CORS          middleware.CORSConfig `toml:"cors"`
	Pagination    pagination.Config     `toml:"pagination"`
}

// MaxUploadSizeBytes returns MaxUploadSize parsed into bytes.
func (c *APIConfig) MaxUploadSizeBytes() int64 {
	size, _ := formatting.ParseBytes(c.MaxUploadSize)
	return size
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested CORS and pagination configs.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if c.CORS.Enabled && len(c.CORS.Origins) == 0 {
		c.CORS.Origins = DefaultOrigins
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxUploadSize != "" {
		c.MaxUploadSize = overlay.MaxUploadSize
	}

	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.MaxUploadSize == "" {
		c.MaxUploadSize = "25MB"
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv(EnvAPIBasePath); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv(EnvAPIMaxUploadSize); v != "" {
		c.MaxUploadSize = v
	}
}

func (c *APIConfig) validate() error {
	size, err := formatting.ParseBytes(c.MaxUploadSize)
	if err != nil {
		return fmt.Errorf("invalid max_upload_size: %w", err)
	}
	if size <= 0 {
		return fmt.Errorf("max_upload_size must be positive")
	}
	return nil
}
