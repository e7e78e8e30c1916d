package config

import (
	"os"

	"github.com/shivanished/boon-pipeline/pkg/middleware"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "BOON_CORS_ENABLED",
	Origins:          "BOON_CORS_ORIGINS",
	AllowedMethods:   "BOON_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "BOON_CORS_ALLOWED_HEADERS",
	AllowCredentials: "BOON_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "BOON_CORS_MAX_AGE",
}

// APIConfig holds API routing and CORS settings.
type APIConfig struct {
	BasePath string                `toml:"base_path"`
	CORS     middleware.CORSConfig `toml:"cors"`
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested CORS config.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.CORS.Finalize(corsEnv)
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	c.CORS.Merge(&overlay.CORS)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv("BOON_API_BASE_PATH"); v != "" {
		c.BasePath = v
	}
}
