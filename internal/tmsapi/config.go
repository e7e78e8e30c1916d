package tmsapi

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds TMS order entry API connection parameters.
type Config struct {
	BaseURL   string `json:"base_url" toml:"base_url"`
	AuthToken string `json:"auth_token" toml:"auth_token"`
	Timeout   int    `json:"timeout" toml:"timeout"`
	RetryMax  int    `json:"retry_max" toml:"retry_max"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	BaseURL   string
	AuthToken string
	Timeout   string
	RetryMax  string
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
	if overlay.BaseURL != "" {
		c.BaseURL = overlay.BaseURL
	}
	if overlay.AuthToken != "" {
		c.AuthToken = overlay.AuthToken
	}
	if overlay.Timeout != 0 {
		c.Timeout = overlay.Timeout
	}
	if overlay.RetryMax != 0 {
		c.RetryMax = overlay.RetryMax
	}
}

func (c *Config) loadDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = "https://api.example.com"
	}
	if c.Timeout == 0 {
		c.Timeout = 30
	}
	if c.RetryMax == 0 {
		c.RetryMax = 3
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.BaseURL != "" {
		if v := os.Getenv(env.BaseURL); v != "" {
			c.BaseURL = v
		}
	}
	if env.AuthToken != "" {
		if v := os.Getenv(env.AuthToken); v != "" {
			c.AuthToken = v
		}
	}
	if env.Timeout != "" {
		if v := os.Getenv(env.Timeout); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				c.Timeout = n
			}
		}
	}
	if env.RetryMax != "" {
		if v := os.Getenv(env.RetryMax); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n >= 0 {
				c.RetryMax = n
			}
		}
	}
}

func (c *Config) validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base_url required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}
