package config

import (
	"fmt"
	"os"
	"strconv"
)

const (
	EnvBatchWorkers = "BOON_BATCH_WORKERS"
	EnvBatchPrefix  = "BOON_BATCH_PREFIX"
)

// BatchConfig holds batch processing parameters.
type BatchConfig struct {
	Workers int    `toml:"workers"`
	Prefix  string `toml:"prefix"`
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *BatchConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *BatchConfig) Merge(overlay *BatchConfig) {
	if overlay.Workers != 0 {
		c.Workers = overlay.Workers
	}
	if overlay.Prefix != "" {
		c.Prefix = overlay.Prefix
	}
}

func (c *BatchConfig) loadDefaults() {
	if c.Workers == 0 {
		c.Workers = 4
	}
}

func (c *BatchConfig) loadEnv() {
	if v := os.Getenv(EnvBatchWorkers); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Workers = n
		}
	}
	if v := os.Getenv(EnvBatchPrefix); v != "" {
		c.Prefix = v
	}
}

func (c *BatchConfig) validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be positive")
	}
	return nil
}
