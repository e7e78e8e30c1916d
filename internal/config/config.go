package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/shivanished/boon-pipeline/internal/tmsapi"
	"github.com/shivanished/boon-pipeline/pkg/storage"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvBoonEnv             = "BOON_ENV"
	EnvBoonShutdownTimeout = "BOON_SHUTDOWN_TIMEOUT"
	EnvBoonVersion         = "BOON_VERSION"
)

var storageEnv = &storage.Env{
	ContainerName:    "BOON_STORAGE_CONTAINER_NAME",
	ConnectionString: "BOON_STORAGE_CONNECTION_STRING",
	MaxListSize:      "BOON_STORAGE_MAX_LIST_SIZE",
}

var tmsEnv = &tmsapi.Env{
	BaseURL:   "BOON_TMS_BASE_URL",
	AuthToken: "BOON_TMS_AUTH_TOKEN",
	Timeout:   "BOON_TMS_TIMEOUT",
	RetryMax:  "BOON_TMS_RETRY_MAX",
}

// Config is the root configuration for the boon pipeline service.
type Config struct {
	Server          ServerConfig         `toml:"server"`
	Agent           gaconfig.AgentConfig `toml:"agent"`
	Storage         storage.Config       `toml:"storage"`
	TMS             tmsapi.Config        `toml:"tms"`
	Batch           BatchConfig          `toml:"batch"`
	API             APIConfig            `toml:"api"`
	ShutdownTimeout string               `toml:"shutdown_timeout"`
	Version         string               `toml:"version"`
}

// Env returns the BOON_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvBoonEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// StorageConfigured reports whether blob storage has a connection string,
// from file or environment. Storage is optional: local-directory runs
// never touch it, so an absent connection string is not a config error.
func (c *Config) StorageConfigured() bool {
	return c.Storage.ConnectionString != "" || os.Getenv(storageEnv.ConnectionString) != ""
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. If no config.toml exists, defaults and environment
// variables provide all configuration.
func Load() (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
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
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Agent.Merge(&overlay.Agent)
	c.Storage.Merge(&overlay.Storage)
	c.TMS.Merge(&overlay.TMS)
	c.Batch.Merge(&overlay.Batch)
	c.API.Merge(&overlay.API)
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
	if err := FinalizeAgent(&c.Agent); err != nil {
		return fmt.Errorf("agent: %w", err)
	}
	if c.StorageConfigured() {
		if err := c.Storage.Finalize(storageEnv); err != nil {
			return fmt.Errorf("storage: %w", err)
		}
	}
	if err := c.TMS.Finalize(tmsEnv); err != nil {
		return fmt.Errorf("tms: %w", err)
	}
	if err := c.Batch.Finalize(); err != nil {
		return fmt.Errorf("batch: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvBoonShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvBoonVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
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

func overlayPath() string {
	if env := os.Getenv(EnvBoonEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
