// Package config provides application configuration loading and management.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration values loaded from file or
// environment variables.
type Config struct {
	Env            string        `mapstructure:"APP_ENV"`
	StorageBackend string        `mapstructure:"STORAGE_BACKEND"`
	StoragePath    string        `mapstructure:"STORAGE_PATH"`
	RedisURL       string        `mapstructure:"REDIS_URL"`
	SweepInterval  time.Duration `mapstructure:"SWEEP_INTERVAL"`
}

// LoadConfig loads application configuration from file and environment
// variables, falling back to development defaults.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.AddConfigPath(".")
	v.AddConfigPath("..")
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.AutomaticEnv()

	// The config file is optional; environment and defaults suffice.
	_ = v.ReadInConfig()

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("STORAGE_BACKEND", "memory")
	v.SetDefault("STORAGE_PATH", "data")
	v.SetDefault("REDIS_URL", "localhost:6379")
	v.SetDefault("SWEEP_INTERVAL", time.Minute)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate ensures required configuration values are present and coherent.
func (c *Config) Validate() error {
	switch c.StorageBackend {
	case "memory", "file", "redis", "sqlite":
	default:
		return fmt.Errorf("STORAGE_BACKEND must be one of memory, file, redis, sqlite (got %q)", c.StorageBackend)
	}
	if (c.StorageBackend == "file" || c.StorageBackend == "sqlite") && c.StoragePath == "" {
		return fmt.Errorf("STORAGE_PATH is required for the %s backend", c.StorageBackend)
	}
	if c.StorageBackend == "redis" && c.RedisURL == "" {
		return fmt.Errorf("REDIS_URL is required for the redis backend")
	}
	if c.SweepInterval <= 0 {
		return fmt.Errorf("SWEEP_INTERVAL must be positive (got %s)", c.SweepInterval)
	}
	return nil
}
