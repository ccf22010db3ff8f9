package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Config represents application configuration
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Store    StoreConfig    `mapstructure:"store"`
	Log      LogConfig      `mapstructure:"log"`
}

// DatabaseConfig represents sqlite storage configuration
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// StoreConfig identifies the retail store being scheduled
type StoreConfig struct {
	ID string `mapstructure:"id"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	File  string `mapstructure:"file"`  // empty means console only
	Level string `mapstructure:"level"` // debug, info, warn, error
}

// Load loads configuration from file
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("database.path", "shift-planner.db")
	v.SetDefault("log.level", "info")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.shift-planner")
		v.AddConfigPath("/etc/shift-planner")
	}

	// Read environment variables
	v.AutomaticEnv()

	// Read config file; a missing file falls back to defaults
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}

	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn or error, got '%s'", c.Log.Level)
	}

	return nil
}

// ExpandEnvVars expands ${VAR} references in path-like fields
func (c *Config) ExpandEnvVars() {
	c.Database.Path = os.ExpandEnv(c.Database.Path)
	c.Log.File = os.ExpandEnv(c.Log.File)
}
