// Package config handles configuration loading and management for vegaswarm.
// It supports XDG config paths, project-level overrides, and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for vegaswarm.
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Definitions DefinitionsConfig `mapstructure:"definitions"`
	Log         LogConfig         `mapstructure:"log"`
}

// ServerConfig holds HTTP bridge settings.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig holds audit store settings. An empty Path selects the
// default XDG data location.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// DefinitionsConfig holds swarm definition loading settings. An empty Dir
// disables definition loading.
type DefinitionsConfig struct {
	Dir   string `mapstructure:"dir"`
	Watch bool   `mapstructure:"watch"`
}

// LogConfig holds debug logging settings.
type LogConfig struct {
	Debug bool   `mapstructure:"debug"`
	File  string `mapstructure:"file"`
}

// Load loads configuration from XDG paths, project overrides, and environment variables.
// Precedence (highest to lowest):
// 1. Environment variables (VEGASWARM_*)
// 2. Project config (.vegaswarm.yaml in current directory or parent)
// 3. User config (~/.config/vegaswarm/config.yaml)
// 4. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Load user config from XDG path
	userConfigDir := getUserConfigDir()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(userConfigDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading user config: %w", err)
		}
	}

	// Load project config if present
	projectConfig := findProjectConfig()
	if projectConfig != "" {
		projectViper := viper.New()
		projectViper.SetConfigFile(projectConfig)
		if err := projectViper.ReadInConfig(); err == nil {
			// Merge project config (takes precedence)
			if err := v.MergeConfigMap(projectViper.AllSettings()); err != nil {
				return nil, fmt.Errorf("merging project config: %w", err)
			}
		}
	}

	// Environment variable overrides
	v.AutomaticEnv()

	// Map specific environment variables
	v.BindEnv("server.host", "VEGASWARM_HOST")
	v.BindEnv("server.port", "VEGASWARM_PORT")
	v.BindEnv("database.path", "VEGASWARM_DB")
	v.BindEnv("definitions.dir", "VEGASWARM_DEFS")
	v.BindEnv("log.debug", "VEGASWARM_DEBUG")
	v.BindEnv("log.file", "VEGASWARM_LOG_FILE")

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	// Expand ${VAR} references in paths
	cfg.Database.Path = expandEnv(cfg.Database.Path)
	cfg.Definitions.Dir = expandEnv(cfg.Definitions.Dir)
	cfg.Log.File = expandEnv(cfg.Log.File)

	return cfg, nil
}

// LoadFromPath loads configuration from a specific file, ignoring the
// XDG and project search paths.
func LoadFromPath(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.Database.Path = expandEnv(cfg.Database.Path)
	cfg.Definitions.Dir = expandEnv(cfg.Definitions.Dir)
	cfg.Log.File = expandEnv(cfg.Log.File)

	return cfg, nil
}

// GetUserConfigPath returns the path to the user config file.
func GetUserConfigPath() string {
	return filepath.Join(getUserConfigDir(), "config.yaml")
}

// setDefaults configures default values.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8350)
	v.SetDefault("server.shutdown_timeout", "5s")

	// Database defaults; empty means the XDG data path
	v.SetDefault("database.path", "")

	// Definition defaults; empty dir disables loading
	v.SetDefault("definitions.dir", "")
	v.SetDefault("definitions.watch", true)

	// Logging defaults
	v.SetDefault("log.debug", false)
	v.SetDefault("log.file", "")
}

// getUserConfigDir returns the XDG config directory for vegaswarm.
func getUserConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "vegaswarm")
	}

	// Fall back to ~/.config/vegaswarm
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "vegaswarm")
	}
	return filepath.Join(home, ".config", "vegaswarm")
}

// findProjectConfig searches for .vegaswarm.yaml in the current directory and parents.
func findProjectConfig() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		configPath := filepath.Join(cwd, ".vegaswarm.yaml")
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(cwd)
		if parent == cwd {
			break
		}
		cwd = parent
	}

	return ""
}

// expandEnv expands ${VAR} references in a string.
func expandEnv(s string) string {
	return os.ExpandEnv(s)
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "127.0.0.1",
			Port:            8350,
			ShutdownTimeout: 5 * time.Second,
		},
		Database: DatabaseConfig{
			Path: "",
		},
		Definitions: DefinitionsConfig{
			Dir:   "",
			Watch: true,
		},
		Log: LogConfig{
			Debug: false,
			File:  "",
		},
	}
}
